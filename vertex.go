package gltut

import (
	"github.com/soypat/gltut/glstage"
)

// NewPassthroughVertex returns the tutorial's identity vertex stage: the
// clip-space output is the input position, unchanged.
func (bld *Builder) NewPassthroughVertex() glstage.VertexShader {
	return &passthroughVert{position: []byte("position")}
}

type passthroughVert struct {
	position []byte
}

func (s *passthroughVert) AppendShaderName(b []byte) []byte {
	return append(b, "identity"...)
}

func (s *passthroughVert) AppendShaderBody(b []byte) []byte {
	b = append(b, "gl_Position = "...)
	b = append(b, s.position...)
	b = append(b, ';')
	return b
}

func (s *passthroughVert) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	return append(inputs, glstage.Input{NamePtr: s.position, Type: glstage.TypVec4, Qual: glstage.QualAttrib, Location: 0})
}

func (s *passthroughVert) VertexAttribs() int { return 1 }

// NewOffsetTranslate returns the vertex stage that translates each position
// by the per-draw offset uniform: the offset is added to the position's
// first two components, third and fourth components pass unchanged.
func (bld *Builder) NewOffsetTranslate() glstage.VertexShader {
	return &offsetVert{position: []byte("position"), offset: []byte("offset")}
}

type offsetVert struct {
	position []byte
	offset   []byte
}

func (s *offsetVert) AppendShaderName(b []byte) []byte {
	return append(b, "translate"...)
}

func (s *offsetVert) AppendShaderBody(b []byte) []byte {
	b = append(b, "gl_Position = "...)
	b = append(b, s.position...)
	b = append(b, " + vec4("...)
	b = append(b, s.offset...)
	b = append(b, ".x, "...)
	b = append(b, s.offset...)
	b = append(b, ".y, 0.0, 0.0);"...)
	return b
}

func (s *offsetVert) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	inputs = append(inputs, glstage.Input{NamePtr: s.position, Type: glstage.TypVec4, Qual: glstage.QualAttrib, Location: 0})
	inputs = append(inputs, glstage.Input{NamePtr: s.offset, Type: glstage.TypVec2, Qual: glstage.QualUniform, Location: -1})
	return inputs
}

func (s *offsetVert) VertexAttribs() int { return 1 }

// NewColorPassthroughVertex returns the two-attribute vertex stage of the
// tutorial's tricolor triangle: position passes through unchanged and the
// per-vertex color attribute is handed to the rasterizer as a smooth
// varying for interpolation.
func (bld *Builder) NewColorPassthroughVertex() glstage.VertexShader {
	return &colorVert{
		position: []byte("position"),
		color:    []byte("color"),
		theColor: []byte("theColor"),
	}
}

type colorVert struct {
	position []byte
	color    []byte
	theColor []byte
}

func (s *colorVert) AppendShaderName(b []byte) []byte {
	return append(b, "multi-input"...)
}

func (s *colorVert) AppendShaderBody(b []byte) []byte {
	b = append(b, "gl_Position = "...)
	b = append(b, s.position...)
	b = append(b, ";\n"...)
	b = append(b, s.theColor...)
	b = append(b, " = "...)
	b = append(b, s.color...)
	b = append(b, ';')
	return b
}

func (s *colorVert) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	inputs = append(inputs, glstage.Input{NamePtr: s.position, Type: glstage.TypVec4, Qual: glstage.QualAttrib, Location: 0})
	inputs = append(inputs, glstage.Input{NamePtr: s.color, Type: glstage.TypVec4, Qual: glstage.QualAttrib, Location: 1})
	inputs = append(inputs, glstage.Input{NamePtr: s.theColor, Type: glstage.TypVec4, Qual: glstage.QualSmoothOut, Location: -1})
	return inputs
}

func (s *colorVert) VertexAttribs() int { return 2 }
