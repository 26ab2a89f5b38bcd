package gltut

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/gltut/glstage"
)

// NewFlatColor returns the fragment stage that outputs color c for every
// covered pixel.
func (bld *Builder) NewFlatColor(c mgl32.Vec4) glstage.FragmentShader {
	if !finite4(c) {
		bld.stageErrorf("non-finite flat color")
	}
	return &flatColor{c: c, outputColor: []byte("outputColor")}
}

type flatColor struct {
	c           mgl32.Vec4
	outputColor []byte
}

func (s *flatColor) AppendShaderName(b []byte) []byte {
	return append(b, "flat-color"...)
}

func (s *flatColor) AppendShaderBody(b []byte) []byte {
	b = append(b, s.outputColor...)
	b = append(b, " = "...)
	b = glstage.AppendVec4Call(b, s.c)
	b = append(b, ';')
	return b
}

func (s *flatColor) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	return append(inputs, glstage.Input{NamePtr: s.outputColor, Type: glstage.TypVec4, Qual: glstage.QualFragOut, Location: -1})
}

func (s *flatColor) UsesFragCoord() bool { return false }

// NewOffsetBlend returns the fragment stage that blends between the from
// and to colors with interpolation factor offset.x + 0.5, where offset is
// the per-draw vec2 uniform shared with [Builder.NewOffsetTranslate].
// Standard mix semantics apply: factors outside [0,1] extrapolate rather
// than clamp, so out-of-range offsets produce out-of-gamut colors.
func (bld *Builder) NewOffsetBlend(from, to mgl32.Vec4) glstage.FragmentShader {
	if !finite4(from) || !finite4(to) {
		bld.stageErrorf("non-finite blend color")
	}
	return &offsetBlend{
		from:        from,
		to:          to,
		offset:      []byte("offset"),
		outputColor: []byte("outputColor"),
	}
}

type offsetBlend struct {
	from, to    mgl32.Vec4
	offset      []byte
	outputColor []byte
}

func (s *offsetBlend) AppendShaderName(b []byte) []byte {
	return append(b, "cycle-color"...)
}

func (s *offsetBlend) AppendShaderBody(b []byte) []byte {
	b = append(b, s.outputColor...)
	b = append(b, " = mix("...)
	b = glstage.AppendVec4Call(b, s.from)
	b = append(b, ", "...)
	b = glstage.AppendVec4Call(b, s.to)
	b = append(b, ", "...)
	b = append(b, s.offset...)
	b = append(b, ".x + 0.5);"...)
	return b
}

func (s *offsetBlend) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	inputs = append(inputs, glstage.Input{NamePtr: s.offset, Type: glstage.TypVec2, Qual: glstage.QualUniform, Location: -1})
	inputs = append(inputs, glstage.Input{NamePtr: s.outputColor, Type: glstage.TypVec4, Qual: glstage.QualFragOut, Location: -1})
	return inputs
}

func (s *offsetBlend) UsesFragCoord() bool { return false }

// NewVerticalGradient returns the fragment stage that blends from the near
// color at the bottom of the screen to the far color span pixels up, with
// interpolation factor gl_FragCoord.y / span. The factor is not clamped:
// fragments beyond span extrapolate past the far color instead of
// saturating.
func (bld *Builder) NewVerticalGradient(near, far mgl32.Vec4, span float32) glstage.FragmentShader {
	if span <= 0 || !finitef(span) {
		bld.stageErrorf("zero, negative or non-finite gradient span")
	}
	if !finite4(near) || !finite4(far) {
		bld.stageErrorf("non-finite gradient color")
	}
	return &yGradient{near: near, far: far, span: span, outputColor: []byte("outputColor")}
}

type yGradient struct {
	near, far   mgl32.Vec4
	span        float32
	outputColor []byte
}

func (s *yGradient) AppendShaderName(b []byte) []byte {
	return append(b, "y-gradient"...)
}

func (s *yGradient) AppendShaderBody(b []byte) []byte {
	b = append(b, "float lerpValue = gl_FragCoord.y / "...)
	b = glstage.AppendFloat(b, '-', '.', s.span)
	b = append(b, ";\n"...)
	b = append(b, s.outputColor...)
	b = append(b, " = mix("...)
	b = glstage.AppendVec4Call(b, s.near)
	b = append(b, ", "...)
	b = glstage.AppendVec4Call(b, s.far)
	b = append(b, ", lerpValue);"...)
	return b
}

func (s *yGradient) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	return append(inputs, glstage.Input{NamePtr: s.outputColor, Type: glstage.TypVec4, Qual: glstage.QualFragOut, Location: -1})
}

func (s *yGradient) UsesFragCoord() bool { return true }

// NewVertexColor returns the fragment stage of the tricolor triangle: the
// output color is the smooth varying written by
// [Builder.NewColorPassthroughVertex], interpolated across the triangle by
// the external rasterizer.
func (bld *Builder) NewVertexColor() glstage.FragmentShader {
	return &vertexColor{theColor: []byte("theColor"), outputColor: []byte("outputColor")}
}

type vertexColor struct {
	theColor    []byte
	outputColor []byte
}

func (s *vertexColor) AppendShaderName(b []byte) []byte {
	return append(b, "tricolor"...)
}

func (s *vertexColor) AppendShaderBody(b []byte) []byte {
	b = append(b, s.outputColor...)
	b = append(b, " = "...)
	b = append(b, s.theColor...)
	b = append(b, ';')
	return b
}

func (s *vertexColor) AppendShaderInputs(inputs []glstage.Input) []glstage.Input {
	inputs = append(inputs, glstage.Input{NamePtr: s.theColor, Type: glstage.TypVec4, Qual: glstage.QualSmoothIn, Location: -1})
	inputs = append(inputs, glstage.Input{NamePtr: s.outputColor, Type: glstage.TypVec4, Qual: glstage.QualFragOut, Location: -1})
	return inputs
}

func (s *vertexColor) UsesFragCoord() bool { return false }
