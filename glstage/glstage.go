package glstage

import (
	"errors"
	"fmt"
	"io"
)

// VersionStr is the GLSL version directive heading every generated snippet.
// The tutorial programs target OpenGL 4.1 core.
const VersionStr = "#version 410\n"

// Shader generates the GLSL source of a single pipeline stage. Stages are
// standalone: each one compiles to a complete snippet file with its own
// input/output declarations and main body.
type Shader interface {
	// AppendShaderName appends the name of the stage to the buffer and
	// returns the result. The name doubles as the snippet's base filename.
	AppendShaderName(b []byte) []byte
	// AppendShaderBody appends the statements of the stage's main function
	// to the buffer and returns the result.
	AppendShaderBody(b []byte) []byte
	// AppendShaderInputs appends the external values the stage declares
	// and consumes or emits: vertex attributes, uniforms, varyings and
	// fragment outputs. See [Input].
	AppendShaderInputs(inputs []Input) []Input
}

// VertexShader generates GLSL source for a vertex stage, invoked once per
// vertex by the external pipeline.
type VertexShader interface {
	Shader
	// VertexAttribs returns the number of vertex attributes the stage
	// consumes, which equals the number of enabled attribute arrays a host
	// must supply.
	VertexAttribs() int
}

// FragmentShader generates GLSL source for a fragment stage, invoked once
// per covered pixel by the external pipeline.
type FragmentShader interface {
	Shader
	// UsesFragCoord reports whether the stage body reads the builtin
	// gl_FragCoord screen-space coordinate.
	UsesFragCoord() bool
}

// Qualifier classifies how an [Input] is supplied to or emitted by a stage.
type Qualifier uint8

const (
	_ Qualifier = iota
	// QualAttrib is a per-vertex attribute with an explicit location.
	// Only valid in vertex stages.
	QualAttrib
	// QualUniform is a per-draw constant supplied by the host.
	QualUniform
	// QualSmoothOut is an interpolated output written by a vertex stage.
	QualSmoothOut
	// QualSmoothIn is an interpolated input read by a fragment stage.
	QualSmoothIn
	// QualFragOut is the color output of a fragment stage.
	QualFragOut
)

func (q Qualifier) String() string {
	switch q {
	case QualAttrib:
		return "in"
	case QualUniform:
		return "uniform"
	case QualSmoothOut:
		return "smooth out"
	case QualSmoothIn:
		return "smooth in"
	case QualFragOut:
		return "out"
	}
	return "unknown"
}

// Typ is the GLSL type of an [Input].
type Typ uint8

const (
	_ Typ = iota
	TypFloat
	TypVec2
	TypVec4
)

func (t Typ) String() string {
	switch t {
	case TypFloat:
		return "float"
	case TypVec2:
		return "vec2"
	case TypVec4:
		return "vec4"
	}
	return "unknown"
}

// Input is a named external value declared by a stage. It is the stage's
// boundary contract with the external pipeline: the set of Inputs fully
// describes what a host must bind before a draw.
type Input struct {
	// NamePtr is a pointer to the name of the input inside of the [Shader].
	// This lets the programmer edit the name if a naming conflict is found
	// before generating the stage source.
	NamePtr []byte
	Type    Typ
	Qual    Qualifier
	// Location is the attribute location for [QualAttrib] inputs.
	// It is -1 for all other qualifiers.
	Location int
}

// Programmer implements snippet generation logic for stage types.
type Programmer struct {
	scratch      []byte
	inputScratch []Input
}

// NewDefaultProgrammer returns a Programmer with reasonable default buffer
// sizes for the tutorial stages.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratch:      make([]byte, 0, 1024),
		inputScratch: make([]Input, 0, 8),
	}
}

// WriteVertex writes the complete GLSL snippet of a vertex stage to w:
// version directive, input declarations and main body.
func (p *Programmer) WriteVertex(w io.Writer, vs VertexShader) (int, error) {
	if vs == nil {
		return 0, errors.New("nil vertex shader")
	}
	return p.writeStage(w, vs, false)
}

// WriteFragment writes the complete GLSL snippet of a fragment stage to w.
func (p *Programmer) WriteFragment(w io.Writer, fs FragmentShader) (int, error) {
	if fs == nil {
		return 0, errors.New("nil fragment shader")
	}
	return p.writeStage(w, fs, true)
}

// WriteProgram writes both stage snippets of a program and verifies their
// interfaces agree the way the GL linker would: every smooth input of the
// fragment stage must be fed by a smooth output of the vertex stage with
// identical name and type.
func (p *Programmer) WriteProgram(wvert, wfrag io.Writer, vs VertexShader, fs FragmentShader) (int, error) {
	if vs == nil || fs == nil {
		return 0, errors.New("nil stage argument")
	}
	err := p.linkCheck(vs, fs)
	if err != nil {
		return 0, err
	}
	n, err := p.WriteVertex(wvert, vs)
	if err != nil {
		return n, err
	}
	ngot, err := p.WriteFragment(wfrag, fs)
	n += ngot
	return n, err
}

func (p *Programmer) linkCheck(vs VertexShader, fs FragmentShader) error {
	vIn := vs.AppendShaderInputs(p.inputScratch[:0])
	nv := len(vIn)
	fIn := fs.AppendShaderInputs(vIn)
	p.inputScratch = fIn[:0]
	for _, fi := range fIn[nv:] {
		if fi.Qual != QualSmoothIn {
			continue
		}
		matched := false
		for _, vi := range vIn[:nv] {
			if vi.Qual != QualSmoothOut || string(vi.NamePtr) != string(fi.NamePtr) {
				continue
			}
			if vi.Type != fi.Type {
				return fmt.Errorf("varying %q type mismatch: vertex declares %s, fragment expects %s", fi.NamePtr, vi.Type, fi.Type)
			}
			matched = true
			break
		}
		if !matched {
			return fmt.Errorf("fragment stage %q input %q has no matching vertex stage output", string(fs.AppendShaderName(nil)), fi.NamePtr)
		}
	}
	return nil
}

func (p *Programmer) writeStage(w io.Writer, s Shader, isFragment bool) (int, error) {
	inputs := s.AppendShaderInputs(p.inputScratch[:0])
	p.inputScratch = inputs[:0]
	err := validateInputs(inputs, isFragment)
	if err != nil {
		name := s.AppendShaderName(p.scratch[:0])
		return 0, fmt.Errorf("stage %q: %s", name, err)
	}
	b := append(p.scratch[:0], VersionStr...)
	b = append(b, '\n')
	for _, in := range inputs {
		b = appendInputDecl(b, in)
	}
	b = append(b, "\nvoid main() {\n"...)
	body := s.AppendShaderBody(nil)
	b = appendIndented(b, body)
	b = append(b, "}\n"...)
	p.scratch = b[:0]
	return w.Write(b)
}

func validateInputs(inputs []Input, isFragment bool) error {
	fragOuts := 0
	for i, in := range inputs {
		if !validIdent(in.NamePtr) {
			return fmt.Errorf("invalid input name %q", in.NamePtr)
		}
		for _, prev := range inputs[:i] {
			if string(prev.NamePtr) == string(in.NamePtr) {
				return fmt.Errorf("duplicate input name %q", in.NamePtr)
			}
			if in.Qual == QualAttrib && prev.Qual == QualAttrib && prev.Location == in.Location {
				return fmt.Errorf("attribute location %d declared twice", in.Location)
			}
		}
		switch in.Qual {
		case QualAttrib:
			if isFragment {
				return fmt.Errorf("vertex attribute %q in fragment stage", in.NamePtr)
			} else if in.Location < 0 {
				return fmt.Errorf("negative location for attribute %q", in.NamePtr)
			}
		case QualSmoothOut:
			if isFragment {
				return fmt.Errorf("smooth output %q in fragment stage", in.NamePtr)
			}
		case QualSmoothIn, QualFragOut:
			if !isFragment {
				return fmt.Errorf("fragment qualifier on %q in vertex stage", in.NamePtr)
			}
			if in.Qual == QualFragOut {
				fragOuts++
			}
		case QualUniform:
		default:
			return fmt.Errorf("input %q has invalid qualifier", in.NamePtr)
		}
	}
	if isFragment && fragOuts != 1 {
		return fmt.Errorf("fragment stage requires exactly one color output, got %d", fragOuts)
	}
	return nil
}

func appendInputDecl(b []byte, in Input) []byte {
	if in.Qual == QualAttrib {
		b = append(b, "layout(location = "...)
		b = appendInt(b, in.Location)
		b = append(b, ") "...)
	}
	b = append(b, in.Qual.String()...)
	b = append(b, ' ')
	b = append(b, in.Type.String()...)
	b = append(b, ' ')
	b = append(b, in.NamePtr...)
	b = append(b, ';', '\n')
	return b
}

// appendIndented appends body with every line prefixed by a tab and
// guarantees a trailing newline.
func appendIndented(b, body []byte) []byte {
	start := 0
	for i, c := range body {
		if c != '\n' {
			continue
		}
		b = append(b, '\t')
		b = append(b, body[start:i+1]...)
		start = i + 1
	}
	if start < len(body) {
		b = append(b, '\t')
		b = append(b, body[start:]...)
		b = append(b, '\n')
	}
	return b
}

func validIdent(name []byte) bool {
	if len(name) == 0 {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// SourceFilename returns the conventional snippet filename for a stage:
// the stage name with a ".vert" or ".frag" extension.
func SourceFilename(s Shader) string {
	name := string(s.AppendShaderName(nil))
	switch s.(type) {
	case VertexShader:
		return name + ".vert"
	case FragmentShader:
		return name + ".frag"
	}
	return name + ".glsl"
}
