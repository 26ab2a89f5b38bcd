package glstage

import (
	"bytes"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

const decimalDigits = 9

// AppendFloat appends the GLSL representation of v to b. neg replaces the
// minus sign and decimal replaces the decimal point, for callers that embed
// floats into identifiers.
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	// Trim trailing zeroes, leaving at least one decimal digit.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start+1 && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// AppendFloats appends the GLSL representations of s to b separated by sep.
func AppendFloats(b []byte, sep, neg, decimal byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, neg, decimal, v)
		if sep != 0 && i != len(s)-1 {
			b = append(b, sep)
		}
	}
	return b
}

// AppendVec4Call appends a GLSL vec4 constructor call such as
// "vec4(1.0,0.0,0.0,1.0)" to b.
func AppendVec4Call(b []byte, v mgl32.Vec4) []byte {
	b = append(b, "vec4("...)
	b = AppendFloats(b, ',', '-', '.', v[0], v[1], v[2], v[3])
	b = append(b, ')')
	return b
}

// AppendVec2Call appends a GLSL vec2 constructor call to b.
func AppendVec2Call(b []byte, v ms2.Vec) []byte {
	b = append(b, "vec2("...)
	b = AppendFloats(b, ',', '-', '.', v.X, v.Y)
	b = append(b, ')')
	return b
}

// AppendFloatDecl appends a float variable declaration to b.
func AppendFloatDecl(b []byte, floatVarname string, v float32) []byte {
	b = append(b, "float "...)
	b = append(b, floatVarname...)
	b = append(b, '=')
	b = AppendFloat(b, '-', '.', v)
	b = append(b, ';', '\n')
	return b
}

// AppendVec2Decl appends a vec2 variable declaration to b.
func AppendVec2Decl(b []byte, vec2Varname string, v ms2.Vec) []byte {
	b = append(b, "vec2 "...)
	b = append(b, vec2Varname...)
	b = append(b, '=')
	b = AppendVec2Call(b, v)
	b = append(b, ';', '\n')
	return b
}

// AppendVec4Decl appends a vec4 variable declaration to b.
func AppendVec4Decl(b []byte, vec4Varname string, v mgl32.Vec4) []byte {
	b = append(b, "vec4 "...)
	b = append(b, vec4Varname...)
	b = append(b, '=')
	b = AppendVec4Call(b, v)
	b = append(b, ';', '\n')
	return b
}

func appendInt(b []byte, v int) []byte {
	return strconv.AppendInt(b, int64(v), 10)
}
