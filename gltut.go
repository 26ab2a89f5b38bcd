// Package gltut defines the shader stages of an OpenGL rendering tutorial
// series as Go values. Each stage can emit its exact GLSL snippet source
// (see glstage) and be evaluated on the CPU as a pure reference function
// (see gleval). The external rendering pipeline that invokes the stages per
// vertex and per pixel is out of scope; only the per-invocation arithmetic
// lives here.
package gltut

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Builder wraps all tutorial stage construction logic.
// Provides error handling strategies with panics or error accumulation during stage creation.
type Builder struct {
	NoValidationPanic bool
	accumErrs         []error
}

func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

func (bld *Builder) stageErrorf(msg string, args ...any) {
	if !bld.NoValidationPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func mixf(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

// mix4 is componentwise GLSL mix: linear blend with standard unclamped
// semantics, factors outside [0,1] extrapolate.
func mix4(x, y mgl32.Vec4, a float32) mgl32.Vec4 {
	return mgl32.Vec4{
		mixf(x[0], y[0], a),
		mixf(x[1], y[1], a),
		mixf(x[2], y[2], a),
		mixf(x[3], y[3], a),
	}
}

func finitef(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func finite4(v mgl32.Vec4) bool {
	return finitef(v[0]) && finitef(v[1]) && finitef(v[2]) && finitef(v[3])
}
