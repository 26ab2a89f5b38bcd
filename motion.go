package gltut

import (
	"errors"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

// Orbit computes the per-draw offset uniform of the moving-triangle
// tutorial: counter-clockwise circular motion completing one revolution
// every period.
type Orbit struct {
	period time.Duration
	radius float32
}

// NewOrbit creates an Orbit with the given revolution period and circle
// radius.
func (bld *Builder) NewOrbit(period time.Duration, radius float32) Orbit {
	if period <= 0 {
		bld.stageErrorf("zero or negative orbit period")
	}
	if radius <= 0 || !finitef(radius) {
		bld.stageErrorf("zero, negative or non-finite orbit radius")
	}
	return Orbit{period: period, radius: radius}
}

// OffsetAt returns the offset uniform value at elapsed time t since the
// start of the animation. The result repeats every period.
func (o Orbit) OffsetAt(t time.Duration) ms2.Vec {
	if o.period <= 0 {
		return ms2.Vec{}
	}
	t %= o.period
	if t < 0 {
		t += o.period
	}
	theta := 2 * math32.Pi * float32(t) / float32(o.period)
	return ms2.Vec{X: o.radius * math32.Cos(theta), Y: o.radius * math32.Sin(theta)}
}

// TranslatePositions adds offset to the first two components of each
// position, leaving third and fourth components unchanged. It is the
// buffer-upload variant of the translate vertex stage from the tutorial's
// CPU chapter and agrees bit for bit with the stage's evaluator. dst and
// src may be the same slice.
func TranslatePositions(dst, src []mgl32.Vec4, offset ms2.Vec) error {
	if len(dst) != len(src) {
		return errors.New("position buffer length mismatch")
	}
	for i, p := range src {
		dst[i] = mgl32.Vec4{p[0] + offset.X, p[1] + offset.Y, p[2], p[3]}
	}
	return nil
}
