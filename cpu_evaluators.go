package gltut

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gltut/gleval"
)

// CPU reference implementations of the tutorial stages. Each mirrors the
// GLSL body of its stage exactly so the properties of the snippets can be
// checked without a GPU. Wrap with gleval.NewCPUVertex/NewCPUFragment to
// get buffer validation and evaluation counting.

func (s *passthroughVert) EvaluateVertex(pos []mgl32.Vec4, clip []mgl32.Vec4, inv *gleval.Invocation) error {
	copy(clip, pos)
	return nil
}

func (s *offsetVert) EvaluateVertex(pos []mgl32.Vec4, clip []mgl32.Vec4, inv *gleval.Invocation) error {
	off := inv.Offset
	for i, p := range pos {
		clip[i] = mgl32.Vec4{p[0] + off.X, p[1] + off.Y, p[2], p[3]}
	}
	return nil
}

// The color attribute becomes a varying handed to the rasterizer; position
// passes through untouched.
func (s *colorVert) EvaluateVertex(pos []mgl32.Vec4, clip []mgl32.Vec4, inv *gleval.Invocation) error {
	copy(clip, pos)
	return nil
}

func (s *flatColor) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	for i := range coords {
		rgba[i] = s.c
	}
	return nil
}

func (s *offsetBlend) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	// The factor depends only on the per-draw uniform so the blend is
	// computed once per draw, not per fragment.
	c := mix4(s.from, s.to, inv.Offset.X+0.5)
	for i := range coords {
		rgba[i] = c
	}
	return nil
}

func (s *yGradient) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	span := s.span
	for i, c := range coords {
		rgba[i] = mix4(s.near, s.far, c.Y/span)
	}
	return nil
}

func (s *vertexColor) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	if len(inv.VertColor) != len(coords) {
		return fmt.Errorf("tricolor stage requires %d interpolated colors in Invocation, got %d", len(coords), len(inv.VertColor))
	}
	copy(rgba, inv.VertColor)
	return nil
}
