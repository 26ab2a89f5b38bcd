package gleval

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

// VertexEvaluator implements a vertex stage in vectorized form suitable for
// evaluating whole attribute buffers at once on the CPU.
type VertexEvaluator interface {
	// EvaluateVertex evaluates the vertex stage over pos positions.
	// pos and clip must be of same length. Resulting clip-space positions
	// are stored in clip. Evaluation is pure: identical inputs yield
	// bit-identical outputs.
	EvaluateVertex(pos []mgl32.Vec4, clip []mgl32.Vec4, inv *Invocation) error
}

// FragmentEvaluator implements a fragment stage in vectorized form.
type FragmentEvaluator interface {
	// EvaluateFragment evaluates the fragment stage over coords screen-space
	// coordinates following the gl_FragCoord convention (origin bottom-left,
	// pixel centers at half-integer positions). coords and rgba must be of
	// same length. Resulting colors are stored in rgba and may lie outside
	// the [0,1] gamut since stage arithmetic never clamps.
	EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *Invocation) error
}

// Invocation carries the externally supplied per-draw state of a stage
// evaluation: the uniform values and any pre-interpolated varyings. The
// zero value is a valid draw with all uniforms zeroed.
type Invocation struct {
	// Offset is the per-draw vec2 offset uniform, constant across all
	// invocations within a draw.
	Offset ms2.Vec
	// VertColor holds pre-interpolated color varyings for fragment stages
	// declaring a smooth color input. Varying interpolation belongs to the
	// external rasterizer; callers supply the interpolated values here,
	// one per evaluated fragment.
	VertColor []mgl32.Vec4

	pool VecPool
}

// VecPool returns the Invocation's buffer pool for use by evaluators and
// renderers that need scratch buffers.
func (inv *Invocation) VecPool() *VecPool { return &inv.pool }

// GetVecPool asserts the userData as having a VecPool method and returns
// the pool. Mainly [Invocation] satisfies this.
func GetVecPool(userData any) (*VecPool, error) {
	vper, ok := userData.(interface{ VecPool() *VecPool })
	if !ok {
		return nil, fmt.Errorf("%T does not provide a VecPool", userData)
	}
	return vper.VecPool(), nil
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("input and output buffer length mismatch")
)

// AssertVertex asserts the argument as a [VertexEvaluator]. Stage types of
// the root gltut package implement CPU evaluation and satisfy the assertion.
func AssertVertex(s any) (VertexEvaluator, error) {
	ve, ok := s.(VertexEvaluator)
	if !ok {
		return nil, fmt.Errorf("%T does not implement vertex evaluation", s)
	}
	return ve, nil
}

// AssertFragment asserts the argument as a [FragmentEvaluator].
func AssertFragment(s any) (FragmentEvaluator, error) {
	fe, ok := s.(FragmentEvaluator)
	if !ok {
		return nil, fmt.Errorf("%T does not implement fragment evaluation", s)
	}
	return fe, nil
}

// NewCPUVertex wraps the argument's CPU implementation with buffer
// validation and evaluation counting.
func NewCPUVertex(s any) (*VertexCPU, error) {
	ve, err := AssertVertex(s)
	if err != nil {
		return nil, err
	}
	return &VertexCPU{VE: ve}, nil
}

// NewCPUFragment wraps the argument's CPU implementation with buffer
// validation and evaluation counting.
func NewCPUFragment(s any) (*FragmentCPU, error) {
	fe, err := AssertFragment(s)
	if err != nil {
		return nil, err
	}
	return &FragmentCPU{FE: fe}, nil
}

// VertexCPU implements [VertexEvaluator] by delegating to VE after
// validating buffers. It keeps count of total evaluated vertices.
type VertexCPU struct {
	VE    VertexEvaluator
	evals uint64
}

// Evaluations returns the total vertex invocations evaluated successfully
// during the evaluator's lifetime.
func (v *VertexCPU) Evaluations() uint64 { return v.evals }

// EvaluateVertex implements the [VertexEvaluator] interface.
func (v *VertexCPU) EvaluateVertex(pos []mgl32.Vec4, clip []mgl32.Vec4, inv *Invocation) error {
	if len(pos) != len(clip) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	err := v.VE.EvaluateVertex(pos, clip, inv)
	if err != nil {
		return err
	}
	v.evals += uint64(len(pos))
	return nil
}

// FragmentCPU implements [FragmentEvaluator] by delegating to FE after
// validating buffers. It keeps count of total evaluated fragments.
type FragmentCPU struct {
	FE    FragmentEvaluator
	evals uint64
}

// Evaluations returns the total fragment invocations evaluated successfully
// during the evaluator's lifetime.
func (f *FragmentCPU) Evaluations() uint64 { return f.evals }

// EvaluateFragment implements the [FragmentEvaluator] interface.
func (f *FragmentCPU) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *Invocation) error {
	if len(coords) != len(rgba) {
		return errMismatchBufferLength
	} else if len(coords) == 0 {
		return errEmptyBuffers
	}
	err := f.FE.EvaluateFragment(coords, rgba, inv)
	if err != nil {
		return err
	}
	f.evals += uint64(len(coords))
	return nil
}
