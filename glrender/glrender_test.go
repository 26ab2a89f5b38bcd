package glrender_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gltut/gleval"
	"github.com/soypat/gltut/glrender"
)

// splitFrag paints white below the split line and black above it.
type splitFrag struct{ split float32 }

func (f splitFrag) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	for i, c := range coords {
		if c.Y < f.split {
			rgba[i] = mgl32.Vec4{1, 1, 1, 1}
		} else {
			rgba[i] = mgl32.Vec4{0, 0, 0, 1}
		}
	}
	return nil
}

type constFrag struct{ c mgl32.Vec4 }

func (f constFrag) EvaluateFragment(coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	for i := range coords {
		rgba[i] = f.c
	}
	return nil
}

func TestRenderFragCoordConvention(t *testing.T) {
	const width, height = 8, 4
	renderer, err := glrender.NewImageRenderer(128, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Fragments below y=2 are white. With the origin at the bottom-left
	// that is the lower half of the screen, i.e. the top image rows must
	// come out black.
	err = renderer.Render(splitFrag{split: 2}, img, nil)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < height; j++ {
		r, _, _, _ := img.At(0, j).RGBA()
		white := r == 0xffff
		wantWhite := j >= height/2
		if white != wantWhite {
			t.Errorf("image row %d: white=%v, want %v", j, white, wantWhite)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := glrender.NewImageRenderer(64, nil)
	if err == nil {
		t.Error("expected error for too small evaluation buffer")
	}
	renderer, err := glrender.NewImageRenderer(65, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 2))
	err = renderer.Render(constFrag{}, img, nil)
	if err == nil {
		t.Error("expected error for image row longer than buffer")
	}
	err = renderer.Render(nil, img, nil)
	if err == nil {
		t.Error("expected error for nil fragment evaluator")
	}
	err = renderer.RenderSupersampled(constFrag{}, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil, 1)
	if err == nil {
		t.Error("expected error for supersampling factor below 2")
	}
}

func TestRenderScratchFromInvocationPool(t *testing.T) {
	const width = 8
	renderer, err := glrender.NewImageRenderer(128, nil)
	if err != nil {
		t.Fatal(err)
	}
	inv := &gleval.Invocation{}
	img := image.NewRGBA(image.Rect(0, 0, width, 4))
	err = renderer.Render(constFrag{}, img, inv)
	if err != nil {
		t.Fatal(err)
	}
	// Row scratch was acquired from the Invocation's pool and released
	// when done: a fresh acquire reuses the pooled backing.
	vp, err := gleval.GetVecPool(inv)
	if err != nil {
		t.Fatal(err)
	}
	coords := vp.V2.Acquire(1)
	if cap(coords) < width {
		t.Errorf("render scratch not pooled: acquired capacity %d", cap(coords))
	}
	rgba := vp.V4.Acquire(1)
	if cap(rgba) < width {
		t.Errorf("render scratch not pooled: acquired capacity %d", cap(rgba))
	}
	if err := vp.ReleaseAll(); err != nil {
		t.Fatal(err)
	}
}

func TestRenderSupersampled(t *testing.T) {
	renderer, err := glrender.NewImageRenderer(1024, nil)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	want := mgl32.Vec4{0.5, 0.25, 0, 1}
	err = renderer.RenderSupersampled(constFrag{c: want}, img, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Downscaling a constant field must preserve the color.
	wantColor := glrender.DefaultColorConversion(want)
	wr, wg, wb, wa := wantColor.RGBA()
	for _, p := range []image.Point{{0, 0}, {15, 15}, {7, 8}} {
		r, g, b, a := img.At(p.X, p.Y).RGBA()
		if r != wr || g != wg || b != wb || a != wa {
			t.Errorf("pixel %v: got %v,%v,%v,%v want %v,%v,%v,%v", p, r, g, b, a, wr, wg, wb, wa)
		}
	}
}

func TestDefaultColorConversion(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	red := color.RGBA{R: 255, A: 255}
	for _, tc := range []struct {
		c    mgl32.Vec4
		want color.RGBA
	}{
		{c: mgl32.Vec4{0, 0, 0, 1}, want: color.RGBA{A: 255}},
		{c: mgl32.Vec4{1, 1, 1, 1}, want: color.RGBA{255, 255, 255, 255}},
		// Out-of-gamut extrapolation results clamp.
		{c: mgl32.Vec4{1.5, -0.5, 0.5, 1}, want: color.RGBA{R: 255, B: 128, A: 255}},
		{c: mgl32.Vec4{nan, 0, 0, 1}, want: red},
		{c: mgl32.Vec4{0, inf, 0, 1}, want: red},
	} {
		got := glrender.DefaultColorConversion(tc.c)
		if got != tc.want {
			t.Errorf("convert %v: got %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestCenteredSquare(t *testing.T) {
	for _, tc := range []struct {
		width, height int
		want          image.Rectangle
	}{
		{width: 800, height: 600, want: image.Rect(100, 0, 700, 600)},
		{width: 600, height: 800, want: image.Rect(0, 100, 600, 700)},
		{width: 512, height: 512, want: image.Rect(0, 0, 512, 512)},
		{width: 501, height: 500, want: image.Rect(0, 0, 500, 500)},
	} {
		got := glrender.CenteredSquare(tc.width, tc.height)
		if got != tc.want {
			t.Errorf("CenteredSquare(%d,%d) = %v, want %v", tc.width, tc.height, got, tc.want)
		}
		if got.Dx() != got.Dy() {
			t.Errorf("CenteredSquare(%d,%d) not square: %v", tc.width, tc.height, got)
		}
	}
	if sq := glrender.CenteredSquare(10, 0); sq.Dx() != 0 || sq.Dy() != 0 {
		t.Errorf("degenerate window must yield empty viewport, got %v", sq)
	}
}
