package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gltut/gleval"
	xdraw "golang.org/x/image/draw"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRenderer converts fragment stages to images by evaluating the stage
// once per pixel center. Row scratch buffers come from the Invocation's
// [gleval.VecPool] so repeated renders against the same Invocation reuse
// allocations.
type ImageRenderer struct {
	conv    func(c mgl32.Vec4) color.Color
	bufsize int
}

// NewImageRenderer instances a new [ImageRenderer] to render images from
// fragment stage evaluators. evalBufferSize bounds the widest image row the
// renderer will evaluate. A nil color conversion function results in
// [DefaultColorConversion].
func NewImageRenderer(evalBufferSize int, conversion func(mgl32.Vec4) color.Color) (*ImageRenderer, error) {
	if evalBufferSize <= 64 {
		return nil, errors.New("too small evaluation buffer size")
	}
	if conversion == nil {
		conversion = DefaultColorConversion
	}
	ir := &ImageRenderer{
		conv:    conversion,
		bufsize: evalBufferSize,
	}
	return ir, nil
}

// DefaultColorConversion converts a stage output color to 8-bit RGBA.
// Channels are clamped to [0,1] since the image gamut forces saturation of
// the stage's unclamped arithmetic. Non-finite channels map to opaque red.
func DefaultColorConversion(c mgl32.Vec4) color.Color {
	for _, v := range c {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return color.RGBA{R: 255, A: 255}
		}
	}
	return color.RGBA{
		R: touint8(c[0]),
		G: touint8(c[1]),
		B: touint8(c[2]),
		A: touint8(c[3]),
	}
}

func touint8(f float32) uint8 {
	if f <= 0 {
		return 0
	} else if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Render evaluates the fragment stage over every pixel of img and stores
// the converted colors. Fragment coordinates follow the gl_FragCoord
// convention: origin at the bottom-left of the image, pixel centers at
// half-integer positions, so image rows are filled bottom-up.
func (ir *ImageRenderer) Render(frag gleval.FragmentEvaluator, img setImage, inv *gleval.Invocation) error {
	if frag == nil {
		return errors.New("nil fragment evaluator")
	} else if inv == nil {
		inv = &gleval.Invocation{}
	}
	imgBB := img.Bounds()
	dxi := imgBB.Dx()
	dyi := imgBB.Dy()
	if ir.bufsize < dxi {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image rows (%d)", ir.bufsize, dxi)
	}
	vp, err := gleval.GetVecPool(inv)
	if err != nil {
		return err
	}
	coords := vp.V2.Acquire(dxi)
	rgba := vp.V4.Acquire(dxi)
	for j := 0; j < dyi; j++ {
		y := float32(dyi-1-j) + 0.5
		err = ir.renderRow(frag, j, y, imgBB, img, coords, rgba, inv)
		if err != nil {
			break
		}
	}
	return errors.Join(err, vp.V2.Release(coords), vp.V4.Release(rgba))
}

func (ir *ImageRenderer) renderRow(frag gleval.FragmentEvaluator, row int, y float32, imgBB image.Rectangle, img setImage, coords []ms2.Vec, rgba []mgl32.Vec4, inv *gleval.Invocation) error {
	dxi := imgBB.Dx()
	for i := 0; i < dxi; i++ {
		coords[i] = ms2.Vec{X: float32(i) + 0.5, Y: y}
	}
	err := frag.EvaluateFragment(coords[:dxi], rgba[:dxi], inv)
	if err != nil {
		return err
	}
	conv := ir.conv
	for i := 0; i < dxi; i++ {
		img.Set(i+imgBB.Min.X, row+imgBB.Min.Y, conv(rgba[i]))
	}
	return nil
}

// RenderSupersampled renders the stage at ssaa times the image resolution
// and downscales with Catmull-Rom filtering to soften gradient banding.
func (ir *ImageRenderer) RenderSupersampled(frag gleval.FragmentEvaluator, img draw.Image, inv *gleval.Invocation, ssaa int) error {
	if ssaa < 2 {
		return errors.New("supersampling factor must be at least 2")
	}
	bb := img.Bounds()
	if ir.bufsize < bb.Dx()*ssaa {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of supersampled image rows (%d)", ir.bufsize, bb.Dx()*ssaa)
	}
	big := image.NewRGBA(image.Rect(0, 0, bb.Dx()*ssaa, bb.Dy()*ssaa))
	err := ir.Render(frag, big, inv)
	if err != nil {
		return err
	}
	xdraw.CatmullRom.Scale(img, bb, big, big.Bounds(), xdraw.Src, nil)
	return nil
}

// CenteredSquare returns the largest centered square that fits in a
// width by height window, the letterboxed viewport the tutorial applies on
// window reshape so triangles stay undistorted.
func CenteredSquare(width, height int) image.Rectangle {
	length := width
	if height < width {
		length = height
	}
	if length < 0 {
		length = 0
	}
	x := (width - length) / 2
	y := (height - length) / 2
	return image.Rect(x, y, x+length, y+length)
}
