// Package gltutaux has auxiliary functions to get users rendering the
// tutorial stages with as little friction as possible.
package gltutaux

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gltut/gleval"
	"github.com/soypat/gltut/glrender"
	"github.com/soypat/gltut/glstage"
)

type RenderConfig struct {
	// VertexOutput and FragmentOutput receive the generated GLSL snippet
	// sources of the two stages.
	VertexOutput   io.Writer
	FragmentOutput io.Writer
	// PNGOutput receives a CPU-rendered preview of the fragment stage.
	PNGOutput io.Writer
	// Width and Height of the preview. Zero values default to 512.
	Width, Height int
	// Supersampling above 1 renders the preview at a multiple of the
	// resolution and downscales.
	Supersampling int
	// Offset is the value of the per-draw offset uniform during the preview.
	Offset ms2.Vec
	// ValidateOnGPU compiles the generated program with the local driver on
	// a hidden context. Requires CGo.
	ValidateOnGPU bool
	Silent        bool
}

// Render is an auxiliary function to aid users in inspecting tutorial stage
// programs quickly: it writes the generated GLSL snippets, optionally
// validates them with the local driver and renders a CPU preview of the
// fragment stage. Ideally users should wire the packages directly since
// applications may vary widely.
func Render(vs glstage.VertexShader, fs glstage.FragmentShader, cfg RenderConfig) (err error) {
	if vs == nil || fs == nil {
		return errors.New("Render requires both program stages")
	}
	if cfg.VertexOutput == nil && cfg.FragmentOutput == nil && cfg.PNGOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	var vertSrc, fragSrc bytes.Buffer
	watch := stopwatch()
	programmer := glstage.NewDefaultProgrammer()
	_, err = programmer.WriteProgram(&vertSrc, &fragSrc, vs, fs)
	if err != nil {
		return fmt.Errorf("generating program source: %s", err)
	}
	log("generated", glstage.SourceFilename(vs), "and", glstage.SourceFilename(fs), "in", watch())

	if cfg.VertexOutput != nil {
		_, err = cfg.VertexOutput.Write(vertSrc.Bytes())
		if err != nil {
			return fmt.Errorf("writing vertex snippet: %s", err)
		}
		log("wrote", outputName(cfg.VertexOutput, glstage.SourceFilename(vs)))
	}
	if cfg.FragmentOutput != nil {
		_, err = cfg.FragmentOutput.Write(fragSrc.Bytes())
		if err != nil {
			return fmt.Errorf("writing fragment snippet: %s", err)
		}
		log("wrote", outputName(cfg.FragmentOutput, glstage.SourceFilename(fs)))
	}

	if cfg.ValidateOnGPU {
		watch = stopwatch()
		terminate, err := gleval.Init1x1GLFW()
		if err != nil {
			return err
		}
		defer terminate()
		err = gleval.ValidateProgram(vertSrc.Bytes(), fragSrc.Bytes())
		if err != nil {
			return err
		}
		log("driver accepted program in", watch())
	}

	if cfg.PNGOutput != nil {
		width, height := cfg.Width, cfg.Height
		if width <= 0 {
			width = 512
		}
		if height <= 0 {
			height = 512
		}
		ssaa := cfg.Supersampling
		if ssaa < 1 {
			ssaa = 1
		}
		frag, err := gleval.NewCPUFragment(fs)
		if err != nil {
			return err
		}
		bufsize := width * ssaa
		if bufsize < 1<<12 {
			bufsize = 1 << 12
		}
		renderer, err := glrender.NewImageRenderer(bufsize, nil)
		if err != nil {
			return err
		}
		watch = stopwatch()
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		inv := &gleval.Invocation{Offset: cfg.Offset}
		if ssaa > 1 {
			err = renderer.RenderSupersampled(frag, img, inv, ssaa)
		} else {
			err = renderer.Render(frag, img, inv)
		}
		if err != nil {
			return fmt.Errorf("rendering preview: %s", err)
		}
		err = png.Encode(cfg.PNGOutput, img)
		if err != nil {
			return fmt.Errorf("encoding PNG: %s", err)
		}
		log("evaluated fragment stage", frag.Evaluations(), "times and wrote", outputName(cfg.PNGOutput, "PNG"), "in", watch())
	}
	return nil
}

// RenderPNGFile renders a fragment stage preview to a PNG file of size
// pixels a side with a zeroed offset uniform. A nil color conversion
// results in [glrender.DefaultColorConversion].
func RenderPNGFile(filename string, fs glstage.FragmentShader, size int, conversion func(mgl32.Vec4) color.Color) error {
	frag, err := gleval.NewCPUFragment(fs)
	if err != nil {
		return err
	}
	bufsize := size
	if bufsize < 1<<12 {
		bufsize = 1 << 12
	}
	renderer, err := glrender.NewImageRenderer(bufsize, conversion)
	if err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	err = renderer.Render(frag, img, &gleval.Invocation{})
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	return png.Encode(fp, img)
}

// WriteSourceFiles writes the program's two snippet files into dir using
// the conventional stage filenames, mirroring the tutorial's
// file-per-snippet layout.
func WriteSourceFiles(dir string, vs glstage.VertexShader, fs glstage.FragmentShader) error {
	vfp, err := os.Create(filepath.Join(dir, glstage.SourceFilename(vs)))
	if err != nil {
		return err
	}
	defer vfp.Close()
	ffp, err := os.Create(filepath.Join(dir, glstage.SourceFilename(fs)))
	if err != nil {
		return err
	}
	defer ffp.Close()
	programmer := glstage.NewDefaultProgrammer()
	_, err = programmer.WriteProgram(vfp, ffp, vs, fs)
	return err
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
