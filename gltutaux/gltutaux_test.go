package gltutaux_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/gltut"
	"github.com/soypat/gltut/glstage"
	"github.com/soypat/gltut/gltutaux"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRender(t *testing.T) {
	var bld gltut.Builder
	vs := bld.NewOffsetTranslate()
	fs := bld.NewOffsetBlend(mgl32.Vec4{1, 0, 1, 1}, mgl32.Vec4{0, 1, 0, 1})
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	var vertSrc, fragSrc, pngOut bytes.Buffer
	err := gltutaux.Render(vs, fs, gltutaux.RenderConfig{
		VertexOutput:   &vertSrc,
		FragmentOutput: &fragSrc,
		PNGOutput:      &pngOut,
		Width:          16,
		Height:         16,
		Silent:         true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(vertSrc.String(), glstage.VersionStr) {
		t.Errorf("vertex snippet missing version directive:\n%s", vertSrc.String())
	}
	if !strings.HasPrefix(fragSrc.String(), glstage.VersionStr) {
		t.Errorf("fragment snippet missing version directive:\n%s", fragSrc.String())
	}
	if !strings.Contains(vertSrc.String(), "gl_Position") {
		t.Error("vertex snippet missing gl_Position write")
	}
	if !bytes.HasPrefix(pngOut.Bytes(), pngMagic) {
		t.Error("PNG output missing magic bytes")
	}
}

func TestRenderSupersampledPreview(t *testing.T) {
	var bld gltut.Builder
	vs := bld.NewPassthroughVertex()
	fs := bld.NewVerticalGradient(mgl32.Vec4{1, 1, 1, 1}, mgl32.Vec4{0.1, 0.1, 0.1, 1}, 500)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	var pngOut bytes.Buffer
	err := gltutaux.Render(vs, fs, gltutaux.RenderConfig{
		PNGOutput:     &pngOut,
		Width:         32,
		Height:        32,
		Supersampling: 2,
		Silent:        true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pngOut.Bytes(), pngMagic) {
		t.Error("PNG output missing magic bytes")
	}
}

func TestRenderConfigValidation(t *testing.T) {
	var bld gltut.Builder
	vs := bld.NewPassthroughVertex()
	fs := bld.NewFlatColor(mgl32.Vec4{1, 1, 1, 1})
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	err := gltutaux.Render(vs, fs, gltutaux.RenderConfig{Silent: true})
	if err == nil {
		t.Error("expected error with no outputs configured")
	}
	var buf bytes.Buffer
	err = gltutaux.Render(nil, fs, gltutaux.RenderConfig{VertexOutput: &buf, Silent: true})
	if err == nil {
		t.Error("expected error with nil vertex stage")
	}
	err = gltutaux.Render(vs, nil, gltutaux.RenderConfig{VertexOutput: &buf, Silent: true})
	if err == nil {
		t.Error("expected error with nil fragment stage")
	}
}

func TestWriteSourceFiles(t *testing.T) {
	var bld gltut.Builder
	vs := bld.NewColorPassthroughVertex()
	fs := bld.NewVertexColor()
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	err := gltutaux.WriteSourceFiles(dir, vs, fs)
	if err != nil {
		t.Fatal(err)
	}
	vsrc, err := os.ReadFile(filepath.Join(dir, glstage.SourceFilename(vs)))
	if err != nil {
		t.Fatal(err)
	}
	fsrc, err := os.ReadFile(filepath.Join(dir, glstage.SourceFilename(fs)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(vsrc, []byte("smooth out vec4 theColor;")) {
		t.Errorf("vertex snippet missing varying declaration:\n%s", vsrc)
	}
	if !bytes.Contains(fsrc, []byte("smooth in vec4 theColor;")) {
		t.Errorf("fragment snippet missing varying declaration:\n%s", fsrc)
	}
}

func TestRenderPNGFile(t *testing.T) {
	var bld gltut.Builder
	fs := bld.NewFlatColor(mgl32.Vec4{0, 0, 1, 1})
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "flat.png")
	err := gltutaux.RenderPNGFile(filename, fs, 32, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("PNG file missing magic bytes")
	}
}
