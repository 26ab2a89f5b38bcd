//go:build !tinygo && cgo

package gleval

import (
	"errors"
	"fmt"

	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW starts a 1x1 sized GLFW window so that user can start working with GPU.
// It returns a termination function that should be called when user is done running loads on GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "compile check",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// ValidateProgram hands generated vertex and fragment snippet sources to the
// driver's shader compiler and reports compile or link failure. It requires
// a current GL context, see [Init1x1GLFW]. The compiled program is discarded;
// resource ownership stays with the caller's pipeline.
func ValidateProgram(vertexSrc, fragmentSrc []byte) error {
	if len(vertexSrc) == 0 || len(fragmentSrc) == 0 {
		return errors.New("empty stage source")
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   string(vertexSrc) + "\x00",
		Fragment: string(fragmentSrc) + "\x00",
	})
	if err != nil {
		return fmt.Errorf("driver rejected program: %s", err)
	}
	prog.Bind()
	prog.Unbind()
	return nil
}
