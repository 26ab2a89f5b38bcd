//go:build tinygo || !cgo

package gleval

import "errors"

var errNoCGO = errors.New("GPU program validation requires CGo and is not supported on TinyGo")

// Init1x1GLFW starts a 1x1 sized GLFW window so that user can start working with GPU.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

// ValidateProgram hands generated vertex and fragment snippet sources to the
// driver's shader compiler and reports compile or link failure.
func ValidateProgram(vertexSrc, fragmentSrc []byte) error {
	return errNoCGO
}
