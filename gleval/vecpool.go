package gleval

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms2"
)

// VecPool serves as a pool of Vec4, Vec2 and float32 buffers for reuse
// across stage evaluations. Buffers are not concurrency safe.
type VecPool struct {
	Float bufPool[float32]
	V2    bufPool[ms2.Vec]
	V4    bufPool[mgl32.Vec4]
}

// ReleaseAll marks every buffer of every pool as free. It returns an error
// if no buffers were being used.
func (vp *VecPool) ReleaseAll() error {
	freed := vp.Float.releaseAll() + vp.V2.releaseAll() + vp.V4.releaseAll()
	if freed == 0 {
		return errors.New("release all called with no buffers in use")
	}
	return nil
}

type bufPool[T any] struct {
	buffers  [][]T
	acquired []bool
}

// Acquire returns a buffer of at least minLen length, allocating a new one
// if all pooled buffers are in use or too small. Call Release when done.
func (p *bufPool[T]) Acquire(minLen int) []T {
	for i, buf := range p.buffers {
		if !p.acquired[i] && cap(buf) >= minLen {
			p.acquired[i] = true
			return buf[:minLen]
		}
	}
	buf := make([]T, minLen)
	p.buffers = append(p.buffers, buf)
	p.acquired = append(p.acquired, true)
	return buf
}

// Release returns a buffer acquired with [bufPool.Acquire] to the pool.
func (p *bufPool[T]) Release(buf []T) error {
	if cap(buf) == 0 {
		return errors.New("release of empty buffer")
	}
	for i, existing := range p.buffers {
		if cap(existing) > 0 && &existing[:1][0] == &buf[:1][0] {
			if !p.acquired[i] {
				return errors.New("release of unacquired buffer")
			}
			p.acquired[i] = false
			return nil
		}
	}
	return errors.New("buffer does not belong to pool")
}

func (p *bufPool[T]) releaseAll() (freed int) {
	for i := range p.acquired {
		if p.acquired[i] {
			freed++
		}
		p.acquired[i] = false
	}
	return freed
}
