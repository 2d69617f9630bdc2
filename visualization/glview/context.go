// Package glview abstracts the rendering surface and its read-back
// paths behind an explicit context handle, so capture logic never
// touches ambient global GL state and can run against an in-memory
// fake in tests.
package glview

import "errors"

// Common context errors.
var (
	// ErrInitFailed is returned when the OpenGL function loader cannot
	// be initialized. This is fatal to the viewer session.
	ErrInitFailed = errors.New("glview: context initialization failed")

	// ErrReadOutOfBounds is returned when a read-back request exceeds
	// the surface extent.
	ErrReadOutOfBounds = errors.New("glview: read region out of bounds")
)

// Context is the rendering surface handle the render loop and capture
// pipeline operate on. Implementations are not safe for concurrent
// use; all calls must come from the thread owning the underlying
// context.
//
// Read-back buffers are filled bottom-up, row 0 being the bottom of
// the surface, with a tight stride and no padding.
type Context interface {
	// MakeCurrent binds the context to the calling thread.
	MakeCurrent() error

	// SwapBuffers presents the rendered frame.
	SwapBuffers()

	// Finish blocks until every previously submitted drawing command
	// has completed. Captures call this before any read-back so they
	// never observe stale or partially rendered pixels.
	Finish()

	// Clear fills the color target with the given color and resets the
	// depth target to the far-plane value.
	Clear(r, g, b, a float32)

	// ReadColorBlock reads a w x h block of the color buffer at
	// (x, y) as tightly packed bottom-up RGB bytes into dst, which
	// must hold w*h*3 bytes.
	ReadColorBlock(x, y, w, h int, dst []byte) error

	// ReadDepthBlock reads a w x h block of the depth buffer at
	// (x, y) as bottom-up normalized float32 samples into dst, which
	// must hold w*h values. Background pixels read exactly 1.0.
	ReadDepthBlock(x, y, w, h int, dst []float32) error
}
