package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the real Context implementation: a GLFW window with an
// OpenGL core-profile context. The creating goroutine must be locked
// to an OS thread, and all calls must come from it.
type Window struct {
	win    *glfw.Window
	closed bool
}

// NewWindow initializes GLFW, creates a window with an OpenGL 4.1
// core-profile context, and loads the GL functions. A loader failure
// is fatal to the session: the returned error wraps ErrInitFailed and
// the window is destroyed before returning.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %v", ErrInitFailed, err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrInitFailed, err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: load GL functions: %v", ErrInitFailed, err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearDepth(1.0)
	// Tight stride on both transfer directions; the capture pipeline
	// assumes width * channels * bytes-per-channel exactly.
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.Enable(gl.CULL_FACE)
	// Reads target the presented frame.
	gl.ReadBuffer(gl.FRONT)

	return &Window{win: win}, nil
}

// FramebufferSize returns the drawable size in pixels, which differs
// from the requested window size on high-DPI displays. Captures size
// their buffers from this.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose marks the window for closing.
func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

// SetKeyCallback installs fn as the GLFW key callback.
func (w *Window) SetKeyCallback(fn glfw.KeyCallback) { w.win.SetKeyCallback(fn) }

// PollEvents processes pending window events.
func (w *Window) PollEvents() { glfw.PollEvents() }

// MakeCurrent implements Context.
func (w *Window) MakeCurrent() error {
	w.win.MakeContextCurrent()
	return nil
}

// SwapBuffers implements Context.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// Finish implements Context.
func (w *Window) Finish() { gl.Finish() }

// Clear implements Context.
func (w *Window) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadColorBlock implements Context.
func (w *Window) ReadColorBlock(x, y, width, height int, dst []byte) error {
	if len(dst) < width*height*3 {
		return fmt.Errorf("glview: color buffer is %d bytes, want %d", len(dst), width*height*3)
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height),
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	return nil
}

// ReadDepthBlock implements Context.
func (w *Window) ReadDepthBlock(x, y, width, height int, dst []float32) error {
	if len(dst) < width*height {
		return fmt.Errorf("glview: depth buffer is %d samples, want %d", len(dst), width*height)
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height),
		gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(dst))
	return nil
}

// Close destroys the window and terminates GLFW. Close is idempotent.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.win.Destroy()
	glfw.Terminate()
	return nil
}
