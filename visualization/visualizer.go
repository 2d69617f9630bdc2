// Package visualization drives an interactive 3D viewer: a render loop
// over registered renderables and the capture pipeline that turns the
// live color and depth buffers into top-down raster images plus camera
// sidecar files reproducing the viewpoint.
package visualization

import (
	"time"

	"github.com/flyaudio/Open3D/visualization/glview"
)

// Renderable draws itself into the current context. Renderables are
// drawn in registration order.
type Renderable interface {
	Render(opt *RenderOption, view *ViewControl) error
}

// Visualizer owns one rendering surface, its camera state, and the
// registered scene content. All methods must be called from the thread
// owning the rendering context; the visualizer performs no locking
// because single-threaded ownership is the invariant.
type Visualizer struct {
	ctx  glview.Context
	view *ViewControl
	opt  RenderOption

	renderables []Renderable
	depthReader glview.DepthReader
	captureDir  string
	now         func() time.Time

	// redrawNeeded is set by scene mutation and cleared exactly after
	// a successful forced render inside a capture.
	redrawNeeded bool
}

// Option configures a Visualizer during creation.
type Option func(*Visualizer)

// WithDepthReader overrides the platform-default depth read strategy.
// Use glview.DepthReaderByName to pick a registered one.
func WithDepthReader(r glview.DepthReader) Option {
	return func(v *Visualizer) { v.depthReader = r }
}

// WithCaptureDir sets the directory that derived capture filenames are
// written into. Explicit filenames are used as given. The default is
// the process working directory.
func WithCaptureDir(dir string) Option {
	return func(v *Visualizer) { v.captureDir = dir }
}

// WithRenderOption replaces the default render settings.
func WithRenderOption(opt RenderOption) Option {
	return func(v *Visualizer) { v.opt = opt }
}

// WithClock overrides the wall clock used for derived capture
// filenames. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Visualizer) { v.now = now }
}

// NewVisualizer creates a visualizer over ctx with the given view
// control. The depth read strategy defaults to the platform default
// from glview.
func NewVisualizer(ctx glview.Context, view *ViewControl, opts ...Option) *Visualizer {
	v := &Visualizer{
		ctx:         ctx,
		view:        view,
		opt:         DefaultRenderOption(),
		depthReader: glview.DefaultDepthReader(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AddRenderable registers r at the end of the draw order and marks the
// scene for redraw.
func (v *Visualizer) AddRenderable(r Renderable) {
	v.renderables = append(v.renderables, r)
	v.redrawNeeded = true
}

// UpdateRender marks the scene content as changed so the next event
// loop iteration redraws it.
func (v *Visualizer) UpdateRender() {
	v.redrawNeeded = true
}

// RedrawNeeded reports whether the scene changed since the last render.
func (v *Visualizer) RedrawNeeded() bool {
	return v.redrawNeeded
}

// ResetViewPoint restores the default viewpoint and marks the scene
// for redraw.
func (v *Visualizer) ResetViewPoint() {
	v.view.Reset()
	v.redrawNeeded = true
}

// ViewControl returns the visualizer's view control.
func (v *Visualizer) ViewControl() *ViewControl {
	return v.view
}

// RenderOption returns a pointer to the active render settings.
func (v *Visualizer) RenderOption() *RenderOption {
	return &v.opt
}
