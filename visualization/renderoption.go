package visualization

// RenderOption carries per-viewer rendering settings consulted by the
// render loop and by registered renderables.
type RenderOption struct {
	// BackgroundColor is the RGB clear color, components in [0, 1].
	BackgroundColor [3]float32

	// PointSize is the point primitive size used by point renderables.
	PointSize float32

	// ShowCoordinateFrame toggles the world axes renderable in viewers
	// that register one.
	ShowCoordinateFrame bool
}

// DefaultRenderOption returns the standard white-background settings.
func DefaultRenderOption() RenderOption {
	return RenderOption{
		BackgroundColor: [3]float32{1, 1, 1},
		PointSize:       5,
	}
}
