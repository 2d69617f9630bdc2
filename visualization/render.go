package visualization

import (
	"fmt"
)

// Render draws one frame: it binds the context, recomputes the view
// and projection matrices from the current camera state, clears color
// and depth to the background color, draws every registered renderable
// in registration order, and presents the frame. The first renderable
// failure aborts the frame and is returned.
func (v *Visualizer) Render() error {
	if err := v.ctx.MakeCurrent(); err != nil {
		return fmt.Errorf("visualization: bind context: %w", err)
	}
	v.view.SetViewMatrices()
	bg := v.opt.BackgroundColor
	v.ctx.Clear(bg[0], bg[1], bg[2], 1)
	for _, r := range v.renderables {
		if err := r.Render(&v.opt, v.view); err != nil {
			return fmt.Errorf("visualization: render: %w", err)
		}
	}
	v.ctx.SwapBuffers()
	return nil
}
