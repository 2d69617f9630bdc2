package glview

// MemContext is an in-memory Context implementation. It backs headless
// use and tests: the color and depth planes live in ordinary slices,
// Clear fills them, and the read-back methods copy sub-blocks with the
// same bottom-up convention as a real context.
type MemContext struct {
	width  int
	height int
	color  []byte    // RGB, bottom-up, tight stride
	depth  []float32 // normalized, bottom-up

	// FinishCalls counts Finish invocations, letting tests assert the
	// synchronization barrier ran before read-back.
	FinishCalls int

	// MakeCurrentErr, when set, is returned from MakeCurrent.
	MakeCurrentErr error
}

// NewMemContext creates an in-memory context with the color plane
// zeroed and the depth plane cleared to the background value 1.0.
func NewMemContext(width, height int) *MemContext {
	c := &MemContext{
		width:  width,
		height: height,
		color:  make([]byte, width*height*3),
		depth:  make([]float32, width*height),
	}
	for i := range c.depth {
		c.depth[i] = 1.0
	}
	return c
}

// Width returns the surface width in pixels.
func (c *MemContext) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *MemContext) Height() int { return c.height }

// SetDepth sets the normalized depth sample at surface position
// (x, y), y counted bottom-up.
func (c *MemContext) SetDepth(x, y int, d float32) {
	c.depth[y*c.width+x] = d
}

// FillDepth sets every depth sample to d.
func (c *MemContext) FillDepth(d float32) {
	for i := range c.depth {
		c.depth[i] = d
	}
}

// SetPixel sets the RGB color at surface position (x, y), y counted
// bottom-up.
func (c *MemContext) SetPixel(x, y int, r, g, b byte) {
	i := (y*c.width + x) * 3
	c.color[i+0] = r
	c.color[i+1] = g
	c.color[i+2] = b
}

// MakeCurrent implements Context.
func (c *MemContext) MakeCurrent() error { return c.MakeCurrentErr }

// SwapBuffers implements Context. It is a no-op for memory surfaces.
func (c *MemContext) SwapBuffers() {}

// Finish implements Context. Memory writes are already complete; it
// only records the call.
func (c *MemContext) Finish() { c.FinishCalls++ }

// Clear implements Context.
func (c *MemContext) Clear(r, g, b, _ float32) {
	for i := 0; i < len(c.color); i += 3 {
		c.color[i+0] = floatByte(r)
		c.color[i+1] = floatByte(g)
		c.color[i+2] = floatByte(b)
	}
	for i := range c.depth {
		c.depth[i] = 1.0
	}
}

// ReadColorBlock implements Context.
func (c *MemContext) ReadColorBlock(x, y, w, h int, dst []byte) error {
	if x < 0 || y < 0 || x+w > c.width || y+h > c.height {
		return ErrReadOutOfBounds
	}
	for row := 0; row < h; row++ {
		src := c.color[((y+row)*c.width+x)*3:]
		copy(dst[row*w*3:(row+1)*w*3], src[:w*3])
	}
	return nil
}

// ReadDepthBlock implements Context.
func (c *MemContext) ReadDepthBlock(x, y, w, h int, dst []float32) error {
	if x < 0 || y < 0 || x+w > c.width || y+h > c.height {
		return ErrReadOutOfBounds
	}
	for row := 0; row < h; row++ {
		src := c.depth[(y+row)*c.width+x:]
		copy(dst[row*w:(row+1)*w], src[:w])
	}
	return nil
}

func floatByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
