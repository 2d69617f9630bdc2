// Package geometry provides raster buffer types shared by the capture
// pipeline and the image writers.
package geometry

import (
	"encoding/binary"
	"fmt"
)

// Image is a tightly packed raster buffer. Rows are stored top-down in
// Data with no padding: the stride is always Width * NumChannels *
// BytesPerChannel. Buffers produced by read-back paths that deliver
// rows bottom-up must be passed through FlipVertical before they are
// treated as images.
type Image struct {
	Width           int
	Height          int
	NumChannels     int
	BytesPerChannel int
	Data            []byte
}

// NewImage allocates a zero-filled image buffer with the given
// dimensions and pixel layout. Every element starts at zero; the depth
// capture path relies on this for sentinel pixels that are never
// written.
func NewImage(width, height, numChannels, bytesPerChannel int) *Image {
	return &Image{
		Width:           width,
		Height:          height,
		NumChannels:     numChannels,
		BytesPerChannel: bytesPerChannel,
		Data:            make([]byte, width*height*numChannels*bytesPerChannel),
	}
}

// BytesPerLine returns the row stride in bytes.
func (im *Image) BytesPerLine() int {
	return im.Width * im.NumChannels * im.BytesPerChannel
}

// IsEmpty reports whether the image has no pixel data.
func (im *Image) IsEmpty() bool {
	return len(im.Data) == 0
}

// Validate checks that the buffer length matches the declared
// dimensions and layout.
func (im *Image) Validate() error {
	if im.Width < 0 || im.Height < 0 {
		return fmt.Errorf("geometry: invalid dimensions %dx%d", im.Width, im.Height)
	}
	if im.NumChannels <= 0 || im.BytesPerChannel <= 0 {
		return fmt.Errorf("geometry: invalid pixel layout %d channels x %d bytes",
			im.NumChannels, im.BytesPerChannel)
	}
	if want := im.Height * im.BytesPerLine(); len(im.Data) != want {
		return fmt.Errorf("geometry: buffer is %d bytes, want %d", len(im.Data), want)
	}
	return nil
}

// FlipVertical returns a new image whose row i equals row
// (Height - 1 - i) of the receiver, copied byte-for-byte. It converts
// between the bottom-up read-back order and top-down image order and is
// its own inverse.
func (im *Image) FlipVertical() *Image {
	out := NewImage(im.Width, im.Height, im.NumChannels, im.BytesPerChannel)
	stride := im.BytesPerLine()
	for i := 0; i < im.Height; i++ {
		src := im.Data[stride*(im.Height-1-i) : stride*(im.Height-i)]
		copy(out.Data[stride*i:stride*(i+1)], src)
	}
	return out
}

// SetUint16 writes a little-endian 16-bit sample at pixel (x, y),
// channel 0. The image must have BytesPerChannel == 2.
func (im *Image) SetUint16(x, y int, v uint16) {
	i := im.BytesPerLine()*y + im.NumChannels*im.BytesPerChannel*x
	binary.LittleEndian.PutUint16(im.Data[i:], v)
}

// Uint16At reads the little-endian 16-bit sample at pixel (x, y),
// channel 0.
func (im *Image) Uint16At(x, y int) uint16 {
	i := im.BytesPerLine()*y + im.NumChannels*im.BytesPerChannel*x
	return binary.LittleEndian.Uint16(im.Data[i:])
}
