// Package imageio persists geometry.Image buffers to disk. The encoder
// is chosen by file extension; the capture pipeline itself never deals
// with codec details.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/flyaudio/Open3D/geometry"
)

// Errors reported by the image writers.
var (
	// ErrUnsupportedFormat is returned for file extensions with no
	// registered encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

	// ErrUnsupportedLayout is returned for channel/byte-depth
	// combinations no encoder can represent.
	ErrUnsupportedLayout = errors.New("imageio: unsupported pixel layout")
)

const jpegQuality = 90

// WriteImage writes img to path, picking the codec from the extension.
// Supported: .png, .jpg/.jpeg, .tif/.tiff. Depth images (1 channel,
// 2 bytes) keep their full 16 bits in PNG and TIFF output.
func WriteImage(path string, img *geometry.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	goImg, err := toGoImage(img)
	if err != nil {
		return err
	}
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
		}
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if err := encode(f, goImg); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	return nil
}

// toGoImage reinterprets the raw buffer as a standard image type.
// Rows are assumed top-down already.
func toGoImage(img *geometry.Image) (image.Image, error) {
	switch {
	case img.NumChannels == 3 && img.BytesPerChannel == 1:
		out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
		stride := img.BytesPerLine()
		for y := 0; y < img.Height; y++ {
			src := img.Data[y*stride:]
			dst := out.Pix[y*out.Stride:]
			for x := 0; x < img.Width; x++ {
				dst[x*4+0] = src[x*3+0]
				dst[x*4+1] = src[x*3+1]
				dst[x*4+2] = src[x*3+2]
				dst[x*4+3] = 0xff
			}
		}
		return out, nil
	case img.NumChannels == 1 && img.BytesPerChannel == 2:
		// Gray16 stores big-endian samples; the buffer is little-endian.
		out := image.NewGray16(image.Rect(0, 0, img.Width, img.Height))
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				v := img.Uint16At(x, y)
				out.Pix[y*out.Stride+x*2+0] = byte(v >> 8)
				out.Pix[y*out.Stride+x*2+1] = byte(v)
			}
		}
		return out, nil
	case img.NumChannels == 1 && img.BytesPerChannel == 1:
		out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
		stride := img.BytesPerLine()
		for y := 0; y < img.Height; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+stride], img.Data[y*stride:])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d channels x %d bytes",
			ErrUnsupportedLayout, img.NumChannels, img.BytesPerChannel)
	}
}
