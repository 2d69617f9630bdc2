package imageio

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/flyaudio/Open3D/geometry"
)

func TestWriteImageRGBPNG(t *testing.T) {
	img := geometry.NewImage(2, 2, 3, 1)
	copy(img.Data, []byte{
		255, 0, 0, 0, 255, 0, // row 0: red, green
		0, 0, 255, 255, 255, 255, // row 1: blue, white
	})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WriteImage(path, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("pixel (0,0) = (%d,%d,%d), want red", r, g, b)
	}
	r, g, b, _ = decoded.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("pixel (1,1) = (%d,%d,%d), want white", r, g, b)
	}
}

func TestWriteImageGray16PNGKeepsFullRange(t *testing.T) {
	img := geometry.NewImage(2, 1, 1, 2)
	img.SetUint16(0, 0, 1980)
	img.SetUint16(1, 0, 32767)
	path := filepath.Join(t.TempDir(), "depth.png")
	if err := WriteImage(path, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	gray, ok := decoded.(*image.Gray16)
	if !ok {
		t.Fatalf("decoded type %T, want *image.Gray16", decoded)
	}
	if got := gray.Gray16At(0, 0).Y; got != 1980 {
		t.Errorf("pixel (0,0) = %d, want 1980", got)
	}
	if got := gray.Gray16At(1, 0).Y; got != 32767 {
		t.Errorf("pixel (1,0) = %d, want 32767", got)
	}
}

func TestWriteImageTIFFGray16(t *testing.T) {
	img := geometry.NewImage(3, 2, 1, 2)
	img.SetUint16(2, 1, 4096)
	path := filepath.Join(t.TempDir(), "depth.tif")
	if err := WriteImage(path, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	r, _, _, _ := decoded.At(2, 1).RGBA()
	if r != 4096 {
		t.Errorf("pixel (2,1) = %d, want 4096", r)
	}
}

func TestWriteImageJPEG(t *testing.T) {
	img := geometry.NewImage(4, 4, 3, 1)
	for i := range img.Data {
		img.Data[i] = 128
	}
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := WriteImage(path, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("stat = %v, %v; want non-empty file", fi, err)
	}
}

func TestWriteImageUnsupportedExtension(t *testing.T) {
	img := geometry.NewImage(1, 1, 3, 1)
	err := WriteImage(filepath.Join(t.TempDir(), "out.bmp"), img)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWriteImageUnsupportedLayout(t *testing.T) {
	img := geometry.NewImage(1, 1, 1, 4)
	err := WriteImage(filepath.Join(t.TempDir(), "out.png"), img)
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("err = %v, want ErrUnsupportedLayout", err)
	}
}

func TestWriteImagePropagatesIOError(t *testing.T) {
	img := geometry.NewImage(1, 1, 3, 1)
	err := WriteImage(filepath.Join(t.TempDir(), "missing", "out.png"), img)
	if err == nil {
		t.Fatal("WriteImage into missing directory succeeded")
	}
}
