package glview

import (
	"testing"
)

// fillGradient writes a distinct depth value per pixel so transposition
// mistakes show up.
func fillGradient(ctx *MemContext) {
	for y := 0; y < ctx.Height(); y++ {
		for x := 0; x < ctx.Width(); x++ {
			ctx.SetDepth(x, y, float32(y*ctx.Width()+x)/1000)
		}
	}
}

func TestDepthReadersAgree(t *testing.T) {
	// The public contract: identical content regardless of read path,
	// including non-square surfaces where a width/height mix-up in the
	// column transpose would corrupt the buffer.
	sizes := []struct{ w, h int }{
		{1, 1}, {4, 2}, {2, 4}, {7, 3}, {16, 16},
	}
	for _, size := range sizes {
		ctx := NewMemContext(size.w, size.h)
		fillGradient(ctx)

		block := make([]float32, size.w*size.h)
		if err := (BlockDepthReader{}).ReadDepth(ctx, size.w, size.h, block); err != nil {
			t.Fatalf("%dx%d: block read: %v", size.w, size.h, err)
		}
		column := make([]float32, size.w*size.h)
		if err := (ColumnDepthReader{}).ReadDepth(ctx, size.w, size.h, column); err != nil {
			t.Fatalf("%dx%d: column read: %v", size.w, size.h, err)
		}
		for i := range block {
			if block[i] != column[i] {
				t.Fatalf("%dx%d: readers disagree at sample %d: block %v, column %v",
					size.w, size.h, i, block[i], column[i])
			}
		}
	}
}

func TestBlockReaderMatchesSurface(t *testing.T) {
	ctx := NewMemContext(3, 2)
	ctx.SetDepth(2, 1, 0.25)
	dst := make([]float32, 6)
	if err := (BlockDepthReader{}).ReadDepth(ctx, 3, 2, dst); err != nil {
		t.Fatal(err)
	}
	if dst[1*3+2] != 0.25 {
		t.Errorf("sample (2,1) = %v, want 0.25", dst[1*3+2])
	}
	if dst[0] != 1.0 {
		t.Errorf("untouched sample = %v, want background 1.0", dst[0])
	}
}

func TestReadersRejectShortBuffer(t *testing.T) {
	ctx := NewMemContext(4, 4)
	short := make([]float32, 15)
	if err := (BlockDepthReader{}).ReadDepth(ctx, 4, 4, short); err == nil {
		t.Error("block reader accepted a short buffer")
	}
	if err := (ColumnDepthReader{}).ReadDepth(ctx, 4, 4, short); err == nil {
		t.Error("column reader accepted a short buffer")
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{DepthReaderBlock, DepthReaderColumn} {
		r := DepthReaderByName(name)
		if r == nil {
			t.Fatalf("DepthReaderByName(%q) = nil", name)
		}
		if r.Name() != name {
			t.Errorf("reader %q reports name %q", name, r.Name())
		}
	}
	if DepthReaderByName("no-such-reader") != nil {
		t.Error("unknown name returned a reader")
	}
	if len(AvailableDepthReaders()) < 2 {
		t.Errorf("AvailableDepthReaders() = %v, want at least block and column",
			AvailableDepthReaders())
	}
}

func TestDefaultDepthReaderRegistered(t *testing.T) {
	if DefaultDepthReader() == nil {
		t.Fatal("DefaultDepthReader() = nil")
	}
}

func TestMemContextReadColorOutOfBounds(t *testing.T) {
	ctx := NewMemContext(2, 2)
	if err := ctx.ReadColorBlock(0, 0, 3, 2, make([]byte, 18)); err == nil {
		t.Error("out-of-bounds color read succeeded")
	}
	if err := ctx.ReadDepthBlock(1, 1, 2, 2, make([]float32, 4)); err == nil {
		t.Error("out-of-bounds depth read succeeded")
	}
}
