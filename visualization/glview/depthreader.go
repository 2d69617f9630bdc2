package glview

import (
	"fmt"
	"sync"
)

// DepthReader extracts the full depth buffer through a Context. The
// result is identical across implementations: a bottom-up buffer of
// width*height normalized samples. Implementations differ only in how
// they talk to the driver.
type DepthReader interface {
	// Name returns the reader identifier (e.g. "block", "column").
	Name() string

	// ReadDepth fills dst (len width*height) with the bottom-up depth
	// buffer contents.
	ReadDepth(ctx Context, width, height int, dst []float32) error
}

// DepthReaderFactory creates a new depth reader instance.
type DepthReaderFactory func() DepthReader

// Depth reader identifiers.
const (
	// DepthReaderBlock reads the whole buffer in one call.
	DepthReaderBlock = "block"

	// DepthReaderColumn reads one column at a time and transposes.
	DepthReaderColumn = "column"
)

var (
	readerMu sync.RWMutex
	readers  = make(map[string]DepthReaderFactory)
)

func init() {
	RegisterDepthReader(DepthReaderBlock, func() DepthReader { return BlockDepthReader{} })
	RegisterDepthReader(DepthReaderColumn, func() DepthReader { return ColumnDepthReader{} })
}

// RegisterDepthReader registers a depth reader factory under name,
// replacing any previous registration.
func RegisterDepthReader(name string, factory DepthReaderFactory) {
	readerMu.Lock()
	defer readerMu.Unlock()
	readers[name] = factory
}

// DepthReaderByName returns a reader instance by name, or nil if the
// name is not registered.
func DepthReaderByName(name string) DepthReader {
	readerMu.RLock()
	defer readerMu.RUnlock()
	factory, ok := readers[name]
	if !ok {
		return nil
	}
	return factory()
}

// AvailableDepthReaders returns the registered reader names.
func AvailableDepthReaders() []string {
	readerMu.RLock()
	defer readerMu.RUnlock()
	names := make([]string, 0, len(readers))
	for name := range readers {
		names = append(names, name)
	}
	return names
}

// DefaultDepthReader returns the reader for the build platform. The
// choice is fixed at compile time: the column reader where block depth
// reads are known broken, the block reader everywhere else. There is
// no runtime probing; callers that know better configure an explicit
// reader instead.
func DefaultDepthReader() DepthReader {
	return DepthReaderByName(defaultDepthReaderName)
}

// BlockDepthReader reads the whole depth buffer with a single
// full-extent block read. This is the fast path on every platform
// whose driver stretches nothing.
type BlockDepthReader struct{}

// Name implements DepthReader.
func (BlockDepthReader) Name() string { return DepthReaderBlock }

// ReadDepth implements DepthReader.
func (BlockDepthReader) ReadDepth(ctx Context, width, height int, dst []float32) error {
	if len(dst) < width*height {
		return fmt.Errorf("glview: depth buffer is %d samples, want %d", len(dst), width*height)
	}
	return ctx.ReadDepthBlock(0, 0, width, height, dst[:width*height])
}

// ColumnDepthReader reads the depth buffer one single-column block at
// a time and transposes the columns into the 2-D buffer. On macOS with
// a Retina display and GLFW multisampling enabled, block depth reads
// come back horizontally stretched; single-column reads do not. This
// path is 15-30x slower than a block read and is only worth it where
// that defect exists.
type ColumnDepthReader struct{}

// Name implements DepthReader.
func (ColumnDepthReader) Name() string { return DepthReaderColumn }

// ReadDepth implements DepthReader.
func (ColumnDepthReader) ReadDepth(ctx Context, width, height int, dst []float32) error {
	if len(dst) < width*height {
		return fmt.Errorf("glview: depth buffer is %d samples, want %d", len(dst), width*height)
	}
	column := make([]float32, height)
	for j := 0; j < width; j++ {
		if err := ctx.ReadDepthBlock(j, 0, 1, height, column); err != nil {
			return err
		}
		for i := 0; i < height; i++ {
			dst[i*width+j] = column[i]
		}
	}
	return nil
}
