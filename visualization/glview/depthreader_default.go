//go:build !darwin

package glview

// Block depth reads behave on this platform.
const defaultDepthReaderName = DepthReaderBlock
