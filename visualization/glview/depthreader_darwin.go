//go:build darwin

package glview

// Block depth reads are horizontally stretched on Retina displays with
// multisampling, so the slow column path is the default here. See
// ColumnDepthReader.
const defaultDepthReaderName = DepthReaderColumn
