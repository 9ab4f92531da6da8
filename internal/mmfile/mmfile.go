// Package mmfile provides platform-specific helpers for memory-mapping DEX
// files read-only.
package mmfile

import "io"

// File is a read-only view of a file's contents.
type File interface {
	io.ReaderAt
	io.Closer

	// Len returns the size of the mapped file in bytes.
	Len() int
}
