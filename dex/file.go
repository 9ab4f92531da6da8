// Package dex decodes the structure of Dalvik Executable files: the header,
// the string, type and method id tables, and the class definitions with
// their field and method lists.
//
// Decoding is read-only and sequential. A File owns its byte source for its
// whole lifetime and is not safe for concurrent use.
package dex

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	arc "github.com/hashicorp/golang-lru/arc/v2"

	"github.com/skdltmxn/dexinfo-go/source"
)

// DefaultStringCacheSize is the number of resolved strings kept per File
const DefaultStringCacheSize = 1024

// Options configures how a File is opened.
type Options struct {
	// Logger receives debug entries and non-fatal diagnostics.
	// Nil discards them.
	Logger log.Interface

	// StringCacheSize bounds the resolved-string cache. Zero selects
	// DefaultStringCacheSize.
	StringCacheSize int
}

// File is an opened DEX file with its id tables loaded.
type File struct {
	Header    Header
	StringIDs []StringID
	TypeIDs   []TypeID
	MethodIDs []MethodID

	src    io.ReadSeeker
	size   int64
	closer io.Closer // may be nil if src doesn't need closing
	log    log.Interface

	strings *arc.ARCCache[uint32, string]
	diags   []error
}

// Open maps the DEX file at path and loads its header and id tables.
func Open(path string, opts Options) (*File, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dex: failed to open file: %w", err)
	}

	f, err := New(src, opts)
	if err != nil {
		src.Close()
		return nil, err
	}

	f.closer = src
	return f, nil
}

// New reads a DEX file from src. The caller keeps ownership of src and must
// not use it while the File is in use.
func New(src io.ReadSeeker, opts Options) (*File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = &log.Logger{Handler: discard.Default, Level: log.InfoLevel}
	}

	cacheSize := opts.StringCacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultStringCacheSize
	}
	cache, err := arc.NewARC[uint32, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("dex: failed to create string cache: %w", err)
	}

	size, err := source.Size(src)
	if err != nil {
		return nil, &IOError{Op: "seek", Offset: 0, Err: err}
	}

	h, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}

	f := &File{
		Header:  *h,
		src:     src,
		size:    size,
		log:     logger,
		strings: cache,
	}

	for _, d := range h.Diagnostics() {
		f.diags = append(f.diags, d)
		logger.WithField("version", h.Version()).Warn(d.Error())
	}

	logger.WithFields(log.Fields{
		"size":      size,
		"file_size": h.FileSize,
		"classes":   h.ClassDefsSize,
	}).Debug("read header")

	if err := f.loadTables(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) loadTables() error {
	h := &f.Header
	var err error

	f.StringIDs, err = LoadTable[StringID](f.src, f.size, h.StringIDsOff, h.StringIDsSize, "string_ids")
	if err != nil {
		return err
	}
	f.logTable("string_ids", h.StringIDsOff, len(f.StringIDs))

	f.TypeIDs, err = LoadTable[TypeID](f.src, f.size, h.TypeIDsOff, h.TypeIDsSize, "type_ids")
	if err != nil {
		return err
	}
	f.logTable("type_ids", h.TypeIDsOff, len(f.TypeIDs))

	f.MethodIDs, err = LoadTable[MethodID](f.src, f.size, h.MethodIDsOff, h.MethodIDsSize, "method_ids")
	if err != nil {
		return err
	}
	f.logTable("method_ids", h.MethodIDsOff, len(f.MethodIDs))

	return nil
}

func (f *File) logTable(name string, off uint32, count int) {
	f.log.WithFields(log.Fields{
		"table":  name,
		"offset": fmt.Sprintf("0x%x", off),
		"count":  count,
	}).Debug("loaded table")
}

// Close releases the byte source if the File opened it.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Size returns the length of the byte source.
func (f *File) Size() int64 {
	return f.size
}

// Diagnostics returns the non-fatal problems found while opening.
func (f *File) Diagnostics() []error {
	return f.diags
}
