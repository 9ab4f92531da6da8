package report

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/skdltmxn/dexinfo-go/dex"
)

// Options controls what the report contains.
type Options struct {
	// Verbose adds every header field, the full class definitions and
	// per-entry field and method details.
	Verbose bool

	// Name is printed as the "Dex file" line when not empty
	Name string

	// MethodValues lists the name of every method id before the classes
	MethodValues bool

	// JavaNames prints class descriptors in verbose class blocks as Java
	// names, "com.example.Main" instead of "Lcom/example/Main;"
	JavaNames bool
}

// Dump writes the complete report for f to sink. Lines written before an
// error stay in the sink.
func Dump(f *dex.File, sink Sink, opts Options) error {
	if opts.Name != "" {
		if err := writeLines(sink, "[] Dex file: "+opts.Name, ""); err != nil {
			return err
		}
	}

	if err := WriteHeader(&f.Header, sink, opts.Verbose); err != nil {
		return err
	}

	if opts.MethodValues {
		if err := WriteMethodValues(f, sink); err != nil {
			return err
		}
	}

	return f.Walk(NewPrinter(f, sink, opts))
}

// WriteHeader writes the header summary followed by the class count.
func WriteHeader(h *dex.Header, sink Sink, verbose bool) error {
	magic := make([]string, len(h.Magic))
	for i, b := range h.Magic {
		magic[i] = fmt.Sprintf("%02X", b)
	}

	lines := []string{
		"[] DEX magic: " + strings.Join(magic, " "),
		"[] DEX version: " + h.Version(),
		fmt.Sprintf("[] Adler32 checksum: 0x%x", h.Checksum),
		"[] SHA1 signature: " + hex.EncodeToString(h.Signature[:]),
	}

	if verbose {
		lines = append(lines,
			fmt.Sprintf("[] File size: %d bytes", h.FileSize),
			fmt.Sprintf("[] DEX Header size: %d bytes (0x%x)", h.HeaderSize, h.HeaderSize),
			fmt.Sprintf("[] Endian Tag: 0x%x", h.EndianTag),
			fmt.Sprintf("[] Link size: %d", h.LinkSize),
			fmt.Sprintf("[] Link offset: 0x%x", h.LinkOff),
			fmt.Sprintf("[] Map list offset: 0x%x", h.MapOff),
			fmt.Sprintf("[] Number of strings in string ID list: %d", h.StringIDsSize),
			fmt.Sprintf("[] String ID list offset: 0x%x", h.StringIDsOff),
			fmt.Sprintf("[] Number of types in the type ID list: %d", h.TypeIDsSize),
			fmt.Sprintf("[] Type ID list offset: 0x%x", h.TypeIDsOff),
			fmt.Sprintf("[] Number of items in the method prototype ID list: %d", h.ProtoIDsSize),
			fmt.Sprintf("[] Method prototype ID list offset: 0x%x", h.ProtoIDsOff),
			fmt.Sprintf("[] Number of item in the field ID list: %d", h.FieldIDsSize),
			fmt.Sprintf("[] Field ID list offset: 0x%x", h.FieldIDsOff),
			fmt.Sprintf("[] Number of items in the method ID list: %d", h.MethodIDsSize),
			fmt.Sprintf("[] Method ID list offset: 0x%x", h.MethodIDsOff),
			fmt.Sprintf("[] Number of items in the class definitions list: %d", h.ClassDefsSize),
			fmt.Sprintf("[] Class definitions list offset: 0x%x", h.ClassDefsOff),
			fmt.Sprintf("[] Data section size: %d bytes", h.DataSize),
			fmt.Sprintf("[] Data section offset: 0x%x", h.DataOff),
		)
	}

	lines = append(lines, "", fmt.Sprintf("[] Number of classes in the archive: %d", h.ClassDefsSize))
	return writeLines(sink, lines...)
}

// WriteMethodValues writes one "MethodVal" line per method id. A name
// index of 0 is printed as none.
func WriteMethodValues(f *dex.File, sink Sink) error {
	for _, id := range f.MethodIDs {
		name := "none"
		if id.NameIdx != 0 {
			var err error
			if name, err = f.ResolveString(id.NameIdx); err != nil {
				return err
			}
		}
		if err := sink.WriteLine("MethodVal " + name); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(sink Sink, lines ...string) error {
	for _, l := range lines {
		if err := sink.WriteLine(l); err != nil {
			return err
		}
	}
	return nil
}
