package report

import (
	"fmt"
	"strings"

	"github.com/skdltmxn/dexinfo-go/dex"
	"github.com/skdltmxn/dexinfo-go/internal/descriptor"
)

// Printer is a dex.Visitor that writes each class to a Sink as it is
// walked.
type Printer struct {
	f         *dex.File
	sink      Sink
	verbose   bool
	javaNames bool
}

// NewPrinter creates a Printer for classes of f. Name and MethodValues in
// opts are ignored.
func NewPrinter(f *dex.File, sink Sink, opts Options) *Printer {
	return &Printer{f: f, sink: sink, verbose: opts.Verbose, javaNames: opts.JavaNames}
}

// typeName renders a descriptor, leaving it as is when it does not parse.
func (p *Printer) typeName(desc string) string {
	if !p.javaNames {
		return desc
	}
	name, _ := descriptor.JavaName(desc)
	return name
}

func (p *Printer) printf(format string, args ...any) error {
	return p.sink.WriteLine(fmt.Sprintf(format, args...))
}

// flagSuffix renders flag names the way the access flag columns expect
// them: each name padded by one space on both sides.
func flagSuffix(f dex.AccessFlags) string {
	var sb strings.Builder
	for _, name := range f.Names() {
		sb.WriteString(" " + name + " ")
	}
	return sb.String()
}

func (p *Printer) BeginClass(c *dex.Class) error {
	line := fmt.Sprintf("[] Class %d ", c.Index+1)
	switch c.Def.SourceFileIdx {
	case dex.NoIndex:
		line += "(No index):"
	case 0:
		line += "none"
	default:
		line += "(" + c.SourceFile.Value + ")"
	}
	if err := p.sink.WriteLine(line); err != nil {
		return err
	}

	if !p.verbose {
		return nil
	}

	def := &c.Def
	className := "none"
	if c.Name.Valid {
		className = p.typeName(c.Name.Value)
	}
	superName := "none"
	if def.SuperclassIdx != 0 {
		desc, err := p.f.ResolveTypeName(def.SuperclassIdx)
		if err != nil {
			return err
		}
		superName = p.typeName(desc)
	}

	lines := []string{
		fmt.Sprintf("\tclass_idx='0x%x':%s", def.ClassIdx, className),
		fmt.Sprintf("\taccess_flags='0x%x':%s", uint32(def.AccessFlags), flagSuffix(def.AccessFlags)),
		fmt.Sprintf("\tsuperclass_idx='0x%x':%s", def.SuperclassIdx, superName),
		fmt.Sprintf("\tinterfaces_off='0x%x'", def.InterfacesOff),
		fmt.Sprintf("\tsource_file_idx='0x%x'", def.SourceFileIdx),
	}
	if def.SourceFileIdx != dex.NoIndex {
		lines = append(lines, "\t"+c.SourceFile.Or("none"))
	}
	lines = append(lines,
		fmt.Sprintf("\tannotations_off=0x%x", def.AnnotationsOff),
		fmt.Sprintf("\tclass_data_off=0x%x (%d)", def.ClassDataOff, def.ClassDataOff),
		fmt.Sprintf("\tstatic_values_off=0x%x (%d)", def.StaticValuesOff, def.StaticValuesOff),
	)
	return writeLines(p.sink, lines...)
}

func (p *Printer) Counts(c *dex.Class) error {
	if p.verbose {
		return nil
	}
	return p.printf("%d direct methods, %d virtual methods",
		c.Data.DirectMethodsSize, c.Data.VirtualMethodsSize)
}

func (p *Printer) BeginList(_ *dex.Class, kind dex.ListKind, count uint32) error {
	if !p.verbose {
		return nil
	}
	return p.printf("\t%d %s", count, kind)
}

func (p *Printer) Field(_ *dex.Class, f *dex.Field) error {
	if !p.verbose {
		return nil
	}

	sep := ""
	if f.Kind == dex.InstanceFields {
		sep = " :"
	}
	return writeLines(p.sink,
		fmt.Sprintf("\t\t[%d]|--field_idx_diff='0x%x'", f.Pos, f.IndexDiff),
		fmt.Sprintf("\t\t    |--field_access_flags='0x%x'%s%s", uint32(f.AccessFlags), sep, flagSuffix(f.AccessFlags)),
	)
}

func (p *Printer) Method(_ *dex.Class, m *dex.Method) error {
	label := "direct method"
	if m.Kind == dex.VirtualMethods {
		label = "virtual method"
	}
	if err := p.printf("\t%s %d = %s", label, m.Pos+1, m.Name); err != nil {
		return err
	}

	if !p.verbose {
		return nil
	}
	return writeLines(p.sink,
		fmt.Sprintf("\t\tmethod_code_off=0x%x", m.CodeOff),
		fmt.Sprintf("\t\tmethod_access_flags='0x%x'%s", uint32(m.AccessFlags), flagSuffix(m.AccessFlags)),
		fmt.Sprintf("\t\tclass_idx='0x%x'", m.ID.ClassIdx),
		fmt.Sprintf("\t\tproto_idx=0x%x", m.ID.ProtoIdx),
	)
}

func (p *Printer) EndClass(*dex.Class) error { return nil }
