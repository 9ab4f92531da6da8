package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/dexinfo-go/dex"
	"github.com/skdltmxn/dexinfo-go/dex/dextest"
)

func openBuilder(t *testing.T, b *dextest.Builder) *dex.File {
	t.Helper()
	f, err := dex.New(bytes.NewReader(b.Bytes()), dex.Options{})
	require.NoError(t, err)
	return f
}

func TestDumpBrief(t *testing.T) {
	f := openBuilder(t, dextest.Minimal())

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{}))

	lines := buf.Lines()
	assert.Equal(t, "[] DEX magic: 64 65 78 0A 30 33 35 00", lines[0])
	assert.Equal(t, "[] DEX version: 035", lines[1])
	assert.Equal(t, fmt.Sprintf("[] Adler32 checksum: 0x%x", f.Header.Checksum), lines[2])
	assert.Len(t, strings.TrimPrefix(lines[3], "[] SHA1 signature: "), 40)

	assert.Equal(t, []string{
		"",
		"[] Number of classes in the archive: 1",
		"[] Class 1 (No index):",
		"1 direct methods, 0 virtual methods",
		"\tdirect method 1 = Main",
	}, lines[4:])
}

func TestDumpName(t *testing.T) {
	f := openBuilder(t, dextest.Minimal())

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{Name: "classes.dex"}))
	assert.Equal(t, []string{"[] Dex file: classes.dex", ""}, buf.Lines()[:2])
}

func verboseBuilder() *dextest.Builder {
	return &dextest.Builder{
		Strings: []string{"LBase;", "LMain;", "Main.java", "<init>", "run"},
		Types:   []uint32{0, 1},
		Methods: []dextest.MethodID{
			{ClassIdx: 1, ProtoIdx: 0, NameIdx: 3},
			{ClassIdx: 1, ProtoIdx: 2, NameIdx: 4},
		},
		Classes: []dextest.Class{
			{
				ClassIdx:      1,
				AccessFlags:   uint32(dex.AccPublic | dex.AccFinal),
				SuperclassIdx: 0,
				SourceFileIdx: 2,
				Data: &dextest.ClassData{
					StaticFields:   []dextest.EncodedField{{IdxDiff: 4, AccessFlags: 0x8}},
					InstanceFields: []dextest.EncodedField{{IdxDiff: 1, AccessFlags: 0x2}},
					DirectMethods:  []dextest.EncodedMethod{{IdxDiff: 0, AccessFlags: 0x10001, CodeOff: 0x120}},
					VirtualMethods: []dextest.EncodedMethod{{IdxDiff: 1, AccessFlags: 0x1, CodeOff: 0x140}},
				},
			},
			{ClassIdx: 0, SuperclassIdx: 0, SourceFileIdx: 0},
		},
	}
}

func TestDumpBriefClasses(t *testing.T) {
	f := openBuilder(t, verboseBuilder())

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{}))

	out := buf.String()
	assert.Contains(t, out, "[] Class 1 (Main.java)\n"+
		"1 direct methods, 1 virtual methods\n"+
		"\tdirect method 1 = <init>\n"+
		"\tvirtual method 1 = run\n")
	assert.True(t, strings.HasSuffix(out, "[] Class 2 none\n0 direct methods, 0 virtual methods\n"))
	assert.NotContains(t, out, "field_idx_diff")
}

func TestDumpVerbose(t *testing.T) {
	b := verboseBuilder()
	_, layout := b.Build()
	f := openBuilder(t, b)

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{Verbose: true}))
	out := buf.String()

	assert.Contains(t, out, fmt.Sprintf("[] Map list offset: 0x%x\n", layout.MapOff))
	assert.Contains(t, out, "[] DEX Header size: 112 bytes (0x70)\n")
	assert.Contains(t, out, "[] Endian Tag: 0x12345678\n")
	assert.NotContains(t, out, "direct methods, ")

	dataOff := layout.ClassDataOff[0]
	assert.Contains(t, out, "[] Class 1 (Main.java)\n"+
		"\tclass_idx='0x1':LMain;\n"+
		"\taccess_flags='0x11': public  final \n"+
		"\tsuperclass_idx='0x0':none\n"+
		"\tinterfaces_off='0x0'\n"+
		"\tsource_file_idx='0x2'\n"+
		"\tMain.java\n"+
		"\tannotations_off=0x0\n"+
		fmt.Sprintf("\tclass_data_off=0x%x (%d)\n", dataOff, dataOff)+
		"\tstatic_values_off=0x0 (0)\n"+
		"\t1 static fields\n"+
		"\t\t[0]|--field_idx_diff='0x4'\n"+
		"\t\t    |--field_access_flags='0x8' static \n"+
		"\t1 instance fields\n"+
		"\t\t[0]|--field_idx_diff='0x1'\n"+
		"\t\t    |--field_access_flags='0x2' : private \n"+
		"\t1 direct methods\n"+
		"\tdirect method 1 = <init>\n"+
		"\t\tmethod_code_off=0x120\n"+
		"\t\tmethod_access_flags='0x10001' public  constructor \n"+
		"\t\tclass_idx='0x1'\n"+
		"\t\tproto_idx=0x0\n"+
		"\t1 virtual methods\n"+
		"\tvirtual method 1 = run\n"+
		"\t\tmethod_code_off=0x140\n"+
		"\t\tmethod_access_flags='0x1' public \n"+
		"\t\tclass_idx='0x1'\n"+
		"\t\tproto_idx=0x2\n")

	assert.True(t, strings.HasSuffix(out, "[] Class 2 none\n"+
		"\tclass_idx='0x0':none\n"+
		"\taccess_flags='0x0':\n"+
		"\tsuperclass_idx='0x0':none\n"+
		"\tinterfaces_off='0x0'\n"+
		"\tsource_file_idx='0x0'\n"+
		"\tnone\n"+
		"\tannotations_off=0x0\n"+
		"\tclass_data_off=0x0 (0)\n"+
		"\tstatic_values_off=0x0 (0)\n"+
		"\t0 static fields\n"+
		"\t0 instance fields\n"+
		"\t0 direct methods\n"+
		"\t0 virtual methods\n"), out)
}

func TestDumpVerboseResolvesSuperclass(t *testing.T) {
	b := verboseBuilder()
	b.Classes[0].SuperclassIdx = 0
	b.Classes[1].ClassIdx = 0
	b.Classes[1].SuperclassIdx = 1
	f := openBuilder(t, b)

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{Verbose: true}))
	assert.Contains(t, buf.String(), "\tsuperclass_idx='0x1':LMain;\n")
}

func TestDumpMethodValues(t *testing.T) {
	b := verboseBuilder()
	b.Methods = append(b.Methods, dextest.MethodID{NameIdx: 0})
	f := openBuilder(t, b)

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{MethodValues: true}))

	lines := buf.Lines()
	i := 0
	for ; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "[] Number of classes") {
			break
		}
	}
	require.Less(t, i+3, len(lines))
	assert.Equal(t, []string{"MethodVal <init>", "MethodVal run", "MethodVal none"}, lines[i+1:i+4])
}

func TestDumpKeepsPartialOutput(t *testing.T) {
	b := dextest.Minimal()
	b.Classes = append(b.Classes, dextest.Class{
		SourceFileIdx: dextest.NoIndex,
		Data: &dextest.ClassData{
			VirtualMethods: []dextest.EncodedMethod{{IdxDiff: 7}},
		},
	})
	f := openBuilder(t, b)

	var buf Buffer
	err := Dump(f, &buf, Options{})
	require.ErrorIs(t, err, dex.ErrIndexOutOfRange)

	out := buf.String()
	assert.Contains(t, out, "\tdirect method 1 = Main\n")
	assert.True(t, strings.HasSuffix(out, "[] Class 2 (No index):\n0 direct methods, 1 virtual methods\n"))
}

type failingSink struct{ after int }

func (s *failingSink) WriteLine(string) error {
	if s.after == 0 {
		return errors.New("sink full")
	}
	s.after--
	return nil
}

func TestDumpStopsOnSinkError(t *testing.T) {
	f := openBuilder(t, dextest.Minimal())
	err := Dump(f, &failingSink{after: 7}, Options{})
	require.EqualError(t, err, "sink full")
}

func TestWriterSink(t *testing.T) {
	var out bytes.Buffer
	s := NewWriterSink(&out)
	require.NoError(t, s.WriteLine("one"))
	require.NoError(t, s.WriteLine(""))
	require.NoError(t, s.WriteLine("three"))
	require.NoError(t, s.Flush())
	assert.Equal(t, "one\n\nthree\n", out.String())
}

func TestBuffer(t *testing.T) {
	var b Buffer
	assert.Empty(t, b.String())
	require.NoError(t, b.WriteLine("a"))
	require.NoError(t, b.WriteLine("b"))
	assert.Equal(t, []string{"a", "b"}, b.Lines())
	assert.Equal(t, "a\nb\n", b.String())
}

func TestDumpVerboseJavaNames(t *testing.T) {
	b := verboseBuilder()
	b.Strings[0] = "Ljava/lang/Object;"
	b.Strings[1] = "Lcom/example/Main;"
	// Type 0 is "none" as a superclass, so add a second type for Object
	b.Types = append(b.Types, 0)
	b.Classes[1].ClassIdx = 1
	b.Classes[1].SuperclassIdx = 2
	f := openBuilder(t, b)

	var buf Buffer
	require.NoError(t, Dump(f, &buf, Options{Verbose: true, JavaNames: true}))
	out := buf.String()
	assert.Contains(t, out, "\tclass_idx='0x1':com.example.Main\n")
	assert.Contains(t, out, "\tsuperclass_idx='0x2':java.lang.Object\n")
	assert.NotContains(t, out, "Lcom/example/Main;")
}
