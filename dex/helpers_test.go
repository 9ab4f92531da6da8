package dex

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBytes(t *testing.T, img []byte) *File {
	t.Helper()
	f, err := New(bytes.NewReader(img), Options{})
	require.NoError(t, err)
	return f
}

// recorder turns the walk into a flat list of events.
type recorder struct {
	events  []string
	classes []Class
	fields  []Field
	methods []Method
}

func (r *recorder) BeginClass(c *Class) error {
	r.events = append(r.events, fmt.Sprintf("class %d %s", c.Index, c.Name.Or("none")))
	return nil
}

func (r *recorder) Counts(c *Class) error {
	h := c.Data
	r.events = append(r.events, fmt.Sprintf("counts %d %d %d %d",
		h.StaticFieldsSize, h.InstanceFieldsSize, h.DirectMethodsSize, h.VirtualMethodsSize))
	return nil
}

func (r *recorder) BeginList(_ *Class, k ListKind, n uint32) error {
	r.events = append(r.events, fmt.Sprintf("%s %d", k, n))
	return nil
}

func (r *recorder) Field(_ *Class, f *Field) error {
	r.fields = append(r.fields, *f)
	r.events = append(r.events, fmt.Sprintf("field %d", f.Index))
	return nil
}

func (r *recorder) Method(_ *Class, m *Method) error {
	r.methods = append(r.methods, *m)
	r.events = append(r.events, fmt.Sprintf("method %d %s", m.Index, m.Name))
	return nil
}

func (r *recorder) EndClass(c *Class) error {
	r.classes = append(r.classes, *c)
	r.events = append(r.events, fmt.Sprintf("end %d", c.Index))
	return nil
}
