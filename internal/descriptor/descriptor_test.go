package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJavaName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"V", "void"},
		{"Z", "boolean"},
		{"J", "long"},
		{"LMain;", "Main"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[I", "int[]"},
		{"[[Ljava/lang/Object;", "java.lang.Object[][]"},
		{"Lcom/example/Outer$Inner;", "com.example.Outer$Inner"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := JavaName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJavaNameMalformed(t *testing.T) {
	tests := []struct {
		in   string
		kind error
	}{
		{"", ErrEmptyInput},
		{"Q", ErrUnknownType},
		{"Ljava/lang/String", ErrUnexpectedEnd},
		{"L;", ErrEmptyComponent},
		{"Ljava//String;", ErrEmptyComponent},
		{"[", ErrUnexpectedEnd},
		{"[V", ErrUnknownType},
		{"II", ErrTrailingData},
		{strings.Repeat("[", 256) + "I", ErrTooManyDims},
	}

	for _, tt := range tests {
		got, err := JavaName(tt.in)
		require.ErrorIs(t, err, tt.kind, "input %q", tt.in)
		assert.Equal(t, tt.in, got, "malformed input is returned unchanged")
	}
}

func TestParseClassType(t *testing.T) {
	node, err := Parse("Lcom/example/Main;")
	require.NoError(t, err)
	require.Equal(t, NodeKindClassType, node.Kind())

	ct := node.(*ClassType)
	assert.Equal(t, []string{"com", "example", "Main"}, ct.Components)
	assert.Equal(t, "com.example.Main", ct.String())

	node, err = Parse("LMain;")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main"}, node.(*ClassType).Components)
}

func TestParseArrayType(t *testing.T) {
	node, err := Parse(strings.Repeat("[", 255) + "B")
	require.NoError(t, err)

	at, ok := node.(*ArrayType)
	require.True(t, ok)
	assert.Equal(t, 255, at.Dimensions)
	assert.Equal(t, NodeKindPrimitiveType, at.Element.Kind())
}
