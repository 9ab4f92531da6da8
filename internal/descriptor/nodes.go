// Package descriptor decodes DEX type descriptors into Java source names.
package descriptor

import (
	"fmt"
	"strings"
)

// NodeKind identifies the type of AST node.
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindPrimitiveType
	NodeKindClassType
	NodeKindArrayType
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() NodeKind
	fmt.Stringer
}

// PrimitiveType is one of the single-character descriptors, void included.
type PrimitiveType struct {
	Code byte
	Name string
}

func (n *PrimitiveType) Kind() NodeKind { return NodeKindPrimitiveType }
func (n *PrimitiveType) String() string { return n.Name }

var primitives = map[byte]string{
	'V': "void",
	'Z': "boolean",
	'B': "byte",
	'S': "short",
	'C': "char",
	'I': "int",
	'J': "long",
	'F': "float",
	'D': "double",
}

// ClassType is an L...; descriptor split at its slashes.
type ClassType struct {
	Components []string
}

func (n *ClassType) Kind() NodeKind { return NodeKindClassType }

func (n *ClassType) String() string {
	return strings.Join(n.Components, ".")
}

// ArrayType is an element type with one or more leading '['.
type ArrayType struct {
	Element    Node
	Dimensions int
}

func (n *ArrayType) Kind() NodeKind { return NodeKindArrayType }

func (n *ArrayType) String() string {
	return n.Element.String() + strings.Repeat("[]", n.Dimensions)
}
