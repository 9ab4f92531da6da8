package descriptor

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrEmptyInput     = errors.New("descriptor: empty input")
	ErrUnexpectedEnd  = errors.New("descriptor: unexpected end of input")
	ErrUnknownType    = errors.New("descriptor: unknown type")
	ErrEmptyComponent = errors.New("descriptor: empty class name component")
	ErrTooManyDims    = errors.New("descriptor: too many array dimensions")
	ErrTrailingData   = errors.New("descriptor: trailing data")
)

// MaxArrayDimensions is the deepest array a descriptor may describe
const MaxArrayDimensions = 255

// JavaName converts a type descriptor to its Java source form, for example
// "[Ljava/lang/String;" to "java.lang.String[]". If the descriptor is
// malformed it is returned unchanged along with the error.
func JavaName(desc string) (string, error) {
	node, err := Parse(desc)
	if err != nil {
		return desc, err
	}
	return node.String(), nil
}

// Parse parses a single type descriptor and returns the AST.
func Parse(desc string) (Node, error) {
	if len(desc) == 0 {
		return nil, ErrEmptyInput
	}

	p := &parser{input: desc}
	node, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w at %d", ErrTrailingData, p.pos)
	}
	return node, nil
}

// parser holds parser state.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseType() (Node, error) {
	if p.pos >= len(p.input) {
		return nil, ErrUnexpectedEnd
	}

	c := p.peek()
	switch c {
	case '[':
		return p.parseArrayType()
	case 'L':
		return p.parseClassType()
	}

	name, ok := primitives[c]
	if !ok {
		return nil, fmt.Errorf("%w %q at %d", ErrUnknownType, c, p.pos)
	}
	p.consume()
	return &PrimitiveType{Code: c, Name: name}, nil
}

func (p *parser) parseArrayType() (Node, error) {
	dims := 0
	for p.peek() == '[' {
		p.consume()
		dims++
	}
	if dims > MaxArrayDimensions {
		return nil, fmt.Errorf("%w: %d", ErrTooManyDims, dims)
	}

	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	// Arrays of void do not exist
	if prim, ok := elem.(*PrimitiveType); ok && prim.Code == 'V' {
		return nil, fmt.Errorf("%w: array of void", ErrUnknownType)
	}
	return &ArrayType{Element: elem, Dimensions: dims}, nil
}

func (p *parser) parseClassType() (Node, error) {
	// Skip 'L'
	p.consume()

	var components []string
	start := p.pos
	for {
		if p.pos >= len(p.input) {
			return nil, ErrUnexpectedEnd
		}

		switch p.consume() {
		case '/', ';':
			if p.pos-1 == start {
				return nil, fmt.Errorf("%w at %d", ErrEmptyComponent, start)
			}
			components = append(components, p.input[start:p.pos-1])
			if p.input[p.pos-1] == ';' {
				return &ClassType{Components: components}, nil
			}
			start = p.pos
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) consume() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	c := p.input[p.pos]
	p.pos++
	return c
}
