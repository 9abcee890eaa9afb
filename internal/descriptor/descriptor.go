// Package descriptor decodes JVM field and method descriptors into
// source-level type names.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Errors
var (
	ErrEmptyInput        = errors.New("descriptor: empty input")
	ErrUnexpectedEnd     = errors.New("descriptor: unexpected end of input")
	ErrUnknownBaseType   = errors.New("descriptor: unknown base type")
	ErrInvalidDescriptor = errors.New("descriptor: invalid descriptor")
)

// maxArrayDims is the JVM limit on array dimensions.
const maxArrayDims = 255

// Type is a decoded descriptor type: a dotted class or primitive name plus
// the number of array dimensions.
type Type struct {
	Name string
	Dims int
}

func (t Type) String() string {
	if t.Dims == 0 {
		return t.Name
	}
	return t.Name + strings.Repeat("[]", t.Dims)
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseField decodes a field descriptor such as "[Ljava/lang/String;".
func ParseField(desc string) (Type, error) {
	if desc == "" {
		return Type{}, ErrEmptyInput
	}
	p := parser{s: desc}
	t, err := p.fieldType()
	if err != nil {
		return Type{}, err
	}
	if p.pos != len(desc) {
		return Type{}, ErrInvalidDescriptor
	}
	return t, nil
}

// ParseMethod decodes a method descriptor such as "(IJ)Ljava/lang/String;".
// A void return type is reported as Type{Name: "void"}.
func ParseMethod(desc string) (params []Type, ret Type, err error) {
	if desc == "" {
		return nil, Type{}, ErrEmptyInput
	}
	p := parser{s: desc}
	if !p.consume('(') {
		return nil, Type{}, ErrInvalidDescriptor
	}
	for {
		if p.pos >= len(p.s) {
			return nil, Type{}, ErrUnexpectedEnd
		}
		if p.consume(')') {
			break
		}
		t, err := p.fieldType()
		if err != nil {
			return nil, Type{}, err
		}
		params = append(params, t)
	}

	if p.consume('V') {
		ret = Type{Name: "void"}
	} else {
		ret, err = p.fieldType()
		if err != nil {
			return nil, Type{}, err
		}
	}
	if p.pos != len(p.s) {
		return nil, Type{}, ErrInvalidDescriptor
	}
	return params, ret, nil
}

// ParseMethodPartial decodes a method descriptor as far as it can. A
// parameter or return type that fails to decode becomes the zero Type while
// the remaining slots are still decoded, so the parameter count survives
// unknown type codes. The returned error joins every slot failure. Params is
// nil only when the parameter list itself cannot be located.
func ParseMethodPartial(desc string) (params []Type, ret Type, err error) {
	if desc == "" {
		return nil, Type{}, ErrEmptyInput
	}
	p := parser{s: desc}
	if !p.consume('(') {
		return nil, Type{}, ErrInvalidDescriptor
	}

	var errs []error
	params = []Type{}
	for {
		if p.pos >= len(p.s) {
			errs = append(errs, ErrUnexpectedEnd)
			return params, Type{}, errors.Join(errs...)
		}
		if p.consume(')') {
			break
		}
		// fieldType always advances, so a bad slot is skipped.
		t, err := p.fieldType()
		if err != nil {
			errs = append(errs, fmt.Errorf("parameter %d: %w", len(params), err))
			t = Type{}
		}
		params = append(params, t)
		if errors.Is(err, ErrUnexpectedEnd) {
			return params, Type{}, errors.Join(errs...)
		}
	}

	if p.consume('V') {
		ret = Type{Name: "void"}
	} else if ret, err = p.fieldType(); err != nil {
		errs = append(errs, fmt.Errorf("return type: %w", err))
		ret = Type{}
	}
	if err == nil && p.pos != len(p.s) {
		errs = append(errs, ErrInvalidDescriptor)
	}
	return params, ret, errors.Join(errs...)
}

// BinaryToQualified converts an internal binary name ("java/util/Map$Entry")
// to its dotted form ("java.util.Map$Entry").
func BinaryToQualified(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// QualifiedToBinary is the inverse of BinaryToQualified.
func QualifiedToBinary(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// parser holds decoding state.
type parser struct {
	s   string
	pos int
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.s) && p.s[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) fieldType() (Type, error) {
	dims := 0
	for p.consume('[') {
		dims++
		if dims > maxArrayDims {
			return Type{}, ErrInvalidDescriptor
		}
	}
	if p.pos >= len(p.s) {
		return Type{}, ErrUnexpectedEnd
	}

	c := p.s[p.pos]
	p.pos++
	if name, ok := baseTypes[c]; ok {
		return Type{Name: name, Dims: dims}, nil
	}
	if c != 'L' {
		return Type{}, ErrUnknownBaseType
	}

	end := strings.IndexByte(p.s[p.pos:], ';')
	if end < 0 {
		return Type{}, ErrUnexpectedEnd
	}
	if end == 0 {
		return Type{}, ErrInvalidDescriptor
	}
	name := p.s[p.pos : p.pos+end]
	p.pos += end + 1
	return Type{Name: BinaryToQualified(name), Dims: dims}, nil
}
