package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNotClassFile indicates the data does not start with the class file magic.
	ErrNotClassFile = errors.New("classfile: not a class file")

	// ErrUnsupportedVersion indicates a major version outside the supported range.
	ErrUnsupportedVersion = errors.New("classfile: unsupported class file version")

	// ErrInvalidConstant indicates a malformed or mistyped constant pool reference.
	ErrInvalidConstant = errors.New("classfile: invalid constant pool entry")

	// ErrInvalidAttribute indicates an attribute whose body does not match its kind.
	ErrInvalidAttribute = errors.New("classfile: invalid attribute")

	// ErrTrailingData indicates bytes left over after the class attributes.
	ErrTrailingData = errors.New("classfile: trailing data after class file")
)

// ParseError provides detailed information about parsing failures.
type ParseError struct {
	Section string // Class file section where the error occurred
	Offset  int    // Byte offset within the class file
	Message string // Description of the error
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classfile: parse error in %s at offset 0x%x: %s: %v",
			e.Section, e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("classfile: parse error in %s at offset 0x%x: %s",
		e.Section, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
