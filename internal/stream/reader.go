// Package stream provides binary reading utilities for class file parsing.
package stream

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf16"
)

// Errors returned by Reader
var (
	ErrUnexpectedEOF = errors.New("stream: unexpected end of data")
	ErrInvalidString = errors.New("stream: invalid modified UTF-8 encoding")
)

// Reader provides methods for reading binary data from class files.
// All multi-byte values are read in big-endian order.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, offset: 0}
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.offset
}

// Remaining returns the number of bytes remaining.
func (r *Reader) Remaining() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.offset+n > len(r.data) {
		return ErrUnexpectedEOF
	}
	r.offset += n
	return nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	if r.offset >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

// ReadU16 reads an unsigned 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	if r.offset+2 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(r.data[r.offset:])
	r.offset += 2
	return v, nil
}

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	if r.offset+4 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}


// ReadBytesRef returns a reference to n bytes without copying.
// The returned slice is only valid as long as the underlying data.
func (r *Reader) ReadBytesRef(n int) ([]byte, error) {
	if n < 0 || r.offset+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	v := r.data[r.offset : r.offset+n]
	r.offset += n
	return v, nil
}

// ReadUTF8 reads a u2 length followed by that many bytes of modified UTF-8,
// the encoding used by CONSTANT_Utf8_info entries.
func (r *Reader) ReadUTF8() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytesRef(int(n))
	if err != nil {
		return "", err
	}
	return DecodeModifiedUTF8(b)
}

// DecodeModifiedUTF8 decodes the JVM variant of UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func DecodeModifiedUTF8(b []byte) (string, error) {
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), nil
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0:
			return "", ErrInvalidString
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", ErrInvalidString
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", ErrInvalidString
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", ErrInvalidString
		}
	}

	var sb strings.Builder
	for _, ch := range utf16.Decode(units) {
		sb.WriteRune(ch)
	}
	return sb.String(), nil
}

// SubReader returns a Reader over the next length bytes and advances past
// them.
func (r *Reader) SubReader(length int) (*Reader, error) {
	if length < 0 || r.offset+length > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	sub := NewReader(r.data[r.offset : r.offset+length])
	r.offset += length
	return sub, nil
}
