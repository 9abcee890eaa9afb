// Package classfiletest encodes synthetic class files for tests.
package classfiletest

import (
	"encoding/binary"
	"strings"
)

// Access flags used by fixtures.
const (
	Public    uint16 = 0x0001
	Private   uint16 = 0x0002
	Protected uint16 = 0x0004
	Static    uint16 = 0x0008
	Final     uint16 = 0x0010
	Super     uint16 = 0x0020
	Bridge    uint16 = 0x0040
	Interface uint16 = 0x0200
	Abstract  uint16 = 0x0400
	Synthetic uint16 = 0x1000
	Enum      uint16 = 0x4000
)

// Attribute is an extra attribute_info entry with a raw body.
type Attribute struct {
	Name string
	Body []byte
}

// SyntheticAttribute marks its owner as compiler generated.
var SyntheticAttribute = Attribute{Name: "Synthetic"}

// Member is a field or method to encode.
type Member struct {
	Access     uint16
	Name       string
	Descriptor string
	Attributes []Attribute // written after the Deprecated attribute
}

// Class describes a class file to encode. Names may be given in dotted or
// binary form. An empty Super encodes super_class as zero.
type Class struct {
	Major      uint16 // defaults to 52 (Java 8)
	Access     uint16
	Name       string
	Super      string
	Interfaces []string
	Fields     []Member
	Methods    []Member
	Attributes []Attribute
}

// Bytes encodes the class. Each member gets a Deprecated attribute and the
// pool includes a long constant so parsers must handle wide slots.
func (c Class) Bytes() []byte {
	w := &writer{utf8s: map[string]uint16{}, classes: map[string]uint16{}, next: 1}

	// Pool content that exercises skipping.
	w.pool = append(w.pool, 5) // CONSTANT_Long
	w.pool = binary.BigEndian.AppendUint64(w.pool, 42)
	w.next += 2
	deprecated := w.utf8("Deprecated")

	this := w.class(c.Name)
	var super uint16
	if c.Super != "" {
		super = w.class(c.Super)
	}
	ifaces := make([]uint16, len(c.Interfaces))
	for i, name := range c.Interfaces {
		ifaces[i] = w.class(name)
	}
	encodeMembers := func(members []Member) []byte {
		var out []byte
		out = binary.BigEndian.AppendUint16(out, uint16(len(members)))
		for _, m := range members {
			out = binary.BigEndian.AppendUint16(out, m.Access)
			out = binary.BigEndian.AppendUint16(out, w.utf8(m.Name))
			out = binary.BigEndian.AppendUint16(out, w.utf8(m.Descriptor))
			out = binary.BigEndian.AppendUint16(out, uint16(1+len(m.Attributes)))
			out = binary.BigEndian.AppendUint16(out, deprecated)
			out = binary.BigEndian.AppendUint32(out, 0)
			out = w.attributes(out, m.Attributes)
		}
		return out
	}
	fields := encodeMembers(c.Fields)
	methods := encodeMembers(c.Methods)
	attrs := binary.BigEndian.AppendUint16(nil, uint16(len(c.Attributes)))
	attrs = w.attributes(attrs, c.Attributes)

	major := c.Major
	if major == 0 {
		major = 52
	}

	var out []byte
	out = binary.BigEndian.AppendUint32(out, 0xCAFEBABE)
	out = binary.BigEndian.AppendUint16(out, 0)
	out = binary.BigEndian.AppendUint16(out, major)
	out = binary.BigEndian.AppendUint16(out, w.next)
	out = append(out, w.pool...)
	out = binary.BigEndian.AppendUint16(out, c.Access)
	out = binary.BigEndian.AppendUint16(out, this)
	out = binary.BigEndian.AppendUint16(out, super)
	out = binary.BigEndian.AppendUint16(out, uint16(len(ifaces)))
	for _, idx := range ifaces {
		out = binary.BigEndian.AppendUint16(out, idx)
	}
	out = append(out, fields...)
	out = append(out, methods...)
	out = append(out, attrs...)
	return out
}

func (w *writer) attributes(out []byte, attrs []Attribute) []byte {
	for _, a := range attrs {
		out = binary.BigEndian.AppendUint16(out, w.utf8(a.Name))
		out = binary.BigEndian.AppendUint32(out, uint32(len(a.Body)))
		out = append(out, a.Body...)
	}
	return out
}

type writer struct {
	pool    []byte
	next    uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

func (w *writer) utf8(s string) uint16 {
	if idx, ok := w.utf8s[s]; ok {
		return idx
	}
	idx := w.next
	w.next++
	w.pool = append(w.pool, 1)
	w.pool = binary.BigEndian.AppendUint16(w.pool, uint16(len(s)))
	w.pool = append(w.pool, s...)
	w.utf8s[s] = idx
	return idx
}

func (w *writer) class(name string) uint16 {
	name = strings.ReplaceAll(name, ".", "/")
	if idx, ok := w.classes[name]; ok {
		return idx
	}
	nameIdx := w.utf8(name)
	idx := w.next
	w.next++
	w.pool = append(w.pool, 7)
	w.pool = binary.BigEndian.AppendUint16(w.pool, nameIdx)
	w.classes[name] = idx
	return idx
}
