package classfile

import (
	"fmt"

	"github.com/javaide/classview/internal/stream"
)

// constant is a single constant pool slot. Only the parts needed to resolve
// class and member names are kept.
type constant struct {
	tag   ConstantTag
	str   string // ConstantUtf8
	index uint16 // ConstantClass name_index
}

// parser holds decoding state for one class file.
type parser struct {
	r    *stream.Reader
	pool []constant
}

// Parse decodes a class file. Only the structure visible to member lookup is
// retained; a Synthetic attribute is folded into the access flags of its
// owner and other attributes are skipped.
func Parse(data []byte) (*File, error) {
	p := &parser{r: stream.NewReader(data)}
	f := &File{}

	magic, err := p.r.ReadU32()
	if err != nil || magic != Magic {
		return nil, ErrNotClassFile
	}

	if f.MinorVersion, err = p.r.ReadU16(); err != nil {
		return nil, p.fail("header", "reading minor version", err)
	}
	if f.MajorVersion, err = p.r.ReadU16(); err != nil {
		return nil, p.fail("header", "reading major version", err)
	}
	if f.MajorVersion < MinMajorVersion || f.MajorVersion > MaxMajorVersion {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, f.MajorVersion, f.MinorVersion)
	}

	if err := p.parseConstantPool(); err != nil {
		return nil, err
	}

	flags, err := p.r.ReadU16()
	if err != nil {
		return nil, p.fail("header", "reading access flags", err)
	}
	f.AccessFlags = AccessFlags(flags)

	if f.ThisClass, err = p.readClassRef(false); err != nil {
		return nil, p.fail("header", "reading this_class", err)
	}
	if f.SuperClass, err = p.readClassRef(true); err != nil {
		return nil, p.fail("header", "reading super_class", err)
	}

	count, err := p.r.ReadU16()
	if err != nil {
		return nil, p.fail("interfaces", "reading count", err)
	}
	f.Interfaces = make([]string, 0, count)
	for range count {
		name, err := p.readClassRef(false)
		if err != nil {
			return nil, p.fail("interfaces", "reading interface", err)
		}
		f.Interfaces = append(f.Interfaces, name)
	}

	if f.Fields, err = p.parseMembers("fields"); err != nil {
		return nil, err
	}
	if f.Methods, err = p.parseMembers("methods"); err != nil {
		return nil, err
	}
	implied, err := p.readAttributes()
	if err != nil {
		return nil, p.fail("attributes", "reading class attributes", err)
	}
	f.AccessFlags |= implied

	if n := p.r.Remaining(); n > 0 {
		return nil, p.fail("attributes", fmt.Sprintf("%d bytes after class attributes", n), ErrTrailingData)
	}

	return f, nil
}

func (p *parser) fail(section, msg string, err error) error {
	return &ParseError{Section: section, Offset: p.r.Offset(), Message: msg, Err: err}
}

func (p *parser) parseConstantPool() error {
	count, err := p.r.ReadU16()
	if err != nil {
		return p.fail("constant pool", "reading count", err)
	}
	if count == 0 {
		return p.fail("constant pool", "zero constant_pool_count", ErrInvalidConstant)
	}

	// Slot 0 is unused; indices run from 1 to count-1.
	p.pool = make([]constant, count)
	for i := 1; i < int(count); i++ {
		tag, err := p.r.ReadU8()
		if err != nil {
			return p.fail("constant pool", "reading tag", err)
		}
		c := constant{tag: ConstantTag(tag)}

		switch c.tag {
		case ConstantUtf8:
			if c.str, err = p.r.ReadUTF8(); err != nil {
				return p.fail("constant pool", fmt.Sprintf("reading utf8 #%d", i), err)
			}
		case ConstantClass:
			if c.index, err = p.r.ReadU16(); err != nil {
				return p.fail("constant pool", fmt.Sprintf("reading class #%d", i), err)
			}
		default:
			n := c.tag.payloadSize()
			if n < 0 {
				return p.fail("constant pool", fmt.Sprintf("unknown tag %d at #%d", tag, i), ErrInvalidConstant)
			}
			if err := p.r.Skip(n); err != nil {
				return p.fail("constant pool", fmt.Sprintf("reading entry #%d", i), err)
			}
		}

		p.pool[i] = c
		if c.tag.wide() {
			// Long and double take the following slot as well.
			i++
		}
	}
	return nil
}

func (p *parser) utf8(index uint16) (string, error) {
	if int(index) == 0 || int(index) >= len(p.pool) || p.pool[index].tag != ConstantUtf8 {
		return "", fmt.Errorf("%w: utf8 #%d", ErrInvalidConstant, index)
	}
	return p.pool[index].str, nil
}

func (p *parser) class(index uint16) (string, error) {
	if int(index) == 0 || int(index) >= len(p.pool) || p.pool[index].tag != ConstantClass {
		return "", fmt.Errorf("%w: class #%d", ErrInvalidConstant, index)
	}
	return p.utf8(p.pool[index].index)
}

// readClassRef reads a u2 class index. A zero index is accepted only when
// optional is set, and yields an empty name.
func (p *parser) readClassRef(optional bool) (string, error) {
	index, err := p.r.ReadU16()
	if err != nil {
		return "", err
	}
	if index == 0 && optional {
		return "", nil
	}
	return p.class(index)
}

func (p *parser) parseMembers(section string) ([]Member, error) {
	count, err := p.r.ReadU16()
	if err != nil {
		return nil, p.fail(section, "reading count", err)
	}

	members := make([]Member, 0, count)
	for range count {
		flags, err := p.r.ReadU16()
		if err != nil {
			return nil, p.fail(section, "reading access flags", err)
		}
		nameIndex, err := p.r.ReadU16()
		if err != nil {
			return nil, p.fail(section, "reading name index", err)
		}
		descIndex, err := p.r.ReadU16()
		if err != nil {
			return nil, p.fail(section, "reading descriptor index", err)
		}

		name, err := p.utf8(nameIndex)
		if err != nil {
			return nil, p.fail(section, "resolving name", err)
		}
		desc, err := p.utf8(descIndex)
		if err != nil {
			return nil, p.fail(section, "resolving descriptor", err)
		}
		implied, err := p.readAttributes()
		if err != nil {
			return nil, p.fail(section, "reading attributes of "+name, err)
		}

		members = append(members, Member{
			AccessFlags: AccessFlags(flags) | implied,
			Name:        name,
			Descriptor:  desc,
		})
	}
	return members, nil
}

// readAttributes reads an attribute table and returns the access flags it
// implies. Each body is confined to its declared length.
func (p *parser) readAttributes() (AccessFlags, error) {
	count, err := p.r.ReadU16()
	if err != nil {
		return 0, err
	}

	var flags AccessFlags
	for range count {
		nameIndex, err := p.r.ReadU16()
		if err != nil {
			return 0, err
		}
		length, err := p.r.ReadU32()
		if err != nil {
			return 0, err
		}
		body, err := p.r.SubReader(int(length))
		if err != nil {
			return 0, err
		}
		name, err := p.utf8(nameIndex)
		if err != nil {
			return 0, err
		}

		switch name {
		case AttrSynthetic:
			if body.Remaining() != 0 {
				return 0, fmt.Errorf("%w: %s has a %d byte body", ErrInvalidAttribute, name, body.Remaining())
			}
			flags |= AccSynthetic
		}
	}
	return flags, nil
}
