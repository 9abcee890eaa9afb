package model

import (
	"slices"
	"strings"
)

// TypeRef names a type by its qualified name and array depth. The zero
// TypeRef stands for a type that could not be resolved from raw metadata.
type TypeRef struct {
	Name string
	Dims int
}

// IsZero reports whether the type is unresolved.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// IsPrimitive reports whether t is a primitive (or void) non-array type.
func (t TypeRef) IsPrimitive() bool {
	if t.Dims > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double", "void":
		return true
	}
	return false
}

// SimpleName drops the package qualifier.
func (t TypeRef) SimpleName() string {
	return simpleName(t.Name) + strings.Repeat("[]", t.Dims)
}

func (t TypeRef) String() string {
	if t.IsZero() {
		return "?"
	}
	return t.Name + strings.Repeat("[]", t.Dims)
}

// ParseTypeRef reads a source-form type such as "int" or
// "java.lang.String[][]". "?" and the empty string give the zero TypeRef.
func ParseTypeRef(s string) TypeRef {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return TypeRef{}
	}
	var dims int
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		dims++
	}
	return TypeRef{Name: s, Dims: dims}
}

// ParseTypeRefs applies ParseTypeRef to each element.
func ParseTypeRefs(types []string) []TypeRef {
	refs := make([]TypeRef, len(types))
	for i, t := range types {
		refs[i] = ParseTypeRef(t)
	}
	return refs
}

func paramList(params []TypeRef) string {
	names := make([]string, len(params))
	for i, p := range params {
		if p.IsZero() {
			names[i] = "?"
			continue
		}
		names[i] = p.SimpleName()
	}
	return strings.Join(names, ", ")
}

// Constructor describes an accessible constructor.
type Constructor struct {
	name   string
	mods   Modifiers
	params []TypeRef
}

// NewConstructor creates a constructor descriptor. name is conventionally
// the simple class name.
func NewConstructor(name string, mods Modifiers, params []TypeRef) *Constructor {
	return &Constructor{name: name, mods: mods, params: slices.Clone(params)}
}

func (c *Constructor) Name() string           { return c.name }
func (c *Constructor) Modifiers() Modifiers   { return c.mods }
func (c *Constructor) Params() []TypeRef      { return slices.Clone(c.params) }
func (c *Constructor) Label() string          { return c.name + "(" + paramList(c.params) + ")" }
func (c *Constructor) Kind() ItemKind         { return KindConstructor }
func (c *Constructor) KindTag() byte          { return KindConstructor.Tag() }
func (c *Constructor) Priority() int          { return KindConstructor.Priority() }
func (c *Constructor) Description() string    { return "new " + c.name }
func (c *Constructor) String() string         { return c.Label() }
func (*Constructor) item()                    {}

// Field describes an accessible field.
type Field struct {
	name string
	mods Modifiers
	typ  TypeRef
}

// NewField creates a field descriptor.
func NewField(name string, mods Modifiers, typ TypeRef) *Field {
	return &Field{name: name, mods: mods, typ: typ}
}

func (f *Field) Name() string         { return f.name }
func (f *Field) Modifiers() Modifiers { return f.mods }
func (f *Field) Type() TypeRef        { return f.typ }
func (f *Field) Label() string        { return f.name }
func (f *Field) Kind() ItemKind       { return KindField }
func (f *Field) KindTag() byte        { return KindField.Tag() }
func (f *Field) Priority() int        { return KindField.Priority() }
func (f *Field) Description() string  { return f.typ.SimpleName() }
func (f *Field) String() string       { return f.name }
func (*Field) item()                  {}

// Method describes an accessible method.
type Method struct {
	name   string
	mods   Modifiers
	ret    TypeRef
	params []TypeRef
}

// NewMethod creates a method descriptor.
func NewMethod(name string, mods Modifiers, ret TypeRef, params []TypeRef) *Method {
	return &Method{name: name, mods: mods, ret: ret, params: slices.Clone(params)}
}

func (m *Method) Name() string         { return m.name }
func (m *Method) Modifiers() Modifiers { return m.mods }
func (m *Method) ReturnType() TypeRef  { return m.ret }
func (m *Method) Params() []TypeRef    { return slices.Clone(m.params) }
func (m *Method) Label() string        { return m.name + "(" + paramList(m.params) + ")" }
func (m *Method) Kind() ItemKind       { return KindMethod }
func (m *Method) KindTag() byte        { return KindMethod.Tag() }
func (m *Method) Priority() int        { return KindMethod.Priority() }
func (m *Method) Description() string  { return m.ret.SimpleName() }
func (m *Method) String() string       { return m.Label() }
func (*Method) item()                  {}

// signature identifies a method by name and parameter types, used to skip
// overridden methods when merging ancestor members.
func (m *Method) signature() string {
	var sb strings.Builder
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// accepts reports whether args match the parameter list. A zero TypeRef on
// either side matches anything.
func (m *Method) accepts(args []TypeRef) bool {
	if len(args) != len(m.params) {
		return false
	}
	for i, a := range args {
		p := m.params[i]
		if a.IsZero() || p.IsZero() {
			continue
		}
		if a != p {
			return false
		}
	}
	return true
}
