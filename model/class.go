package model

import (
	"slices"
	"strings"
)

// EnumBaseName is the qualified name of the common supertype of enums.
const EnumBaseName = "java.lang.Enum"

// Class describes one class: its modifiers, supertype, interfaces and
// accessible members. A Class is immutable; it is produced by a Builder and
// shared through a Registry. Supertype and interface references point at
// other shared Class values, never at copies.
type Class struct {
	name           string
	mods           Modifiers
	super          *Class
	superName      string
	interfaces     []*Class
	interfaceNames []string
	constructors   []*Constructor
	fields         []*Field
	methods        []*Method
}

// QualifiedName returns the fully qualified name, e.g. "java.util.Map$Entry".
func (c *Class) QualifiedName() string { return c.name }

// Modifiers returns the class modifiers.
func (c *Class) Modifiers() Modifiers { return c.mods }

// SimpleName returns the name without package or enclosing class prefix.
func (c *Class) SimpleName() string { return simpleName(c.name) }

// PackageName returns the package, or "" for the default package.
func (c *Class) PackageName() string { return packageName(c.name) }

// Superclass returns the direct supertype, if any.
func (c *Class) Superclass() (*Class, bool) {
	return c.super, c.super != nil
}

// SuperclassName returns the declared supertype name, or "" for a root
// class. It is set even when the supertype could not be resolved.
func (c *Class) SuperclassName() string { return c.superName }

// SuperclassUnresolved reports whether a supertype was declared but could
// not be resolved. It is false for root classes.
func (c *Class) SuperclassUnresolved() bool {
	return c.superName != "" && c.super == nil
}

// Interfaces returns the resolved implemented interfaces in declaration order.
func (c *Class) Interfaces() []*Class { return slices.Clone(c.interfaces) }

// InterfaceNames returns every declared interface name, resolved or not.
func (c *Class) InterfaceNames() []string { return slices.Clone(c.interfaceNames) }

// Constructors returns the accessible constructors in declaration order.
func (c *Class) Constructors() []*Constructor { return slices.Clone(c.constructors) }

// Fields returns the accessible declared fields in declaration order.
func (c *Class) Fields() []*Field { return slices.Clone(c.fields) }

// Methods returns the accessible declared methods in declaration order.
func (c *Class) Methods() []*Method { return slices.Clone(c.methods) }

// IsInterface reports whether the class is an interface.
func (c *Class) IsInterface() bool { return c.mods.Has(Interface) }

// IsAbstract reports whether the class is abstract.
func (c *Class) IsAbstract() bool { return c.mods.Has(Abstract) }

// IsEnum reports whether the declared direct supertype is java.lang.Enum,
// whether or not that supertype resolved. Classes of constant-specific
// bodies extend the enum itself and are not reported.
func (c *Class) IsEnum() bool {
	return c.superName == EnumBaseName
}

func (c *Class) Name() string        { return c.SimpleName() }
func (c *Class) Label() string       { return c.SimpleName() + " (" + c.PackageName() + ")" }
func (c *Class) Kind() ItemKind      { return KindClass }
func (c *Class) KindTag() byte       { return KindClass.Tag() }
func (c *Class) Priority() int       { return KindClass.Priority() }
func (c *Class) Description() string { return c.PackageName() }
func (c *Class) String() string      { return c.name }
func (*Class) item()                 {}

func packageName(qualified string) string {
	i := strings.LastIndexByte(qualified, '.')
	if i < 0 {
		return ""
	}
	return qualified[:i]
}

func simpleName(qualified string) string {
	s := qualified[strings.LastIndexByte(qualified, '.')+1:]
	return s[strings.LastIndexByte(s, '$')+1:]
}

// Builder accumulates the parts of a Class during its single population
// pass. Build returns an immutable Class; later changes to the builder are
// not observed by classes it already built.
type Builder struct {
	c Class
}

// NewBuilder starts a class with the given qualified name and modifiers.
func NewBuilder(name string, mods Modifiers) *Builder {
	return &Builder{c: Class{name: name, mods: mods}}
}

// SetSuperclass sets the resolved direct supertype.
func (b *Builder) SetSuperclass(super *Class) {
	b.c.super = super
	b.c.superName = ""
	if super != nil {
		b.c.superName = super.name
	}
}

// SetUnresolvedSuperclass records a declared supertype that could not be
// resolved.
func (b *Builder) SetUnresolvedSuperclass(name string) {
	b.c.super = nil
	b.c.superName = name
}

// AddInterface appends a resolved interface.
func (b *Builder) AddInterface(iface *Class) {
	b.c.interfaces = append(b.c.interfaces, iface)
	b.c.interfaceNames = append(b.c.interfaceNames, iface.name)
}

// AddUnresolvedInterface records a declared interface that could not be
// resolved.
func (b *Builder) AddUnresolvedInterface(name string) {
	b.c.interfaceNames = append(b.c.interfaceNames, name)
}

// AddConstructor appends a constructor. No de-duplication is done.
func (b *Builder) AddConstructor(ctor *Constructor) {
	b.c.constructors = append(b.c.constructors, ctor)
}

// AddField appends a field. No de-duplication is done.
func (b *Builder) AddField(f *Field) {
	b.c.fields = append(b.c.fields, f)
}

// AddMethod appends a method. No de-duplication is done.
func (b *Builder) AddMethod(m *Method) {
	b.c.methods = append(b.c.methods, m)
}

// Build returns the immutable Class.
func (b *Builder) Build() *Class {
	c := b.c
	c.interfaces = slices.Clone(b.c.interfaces)
	c.interfaceNames = slices.Clone(b.c.interfaceNames)
	c.constructors = slices.Clone(b.c.constructors)
	c.fields = slices.Clone(b.c.fields)
	c.methods = slices.Clone(b.c.methods)
	return &c
}
