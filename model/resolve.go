package model

import (
	"iter"
	"strings"
)

// FindMethod returns the first method named name, searching this class in
// declaration order and then each superclass. Argument types are accepted
// but not used: the first name match wins regardless of overloads. See
// FindMethodOverload for arity and type aware lookup.
func (c *Class) FindMethod(name string, args []TypeRef) (*Method, bool) {
	for cur := c; cur != nil; cur = cur.super {
		for _, m := range cur.methods {
			if m.name == name {
				return m, true
			}
		}
	}
	return nil, false
}

// FindField returns the declared field named name. Unlike FindMethod it
// does not consult supertypes; see FindFieldInHierarchy.
func (c *Class) FindField(name string) (*Field, bool) {
	for _, f := range c.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// SuggestMembers returns the class's own members whose names start with
// prefix: constructors first (only for a non-empty prefix), then fields,
// then methods, each in declaration order. An empty prefix matches every
// field and method. Supertypes are not consulted; see
// SuggestMembersInHierarchy.
func (c *Class) SuggestMembers(prefix string) []Item {
	var result []Item
	if prefix != "" {
		for _, ctor := range c.constructors {
			if strings.HasPrefix(ctor.name, prefix) {
				result = append(result, ctor)
			}
		}
	}
	for _, f := range c.fields {
		if prefix == "" || strings.HasPrefix(f.name, prefix) {
			result = append(result, f)
		}
	}
	for _, m := range c.methods {
		if prefix == "" || strings.HasPrefix(m.name, prefix) {
			result = append(result, m)
		}
	}
	return result
}

// FindMethodOverload returns the first method named name whose parameter
// list accepts args, searching this class, the superclass chain, and then
// implemented interfaces breadth first. A zero TypeRef in args matches any
// parameter type.
func (c *Class) FindMethodOverload(name string, args []TypeRef) (*Method, bool) {
	for cur := range c.hierarchy() {
		for _, m := range cur.methods {
			if m.name == name && m.accepts(args) {
				return m, true
			}
		}
	}
	return nil, false
}

// FindFieldInHierarchy returns the first field named name declared by this
// class, a superclass, or an implemented interface.
func (c *Class) FindFieldInHierarchy(name string) (*Field, bool) {
	for cur := range c.hierarchy() {
		if f, ok := cur.FindField(name); ok {
			return f, true
		}
	}
	return nil, false
}

// SuggestMembersInHierarchy extends SuggestMembers with the fields and
// methods of every supertype. Constructors come from the receiver only.
// Ancestor fields hidden by a name already offered, and ancestor methods
// overridden by an already offered signature, are skipped.
func (c *Class) SuggestMembersInHierarchy(prefix string) []Item {
	result := c.SuggestMembers(prefix)

	seenFields := make(map[string]bool)
	seenMethods := make(map[string]bool)
	for _, it := range result {
		switch m := it.(type) {
		case *Field:
			seenFields[m.name] = true
		case *Method:
			seenMethods[m.signature()] = true
		}
	}

	first := true
	for cur := range c.hierarchy() {
		if first {
			first = false
			continue
		}
		for _, f := range cur.fields {
			if seenFields[f.name] || (prefix != "" && !strings.HasPrefix(f.name, prefix)) {
				continue
			}
			seenFields[f.name] = true
			result = append(result, f)
		}
		for _, m := range cur.methods {
			sig := m.signature()
			if seenMethods[sig] || (prefix != "" && !strings.HasPrefix(m.name, prefix)) {
				continue
			}
			seenMethods[sig] = true
			result = append(result, m)
		}
	}
	return result
}

// Ancestors yields the superclass chain, nearest first.
func (c *Class) Ancestors() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		for cur := c.super; cur != nil; cur = cur.super {
			if !yield(cur) {
				return
			}
		}
	}
}

// hierarchy yields the receiver, its superclass chain, and then every
// reachable interface breadth first, each class once.
func (c *Class) hierarchy() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		seen := make(map[*Class]bool)
		var queue []*Class
		for cur := c; cur != nil; cur = cur.super {
			if !yield(cur) {
				return
			}
			seen[cur] = true
			queue = append(queue, cur.interfaces...)
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if seen[cur] {
				continue
			}
			seen[cur] = true
			if !yield(cur) {
				return
			}
			queue = append(queue, cur.interfaces...)
		}
	}
}
