package model

import (
	"cmp"
	"fmt"
	"slices"
	"unicode/utf8"
)

// ItemKind identifies the category of a suggestible item.
type ItemKind uint8

const (
	KindClass ItemKind = iota + 1
	KindConstructor
	KindField
	KindMethod
)

// Suggestion priorities per kind; higher sorts first.
const (
	PriorityField       = 40
	PriorityMethod      = 30
	PriorityConstructor = 20
	PriorityClass       = 10
)

func (k ItemKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindConstructor:
		return "constructor"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Tag returns the single-character kind tag used when rendering suggestions.
func (k ItemKind) Tag() byte {
	switch k {
	case KindClass:
		return 'c'
	case KindConstructor:
		return 'k'
	case KindField:
		return 'f'
	case KindMethod:
		return 'm'
	default:
		return '?'
	}
}

// Priority returns the fixed suggestion priority for the kind.
func (k ItemKind) Priority() int {
	switch k {
	case KindClass:
		return PriorityClass
	case KindConstructor:
		return PriorityConstructor
	case KindField:
		return PriorityField
	case KindMethod:
		return PriorityMethod
	default:
		return 0
	}
}

// Item is a suggestible entity. The set of implementations is closed:
// *Class, *Constructor, *Field and *Method.
type Item interface {
	// Name returns the identifier matched against the typed prefix.
	Name() string

	// Label returns the display text, e.g. "getX(int)" or "List (java.util)".
	Label() string

	// Kind returns the item kind.
	Kind() ItemKind

	// KindTag returns the single-character kind tag.
	KindTag() byte

	// Priority returns the fixed per-kind suggestion priority.
	Priority() int

	// Description returns a short description: the package for classes,
	// the type for fields and the return type for methods.
	Description() string

	item()
}

// Selection is what an editor needs to apply an accepted suggestion.
type Selection struct {
	// Replace is the number of characters before the cursor to replace.
	Replace int
	// Insert is the text to insert in their place.
	Insert string
	// Import is a fully qualified class name to import, or "".
	Import string
}

// Accept computes the substitution for item given the incomplete word the
// user has typed so far.
func Accept(item Item, incomplete string) Selection {
	sel := Selection{Replace: utf8.RuneCountInString(incomplete)}
	switch it := item.(type) {
	case *Class:
		sel.Insert = it.SimpleName()
		sel.Import = it.QualifiedName()
	case *Field:
		sel.Insert = it.Name()
	case *Method:
		sel.Insert = callText(it.Name(), len(it.params))
	case *Constructor:
		sel.Insert = callText(it.Name(), len(it.params))
	default:
		panic(fmt.Sprintf("model: unexpected item type %T", item))
	}
	return sel
}

func callText(name string, params int) string {
	if params == 0 {
		return name + "()"
	}
	return name + "("
}

// SortItems orders items by descending priority, then by name, keeping the
// relative order of equal entries.
func SortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := cmp.Compare(b.Priority(), a.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
}
