package model

import (
	"fmt"
	"strings"
)

// Modifiers is a modifier bit set. Bit values follow the class file
// access_flags layout.
type Modifiers uint16

const (
	Public       Modifiers = 0x0001
	Private      Modifiers = 0x0002
	Protected    Modifiers = 0x0004
	Static       Modifiers = 0x0008
	Final        Modifiers = 0x0010
	Synchronized Modifiers = 0x0020
	Volatile     Modifiers = 0x0040
	Transient    Modifiers = 0x0080
	Native       Modifiers = 0x0100
	Interface    Modifiers = 0x0200
	Abstract     Modifiers = 0x0400
	Strict       Modifiers = 0x0800
	Synthetic    Modifiers = 0x1000
	Annotation   Modifiers = 0x2000
	Enum         Modifiers = 0x4000

	// On methods the volatile and transient bits mean bridge and varargs.
	Bridge  = Volatile
	Varargs = Transient
)

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

func (mods Modifiers) IsPublic() bool    { return mods.Has(Public) }
func (mods Modifiers) IsPrivate() bool   { return mods.Has(Private) }
func (mods Modifiers) IsProtected() bool { return mods.Has(Protected) }
func (mods Modifiers) IsStatic() bool    { return mods.Has(Static) }
func (mods Modifiers) IsFinal() bool     { return mods.Has(Final) }
func (mods Modifiers) IsAbstract() bool  { return mods.Has(Abstract) }

// keywordOrder is the canonical source order of modifier keywords.
var keywordOrder = []struct {
	bit  Modifiers
	word string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Strict, "strictfp"},
	{Interface, "interface"},
}

// String renders the source-level keywords. Class-file-only bits
// (synthetic, annotation, enum) are not rendered.
func (mods Modifiers) String() string {
	var words []string
	for _, k := range keywordOrder {
		if mods.Has(k.bit) {
			words = append(words, k.word)
		}
	}
	return strings.Join(words, " ")
}

// Visibility selects which members are modeled.
type Visibility uint8

const (
	// VisibilityPublic models public members only.
	VisibilityPublic Visibility = iota
	// VisibilityProtected models public and protected members.
	VisibilityProtected
	// VisibilityPackage models everything except private members.
	VisibilityPackage
)

// ParseVisibility maps a configuration value to a Visibility.
// The empty string selects VisibilityPublic.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "", "public":
		return VisibilityPublic, nil
	case "protected":
		return VisibilityProtected, nil
	case "package":
		return VisibilityPackage, nil
	default:
		return 0, fmt.Errorf("model: unknown visibility %q", s)
	}
}

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPackage:
		return "package"
	default:
		return "unknown"
	}
}

// Allows reports whether a member with the given modifiers is modeled.
// Private members are never allowed.
func (v Visibility) Allows(mods Modifiers) bool {
	if mods.IsPrivate() {
		return false
	}
	switch v {
	case VisibilityProtected:
		return mods.IsPublic() || mods.IsProtected()
	case VisibilityPackage:
		return true
	default:
		return mods.IsPublic()
	}
}
