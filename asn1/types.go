// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asn1

// TypeNode is the tagged-variant interface implemented by every concrete
// type-declaration form in spec.md §3.2. Back ends type-switch on the
// concrete type the way a visitor dispatches on an AST variant; there is
// no runtime class hierarchy to walk.
type TypeNode interface {
	// typeNode is unexported so only this package can introduce new
	// variants; back ends consume the closed set via type switch.
	typeNode()
}

// SimpleType covers BOOLEAN, plain INTEGER, REAL, NULL, OBJECT
// IDENTIFIER, OCTET STRING, the character-string family, the useful
// types, and ANY / ANY DEFINED BY.
type SimpleType struct {
	Name         string // e.g. "BOOLEAN", "INTEGER", "ANY"
	DefinedByRef string // non-empty only for "ANY DEFINED BY ref"
	Constraint   Constraint
}

func (*SimpleType) typeNode() {}

// ValueListType is INTEGER or ENUMERATED carrying a named-value list.
type ValueListType struct {
	Keyword     string // "INTEGER" or "ENUMERATED"
	NamedValues []NamedValue
	Constraint  Constraint
}

func (*ValueListType) typeNode() {}

// NamedValue is one "name(number)" pair, or the extension marker "...".
type NamedValue struct {
	Extension bool
	Name      string
	Number    int64
}

// BitStringType is "BIT STRING { NamedBit, ... }".
type BitStringType struct {
	NamedBits  []NamedValue
	Constraint Constraint
}

func (*BitStringType) typeNode() {}

// ConstructedKind distinguishes the three members of the Constructed
// family (spec.md §3.2).
type ConstructedKind int

const (
	KindSequence ConstructedKind = iota
	KindSet
	KindChoice
)

// ConstructedType is SEQUENCE, SET, or CHOICE.
type ConstructedType struct {
	Kind       ConstructedKind
	Components []ComponentType
}

func (*ConstructedType) typeNode() {}

// CollectionKind distinguishes SEQUENCE OF from SET OF.
type CollectionKind int

const (
	KindSequenceOf CollectionKind = iota
	KindSetOf
)

// CollectionType is SEQUENCE OF or SET OF.
type CollectionType struct {
	Kind          CollectionKind
	Inner         TypeNode
	SizeConstraint Constraint
}

func (*CollectionType) typeNode() {}

// TagClass is the ASN.1 tag class (spec.md §3.2); ClassContext is the
// default when a TaggedType gives no explicit class keyword.
type TagClass int

const (
	ClassContext TagClass = iota
	ClassUniversal
	ClassApplication
	ClassPrivate
)

// Implicitness is a TaggedType's explicit/implicit/unresolved marker.
type Implicitness int

const (
	// TagDefaultMarker means "defer to the enclosing module's tag_default",
	// resolved later by Resolver.ResolveTagImplicitness.
	TagDefaultMarker Implicitness = iota
	TagImplicit
	TagExplicit
)

// TaggedType is "[class number] (IMPLICIT|EXPLICIT)? Type".
type TaggedType struct {
	Class        TagClass
	Number       int
	Implicitness Implicitness
	Inner        TypeNode
}

func (*TaggedType) typeNode() {}

// SelectionType is "identifier < Type", picking a named CHOICE
// alternative (spec.md glossary).
type SelectionType struct {
	Identifier string
	Inner      TypeNode
}

func (*SelectionType) typeNode() {}

// DefinedType is a reference to a type defined elsewhere, optionally
// module-qualified, with an optional constraint applied at the
// reference site.
type DefinedType struct {
	ModuleRef  string // empty means "current module"
	Name       string
	Constraint Constraint
}

func (*DefinedType) typeNode() {}
