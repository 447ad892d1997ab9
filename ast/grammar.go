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

// Package ast defines the tagged concrete syntax tree produced by parsing
// ASN.1 module text (spec.md §3.1, §4.1). The tree is built by a
// participle-driven parser combinator: each Go struct below is one grammar
// nonterminal, struct tags encode ordered choice ("|"), literals, sub-rules
// ("@@"), repetition ("*"/"+") and suppression, and the struct's field set
// is the node's "children". Unlike a dynamically tagged {tag, children}
// pair, the tag here is the Go type itself — the semantic builder in
// package asn1 dispatches on these concrete types instead of on a string,
// which is the statically typed equivalent of spec.md's table dispatch.
//
// The tree is immutable once Parse returns: nothing under this package
// mutates a node after construction.
package ast

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/kimgr/asn1gen/asn1err"
	"github.com/kimgr/asn1gen/token"
)

// File is the root node: one source string may hold several concatenated
// module definitions, returned in source order (spec.md §4.1 "Input
// unit").
type File struct {
	Modules []*ModuleDefinition `parser:"@@+"`
}

// ModuleDefinition is the top-level "ModuleIdentifier DEFINITIONS ::=
// BEGIN ... END" production.
type ModuleDefinition struct {
	Pos lexer.Position

	Name               string             `parser:"@TypeReference"`
	DefinitiveOID      []*OIDComponent    `parser:"( \"{\" @@+ \"}\" )?"`
	TagDefault         string             `parser:"\"DEFINITIONS\" ( @(\"EXPLICIT\" | \"IMPLICIT\" | \"AUTOMATIC\") \"TAGS\" )?"`
	ExtensibilityImplied bool             `parser:"( \"EXTENSIBILITY\" @\"IMPLIED\" )?"`
	_                  string             `parser:"\"::=\" \"BEGIN\""`
	Exports            *ExportsClause     `parser:"@@?"`
	Imports            *ImportsClause     `parser:"@@?"`
	Assignments        []*Assignment      `parser:"@@*"`
	_                  string             `parser:"\"END\""`
}

// ExportsClause is "EXPORTS Ref, Ref, ... ;" or a bare "EXPORTS ;" (the
// sentinel meaning "export nothing"); its absence means "export
// everything" (spec.md §3.2 exports / *all* sentinel, handled in the
// semantic builder since the grammar only reports what was written).
type ExportsClause struct {
	_     string   `parser:"\"EXPORTS\""`
	Names []string `parser:"( @(TypeReference|ValueReference) ( \",\" @(TypeReference|ValueReference) )* )?"`
	_     string   `parser:"\";\""`
}

// ImportsClause is "IMPORTS Group ( Group )* ;".
type ImportsClause struct {
	_      string         `parser:"\"IMPORTS\""`
	Groups []*ImportGroup `parser:"@@*"`
	_      string         `parser:"\";\""`
}

// ImportGroup is "Ref, Ref FROM ModuleReference".
type ImportGroup struct {
	Symbols []string `parser:"@(TypeReference|ValueReference) ( \",\" @(TypeReference|ValueReference) )*"`
	_       string   `parser:"\"FROM\""`
	Module  string   `parser:"@TypeReference"`
}

// Assignment is either a TypeAssignment or a ValueAssignment; the grammar
// disambiguates by the case of the leading identifier the way X.680 does
// (upper-case-initial names a type, lower-case-initial names a value).
type Assignment struct {
	Type  *TypeAssignment  `parser:"  @@"`
	Value *ValueAssignment `parser:"| @@"`
}

// TypeAssignment is "TypeReference ::= Type".
type TypeAssignment struct {
	Name string `parser:"@TypeReference \"::=\""`
	Type *Type  `parser:"@@"`
}

// ValueAssignment is "valueReference Type ::= Value".
type ValueAssignment struct {
	Name  string `parser:"@ValueReference"`
	Type  *Type  `parser:"@@ \"::=\""`
	Value *Value `parser:"@@"`
}

// Type is the central production. Ordered choice matters here exactly as
// spec.md §4.1 prescribes: value-list types (named-number INTEGER,
// ENUMERATED) must be tried before plain INTEGER; tagged types before
// untagged; constructed/collection types before a bare DefinedType
// reference, since a DefinedType is the catch-all fallback.
type Type struct {
	Tagged      *TaggedType    `parser:"  @@"`
	ValueList   *ValueListType `parser:"| @@"`
	BitString   *BitStringType `parser:"| @@"`
	Sequence    *SequenceType  `parser:"| @@"`
	Set         *SetType       `parser:"| @@"`
	Choice      *ChoiceType    `parser:"| @@"`
	SequenceOf  *SequenceOfType `parser:"| @@"`
	SetOf       *SetOfType     `parser:"| @@"`
	Selection   *SelectionType `parser:"| @@"`
	Simple      *SimpleType    `parser:"| @@"`
	Defined     *DefinedType   `parser:"| @@"`
}

// TaggedType is "[class number] (IMPLICIT|EXPLICIT)? Type".
type TaggedType struct {
	_            string `parser:"\"[\""`
	Class        string `parser:"@( \"UNIVERSAL\" | \"APPLICATION\" | \"PRIVATE\" )?"`
	Number       int    `parser:"@Number"`
	_            string `parser:"\"]\""`
	Implicitness string `parser:"@( \"IMPLICIT\" | \"EXPLICIT\" )?"`
	Inner        *Type  `parser:"@@"`
}

// ValueListType is "(INTEGER|ENUMERATED) { NamedNumber, ... }" with an
// optional trailing constraint.
type ValueListType struct {
	Keyword     string        `parser:"@( \"INTEGER\" | \"ENUMERATED\" )"`
	_           string        `parser:"\"{\""`
	NamedValues []*NamedValue `parser:"@@ ( \",\" @@ )*"`
	_           string        `parser:"\"}\""`
	Constraint  *Constraint   `parser:"@@?"`
}

// NamedValue is "identifier ( Number )" or the extension marker "...".
type NamedValue struct {
	Ellipsis bool   `parser:"(  @\"...\""`
	Name     string `parser:"|  @ValueReference \"(\""`
	Number   int    `parser:"@Number \")\" )"`
}

// BitStringType is "BIT STRING { NamedBit, ... }" with an optional
// constraint.
type BitStringType struct {
	_           string      `parser:"\"BIT\" \"STRING\""`
	_           string      `parser:"\"{\""`
	NamedBits   []*NamedValue `parser:"@@ ( \",\" @@ )*"`
	_           string      `parser:"\"}\""`
	Constraint  *Constraint `parser:"@@?"`
}

// SequenceType is "SEQUENCE { ComponentType, ... }" (empty braces legal).
type SequenceType struct {
	_          string           `parser:"\"SEQUENCE\" \"{\""`
	Components []*ComponentType `parser:"( @@ ( \",\" @@ )* )?"`
	_          string           `parser:"\"}\""`
}

// SetType mirrors SequenceType for the unordered SET production.
type SetType struct {
	_          string           `parser:"\"SET\" \"{\""`
	Components []*ComponentType `parser:"( @@ ( \",\" @@ )* )?"`
	_          string           `parser:"\"}\""`
}

// ChoiceType is "CHOICE { ComponentType, ... }"; OPTIONAL/DEFAULT markers
// are rejected on CHOICE alternatives at the semantic-builder stage, not
// the grammar, since X.680 expresses that as a model-level constraint.
type ChoiceType struct {
	_          string           `parser:"\"CHOICE\" \"{\""`
	Components []*ComponentType `parser:"@@ ( \",\" @@ )*"`
	_          string           `parser:"\"}\""`
}

// SequenceOfType is "SEQUENCE ( SIZE(...) )? OF Type".
type SequenceOfType struct {
	_          string      `parser:"\"SEQUENCE\""`
	Constraint *Constraint `parser:"@@?"`
	_          string      `parser:"\"OF\""`
	Inner      *Type       `parser:"@@"`
}

// SetOfType mirrors SequenceOfType for SET OF.
type SetOfType struct {
	_          string      `parser:"\"SET\""`
	Constraint *Constraint `parser:"@@?"`
	_          string      `parser:"\"OF\""`
	Inner      *Type       `parser:"@@"`
}

// SelectionType is "identifier < Type" (spec.md glossary: Selection
// type).
type SelectionType struct {
	Identifier string `parser:"@ValueReference \"<\""`
	Inner      *Type  `parser:"@@"`
}

// SimpleType covers plain INTEGER, BOOLEAN, REAL, NULL, OBJECT IDENTIFIER,
// OCTET STRING, the restricted and unrestricted character-string family,
// the useful types, and ANY / ANY DEFINED BY — asn1ate's parser.py groups
// these same productions together as simple_type, with restricted_integer_type
// (INTEGER followed by a named-number list) split out into ValueListType so
// it gets first refusal on the "INTEGER {" spelling. Each alternative
// captures into its own field so that no information is lost regardless of
// which branch of the alternation matched.
type SimpleType struct {
	Keyword          string      `parser:"(  @( \"INTEGER\" | \"BOOLEAN\" | \"REAL\" | \"NULL\" | \"GeneralizedTime\" | \"UTCTime\" | \"ObjectDescriptor\" )"`
	ObjectIdentifier bool        `parser:"|  @\"OBJECT\" \"IDENTIFIER\""`
	OctetString      bool        `parser:"|  @\"OCTET\" \"STRING\""`
	CharacterString  bool        `parser:"|  @\"CHARACTER\" \"STRING\""`
	RestrictedCharacterString string `parser:"|  @( \"BMPString\" | \"GeneralString\" | \"GraphicString\" | \"IA5String\" | \"ISO646String\" | \"NumericString\" | \"PrintableString\" | \"TeletexString\" | \"T61String\" | \"UniversalString\" | \"UTF8String\" | \"VideotexString\" | \"VisibleString\" )"`
	Any              bool        `parser:"|  @\"ANY\" )"`
	AnyDefinedBy     string      `parser:"( \"DEFINED\" \"BY\" @ValueReference )?"`
	Constraint       *Constraint `parser:"@@?"`
}

// DefinedType is a reference to a type defined elsewhere: "Module.Type"
// or a bare "Type", with an optional size constraint applied at the
// reference site.
type DefinedType struct {
	Module     string      `parser:"( @TypeReference \".\" )?"`
	Name       string      `parser:"@TypeReference"`
	Constraint *Constraint `parser:"@@?"`
}

// ComponentType is one SEQUENCE/SET/CHOICE member: a named field
// (optionally OPTIONAL or DEFAULT v), a "COMPONENTS OF" inclusion, or the
// "..." extension marker.
type ComponentType struct {
	Ellipsis     bool        `parser:"  @\"...\""`
	ComponentsOf *Type       `parser:"| \"COMPONENTS\" \"OF\" @@"`
	Named        *NamedField `parser:"| @@"`
}

// NamedField is "identifier Type (OPTIONAL | DEFAULT Value)?".
type NamedField struct {
	Name     string `parser:"@ValueReference"`
	Type     *Type  `parser:"@@"`
	Optional bool   `parser:"( @\"OPTIONAL\""`
	Default  *Value `parser:"| \"DEFAULT\" @@ )?"`
}

// Constraint is "(SingleValue | Range | SIZE(Constraint))" wrapped in
// parens, per spec.md §3.2's Constraint model.
type Constraint struct {
	_      string          `parser:"\"(\""`
	Size   *SizeConstraint `parser:"(  @@"`
	Range  *RangeConstraint `parser:"| @@"`
	Single *Value          `parser:"| @@ )"`
	_      string          `parser:"\")\""`
}

// SizeConstraint is "SIZE ( Constraint )".
type SizeConstraint struct {
	_     string      `parser:"\"SIZE\" \"(\""`
	Inner *Constraint `parser:"@@"`
	_     string      `parser:"\")\""`
}

// RangeConstraint is "lowerEndpoint .. upperEndpoint", where either
// endpoint may be the keyword MIN/MAX.
type RangeConstraint struct {
	Min *Endpoint `parser:"@@"`
	_   string    `parser:"\"..\""`
	Max *Endpoint `parser:"@@"`
}

// Endpoint is one bound of a RangeConstraint.
type Endpoint struct {
	Min   bool   `parser:"( @\"MIN\""`
	Max   bool   `parser:"| @\"MAX\""`
	Value *Value `parser:"| @@ )"`
}

// Value covers the ValueNode variants of spec.md §3.2.
type Value struct {
	Boolean  *bool            `parser:"(  @( \"TRUE\" | \"FALSE\" )"`
	Null     bool             `parser:"|  @\"NULL\""`
	Real     *float64         `parser:"|  @Real"`
	Integer  *int64           `parser:"|  @Number"`
	BString  *string          `parser:"|  @BString"`
	HString  *string          `parser:"|  @HString"`
	CString  *string          `parser:"|  @CString"`
	OID      *ObjectIdentifierValue `parser:"|  @@"`
	Ref      *ReferencedValue `parser:"|  @@ )"`
}

// ObjectIdentifierValue is "{ OIDComponent OIDComponent ... }".
type ObjectIdentifierValue struct {
	_          string         `parser:"\"{\""`
	Components []*OIDComponent `parser:"@@+"`
	_          string         `parser:"\"}\""`
}

// OIDComponent is one arc of an OID value: NameForm, NumberForm,
// NameAndNumberForm, or a module-qualified name.
type OIDComponent struct {
	Module string `parser:"( @TypeReference \".\" )?"`
	Name   string `parser:"( @ValueReference"`
	Number *int64 `parser:"  ( \"(\" @Number \")\" )?"`
	Bare   *int64 `parser:"| @Number )"`
}

// ReferencedValue is "(Module.)?valueReference".
type ReferencedValue struct {
	Module string `parser:"( @TypeReference \".\" )?"`
	Name   string `parser:"@ValueReference"`
}

// Parser is the compiled participle grammar for File, built once at
// package init per spec.md §9's "process-wide read-only table"
// treatment of global construction state.
var Parser = participle.MustBuild[File](
	participle.Lexer(token.Rules),
	participle.Elide("Whitespace", "LineComment", "BlockComment"),
	participle.UseLookahead(4),
)

// Parse parses src (one or more concatenated module definitions) into a
// File. filename is used only to annotate error positions. A grammar
// mismatch comes back as an *asn1err.ParseError rather than participle's
// own error type, so callers can use errors.As uniformly across the
// parse/build/resolve pipeline.
func Parse(filename string, src []byte) (*File, error) {
	f, err := Parser.ParseBytes(filename, src)
	if err != nil {
		pos := token.Position{Filename: filename}
		var perr participle.Error
		if errors.As(err, &perr) {
			pos = token.FromLexer(perr.Position())
		}
		return nil, &asn1err.ParseError{Pos: pos, Excerpt: excerpt(src, pos.Offset), Cause: err}
	}
	return f, nil
}

// excerpt returns a short snippet of src starting at offset, for
// ParseError's "near %q" context.
func excerpt(src []byte, offset int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}
	end := offset + 24
	if end > len(src) {
		end = len(src)
	}
	return string(src[offset:end])
}
