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

// Package token holds the lexical vocabulary shared by the ast grammar and
// the reference back ends: the comment/literal/identifier rules used to
// tokenize ASN.1 module text, the X.680 reserved word table, and the OID
// arc registry used when resolving top-level object identifier components.
package token

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position mirrors lexer.Position as a plain struct, so callers (asn1err,
// gen) that only need to carry a location around for diagnostics don't
// handle participle's own position type.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// FromLexer converts a participle lexer.Position into a Position.
func FromLexer(p lexer.Position) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (p Position) String() string {
	if p.Filename == "" {
		return ""
	}
	return p.Filename + ":" + itoa(p.Line) + ":" + itoa(p.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Rules is the lexer rule set for the X.680 subset described in spec.md
// §4.1: line comments "-- ... --|EOL", block comments "/* ... */", bit-
// and hex-strings, real numbers with optional fraction/exponent, signed
// integers, and upper/lower-case-initial identifiers. Comments and
// whitespace are elided before the grammar ever sees a token.
var Rules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "BlockComment", Pattern: `/\*([^*]|\*[^/])*\*/`},
	{Name: "LineComment", Pattern: `--([^\n-]|-[^-\n])*(--|\n|$)`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Assign", Pattern: `::=`},
	{Name: "BString", Pattern: `'[01]*'B`},
	{Name: "HString", Pattern: `'[0-9A-Fa-f]*'H`},
	{Name: "Real", Pattern: `-?\d+\.\d+([eE][-+]?\d+)?`},
	{Name: "Number", Pattern: `-?\d+`},
	{Name: "TypeReference", Pattern: `[A-Z][A-Za-z0-9-]*`},
	{Name: "ValueReference", Pattern: `[a-z][A-Za-z0-9-]*`},
	{Name: "CString", Pattern: `"(\\"|[^"])*"`},
	{Name: "Punct", Pattern: `[{}\[\](),;.|<]`},
})

// ReservedWords is the X.680 keyword table; identifiers colliding with a
// target language keyword are escaped per spec.md §4.5 by appending a
// trailing underscore, not by consulting this table (this table is the
// ASN.1-side reserved word list). The ast grammar does not consult it:
// keywords such as "SEQUENCE" are matched as literals by the grammar's
// ordered choice.
var ReservedWords = map[string]bool{
	"BOOLEAN": true, "INTEGER": true, "BIT": true, "STRING": true,
	"OCTET": true, "NULL": true, "SEQUENCE": true, "OF": true,
	"SET": true, "IMPLICIT": true, "EXPLICIT": true, "DEFAULT": true,
	"COMPONENTS": true, "UNIVERSAL": true, "APPLICATION": true,
	"PRIVATE": true, "ANY": true, "DEFINED": true, "BY": true,
	"OBJECT": true, "IDENTIFIER": true, "ENUMERATED": true,
	"CHOICE": true, "REAL": true, "OPTIONAL": true, "SIZE": true,
	"MIN": true, "MAX": true, "INCLUDES": true, "EXCEPT": true,
	"TRUE": true, "FALSE": true, "BEGIN": true, "END": true,
	"DEFINITIONS": true, "EXPORTS": true, "IMPORTS": true, "FROM": true,
	"TAGS": true, "EXTENSIBILITY": true, "IMPLIED": true,
	"GeneralizedTime": true, "UTCTime": true, "ObjectDescriptor": true,
	"CHARACTER": true,
}

// StandardArcs is the registry of well-known top-arc OID names consulted
// by the reference back end (spec.md §4.5) when resolving an
// ObjectIdentifierValue's NameForm components. An unresolved name is left
// as an identifier reference for the downstream consumer, per spec.
var StandardArcs = map[string]uint32{
	"itu-t":          0,
	"ccitt":          0,
	"iso":            1,
	"joint-iso-itu-t": 2,
	"joint-iso-ccitt": 2,
	"recommendation": 0,
	"question":       1,
	"administration": 2,
	"network-operator": 3,
	"identified-organization": 3,
	"standard":       0,
	"member-body":    2,
	"org":            3,
}

// SanitizeIdentifier implements spec.md §4.5's identifier escaping rule:
// internal hyphens become underscores, and a name that collides with a
// target-language keyword set gets a trailing underscore appended.
func SanitizeIdentifier(name string, targetKeywords map[string]bool) string {
	out := strings.ReplaceAll(name, "-", "_")
	if targetKeywords[out] {
		out += "_"
	}
	return out
}
