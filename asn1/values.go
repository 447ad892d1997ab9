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

// ValueNode is the tagged-variant interface for an ASN.1 value literal or
// reference (spec.md §3.2).
type ValueNode interface {
	valueNode()
}

type BooleanValue bool

func (BooleanValue) valueNode() {}

type IntegerValue int64

func (IntegerValue) valueNode() {}

type RealValue float64

func (RealValue) valueNode() {}

type NullValue struct{}

func (NullValue) valueNode() {}

// BStringValue is a "'...'B" bit-string literal, stored as the raw '0'/'1'
// characters between the quotes.
type BStringValue string

func (BStringValue) valueNode() {}

// HStringValue is a "'...'H" hex-string literal, stored as the raw hex
// digits between the quotes.
type HStringValue string

func (HStringValue) valueNode() {}

// CStringValue is a quoted character-string literal, stored with the
// surrounding quotes stripped; escape sequences inside are kept as written.
type CStringValue string

func (CStringValue) valueNode() {}

// ReferencedValue is a reference to a ValueAssignment, optionally
// module-qualified.
type ReferencedValue struct {
	ModuleRef string // empty means "current module"
	Name      string
}

func (ReferencedValue) valueNode() {}

// ObjectIdentifierValue is "{ comp comp ... }".
type ObjectIdentifierValue struct {
	Components []OIDComponent
}

func (ObjectIdentifierValue) valueNode() {}

// OIDComponent is the tagged-variant interface for one arc of an
// ObjectIdentifierValue (spec.md §3.2).
type OIDComponent interface {
	oidComponent()
}

// OIDName is a bare name reference, e.g. "internet".
type OIDName struct {
	Name string
}

func (OIDName) oidComponent() {}

// OIDNumber is a bare numeric arc, e.g. "1".
type OIDNumber struct {
	Value uint32
}

func (OIDNumber) oidComponent() {}

// OIDNameAndNumber is "name(number)", e.g. "org(3)".
type OIDNameAndNumber struct {
	Name  string
	Value uint32
}

func (OIDNameAndNumber) oidComponent() {}

// OIDQualifiedName is "Module.name", e.g. "SNMPv2-SMI.enterprises"-style
// module-qualified arcs (spec.md §3.2 component forms).
type OIDQualifiedName struct {
	Module string
	Name   string
}

func (OIDQualifiedName) oidComponent() {}
