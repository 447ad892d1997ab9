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

// Package asn1 implements the semantic model of spec.md §3.2: the typed,
// name-resolved lift of the ast parse tree into Module / Assignment /
// TypeNode / ValueNode / Constraint / ComponentType. It also implements
// the semantic builder (§4.2) that performs that lift, and the resolver
// services of §4.4.
//
// The model is read-only once built (§3.4): nothing in this package
// mutates a Module after BuildModules returns it.
package asn1

// TagDefault is a module's default tagging mode (spec.md §3.2).
type TagDefault int

const (
	// TagDefaultAbsent means the module declared no TAGS clause.
	TagDefaultAbsent TagDefault = iota
	TagDefaultExplicit
	TagDefaultImplicit
	TagDefaultAutomatic
)

func (t TagDefault) String() string {
	switch t {
	case TagDefaultExplicit:
		return "EXPLICIT"
	case TagDefaultImplicit:
		return "IMPLICIT"
	case TagDefaultAutomatic:
		return "AUTOMATIC"
	default:
		return "absent"
	}
}

// Exports describes a module's EXPORTS clause. ExportAll is the sentinel
// used when the clause itself is absent from the source (spec.md §3.2).
type Exports struct {
	ExportAll bool
	Names     map[string]bool
}

// Exported reports whether name is visible outside the module.
func (e *Exports) Exported(name string) bool {
	if e == nil || e.ExportAll {
		return true
	}
	return e.Names[name]
}

// ImportGroup is one "Symbol, Symbol FROM Module" group, preserving
// source order (spec.md §3.2 imports).
type ImportGroup struct {
	FromModule string
	Symbols    []string
}

// Module is the semantic-model root for one ASN.1 module definition.
type Module struct {
	Name                 string
	DefinitiveIdentifier []OIDComponent
	TagDefault           TagDefault
	ExtensibilityImplied bool
	Exports              *Exports
	Imports              []ImportGroup

	// Assignments preserves source order (spec.md §3.4 "Module iteration
	// order = source order").
	Assignments []Assignment

	// byName indexes Assignments for O(1) local lookup; built once in
	// NewModule and never mutated afterwards.
	byName map[string]Assignment
}

// Assignment is the common interface implemented by *TypeAssignment and
// *ValueAssignment (spec.md §3.2).
type Assignment interface {
	AssignmentName() string
	isAssignment()
}

// TypeAssignment is "type_name ::= type_decl".
type TypeAssignment struct {
	Name string
	Decl TypeNode
}

func (t *TypeAssignment) AssignmentName() string { return t.Name }
func (*TypeAssignment) isAssignment()            {}

// ValueAssignment is "value_name TYPE ::= value".
type ValueAssignment struct {
	Name string
	Decl TypeNode
	Val  ValueNode
}

func (v *ValueAssignment) AssignmentName() string { return v.Name }
func (*ValueAssignment) isAssignment()            {}

// NewModule builds the byName index and returns a Module. It does not
// validate uniqueness of assignment names; callers that need the "unique
// within a module" invariant of spec.md §3.3 should call
// Module.DuplicateAssignments first.
func NewModule(name string, assignments []Assignment) *Module {
	idx := make(map[string]Assignment, len(assignments))
	for _, a := range assignments {
		if _, dup := idx[a.AssignmentName()]; !dup {
			idx[a.AssignmentName()] = a
		}
	}
	return &Module{Name: name, Assignments: assignments, byName: idx}
}

// Lookup returns the local assignment named name, if any.
func (m *Module) Lookup(name string) (Assignment, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// DuplicateAssignments returns the names that appear more than once in
// m.Assignments, violating spec.md §3.3's uniqueness invariant.
func (m *Module) DuplicateAssignments() []string {
	seen := make(map[string]int, len(m.Assignments))
	var dups []string
	for _, a := range m.Assignments {
		seen[a.AssignmentName()]++
		if seen[a.AssignmentName()] == 2 {
			dups = append(dups, a.AssignmentName())
		}
	}
	return dups
}
