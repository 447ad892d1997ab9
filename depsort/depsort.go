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

// Package depsort implements the dependency analyzer of spec.md §4.3: a
// directed graph over one module's assignments, Tarjan's strongly
// connected components algorithm, and the topological ordering the
// reference back end needs to emit declaration-then-definition code for
// forward and mutually recursive references.
package depsort

import "github.com/kimgr/asn1gen/asn1"

// Component is one strongly connected component of the reference graph.
// A singleton Component is an acyclic assignment; a Component with more
// than one member (or a single self-referencing member) is a recursion
// cluster that back ends must emit using the declaration-then-definition
// pattern (spec.md §4.3 edge cases).
type Component struct {
	Assignments []asn1.Assignment
}

// Recursive reports whether this component must be emitted with the
// two-pass declaration/definition discipline: either it has more than
// one member, or its single member directly references itself.
func (c Component) Recursive() bool {
	if len(c.Assignments) != 1 {
		return len(c.Assignments) > 1
	}
	return selfReferences(c.Assignments[0])
}

// Sort builds the reference graph for module's local assignments and
// returns its strongly connected components in forward topological order
// (leaves first), per spec.md §4.3. References to imported symbols are
// ignored for ordering, since the import declaration itself orders
// cross-module emission (spec.md §4.3).
func Sort(module *asn1.Module) []Component {
	g := newGraph(module)
	sccs := g.tarjanSCC()
	out := make([]Component, 0, len(sccs))
	for _, scc := range sccs {
		as := make([]asn1.Assignment, 0, len(scc))
		for _, idx := range scc {
			as = append(as, g.nodes[idx])
		}
		out = append(out, Component{Assignments: as})
	}
	return out
}

// graph is the local-assignment reference graph of one module.
type graph struct {
	nodes   []asn1.Assignment
	indexOf map[string]int
	edges   [][]int // edges[i] = indices of assignments that i references
}

func newGraph(module *asn1.Module) *graph {
	g := &graph{
		nodes:   module.Assignments,
		indexOf: make(map[string]int, len(module.Assignments)),
	}
	for i, a := range module.Assignments {
		g.indexOf[a.AssignmentName()] = i
	}
	g.edges = make([][]int, len(g.nodes))
	for i, a := range g.nodes {
		g.edges[i] = g.localReferences(a)
	}
	return g
}

// localReferences returns the indices of assignments that a references,
// found by walking a's type/value subtree for DefinedType and
// ReferencedValue nodes whose target resolves to another local
// assignment (spec.md §4.3: "a reference is any DefinedType or
// ReferencedValue whose target resolves to another local assignment").
func (g *graph) localReferences(a asn1.Assignment) []int {
	var refs []int
	add := func(name string) {
		if idx, ok := g.indexOf[name]; ok {
			refs = append(refs, idx)
		}
	}

	switch v := a.(type) {
	case *asn1.TypeAssignment:
		walkTypeRefs(v.Decl, add)
	case *asn1.ValueAssignment:
		walkTypeRefs(v.Decl, add)
		walkValueRefs(v.Val, add)
	}
	return refs
}

func walkTypeRefs(n asn1.TypeNode, add func(string)) {
	switch t := n.(type) {
	case *asn1.DefinedType:
		if t.ModuleRef == "" {
			add(t.Name)
		}
		walkConstraintRefs(t.Constraint, add)
	case *asn1.TaggedType:
		walkTypeRefs(t.Inner, add)
	case *asn1.SelectionType:
		walkTypeRefs(t.Inner, add)
	case *asn1.CollectionType:
		walkTypeRefs(t.Inner, add)
		walkConstraintRefs(t.SizeConstraint, add)
	case *asn1.ConstructedType:
		for _, c := range t.Components {
			walkComponentRefs(c, add)
		}
	case *asn1.SimpleType:
		walkConstraintRefs(t.Constraint, add)
	case *asn1.ValueListType:
		walkConstraintRefs(t.Constraint, add)
	case *asn1.BitStringType:
		walkConstraintRefs(t.Constraint, add)
	}
}

// walkComponentRefs contributes the ComponentsOf(X) -> X edge required by
// spec.md §4.3's edge cases, in addition to each named field's own type
// references.
func walkComponentRefs(c asn1.ComponentType, add func(string)) {
	switch v := c.(type) {
	case *asn1.NamedComponent:
		walkTypeRefs(v.Decl, add)
	case *asn1.OptionalComponent:
		walkTypeRefs(v.Decl, add)
	case *asn1.DefaultedComponent:
		walkTypeRefs(v.Decl, add)
		walkValueRefs(v.Default, add)
	case *asn1.ComponentsOf:
		walkTypeRefs(v.Referenced, add)
	}
}

// walkConstraintRefs contributes references from value(s) embedded in
// constraint subtrees, per spec.md §4.3 "Tag and constraint subtrees
// contribute references recursively."
func walkConstraintRefs(c asn1.Constraint, add func(string)) {
	switch v := c.(type) {
	case *asn1.SingleValueConstraint:
		walkValueRefs(v.Value, add)
	case *asn1.ValueRangeConstraint:
		walkEndpointRefs(v.Min, add)
		walkEndpointRefs(v.Max, add)
	case *asn1.SizeConstraint:
		walkConstraintRefs(v.Nested, add)
	}
}

func walkEndpointRefs(e asn1.RangeEndpoint, add func(string)) {
	if !e.IsMin && !e.IsMax {
		walkValueRefs(e.Value, add)
	}
}

func walkValueRefs(v asn1.ValueNode, add func(string)) {
	if rv, ok := v.(asn1.ReferencedValue); ok && rv.ModuleRef == "" {
		add(rv.Name)
	}
}

// selfReferences reports whether a references itself directly, the
// "next A OPTIONAL" case of spec.md §4.3's edge cases.
func selfReferences(a asn1.Assignment) bool {
	name := a.AssignmentName()
	self := false
	add := func(n string) {
		if n == name {
			self = true
		}
	}
	switch v := a.(type) {
	case *asn1.TypeAssignment:
		walkTypeRefs(v.Decl, add)
	case *asn1.ValueAssignment:
		walkTypeRefs(v.Decl, add)
		walkValueRefs(v.Val, add)
	}
	return self
}
