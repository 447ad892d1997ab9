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

import (
	"strings"
	"testing"
)

func TestResolveTypeDeclChain(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= B
		B ::= INTEGER
	END`)
	r := NewResolver([]*Module{m})

	aDecl := m.Assignments[0].(*TypeAssignment).Decl
	resolved, mod, err := r.ResolveTypeDecl(m, aDecl)
	if err != nil {
		t.Fatalf("ResolveTypeDecl failed: %v", err)
	}
	if mod != m {
		t.Errorf("resolved module = %p, want %p", mod, m)
	}
	st, ok := resolved.(*SimpleType)
	if !ok || st.Name != "INTEGER" {
		t.Errorf("resolved = %#v, want SimpleType{Name: %q}", resolved, "INTEGER")
	}
}

func TestResolveTypeDeclMutualCycle(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= B
		B ::= A
	END`)
	r := NewResolver([]*Module{m})

	aDecl := m.Assignments[0].(*TypeAssignment).Decl
	resolved, _, err := r.ResolveTypeDecl(m, aDecl)
	if err != nil {
		t.Fatalf("ResolveTypeDecl failed: %v", err)
	}
	dt, ok := resolved.(*DefinedType)
	if !ok {
		t.Fatalf("resolved = %T, want *DefinedType (the cycle stops and hands back a reference)", resolved)
	}
	if dt.Name != "A" && dt.Name != "B" {
		t.Errorf("resolved reference name = %q, want %q or %q", dt.Name, "A", "B")
	}
}

func TestResolveTaggedTypeUnwrapsToInner(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= [0] IMPLICIT SEQUENCE { x INTEGER }
	END`)
	r := NewResolver([]*Module{m})

	aDecl := m.Assignments[0].(*TypeAssignment).Decl
	resolved, _, err := r.ResolveTypeDecl(m, aDecl)
	if err != nil {
		t.Fatalf("ResolveTypeDecl failed: %v", err)
	}
	ct, ok := resolved.(*ConstructedType)
	if !ok || ct.Kind != KindSequence {
		t.Errorf("resolved = %#v, want a SEQUENCE ConstructedType", resolved)
	}
}

func TestResolveTypeDeclUndefinedReference(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		IMPORTS C FROM Other;
		A ::= C
	END`)
	r := NewResolver([]*Module{m})

	aDecl := m.Assignments[0].(*TypeAssignment).Decl
	_, _, err := r.ResolveTypeDecl(m, aDecl)
	if err == nil {
		t.Fatal("ResolveTypeDecl succeeded, want an error since Other was never supplied")
	}
	if !strings.Contains(err.Error(), "Other") {
		t.Errorf("error = %v, want it to mention the missing module %q", err, "Other")
	}
}

func TestResolveTypeDeclCrossModule(t *testing.T) {
	other := mustBuildOne(t, `Other DEFINITIONS ::= BEGIN
		C ::= BOOLEAN
	END`)
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		IMPORTS C FROM Other;
		A ::= C
	END`)
	r := NewResolver([]*Module{m, other})

	aDecl := m.Assignments[0].(*TypeAssignment).Decl
	resolved, mod, err := r.ResolveTypeDecl(m, aDecl)
	if err != nil {
		t.Fatalf("ResolveTypeDecl failed: %v", err)
	}
	if mod != other {
		t.Errorf("resolved module = %p, want Other module %p", mod, other)
	}
	st, ok := resolved.(*SimpleType)
	if !ok || st.Name != "BOOLEAN" {
		t.Errorf("resolved = %#v, want SimpleType{Name: %q}", resolved, "BOOLEAN")
	}
}

func TestResolveSelectionType(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= CHOICE { a INTEGER, b BOOLEAN }
		S ::= a < A
	END`)
	r := NewResolver([]*Module{m})

	sel := m.Assignments[1].(*TypeAssignment).Decl.(*SelectionType)
	resolved, err := r.ResolveSelectionType(m, sel)
	if err != nil {
		t.Fatalf("ResolveSelectionType failed: %v", err)
	}
	st, ok := resolved.(*SimpleType)
	if !ok || st.Name != "INTEGER" {
		t.Errorf("resolved = %#v, want SimpleType{Name: %q}", resolved, "INTEGER")
	}
}

func TestResolveSelectionTypeUnknownAlternative(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= CHOICE { a INTEGER }
		S ::= z < A
	END`)
	r := NewResolver([]*Module{m})

	sel := m.Assignments[1].(*TypeAssignment).Decl.(*SelectionType)
	if _, err := r.ResolveSelectionType(m, sel); err == nil {
		t.Fatal("ResolveSelectionType succeeded, want an error for an unknown alternative")
	}
}

func TestResolveTagImplicitness(t *testing.T) {
	tests := []struct {
		desc         string
		tagDefault   TagDefault
		implicitness Implicitness
		inner        TypeNode
		want         Implicitness
	}{{
		desc:         "explicit override always wins",
		tagDefault:   TagDefaultImplicit,
		implicitness: TagExplicit,
		inner:        &ConstructedType{Kind: KindChoice},
		want:         TagExplicit,
	}, {
		desc:         "module default implicit applies to a plain type",
		tagDefault:   TagDefaultImplicit,
		implicitness: TagDefaultMarker,
		inner:        &SimpleType{Name: "INTEGER"},
		want:         TagImplicit,
	}, {
		desc:         "implicit default forced to explicit over CHOICE",
		tagDefault:   TagDefaultImplicit,
		implicitness: TagDefaultMarker,
		inner:        &ConstructedType{Kind: KindChoice},
		want:         TagExplicit,
	}, {
		desc:         "implicit default forced to explicit over ANY",
		tagDefault:   TagDefaultImplicit,
		implicitness: TagDefaultMarker,
		inner:        &SimpleType{Name: "ANY"},
		want:         TagExplicit,
	}, {
		desc:         "absent module default behaves as explicit",
		tagDefault:   TagDefaultAbsent,
		implicitness: TagDefaultMarker,
		inner:        &SimpleType{Name: "INTEGER"},
		want:         TagExplicit,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			m := NewModule("M", nil)
			m.TagDefault = tt.tagDefault
			r := NewResolver([]*Module{m})

			got, err := r.ResolveTagImplicitness(m, tt.implicitness, tt.inner)
			if err != nil {
				t.Fatalf("ResolveTagImplicitness failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveTagImplicitness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandComponentsOf(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER }
		B ::= SEQUENCE { COMPONENTS OF A, y INTEGER }
		C ::= SEQUENCE { COMPONENTS OF B, z INTEGER }
	END`)
	r := NewResolver([]*Module{m})

	cDecl := m.Assignments[2].(*TypeAssignment).Decl.(*ConstructedType)
	expanded, err := r.ExpandComponentsOf(m, cDecl.Components)
	if err != nil {
		t.Fatalf("ExpandComponentsOf failed: %v", err)
	}
	// COMPONENTS OF B should have recursively pulled in A's x, then B's
	// own y, before C's own z: x, y, z.
	if len(expanded) != 3 {
		t.Fatalf("got %d expanded components, want 3", len(expanded))
	}
	names := make([]string, len(expanded))
	for i, c := range expanded {
		nc, ok := c.(*NamedComponent)
		if !ok {
			t.Fatalf("expanded[%d] = %T, want *NamedComponent", i, c)
		}
		names[i] = nc.Identifier
	}
	want := []string{"x", "y", "z"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expanded component names = %v, want %v", names, want)
		}
	}
}

func TestExpandComponentsOfRejectsNonSequenceTarget(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= CHOICE { a INTEGER }
		B ::= SEQUENCE { COMPONENTS OF A }
	END`)
	r := NewResolver([]*Module{m})

	bDecl := m.Assignments[1].(*TypeAssignment).Decl.(*ConstructedType)
	if _, err := r.ExpandComponentsOf(m, bDecl.Components); err == nil {
		t.Fatal("ExpandComponentsOf succeeded, want an error since A is a CHOICE")
	}
}

func TestDescendants(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER, y BOOLEAN OPTIONAL }
	END`)

	var kinds []string
	for n := range Descendants(m) {
		switch n.(type) {
		case Assignment:
			kinds = append(kinds, "assignment")
		case *ConstructedType:
			kinds = append(kinds, "constructed")
		case *NamedComponent:
			kinds = append(kinds, "named")
		case *OptionalComponent:
			kinds = append(kinds, "optional")
		}
	}
	want := []string{"assignment", "constructed", "named", "optional"}
	if len(kinds) != len(want) {
		t.Fatalf("got %d descendants %v, want %v", len(kinds), kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("descendant[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestDescendantsEarlyStop(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER, y BOOLEAN }
	END`)

	count := 0
	for range Descendants(m) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iteration count = %d, want 2 (stopped early)", count)
	}
}
