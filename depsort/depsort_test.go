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

package depsort

import (
	"testing"

	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/ast"
)

func mustBuildOne(t *testing.T, src string) *asn1.Module {
	t.Helper()
	f, err := ast.Parse("test.asn1", []byte(src))
	if err != nil {
		t.Fatalf("ast.Parse failed: %v", err)
	}
	mods, err := asn1.BuildModules(f)
	if err != nil {
		t.Fatalf("BuildModules failed: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("got %d modules, want 1", len(mods))
	}
	return mods[0]
}

func namesOf(c Component) []string {
	out := make([]string, len(c.Assignments))
	for i, a := range c.Assignments {
		out[i] = a.AssignmentName()
	}
	return out
}

func TestSortAcyclicInSourceOrder(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= INTEGER
		B ::= BOOLEAN
	END`)
	got := Sort(m)
	if len(got) != 2 {
		t.Fatalf("got %d components, want 2 (each assignment its own singleton)", len(got))
	}
	if namesOf(got[0])[0] != "A" || namesOf(got[1])[0] != "B" {
		t.Errorf("component order = %v, %v, want A then B (source order)", namesOf(got[0]), namesOf(got[1]))
	}
	for _, c := range got {
		if c.Recursive() {
			t.Errorf("singleton component %v reported Recursive, want false", namesOf(c))
		}
	}
}

func TestSortForwardReference(t *testing.T) {
	// A references B, which is declared after it in source order. The
	// dependency-sorted order must still put B's component before A's,
	// since A's emitted code needs B already defined.
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { b B }
		B ::= INTEGER
	END`)
	got := Sort(m)
	if len(got) != 2 {
		t.Fatalf("got %d components, want 2", len(got))
	}
	if namesOf(got[0])[0] != "B" {
		t.Errorf("first component = %v, want B emitted before A", namesOf(got[0]))
	}
	if namesOf(got[1])[0] != "A" {
		t.Errorf("second component = %v, want A", namesOf(got[1]))
	}
}

func TestSortSelfReferenceIsRecursiveSingleton(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { next A OPTIONAL }
	END`)
	got := Sort(m)
	if len(got) != 1 {
		t.Fatalf("got %d components, want 1", len(got))
	}
	if !got[0].Recursive() {
		t.Error("self-referencing component reported non-recursive, want true")
	}
}

func TestSortMutualRecursionCluster(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { b B OPTIONAL }
		B ::= SEQUENCE { a A OPTIONAL }
	END`)
	got := Sort(m)
	if len(got) != 1 {
		t.Fatalf("got %d components, want 1 (A and B form one SCC)", len(got))
	}
	if !got[0].Recursive() {
		t.Error("mutual-recursion component reported non-recursive, want true")
	}
	names := namesOf(got[0])
	if len(names) != 2 {
		t.Fatalf("component has %d members %v, want 2", len(names), names)
	}
}

func TestSortComponentsOfEdge(t *testing.T) {
	// COMPONENTS OF X contributes a dependency edge on X even though X
	// isn't referenced through a named field.
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		B ::= SEQUENCE { COMPONENTS OF A, y INTEGER }
		A ::= SEQUENCE { x INTEGER }
	END`)
	got := Sort(m)
	if len(got) != 2 {
		t.Fatalf("got %d components, want 2", len(got))
	}
	if namesOf(got[0])[0] != "A" {
		t.Errorf("first component = %v, want A emitted before B", namesOf(got[0]))
	}
	if namesOf(got[1])[0] != "B" {
		t.Errorf("second component = %v, want B", namesOf(got[1]))
	}
}

func TestSortIgnoresImportedReferences(t *testing.T) {
	// A references an imported symbol C; since C isn't a local
	// assignment, it contributes no edge and A is its own component.
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		IMPORTS C FROM Other;
		A ::= SEQUENCE { c C }
	END`)
	got := Sort(m)
	if len(got) != 1 {
		t.Fatalf("got %d components, want 1", len(got))
	}
	if got[0].Recursive() {
		t.Error("component referencing only an imported symbol reported Recursive, want false")
	}
}
