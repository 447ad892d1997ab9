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

package pyasn1

import (
	"strings"
	"testing"

	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/ast"
	"github.com/kimgr/asn1gen/depsort"
	"github.com/kimgr/asn1gen/gen"
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

func generate(t *testing.T, m *asn1.Module) string {
	t.Helper()
	r := asn1.NewResolver([]*asn1.Module{m})
	components := depsort.Sort(m)
	sink := gen.NewSink(4)
	info := gen.SourceInfo{ToolName: "asn1gen", Version: "test", SourceBasename: "test.asn1", LastModified: "2017-01-01T00:00:00Z"}
	be := New(m, r, components, sink, info)
	if err := be.GenerateCode(); err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	return sink.String()
}

func TestGenerateSimpleTypeAssignment(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= INTEGER
	END`)
	out := generate(t, m)
	if !strings.Contains(out, "from pyasn1.type import") {
		t.Errorf("output missing pyasn1 import:\n%s", out)
	}
	if !strings.Contains(out, "class A(univ.Integer):") {
		t.Errorf("output missing A's class definition:\n%s", out)
	}
}

func TestGenerateSequenceWithComponents(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER, y BOOLEAN OPTIONAL }
	END`)
	out := generate(t, m)
	if !strings.Contains(out, "class A(univ.Sequence):") {
		t.Errorf("output missing A's class header:\n%s", out)
	}
	if !strings.Contains(out, `namedtype.NamedType('x'`) {
		t.Errorf("output missing field x:\n%s", out)
	}
	if !strings.Contains(out, `namedtype.OptionalNamedType('y'`) {
		t.Errorf("output missing optional field y:\n%s", out)
	}
}

func TestGenerateEnumeration(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		Color ::= ENUMERATED { red(0), green(1), blue(2) }
	END`)
	out := generate(t, m)
	if !strings.Contains(out, "class Color(univ.Enumerated):") {
		t.Errorf("output missing Color's class header:\n%s", out)
	}
	if !strings.Contains(out, "('red', 0)") {
		t.Errorf("output missing enumeration member 'red':\n%s", out)
	}
}

func TestGenerateMutualRecursionUsesDeclThenDefn(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { b B OPTIONAL }
		B ::= SEQUENCE { a A OPTIONAL }
	END`)
	out := generate(t, m)
	declA := strings.Index(out, "class A(univ.Sequence):")
	declB := strings.Index(out, "class B(univ.Sequence):")
	if declA < 0 || declB < 0 {
		t.Fatalf("output missing one of A/B's declarations:\n%s", out)
	}
	setA := strings.Index(out, "A.componentType = namedtype.NamedTypes(")
	setB := strings.Index(out, "B.componentType = namedtype.NamedTypes(")
	if setA < 0 || setB < 0 {
		t.Fatalf("output missing one of A/B's component definitions:\n%s", out)
	}
	if !(declA < setA && declB < setA) {
		t.Errorf("A's definition must follow both declarations:\n%s", out)
	}
}
