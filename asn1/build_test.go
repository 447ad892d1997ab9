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

	"github.com/kimgr/asn1gen/ast"
)

func mustBuildOne(t *testing.T, src string) *Module {
	t.Helper()
	f, err := ast.Parse("test.asn1", []byte(src))
	if err != nil {
		t.Fatalf("ast.Parse failed: %v", err)
	}
	mods, err := BuildModules(f)
	if err != nil {
		t.Fatalf("BuildModules failed: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("got %d modules, want 1", len(mods))
	}
	return mods[0]
}

func TestBuildModuleDefaults(t *testing.T) {
	tests := []struct {
		desc           string
		src            string
		wantTagDefault TagDefault
		wantExportAll  bool
	}{{
		desc:          "no tags clause, no exports clause",
		src:           "M DEFINITIONS ::= BEGIN A ::= INTEGER END",
		wantTagDefault: TagDefaultAbsent,
		wantExportAll: true,
	}, {
		desc:           "implicit tags",
		src:            "M DEFINITIONS IMPLICIT TAGS ::= BEGIN A ::= INTEGER END",
		wantTagDefault: TagDefaultImplicit,
		wantExportAll:  true,
	}, {
		desc:          "empty exports clause exports nothing",
		src:           "M DEFINITIONS ::= BEGIN EXPORTS ; A ::= INTEGER END",
		wantExportAll: false,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			m := mustBuildOne(t, tt.src)
			if m.TagDefault != tt.wantTagDefault {
				t.Errorf("TagDefault = %v, want %v", m.TagDefault, tt.wantTagDefault)
			}
			if m.Exports.ExportAll != tt.wantExportAll {
				t.Errorf("Exports.ExportAll = %v, want %v", m.Exports.ExportAll, tt.wantExportAll)
			}
		})
	}
}

func TestBuildRejectsDuplicateAssignments(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		A ::= INTEGER
		A ::= BOOLEAN
	END`
	f, err := ast.Parse("test.asn1", []byte(src))
	if err != nil {
		t.Fatalf("ast.Parse failed: %v", err)
	}
	if _, err := BuildModules(f); err == nil {
		t.Fatal("BuildModules succeeded, want an error for duplicate assignment name")
	} else if !strings.Contains(err.Error(), "A") {
		t.Errorf("error = %v, want it to mention the duplicate name %q", err, "A")
	}
}

func TestBuildSequenceComponents(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER, y BOOLEAN OPTIONAL, z BOOLEAN DEFAULT TRUE }
	END`
	m := mustBuildOne(t, src)
	ta := m.Assignments[0].(*TypeAssignment)
	ct := ta.Decl.(*ConstructedType)
	if ct.Kind != KindSequence {
		t.Fatalf("Kind = %v, want KindSequence", ct.Kind)
	}
	if len(ct.Components) != 3 {
		t.Fatalf("got %d components, want 3", len(ct.Components))
	}
	if _, ok := ct.Components[0].(*NamedComponent); !ok {
		t.Errorf("Components[0] = %T, want *NamedComponent", ct.Components[0])
	}
	opt, ok := ct.Components[1].(*OptionalComponent)
	if !ok {
		t.Fatalf("Components[1] = %T, want *OptionalComponent", ct.Components[1])
	}
	if opt.Identifier != "y" {
		t.Errorf("Identifier = %q, want %q", opt.Identifier, "y")
	}
	def, ok := ct.Components[2].(*DefaultedComponent)
	if !ok {
		t.Fatalf("Components[2] = %T, want *DefaultedComponent", ct.Components[2])
	}
	bv, ok := def.Default.(BooleanValue)
	if !ok || !bool(bv) {
		t.Errorf("Default = %#v, want BooleanValue(true)", def.Default)
	}
}

func TestBuildComponentsOfIsNotExpanded(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER }
		B ::= SEQUENCE { COMPONENTS OF A, y INTEGER }
	END`
	m := mustBuildOne(t, src)
	ta := m.Assignments[1].(*TypeAssignment)
	ct := ta.Decl.(*ConstructedType)
	if len(ct.Components) != 2 {
		t.Fatalf("got %d components, want 2 (unexpanded)", len(ct.Components))
	}
	co, ok := ct.Components[0].(*ComponentsOf)
	if !ok {
		t.Fatalf("Components[0] = %T, want *ComponentsOf", ct.Components[0])
	}
	ref, ok := co.Referenced.(*DefinedType)
	if !ok || ref.Name != "A" {
		t.Errorf("Referenced = %#v, want DefinedType{Name: %q}", co.Referenced, "A")
	}
}

func TestBuildValueListType(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		Color ::= ENUMERATED { red(0), green(1), blue(2), ... }
	END`
	m := mustBuildOne(t, src)
	ta := m.Assignments[0].(*TypeAssignment)
	vl, ok := ta.Decl.(*ValueListType)
	if !ok {
		t.Fatalf("Decl = %T, want *ValueListType", ta.Decl)
	}
	if vl.Keyword != "ENUMERATED" {
		t.Errorf("Keyword = %q, want %q", vl.Keyword, "ENUMERATED")
	}
	if len(vl.NamedValues) != 4 {
		t.Fatalf("got %d named values, want 4", len(vl.NamedValues))
	}
	last := vl.NamedValues[3]
	if !last.Extension {
		t.Errorf("last named value Extension = false, want true for the %q marker", "...")
	}
}

func TestBuildObjectIdentifierValue(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		id-m OBJECT IDENTIFIER ::= { iso org(3) 6 }
	END`
	m := mustBuildOne(t, src)
	va := m.Assignments[0].(*ValueAssignment)
	oid, ok := va.Val.(ObjectIdentifierValue)
	if !ok {
		t.Fatalf("Val = %T, want ObjectIdentifierValue", va.Val)
	}
	if len(oid.Components) != 3 {
		t.Fatalf("got %d components, want 3", len(oid.Components))
	}
	if _, ok := oid.Components[0].(OIDName); !ok {
		t.Errorf("Components[0] = %T, want OIDName", oid.Components[0])
	}
	nn, ok := oid.Components[1].(OIDNameAndNumber)
	if !ok || nn.Name != "org" || nn.Value != 3 {
		t.Errorf("Components[1] = %#v, want OIDNameAndNumber{org, 3}", oid.Components[1])
	}
	if _, ok := oid.Components[2].(OIDNumber); !ok {
		t.Errorf("Components[2] = %T, want OIDNumber", oid.Components[2])
	}
}

func TestBuildImports(t *testing.T) {
	src := `M DEFINITIONS ::= BEGIN
		IMPORTS C FROM Other;
		A ::= Other.C
	END`
	m := mustBuildOne(t, src)
	if len(m.Imports) != 1 {
		t.Fatalf("got %d import groups, want 1", len(m.Imports))
	}
	if m.Imports[0].FromModule != "Other" {
		t.Errorf("FromModule = %q, want %q", m.Imports[0].FromModule, "Other")
	}
	ta := m.Assignments[0].(*TypeAssignment)
	dt, ok := ta.Decl.(*DefinedType)
	if !ok || dt.ModuleRef != "Other" || dt.Name != "C" {
		t.Errorf("Decl = %#v, want DefinedType{ModuleRef: %q, Name: %q}", ta.Decl, "Other", "C")
	}
}
