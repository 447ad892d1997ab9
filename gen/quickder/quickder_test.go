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

package quickder

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

func generate(t *testing.T, resolverModules []*asn1.Module, m *asn1.Module) string {
	t.Helper()
	r := asn1.NewResolver(resolverModules)
	components := depsort.Sort(m)
	sink := gen.NewSink(4)
	info := gen.SourceInfo{ToolName: "asn1gen", Version: "test", SourceBasename: "test.asn1", LastModified: "2017-01-01T00:00:00Z"}
	be := New(m, r, components, sink, info)
	if err := be.GenerateCode(); err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	return sink.String()
}

func TestGenerateSimpleTypedef(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= INTEGER
	END`)
	out := generate(t, []*asn1.Module{m}, m)
	if !strings.Contains(out, "typedef dercursor M_A_ovly;") {
		t.Errorf("output missing A's overlay typedef:\n%s", out)
	}
	if !strings.Contains(out, "#define DER_PACK_M_A") {
		t.Errorf("output missing A's pack macro:\n%s", out)
	}
	if !strings.Contains(out, "DER_PACK_STORE | DER_TAG_INTEGER") {
		t.Errorf("output missing the INTEGER pack step:\n%s", out)
	}
}

func TestGenerateSequenceOverlayAndPack(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= SEQUENCE { x INTEGER, y BOOLEAN OPTIONAL }
	END`)
	out := generate(t, []*asn1.Module{m}, m)
	if !strings.Contains(out, "dercursor x;") {
		t.Errorf("output missing overlay field x:\n%s", out)
	}
	if !strings.Contains(out, "dercursor y;") {
		t.Errorf("output missing overlay field y:\n%s", out)
	}
	if !strings.Contains(out, "DER_PACK_ENTER | DER_TAG_SEQUENCE") {
		t.Errorf("output missing SEQUENCE enter step:\n%s", out)
	}
	if !strings.Contains(out, "DER_PACK_OPTIONAL") {
		t.Errorf("output missing OPTIONAL marker for y:\n%s", out)
	}
	if !strings.Contains(out, "DER_PACK_STORE | DER_TAG_BOOLEAN") {
		t.Errorf("output missing BOOLEAN store step:\n%s", out)
	}
	if !strings.Contains(out, "DER_PACK_LEAVE") {
		t.Errorf("output missing SEQUENCE leave step:\n%s", out)
	}
}

func TestGenerateChoiceFraming(t *testing.T) {
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		A ::= CHOICE { a INTEGER, b BOOLEAN }
	END`)
	out := generate(t, []*asn1.Module{m}, m)
	if got := strings.Count(out, "DER_TAG_CHOICE_BEGIN"); got != 2 {
		t.Errorf("got %d occurrences of DER_TAG_CHOICE_BEGIN, want 2 (frames both ends)", got)
	}
}

func TestGenerateCrossModuleDependencyComment(t *testing.T) {
	other := mustBuildOne(t, `Other DEFINITIONS ::= BEGIN
		C ::= BOOLEAN
	END`)
	m := mustBuildOne(t, `M DEFINITIONS ::= BEGIN
		IMPORTS C FROM Other;
		A ::= Other.C
	END`)
	out := generate(t, []*asn1.Module{m, other}, m)
	if !strings.Contains(out, "This module M depends on:") {
		t.Errorf("output missing dependency header:\n%s", out)
	}
	if !strings.Contains(out, "Other") {
		t.Errorf("output missing referenced module Other:\n%s", out)
	}
	if !strings.Contains(out, "Other_C_ovly") {
		t.Errorf("output missing cross-module overlay reference:\n%s", out)
	}
}
