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

package gen

import (
	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/depsort"
)

// BackEnd is the traversal contract of spec.md §4.5 / §6.3: a visitor
// over (module, dependency_sorted_components) constructed with the
// semantic module, a sink, and the set of modules visible for reference
// resolution. GenerateCode emits, for each component, all declarations
// before any definition (spec.md §4.5, §8 "Declaration-before-
// definition"); the core guarantees only that components arrive in
// dependency order (package depsort) and that a resolver is available —
// back ends own their output vocabulary entirely.
//
// This mirrors the teacher's LangMapper: one shared IR-walking core
// (here, the depsort component list plus asn1.Resolver) driving
// interchangeable per-target emitters (here, gen/pyasn1 and
// gen/quickder, the way ygen drives golangmapper.go and protogen.go).
type BackEnd interface {
	// GenerateCode runs the two-pass declaration-then-definition
	// traversal over every component and writes the result to the
	// sink supplied at construction time.
	GenerateCode() error
}

// SourceInfo carries the identifying details the spec.md §6.4 output
// banner reports: the generating tool and version, and the input file's
// name and modification time. The CLI driver fills this in from the
// source path it was given; back ends don't otherwise care where their
// input came from.
type SourceInfo struct {
	ToolName       string
	Version        string
	SourceBasename string
	LastModified   string
}

// NewFunc constructs a BackEnd for one module. Concrete back ends
// (gen/pyasn1, gen/quickder) each expose a matching constructor of this
// shape; the CLI driver selects one by name (spec.md §6.2 "-backend").
type NewFunc func(module *asn1.Module, resolver *asn1.Resolver, components []depsort.Component, sink Sink, info SourceInfo) BackEnd
