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

// ComponentType is the tagged-variant interface for one SEQUENCE/SET/
// CHOICE member (spec.md §3.2).
type ComponentType interface {
	componentType()
}

// NamedComponent is a plain required field.
type NamedComponent struct {
	Identifier string
	Decl       TypeNode
}

func (*NamedComponent) componentType() {}

// OptionalComponent is a field marked OPTIONAL.
type OptionalComponent struct {
	Identifier string
	Decl       TypeNode
}

func (*OptionalComponent) componentType() {}

// DefaultedComponent is a field with a DEFAULT value.
type DefaultedComponent struct {
	Identifier string
	Decl       TypeNode
	Default    ValueNode
}

func (*DefaultedComponent) componentType() {}

// ComponentsOf is a literal "COMPONENTS OF X" inclusion. Per spec.md
// §4.2 it carries the raw referenced type expression and is not
// expanded during model building; expansion happens in the reference
// back end (spec.md §4.5) via Resolver.ExpandComponentsOf.
type ComponentsOf struct {
	Referenced TypeNode
}

func (*ComponentsOf) componentType() {}

// ExtensionMarker is the "..." placeholder. It preserves its position
// relative to sibling components (spec.md §3.2) but carries no data of
// its own.
type ExtensionMarker struct{}

func (ExtensionMarker) componentType() {}
