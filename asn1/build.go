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
	"fmt"

	"github.com/kimgr/asn1gen/ast"
	"github.com/kimgr/asn1gen/asn1err"
	"github.com/kimgr/asn1gen/internal/errlist"
	"github.com/kimgr/asn1gen/token"
)

// BuildModules translates every ast.ModuleDefinition in f into a *Module,
// in source order, per spec.md §4.2. Each factory below extracts and
// validates its expected children, recurses into them, and never mutates
// a sibling's output — building one module never looks at another. A
// module that fails to build doesn't stop the others: every module's
// problems are collected into one errlist.Errors so a caller sees every
// broken module in one pass instead of fixing them one at a time.
func BuildModules(f *ast.File) ([]*Module, error) {
	mods := make([]*Module, 0, len(f.Modules))
	var errs errlist.Errors
	for _, md := range f.Modules {
		m, err := buildModule(md)
		if err != nil {
			errs = errlist.Append(errs, fmt.Errorf("module %s: %w", md.Name, err))
			continue
		}
		mods = append(mods, m)
	}
	if err := errlist.OrNil(errs); err != nil {
		return nil, err
	}
	return mods, nil
}

func buildModule(md *ast.ModuleDefinition) (*Module, error) {
	var oid []OIDComponent
	for _, c := range md.DefinitiveOID {
		oid = append(oid, buildOIDComponent(c))
	}

	assignments := make([]Assignment, 0, len(md.Assignments))
	var errs errlist.Errors
	for _, a := range md.Assignments {
		built, err := buildAssignment(a)
		if err != nil {
			errs = errlist.Append(errs, err)
			continue
		}
		assignments = append(assignments, built)
	}
	if err := errlist.OrNil(errs); err != nil {
		return nil, err
	}

	m := NewModule(md.Name, assignments)
	m.DefinitiveIdentifier = oid
	m.TagDefault = buildTagDefault(md.TagDefault)
	m.ExtensibilityImplied = md.ExtensibilityImplied
	m.Exports = buildExports(md.Exports)
	m.Imports = buildImports(md.Imports)

	if dups := m.DuplicateAssignments(); len(dups) > 0 {
		return nil, &asn1err.UnsupportedConstruct{Module: md.Name, Description: fmt.Sprintf("duplicate assignment name(s): %v", dups)}
	}
	return m, nil
}

func buildTagDefault(s string) TagDefault {
	switch s {
	case "EXPLICIT":
		return TagDefaultExplicit
	case "IMPLICIT":
		return TagDefaultImplicit
	case "AUTOMATIC":
		return TagDefaultAutomatic
	default:
		return TagDefaultAbsent
	}
}

// buildExports implements spec.md §3.2's *all* sentinel: an absent
// EXPORTS clause exports everything; a present-but-empty clause exports
// nothing.
func buildExports(e *ast.ExportsClause) *Exports {
	if e == nil {
		return &Exports{ExportAll: true}
	}
	names := make(map[string]bool, len(e.Names))
	for _, n := range e.Names {
		names[n] = true
	}
	return &Exports{Names: names}
}

func buildImports(im *ast.ImportsClause) []ImportGroup {
	if im == nil {
		return nil
	}
	groups := make([]ImportGroup, 0, len(im.Groups))
	for _, g := range im.Groups {
		groups = append(groups, ImportGroup{FromModule: g.Module, Symbols: g.Symbols})
	}
	return groups
}

func buildAssignment(a *ast.Assignment) (Assignment, error) {
	switch {
	case a.Type != nil:
		decl, err := buildType(a.Type.Type)
		if err != nil {
			return nil, fmt.Errorf("type assignment %s: %w", a.Type.Name, err)
		}
		return &TypeAssignment{Name: a.Type.Name, Decl: decl}, nil
	case a.Value != nil:
		decl, err := buildType(a.Value.Type)
		if err != nil {
			return nil, fmt.Errorf("value assignment %s: %w", a.Value.Name, err)
		}
		val, err := buildValue(a.Value.Value)
		if err != nil {
			return nil, fmt.Errorf("value assignment %s: %w", a.Value.Name, err)
		}
		return &ValueAssignment{Name: a.Value.Name, Decl: decl, Val: val}, nil
	default:
		return nil, fmt.Errorf("empty assignment node")
	}
}

// buildType is the table-dispatched Type factory of spec.md §4.2: it
// switches on which alternative the grammar populated (the statically
// typed equivalent of dispatching on a parse-tree tag) and recurses into
// children.
func buildType(t *ast.Type) (TypeNode, error) {
	switch {
	case t.Tagged != nil:
		return buildTaggedType(t.Tagged)
	case t.ValueList != nil:
		return buildValueListType(t.ValueList)
	case t.BitString != nil:
		return buildBitStringType(t.BitString)
	case t.Sequence != nil:
		return buildConstructedType(KindSequence, t.Sequence.Components)
	case t.Set != nil:
		return buildConstructedType(KindSet, t.Set.Components)
	case t.Choice != nil:
		return buildConstructedType(KindChoice, t.Choice.Components)
	case t.SequenceOf != nil:
		return buildCollectionType(KindSequenceOf, t.SequenceOf.Inner, t.SequenceOf.Constraint)
	case t.SetOf != nil:
		return buildCollectionType(KindSetOf, t.SetOf.Inner, t.SetOf.Constraint)
	case t.Selection != nil:
		inner, err := buildType(t.Selection.Inner)
		if err != nil {
			return nil, err
		}
		return &SelectionType{Identifier: t.Selection.Identifier, Inner: inner}, nil
	case t.Simple != nil:
		return buildSimpleType(t.Simple)
	case t.Defined != nil:
		c, err := buildConstraint(t.Defined.Constraint)
		if err != nil {
			return nil, err
		}
		return &DefinedType{ModuleRef: t.Defined.Module, Name: t.Defined.Name, Constraint: c}, nil
	default:
		return nil, fmt.Errorf("empty type node")
	}
}

func buildSimpleType(s *ast.SimpleType) (TypeNode, error) {
	c, err := buildConstraint(s.Constraint)
	if err != nil {
		return nil, err
	}
	name := s.Keyword
	switch {
	case s.ObjectIdentifier:
		name = "OBJECT IDENTIFIER"
	case s.OctetString:
		name = "OCTET STRING"
	case s.CharacterString:
		name = "CHARACTER STRING"
	case s.RestrictedCharacterString != "":
		name = s.RestrictedCharacterString
	case s.Any:
		name = "ANY"
	}
	return &SimpleType{Name: name, DefinedByRef: s.AnyDefinedBy, Constraint: c}, nil
}

func buildTaggedType(tt *ast.TaggedType) (TypeNode, error) {
	inner, err := buildType(tt.Inner)
	if err != nil {
		return nil, err
	}
	var class TagClass
	switch tt.Class {
	case "UNIVERSAL":
		class = ClassUniversal
	case "APPLICATION":
		class = ClassApplication
	case "PRIVATE":
		class = ClassPrivate
	default:
		class = ClassContext
	}
	impl := TagDefaultMarker
	switch tt.Implicitness {
	case "IMPLICIT":
		impl = TagImplicit
	case "EXPLICIT":
		impl = TagExplicit
	}
	return &TaggedType{Class: class, Number: tt.Number, Implicitness: impl, Inner: inner}, nil
}

func buildValueListType(v *ast.ValueListType) (TypeNode, error) {
	c, err := buildConstraint(v.Constraint)
	if err != nil {
		return nil, err
	}
	nvs := make([]NamedValue, 0, len(v.NamedValues))
	for _, nv := range v.NamedValues {
		nvs = append(nvs, NamedValue{Extension: nv.Ellipsis, Name: nv.Name, Number: int64(nv.Number)})
	}
	return &ValueListType{Keyword: v.Keyword, NamedValues: nvs, Constraint: c}, nil
}

func buildBitStringType(b *ast.BitStringType) (TypeNode, error) {
	c, err := buildConstraint(b.Constraint)
	if err != nil {
		return nil, err
	}
	nbs := make([]NamedValue, 0, len(b.NamedBits))
	for _, nb := range b.NamedBits {
		nbs = append(nbs, NamedValue{Extension: nb.Ellipsis, Name: nb.Name, Number: int64(nb.Number)})
	}
	return &BitStringType{NamedBits: nbs, Constraint: c}, nil
}

func buildConstructedType(kind ConstructedKind, comps []*ast.ComponentType) (TypeNode, error) {
	built := make([]ComponentType, 0, len(comps))
	for _, c := range comps {
		bc, err := buildComponentType(c)
		if err != nil {
			return nil, err
		}
		if kind == KindChoice {
			switch v := bc.(type) {
			case *OptionalComponent:
				return nil, fmt.Errorf("CHOICE alternative %s cannot be OPTIONAL", v.Identifier)
			case *DefaultedComponent:
				return nil, fmt.Errorf("CHOICE alternative %s cannot have a DEFAULT", v.Identifier)
			}
		}
		built = append(built, bc)
	}
	return &ConstructedType{Kind: kind, Components: built}, nil
}

func buildCollectionType(kind CollectionKind, inner *ast.Type, constraint *ast.Constraint) (TypeNode, error) {
	in, err := buildType(inner)
	if err != nil {
		return nil, err
	}
	c, err := buildConstraint(constraint)
	if err != nil {
		return nil, err
	}
	return &CollectionType{Kind: kind, Inner: in, SizeConstraint: c}, nil
}

func buildComponentType(c *ast.ComponentType) (ComponentType, error) {
	switch {
	case c.Ellipsis:
		return ExtensionMarker{}, nil
	case c.ComponentsOf != nil:
		ref, err := buildType(c.ComponentsOf)
		if err != nil {
			return nil, err
		}
		return &ComponentsOf{Referenced: ref}, nil
	case c.Named != nil:
		return buildNamedField(c.Named)
	default:
		return nil, fmt.Errorf("empty component node")
	}
}

func buildNamedField(n *ast.NamedField) (ComponentType, error) {
	decl, err := buildType(n.Type)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Default != nil:
		val, err := buildValue(n.Default)
		if err != nil {
			return nil, err
		}
		return &DefaultedComponent{Identifier: n.Name, Decl: decl, Default: val}, nil
	case n.Optional:
		return &OptionalComponent{Identifier: n.Name, Decl: decl}, nil
	default:
		return &NamedComponent{Identifier: n.Name, Decl: decl}, nil
	}
}

func buildConstraint(c *ast.Constraint) (Constraint, error) {
	if c == nil {
		return nil, nil
	}
	switch {
	case c.Size != nil:
		nested, err := buildConstraint(c.Size.Inner)
		if err != nil {
			return nil, err
		}
		return &SizeConstraint{Nested: nested}, nil
	case c.Range != nil:
		min, err := buildEndpoint(c.Range.Min)
		if err != nil {
			return nil, err
		}
		max, err := buildEndpoint(c.Range.Max)
		if err != nil {
			return nil, err
		}
		return &ValueRangeConstraint{Min: min, Max: max}, nil
	case c.Single != nil:
		v, err := buildValue(c.Single)
		if err != nil {
			return nil, err
		}
		return &SingleValueConstraint{Value: v}, nil
	default:
		return nil, fmt.Errorf("empty constraint node")
	}
}

func buildEndpoint(e *ast.Endpoint) (RangeEndpoint, error) {
	switch {
	case e.Min:
		return RangeEndpoint{IsMin: true}, nil
	case e.Max:
		return RangeEndpoint{IsMax: true}, nil
	default:
		v, err := buildValue(e.Value)
		if err != nil {
			return RangeEndpoint{}, err
		}
		return RangeEndpoint{Value: v}, nil
	}
}

func buildValue(v *ast.Value) (ValueNode, error) {
	switch {
	case v.Boolean != nil:
		return BooleanValue(*v.Boolean), nil
	case v.Null:
		return NullValue{}, nil
	case v.Real != nil:
		return RealValue(*v.Real), nil
	case v.Integer != nil:
		return IntegerValue(*v.Integer), nil
	case v.BString != nil:
		return BStringValue(stripQuotedSuffix(*v.BString, "B")), nil
	case v.HString != nil:
		return HStringValue(stripQuotedSuffix(*v.HString, "H")), nil
	case v.CString != nil:
		return CStringValue(unquote(*v.CString)), nil
	case v.OID != nil:
		comps := make([]OIDComponent, 0, len(v.OID.Components))
		for _, c := range v.OID.Components {
			comps = append(comps, buildOIDComponent(c))
		}
		return ObjectIdentifierValue{Components: comps}, nil
	case v.Ref != nil:
		return ReferencedValue{ModuleRef: v.Ref.Module, Name: v.Ref.Name}, nil
	default:
		return nil, fmt.Errorf("empty value node")
	}
}

func buildOIDComponent(c *ast.OIDComponent) OIDComponent {
	switch {
	case c.Module != "":
		return OIDQualifiedName{Module: c.Module, Name: c.Name}
	case c.Name != "" && c.Number != nil:
		return OIDNameAndNumber{Name: c.Name, Value: uint32(*c.Number)}
	case c.Name != "":
		return OIDName{Name: c.Name}
	default:
		return OIDNumber{Value: uint32(*c.Bare)}
	}
}

// stripQuotedSuffix strips the leading/trailing quote and trailing type
// letter from a bit-/hex-string literal, e.g. "'1010'B" -> "1010".
func stripQuotedSuffix(s, suffix string) string {
	if len(s) >= 2+len(suffix) {
		return s[1 : len(s)-1-len(suffix)]
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// This blank reference to the reserved-word table is package asn1's only
// use of package token; it exports nothing.
var _ = token.ReservedWords
