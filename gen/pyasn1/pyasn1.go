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

// Package pyasn1 is a reference gen.BackEnd that emits pyasn1-style
// class declarations, the way asn1ate's pyasn1gen.py does: a declaration
// pass that defines one Python class per assignment (empty body, just
// establishing the name and base class), followed by a definition pass
// that fills in componentType / subtypeSpec / tagSet assignments against
// those classes. It emits declaration text only — no BER/DER codec is
// implied or produced, matching spec.md's encoding Non-goal.
package pyasn1

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/depsort"
	"github.com/kimgr/asn1gen/gen"
	"github.com/kimgr/asn1gen/token"
)

type backend struct {
	module     *asn1.Module
	resolver   *asn1.Resolver
	components []depsort.Component
	sink       gen.Sink
	info       gen.SourceInfo
}

// New constructs the pyasn1 reference back end. It satisfies gen.NewFunc.
func New(module *asn1.Module, resolver *asn1.Resolver, components []depsort.Component, sink gen.Sink, info gen.SourceInfo) gen.BackEnd {
	return &backend{module: module, resolver: resolver, components: components, sink: sink, info: info}
}

func (b *backend) GenerateCode() error {
	b.sink.WriteLine(gen.Header("#", b.info.ToolName, b.info.Version, b.info.SourceBasename, b.info.LastModified))
	b.sink.WriteBlanks(1)
	b.sink.WriteLine("from pyasn1.type import univ, char, namedtype, namedval, tag, constraint, useful")

	referenced := b.resolver.Modules()
	sort.Slice(referenced, func(i, j int) bool { return referenced[i].Name < referenced[j].Name })
	for _, m := range referenced {
		if m != b.module {
			b.sink.WriteLine("import " + sanitizeModule(m.Name))
		}
	}
	b.sink.WriteBlanks(2)

	if hasObjectIdentifierValue(b.module) {
		b.sink.WriteBlock(b.generateOID())
		b.sink.WriteBlanks(2)
	}

	for _, component := range b.components {
		for _, a := range component.Assignments {
			decl, err := b.generateDecl(a)
			if err != nil {
				return err
			}
			b.sink.WriteBlock(decl)
			b.sink.WriteBlanks(2)
		}
		for _, a := range component.Assignments {
			defn, err := b.generateDefinition(a)
			if err != nil {
				return err
			}
			if defn != "" {
				b.sink.WriteBlock(defn)
				b.sink.WriteBlanks(2)
			}
		}
	}
	return nil
}

func hasObjectIdentifierValue(module *asn1.Module) bool {
	found := false
	for n := range asn1.Descendants(module) {
		if _, ok := n.(asn1.ObjectIdentifierValue); ok {
			found = true
			break
		}
	}
	return found
}

func (b *backend) generateDecl(a asn1.Assignment) (string, error) {
	switch v := a.(type) {
	case *asn1.TypeAssignment:
		return b.declTypeAssignment(v)
	case *asn1.ValueAssignment:
		return b.declValueAssignment(v)
	default:
		return "", fmt.Errorf("pyasn1: unexpected assignment type %T", a)
	}
}

func (b *backend) generateDefinition(a asn1.Assignment) (string, error) {
	ta, ok := a.(*asn1.TypeAssignment)
	if !ok {
		return "", nil
	}
	return b.generateDefn(sanitizeIdentifier(ta.Name), ta.Decl)
}

func (b *backend) declTypeAssignment(ta *asn1.TypeAssignment) (string, error) {
	typeDecl := ta.Decl
	if sel, ok := typeDecl.(*asn1.SelectionType); ok {
		resolved, err := b.resolver.ResolveSelectionType(b.module, sel)
		if err != nil {
			return "", err
		}
		typeDecl = resolved
	}

	baseName, err := b.baseTypeName(typeDecl)
	if err != nil {
		return "", err
	}

	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("class %s(%s):", sanitizeIdentifier(ta.Name), baseName))
	f.PushIndent()
	f.WriteLine("pass")
	f.PopIndent()
	return f.String(), nil
}

func (b *backend) declValueAssignment(va *asn1.ValueAssignment) (string, error) {
	expr, err := b.buildValueConstructExpr(va.Decl, va.Val)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %s", sanitizeIdentifier(va.Name), expr), nil
}

// baseTypeName derives the pyasn1 base-class name a declaration should
// subclass, walking through Tagged/Selection wrappers the way the
// original tool's type_decl.type_name attribute does implicitly.
func (b *backend) baseTypeName(t asn1.TypeNode) (string, error) {
	switch v := t.(type) {
	case *asn1.SimpleType:
		return translateType(v.Name), nil
	case *asn1.ValueListType:
		return translateType(v.Keyword), nil
	case *asn1.BitStringType:
		return translateType("BIT STRING"), nil
	case *asn1.ConstructedType:
		return translateType(constructedKeyword(v.Kind)), nil
	case *asn1.CollectionType:
		return translateType(collectionKeyword(v.Kind)), nil
	case *asn1.TaggedType:
		return b.baseTypeName(v.Inner)
	case *asn1.DefinedType:
		name := translateType(v.Name)
		if v.ModuleRef != "" && v.ModuleRef != b.module.Name {
			name = sanitizeModule(v.ModuleRef) + "." + name
		}
		return name, nil
	case *asn1.SelectionType:
		resolved, err := b.resolver.ResolveSelectionType(b.module, v)
		if err != nil {
			return "", err
		}
		return b.baseTypeName(resolved)
	default:
		return "", fmt.Errorf("pyasn1: unexpected type node %T", t)
	}
}

func constructedKeyword(k asn1.ConstructedKind) string {
	switch k {
	case asn1.KindSet:
		return "SET"
	case asn1.KindChoice:
		return "CHOICE"
	default:
		return "SEQUENCE"
	}
}

func collectionKeyword(k asn1.CollectionKind) string {
	if k == asn1.KindSetOf {
		return "SET OF"
	}
	return "SEQUENCE OF"
}

func (b *backend) generateDefn(className string, t asn1.TypeNode) (string, error) {
	switch v := t.(type) {
	case *asn1.SimpleType:
		return b.defnSimpleType(className, v)
	case *asn1.DefinedType:
		return "", nil
	case *asn1.ConstructedType:
		return b.defnConstructedType(className, v)
	case *asn1.TaggedType:
		return b.defnTaggedType(className, v)
	case *asn1.SelectionType:
		return "", nil
	case *asn1.ValueListType:
		return b.defnValueListType(className, v)
	case *asn1.BitStringType:
		return b.defnBitstringType(className, v)
	case *asn1.CollectionType:
		return b.defnCollectionType(className, v)
	default:
		return "", fmt.Errorf("pyasn1: unexpected type node %T", t)
	}
}

func (b *backend) generateExpr(t asn1.TypeNode) (string, error) {
	switch v := t.(type) {
	case *asn1.TaggedType:
		return b.inlineTaggedType(v)
	case *asn1.SelectionType:
		return b.inlineSelectionType(v)
	case *asn1.SimpleType:
		return b.inlineSimpleType(v)
	case *asn1.DefinedType:
		return b.inlineDefinedType(v)
	case *asn1.ConstructedType:
		return b.inlineConstructedType(v)
	case *asn1.CollectionType:
		return b.inlineCollectionType(v)
	case *asn1.ValueListType:
		return b.inlineValueListType(v)
	case *asn1.BitStringType:
		return b.inlineSimpleType(&asn1.SimpleType{Name: "BIT STRING", Constraint: v.Constraint})
	default:
		return "", fmt.Errorf("pyasn1: unexpected type node %T", t)
	}
}

func (b *backend) defnSimpleType(className string, t *asn1.SimpleType) (string, error) {
	if t.Constraint == nil {
		return "", nil
	}
	expr, err := b.buildConstraintExpr(t.Constraint)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.subtypeSpec = %s", className, expr), nil
}

func (b *backend) defnConstructedType(className string, t *asn1.ConstructedType) (string, error) {
	inline, err := b.inlineComponentTypes(t.Components)
	if err != nil {
		return "", err
	}
	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("%s.componentType = namedtype.NamedTypes(", className))
	f.PushIndent()
	f.WriteBlock(inline)
	f.PopIndent()
	f.WriteLine(")")
	return f.String(), nil
}

func (b *backend) defnTaggedType(className string, t *asn1.TaggedType) (string, error) {
	implicitness, err := b.resolver.ResolveTagImplicitness(b.module, t.Implicitness, t.Inner)
	if err != nil {
		return "", err
	}
	var word string
	switch implicitness {
	case asn1.TagImplicit:
		word = "tagImplicitly"
	case asn1.TagExplicit:
		word = "tagExplicitly"
	default:
		return "", fmt.Errorf("pyasn1: unresolved tag implicitness on %s", className)
	}

	baseName, err := b.baseTypeName(t.Inner)
	if err != nil {
		return "", err
	}
	tagExpr, err := b.buildTagExpr(t)
	if err != nil {
		return "", err
	}

	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("%s.tagSet = %s.tagSet.%s(%s)", className, baseName, word, tagExpr))
	nested, err := b.generateDefn(className, t.Inner)
	if err != nil {
		return "", err
	}
	if nested != "" {
		f.WriteBlock(nested)
	}
	return f.String(), nil
}

func (b *backend) defnValueListType(className string, t *asn1.ValueListType) (string, error) {
	f := b.sink.Fragment()
	if len(t.NamedValues) > 0 {
		f.WriteLine(fmt.Sprintf("%s.namedValues = namedval.NamedValues(", className))
		f.PushIndent()
		f.WriteBlock(namedValueEnumeration(t.NamedValues))
		f.PopIndent()
		f.WriteLine(")")
	}
	if t.Constraint != nil {
		expr, err := b.buildConstraintExpr(t.Constraint)
		if err != nil {
			return "", err
		}
		f.WriteLine(fmt.Sprintf("%s.subtypeSpec=%s", className, expr))
	}
	return f.String(), nil
}

func (b *backend) defnBitstringType(className string, t *asn1.BitStringType) (string, error) {
	f := b.sink.Fragment()
	if len(t.NamedBits) > 0 {
		f.WriteLine(fmt.Sprintf("%s.namedValues = namedval.NamedValues(", className))
		f.PushIndent()
		f.WriteBlock(namedValueEnumeration(t.NamedBits))
		f.PopIndent()
		f.WriteLine(")")
	}
	if t.Constraint != nil {
		expr, err := b.buildConstraintExpr(t.Constraint)
		if err != nil {
			return "", err
		}
		f.WriteLine(fmt.Sprintf("%s.subtypeSpec=%s", className, expr))
	}
	return f.String(), nil
}

func (b *backend) defnCollectionType(className string, t *asn1.CollectionType) (string, error) {
	inner, err := b.generateExpr(t.Inner)
	if err != nil {
		return "", err
	}
	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("%s.componentType = %s", className, inner))
	if t.SizeConstraint != nil {
		expr, err := b.buildConstraintExpr(t.SizeConstraint)
		if err != nil {
			return "", err
		}
		f.WriteLine(fmt.Sprintf("%s.subtypeSpec=%s", className, expr))
	}
	return f.String(), nil
}

func (b *backend) inlineSimpleType(t *asn1.SimpleType) (string, error) {
	expr := translateType(t.Name) + "()"
	if t.Constraint != nil {
		c, err := b.buildConstraintExpr(t.Constraint)
		if err != nil {
			return "", err
		}
		expr += fmt.Sprintf(".subtype(subtypeSpec=%s)", c)
	}
	return expr, nil
}

func (b *backend) inlineDefinedType(t *asn1.DefinedType) (string, error) {
	expr := translateType(t.Name) + "()"
	if t.ModuleRef != "" && t.ModuleRef != b.module.Name {
		expr = sanitizeModule(t.ModuleRef) + "." + expr
	}
	return expr, nil
}

func (b *backend) inlineConstructedType(t *asn1.ConstructedType) (string, error) {
	inline, err := b.inlineComponentTypes(t.Components)
	if err != nil {
		return "", err
	}
	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("%s(componentType=namedtype.NamedTypes(", translateType(constructedKeyword(t.Kind))))
	f.PushIndent()
	f.WriteBlock(inline)
	f.PopIndent()
	f.WriteLine("))")
	return f.String(), nil
}

func (b *backend) inlineCollectionType(t *asn1.CollectionType) (string, error) {
	inner, err := b.generateExpr(t.Inner)
	if err != nil {
		return "", err
	}
	expr := fmt.Sprintf("%s(componentType=%s)", translateType(collectionKeyword(t.Kind)), inner)
	if t.SizeConstraint != nil {
		c, err := b.buildConstraintExpr(t.SizeConstraint)
		if err != nil {
			return "", err
		}
		expr += fmt.Sprintf(".subtype(subtypeSpec=%s)", c)
	}
	return expr, nil
}

func (b *backend) inlineValueListType(t *asn1.ValueListType) (string, error) {
	className := translateType(t.Keyword)
	if len(t.NamedValues) == 0 {
		return className + "()", nil
	}
	var parts []string
	for _, v := range t.NamedValues {
		if v.Extension {
			continue
		}
		parts = append(parts, fmt.Sprintf("('%s', %d)", v.Name, v.Number))
	}
	return fmt.Sprintf("%s(namedValues=namedval.NamedValues(%s))", className, strings.Join(parts, ", ")), nil
}

// inlineComponentTypes expands any COMPONENTS OF members before emitting
// one enumerated line per component, dropping extension markers the way
// the original tool's inline_component_types does.
func (b *backend) inlineComponentTypes(components []asn1.ComponentType) (string, error) {
	expanded, err := b.resolver.ExpandComponentsOf(b.module, components)
	if err != nil {
		return "", err
	}

	f := b.sink.Fragment()
	var exprs []string
	for _, c := range expanded {
		if _, ok := c.(asn1.ExtensionMarker); ok {
			continue
		}
		expr, err := b.inlineComponentType(c)
		if err != nil {
			return "", err
		}
		exprs = append(exprs, expr)
	}
	writeEnumeration(f, exprs)
	return f.String(), nil
}

func (b *backend) inlineComponentType(c asn1.ComponentType) (string, error) {
	switch v := c.(type) {
	case *asn1.NamedComponent:
		inner, err := b.generateExpr(v.Decl)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("namedtype.NamedType('%s', %s)", v.Identifier, inner), nil
	case *asn1.OptionalComponent:
		inner, err := b.generateExpr(v.Decl)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("namedtype.OptionalNamedType('%s', %s)", v.Identifier, inner), nil
	case *asn1.DefaultedComponent:
		inner, err := b.generateExpr(v.Decl)
		if err != nil {
			return "", err
		}
		defaultExpr, err := b.translateValue(v.Default)
		if err != nil {
			return "", err
		}
		inner += fmt.Sprintf(".subtype(value=%s)", defaultExpr)
		return fmt.Sprintf("namedtype.DefaultedNamedType('%s', %s)", v.Identifier, inner), nil
	default:
		return "", fmt.Errorf("pyasn1: unexpected component %T", c)
	}
}

func (b *backend) inlineTaggedType(t *asn1.TaggedType) (string, error) {
	implicitness, err := b.resolver.ResolveTagImplicitness(b.module, t.Implicitness, t.Inner)
	if err != nil {
		return "", err
	}
	var word string
	switch implicitness {
	case asn1.TagImplicit:
		word = "implicitTag"
	case asn1.TagExplicit:
		word = "explicitTag"
	default:
		return "", fmt.Errorf("pyasn1: unresolved tag implicitness")
	}

	inner, err := b.generateExpr(t.Inner)
	if err != nil {
		return "", err
	}
	tagExpr, err := b.buildTagExpr(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.subtype(%s=%s)", inner, word, tagExpr), nil
}

func (b *backend) inlineSelectionType(t *asn1.SelectionType) (string, error) {
	selected, err := b.resolver.ResolveSelectionType(b.module, t)
	if err != nil {
		return "", err
	}
	return b.generateExpr(selected)
}

func (b *backend) buildTagExpr(t *asn1.TaggedType) (string, error) {
	context := translateTagClass(t.Class)

	resolved, _, err := b.resolver.ResolveTypeDecl(b.module, t.Inner)
	if err != nil {
		return "", err
	}
	format := "tag.tagFormatSimple"
	if _, ok := resolved.(*asn1.ConstructedType); ok {
		format = "tag.tagFormatConstructed"
	}
	return fmt.Sprintf("tag.Tag(%s, %s, %d)", context, format, t.Number), nil
}

func (b *backend) buildConstraintExpr(c asn1.Constraint) (string, error) {
	switch v := c.(type) {
	case *asn1.SingleValueConstraint:
		val, err := b.translateValue(v.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("constraint.SingleValueConstraint(%s)", val), nil
	case *asn1.SizeConstraint:
		minExpr, maxExpr, err := b.unpackSizeConstraint(v.Nested)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("constraint.ValueSizeConstraint(%s, %s)", minExpr, maxExpr), nil
	case *asn1.ValueRangeConstraint:
		minExpr, err := b.translateEndpoint(v.Min)
		if err != nil {
			return "", err
		}
		maxExpr, err := b.translateEndpoint(v.Max)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("constraint.ValueRangeConstraint(%s, %s)", minExpr, maxExpr), nil
	default:
		return "", fmt.Errorf("pyasn1: unrecognized constraint type %T", c)
	}
}

func (b *backend) unpackSizeConstraint(nested asn1.Constraint) (string, string, error) {
	switch v := nested.(type) {
	case *asn1.SingleValueConstraint:
		val, err := b.translateValue(v.Value)
		if err != nil {
			return "", "", err
		}
		return val, val, nil
	case *asn1.ValueRangeConstraint:
		minExpr, err := b.translateEndpoint(v.Min)
		if err != nil {
			return "", "", err
		}
		maxExpr, err := b.translateEndpoint(v.Max)
		if err != nil {
			return "", "", err
		}
		return minExpr, maxExpr, nil
	default:
		return "", "", fmt.Errorf("pyasn1: unrecognized nested size constraint type %T", nested)
	}
}

func (b *backend) translateEndpoint(e asn1.RangeEndpoint) (string, error) {
	if e.IsMin {
		return "MIN", nil
	}
	if e.IsMax {
		return "MAX", nil
	}
	return b.translateValue(e.Value)
}

func (b *backend) buildValueConstructExpr(typeDecl asn1.TypeNode, value asn1.ValueNode) (string, error) {
	if oid, ok := value.(asn1.ObjectIdentifierValue); ok {
		return b.buildObjectIdentifierValue(oid)
	}

	baseName, err := b.baseTypeName(typeDecl)
	if err != nil {
		return "", err
	}
	root, _, err := b.resolver.ResolveTypeDecl(b.module, typeDecl)
	if err != nil {
		return "", err
	}
	valueExpr, err := b.buildValueExpr(root, value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", baseName, valueExpr), nil
}

// buildValueExpr gives bit- and hex-string literals pyasn1's two
// construction forms (binValue/hexValue keyword args for OCTET STRING,
// quoted literal text otherwise); everything else falls through to
// translateValue.
func (b *backend) buildValueExpr(root asn1.TypeNode, value asn1.ValueNode) (string, error) {
	rootName := ""
	if st, ok := root.(*asn1.SimpleType); ok {
		rootName = st.Name
	}

	switch v := value.(type) {
	case asn1.BStringValue:
		if rootName == "OCTET STRING" {
			return fmt.Sprintf("binValue='%s'", string(v)), nil
		}
		return fmt.Sprintf("\"'%s'B\"", string(v)), nil
	case asn1.HStringValue:
		if rootName == "OCTET STRING" {
			return fmt.Sprintf("hexValue='%s'", string(v)), nil
		}
		return fmt.Sprintf("\"'%s'H\"", string(v)), nil
	default:
		return b.translateValue(value)
	}
}

func (b *backend) buildObjectIdentifierValue(oid asn1.ObjectIdentifierValue) (string, error) {
	parts := make([]string, 0, len(oid.Components))
	for _, c := range oid.Components {
		switch v := c.(type) {
		case asn1.OIDName:
			if n, ok := token.StandardArcs[v.Name]; ok {
				parts = append(parts, fmt.Sprintf("%d", n))
			} else {
				parts = append(parts, sanitizeIdentifier(v.Name))
			}
		case asn1.OIDNumber:
			parts = append(parts, fmt.Sprintf("%d", v.Value))
		case asn1.OIDNameAndNumber:
			parts = append(parts, fmt.Sprintf("%d", v.Value))
		case asn1.OIDQualifiedName:
			parts = append(parts, sanitizeModule(v.Module)+"."+sanitizeIdentifier(v.Name))
		default:
			return "", fmt.Errorf("pyasn1: unexpected OID component %T", c)
		}
	}
	return fmt.Sprintf("_OID(%s)", strings.Join(parts, ", ")), nil
}

func (b *backend) generateOID() string {
	f := b.sink.Fragment()
	f.WriteLine("def _OID(*components):")
	f.PushIndent()
	f.WriteLine("output = []")
	f.WriteLine("for x in tuple(components):")
	f.PushIndent()
	f.WriteLine("if isinstance(x, univ.ObjectIdentifier):")
	f.PushIndent()
	f.WriteLine("output.extend(list(x))")
	f.PopIndent()
	f.WriteLine("else:")
	f.PushIndent()
	f.WriteLine("output.append(int(x))")
	f.PopIndent()
	f.PopIndent()
	f.WriteBlanks(1)
	f.WriteLine("return univ.ObjectIdentifier(output)")
	f.PopIndent()
	return f.String()
}

// translateValue maps an ASN.1 literal or reference to its pyasn1 source
// text, the way the original tool's translate_value does.
func (b *backend) translateValue(value asn1.ValueNode) (string, error) {
	var v string
	switch val := value.(type) {
	case asn1.ReferencedValue:
		v = sanitizeIdentifier(val.Name)
		if val.ModuleRef != "" && val.ModuleRef != b.module.Name {
			v = sanitizeModule(val.ModuleRef) + "." + v
		}
	case asn1.BooleanValue:
		if val {
			v = "1"
		} else {
			v = "0"
		}
		return v, nil
	case asn1.IntegerValue:
		return fmt.Sprintf("%d", int64(val)), nil
	case asn1.RealValue:
		return fmt.Sprintf("%v", float64(val)), nil
	case asn1.NullValue:
		return "None", nil
	case asn1.CStringValue:
		return fmt.Sprintf("'%s'", string(val)), nil
	case asn1.BStringValue:
		v = string(val)
	case asn1.HStringValue:
		v = string(val)
	case asn1.ObjectIdentifierValue:
		return b.buildObjectIdentifierValue(val)
	default:
		return "", fmt.Errorf("pyasn1: unexpected value node %T", value)
	}
	if builtin, ok := asn1BuiltinValues[v]; ok {
		return builtin, nil
	}
	return v, nil
}

func namedValueEnumeration(values []asn1.NamedValue) string {
	var parts []string
	for _, v := range values {
		if v.Extension {
			continue
		}
		parts = append(parts, fmt.Sprintf("('%s', %d)", v.Name, v.Number))
	}
	return strings.Join(parts, ",\n")
}

// writeEnumeration writes each expr on its own line, comma-terminated
// except for the last, mirroring PythonWriter.write_enumeration.
func writeEnumeration(f gen.Sink, exprs []string) {
	for i, e := range exprs {
		if i < len(exprs)-1 {
			f.WriteLine(e + ",")
		} else {
			f.WriteLine(e)
		}
	}
}

var asn1TagContexts = map[asn1.TagClass]string{
	asn1.ClassApplication: "tag.tagClassApplication",
	asn1.ClassPrivate:     "tag.tagClassPrivate",
	asn1.ClassUniversal:   "tag.tagClassUniversal",
}

func translateTagClass(class asn1.TagClass) string {
	if s, ok := asn1TagContexts[class]; ok {
		return s
	}
	return "tag.tagClassContext"
}

var asn1BuiltinValues = map[string]string{
	"FALSE": "0",
	"TRUE":  "1",
}

var asn1BuiltinTypes = map[string]string{
	"ANY":              "univ.Any",
	"INTEGER":          "univ.Integer",
	"BOOLEAN":          "univ.Boolean",
	"NULL":             "univ.Null",
	"ENUMERATED":       "univ.Enumerated",
	"REAL":             "univ.Real",
	"BIT STRING":       "univ.BitString",
	"OCTET STRING":     "univ.OctetString",
	"CHOICE":           "univ.Choice",
	"SEQUENCE":         "univ.Sequence",
	"SET":              "univ.Set",
	"SEQUENCE OF":      "univ.SequenceOf",
	"SET OF":           "univ.SetOf",
	"OBJECT IDENTIFIER": "univ.ObjectIdentifier",
	"UTF8String":        "char.UTF8String",
	"GeneralString":      "char.GeneralString",
	"NumericString":      "char.NumericString",
	"PrintableString":    "char.PrintableString",
	"IA5String":          "char.IA5String",
	"GraphicString":      "char.GraphicString",
	"GeneralizedTime":    "useful.GeneralizedTime",
	"UTCTime":            "useful.UTCTime",
	"ObjectDescriptor":   "useful.ObjectDescriptor",
	"VisibleString":      "char.VisibleString",
	"TeletexString":      "char.TeletexString",
	"UniversalString":    "char.UniversalString",
	"BMPString":          "char.BMPString",
	"T61String":          "char.T61String",
	"VideotexString":     "char.VideotexString",
}

func translateType(name string) string {
	name = sanitizeIdentifier(name)
	if s, ok := asn1BuiltinTypes[name]; ok {
		return s
	}
	return name
}

// pythonKeywords is the subset of keyword.kwlist asn1ate's
// _sanitize_identifier guards against; generated names colliding with
// one of these get a trailing underscore appended.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true,
	"for": true, "from": true, "global": true, "if": true,
	"import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

func sanitizeIdentifier(name string) string {
	return token.SanitizeIdentifier(name, pythonKeywords)
}

func sanitizeModule(name string) string {
	return strings.ToLower(sanitizeIdentifier(name))
}
