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

// Package quickder is the second reference gen.BackEnd: it emits C
// header text in the style of asn2quickder.py — an "overlay" struct
// declaration describing how each assignment's DER encoding nests in
// memory, and a DER_PACK_ bytecode macro describing how to walk it with
// quick-der's der_pack()/der_unpack(). Like gen/pyasn1 this only emits
// declarations; no BER/DER codec runs inside this module.
package quickder

import (
	"fmt"
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
	unit       string
	info       gen.SourceInfo
}

// New constructs the quick-der reference back end. It satisfies
// gen.NewFunc; the emitted macro/struct names are prefixed with the
// module's own name rather than an output filename, since this package
// has no notion of the CLI's destination path.
func New(module *asn1.Module, resolver *asn1.Resolver, components []depsort.Component, sink gen.Sink, info gen.SourceInfo) gen.BackEnd {
	return &backend{module: module, resolver: resolver, components: components, sink: sink, unit: toCsym(module.Name), info: info}
}

func (b *backend) GenerateCode() error {
	b.sink.WriteLine(gen.Header("//", b.info.ToolName, b.info.Version, b.info.SourceBasename, b.info.LastModified))
	b.sink.WriteBlanks(1)
	b.sink.WriteLine("/*")
	b.sink.WriteLine(" * asn2quickder output for " + b.module.Name + " -- automatically generated")
	b.sink.WriteLine(" *")
	b.sink.WriteLine(" */")
	b.sink.WriteBlanks(1)
	b.sink.WriteLine("#include <quick-der/api.h>")
	b.sink.WriteBlanks(1)

	referenced := b.resolver.Modules()
	b.sink.WriteLine("/* This module " + b.unit + " depends on:")
	any := false
	for _, m := range referenced {
		if m == b.module {
			continue
		}
		b.sink.WriteLine(" *   " + toCsym(m.Name))
		any = true
	}
	if !any {
		b.sink.WriteLine(" *   (no other modules)")
	}
	b.sink.WriteLine(" */")
	b.sink.WriteBlanks(2)

	b.sink.WriteLine("/* Overlay structures with ASN.1 derived nesting and labelling */")
	b.sink.WriteBlanks(1)
	for _, component := range b.components {
		for _, a := range component.Assignments {
			ta, ok := a.(*asn1.TypeAssignment)
			if !ok {
				continue
			}
			ovly, err := b.ovlyTypeAssignment(ta)
			if err != nil {
				return err
			}
			b.sink.WriteBlock(ovly)
			b.sink.WriteBlanks(1)
		}
	}

	b.sink.WriteBlanks(1)
	b.sink.WriteLine("/* Parser definitions in terms of ASN.1 derived bytecode instructions */")
	b.sink.WriteBlanks(1)
	for _, component := range b.components {
		for _, a := range component.Assignments {
			ta, ok := a.(*asn1.TypeAssignment)
			if !ok {
				continue
			}
			pack, err := b.packTypeAssignment(ta)
			if err != nil {
				return err
			}
			b.sink.WriteBlock(pack)
			b.sink.WriteBlanks(1)
		}
	}

	b.sink.WriteBlanks(1)
	b.sink.WriteLine("/* asn2quickder output for " + b.module.Name + " ends here */")
	return nil
}

func (b *backend) ovlyTypeAssignment(ta *asn1.TypeAssignment) (string, error) {
	ovly, err := b.generateOvly(ta.Decl)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("typedef %s %s_%s_ovly;", ovly, b.unit, toCsym(ta.Name)), nil
}

func (b *backend) packTypeAssignment(ta *asn1.TypeAssignment) (string, error) {
	steps, err := b.generatePack(ta.Decl)
	if err != nil {
		return "", err
	}
	f := b.sink.Fragment()
	f.WriteLine(fmt.Sprintf("#define DER_PACK_%s_%s \\", b.unit, toCsym(ta.Name)))
	f.PushIndent()
	for i, step := range steps {
		if i < len(steps)-1 {
			f.WriteLine(step + ", \\")
		} else {
			f.WriteLine(step)
		}
	}
	f.PopIndent()
	return f.String(), nil
}

// generateOvly produces the C type expression occupying a struct field
// or typedef for t, the way ovly_funmap dispatches per node kind.
func (b *backend) generateOvly(t asn1.TypeNode) (string, error) {
	switch v := t.(type) {
	case *asn1.DefinedType:
		mod := v.ModuleRef
		if mod == "" {
			mod = b.unit
		} else {
			mod = toCsym(mod)
		}
		return fmt.Sprintf("%s_%s_ovly", mod, toCsym(v.Name)), nil
	case *asn1.TaggedType:
		return b.generateOvly(v.Inner)
	case *asn1.ConstructedType:
		return b.ovlyConstructedType(v)
	case *asn1.SimpleType, *asn1.CollectionType, *asn1.ValueListType, *asn1.BitStringType:
		return "dercursor", nil
	case *asn1.SelectionType:
		resolved, err := b.resolver.ResolveSelectionType(b.module, v)
		if err != nil {
			return "", err
		}
		return b.generateOvly(resolved)
	default:
		return "", fmt.Errorf("quickder: no overlay generator for %T", t)
	}
}

func (b *backend) ovlyConstructedType(t *asn1.ConstructedType) (string, error) {
	expanded, err := b.resolver.ExpandComponentsOf(b.module, t.Components)
	if err != nil {
		return "", err
	}
	f := b.sink.Fragment()
	f.WriteLine("struct {")
	f.PushIndent()
	for _, c := range expanded {
		name, decl, ok := componentParts(c)
		if !ok {
			continue
		}
		ovly, err := b.generateOvly(decl)
		if err != nil {
			return "", err
		}
		f.WriteLine(fmt.Sprintf("%s %s;", ovly, toCsym(name)))
	}
	f.PopIndent()
	f.WriteLine("}")
	return f.String(), nil
}

func componentParts(c asn1.ComponentType) (string, asn1.TypeNode, bool) {
	switch v := c.(type) {
	case *asn1.NamedComponent:
		return v.Identifier, v.Decl, true
	case *asn1.OptionalComponent:
		return v.Identifier, v.Decl, true
	case *asn1.DefaultedComponent:
		return v.Identifier, v.Decl, true
	default:
		return "", nil, false
	}
}

func componentOptional(c asn1.ComponentType) bool {
	_, ok := c.(*asn1.OptionalComponent)
	return ok
}

// generatePack produces the flat sequence of DER_PACK_* bytecode tokens
// walking t, the way pack_funmap's per-node generators append to a
// shared comma-joined output stream.
func (b *backend) generatePack(t asn1.TypeNode) ([]string, error) {
	switch v := t.(type) {
	case *asn1.DefinedType:
		mod := v.ModuleRef
		if mod == "" {
			mod = b.unit
		} else {
			mod = toCsym(mod)
		}
		return []string{fmt.Sprintf("DER_PACK_%s_%s", mod, toCsym(v.Name))}, nil
	case *asn1.TaggedType:
		return b.packTaggedType(v)
	case *asn1.SimpleType:
		return []string{fmt.Sprintf("DER_PACK_STORE | DER_TAG_%s", cTagName(v.Name))}, nil
	case *asn1.ConstructedType:
		return b.packConstructedType(v)
	case *asn1.CollectionType:
		return []string{"DER_PACK_STORE | DER_TAG_SEQUENCE"}, nil
	case *asn1.ValueListType:
		return []string{fmt.Sprintf("DER_PACK_STORE | DER_TAG_%s", cTagName(v.Keyword))}, nil
	case *asn1.BitStringType:
		return []string{"DER_PACK_STORE | DER_TAG_BIT_STRING"}, nil
	case *asn1.SelectionType:
		resolved, err := b.resolver.ResolveSelectionType(b.module, v)
		if err != nil {
			return nil, err
		}
		return b.generatePack(resolved)
	default:
		return nil, fmt.Errorf("quickder: no pack generator for %T", t)
	}
}

func (b *backend) packTaggedType(t *asn1.TaggedType) ([]string, error) {
	class := "CONTEXT"
	switch t.Class {
	case asn1.ClassUniversal:
		class = "UNIVERSAL"
	case asn1.ClassApplication:
		class = "APPLICATION"
	case asn1.ClassPrivate:
		class = "PRIVATE"
	}
	inner, err := b.generatePack(t.Inner)
	if err != nil {
		return nil, err
	}
	out := []string{fmt.Sprintf("DER_PACK_ENTER | DER_%s_TAG(%d)", class, t.Number)}
	out = append(out, inner...)
	out = append(out, "DER_PACK_LEAVE")
	return out, nil
}

func (b *backend) packConstructedType(t *asn1.ConstructedType) ([]string, error) {
	expanded, err := b.resolver.ExpandComponentsOf(b.module, t.Components)
	if err != nil {
		return nil, err
	}

	tag := "DER_TAG_SEQUENCE"
	if t.Kind == asn1.KindSet {
		tag = "DER_TAG_SET"
	}

	var out []string
	if t.Kind == asn1.KindChoice {
		out = append(out, "DER_TAG_CHOICE_BEGIN")
	} else {
		out = append(out, "DER_PACK_ENTER | "+tag)
	}

	for _, c := range expanded {
		_, decl, ok := componentParts(c)
		if !ok {
			continue
		}
		if componentOptional(c) {
			out = append(out, "DER_PACK_OPTIONAL")
		}
		inner, err := b.generatePack(decl)
		if err != nil {
			return nil, err
		}
		out = append(out, inner...)
	}

	if t.Kind == asn1.KindChoice {
		out = append(out, "DER_TAG_CHOICE_BEGIN")
	} else {
		out = append(out, "DER_PACK_LEAVE")
	}
	return out, nil
}

// cTagName upper-cases and underscores a built-in ASN.1 type keyword for
// use in a DER_TAG_* macro name.
func cTagName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// toCsym replaces characters a C identifier cannot carry, the way
// asn2quickder's toCsym does for ASN.1 symbol and module names.
func toCsym(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return token.SanitizeIdentifier(name, nil)
}
