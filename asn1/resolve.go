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

	"github.com/kimgr/asn1gen/asn1err"
)

// Resolver implements the four name-resolution primitives of spec.md
// §4.4. It is constructed once per pipeline invocation over the set of
// modules visible to the current compilation unit (the module being
// processed plus whatever referenced_modules the caller supplies), the
// same "index built once, queried many times" shape as gomib's
// resolverContext and ygot's genState.
type Resolver struct {
	modules map[string]*Module

	// cache memoizes resolve_type_decl results keyed by
	// "moduleName.typeName", per spec.md §9's suggested cache lifetime
	// (one pipeline invocation).
	cache map[string]resolvedType
}

type resolvedType struct {
	node TypeNode
	mod  *Module
}

// NewResolver builds a Resolver over modules. modules must include every
// module that local and imported DefinedType/ReferencedValue references
// may target; this is the "referenced_modules" list of spec.md §4.4.
func NewResolver(modules []*Module) *Resolver {
	idx := make(map[string]*Module, len(modules))
	for _, m := range modules {
		idx[m.Name] = m
	}
	return &Resolver{modules: idx, cache: make(map[string]resolvedType)}
}

// Modules returns every module this Resolver was constructed over, in no
// particular order. Back ends use this to emit cross-module import
// statements for the full referenced_modules set (spec.md §4.5, §6.3),
// since the resolver is already the one place holding that set.
func (r *Resolver) Modules() []*Module {
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	return out
}

// ResolveTypeDecl follows DefinedType and TaggedType chains starting from
// node, within the context of module, until it reaches the underlying
// constructed or primitive type (spec.md §4.4). It returns the resolved
// TypeNode together with the module that owns it (useful for a
// DefinedType whose target lives in an imported module).
func (r *Resolver) ResolveTypeDecl(module *Module, node TypeNode) (TypeNode, *Module, error) {
	seen := make(map[string]bool)
	return r.resolveTypeDecl(module, node, seen)
}

func (r *Resolver) resolveTypeDecl(module *Module, node TypeNode, seen map[string]bool) (TypeNode, *Module, error) {
	switch n := node.(type) {
	case *DefinedType:
		targetMod := module
		if n.ModuleRef != "" {
			m, ok := r.modules[n.ModuleRef]
			if !ok {
				return nil, nil, &asn1err.UndefinedReference{Module: module.Name, Referrer: n.Name, Target: n.ModuleRef}
			}
			targetMod = m
		}
		key := targetMod.Name + "." + n.Name
		if cached, ok := r.cache[key]; ok {
			return cached.node, cached.mod, nil
		}
		if seen[key] {
			// Self/mutually-recursive DefinedType chain: spec.md §4.3
			// treats this as a recursion cluster, not a resolver error;
			// stop unwinding and hand back the reference itself so the
			// back end can still emit a named reference.
			return node, targetMod, nil
		}
		seen[key] = true

		a, ok := targetMod.Lookup(n.Name)
		if !ok {
			if targetMod == module {
				if from, sym, ok2 := lookupImport(module, n.Name); ok2 {
					if _, supplied := r.modules[from]; supplied {
						return r.resolveTypeDecl(module, &DefinedType{ModuleRef: from, Name: sym}, seen)
					}
					return nil, nil, &asn1err.UndefinedReference{Module: from, Referrer: module.Name, Target: sym}
				}
			}
			return nil, nil, &asn1err.UndefinedReference{Module: targetMod.Name, Referrer: module.Name, Target: n.Name}
		}
		ta, ok := a.(*TypeAssignment)
		if !ok {
			return nil, nil, &asn1err.UnsupportedConstruct{Module: targetMod.Name, Description: fmt.Sprintf("%s is a value assignment, not a type", n.Name)}
		}
		resolved, resolvedMod, err := r.resolveTypeDecl(targetMod, ta.Decl, seen)
		if err != nil {
			return nil, nil, err
		}
		r.cache[key] = resolvedType{node: resolved, mod: resolvedMod}
		return resolved, resolvedMod, nil
	case *TaggedType:
		return r.resolveTypeDecl(module, n.Inner, seen)
	default:
		return node, module, nil
	}
}

// lookupImport reports (fromModule, symbol, true) if name was imported
// into module, used to distinguish "never imported" from "imported but
// the source module wasn't supplied" UndefinedReference cases (spec.md
// §7, scenario 6).
func lookupImport(module *Module, name string) (string, string, bool) {
	for _, g := range module.Imports {
		for _, s := range g.Symbols {
			if s == name {
				return g.FromModule, s, true
			}
		}
	}
	return "", "", false
}

// ResolveSelectionType looks up the named alternative inside the CHOICE
// that sel.Inner resolves to (spec.md §4.4). An undefined identifier is
// an UnknownSelection error (spec.md §7).
func (r *Resolver) ResolveSelectionType(module *Module, sel *SelectionType) (TypeNode, error) {
	resolved, _, err := r.ResolveTypeDecl(module, sel.Inner)
	if err != nil {
		return nil, err
	}
	ct, ok := resolved.(*ConstructedType)
	if !ok || ct.Kind != KindChoice {
		return nil, &asn1err.UnsupportedConstruct{Module: module.Name, Description: fmt.Sprintf("selection type %s< refers to a non-CHOICE type", sel.Identifier)}
	}
	for _, c := range ct.Components {
		if nc, ok := c.(*NamedComponent); ok && nc.Identifier == sel.Identifier {
			return nc.Decl, nil
		}
	}
	typeName := ""
	if dt, ok := sel.Inner.(*DefinedType); ok {
		typeName = dt.Name
	}
	return nil, &asn1err.UnknownSelection{Module: module.Name, Identifier: sel.Identifier, TypeName: typeName}
}

// ResolveTagImplicitness applies spec.md §4.4's rule: a DEFAULT
// implicitness defers to the module's tag_default; if that would yield
// IMPLICIT but inner resolves to CHOICE (or another open type, i.e. ANY),
// the effective implicitness becomes EXPLICIT, per X.680's prohibition on
// implicitly tagging CHOICE/ANY/open types.
func (r *Resolver) ResolveTagImplicitness(module *Module, implicitness Implicitness, inner TypeNode) (Implicitness, error) {
	effective := implicitness
	if effective == TagDefaultMarker {
		switch module.TagDefault {
		case TagDefaultImplicit, TagDefaultAutomatic:
			effective = TagImplicit
		default:
			effective = TagExplicit
		}
	}
	if effective != TagImplicit {
		return effective, nil
	}
	resolved, _, err := r.ResolveTypeDecl(module, inner)
	if err != nil {
		return effective, err
	}
	if isOpenType(resolved) {
		return TagExplicit, nil
	}
	return effective, nil
}

func isOpenType(n TypeNode) bool {
	switch t := n.(type) {
	case *ConstructedType:
		return t.Kind == KindChoice
	case *SimpleType:
		return t.Name == "ANY"
	default:
		return false
	}
}

// ExpandComponentsOf resolves a ComponentsOf member to the component list
// of its referenced SEQUENCE or SET, per spec.md §4.5. A referent that is
// not a SEQUENCE or SET is a BadComponentsOf error (spec.md §7, §3.3).
// Expansion is a fixpoint: expanding an already-expanded list (one with
// no remaining ComponentsOf members) is a no-op, since the function only
// ever replaces ComponentsOf entries.
func (r *Resolver) ExpandComponentsOf(module *Module, components []ComponentType) ([]ComponentType, error) {
	out := make([]ComponentType, 0, len(components))
	for _, c := range components {
		co, ok := c.(*ComponentsOf)
		if !ok {
			out = append(out, c)
			continue
		}
		resolved, _, err := r.ResolveTypeDecl(module, co.Referenced)
		if err != nil {
			return nil, err
		}
		ct, ok := resolved.(*ConstructedType)
		if !ok || (ct.Kind != KindSequence && ct.Kind != KindSet) {
			target := ""
			if dt, ok := co.Referenced.(*DefinedType); ok {
				target = dt.Name
			}
			return nil, &asn1err.BadComponentsOf{Module: module.Name, Target: target}
		}
		expandedInner, err := r.ExpandComponentsOf(module, ct.Components)
		if err != nil {
			return nil, err
		}
		out = append(out, expandedInner...)
	}
	return out, nil
}

// Descendants returns a lazy pre-order sequence (spec.md §4.4) of every
// node reachable from module's assignments. Go's iterator idiom (a
// function accepting a yield callback) gives back-ends a way to stop
// early, e.g. to answer "does any OID value exist" without walking the
// whole module.
//
// Constraint subtrees are not visited, and each value is yielded as one
// node without descending into its parts (e.g. the arcs of an OID value).
func Descendants(module *Module) func(yield func(any) bool) {
	return func(yield func(any) bool) {
		for _, a := range module.Assignments {
			if !walkAssignment(a, yield) {
				return
			}
		}
	}
}

func walkAssignment(a Assignment, yield func(any) bool) bool {
	if !yield(a) {
		return false
	}
	switch v := a.(type) {
	case *TypeAssignment:
		return walkType(v.Decl, yield)
	case *ValueAssignment:
		if !walkType(v.Decl, yield) {
			return false
		}
		return walkValue(v.Val, yield)
	}
	return true
}

func walkType(n TypeNode, yield func(any) bool) bool {
	if n == nil || !yield(n) {
		return n == nil
	}
	switch t := n.(type) {
	case *TaggedType:
		return walkType(t.Inner, yield)
	case *SelectionType:
		return walkType(t.Inner, yield)
	case *CollectionType:
		return walkType(t.Inner, yield)
	case *ConstructedType:
		for _, c := range t.Components {
			if !walkComponent(c, yield) {
				return false
			}
		}
	}
	return true
}

func walkComponent(c ComponentType, yield func(any) bool) bool {
	if !yield(c) {
		return false
	}
	switch v := c.(type) {
	case *NamedComponent:
		return walkType(v.Decl, yield)
	case *OptionalComponent:
		return walkType(v.Decl, yield)
	case *DefaultedComponent:
		if !walkType(v.Decl, yield) {
			return false
		}
		return walkValue(v.Default, yield)
	case *ComponentsOf:
		return walkType(v.Referenced, yield)
	}
	return true
}

func walkValue(v ValueNode, yield func(any) bool) bool {
	if v == nil {
		return true
	}
	return yield(v)
}
