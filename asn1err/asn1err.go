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

// Package asn1err defines the fatal error kinds of spec.md §7 as
// distinct exported types, each carrying a token.Position where the
// grammar or semantic builder has one available. Callers should use
// errors.As to recover a specific kind rather than matching on strings.
package asn1err

import (
	"fmt"

	"github.com/kimgr/asn1gen/token"
)

// ParseError is a grammar mismatch: the position and excerpt being
// parsed when the parser gave up.
type ParseError struct {
	Pos     token.Position
	Excerpt string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %v (near %q)", e.Pos, e.Cause, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// UndefinedReference is a DefinedType or ReferencedValue whose target is
// neither local nor found among the supplied referenced modules.
type UndefinedReference struct {
	Module   string
	Referrer string
	Target   string
}

func (e *UndefinedReference) Error() string {
	return fmt.Sprintf("%s: %s references undefined %q", e.Module, e.Referrer, e.Target)
}

// BadComponentsOf is a "COMPONENTS OF X" where X does not resolve to a
// SEQUENCE or SET.
type BadComponentsOf struct {
	Module   string
	Referrer string
	Target   string
}

func (e *BadComponentsOf) Error() string {
	return fmt.Sprintf("%s: %s has COMPONENTS OF %s, which is not a SEQUENCE or SET", e.Module, e.Referrer, e.Target)
}

// UnknownSelection is "x < T" where T has no member named x.
type UnknownSelection struct {
	Module     string
	Identifier string
	TypeName   string
}

func (e *UnknownSelection) Error() string {
	return fmt.Sprintf("%s: %s has no CHOICE alternative named %q", e.Module, e.TypeName, e.Identifier)
}

// UnsupportedConstruct is a syntactically accepted construct the
// semantic layer cannot model (e.g. a constraint form outside the
// implemented subset).
type UnsupportedConstruct struct {
	Module      string
	Description string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Module, e.Description)
}

// IOError wraps a filesystem problem: source missing, output path
// collides with an existing file and overwrite wasn't requested, etc.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }
