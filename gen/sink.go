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

// Package gen defines the traversal contract a back end implements over
// a resolved module and its dependency-sorted components (spec.md §4.5,
// §6.3), and the indentation-aware sink collaborator (spec.md §4.6) both
// reference back ends write through.
package gen

import (
	"fmt"
	"strings"
)

// Sink is the thin, semantics-free text collaborator of spec.md §4.6.
// A nested fragment obtained from Fragment is itself a Sink that buffers
// into its own string, so back ends can build a block out of line,
// measure or post-process it, and splice it into a parent sink with
// WriteBlock. This mirrors the original tool's PythonWriter/
// PythonFragment pair (support/pygen.py), generalized to any target
// language's indentation convention via IndentSize.
type Sink interface {
	PushIndent()
	PopIndent()
	WriteLine(line string)
	WriteBlanks(n int)
	// WriteBlock re-indents each line of a multiline string at the
	// sink's current indent level before writing it.
	WriteBlock(multiline string)
	// Fragment returns a new buffering Sink, for composing a nested
	// block before splicing it into the parent with WriteBlock.
	Fragment() Sink
	String() string
}

type sink struct {
	buf            strings.Builder
	indentSize     int
	currentIndent  int
}

// NewSink returns a Sink that indents by indentSize spaces per level.
func NewSink(indentSize int) Sink {
	return &sink{indentSize: indentSize}
}

func (s *sink) PushIndent() { s.currentIndent += s.indentSize }

func (s *sink) PopIndent() {
	s.currentIndent -= s.indentSize
	if s.currentIndent < 0 {
		s.currentIndent = 0
	}
}

func (s *sink) WriteLine(line string) {
	if line == "" {
		s.buf.WriteByte('\n')
		return
	}
	s.buf.WriteString(strings.Repeat(" ", s.currentIndent))
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
}

func (s *sink) WriteBlanks(n int) {
	for i := 0; i < n; i++ {
		s.buf.WriteByte('\n')
	}
}

func (s *sink) WriteBlock(multiline string) {
	multiline = strings.TrimRight(multiline, "\n")
	if multiline == "" {
		return
	}
	for _, line := range strings.Split(multiline, "\n") {
		s.WriteLine(line)
	}
}

func (s *sink) Fragment() Sink {
	return &sink{indentSize: s.indentSize}
}

func (s *sink) String() string { return s.buf.String() }

// Header renders the banner of spec.md §6.4: a one-line comment naming
// the tool, its version, the source file's basename, and the source
// file's last-modification timestamp, using the target language's
// line-comment syntax (supplied by the back end via commentPrefix).
func Header(commentPrefix, toolName, version, sourceBasename, lastModified string) string {
	return fmt.Sprintf("%s Auto-generated by %s v%s from %s (last modified %s)",
		commentPrefix, toolName, version, sourceBasename, lastModified)
}
