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

// Package asn1diff compares the dependency-sorted component lists of two
// revisions of the same module (spec.md §4.3's depsort output), the way
// gnmidiff compares two gNMI payloads: it reports which components were
// added, removed, or changed membership/order, without trying to
// interpret what the underlying assignments mean.
package asn1diff

import (
	"fmt"
	"strings"

	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/depsort"
)

// ComponentDiff describes one strongly connected component's fate between
// revision A and revision B.
type ComponentDiff struct {
	// Names is the component's member assignment names, in the order
	// depsort produced them.
	Names []string
	// Status is "added", "removed", or "changed" (same name set, but
	// depsort ordered its members differently), or "unchanged".
	Status string
}

// ModuleDiff is the result of comparing two Sort outputs for the same
// module name across two revisions.
type ModuleDiff struct {
	ModuleName string
	Components []ComponentDiff
}

// DiffComponents compares the components produced by depsort.Sort for
// the "before" and "after" revisions of one module. Components are
// matched by their member name set: a component in before whose exact
// name set also appears in after is "unchanged" (or "changed" if depsort
// ordered its members differently); a component with no matching name
// set in the other revision is "removed" (if only in before) or "added"
// (if only in after).
func DiffComponents(moduleName string, before, after []depsort.Component) ModuleDiff {
	beforeKeys := componentKeys(before)
	afterKeys := componentKeys(after)

	var diffs []ComponentDiff
	matchedAfter := make(map[string]bool, len(after))

	for i, b := range before {
		key := beforeKeys[i]
		names := assignmentNames(b)
		j, ok := indexOfKey(afterKeys, key, matchedAfter)
		if !ok {
			diffs = append(diffs, ComponentDiff{Names: names, Status: "removed"})
			continue
		}
		matchedAfter[key] = true
		status := "unchanged"
		if !sameOrder(names, assignmentNames(after[j])) {
			status = "changed"
		}
		diffs = append(diffs, ComponentDiff{Names: names, Status: status})
	}

	for j, a := range after {
		key := afterKeys[j]
		if matchedAfter[key] {
			continue
		}
		diffs = append(diffs, ComponentDiff{Names: assignmentNames(a), Status: "added"})
	}

	return ModuleDiff{ModuleName: moduleName, Components: diffs}
}

func indexOfKey(keys []string, key string, already map[string]bool) (int, bool) {
	for i, k := range keys {
		if k == key && !already[key] {
			return i, true
		}
	}
	return 0, false
}

func componentKeys(components []depsort.Component) []string {
	keys := make([]string, len(components))
	for i, c := range components {
		names := assignmentNames(c)
		sorted := append([]string(nil), names...)
		sortStrings(sorted)
		keys[i] = strings.Join(sorted, ",")
	}
	return keys
}

func assignmentNames(c depsort.Component) []string {
	names := make([]string, len(c.Assignments))
	for i, a := range c.Assignments {
		names[i] = a.AssignmentName()
	}
	return names
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortStrings is a tiny insertion sort; component key sets are small
// (one SCC's membership), so this avoids pulling in sort for a handful
// of strings.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Format renders d as a human-readable report to the diagnostic stream,
// one line per changed/added/removed component; unchanged components are
// omitted unless full is set.
func (d ModuleDiff) Format(full bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s:\n", d.ModuleName)
	any := false
	for _, c := range d.Components {
		if c.Status == "unchanged" && !full {
			continue
		}
		any = true
		fmt.Fprintf(&b, "  %-9s {%s}\n", c.Status, strings.Join(c.Names, ", "))
	}
	if !any {
		fmt.Fprintln(&b, "  (no differences)")
	}
	return b.String()
}

// sortComponents is a convenience used by callers that want a stable
// component order before diffing two revisions independently parsed in
// whatever order their assignments happened to appear.
func sortComponents(module *asn1.Module) []depsort.Component {
	return depsort.Sort(module)
}
