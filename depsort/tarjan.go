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

package depsort

// tarjanSCC runs Tarjan's strongly connected components algorithm over
// g and returns the components in reverse topological order (leaves
// first is forward topological order; Tarjan naturally emits components
// in reverse topological order as it pops them off the stack, so no
// further reversal is needed — see spec.md §4.3).
//
// Within a component, member order is whatever order the SCC walk
// produced: deterministic given a fixed input, but not otherwise
// meaningful (spec.md §4.3).
func (g *graph) tarjanSCC() [][]int {
	n := len(g.nodes)
	t := &tarjanState{
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
		visited: make([]bool, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}

	var out [][]int
	for v := 0; v < n; v++ {
		if !t.visited[v] {
			out = append(out, t.strongconnect(g, v)...)
		}
	}
	return out
}

type tarjanState struct {
	counter int
	index   []int
	lowlink []int
	onStack []bool
	visited []bool
	stack   []int
}

// strongconnect is the recursive core of Tarjan's algorithm. It returns
// every complete SCC discovered during this call (including nested ones
// found while exploring v's subtree), in the order they were closed off.
func (t *tarjanState) strongconnect(g *graph, v int) [][]int {
	t.visited[v] = true
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	var found [][]int
	for _, w := range g.edges[v] {
		switch {
		case !t.visited[w]:
			found = append(found, t.strongconnect(g, w)...)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		case t.onStack[w]:
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var scc []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		found = append(found, scc)
	}
	return found
}
