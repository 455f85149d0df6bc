// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
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

package cs

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/context"
	"github.com/yourbasic/graph"
)

// cycleGuard records the (context, method) call graph being discovered so that, once solving
// finishes, recursive call chains can be reported diagnostically (SPEC_FULL 3) via the pack's
// yourbasic/graph strong-components finder — the same primitive the teacher's own
// internal/graphutil/cycles.go uses for elementary-cycle detection. This is purely
// informational: the fixpoint never consults it, so a wrong or missing cycle report cannot
// affect soundness.
type cycleGuard struct {
	ids   map[context.CSMethod]int
	names []context.CSMethod
	edges map[int]map[int]bool
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{ids: map[context.CSMethod]int{}, edges: map[int]map[int]bool{}}
}

func (c *cycleGuard) idOf(m context.CSMethod) int {
	if id, ok := c.ids[m]; ok {
		return id
	}
	id := len(c.names)
	c.ids[m] = id
	c.names = append(c.names, m)
	return id
}

// AddEdge records a call edge from caller to callee.
func (c *cycleGuard) AddEdge(caller, callee context.CSMethod) {
	u, v := c.idOf(caller), c.idOf(callee)
	if c.edges[u] == nil {
		c.edges[u] = map[int]bool{}
	}
	c.edges[u][v] = true
}

// iter adapts cycleGuard to graph.Iterator.
type iter struct{ c *cycleGuard }

func (it iter) Order() int { return len(it.c.names) }
func (it iter) Visit(v int, do func(w int, c int64) bool) bool {
	for w := range it.c.edges[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// RecursiveCycles returns every set of mutually call-reachable (context, method) pairs of size
// > 1 discovered so far — recursion through the context-sensitive call graph.
func (c *cycleGuard) RecursiveCycles() [][]context.CSMethod {
	components := graph.StrongComponents(iter{c})
	var out [][]context.CSMethod
	for _, comp := range components {
		if len(comp) < 2 {
			continue
		}
		cycle := make([]context.CSMethod, len(comp))
		for i, id := range comp {
			cycle[i] = c.names[id]
		}
		out = append(out, cycle)
	}
	return out
}
