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

package cha

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/internal/graphutil"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"gonum.org/v1/gonum/graph/topo"
)

// SCCOrder groups g's reachable methods into strongly connected components via gonum's
// topo.TarjanSCC, in an order where a component's callees are ready before it. CHA's own
// worklist doesn't need this — correctness never depends on processing order (spec 5) — but a
// bottom-up summary-based analysis layered on top of the call graph does, so the batching is
// exposed here rather than recomputed by every consumer.
func SCCOrder(g *callgraph.Graph) [][]*ir.Method {
	cg := graphutil.NewCallgraphIterator(g)
	components := topo.TarjanSCC(cg)

	out := make([][]*ir.Method, len(components))
	for i, comp := range components {
		methods := make([]*ir.Method, len(comp))
		for j, n := range comp {
			methods[j] = cg.IDMap[n.ID()].Method
		}
		out[i] = methods
	}
	return out
}

// RecursiveCycles returns every elementary cycle in g's call graph: groups of methods that
// call each other in a cycle, found via the pack's yourbasic/graph strong-components finder
// (graphutil.FindAllElementaryCycles) — the CHA-level counterpart of pta/cs's cycleGuard,
// purely diagnostic.
func RecursiveCycles(g *callgraph.Graph) [][]*ir.Method {
	cg := graphutil.NewCallgraphIterator(g)
	cycles := graphutil.FindAllElementaryCycles(cg)

	out := make([][]*ir.Method, len(cycles))
	for i, cycle := range cycles {
		methods := make([]*ir.Method, len(cycle))
		for j, id := range cycle {
			methods[j] = cg.IDMap[id].Method
		}
		out[i] = methods
	}
	return out
}
