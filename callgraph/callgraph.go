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

// Package callgraph holds the call-graph data structure shared by CHA (callgraph/cha) and the
// refined call graph a pointer analysis discovers on the fly (pta).
package callgraph

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Edge is one resolved call edge, from a call site to one of its resolved targets.
type Edge struct {
	Kind   ir.CallKind
	Site   *ir.Invoke
	Caller *ir.Method
	Callee *ir.Method
}

// Graph is a monotonic, arena-indexed call graph (spec 9): methods are never removed once
// added, and edges are deduplicated by (site, callee).
type Graph struct {
	entries   []*ir.Method
	reachable map[*ir.Method]bool
	order     []*ir.Method // insertion order, for deterministic iteration
	edgesOut  map[*ir.Method][]Edge
	edgeSeen  map[edgeKey]bool
}

type edgeKey struct {
	site   *ir.Invoke
	callee *ir.Method
}

// New returns an empty call graph.
func New() *Graph {
	return &Graph{
		reachable: map[*ir.Method]bool{},
		edgesOut:  map[*ir.Method][]Edge{},
		edgeSeen:  map[edgeKey]bool{},
	}
}

// AddEntryMethod registers m as a program entry point and marks it reachable.
func (g *Graph) AddEntryMethod(m *ir.Method) {
	g.entries = append(g.entries, m)
	g.AddReachableMethod(m)
}

// AddReachableMethod marks m reachable if it wasn't already; returns whether it was new.
func (g *Graph) AddReachableMethod(m *ir.Method) bool {
	if g.reachable[m] {
		return false
	}
	g.reachable[m] = true
	g.order = append(g.order, m)
	return true
}

// ContainsMethod reports whether m has been marked reachable.
func (g *Graph) ContainsMethod(m *ir.Method) bool { return g.reachable[m] }

// ReachableMethods returns every reachable method, in discovery order.
func (g *Graph) ReachableMethods() []*ir.Method { return g.order }

// EntryMethods returns the registered entry points.
func (g *Graph) EntryMethods() []*ir.Method { return g.entries }

// AddEdge adds a call edge, deduplicated by (site, callee). Returns whether it was new.
func (g *Graph) AddEdge(e Edge) bool {
	key := edgeKey{e.Site, e.Callee}
	if g.edgeSeen[key] {
		return false
	}
	g.edgeSeen[key] = true
	g.edgesOut[e.Caller] = append(g.edgesOut[e.Caller], e)
	return true
}

// CalleesOf returns every resolved target of call site site.
func (g *Graph) CalleesOf(site *ir.Invoke, caller *ir.Method) []*ir.Method {
	var out []*ir.Method
	for _, e := range g.edgesOut[caller] {
		if e.Site == site {
			out = append(out, e.Callee)
		}
	}
	return out
}

// OutEdgesOf returns every call edge whose caller is m.
func (g *Graph) OutEdgesOf(m *ir.Method) []Edge { return g.edgesOut[m] }

// AllEdges returns every call edge in the graph, in caller-discovery order.
func (g *Graph) AllEdges() []Edge {
	var out []Edge
	for _, m := range g.order {
		out = append(out, g.edgesOut[m]...)
	}
	return out
}
