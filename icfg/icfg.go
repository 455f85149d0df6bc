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

// Package icfg builds the interprocedural control-flow graph of spec 3/4.8 (C9) by gluing each
// reachable method's CFG to its call sites via a resolved call graph, and runs the
// interprocedural worklist fixpoint over the result.
package icfg

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Graph implements ir.ICFG: the union of every reachable method's CFG, plus NormalEdge (lifted
// intraprocedural edges on non-call-site nodes), CallEdge, ReturnEdge, and CallToReturnEdge
// edges at call sites.
type Graph struct {
	entries      []*ir.Method
	methods      []*ir.Method
	nodes        []ir.Stmt
	inEdges      map[ir.Stmt][]ir.ICFGEdge
	outEdges     map[ir.Stmt][]ir.ICFGEdge
	callees      map[ir.Stmt][]*ir.Method
	nodeMethod   map[ir.Stmt]*ir.Method
	cfgBuilderID string
}

// Build glues every method cg reports reachable into one ICFG. cfgBuilderID is forwarded to
// ir.Method.GetResult, so callers can select among multiple CFG views of the same method.
func Build(cg *callgraph.Graph, cfgBuilderID string) *Graph {
	g := &Graph{
		entries:      cg.EntryMethods(),
		methods:      cg.ReachableMethods(),
		inEdges:      map[ir.Stmt][]ir.ICFGEdge{},
		outEdges:     map[ir.Stmt][]ir.ICFGEdge{},
		callees:      map[ir.Stmt][]*ir.Method{},
		nodeMethod:   map[ir.Stmt]*ir.Method{},
		cfgBuilderID: cfgBuilderID,
	}

	cfgs := map[*ir.Method]ir.CFG{}
	for _, m := range g.methods {
		cfg := m.GetResult(cfgBuilderID)
		cfgs[m] = cfg
		g.nodes = append(g.nodes, cfg.Entry())
		g.nodes = append(g.nodes, cfg.Stmts()...)
		g.nodes = append(g.nodes, cfg.Exit())
		g.nodeMethod[cfg.Entry()] = m
		g.nodeMethod[cfg.Exit()] = m
		for _, n := range cfg.Stmts() {
			g.nodeMethod[n] = m
		}
	}

	for _, m := range g.methods {
		cfg := cfgs[m]
		allNodes := append([]ir.Stmt{cfg.Entry()}, cfg.Stmts()...)
		allNodes = append(allNodes, cfg.Exit())

		for _, n := range allNodes {
			invoke, isCall := n.(*ir.Invoke)
			if !isCall {
				for _, e := range cfg.OutEdges(n) {
					g.addEdge(ir.ICFGEdge{Kind: ir.NormalEdge, From: n, To: e.Target})
				}
				continue
			}

			targets := cg.CalleesOf(invoke, m)
			g.callees[n] = targets
			for _, succ := range cfg.SuccsOf(n) {
				g.addEdge(ir.ICFGEdge{Kind: ir.CallToReturnEdge, From: n, To: succ, Call: invoke})
				for _, callee := range targets {
					calleeCFG := callee.GetResult(cfgBuilderID)
					g.addEdge(ir.ICFGEdge{Kind: ir.ReturnEdge, From: calleeCFG.Exit(), To: succ, Callee: callee, Call: invoke})
				}
			}
			for _, callee := range targets {
				calleeCFG := callee.GetResult(cfgBuilderID)
				g.addEdge(ir.ICFGEdge{Kind: ir.CallEdge, From: n, To: calleeCFG.Entry(), Callee: callee, Call: invoke})
			}
		}
	}
	return g
}

func (g *Graph) addEdge(e ir.ICFGEdge) {
	g.outEdges[e.From] = append(g.outEdges[e.From], e)
	g.inEdges[e.To] = append(g.inEdges[e.To], e)
}

// EntryNodes returns the CFG entry Stmt of every registered entry method — the nodes that
// receive a boundary fact when the interprocedural solver initializes (spec 4.8).
func (g *Graph) EntryNodes() []ir.Stmt {
	out := make([]ir.Stmt, 0, len(g.entries))
	for _, m := range g.entries {
		out = append(out, m.GetResult(g.cfgBuilderID).Entry())
	}
	return out
}

func (g *Graph) EntryMethods() []*ir.Method { return g.entries }
func (g *Graph) Methods() []*ir.Method      { return g.methods }
func (g *Graph) Nodes() []ir.Stmt           { return g.nodes }
func (g *Graph) InEdges(n ir.Stmt) []ir.ICFGEdge  { return g.inEdges[n] }
func (g *Graph) OutEdges(n ir.Stmt) []ir.ICFGEdge { return g.outEdges[n] }

func (g *Graph) IsCallSite(n ir.Stmt) bool {
	_, ok := n.(*ir.Invoke)
	if !ok {
		return false
	}
	return len(g.callees[n]) > 0
}

func (g *Graph) CalleesOf(n ir.Stmt) []*ir.Method { return g.callees[n] }

// MethodOf returns the method n belongs to.
func (g *Graph) MethodOf(n ir.Stmt) *ir.Method { return g.nodeMethod[n] }

var _ ir.ICFG = (*Graph)(nil)
