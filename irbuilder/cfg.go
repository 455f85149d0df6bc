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

// Package irbuilder is a minimal, concrete implementation of the IR/CFG/ClassHierarchy/
// HeapModel contracts (spec 1/6), so the core solvers are exercisable end to end and testable
// without a real source/bytecode frontend. It is the toy class-based-language IR builder the
// test suite's scenario fixtures are constructed with, mirroring how the teacher repo pairs
// its analysis interfaces with a concrete SSA backing.
package irbuilder

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// CFGBuilder incrementally assembles an ir.CFG by explicit edges: callers add each
// statement's out-edges (branches get more than one), then Build wires predecessor indexes
// and attaches the result to the owning Method.
type CFGBuilder struct {
	method   *ir.Method
	entry    *ir.Nop
	exit     *ir.Nop
	outEdges map[ir.Stmt][]ir.Edge
}

// NewCFGBuilder starts a CFG for method. Entry and Exit are synthetic Nops, matching spec 3's
// contract that they are not part of Method.GetStmts().
func NewCFGBuilder(method *ir.Method) *CFGBuilder {
	return &CFGBuilder{
		method:   method,
		entry:    ir.NewNop(-2),
		exit:     ir.NewNop(-1),
		outEdges: map[ir.Stmt][]ir.Edge{},
	}
}

// Entry returns the synthetic entry node, for wiring the first real statement's predecessor
// edge (AddEdge(b.Entry(), ir.FallThrough, first)).
func (b *CFGBuilder) Entry() ir.Stmt { return b.entry }

// Exit returns the synthetic exit node, the target of every Return/falls-off-the-end edge.
func (b *CFGBuilder) Exit() ir.Stmt { return b.exit }

// AddEdge records a labelled out-edge from `from` to `to`.
func (b *CFGBuilder) AddEdge(from ir.Stmt, kind ir.EdgeKind, to ir.Stmt) {
	b.outEdges[from] = append(b.outEdges[from], ir.Edge{Kind: kind, Target: to})
}

// AddCaseEdge records a SWITCH_CASE(caseValue) out-edge from a Switch statement.
func (b *CFGBuilder) AddCaseEdge(from ir.Stmt, caseValue int32, to ir.Stmt) {
	b.outEdges[from] = append(b.outEdges[from], ir.Edge{Kind: ir.SwitchCase, CaseValue: caseValue, Target: to})
}

// Chain wires a sequence of statements with FallThrough edges, entry -> stmts[0] -> ... ->
// exit, the common case for straight-line fixtures. Statements that need non-FallThrough
// out-edges (If/Switch) should not be included in the tail passed to Chain; wire them with
// AddEdge/AddCaseEdge instead and Chain only the straight-line runs between them.
func (b *CFGBuilder) Chain(stmts ...ir.Stmt) {
	prev := ir.Stmt(b.entry)
	for _, s := range stmts {
		b.AddEdge(prev, ir.FallThrough, s)
		prev = s
	}
	b.AddEdge(prev, ir.FallThrough, b.exit)
}

// Build finalizes the CFG over stmts (in program order, Entry/Exit excluded per spec 3),
// attaches it to the owning Method, and returns it.
func (b *CFGBuilder) Build(stmts []ir.Stmt) ir.CFG {
	preds := map[ir.Stmt][]ir.Stmt{}
	allNodes := append([]ir.Stmt{b.entry}, stmts...)
	allNodes = append(allNodes, b.exit)
	for _, n := range allNodes {
		for _, e := range b.outEdges[n] {
			preds[e.Target] = append(preds[e.Target], n)
		}
	}
	cfg := &cfg{
		method: b.method,
		entry:  b.entry,
		exit:   b.exit,
		stmts:  stmts,
		out:    b.outEdges,
		preds:  preds,
	}
	b.method.SetCFG(cfg)
	return cfg
}

type cfg struct {
	method *ir.Method
	entry  *ir.Nop
	exit   *ir.Nop
	stmts  []ir.Stmt
	out    map[ir.Stmt][]ir.Edge
	preds  map[ir.Stmt][]ir.Stmt
}

var _ ir.CFG = (*cfg)(nil)

func (c *cfg) Method() *ir.Method { return c.method }
func (c *cfg) Entry() ir.Stmt      { return c.entry }
func (c *cfg) Exit() ir.Stmt       { return c.exit }
func (c *cfg) Stmts() []ir.Stmt    { return c.stmts }
func (c *cfg) PredsOf(n ir.Stmt) []ir.Stmt { return c.preds[n] }

func (c *cfg) SuccsOf(n ir.Stmt) []ir.Stmt {
	edges := c.out[n]
	out := make([]ir.Stmt, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Target)
	}
	return out
}

func (c *cfg) OutEdges(n ir.Stmt) []ir.Edge { return c.out[n] }
