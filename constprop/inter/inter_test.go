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

package inter

import (
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/icfg"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
	"git.amazon.com/pkg/PTA-GoAnalyzer/pta"
)

// Scenario F: p and q are distinct Vars that alias the same heap object (q := copy of p). A
// constant stored through p.f is visible to a load through q.f, something plain intraprocedural
// constant propagation (which only tracks Vars, not heap contents) cannot see.
func TestAliasAwareFieldLoadSeesStoreThroughAlias(t *testing.T) {
	var vars irbuilder.VarFactory
	c := vars.Int("c")
	p := vars.Ref("p")
	q := vars.Ref("q")
	out := vars.Int("out")

	m := &ir.Method{Signature: "T::m()V"}
	setC := ir.NewAssign(0, c, ir.IntLiteral{K: 42})
	newP := ir.NewNew(1, p, "Box")
	copyQ := ir.NewCopy(2, q, p)
	field := ir.FieldRef{DeclaringType: "Box", Name: "f"}
	store := ir.NewStoreField(3, p, field, c)
	load := ir.NewLoadField(4, out, q, field)
	ret := ir.NewReturn(5)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(setC, newP, copyQ, store, load, ret)
	cfg := cb.Build([]ir.Stmt{setC, newP, copyQ, store, load, ret})
	m.Stmts = cfg.Stmts()

	prog := irbuilder.NewProgram()
	ptaSolver := pta.NewSolver(heap.NewAllocationSiteModel(), prog.World, prog)
	ptaResult := ptaSolver.Solve(m)
	alias := BuildAliasMap(ptaResult)

	if len(alias.Aliases(p)) < 2 {
		t.Fatalf("expected p and q to be in each other's alias set, got aliases(p) = %v", alias.Aliases(p))
	}

	cg := callgraph.New()
	cg.AddEntryMethod(m)
	g := icfg.Build(cg, "test")

	analysis := New(g, alias)
	res := icfg.Solve[*lattice.CPFact](g, g.EntryNodes(), analysis)

	got := res.GetOutFact(load).Get(out)
	if !got.Equal(ir.ConstOf(42)) {
		t.Errorf("out after `out = q.f` (aliased with p.f = 42) = %v, want CONST(42)", got)
	}
}
