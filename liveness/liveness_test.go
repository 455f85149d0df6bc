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

package liveness

import (
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/constprop"
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// Scenario C: x = 1; y = x; z = 2; return y. x is live only up to `y = x`; z is never live
// since nothing after its definition reads it.
func TestLiveVariableSets(t *testing.T) {
	var vars irbuilder.VarFactory
	x := vars.Int("x")
	y := vars.Int("y")
	z := vars.Int("z")

	m := &ir.Method{Signature: "T::m()I"}
	defX := ir.NewAssign(0, x, ir.IntLiteral{K: 1})
	defY := ir.NewAssign(1, y, x)
	defZ := ir.NewAssign(2, z, ir.IntLiteral{K: 2})
	ret := ir.NewReturn(3, y)
	m.ReturnVars = []*ir.Var{y}

	b := irbuilder.NewCFGBuilder(m)
	b.Chain(defX, defY, defZ, ret)
	cfg := b.Build([]ir.Stmt{defX, defY, defZ, ret})

	result := dataflow.Solve[*Facts](cfg, Analysis{})

	if in := result.GetInFact(defY); !in.Contains(x) {
		t.Errorf("x should be live entering `y = x`")
	}
	if out := result.GetOutFact(defY); out.Contains(x) {
		t.Errorf("x should not be live after `y = x` (no later use)")
	}
	if out := result.GetOutFact(defZ); out.Contains(z) {
		t.Errorf("z should never be live: it has no use")
	}
	if in := result.GetInFact(ret); !in.Contains(y) {
		t.Errorf("y should be live entering `return y`")
	}
}

// Scenario B (fused with dead-code detection): an unreachable branch of a statically-resolved
// If is excluded from the reachable set, and `z = x + x` with z dead afterwards is reported
// dead, but the DIV/REM-carrying assignment is kept regardless of liveness.
func TestDetectDeadCodeUnreachableBranchAndUselessAssign(t *testing.T) {
	var vars irbuilder.VarFactory
	one := vars.Int("one")
	x := vars.Int("x")
	y := vars.Int("y")
	z := vars.Int("z")
	w := vars.Int("w")

	m := &ir.Method{Signature: "T::m()I"}
	setOne := ir.NewAssign(0, one, ir.IntLiteral{K: 1})
	ifStmt := ir.NewIf(1, one) // always true: constant-foldable branch
	liveBranch := ir.NewAssign(2, x, ir.IntLiteral{K: 5})
	deadBranch := ir.NewAssign(3, x, ir.IntLiteral{K: 9}) // unreachable (IfFalse never taken)
	uselessAssign := ir.NewAssign(4, z, ir.BinaryExp{Op: ir.ADD, X: x, Y: x}) // z never used
	divAssign := ir.NewAssign(5, w, ir.BinaryExp{Op: ir.DIV, X: x, Y: one})  // w never used either
	ret := ir.NewReturn(6, y)
	m.ReturnVars = []*ir.Var{y}

	b := irbuilder.NewCFGBuilder(m)
	b.AddEdge(b.Entry(), ir.FallThrough, setOne)
	b.AddEdge(setOne, ir.FallThrough, ifStmt)
	b.AddEdge(ifStmt, ir.IfTrue, liveBranch)
	b.AddEdge(ifStmt, ir.IfFalse, deadBranch)
	b.AddEdge(liveBranch, ir.FallThrough, uselessAssign)
	b.AddEdge(deadBranch, ir.FallThrough, uselessAssign)
	b.AddEdge(uselessAssign, ir.FallThrough, divAssign)
	b.AddEdge(divAssign, ir.FallThrough, ret)
	cfg := b.Build([]ir.Stmt{setOne, ifStmt, liveBranch, deadBranch, uselessAssign, divAssign, ret})

	cp := dataflow.Solve[*lattice.CPFact](cfg, constprop.Analysis{})
	live := dataflow.Solve[*Facts](cfg, Analysis{})
	dead := DetectDeadCode(cfg, cp, live)

	deadSet := map[ir.Stmt]bool{}
	for _, d := range dead {
		deadSet[d] = true
	}

	if !deadSet[deadBranch] {
		t.Errorf("unreachable IfFalse branch should be reported dead")
	}
	if !deadSet[uselessAssign] {
		t.Errorf("`z = x + x` with z never live afterward should be reported dead")
	}
	if deadSet[divAssign] {
		t.Errorf("a DIV-carrying assignment must never be reported dead, even when its LHS is dead")
	}
	if deadSet[setOne] || deadSet[ifStmt] || deadSet[liveBranch] || deadSet[ret] {
		t.Errorf("reachable, useful statements must not be reported dead: got %v", dead)
	}
}
