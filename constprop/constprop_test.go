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

package constprop

import (
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// diamond builds entry -> If(cond) -> {assignTrue} / {assignFalse} -> join -> exit, and
// returns the join statement's solved OUT fact plus the join's defined Var.
func diamond(t *testing.T, xTrue, xFalse int32) (*lattice.CPFact, *ir.Var) {
	t.Helper()
	var vars irbuilder.VarFactory
	cond := vars.Int("cond")
	x := vars.Int("x")
	y := vars.Int("y")

	m := &ir.Method{Signature: "T::m(I)V", Params: []*ir.Var{cond}}
	ifStmt := ir.NewIf(0, cond)
	assignTrue := ir.NewAssign(1, x, ir.IntLiteral{K: xTrue})
	assignFalse := ir.NewAssign(2, x, ir.IntLiteral{K: xFalse})
	join := ir.NewAssign(3, y, x)

	b := irbuilder.NewCFGBuilder(m)
	b.AddEdge(b.Entry(), ir.FallThrough, ifStmt)
	b.AddEdge(ifStmt, ir.IfTrue, assignTrue)
	b.AddEdge(ifStmt, ir.IfFalse, assignFalse)
	b.AddEdge(assignTrue, ir.FallThrough, join)
	b.AddEdge(assignFalse, ir.FallThrough, join)
	b.AddEdge(join, ir.FallThrough, b.Exit())
	cfg := b.Build([]ir.Stmt{ifStmt, assignTrue, assignFalse, join})

	result := dataflow.Solve[*lattice.CPFact](cfg, Analysis{})
	return result.GetOutFact(join), y
}

// Scenario A: two branches assigning the same constant meet to that constant at the join.
func TestConstPropMeetsEqualConstants(t *testing.T) {
	out, y := diamond(t, 1, 1)
	if got := out.Get(y); !got.Equal(ir.ConstOf(1)) {
		t.Errorf("join of two CONST(1) branches = %v, want CONST(1)", got)
	}
}

// Scenario A: two branches assigning different constants meet to NAC at the join.
func TestConstPropMeetsDistinctConstantsToNAC(t *testing.T) {
	out, y := diamond(t, 1, 2)
	if got := out.Get(y); !got.IsNAC() {
		t.Errorf("join of CONST(1)/CONST(2) branches = %v, want NAC", got)
	}
}

// Scenario B: division by zero evaluates to UNDEF, not NAC and not a crash.
func TestEvaluateDivByZeroYieldsUndef(t *testing.T) {
	var vars irbuilder.VarFactory
	x := vars.Int("x")
	in := lattice.NewCPFact()
	in.Update(x, ir.ConstOf(0))

	val := Evaluate(ir.BinaryExp{Op: ir.DIV, X: x, Y: x}, in)
	if !val.IsUndef() {
		t.Errorf("0 DIV 0 evaluated to %v, want UNDEF", val)
	}
}

// An assignment whose RHS divides by zero leaves its LHS UNDEF in the solved OUT fact (the
// dead-code side of this case is checked in package liveness).
func TestDivByZeroAssignYieldsUndef(t *testing.T) {
	var vars irbuilder.VarFactory
	zero := vars.Int("zero")
	x := vars.Int("x")

	m := &ir.Method{Signature: "T::m()V"}
	setZero := ir.NewAssign(0, zero, ir.IntLiteral{K: 0})
	divide := ir.NewAssign(1, x, ir.BinaryExp{Op: ir.DIV, X: zero, Y: zero})

	b := irbuilder.NewCFGBuilder(m)
	b.Chain(setZero, divide)
	cfg := b.Build([]ir.Stmt{setZero, divide})

	result := dataflow.Solve[*lattice.CPFact](cfg, Analysis{})
	out := result.GetOutFact(divide)
	if got := out.Get(x); !got.IsUndef() {
		t.Errorf("x after `x = 0/0` = %v, want UNDEF", got)
	}
}

func TestApplyBitExactArithmetic(t *testing.T) {
	cases := []struct {
		op       ir.BinOp
		a, b, ex int32
	}{
		{ir.ADD, 1<<31 - 1, 1, -1 << 31}, // signed overflow wraps
		{ir.SHL, 1, 33, 2},               // shift amount masked to 5 bits
		{ir.USHR, -1, 1, 1<<31 - 1},
	}
	for _, c := range cases {
		if got := Apply(c.op, c.a, c.b); got != c.ex {
			t.Errorf("Apply(%v, %d, %d) = %d, want %d", c.op, c.a, c.b, got, c.ex)
		}
	}
}
