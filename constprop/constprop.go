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

// Package constprop is the intraprocedural forward constant-propagation analysis (spec 4.2).
package constprop

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// Analysis implements dataflow.Analysis[*lattice.CPFact].
type Analysis struct{}

var _ dataflow.Analysis[*lattice.CPFact] = Analysis{}

func (Analysis) IsForward() bool { return true }

// NewBoundaryFact sets every int-holding parameter to NAC (spec 4.2: "callers unknown").
func (Analysis) NewBoundaryFact(cfg ir.CFG) *lattice.CPFact {
	fact := lattice.NewCPFact()
	for _, p := range cfg.Method().GetParams() {
		if ir.CanHoldInt(p.GetType()) {
			fact.Update(p, ir.NAC())
		}
	}
	return fact
}

func (Analysis) NewInitialFact() *lattice.CPFact { return lattice.NewCPFact() }

func (Analysis) MeetInto(src, dst *lattice.CPFact) bool { return lattice.MeetInto(src, dst) }

// TransferNode implements spec 4.2's transfer: for an int-holding assignment, out := (in
// minus lhs) union {lhs: evaluate(rhs, in)}; otherwise out := in.
func (Analysis) TransferNode(stmt ir.Stmt, in, out *lattice.CPFact) bool {
	before := out.Copy()
	if assign, ok := stmt.(*ir.Assign); ok && ir.CanHoldInt(assign.Lhs.GetType()) {
		val := Evaluate(assign.Rhs, in)
		tmpIn := in.Copy()
		tmpIn.Remove(assign.Lhs)
		out.CopyFrom(tmpIn)
		out.Update(assign.Lhs, val)
	} else {
		out.CopyFrom(in)
	}
	return !out.Equal(before)
}

// Evaluate computes the Value of an RValue under fact in (spec 4.2).
func Evaluate(exp ir.RValue, in *lattice.CPFact) ir.Value {
	switch e := exp.(type) {
	case *ir.Var:
		return in.Get(e)
	case ir.IntLiteral:
		return ir.ConstOf(e.K)
	case ir.BinaryExp:
		return evaluateBinary(e, in)
	default:
		return ir.NAC()
	}
}

func evaluateBinary(e ir.BinaryExp, in *lattice.CPFact) ir.Value {
	v1 := in.Get(e.X)
	v2 := in.Get(e.Y)

	// Division/remainder by zero: deliberately UNDEF (spec 4.2), so dead-code detection can
	// still fire and later propagation proceeds as if this statement were unreachable.
	if e.Op.IsDivOrRem() && v2.IsConst() && v2.Const() == 0 {
		return ir.Undef()
	}
	if v1.IsNAC() || v2.IsNAC() {
		return ir.NAC()
	}
	if v1.IsUndef() || v2.IsUndef() {
		return ir.Undef()
	}
	if v1.IsConst() && v2.IsConst() {
		return ir.ConstOf(Apply(e.Op, v1.Const(), v2.Const()))
	}
	return ir.NAC()
}

// Apply computes the bit-exact 32-bit-signed result of op on two known constants (spec 6).
// Unrecognized operators degrade to 0 rather than aborting (spec 4.2/7): this can only be
// reached if BinOp is extended without updating this switch.
func Apply(op ir.BinOp, i1, i2 int32) int32 {
	switch op {
	case ir.ADD:
		return i1 + i2
	case ir.SUB:
		return i1 - i2
	case ir.MUL:
		return i1 * i2
	case ir.DIV:
		return i1 / i2
	case ir.REM:
		return i1 % i2
	case ir.SHL:
		return i1 << (uint32(i2) & 31)
	case ir.SHR:
		return i1 >> (uint32(i2) & 31)
	case ir.USHR:
		return int32(uint32(i1) >> (uint32(i2) & 31))
	case ir.AND:
		return i1 & i2
	case ir.OR:
		return i1 | i2
	case ir.XOR:
		return i1 ^ i2
	case ir.EQ:
		return boolToInt(i1 == i2)
	case ir.NE:
		return boolToInt(i1 != i2)
	case ir.LT:
		return boolToInt(i1 < i2)
	case ir.GT:
		return boolToInt(i1 > i2)
	case ir.LE:
		return boolToInt(i1 <= i2)
	case ir.GE:
		return boolToInt(i1 >= i2)
	default:
		return 0
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
