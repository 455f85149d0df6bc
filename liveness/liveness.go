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

// Package liveness is the backward live-variable analysis and the dead-code detector that
// fuses it with constant propagation (spec 4.3).
package liveness

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// Facts is shorthand for the SetFact<Var> lattice live-variable analysis operates over.
type Facts = lattice.SetFact[*ir.Var]

// Analysis implements dataflow.Analysis[*Facts]: backward, meet = union, boundary = empty.
type Analysis struct{}

var _ dataflow.Analysis[*Facts] = Analysis{}

func (Analysis) IsForward() bool { return false }

func (Analysis) NewBoundaryFact(ir.CFG) *Facts { return lattice.NewSetFact[*ir.Var]() }

func (Analysis) NewInitialFact() *Facts { return lattice.NewSetFact[*ir.Var]() }

func (Analysis) MeetInto(src, dst *Facts) bool { return dst.Union(src) }

// TransferNode computes in = (out minus the defined Var) union {used Vars} (spec 4.3).
func (Analysis) TransferNode(stmt ir.Stmt, in, out *Facts) bool {
	before := in.Copy()
	in.CopyFrom(out)
	if def, ok := stmt.GetDef(); ok {
		in.Remove(def)
	}
	for _, u := range stmt.GetUses() {
		in.Add(u)
	}
	return !in.Equal(before)
}
