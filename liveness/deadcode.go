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
	"sort"

	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// DetectDeadCode fuses constant propagation with live-variable analysis (spec 4.3): a
// control-flow traversal from the CFG's entry follows only the feasible successor(s) of
// If/Switch statements (as implied by cp's constant facts), and an assignment is excluded
// from the reachable set when its defined Var is not live afterwards and its RHS has no
// observable side effect. The result is sorted by statement index for reproducibility (spec 6).
func DetectDeadCode(cfg ir.CFG, cp *dataflow.Result[*lattice.CPFact], live *dataflow.Result[*Facts]) []ir.Stmt {
	reachable := map[ir.Stmt]bool{}
	visit(cfg, cfg.Entry(), cp, reachable)

	all := cfg.Stmts()
	dead := make([]ir.Stmt, 0, len(all))
	for _, s := range all {
		if !reachable[s] {
			dead = append(dead, s)
			continue
		}
		if isUselessAssign(s, live) {
			dead = append(dead, s)
		}
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i].Idx() < dead[j].Idx() })
	return dead
}

func visit(cfg ir.CFG, n ir.Stmt, cp *dataflow.Result[*lattice.CPFact], reachable map[ir.Stmt]bool) {
	if n == cfg.Exit() || reachable[n] {
		return
	}
	reachable[n] = true

	for _, succ := range feasibleSuccessors(cfg, n, cp) {
		visit(cfg, succ, cp, reachable)
	}
}

// feasibleSuccessors narrows the successors of If/Switch statements using the constant value
// of the branch condition at that statement's OUT fact (spec 4.3); every other statement kind
// simply follows all of its CFG successors.
func feasibleSuccessors(cfg ir.CFG, n ir.Stmt, cp *dataflow.Result[*lattice.CPFact]) []ir.Stmt {
	edges := cfg.OutEdges(n)
	switch s := n.(type) {
	case *ir.If:
		out := cp.GetOutFact(n)
		cond := out.Get(s.Cond)
		if cond.IsConst() {
			want := ir.IfFalse
			if cond.Const() != 0 {
				want = ir.IfTrue
			}
			return targetsOfKind(edges, want)
		}
	case *ir.Switch:
		out := cp.GetOutFact(n)
		val := out.Get(s.Var)
		if val.IsConst() {
			for _, e := range edges {
				if e.Kind == ir.SwitchCase && e.CaseValue == val.Const() {
					return []ir.Stmt{e.Target}
				}
			}
			return targetsOfKind(edges, ir.SwitchDefault)
		}
	}
	targets := make([]ir.Stmt, 0, len(edges))
	for _, e := range edges {
		targets = append(targets, e.Target)
	}
	return targets
}

func targetsOfKind(edges []ir.Edge, kind ir.EdgeKind) []ir.Stmt {
	var out []ir.Stmt
	for _, e := range edges {
		if e.Kind == kind {
			out = append(out, e.Target)
		}
	}
	return out
}

// isUselessAssign reports whether s is an Assign whose defined Var is dead immediately after
// it and whose RHS cannot have an observable side effect (spec 4.3: new/cast/field
// access/array access/DIV/REM all count as side-effecting; this minimal IR's Assign RHS is
// always an IntLiteral, Var or BinaryExp, so only DIV/REM arithmetic needs checking here —
// New/LoadField/LoadArray are their own Stmt kinds and are never excluded from the reachable
// set by this rule).
func isUselessAssign(s ir.Stmt, live *dataflow.Result[*Facts]) bool {
	assign, ok := s.(*ir.Assign)
	if !ok {
		return false
	}
	out := live.GetOutFact(s)
	if out.Contains(assign.Lhs) {
		return false
	}
	if bin, ok := assign.Rhs.(ir.BinaryExp); ok && bin.Op.IsDivOrRem() {
		return false
	}
	return true
}
