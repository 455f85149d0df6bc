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

package icfg

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/dataflow"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Analysis is the capability set an interprocedural dataflow analysis must implement (spec
// 4.8): a per-node transfer exactly as intraprocedural, plus a per-edge transfer distinguishing
// the four ICFGEdgeKinds (NormalEdge/CallEdge/ReturnEdge/CallToReturnEdge).
type Analysis[F dataflow.Fact[F]] interface {
	// NewBoundaryFact computes the fact installed at an entry node before solving begins.
	NewBoundaryFact(entry ir.Stmt) F
	// NewInitialFact returns the fact every non-entry node starts with.
	NewInitialFact() F
	// MeetInto merges src into dst in place, reports whether dst changed.
	MeetInto(src, dst F) bool
	// TransferNode recomputes out from in for n, writing into out in place, and reports whether
	// out's final value differs from its value on entry.
	TransferNode(n ir.Stmt, in, out F) bool
	// TransferEdge computes the fact e contributes to e.To's IN, given e.From's OUT.
	TransferEdge(e ir.ICFGEdge, out F) F
	// Init hands the analysis a reference to the very Result the solver is populating (so an
	// alias-aware load transfer can pull OUT(s) for an arbitrary store statement s discovered
	// through the alias map, not just its own node's immediate predecessors) and an enqueue
	// callback (so a store transfer can directly re-trigger every aliased load, which is not
	// reachable from the store through any ICFG edge). Called once, before the worklist loop
	// begins.
	Init(res *Result[F], enqueue func(ir.Stmt))
}
