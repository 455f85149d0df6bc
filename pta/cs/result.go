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

package cs

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/context"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// CallEdge is one context-sensitive call-graph edge: caller (context, method) calling callee
// (context, method) through a particular call site.
type CallEdge struct {
	Caller context.CSMethod
	Callee context.CSMethod
	Site   *ir.Invoke
}

// Result is the frozen output of a context-sensitive Solve: the CS PFG, the (context, method)
// reachable set discovered on the fly, its call edges, and a diagnostic recursive-cycle report
// (spec 4.6, SPEC_FULL 3).
type Result struct {
	pfg    *PFG
	order  []context.CSMethod
	edges  map[context.CSMethod][]csEdgeKey
	cycles *cycleGuard
}

// PointsToSetOf returns the points-to set of v under ctx, or an empty set if (ctx, v) was never
// reached.
func (r *Result) PointsToSetOf(ctx context.Context, v *ir.Var) *PointsToSet {
	if p, ok := r.pfg.vars[varKey{ctx, v}]; ok {
		return p.PointsTo()
	}
	return NewPointsToSet()
}

// ReachableMethods returns every (context, method) pair the analysis found reachable, in
// discovery order.
func (r *Result) ReachableMethods() []context.CSMethod { return r.order }

// CallEdges returns every context-sensitive call edge discovered from cm.
func (r *Result) CallEdges(cm context.CSMethod) []CallEdge {
	keys := r.edges[cm]
	out := make([]CallEdge, 0, len(keys))
	for _, k := range keys {
		out = append(out, CallEdge{
			Caller: cm,
			Callee: context.CSMethod{Context: k.calleeCtx, Method: k.callee},
			Site:   k.site,
		})
	}
	return out
}

// RecursiveCycles reports every set of mutually call-reachable (context, method) pairs found
// during solving — a diagnostic aid, never consulted by the fixpoint itself.
func (r *Result) RecursiveCycles() [][]context.CSMethod { return r.cycles.RecursiveCycles() }
