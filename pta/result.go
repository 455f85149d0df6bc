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

package pta

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Result is the frozen output of a Solve: the PFG (for points-to queries) and the call graph
// discovered on the fly alongside it (spec 6's getPointsToSet / the supplemented
// pointer-analysis-refined call graph, SPEC_FULL 4).
type Result struct {
	pfg *PFG
	cg  *callgraph.Graph
}

// PointsToSetOf returns the points-to set of v, or an empty set if v was never reached.
func (r *Result) PointsToSetOf(v *ir.Var) *PointsToSet {
	if p, ok := r.pfg.vars[v]; ok {
		return p.PointsTo()
	}
	return NewPointsToSet()
}

// Vars returns every variable the analysis produced a (possibly empty) points-to set for, in
// discovery order.
func (r *Result) Vars() []*ir.Var {
	var out []*ir.Var
	for _, p := range r.pfg.Pointers() {
		if vp, ok := p.(*VarPointer); ok {
			out = append(out, vp.Var)
		}
	}
	return out
}

// CallGraph returns the call graph refined by this pointer analysis run: a VIRTUAL/INTERFACE
// call site only gains an edge once its receiver's points-to set actually contains an object
// of a dispatchable type, strictly more precise than CHA's static subtype closure.
func (r *Result) CallGraph() *callgraph.Graph { return r.cg }

// ReachableMethods returns every method the analysis found reachable from its entry point(s).
func (r *Result) ReachableMethods() []*ir.Method { return r.cg.ReachableMethods() }
