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

// Package inter is the interprocedural, alias-aware extension of constant propagation (spec
// 4.8, the second half of C9): it layers on top of a completed pointer analysis, using the
// frozen alias map to give heap loads and stores a constant-propagation transfer.
package inter

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/pta"
)

// AliasMap maps a reference-typed Var to every Var whose points-to set overlaps it (spec 4.8):
// aliasMap[base] = {v : pts(base) ∩ pts(v) ≠ ∅}. The solver must build this once, after
// pointer analysis has reached its fixpoint and before the inter solver's worklist starts
// (spec 9's layering rule) — AliasMap itself is never mutated afterwards.
type AliasMap map[*ir.Var][]*ir.Var

// Aliases returns the Vars aliased with v (v itself included when its points-to set is
// non-empty), or nil if v never received a points-to set.
func (a AliasMap) Aliases(v *ir.Var) []*ir.Var { return a[v] }

// BuildAliasMap derives the alias map from a completed pointer-analysis result (spec 4.8). A
// Var with an empty points-to set is never aliased to anything, including itself, since "no
// information" cannot be said to overlap anything.
func BuildAliasMap(result *pta.Result) AliasMap {
	vars := result.Vars()
	pts := make(map[*ir.Var]*pta.PointsToSet, len(vars))
	for _, v := range vars {
		pts[v] = result.PointsToSetOf(v)
	}

	alias := make(AliasMap, len(vars))
	for _, a := range vars {
		pa := pts[a]
		if pa.Empty() {
			continue
		}
		for _, b := range vars {
			if overlaps(pa, pts[b]) {
				alias[a] = append(alias[a], b)
			}
		}
	}
	return alias
}

func overlaps(a, b *pta.PointsToSet) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	for _, o := range a.Objects() {
		if b.Contains(o) {
			return true
		}
	}
	return false
}
