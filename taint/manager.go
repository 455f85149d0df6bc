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

package taint

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

type taintKey struct {
	site *ir.Invoke
	typ  string
}

// manager mints and tracks synthetic taint Objs. Minting is deduplicated by (source callsite,
// type) so re-minting the same taint at the same call site is idempotent, while two different
// result types minted at the same callsite remain distinct objects — spec 4.7's open question
// ("must not collapse distinct-type taints from the same source callsite").
type manager struct {
	objs     map[taintKey]*heap.Obj
	sourceOf map[*heap.Obj]*ir.Invoke
	next     int
}

func newManager() *manager {
	return &manager{objs: map[taintKey]*heap.Obj{}, sourceOf: map[*heap.Obj]*ir.Invoke{}}
}

// makeTaint returns the canonical taint Obj of type typ minted at site, creating it if this is
// the first mint for that (site, type) pair.
func (m *manager) makeTaint(site *ir.Invoke, typ string) *heap.Obj {
	key := taintKey{site, typ}
	if o, ok := m.objs[key]; ok {
		return o
	}
	o := heap.NewSynthetic(typ, m.next)
	m.next++
	m.objs[key] = o
	m.sourceOf[o] = site
	return o
}

// isTaint reports whether obj was minted by this manager.
func (m *manager) isTaint(obj *heap.Obj) bool { _, ok := m.sourceOf[obj]; return ok }

// sourceCallOf returns the callsite a taint Obj was minted at.
func (m *manager) sourceCallOf(obj *heap.Obj) *ir.Invoke { return m.sourceOf[obj] }
