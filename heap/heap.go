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

// Package heap declares the HeapModel contract (spec 6) and a canonical-per-allocation-site
// implementation. Heap abstraction policy (e.g. allocation-site vs. type-based) is external
// to the solver core; the core only ever asks a HeapModel for the Obj of a New statement.
package heap

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Obj is an abstract heap object: one per allocation site under the default policy, or a
// synthetic object minted by an overlay analysis (Alloc == nil, e.g. a taint object — spec
// 4.7's "freshly minted taint object").
type Obj struct {
	Alloc *ir.New
	Type  string
	id    int
}

func (o *Obj) String() string { return o.Type }

// ID is a dense, process-wide index, assigned by the Model that creates the Obj — used by
// bitset/sparse-set points-to-set implementations (spec 9). Synthetic Objs share the counter
// passed to NewSynthetic by their minting package; uniqueness of an Obj as a points-to-set
// element comes from pointer identity, not from ID, so a shared counter is only a display aid.
func (o *Obj) ID() int { return o.id }

// NewSynthetic returns a heap Obj not backed by any New statement, for overlay analyses that
// mint their own abstract objects (spec 4.7). id should be unique within its minting package.
func NewSynthetic(typ string, id int) *Obj { return &Obj{Type: typ, id: id} }

// Model is the HeapModel contract: getObj(newStmt) -> Obj, canonical per allocation site.
type Model interface {
	GetObj(stmt *ir.New) *Obj
}

// AllocationSiteModel is the default, standard heap abstraction: one Obj per New statement,
// deduplicated by pointer identity of the statement.
type AllocationSiteModel struct {
	objs map[*ir.New]*Obj
	next int
}

// NewAllocationSiteModel returns an empty AllocationSiteModel.
func NewAllocationSiteModel() *AllocationSiteModel {
	return &AllocationSiteModel{objs: map[*ir.New]*Obj{}}
}

func (m *AllocationSiteModel) GetObj(stmt *ir.New) *Obj {
	if o, ok := m.objs[stmt]; ok {
		return o
	}
	o := &Obj{Alloc: stmt, Type: stmt.Type, id: m.next}
	m.next++
	m.objs[stmt] = o
	return o
}
