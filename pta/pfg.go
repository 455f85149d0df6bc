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
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Pointer is a PFG node: a variable, a static field, an instance field of a heap object, or
// an array index of a heap object (spec 3).
type Pointer interface {
	PointsTo() *PointsToSet
	pointerMarker()
}

type pointerBase struct{ pts *PointsToSet }

func (p *pointerBase) PointsTo() *PointsToSet { return p.pts }
func (*pointerBase) pointerMarker()           {}

// VarPointer is the PFG node for a local variable.
type VarPointer struct {
	pointerBase
	Var *ir.Var
}

// StaticFieldPointer is the PFG node for a static field.
type StaticFieldPointer struct {
	pointerBase
	Field ir.FieldRef
}

// InstanceFieldPointer is the PFG node for field f of a specific heap object.
type InstanceFieldPointer struct {
	pointerBase
	Obj   *heap.Obj
	Field ir.FieldRef
}

// ArrayIndexPointer is the PFG node for (any index of) a specific heap object's array.
type ArrayIndexPointer struct {
	pointerBase
	Obj *heap.Obj
}

type instKey struct {
	obj   *heap.Obj
	field ir.FieldRef
}

// PFG is the Pointer Flow Graph: nodes are interned Pointers (so that two requests for "the
// pointer of variable x" return the identical *VarPointer), edges denote "objects flow from
// source to target" (spec 3).
type PFG struct {
	vars   map[*ir.Var]*VarPointer
	statik map[ir.FieldRef]*StaticFieldPointer
	inst   map[instKey]*InstanceFieldPointer
	arr    map[*heap.Obj]*ArrayIndexPointer

	succs map[Pointer]map[Pointer]bool
	order []Pointer // discovery order, for deterministic iteration
}

// NewPFG returns an empty PFG.
func NewPFG() *PFG {
	return &PFG{
		vars:   map[*ir.Var]*VarPointer{},
		statik: map[ir.FieldRef]*StaticFieldPointer{},
		inst:   map[instKey]*InstanceFieldPointer{},
		arr:    map[*heap.Obj]*ArrayIndexPointer{},
		succs:  map[Pointer]map[Pointer]bool{},
	}
}

func (g *PFG) track(p Pointer) { g.order = append(g.order, p) }

// VarPtr returns (interning) the VarPointer for v.
func (g *PFG) VarPtr(v *ir.Var) *VarPointer {
	if p, ok := g.vars[v]; ok {
		return p
	}
	p := &VarPointer{pointerBase{NewPointsToSet()}, v}
	g.vars[v] = p
	g.track(p)
	return p
}

// StaticField returns (interning) the StaticFieldPointer for f.
func (g *PFG) StaticField(f ir.FieldRef) *StaticFieldPointer {
	if p, ok := g.statik[f]; ok {
		return p
	}
	p := &StaticFieldPointer{pointerBase{NewPointsToSet()}, f}
	g.statik[f] = p
	g.track(p)
	return p
}

// InstanceField returns (interning) the InstanceFieldPointer for (o, f).
func (g *PFG) InstanceField(o *heap.Obj, f ir.FieldRef) *InstanceFieldPointer {
	k := instKey{o, f}
	if p, ok := g.inst[k]; ok {
		return p
	}
	p := &InstanceFieldPointer{pointerBase{NewPointsToSet()}, o, f}
	g.inst[k] = p
	g.track(p)
	return p
}

// ArrayIndex returns (interning) the ArrayIndexPointer for o.
func (g *PFG) ArrayIndex(o *heap.Obj) *ArrayIndexPointer {
	if p, ok := g.arr[o]; ok {
		return p
	}
	p := &ArrayIndexPointer{pointerBase{NewPointsToSet()}, o}
	g.arr[o] = p
	g.track(p)
	return p
}

// AddEdge adds source -> target if it doesn't already exist; reports whether it was new.
func (g *PFG) AddEdge(source, target Pointer) bool {
	if g.succs[source] == nil {
		g.succs[source] = map[Pointer]bool{}
	}
	if g.succs[source][target] {
		return false
	}
	g.succs[source][target] = true
	return true
}

// SuccsOf returns every PFG successor of p.
func (g *PFG) SuccsOf(p Pointer) []Pointer {
	out := make([]Pointer, 0, len(g.succs[p]))
	for s := range g.succs[p] {
		out = append(out, s)
	}
	return out
}

// Pointers returns every PFG node in discovery order.
func (g *PFG) Pointers() []Pointer { return g.order }
