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

// Pointer is a context-sensitive PFG node (spec 4.6): a (context, variable) pair, a static
// field (context-insensitive, as in spec 4.6's note that only pointers/objects/call-graph nodes
// become pairs — static fields have no context to key on), or an instance field/array index of
// a specific CSObj.
type Pointer interface {
	PointsTo() *PointsToSet
	pointerMarker()
}

type pointerBase struct{ pts *PointsToSet }

func (p *pointerBase) PointsTo() *PointsToSet { return p.pts }
func (*pointerBase) pointerMarker()           {}

// VarPointer is the PFG node for (context, variable).
type VarPointer struct {
	pointerBase
	Ctx context.Context
	Var *ir.Var
}

// StaticFieldPointer is the PFG node for a static field.
type StaticFieldPointer struct {
	pointerBase
	Field ir.FieldRef
}

// InstanceFieldPointer is the PFG node for field f of a specific CSObj.
type InstanceFieldPointer struct {
	pointerBase
	Obj   CSObj
	Field ir.FieldRef
}

// ArrayIndexPointer is the PFG node for (any index of) a specific CSObj's array.
type ArrayIndexPointer struct {
	pointerBase
	Obj CSObj
}

type varKey struct {
	ctx context.Context
	v   *ir.Var
}

type instKey struct {
	obj   CSObj
	field ir.FieldRef
}

// PFG is the context-sensitive Pointer Flow Graph.
type PFG struct {
	vars   map[varKey]*VarPointer
	statik map[ir.FieldRef]*StaticFieldPointer
	inst   map[instKey]*InstanceFieldPointer
	arr    map[CSObj]*ArrayIndexPointer

	succs map[Pointer]map[Pointer]bool
	order []Pointer
}

// NewPFG returns an empty PFG.
func NewPFG() *PFG {
	return &PFG{
		vars:   map[varKey]*VarPointer{},
		statik: map[ir.FieldRef]*StaticFieldPointer{},
		inst:   map[instKey]*InstanceFieldPointer{},
		arr:    map[CSObj]*ArrayIndexPointer{},
		succs:  map[Pointer]map[Pointer]bool{},
	}
}

func (g *PFG) track(p Pointer) { g.order = append(g.order, p) }

// VarPtr returns (interning) the VarPointer for (ctx, v).
func (g *PFG) VarPtr(ctx context.Context, v *ir.Var) *VarPointer {
	k := varKey{ctx, v}
	if p, ok := g.vars[k]; ok {
		return p
	}
	p := &VarPointer{pointerBase{NewPointsToSet()}, ctx, v}
	g.vars[k] = p
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
func (g *PFG) InstanceField(o CSObj, f ir.FieldRef) *InstanceFieldPointer {
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
func (g *PFG) ArrayIndex(o CSObj) *ArrayIndexPointer {
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
