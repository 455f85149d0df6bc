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
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
)

// Scenario E: a variable copied from two distinct allocation sites ends up pointing to both
// objects (context-insensitive merging).
func TestContextInsensitivePointsToMerging(t *testing.T) {
	var vars irbuilder.VarFactory
	a := vars.Ref("a")
	b := vars.Ref("b")
	p := vars.Ref("p")

	m := &ir.Method{Signature: "T::m()V"}
	newA := ir.NewNew(0, a, "A")
	newB := ir.NewNew(1, b, "B")
	copyA := ir.NewCopy(2, p, a)
	copyB := ir.NewCopy(3, p, b)
	ret := ir.NewReturn(4)

	cb := irbuilder.NewCFGBuilder(m)
	// Both allocations precede an (unconditional, for simplicity) pair of copies into p: a
	// context-insensitive analysis merges whatever flows into p regardless of path, so two
	// straight-line copies exercise the same join behavior as a branching diamond would.
	cb.Chain(newA, newB, copyA, copyB, ret)
	cfg := cb.Build([]ir.Stmt{newA, newB, copyA, copyB, ret})
	m.Stmts = cfg.Stmts()

	prog := irbuilder.NewProgram()
	heapModel := heap.NewAllocationSiteModel()
	solver := NewSolver(heapModel, prog.World, prog)
	result := solver.Solve(m)

	pts := result.PointsToSetOf(p)
	if pts.Len() != 2 {
		t.Fatalf("p's points-to set has %d objects, want 2 (one per allocation site)", pts.Len())
	}

	objA := heapModel.GetObj(newA)
	objB := heapModel.GetObj(newB)
	if !pts.Contains(objA) || !pts.Contains(objB) {
		t.Errorf("p should point to both the A and B allocation sites")
	}
}

// Instance field stores/loads only connect once the base variable's points-to set actually
// contains an object ("instance effect expansion", spec 4.5): a value stored through obj.f must
// be visible through a later load of obj.f.
func TestInstanceFieldStoreLoadRoundTrip(t *testing.T) {
	var vars irbuilder.VarFactory
	obj := vars.Ref("obj")
	val := vars.Ref("val")
	out := vars.Ref("out")

	m := &ir.Method{Signature: "T::m()V"}
	newObj := ir.NewNew(0, obj, "Box")
	newVal := ir.NewNew(1, val, "V")
	field := ir.FieldRef{DeclaringType: "Box", Name: "f"}
	store := ir.NewStoreField(2, obj, field, val)
	load := ir.NewLoadField(3, out, obj, field)
	ret := ir.NewReturn(4)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(newObj, newVal, store, load, ret)
	cfg := cb.Build([]ir.Stmt{newObj, newVal, store, load, ret})
	m.Stmts = cfg.Stmts()

	prog := irbuilder.NewProgram()
	heapModel := heap.NewAllocationSiteModel()
	solver := NewSolver(heapModel, prog.World, prog)
	result := solver.Solve(m)

	pts := result.PointsToSetOf(out)
	if pts.Len() != 1 {
		t.Fatalf("out's points-to set has %d objects, want exactly 1", pts.Len())
	}
	if !pts.Contains(heapModel.GetObj(newVal)) {
		t.Errorf("out should point to the value stored through obj.f")
	}
}
