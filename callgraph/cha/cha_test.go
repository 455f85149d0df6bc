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

package cha

import (
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
)

// buildDiamondHierarchy declares a base class A with a virtual method foo, and a subclass B
// that overrides it, wiring each declared method a trivial one-statement CFG.
func buildDiamondHierarchy(t *testing.T) (prog *irbuilder.Program, fooA, fooB *ir.Method) {
	t.Helper()
	prog = irbuilder.NewProgram()

	classA := prog.Class("A", false, nil)
	aFoo := irbuilder.NewMethod("A::foo()V", "A", false, nil, nil)
	ret := aFoo.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(aFoo.Method()).Build([]ir.Stmt{ret})
	prog.Declare(classA, "foo()V", aFoo)

	classB := prog.Class("B", false, classA)
	bFoo := irbuilder.NewMethod("B::foo()V", "B", false, nil, nil)
	ret2 := bFoo.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(bFoo.Method()).Build([]ir.Stmt{ret2})
	prog.Declare(classB, "foo()V", bFoo)

	return prog, aFoo.Method(), bFoo.Method()
}

// Scenario D: a VIRTUAL call statically declared on base class A resolves, via CHA, to every
// override reachable in A's subtype closure (A itself and subclass B), not just the statically
// declared method.
func TestVirtualDispatchResolvesWholeSubtypeClosure(t *testing.T) {
	prog, fooA, fooB := buildDiamondHierarchy(t)

	var vars irbuilder.VarFactory
	recv := vars.Ref("r")
	callSite := &ir.CallSite{
		Kind:   ir.VirtualCall,
		Method: &ir.MethodRef{DeclaringType: "A", Subsignature: "foo()V"},
		Recv:   recv,
	}
	invoke := ir.NewInvoke(0, callSite)

	main := irbuilder.NewMethod("Main::main()V", "Main", true, nil, nil)
	ret := main.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	mm := main.Method()
	mm.Stmts = []ir.Stmt{invoke, ret}

	b := irbuilder.NewCFGBuilder(mm)
	b.Chain(invoke, ret)
	b.Build(mm.Stmts)

	g := Build(mm, prog.World, prog)

	callees := g.CalleesOf(invoke, mm)
	if len(callees) != 2 {
		t.Fatalf("VIRTUAL call on A::foo()V resolved to %d callees, want 2 (A.foo and B.foo)", len(callees))
	}
	seen := map[*ir.Method]bool{}
	for _, c := range callees {
		seen[c] = true
	}
	if !seen[fooA] || !seen[fooB] {
		t.Errorf("expected both A.foo and B.foo among CHA's resolved targets")
	}
}

// A STATIC call always resolves to exactly the statically declared method, never expanding to
// subtypes.
func TestStaticDispatchResolvesExactlyOne(t *testing.T) {
	prog, fooA, _ := buildDiamondHierarchy(t)

	callSite := &ir.CallSite{
		Kind:   ir.StaticCall,
		Method: &ir.MethodRef{DeclaringType: "A", Subsignature: "foo()V"},
	}
	targets := Resolve(callSite, prog.World, prog)
	if len(targets) != 1 || targets[0] != fooA {
		t.Errorf("STATIC call resolved to %v, want exactly [A.foo]", targets)
	}
}

// SPECIAL dispatch (super calls) walks up from the declaring class, never down into overrides.
func TestSpecialDispatchWalksUpNotDown(t *testing.T) {
	prog, fooA, fooB := buildDiamondHierarchy(t)

	callSite := &ir.CallSite{
		Kind:   ir.SpecialCall,
		Method: &ir.MethodRef{DeclaringType: "B", Subsignature: "foo()V"},
	}
	targets := Resolve(callSite, prog.World, prog)
	if len(targets) != 1 || targets[0] != fooB {
		t.Errorf("SPECIAL call on B::foo()V should resolve to B.foo itself, got %v", targets)
	}
	_ = fooA
}
