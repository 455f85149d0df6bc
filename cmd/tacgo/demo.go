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

package main

// This module's IR is not parsed from source (spec 1 keeps that out of scope), so there is no
// file format for "tacgo run myprogram.src" to read. Instead each subcommand below builds a
// small, representative program with irbuilder and runs the requested analysis over it — the
// same construction style as the package test fixtures, just wired into a binary that a user
// can invoke and see a result dump from.

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
	"git.amazon.com/pkg/PTA-GoAnalyzer/taint"
)

// chaDemo declares Animal, with Dog and Cat overriding its speak() method, and a Main.run
// method that calls speak() virtually on a statically-typed Animal receiver.
func chaDemo() (prog *irbuilder.Program, entry *ir.Method) {
	prog = irbuilder.NewProgram()

	animal := prog.Class("Animal", false, nil)
	animalSpeak := irbuilder.NewMethod("Animal::speak()V", "Animal", false, nil, nil)
	animalRet := animalSpeak.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(animalSpeak.Method()).Build([]ir.Stmt{animalRet})
	prog.Declare(animal, "speak()V", animalSpeak)

	dog := prog.Class("Dog", false, animal)
	dogSpeak := irbuilder.NewMethod("Dog::speak()V", "Dog", false, nil, nil)
	dogRet := dogSpeak.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(dogSpeak.Method()).Build([]ir.Stmt{dogRet})
	prog.Declare(dog, "speak()V", dogSpeak)

	cat := prog.Class("Cat", false, animal)
	catSpeak := irbuilder.NewMethod("Cat::speak()V", "Cat", false, nil, nil)
	catRet := catSpeak.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(catSpeak.Method()).Build([]ir.Stmt{catRet})
	prog.Declare(cat, "speak()V", catSpeak)

	var vars irbuilder.VarFactory
	recv := vars.Ref("a")
	call := &ir.CallSite{
		Kind:   ir.VirtualCall,
		Method: &ir.MethodRef{DeclaringType: "Animal", Subsignature: "speak()V"},
		Recv:   recv,
	}
	invoke := ir.NewInvoke(0, call)
	ret := ir.NewReturn(1)

	runMB := irbuilder.NewMethod("Main::run()V", "Main", true, nil, nil)
	mm := runMB.Method()
	mm.Stmts = []ir.Stmt{invoke, ret}
	irbuilder.NewCFGBuilder(mm).Build(mm.Stmts)

	return prog, mm
}

// pointerDemo allocates two Box-typed objects and copies both into p, then round-trips a field
// store/load through the merged points-to set.
func pointerDemo() (prog *irbuilder.Program, entry *ir.Method) {
	prog = irbuilder.NewProgram()

	var vars irbuilder.VarFactory
	a := vars.Ref("a")
	b := vars.Ref("b")
	p := vars.Ref("p")
	val := vars.Ref("val")
	out := vars.Ref("out")

	m := &ir.Method{Signature: "Main::run()V"}
	newA := ir.NewNew(0, a, "Box")
	newB := ir.NewNew(1, b, "Box")
	copyA := ir.NewCopy(2, p, a)
	copyB := ir.NewCopy(3, p, b)
	newVal := ir.NewNew(4, val, "V")
	field := ir.FieldRef{DeclaringType: "Box", Name: "f"}
	store := ir.NewStoreField(5, p, field, val)
	load := ir.NewLoadField(6, out, p, field)
	ret := ir.NewReturn(7)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(newA, newB, copyA, copyB, newVal, store, load, ret)
	cfg := cb.Build([]ir.Stmt{newA, newB, copyA, copyB, newVal, store, load, ret})
	m.Stmts = cfg.Stmts()

	return prog, m
}

// livenessDemo builds the constant-foldable if/else plus a useless add and a kept div, the
// same shape as the liveness/dead-code package test fixture.
func livenessDemo() (entry *ir.Method, cfg ir.CFG) {
	var vars irbuilder.VarFactory
	one := vars.Int("one")
	x := vars.Int("x")
	y := vars.Int("y")
	z := vars.Int("z")
	w := vars.Int("w")

	m := &ir.Method{Signature: "Main::run()I"}
	setOne := ir.NewAssign(0, one, ir.IntLiteral{K: 1})
	ifStmt := ir.NewIf(1, one)
	liveBranch := ir.NewAssign(2, x, ir.IntLiteral{K: 5})
	deadBranch := ir.NewAssign(3, x, ir.IntLiteral{K: 9})
	uselessAssign := ir.NewAssign(4, z, ir.BinaryExp{Op: ir.ADD, X: x, Y: x})
	divAssign := ir.NewAssign(5, w, ir.BinaryExp{Op: ir.DIV, X: x, Y: one})
	ret := ir.NewReturn(6, y)
	m.ReturnVars = []*ir.Var{y}

	b := irbuilder.NewCFGBuilder(m)
	b.AddEdge(b.Entry(), ir.FallThrough, setOne)
	b.AddEdge(setOne, ir.FallThrough, ifStmt)
	b.AddEdge(ifStmt, ir.IfTrue, liveBranch)
	b.AddEdge(ifStmt, ir.IfFalse, deadBranch)
	b.AddEdge(liveBranch, ir.FallThrough, uselessAssign)
	b.AddEdge(deadBranch, ir.FallThrough, uselessAssign)
	b.AddEdge(uselessAssign, ir.FallThrough, divAssign)
	b.AddEdge(divAssign, ir.FallThrough, ret)
	built := b.Build([]ir.Stmt{setOne, ifStmt, liveBranch, deadBranch, uselessAssign, divAssign, ret})

	return m, built
}

// interDemo builds the alias-through-copy scenario: a constant stored through p.f is visible
// to a load through q.f, q being a Copy-alias of p. It returns the load statement and the Var
// receiving the loaded value, plus p itself, so a caller can report the alias set and the
// inter-procedural constant-propagation result without re-deriving Var identities.
func interDemo() (prog *irbuilder.Program, entry *ir.Method, p, out *ir.Var, load ir.Stmt) {
	prog = irbuilder.NewProgram()

	var vars irbuilder.VarFactory
	c := vars.Int("c")
	p = vars.Ref("p")
	q := vars.Ref("q")
	out = vars.Int("out")

	m := &ir.Method{Signature: "Main::run()V"}
	setC := ir.NewAssign(0, c, ir.IntLiteral{K: 42})
	newP := ir.NewNew(1, p, "Box")
	copyQ := ir.NewCopy(2, q, p)
	field := ir.FieldRef{DeclaringType: "Box", Name: "f"}
	store := ir.NewStoreField(3, p, field, c)
	loadField := ir.NewLoadField(4, out, q, field)
	ret := ir.NewReturn(5)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(setC, newP, copyQ, store, loadField, ret)
	cfg := cb.Build([]ir.Stmt{setC, newP, copyQ, store, loadField, ret})
	m.Stmts = cfg.Stmts()

	return prog, m, p, out, loadField
}

// taintDemo declares stub Input/Exec classes so CHA can resolve the source/sink call sites,
// and a run() method where a value read from Input flows, through a Copy, into Exec's sink
// argument.
func taintDemo() (prog *irbuilder.Program, entry *ir.Method, cfg *taint.Config) {
	prog = irbuilder.NewProgram()
	declareStub(prog, "Input", "read()Ljava/lang/String;")
	declareStub(prog, "Exec", "run(Ljava/lang/String;)V")

	var vars irbuilder.VarFactory
	tainted := vars.Ref("tainted")
	forwarded := vars.Ref("forwarded")

	m := &ir.Method{Signature: "Main::run()V"}
	sourceCall := ir.NewInvoke(0, &ir.CallSite{
		Kind:   ir.StaticCall,
		Method: &ir.MethodRef{DeclaringType: "Input", Subsignature: "read()Ljava/lang/String;"},
		Lhs:    tainted,
	})
	forward := ir.NewCopy(1, forwarded, tainted)
	sinkCall := ir.NewInvoke(2, &ir.CallSite{
		Kind:   ir.StaticCall,
		Method: &ir.MethodRef{DeclaringType: "Exec", Subsignature: "run(Ljava/lang/String;)V"},
		Args:   []*ir.Var{forwarded},
	})
	ret := ir.NewReturn(3)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(sourceCall, forward, sinkCall, ret)
	built := cb.Build([]ir.Stmt{sourceCall, forward, sinkCall, ret})
	m.Stmts = built.Stmts()

	cfg = taint.NewConfig(
		[]taint.Source{{Method: "Input::read()Ljava/lang/String;"}},
		[]taint.Sink{{Method: "Exec::run(Ljava/lang/String;)V", ArgIndex: 0}},
		nil,
	)

	return prog, m, cfg
}

// declareStub registers a trivial static method so CHA can resolve call sites naming it.
func declareStub(prog *irbuilder.Program, declaringType, subsignature string) {
	class := prog.Class(declaringType, false, nil)
	stub := irbuilder.NewMethod(declaringType+"::"+subsignature, declaringType, true, nil, nil)
	ret := stub.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(stub.Method()).Build([]ir.Stmt{ret})
	prog.Declare(class, subsignature, stub)
}
