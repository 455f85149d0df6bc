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
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/irbuilder"
	"git.amazon.com/pkg/PTA-GoAnalyzer/pta"
)

// declareStub registers a trivial static, argumentless-bodied method on a fresh class named
// declaringType, under subsignature, so CHA can resolve call sites naming it: the taint
// overlay only fires OnCall for sites CHA/pointer analysis actually resolves to a callee, even
// though the source/sink/transfer rules themselves only match on the call's static signature.
func declareStub(prog *irbuilder.Program, declaringType, subsignature string) {
	class := prog.Class(declaringType, false, nil)
	stub := irbuilder.NewMethod(declaringType+"::"+subsignature, declaringType, true, nil, nil)
	ret := stub.Add(func(i int) ir.Stmt { return ir.NewReturn(i) })
	irbuilder.NewCFGBuilder(stub.Method()).Build([]ir.Stmt{ret})
	prog.Declare(class, subsignature, stub)
}

// Scenario G: a value returned from a configured source flows, through a plain Copy, into an
// argument of a configured sink. CollectFlows must report exactly that (source, sink) pair.
func TestTaintFlowsFromSourceToSink(t *testing.T) {
	var vars irbuilder.VarFactory
	tainted := vars.Ref("tainted")
	forwarded := vars.Ref("forwarded")

	m := &ir.Method{Signature: "T::m()V"}
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
	cfg := cb.Build([]ir.Stmt{sourceCall, forward, sinkCall, ret})
	m.Stmts = cfg.Stmts()

	cfg_ := &Config{
		sources: []Source{{Method: "Input::read()Ljava/lang/String;"}},
		sinks:   []Sink{{Method: "Exec::run(Ljava/lang/String;)V", ArgIndex: 0}},
	}

	prog := irbuilder.NewProgram()
	declareStub(prog, "Input", "read()Ljava/lang/String;")
	declareStub(prog, "Exec", "run(Ljava/lang/String;)V")

	solver := pta.NewSolver(heap.NewAllocationSiteModel(), prog.World, prog)
	overlay := NewOverlay(cfg_)
	solver.SetOverlay(overlay)
	solver.Solve(m)

	flows := overlay.CollectFlows()
	if len(flows) != 1 {
		t.Fatalf("got %d taint flows, want exactly 1: %v", len(flows), flows)
	}
	if flows[0].Source != sourceCall || flows[0].Sink != sinkCall || flows[0].ArgIndex != 0 {
		t.Errorf("unexpected flow: %+v", flows[0])
	}
}

// An untainted value passed to a resolved sink's argument produces no flow when no source call
// is present.
func TestNoTaintFlowWithoutSourceReachingSink(t *testing.T) {
	var vars irbuilder.VarFactory
	clean := vars.Ref("clean")

	m := &ir.Method{Signature: "T::m()V"}
	newClean := ir.NewNew(0, clean, "String")
	sinkCall := ir.NewInvoke(1, &ir.CallSite{
		Kind:   ir.StaticCall,
		Method: &ir.MethodRef{DeclaringType: "Exec", Subsignature: "run(Ljava/lang/String;)V"},
		Args:   []*ir.Var{clean},
	})
	ret := ir.NewReturn(2)

	cb := irbuilder.NewCFGBuilder(m)
	cb.Chain(newClean, sinkCall, ret)
	cfg := cb.Build([]ir.Stmt{newClean, sinkCall, ret})
	m.Stmts = cfg.Stmts()

	cfg_ := &Config{
		sources: []Source{{Method: "Input::read()Ljava/lang/String;"}},
		sinks:   []Sink{{Method: "Exec::run(Ljava/lang/String;)V", ArgIndex: 0}},
	}

	prog := irbuilder.NewProgram()
	declareStub(prog, "Exec", "run(Ljava/lang/String;)V")
	solver := pta.NewSolver(heap.NewAllocationSiteModel(), prog.World, prog)
	overlay := NewOverlay(cfg_)
	solver.SetOverlay(overlay)
	solver.Solve(m)

	if flows := overlay.CollectFlows(); len(flows) != 0 {
		t.Errorf("expected no taint flows for an un-sourced value, got %v", flows)
	}
}
