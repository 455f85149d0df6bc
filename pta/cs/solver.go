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
	"fmt"

	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph/cha"
	"git.amazon.com/pkg/PTA-GoAnalyzer/classhierarchy"
	"git.amazon.com/pkg/PTA-GoAnalyzer/context"
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

type entry struct {
	ptr Pointer
	pts *PointsToSet
}

// csEdgeKey deduplicates call edges by (callsite, context, callee-method, callee-context).
type csEdgeKey struct {
	site       *ir.Invoke
	callerCtx  context.Context
	callee     *ir.Method
	calleeCtx  context.Context
}

// Solver is the context-sensitive whole-program pointer analysis of spec 4.6: identical
// structure to pta.Solver, but parameterized by a context.Selector so every pointer, object,
// and call-graph node becomes a (context, ...) pair.
type Solver struct {
	heapModel heap.Model
	hierarchy classhierarchy.Hierarchy
	resolver  cha.Resolver
	selector  context.Selector

	pfg *PFG

	queue []entry

	reachable map[context.CSMethod]bool
	order     []context.CSMethod
	edgeSeen  map[csEdgeKey]bool
	edges     map[context.CSMethod][]csEdgeKey

	cycles *cycleGuard

	irScanned map[*ir.Method]bool
	varOwner  map[*ir.Var]*ir.Method

	storeFields map[*ir.Var][]*ir.StoreField
	loadFields  map[*ir.Var][]*ir.LoadField
	storeArrays map[*ir.Var][]*ir.StoreArray
	loadArrays  map[*ir.Var][]*ir.LoadArray
	invokesOn   map[*ir.Var][]*ir.Invoke

	errors []error
}

// NewSolver constructs a context-sensitive Solver parameterized by selector.
func NewSolver(heapModel heap.Model, hierarchy classhierarchy.Hierarchy, resolver cha.Resolver, selector context.Selector) *Solver {
	return &Solver{
		heapModel:   heapModel,
		hierarchy:   hierarchy,
		resolver:    resolver,
		selector:    selector,
		pfg:         NewPFG(),
		reachable:   map[context.CSMethod]bool{},
		edgeSeen:    map[csEdgeKey]bool{},
		edges:       map[context.CSMethod][]csEdgeKey{},
		cycles:      newCycleGuard(),
		irScanned:   map[*ir.Method]bool{},
		varOwner:    map[*ir.Var]*ir.Method{},
		storeFields: map[*ir.Var][]*ir.StoreField{},
		loadFields:  map[*ir.Var][]*ir.LoadField{},
		storeArrays: map[*ir.Var][]*ir.StoreArray{},
		loadArrays:  map[*ir.Var][]*ir.LoadArray{},
		invokesOn:   map[*ir.Var][]*ir.Invoke{},
	}
}

// Errors returns the non-fatal errors accumulated during solving.
func (s *Solver) Errors() []error { return s.errors }

// Solve runs the analysis starting from entry under the selector's empty context.
func (s *Solver) Solve(entry *ir.Method) *Result {
	entryCM := context.CSMethod{Context: s.selector.Empty(), Method: entry}
	s.addReachable(entryCM)
	s.analyze()
	return &Result{pfg: s.pfg, order: s.order, edges: s.edges, cycles: s.cycles}
}

func (s *Solver) addReachable(cm context.CSMethod) {
	if !s.reachable[cm] {
		s.reachable[cm] = true
		s.order = append(s.order, cm)
	}
	s.indexMethod(cm.Method)

	for _, stmt := range cm.Method.GetStmts() {
		switch st := stmt.(type) {
		case *ir.New:
			obj := s.heapModel.GetObj(st)
			heapCtx := s.selector.SelectHeapContext(cm, obj)
			s.enqueue(s.pfg.VarPtr(cm.Context, st.Lhs), Singleton(CSObj{heapCtx, obj}))
		case *ir.Copy:
			s.addPFGEdge(s.pfg.VarPtr(cm.Context, st.Rhs), s.pfg.VarPtr(cm.Context, st.Lhs))
		case *ir.LoadField:
			if st.IsStatic() {
				s.addPFGEdge(s.pfg.StaticField(st.Field), s.pfg.VarPtr(cm.Context, st.Lhs))
			}
		case *ir.StoreField:
			if st.IsStatic() {
				s.addPFGEdge(s.pfg.VarPtr(cm.Context, st.Rhs), s.pfg.StaticField(st.Field))
			}
		case *ir.Invoke:
			if st.Call.Kind == ir.StaticCall || st.Call.Kind == ir.SpecialCall {
				s.processStaticOrSpecialCall(cm, st)
			}
		}
	}
}

// indexMethod builds the var -> {storeField,loadField,...} indexes once per *ir.Method,
// regardless of how many contexts reach it (the IR itself is context-independent).
func (s *Solver) indexMethod(m *ir.Method) {
	if s.irScanned[m] {
		return
	}
	s.irScanned[m] = true
	for _, p := range m.GetParams() {
		s.varOwner[p] = m
	}
	if m.GetThis() != nil {
		s.varOwner[m.GetThis()] = m
	}
	for _, stmt := range m.GetStmts() {
		if def, ok := stmt.GetDef(); ok {
			s.varOwner[def] = m
		}
		switch st := stmt.(type) {
		case *ir.LoadField:
			if !st.IsStatic() {
				s.loadFields[st.Base] = append(s.loadFields[st.Base], st)
			}
		case *ir.StoreField:
			if !st.IsStatic() {
				s.storeFields[st.Base] = append(s.storeFields[st.Base], st)
			}
		case *ir.LoadArray:
			s.loadArrays[st.Base] = append(s.loadArrays[st.Base], st)
		case *ir.StoreArray:
			s.storeArrays[st.Base] = append(s.storeArrays[st.Base], st)
		case *ir.Invoke:
			if st.Call.Kind == ir.VirtualCall || st.Call.Kind == ir.InterfaceCall {
				s.invokesOn[st.Call.Recv] = append(s.invokesOn[st.Call.Recv], st)
			}
		}
	}
}

func (s *Solver) processStaticOrSpecialCall(cm context.CSMethod, call *ir.Invoke) {
	targets := cha.Resolve(call.Call, s.hierarchy, s.resolver)
	for _, callee := range targets {
		site := context.CSCallSite{Context: cm.Context, Call: call}
		calleeCtx := s.selector.SelectContext(site, callee)
		s.addCallEdge(cm, call, callee, calleeCtx)
	}
	if len(targets) == 0 {
		s.errors = append(s.errors, unresolvedCallError{call})
	}
}

func (s *Solver) addCallEdge(caller context.CSMethod, call *ir.Invoke, callee *ir.Method, calleeCtx context.Context) {
	calleeCM := context.CSMethod{Context: calleeCtx, Method: callee}
	key := csEdgeKey{call, caller.Context, callee, calleeCtx}
	if s.edgeSeen[key] {
		return
	}
	s.edgeSeen[key] = true
	s.edges[caller] = append(s.edges[caller], key)
	s.cycles.AddEdge(caller, calleeCM)

	s.addReachable(calleeCM)
	s.addArgPassingEdges(caller.Context, call, calleeCtx, callee)
}

func (s *Solver) addArgPassingEdges(callerCtx context.Context, call *ir.Invoke, calleeCtx context.Context, callee *ir.Method) {
	args := call.Call.Args
	params := callee.GetParams()
	for i := 0; i < len(args) && i < len(params); i++ {
		s.addPFGEdge(s.pfg.VarPtr(callerCtx, args[i]), s.pfg.VarPtr(calleeCtx, params[i]))
	}
	if call.Call.Lhs != nil {
		for _, rv := range callee.GetReturnVars() {
			s.addPFGEdge(s.pfg.VarPtr(calleeCtx, rv), s.pfg.VarPtr(callerCtx, call.Call.Lhs))
		}
	}
}

func (s *Solver) addPFGEdge(source, target Pointer) {
	if !s.pfg.AddEdge(source, target) {
		return
	}
	if pts := source.PointsTo(); !pts.Empty() {
		s.enqueue(target, pts)
	}
}

func (s *Solver) enqueue(ptr Pointer, pts *PointsToSet) {
	if pts.Empty() {
		return
	}
	s.queue = append(s.queue, entry{ptr, pts})
}

func (s *Solver) analyze() {
	for len(s.queue) > 0 {
		e := s.queue[0]
		s.queue = s.queue[1:]

		delta := s.propagate(e.ptr, e.pts)
		if delta.Empty() {
			continue
		}
		vp, ok := e.ptr.(*VarPointer)
		if !ok {
			continue
		}
		for _, obj := range delta.Objects() {
			s.expandInstanceEffects(vp, obj)
		}
	}
}

func (s *Solver) propagate(ptr Pointer, pts *PointsToSet) *PointsToSet {
	cur := ptr.PointsTo()
	delta := cur.Diff(pts)
	if delta.Empty() {
		return delta
	}
	cur.UnionInPlace(delta)
	for _, succ := range s.pfg.SuccsOf(ptr) {
		s.enqueue(succ, delta)
	}
	return delta
}

func (s *Solver) expandInstanceEffects(vp *VarPointer, obj CSObj) {
	for _, sf := range s.storeFields[vp.Var] {
		s.addPFGEdge(s.pfg.VarPtr(vp.Ctx, sf.Rhs), s.pfg.InstanceField(obj, sf.Field))
	}
	for _, lf := range s.loadFields[vp.Var] {
		s.addPFGEdge(s.pfg.InstanceField(obj, lf.Field), s.pfg.VarPtr(vp.Ctx, lf.Lhs))
	}
	for _, sa := range s.storeArrays[vp.Var] {
		s.addPFGEdge(s.pfg.VarPtr(vp.Ctx, sa.Rhs), s.pfg.ArrayIndex(obj))
	}
	for _, la := range s.loadArrays[vp.Var] {
		s.addPFGEdge(s.pfg.ArrayIndex(obj), s.pfg.VarPtr(vp.Ctx, la.Lhs))
	}
	for _, call := range s.invokesOn[vp.Var] {
		s.processInstanceCall(vp, obj, call)
	}
}

func (s *Solver) processInstanceCall(vp *VarPointer, obj CSObj, call *ir.Invoke) {
	recvClass := s.resolver.Lookup(obj.Obj.Type)
	if recvClass == nil {
		s.errors = append(s.errors, unresolvedCallError{call})
		return
	}
	callee := classhierarchy.Dispatch(s.hierarchy, recvClass, call.Call.Method.Subsignature)
	if callee == nil {
		s.errors = append(s.errors, unresolvedCallError{call})
		return
	}
	owner, ok := s.varOwner[vp.Var]
	if !ok {
		return
	}
	caller := context.CSMethod{Context: vp.Ctx, Method: owner}
	site := context.CSCallSite{Context: vp.Ctx, Call: call}
	calleeCtx := s.selector.SelectContextForInstance(site, obj.Obj, callee)

	if callee.GetThis() != nil {
		s.enqueue(s.pfg.VarPtr(calleeCtx, callee.GetThis()), Singleton(obj))
	}
	s.addCallEdge(caller, call, callee, calleeCtx)
}

type unresolvedCallError struct{ site *ir.Invoke }

func (e unresolvedCallError) Error() string {
	return fmt.Sprintf("pta/cs: unresolved call to %s", e.site.Call.Method.String())
}
