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
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph/cha"
	"git.amazon.com/pkg/PTA-GoAnalyzer/classhierarchy"
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// entry is one (pointer, pointsToSet) worklist item (spec 4.5).
type entry struct {
	ptr Pointer
	pts *PointsToSet
}

// Solver is the context-insensitive whole-program pointer analysis of spec 4.5: on-the-fly
// reachable-method discovery, PFG construction, and the points-to fixpoint.
type Solver struct {
	heapModel heap.Model
	hierarchy classhierarchy.Hierarchy
	resolver  cha.Resolver

	pfg *PFG
	cg  *callgraph.Graph

	queue []entry

	scanned map[*ir.Method]bool

	// stmtOwner maps each Invoke back to the method it was scanned from, since the IR's
	// statements don't carry an owning-method back pointer (needed once a virtual call's
	// receiver object is discovered asynchronously, possibly long after the call's method was
	// scanned).
	stmtOwner map[*ir.Invoke]*ir.Method

	// per-Var statement indexes, populated as methods become reachable (spec 4.5's "instance
	// effect expansion" needs, for a variable v, every StoreField/LoadField/StoreArray/
	// LoadArray/Invoke in which v is the base/receiver).
	storeFields map[*ir.Var][]*ir.StoreField
	loadFields  map[*ir.Var][]*ir.LoadField
	storeArrays map[*ir.Var][]*ir.StoreArray
	loadArrays  map[*ir.Var][]*ir.LoadArray
	invokesOn   map[*ir.Var][]*ir.Invoke

	overlay Overlay

	errors []error
}

// NewSolver constructs a Solver. heapModel, hierarchy and resolver are the external
// collaborators of spec 6.
func NewSolver(heapModel heap.Model, hierarchy classhierarchy.Hierarchy, resolver cha.Resolver) *Solver {
	return &Solver{
		heapModel:   heapModel,
		hierarchy:   hierarchy,
		resolver:    resolver,
		pfg:         NewPFG(),
		cg:          callgraph.New(),
		scanned:     map[*ir.Method]bool{},
		stmtOwner:   map[*ir.Invoke]*ir.Method{},
		storeFields: map[*ir.Var][]*ir.StoreField{},
		loadFields:  map[*ir.Var][]*ir.LoadField{},
		storeArrays: map[*ir.Var][]*ir.StoreArray{},
		loadArrays:  map[*ir.Var][]*ir.LoadArray{},
		invokesOn:   map[*ir.Var][]*ir.Invoke{},
	}
}

// Errors returns the non-fatal errors accumulated during solving (spec 7): call sites that
// resolved to no callee.
func (s *Solver) Errors() []error { return s.errors }

// Solve runs the analysis starting from entry and returns the result.
func (s *Solver) Solve(entry *ir.Method) *Result {
	s.cg.AddEntryMethod(entry)
	s.addReachable(entry)
	s.analyze()
	return &Result{pfg: s.pfg, cg: s.cg}
}

func (s *Solver) addReachable(m *ir.Method) {
	if s.scanned[m] {
		return
	}
	s.scanned[m] = true
	s.cg.AddReachableMethod(m)

	for _, stmt := range m.GetStmts() {
		switch st := stmt.(type) {
		case *ir.New:
			obj := s.heapModel.GetObj(st)
			s.enqueue(s.pfg.VarPtr(st.Lhs), Singleton(obj))
		case *ir.Copy:
			s.addPFGEdge(s.pfg.VarPtr(st.Rhs), s.pfg.VarPtr(st.Lhs))
		case *ir.LoadField:
			if st.IsStatic() {
				s.addPFGEdge(s.pfg.StaticField(st.Field), s.pfg.VarPtr(st.Lhs))
			} else {
				s.loadFields[st.Base] = append(s.loadFields[st.Base], st)
			}
		case *ir.StoreField:
			if st.IsStatic() {
				s.addPFGEdge(s.pfg.VarPtr(st.Rhs), s.pfg.StaticField(st.Field))
			} else {
				s.storeFields[st.Base] = append(s.storeFields[st.Base], st)
			}
		case *ir.LoadArray:
			s.loadArrays[st.Base] = append(s.loadArrays[st.Base], st)
		case *ir.StoreArray:
			s.storeArrays[st.Base] = append(s.storeArrays[st.Base], st)
		case *ir.Invoke:
			s.stmtOwner[st] = m
			if st.Call.Kind == ir.StaticCall || st.Call.Kind == ir.SpecialCall {
				s.processStaticOrSpecialCall(m, st)
			} else {
				s.invokesOn[st.Call.Recv] = append(s.invokesOn[st.Call.Recv], st)
			}
		}
	}
}

func (s *Solver) processStaticOrSpecialCall(caller *ir.Method, call *ir.Invoke) {
	targets := cha.Resolve(call.Call, s.hierarchy, s.resolver)
	for _, callee := range targets {
		if s.overlay != nil {
			for _, p := range s.overlay.OnCall(caller, call, callee, s.pfg) {
				s.enqueue(p.Ptr, p.Pts)
			}
		}
		s.addCallEdge(caller, call, callee)
	}
	if len(targets) == 0 {
		s.errors = append(s.errors, unresolvedCallError{call})
	}
}

func (s *Solver) addCallEdge(caller *ir.Method, call *ir.Invoke, callee *ir.Method) {
	if !s.cg.AddEdge(callgraph.Edge{Kind: call.Call.Kind, Site: call, Caller: caller, Callee: callee}) {
		return
	}
	if s.overlay != nil {
		for _, p := range s.overlay.OnCall(caller, call, callee, s.pfg) {
			s.enqueue(p.Ptr, p.Pts)
		}
	}
	s.addReachable(callee)
	s.addArgPassingEdges(call, callee)
}

func (s *Solver) addArgPassingEdges(call *ir.Invoke, callee *ir.Method) {
	args := call.Call.Args
	params := callee.GetParams()
	for i := 0; i < len(args) && i < len(params); i++ {
		s.addPFGEdge(s.pfg.VarPtr(args[i]), s.pfg.VarPtr(params[i]))
	}
	if call.Call.Lhs != nil {
		for _, rv := range callee.GetReturnVars() {
			s.addPFGEdge(s.pfg.VarPtr(rv), s.pfg.VarPtr(call.Call.Lhs))
		}
	}
}

// addPFGEdge adds source -> target (spec 4.5); if source already has a non-empty points-to
// set, that set is immediately enqueued for propagation to target.
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
		if s.overlay != nil {
			for _, p := range s.overlay.OnPropagate(e.ptr, delta, s.pfg) {
				s.enqueue(p.Ptr, p.Pts)
			}
		}
		vp, ok := e.ptr.(*VarPointer)
		if !ok {
			continue
		}
		for _, obj := range delta.Objects() {
			s.expandInstanceEffects(vp.Var, obj)
		}
	}
}

// propagate extends pts(ptr) by pts, and schedules the delta onto every PFG successor of
// ptr (spec 4.5). Returns the delta.
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

// expandInstanceEffects wires up the field/array/call PFG edges that only become relevant
// once v is known to point at obj (spec 4.5).
func (s *Solver) expandInstanceEffects(v *ir.Var, obj *heap.Obj) {
	for _, sf := range s.storeFields[v] {
		s.addPFGEdge(s.pfg.VarPtr(sf.Rhs), s.pfg.InstanceField(obj, sf.Field))
	}
	for _, lf := range s.loadFields[v] {
		s.addPFGEdge(s.pfg.InstanceField(obj, lf.Field), s.pfg.VarPtr(lf.Lhs))
	}
	for _, sa := range s.storeArrays[v] {
		s.addPFGEdge(s.pfg.VarPtr(sa.Rhs), s.pfg.ArrayIndex(obj))
	}
	for _, la := range s.loadArrays[v] {
		s.addPFGEdge(s.pfg.ArrayIndex(obj), s.pfg.VarPtr(la.Lhs))
	}
	for _, call := range s.invokesOn[v] {
		s.processInstanceCall(v, obj, call)
	}
}

// processInstanceCall resolves a VIRTUAL/INTERFACE call against the dynamic type of a newly
// discovered receiver object and wires up the callee (spec 4.5).
func (s *Solver) processInstanceCall(_ *ir.Var, obj *heap.Obj, call *ir.Invoke) {
	recvClass := s.resolver.Lookup(obj.Type)
	if recvClass == nil {
		s.errors = append(s.errors, unresolvedCallError{call})
		return
	}
	callee := classhierarchy.Dispatch(s.hierarchy, recvClass, call.Call.Method.Subsignature)
	if callee == nil {
		s.errors = append(s.errors, unresolvedCallError{call})
		return
	}
	if callee.GetThis() != nil {
		s.enqueue(s.pfg.VarPtr(callee.GetThis()), Singleton(obj))
	}
	if caller, ok := s.stmtOwner[call]; ok {
		if s.overlay != nil {
			for _, p := range s.overlay.OnCall(caller, call, callee, s.pfg) {
				s.enqueue(p.Ptr, p.Pts)
			}
		}
		s.addCallEdge(caller, call, callee)
	}
}
