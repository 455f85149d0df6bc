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

package inter

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/constprop"
	"git.amazon.com/pkg/PTA-GoAnalyzer/icfg"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/lattice"
)

// Analysis is the inter constant-propagation analysis of spec 4.8: ordinary statements defer
// to the intraprocedural transfer (constprop.Analysis), call-site edges implement the four
// ICFG edge transfers, and heap loads/stores consult the frozen alias map to precompute, for
// every load, exactly which store statements can feed it.
type Analysis struct {
	g     ir.ICFG
	alias AliasMap

	staticStores map[ir.FieldRef][]*ir.StoreField
	staticLoads  map[ir.FieldRef][]*ir.LoadField
	instStores   map[*ir.Var][]*ir.StoreField
	instLoads    map[*ir.Var][]*ir.LoadField
	arrStores    map[*ir.Var][]*ir.StoreArray
	arrLoads     map[*ir.Var][]*ir.LoadArray

	intra constprop.Analysis

	res     *icfg.Result[*lattice.CPFact]
	enqueue func(ir.Stmt)
}

var _ icfg.Analysis[*lattice.CPFact] = (*Analysis)(nil)

// New builds an Analysis over every node of g, indexing static/instance/array stores and
// loads for the alias-aware transfer. alias must be frozen (the output of a completed pointer
// analysis, spec 9's layering rule) before New is called.
func New(g ir.ICFG, alias AliasMap) *Analysis {
	a := &Analysis{
		g:            g,
		alias:        alias,
		staticStores: map[ir.FieldRef][]*ir.StoreField{},
		staticLoads:  map[ir.FieldRef][]*ir.LoadField{},
		instStores:   map[*ir.Var][]*ir.StoreField{},
		instLoads:    map[*ir.Var][]*ir.LoadField{},
		arrStores:    map[*ir.Var][]*ir.StoreArray{},
		arrLoads:     map[*ir.Var][]*ir.LoadArray{},
	}
	for _, n := range g.Nodes() {
		switch s := n.(type) {
		case *ir.StoreField:
			if s.IsStatic() {
				a.staticStores[s.Field] = append(a.staticStores[s.Field], s)
			} else {
				a.instStores[s.Base] = append(a.instStores[s.Base], s)
			}
		case *ir.LoadField:
			if s.IsStatic() {
				a.staticLoads[s.Field] = append(a.staticLoads[s.Field], s)
			} else {
				a.instLoads[s.Base] = append(a.instLoads[s.Base], s)
			}
		case *ir.StoreArray:
			a.arrStores[s.Base] = append(a.arrStores[s.Base], s)
		case *ir.LoadArray:
			a.arrLoads[s.Base] = append(a.arrLoads[s.Base], s)
		}
	}
	return a
}

func (*Analysis) NewInitialFact() *lattice.CPFact { return lattice.NewCPFact() }

func (*Analysis) MeetInto(src, dst *lattice.CPFact) bool { return lattice.MeetInto(src, dst) }

// NewBoundaryFact mirrors the intraprocedural boundary fact (spec 4.2): every int-holding
// parameter of the entry node's owning method is NAC, since a whole-program analysis that
// starts its ICFG walk here has no caller to supply a concrete argument.
func (a *Analysis) NewBoundaryFact(entry ir.Stmt) *lattice.CPFact {
	fact := lattice.NewCPFact()
	m := a.g.MethodOf(entry)
	if m == nil {
		return fact
	}
	for _, p := range m.GetParams() {
		if ir.CanHoldInt(p.GetType()) {
			fact.Update(p, ir.NAC())
		}
	}
	return fact
}

// Init stashes the Result and enqueue callback the solver is populating, so TransferNode for a
// store can re-trigger every load it might affect, and the alias-aware load transfer can pull
// OUT facts for stores anywhere in the program, not just its own ICFG predecessors.
func (a *Analysis) Init(res *icfg.Result[*lattice.CPFact], enqueue func(ir.Stmt)) {
	a.res = res
	a.enqueue = enqueue
}

// TransferEdge implements spec 4.8's four interprocedural edge transfers for constant
// propagation.
func (a *Analysis) TransferEdge(e ir.ICFGEdge, out *lattice.CPFact) *lattice.CPFact {
	switch e.Kind {
	case ir.NormalEdge:
		return out

	case ir.CallToReturnEdge:
		fact := out.Copy()
		if e.Call != nil {
			if lhs, ok := e.Call.GetDef(); ok {
				fact.Remove(lhs)
			}
		}
		return fact

	case ir.CallEdge:
		fact := lattice.NewCPFact()
		if e.Call == nil || e.Callee == nil {
			return fact
		}
		args := e.Call.Call.Args
		params := e.Callee.GetParams()
		for i := 0; i < len(args) && i < len(params); i++ {
			if ir.CanHoldInt(params[i].GetType()) {
				fact.Update(params[i], out.Get(args[i]))
			}
		}
		return fact

	case ir.ReturnEdge:
		fact := lattice.NewCPFact()
		if e.Call == nil || e.Callee == nil {
			return fact
		}
		lhs, hasLhs := e.Call.GetDef()
		if !hasLhs || !ir.CanHoldInt(lhs.GetType()) {
			return fact
		}
		val := ir.Undef()
		for _, rv := range e.Callee.GetReturnVars() {
			val = ir.Meet(val, out.Get(rv))
		}
		fact.Update(lhs, val)
		return fact

	default:
		return lattice.NewCPFact()
	}
}

// TransferNode dispatches to the heap-aware transfer for loads/stores and to the ordinary
// intraprocedural transfer for everything else (spec 4.8).
func (a *Analysis) TransferNode(n ir.Stmt, in, out *lattice.CPFact) bool {
	switch s := n.(type) {
	case *ir.LoadField:
		return a.transferLoadField(s, in, out)
	case *ir.LoadArray:
		return a.transferLoadArray(s, in, out)
	case *ir.StoreField:
		return a.transferStoreField(s, in, out)
	case *ir.StoreArray:
		return a.transferStoreArray(s, in, out)
	default:
		return a.intra.TransferNode(n, in, out)
	}
}

// transferLoadField implements `x = C.f` and `x = b.f` (spec 4.8): x gets the meet of every
// matching store's value for its RHS, evaluated at that store's OUT fact.
func (a *Analysis) transferLoadField(s *ir.LoadField, in, out *lattice.CPFact) bool {
	before := out.Copy()
	if !ir.CanHoldInt(s.Lhs.GetType()) {
		out.CopyFrom(in)
		return !out.Equal(before)
	}

	val := ir.Undef()
	if s.IsStatic() {
		for _, store := range a.staticStores[s.Field] {
			val = ir.Meet(val, a.res.GetOutFact(store).Get(store.Rhs))
		}
	} else {
		for _, v := range a.alias.Aliases(s.Base) {
			for _, store := range a.instStores[v] {
				if store.Field == s.Field {
					val = ir.Meet(val, a.res.GetOutFact(store).Get(store.Rhs))
				}
			}
		}
	}

	tmpIn := in.Copy()
	tmpIn.Remove(s.Lhs)
	out.CopyFrom(tmpIn)
	out.Update(s.Lhs, val)
	return !out.Equal(before)
}

// transferLoadArray implements `x = b[i]` (spec 4.8): like transferLoadField, but a candidate
// store only contributes when its index and the load's index cannot be statically shown to
// disagree (indexMatch).
func (a *Analysis) transferLoadArray(s *ir.LoadArray, in, out *lattice.CPFact) bool {
	before := out.Copy()
	if !ir.CanHoldInt(s.Lhs.GetType()) {
		out.CopyFrom(in)
		return !out.Equal(before)
	}

	loadIndex := in.Get(s.Index)
	val := ir.Undef()
	for _, v := range a.alias.Aliases(s.Base) {
		for _, store := range a.arrStores[v] {
			storeIndex := a.res.GetInFact(store).Get(store.Index)
			if indexMatch(loadIndex, storeIndex) {
				val = ir.Meet(val, a.res.GetOutFact(store).Get(store.Rhs))
			}
		}
	}

	tmpIn := in.Copy()
	tmpIn.Remove(s.Lhs)
	out.CopyFrom(tmpIn)
	out.Update(s.Lhs, val)
	return !out.Equal(before)
}

// indexMatch reports whether a load at index i and a store at index j could alias (spec 4.8):
// true iff both are the same known constant, or either is NAC (unknown, so cannot be ruled
// out). Two UNDEF indices, or one UNDEF and one CONST, never match: UNDEF means "not yet
// known to be anything", which is not evidence of aliasing.
func indexMatch(i, j ir.Value) bool {
	if i.IsNAC() || j.IsNAC() {
		return true
	}
	return i.IsConst() && j.IsConst() && i.Const() == j.Const()
}

// transferStoreField implements `C.f = y` / `b.f = y`: the statement itself has no def, so its
// OUT is its IN (standard intra transfer); a change here means the stored value may differ
// from last time, so every load the store could feed is re-triggered (spec 4.8).
func (a *Analysis) transferStoreField(s *ir.StoreField, in, out *lattice.CPFact) bool {
	changed := a.intra.TransferNode(s, in, out)
	if !changed {
		return false
	}
	if s.IsStatic() {
		for _, load := range a.staticLoads[s.Field] {
			a.enqueue(load)
		}
		return true
	}
	for _, v := range a.alias.Aliases(s.Base) {
		for _, load := range a.instLoads[v] {
			if load.Field == s.Field {
				a.enqueue(load)
			}
		}
	}
	return true
}

// transferStoreArray implements `b[i] = y`: same shape as transferStoreField, but dependent
// loads are found without filtering on index — the load's own transfer re-runs indexMatch.
func (a *Analysis) transferStoreArray(s *ir.StoreArray, in, out *lattice.CPFact) bool {
	changed := a.intra.TransferNode(s, in, out)
	if !changed {
		return false
	}
	for _, v := range a.alias.Aliases(s.Base) {
		for _, load := range a.arrLoads[v] {
			a.enqueue(load)
		}
	}
	return true
}
