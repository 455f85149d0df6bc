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
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
	"git.amazon.com/pkg/PTA-GoAnalyzer/pta"
)

type sinkRecord struct {
	site      *ir.Invoke
	enclosing *ir.Method
	argIndex  int
	ptr       pta.Pointer
}

// Overlay implements pta.Overlay (spec 4.7): it matches resolved calls against the configured
// Source/Sink/Transfer rules, maintains a Taint Flow Graph parallel to the PFG, and records
// sink call sites for the final scan (CollectFlows).
type Overlay struct {
	config *Config
	mgr    *manager

	tfg   map[pta.Pointer]map[pta.Pointer]bool
	sinks []sinkRecord
}

// NewOverlay returns an Overlay driven by cfg. Install it on a Solver with Solver.SetOverlay
// before calling Solve.
func NewOverlay(cfg *Config) *Overlay {
	return &Overlay{config: cfg, mgr: newManager(), tfg: map[pta.Pointer]map[pta.Pointer]bool{}}
}

// OnCall implements pta.Overlay.
func (o *Overlay) OnCall(caller *ir.Method, call *ir.Invoke, callee *ir.Method, pfg *pta.PFG) []pta.Propagation {
	sig := call.Call.Method.String()
	var out []pta.Propagation

	if call.Call.Lhs != nil {
		for _, src := range o.config.GetSources() {
			if src.Method == sig {
				obj := o.mgr.makeTaint(call, sig)
				out = append(out, pta.Propagation{Ptr: pfg.VarPtr(call.Call.Lhs), Pts: pta.Singleton(obj)})
			}
		}
	}

	for _, sink := range o.config.GetSinks() {
		if sink.Method != sig {
			continue
		}
		if sink.ArgIndex < 0 || sink.ArgIndex >= len(call.Call.Args) {
			continue
		}
		argPtr := pfg.VarPtr(call.Call.Args[sink.ArgIndex])
		o.sinks = append(o.sinks, sinkRecord{site: call, enclosing: caller, argIndex: sink.ArgIndex, ptr: argPtr})
	}

	for _, t := range o.config.GetTransfers() {
		if t.Method != sig {
			continue
		}
		from := resolvePointer(t.From, call.Call, pfg)
		to := resolvePointer(t.To, call.Call, pfg)
		if from == nil || to == nil {
			continue
		}
		out = append(out, o.addTFGEdge(from, to, sig)...)
	}

	return out
}

// OnPropagate implements pta.Overlay: whenever a pointer's points-to set grows, the taint
// subset of the delta is additionally propagated along TFG edges.
func (o *Overlay) OnPropagate(ptr pta.Pointer, delta *pta.PointsToSet, _ *pta.PFG) []pta.Propagation {
	taintDelta := pta.NewPointsToSet()
	for _, obj := range delta.Objects() {
		if o.mgr.isTaint(obj) {
			taintDelta.Add(obj)
		}
	}
	if taintDelta.Empty() {
		return nil
	}
	var out []pta.Propagation
	for succ := range o.tfg[ptr] {
		out = append(out, pta.Propagation{Ptr: succ, Pts: taintDelta})
	}
	return out
}

// addTFGEdge adds source -> target if new, and — matching PFG's addPFGEdge — re-mints any
// taint already on source so it's immediately enqueued onto target.
func (o *Overlay) addTFGEdge(source, target pta.Pointer, resultType string) []pta.Propagation {
	if o.tfg[source] == nil {
		o.tfg[source] = map[pta.Pointer]bool{}
	}
	if o.tfg[source][target] {
		return nil
	}
	o.tfg[source][target] = true

	var out []pta.Propagation
	for _, obj := range source.PointsTo().Objects() {
		if !o.mgr.isTaint(obj) {
			continue
		}
		propagated := o.mgr.makeTaint(o.mgr.sourceCallOf(obj), resultType)
		out = append(out, pta.Propagation{Ptr: target, Pts: pta.Singleton(propagated)})
	}
	return out
}

func resolvePointer(pos Position, call *ir.CallSite, pfg *pta.PFG) pta.Pointer {
	switch {
	case pos == Result:
		if call.Lhs == nil {
			return nil
		}
		return pfg.VarPtr(call.Lhs)
	case pos == Base:
		if call.Recv == nil {
			return nil
		}
		return pfg.VarPtr(call.Recv)
	default:
		i := int(pos)
		if i < 0 || i >= len(call.Args) {
			return nil
		}
		return pfg.VarPtr(call.Args[i])
	}
}
