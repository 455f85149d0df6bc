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

package ir

// ICFGEdgeKind is one of the four interprocedural edge kinds of spec 3.
type ICFGEdgeKind uint8

const (
	// NormalEdge is an ordinary intraprocedural CFG edge, lifted into the ICFG.
	NormalEdge ICFGEdgeKind = iota
	// CallEdge goes from a callsite to the entry of a resolved callee.
	CallEdge
	// ReturnEdge goes from a callee's exit to the callsite's return point in the caller.
	ReturnEdge
	// CallToReturnEdge skips the call, modelling "the call might not affect this fact".
	CallToReturnEdge
)

// ICFGEdge is one labelled interprocedural edge.
type ICFGEdge struct {
	Kind EdgeKindOrICFG
	From Stmt
	To   Stmt
	// Callee is set for CallEdge/ReturnEdge: the method the edge crosses into/out of.
	Callee *Method
	// Call is the originating call site for CallEdge/ReturnEdge/CallToReturnEdge. For
	// CallEdge/CallToReturnEdge this is the same Stmt as From; for ReturnEdge, From is the
	// callee's exit, so Call is the only way to recover which call site the edge returns to.
	Call *Invoke
}

// EdgeKindOrICFG is ICFGEdgeKind; named distinctly to avoid clashing with the intraprocedural
// EdgeKind in call sites that import both.
type EdgeKindOrICFG = ICFGEdgeKind

// ICFG is the interprocedural control-flow graph: the union of every reachable method's CFG,
// glued together at call sites per spec 3/4.8. It is produced by the icfg package from a call
// graph and a set of per-method CFGs; the core dataflow framework only ever consumes it through
// this interface.
type ICFG interface {
	// EntryMethods returns the methods whose CFG.Entry() should receive the analysis's
	// boundary fact (the program's designated entry points).
	EntryMethods() []*Method
	// Methods returns every method reachable in the ICFG.
	Methods() []*Method
	Nodes() []Stmt
	InEdges(n Stmt) []ICFGEdge
	OutEdges(n Stmt) []ICFGEdge
	// IsCallSite reports whether n is an Invoke statement with at least one resolved callee.
	IsCallSite(n Stmt) bool
	// CalleesOf returns the resolved callee entry points for a call site, empty if unresolved.
	CalleesOf(n Stmt) []*Method
	// MethodOf returns the method n belongs to.
	MethodOf(n Stmt) *Method
}
