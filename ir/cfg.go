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

// Edge is one labelled out-edge of a CFG node.
type Edge struct {
	Kind      EdgeKind
	CaseValue int32 // meaningful only when Kind == SwitchCase
	Target    Stmt
}

// CFG is the control-flow graph of a single method's statements (spec 3, 6). IR construction
// is external to this module; the core only ever walks a CFG through this interface.
//
// Entry and Exit are synthetic Nop statements that are not part of Method.GetStmts(), so that
// dataflow boundary facts have a unique node to attach to regardless of how many real
// statements the method's body starts or ends with.
type CFG interface {
	Method() *Method
	Entry() Stmt
	Exit() Stmt
	// Stmts returns every statement in program order, Entry and Exit excluded.
	Stmts() []Stmt
	PredsOf(n Stmt) []Stmt
	SuccsOf(n Stmt) []Stmt
	OutEdges(n Stmt) []Edge
}
