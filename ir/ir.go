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

// Method is the per-method intermediate representation consumed by the core (spec 6's `IR`
// contract). A Method owns its own dense Var arena; a CFGBuilder (external) computes its CFG
// lazily, keyed by an opaque builder id so that different CFG-shaped views (e.g. one CFG per
// dataflow vs. one shared with the ICFG) can coexist.
type Method struct {
	// Signature is the method's fully-qualified subsignature, e.g. "pkg.Class::m(I)I".
	Signature string

	// DeclaringType is the class/interface this method is declared on.
	DeclaringType string

	// IsStatic is true for STATIC-dispatchable methods (no receiver).
	IsStatic bool

	Params     []*Var
	This       *Var // nil if IsStatic
	ReturnVars []*Var
	Stmts      []Stmt

	cfg CFG
}

// GetParams returns the method's declared parameters, in order.
func (m *Method) GetParams() []*Var { return m.Params }

// GetStmts returns every statement in the method body, in program order.
func (m *Method) GetStmts() []Stmt { return m.Stmts }

// GetReturnVars returns every Var named by a Return statement anywhere in the method.
func (m *Method) GetReturnVars() []*Var { return m.ReturnVars }

// GetThis returns the receiver Var, or nil for a static method.
func (m *Method) GetThis() *Var { return m.This }

// GetResult returns the method's CFG. cfgBuilderID is accepted for interface symmetry with
// spec 6 ("getResult(cfgBuilderId)"); this minimal IR only ever builds one CFG per method.
func (m *Method) GetResult(cfgBuilderID string) CFG { return m.cfg }

// SetCFG attaches the CFG built for this method. Called once, by the IR builder.
func (m *Method) SetCFG(cfg CFG) { m.cfg = cfg }

func (m *Method) String() string { return m.Signature }
