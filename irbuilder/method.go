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

package irbuilder

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// VarFactory hands out *ir.Var with a dense, method-local Index (spec 9's arena convention),
// so fixtures never have to track indices by hand.
type VarFactory struct {
	next int
}

// Int declares an int-holding local named name.
func (f *VarFactory) Int(name string) *ir.Var { return f.typed(name, ir.TInt) }

// Ref declares a reference-typed local named name.
func (f *VarFactory) Ref(name string) *ir.Var { return f.typed(name, ir.TReference) }

func (f *VarFactory) typed(name string, t ir.Type) *ir.Var {
	v := ir.NewVar(name, t, f.next)
	f.next++
	return v
}

// MethodBuilder assembles an *ir.Method statement by statement, assigning each one a dense
// index as it's appended (spec 3's Stmt.Idx()).
type MethodBuilder struct {
	method *ir.Method
	next   int
}

// NewMethod starts a method. params/this/returnVars follow spec 6's IR contract
// (GetParams/GetThis/GetReturnVars).
func NewMethod(signature, declaringType string, isStatic bool, params []*ir.Var, this *ir.Var) *MethodBuilder {
	return &MethodBuilder{method: &ir.Method{
		Signature:     signature,
		DeclaringType: declaringType,
		IsStatic:      isStatic,
		Params:        params,
		This:          this,
	}}
}

// Add appends a statement factory's result, numbering it with the next dense index, and
// returns the numbered statement for use as a branch target / CFG edge endpoint.
func (b *MethodBuilder) Add(make func(index int) ir.Stmt) ir.Stmt {
	s := make(b.next)
	b.next++
	b.method.Stmts = append(b.method.Stmts, s)
	if ret, ok := s.(*ir.Return); ok {
		b.method.ReturnVars = append(b.method.ReturnVars, ret.Vars...)
	}
	return s
}

// Method returns the assembled *ir.Method. Call after every statement has been Add-ed and
// the CFG has been attached via CFGBuilder.Build.
func (b *MethodBuilder) Method() *ir.Method { return b.method }
