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

package dataflow

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Result is the produced DataflowResult<Node, Fact> interface of spec 6: a per-node (IN, OUT)
// fact pair, queryable after the solver returns.
type Result[F Fact[F]] struct {
	in  map[ir.Stmt]F
	out map[ir.Stmt]F
}

func newResult[F Fact[F]]() *Result[F] {
	return &Result[F]{in: map[ir.Stmt]F{}, out: map[ir.Stmt]F{}}
}

// GetInFact returns the IN fact computed for n.
func (r *Result[F]) GetInFact(n ir.Stmt) F { return r.in[n] }

// GetOutFact returns the OUT fact computed for n.
func (r *Result[F]) GetOutFact(n ir.Stmt) F { return r.out[n] }

func (r *Result[F]) setIn(n ir.Stmt, f F)  { r.in[n] = f }
func (r *Result[F]) setOut(n ir.Stmt, f F) { r.out[n] = f }
