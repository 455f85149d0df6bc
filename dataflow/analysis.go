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

// Package dataflow is the generic monotone dataflow framework (spec 4.1): lattice-agnostic
// worklist fixpoint over a CFG, parameterized by the fact type. Concrete analyses (constant
// propagation, live variables) live in their own packages and only implement the Analysis
// capability set below.
package dataflow

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Fact constrains a dataflow framework's fact type to support the two primitives the solver
// needs regardless of lattice shape: a deep-enough Copy, and a CopyFrom that reports whether
// anything changed (spec 9's "ambiguity in the source" note: compare a snapshot, don't
// accumulate per-write booleans). F is self-referential so lattice.CPFact and
// lattice.SetFact[T] can each satisfy Fact[*CPFact] / Fact[*SetFact[T]] directly.
type Fact[F any] interface {
	Copy() F
	CopyFrom(F) bool
}

// Analysis is the capability set an intraprocedural dataflow analysis must implement (spec
// 4.1): direction, boundary/initial facts, meet, and the per-node transfer function.
type Analysis[F Fact[F]] interface {
	// IsForward reports the direction: true for forward analyses (e.g. constant propagation),
	// false for backward ones (e.g. live variables).
	IsForward() bool
	// NewBoundaryFact computes the fact installed at the CFG's entry (forward) or exit
	// (backward) node before solving begins.
	NewBoundaryFact(cfg ir.CFG) F
	// NewInitialFact returns the fact every non-boundary node starts with.
	NewInitialFact() F
	// MeetInto merges src into dst in place (spec's meet for forward analyses, join for
	// backward ones — the framework is meet/join-agnostic, only monotonicity matters), and
	// reports whether dst changed.
	MeetInto(src, dst F) bool
	// TransferNode recomputes out from in for stmt, writing into out in place, and reports
	// whether out's final value differs from its value on entry.
	TransferNode(stmt ir.Stmt, in, out F) bool
}
