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

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Overlay lets an auxiliary analysis (the taint overlay of spec 4.7, package taint) observe
// call resolution and points-to propagation without the core solver importing it. The solver
// calls these hooks at exactly the two points spec 4.7 anchors taint processing to: "at each
// resolved call" and "whenever objects propagate, filter those that are tainted".
type Overlay interface {
	// OnCall fires once per resolved call edge, static/special or virtual/interface alike. It
	// returns any (pointer, set) pairs that should be enqueued as a result (e.g. a freshly
	// minted taint object landing on the call's result pointer).
	OnCall(caller *ir.Method, call *ir.Invoke, callee *ir.Method, pfg *PFG) []Propagation
	// OnPropagate fires after the solver extends ptr's points-to set by delta; it returns
	// any additional (pointer, set) pairs the overlay wants enqueued (e.g. taint objects
	// flowing along TFG edges).
	OnPropagate(ptr Pointer, delta *PointsToSet, pfg *PFG) []Propagation
}

// Propagation is one (pointer, points-to set) pair an Overlay asks the solver to enqueue.
type Propagation struct {
	Ptr Pointer
	Pts *PointsToSet
}

// SetOverlay installs the auxiliary analysis. Must be called before Solve.
func (s *Solver) SetOverlay(o Overlay) { s.overlay = o }
