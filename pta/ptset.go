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

// Package pta is the context-insensitive whole-program pointer analysis (spec 4.5): the
// Pointer Flow Graph, points-to sets, and the on-the-fly fixpoint solver.
package pta

import (
	"sort"

	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
)

// PointsToSet is a monotonically growing set of abstract heap objects (spec 3, 9: "small
// integer-set structures" — Obj.ID gives the dense index a bitset implementation would key
// on; a map is used here for simplicity since the core's correctness doesn't depend on the
// concrete representation).
type PointsToSet struct {
	objs map[*heap.Obj]bool
}

// NewPointsToSet returns an empty set.
func NewPointsToSet() *PointsToSet { return &PointsToSet{objs: map[*heap.Obj]bool{}} }

// Singleton returns a set containing exactly o.
func Singleton(o *heap.Obj) *PointsToSet {
	s := NewPointsToSet()
	s.Add(o)
	return s
}

// Add inserts o, reports whether it was new.
func (s *PointsToSet) Add(o *heap.Obj) bool {
	if s.objs[o] {
		return false
	}
	s.objs[o] = true
	return true
}

// Contains reports whether o is in the set.
func (s *PointsToSet) Contains(o *heap.Obj) bool { return s.objs[o] }

// Len returns the number of objects.
func (s *PointsToSet) Len() int { return len(s.objs) }

// Empty reports whether the set has no objects.
func (s *PointsToSet) Empty() bool { return len(s.objs) == 0 }

// Objects returns every object, sorted by Obj.ID for deterministic iteration.
func (s *PointsToSet) Objects() []*heap.Obj {
	out := make([]*heap.Obj, 0, len(s.objs))
	for o := range s.objs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Diff returns a new set containing the elements of other not already in s (used to compute
// Δ = pts ∖ pts(ptr) before extending s, spec 4.5).
func (s *PointsToSet) Diff(other *PointsToSet) *PointsToSet {
	d := NewPointsToSet()
	for o := range other.objs {
		if !s.objs[o] {
			d.Add(o)
		}
	}
	return d
}

// UnionInPlace adds every object of other into s.
func (s *PointsToSet) UnionInPlace(other *PointsToSet) {
	for o := range other.objs {
		s.objs[o] = true
	}
}
