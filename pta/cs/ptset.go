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

// Package cs is the context-sensitive whole-program pointer analysis of spec 4.6 (C7):
// identical structure to pta (C6), but every pointer and heap object is additionally keyed by
// a context.Context produced by a context.Selector.
package cs

import (
	"sort"

	"git.amazon.com/pkg/PTA-GoAnalyzer/context"
	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
)

// CSObj is a heap object distinguished by a heap context (spec 4.6's selectHeapContext). Value
// type, not interned: two CSObj values with equal fields compare equal, exactly as spec 6
// describes Context as an opaque equatable/hashable token.
type CSObj struct {
	Ctx context.Context
	Obj *heap.Obj
}

func (o CSObj) String() string { return o.Ctx.String() + ":" + o.Obj.String() }

// PointsToSet is a monotonically growing set of CSObjs.
type PointsToSet struct{ objs map[CSObj]bool }

// NewPointsToSet returns an empty set.
func NewPointsToSet() *PointsToSet { return &PointsToSet{objs: map[CSObj]bool{}} }

// Singleton returns a set containing exactly o.
func Singleton(o CSObj) *PointsToSet {
	s := NewPointsToSet()
	s.Add(o)
	return s
}

// Add inserts o, reports whether it was new.
func (s *PointsToSet) Add(o CSObj) bool {
	if s.objs[o] {
		return false
	}
	s.objs[o] = true
	return true
}

// Contains reports whether o is in the set.
func (s *PointsToSet) Contains(o CSObj) bool { return s.objs[o] }

// Len returns the number of objects.
func (s *PointsToSet) Len() int { return len(s.objs) }

// Empty reports whether the set has no objects.
func (s *PointsToSet) Empty() bool { return len(s.objs) == 0 }

// Objects returns every object, sorted for deterministic iteration.
func (s *PointsToSet) Objects() []CSObj {
	out := make([]CSObj, 0, len(s.objs))
	for o := range s.objs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Obj.ID() != out[j].Obj.ID() {
			return out[i].Obj.ID() < out[j].Obj.ID()
		}
		return out[i].Ctx.String() < out[j].Ctx.String()
	})
	return out
}

// Diff returns a new set containing the elements of other not already in s.
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
