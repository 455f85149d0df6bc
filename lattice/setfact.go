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

package lattice

// SetFact is a generic set-valued fact (spec 3), used by live-variable analysis. The join
// operation for set facts is set union, so SetFact's lattice order is reversed relative to
// CPFact's meet: bigger sets are higher in the lattice.
type SetFact[T comparable] struct {
	m map[T]struct{}
}

// NewSetFact returns an empty SetFact.
func NewSetFact[T comparable]() *SetFact[T] { return &SetFact[T]{m: map[T]struct{}{}} }

// Add inserts x into the set.
func (f *SetFact[T]) Add(x T) { f.m[x] = struct{}{} }

// Remove deletes x from the set, if present.
func (f *SetFact[T]) Remove(x T) { delete(f.m, x) }

// Contains reports whether x is in the set.
func (f *SetFact[T]) Contains(x T) bool { _, ok := f.m[x]; return ok }

// Len returns the number of elements.
func (f *SetFact[T]) Len() int { return len(f.m) }

// Elements returns the set's members in unspecified order.
func (f *SetFact[T]) Elements() []T {
	out := make([]T, 0, len(f.m))
	for x := range f.m {
		out = append(out, x)
	}
	return out
}

// Union merges other into f in place, returns whether f changed.
func (f *SetFact[T]) Union(other *SetFact[T]) bool {
	changed := false
	for x := range other.m {
		if !f.Contains(x) {
			f.m[x] = struct{}{}
			changed = true
		}
	}
	return changed
}

// Copy returns a shallow copy of f.
func (f *SetFact[T]) Copy() *SetFact[T] {
	m := make(map[T]struct{}, len(f.m))
	for x := range f.m {
		m[x] = struct{}{}
	}
	return &SetFact[T]{m: m}
}

// CopyFrom overwrites f's contents with other's, returns whether f changed.
func (f *SetFact[T]) CopyFrom(other *SetFact[T]) bool {
	changed := f.Len() != other.Len()
	m := make(map[T]struct{}, len(other.m))
	for x := range other.m {
		if !changed && !f.Contains(x) {
			changed = true
		}
		m[x] = struct{}{}
	}
	f.m = m
	return changed
}

// Equal reports whether f and other contain exactly the same elements.
func (f *SetFact[T]) Equal(other *SetFact[T]) bool {
	if f.Len() != other.Len() {
		return false
	}
	for x := range f.m {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}
