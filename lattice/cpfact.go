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

// Package lattice holds the two fact containers the dataflow framework is parameterized over:
// CPFact (constant-propagation facts) and SetFact (live-variable-style set facts).
package lattice

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// CPFact maps Vars to constant-propagation Values, with the invariant (spec 3) that a missing
// key denotes ir.Undef(). CPFact is itself a semilattice element under Meet: meeting two facts
// means meeting every key's Value (absent keys in either operand contribute Undef).
type CPFact struct {
	m map[*ir.Var]ir.Value
}

// NewCPFact returns an empty fact (every Var maps to UNDEF).
func NewCPFact() *CPFact { return &CPFact{m: map[*ir.Var]ir.Value{}} }

// Get returns the Value bound to v, or Undef if v has no entry.
func (f *CPFact) Get(v *ir.Var) ir.Value {
	if val, ok := f.m[v]; ok {
		return val
	}
	return ir.Undef()
}

// Update binds v to val.
func (f *CPFact) Update(v *ir.Var, val ir.Value) { f.m[v] = val }

// Remove deletes v's binding, so that Get(v) reverts to UNDEF.
func (f *CPFact) Remove(v *ir.Var) { delete(f.m, v) }

// Keys returns every Var with an explicit (non-UNDEF-by-absence) binding.
func (f *CPFact) Keys() []*ir.Var {
	keys := make([]*ir.Var, 0, len(f.m))
	for v := range f.m {
		keys = append(keys, v)
	}
	return keys
}

// Copy returns a deep (one-level) copy of f.
func (f *CPFact) Copy() *CPFact {
	m := make(map[*ir.Var]ir.Value, len(f.m))
	for k, v := range f.m {
		m[k] = v
	}
	return &CPFact{m: m}
}

// CopyFrom bulk-overwrites f's bindings with other's, reports whether anything changed. This
// is the primitive spec 9's "ambiguity in the source" note asks implementers to get right:
// changed must reflect the final value differing from the value on entry, not merely that a
// write occurred, so it's computed by comparing a snapshot rather than accumulating per-write.
func (f *CPFact) CopyFrom(other *CPFact) bool {
	before := f.Copy()
	for k, v := range other.m {
		f.m[k] = v
	}
	return !f.Equal(before)
}

// Equal reports whether f and other bind every Var to the same Value (absent-as-UNDEF aware).
func (f *CPFact) Equal(other *CPFact) bool {
	seen := map[*ir.Var]bool{}
	for k, v := range f.m {
		if !v.Equal(other.Get(k)) {
			return false
		}
		seen[k] = true
	}
	for k, v := range other.m {
		if seen[k] {
			continue
		}
		if !v.Equal(f.Get(k)) {
			return false
		}
	}
	return true
}

// MeetInto merges src into dst in place: for every Var bound in src, dst's binding becomes
// meet(src's binding, dst's binding). Returns whether dst changed.
func MeetInto(src, dst *CPFact) bool {
	before := dst.Copy()
	for v := range src.m {
		dst.m[v] = ir.Meet(src.Get(v), dst.Get(v))
	}
	return !dst.Equal(before)
}
