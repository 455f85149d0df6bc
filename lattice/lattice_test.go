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

import (
	"testing"

	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

func TestMeetCommutative(t *testing.T) {
	vals := []ir.Value{ir.Undef(), ir.NAC(), ir.ConstOf(1), ir.ConstOf(2)}
	for _, a := range vals {
		for _, b := range vals {
			if got, want := ir.Meet(a, b), ir.Meet(b, a); !got.Equal(want) {
				t.Errorf("Meet(%v, %v) = %v, Meet(%v, %v) = %v: not commutative", a, b, got, b, a, want)
			}
		}
	}
}

func TestMeetAssociative(t *testing.T) {
	vals := []ir.Value{ir.Undef(), ir.NAC(), ir.ConstOf(1), ir.ConstOf(2)}
	for _, a := range vals {
		for _, b := range vals {
			for _, c := range vals {
				lhs := ir.Meet(ir.Meet(a, b), c)
				rhs := ir.Meet(a, ir.Meet(b, c))
				if !lhs.Equal(rhs) {
					t.Errorf("Meet not associative for (%v,%v,%v): %v != %v", a, b, c, lhs, rhs)
				}
			}
		}
	}
}

func TestMeetIdentityAndAbsorption(t *testing.T) {
	c := ir.ConstOf(7)
	if !ir.Meet(ir.Undef(), c).Equal(c) {
		t.Errorf("UNDEF should be the meet identity")
	}
	if !ir.Meet(ir.NAC(), c).Equal(ir.NAC()) {
		t.Errorf("NAC should absorb any meet")
	}
	if !ir.Meet(c, ir.ConstOf(7)).Equal(c) {
		t.Errorf("meeting two equal constants should yield that constant")
	}
	if !ir.Meet(c, ir.ConstOf(8)).Equal(ir.NAC()) {
		t.Errorf("meeting two distinct constants should yield NAC")
	}
}

func TestCPFactMeetIntoAbsentIsUndef(t *testing.T) {
	src := NewCPFact()
	v := ir.NewVar("x", ir.TInt, 0)
	src.Update(v, ir.ConstOf(3))

	dst := NewCPFact() // v absent, so Get(v) == Undef
	if changed := MeetInto(src, dst); !changed {
		t.Fatalf("expected MeetInto to report a change")
	}
	if got := dst.Get(v); !got.Equal(ir.ConstOf(3)) {
		t.Errorf("meet(CONST(3), UNDEF) = %v, want CONST(3)", got)
	}

	if changed := MeetInto(src, dst); changed {
		t.Errorf("re-meeting an already-stable fact should report no change")
	}
}

func TestSetFactUnionIsIdempotentAndCommutative(t *testing.T) {
	a := NewSetFact[string]()
	a.Add("x")
	a.Add("y")
	b := NewSetFact[string]()
	b.Add("y")
	b.Add("z")

	ab := a.Copy()
	ab.Union(b)
	ba := b.Copy()
	ba.Union(a)
	if !ab.Equal(ba) {
		t.Errorf("union should be commutative: %v != %v", ab.Elements(), ba.Elements())
	}

	if changed := ab.Union(b); changed {
		t.Errorf("re-unioning an already-contained set should report no change")
	}
}
