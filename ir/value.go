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

// Package ir declares the intermediate-representation contracts the analysis core consumes:
// typed variables, the closed statement algebraic data type, and the constant-propagation
// value lattice. IR construction (parsing/lifting a program into this representation) is an
// external concern; this package only fixes the shapes the solvers are allowed to assume.
package ir

import "fmt"

// Kind distinguishes the three points of the constant-propagation lattice.
type Kind uint8

const (
	// KindUndef is the lattice bottom: no information yet.
	KindUndef Kind = iota
	// KindConst holds a known 32-bit signed constant.
	KindConst
	// KindNAC is the lattice top: "not a constant".
	KindNAC
)

// Value is a point in the three-point integer constant-propagation lattice:
// UNDEF (bottom) <= CONST(k) <= NAC (top).
//
// The zero Value is UNDEF, so the absent-key convention of CPFact ("missing means UNDEF")
// is consistent with a zero-valued map entry.
type Value struct {
	kind Kind
	k    int32
}

// Undef returns the lattice bottom.
func Undef() Value { return Value{kind: KindUndef} }

// NAC returns the lattice top.
func NAC() Value { return Value{kind: KindNAC} }

// ConstOf returns the constant point for k.
func ConstOf(k int32) Value { return Value{kind: KindConst, k: k} }

// IsUndef reports whether v is the lattice bottom.
func (v Value) IsUndef() bool { return v.kind == KindUndef }

// IsNAC reports whether v is the lattice top.
func (v Value) IsNAC() bool { return v.kind == KindNAC }

// IsConst reports whether v holds a known constant.
func (v Value) IsConst() bool { return v.kind == KindConst }

// Const returns the constant held by v. Only meaningful when v.IsConst().
func (v Value) Const() int32 { return v.k }

// Equal reports whether v and o denote the same lattice point. Never compare Values with ==
// for CONST: two CONST values with equal constants are equal even though their internal
// representation need not be identical in the long run, and comparing a Value to the zero
// value via == would conflate "UNDEF" with an uninitialized struct in calling code, so treat
// this method as the interface.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	return v.kind != KindConst || v.k == o.k
}

// String renders the value for debugging and logs.
func (v Value) String() string {
	switch v.kind {
	case KindUndef:
		return "UNDEF"
	case KindNAC:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.k)
	}
}

// Meet computes the greatest lower bound of a and b on the constant-propagation lattice
// (spec 3): meet(NAC, _) = NAC, meet(UNDEF, x) = x, meet(CONST(k1), CONST(k2)) = CONST(k1) iff
// k1 == k2, else NAC. Meet is commutative and associative (tested in lattice_test.go).
func Meet(a, b Value) Value {
	if a.IsNAC() || b.IsNAC() {
		return NAC()
	}
	if a.IsUndef() {
		return b
	}
	if b.IsUndef() {
		return a
	}
	if a.k == b.k {
		return a
	}
	return NAC()
}
