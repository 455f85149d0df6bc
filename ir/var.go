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

package ir

// Type is one of the primitive type tags a Var can carry, plus Reference for everything
// that is not a primitive (objects, arrays, interfaces).
type Type uint8

const (
	TByte Type = iota
	TShort
	TInt
	TChar
	TBoolean
	TLong
	TFloat
	TDouble
	TReference
)

// CanHoldInt reports whether t is "int-holding" per spec 4.2: byte, short, int, char and
// boolean are coerced into the integer constant-propagation lattice; long, float, double and
// reference are not.
func CanHoldInt(t Type) bool {
	switch t {
	case TByte, TShort, TInt, TChar, TBoolean:
		return true
	default:
		return false
	}
}

// Var is a typed local variable, parameter, or "this" reference. Vars are compared by
// pointer identity: two Vars with the same name in different methods are distinct, and the
// IR builder is responsible for handing out one *Var per declaration.
type Var struct {
	Name  string
	Type  Type
	Index int // dense arena index, unique within the owning method's IR
}

// NewVar allocates a Var. index should be assigned by the owning IR so that dense, per-method
// arrays can be indexed directly by Var.Index (spec 9, "arena-indexed graphs").
func NewVar(name string, t Type, index int) *Var {
	return &Var{Name: name, Type: t, Index: index}
}

func (v *Var) String() string { return v.Name }

// GetType returns the Var's primitive type tag (spec 3).
func (v *Var) GetType() Type { return v.Type }

func (v *Var) isRValue() {}
func (v *Var) isLValue() {}
