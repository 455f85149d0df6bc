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

// RValue is anything that can appear on the right of an Assign: a Var, an int literal, or a
// binary expression over two Vars. LValue is anything that can be the target of a write; in
// this IR only Var is an LValue (field/array writes are their own Stmt kinds, not expressions,
// per spec 3).
type RValue interface{ isRValue() }
type LValue interface{ isLValue() }

// IntLiteral is a constant int operand.
type IntLiteral struct{ K int32 }

func (IntLiteral) isRValue() {}

// BinOp enumerates the recognized binary operators (spec 6, "numeric semantics").
type BinOp uint8

const (
	ADD BinOp = iota
	SUB
	MUL
	DIV
	REM
	SHL
	SHR
	USHR
	AND
	OR
	XOR
	EQ
	NE
	LT
	GT
	LE
	GE
)

// IsArithmetic reports whether op is ADD/SUB/MUL/DIV/REM.
func (op BinOp) IsArithmetic() bool { return op <= REM }

// IsDivOrRem reports whether op can divide by zero.
func (op BinOp) IsDivOrRem() bool { return op == DIV || op == REM }

// BinaryExp is a binary operator applied to two Vars (spec 4.2's evaluate only ever needs to
// look up operand Vars in the current fact, never nested expressions).
type BinaryExp struct {
	Op   BinOp
	X, Y *Var
}

func (BinaryExp) isRValue() {}

// FieldRef names a field, resolved against a declaring type by an external ClassHierarchy;
// the core only needs field identity for PFG/alias bookkeeping.
type FieldRef struct {
	DeclaringType string
	Name          string
}

func (f FieldRef) String() string { return f.DeclaringType + "." + f.Name }

// CallKind distinguishes the four invocation flavours of spec 4.4/6.
type CallKind uint8

const (
	StaticCall CallKind = iota
	SpecialCall
	VirtualCall
	InterfaceCall
)

// CallSite describes one invocation statement's static shape: which kind of dispatch applies,
// the statically-declared method reference, the receiver (nil for StaticCall), the argument
// Vars, and the (optional) Var receiving the return value.
type CallSite struct {
	Kind   CallKind
	Method *MethodRef
	Recv   *Var // nil iff Kind == StaticCall
	Args   []*Var
	Lhs    *Var // nil if the call's result is discarded
}

// MethodRef is the statically declared target of a call: a declaring type name plus a
// subsignature (name + erased parameter shape), resolved against a ClassHierarchy by CHA or
// against a concrete receiver object by virtual dispatch.
type MethodRef struct {
	DeclaringType string
	Subsignature  string
}

func (m *MethodRef) String() string { return m.DeclaringType + "::" + m.Subsignature }

// EdgeKind labels a CFG out-edge (spec 3).
type EdgeKind uint8

const (
	FallThrough EdgeKind = iota
	IfTrue
	IfFalse
	SwitchCase // CaseValue is meaningful
	SwitchDefault
)

// Stmt is the closed statement algebraic data type of spec 3. Implementers should switch
// exhaustively over the concrete types below rather than relying on dynamic dispatch (spec 9).
type Stmt interface {
	// Idx is the statement's position in its method, used to order dead-code reports (spec 6)
	// and as a dense array index for per-statement analysis state.
	Idx() int
	// GetDef returns the Var defined by this statement, if any.
	GetDef() (*Var, bool)
	// GetUses returns every Var read by this statement.
	GetUses() []*Var
	stmtMarker()
}

type base struct{ index int }

func (b base) Idx() int      { return b.index }
func (base) stmtMarker()     {}
func newBase(i int) base     { return base{index: i} }

// Assign is `lhs = rhs` where rhs is an IntLiteral, a Var, or a BinaryExp — the only
// constant-propagation-relevant assignment kind (spec 4.2).
type Assign struct {
	base
	Lhs *Var
	Rhs RValue
}

func NewAssign(index int, lhs *Var, rhs RValue) *Assign { return &Assign{newBase(index), lhs, rhs} }
func (s *Assign) GetDef() (*Var, bool)                  { return s.Lhs, true }
func (s *Assign) GetUses() []*Var {
	switch rhs := s.Rhs.(type) {
	case *Var:
		return []*Var{rhs}
	case BinaryExp:
		return []*Var{rhs.X, rhs.Y}
	default:
		return nil
	}
}

// Copy is `lhs = rhs` for reference-typed variables: it contributes a PFG edge, not a
// constant-propagation transfer (spec 4.5).
type Copy struct {
	base
	Lhs, Rhs *Var
}

func NewCopy(index int, lhs, rhs *Var) *Copy { return &Copy{newBase(index), lhs, rhs} }
func (s *Copy) GetDef() (*Var, bool)         { return s.Lhs, true }
func (s *Copy) GetUses() []*Var              { return []*Var{s.Rhs} }

// New allocates a fresh heap object of Type at this statement and assigns it to Lhs.
type New struct {
	base
	Lhs  *Var
	Type string
}

func NewNew(index int, lhs *Var, typ string) *New { return &New{newBase(index), lhs, typ} }
func (s *New) GetDef() (*Var, bool)               { return s.Lhs, true }
func (s *New) GetUses() []*Var                    { return nil }

// LoadField is `lhs = base.f` (Base == nil means a static field load, `lhs = C.f`).
type LoadField struct {
	base
	Lhs   *Var
	Base  *Var
	Field FieldRef
}

func NewLoadField(index int, lhs, base_ *Var, f FieldRef) *LoadField {
	return &LoadField{newBase(index), lhs, base_, f}
}
func (s *LoadField) IsStatic() bool       { return s.Base == nil }
func (s *LoadField) GetDef() (*Var, bool) { return s.Lhs, true }
func (s *LoadField) GetUses() []*Var {
	if s.Base == nil {
		return nil
	}
	return []*Var{s.Base}
}

// StoreField is `base.f = rhs` (Base == nil means a static field store, `C.f = rhs`).
type StoreField struct {
	base
	Base  *Var
	Field FieldRef
	Rhs   *Var
}

func NewStoreField(index int, base_ *Var, f FieldRef, rhs *Var) *StoreField {
	return &StoreField{newBase(index), base_, f, rhs}
}
func (s *StoreField) IsStatic() bool       { return s.Base == nil }
func (s *StoreField) GetDef() (*Var, bool) { return nil, false }
func (s *StoreField) GetUses() []*Var {
	if s.Base == nil {
		return []*Var{s.Rhs}
	}
	return []*Var{s.Base, s.Rhs}
}

// LoadArray is `lhs = base[i]`.
type LoadArray struct {
	base
	Lhs, Base, Index *Var
}

func NewLoadArray(index int, lhs, base_, idx *Var) *LoadArray {
	return &LoadArray{newBase(index), lhs, base_, idx}
}
func (s *LoadArray) GetDef() (*Var, bool) { return s.Lhs, true }
func (s *LoadArray) GetUses() []*Var      { return []*Var{s.Base, s.Index} }

// StoreArray is `base[i] = rhs`.
type StoreArray struct {
	base
	Base, Index, Rhs *Var
}

func NewStoreArray(index int, base_, idx, rhs *Var) *StoreArray {
	return &StoreArray{newBase(index), base_, idx, rhs}
}
func (s *StoreArray) GetDef() (*Var, bool) { return nil, false }
func (s *StoreArray) GetUses() []*Var      { return []*Var{s.Base, s.Index, s.Rhs} }

// Invoke wraps a CallSite as a statement.
type Invoke struct {
	base
	Call *CallSite
}

func NewInvoke(index int, call *CallSite) *Invoke { return &Invoke{newBase(index), call} }
func (s *Invoke) GetDef() (*Var, bool) {
	if s.Call.Lhs == nil {
		return nil, false
	}
	return s.Call.Lhs, true
}
func (s *Invoke) GetUses() []*Var {
	uses := make([]*Var, 0, len(s.Call.Args)+1)
	if s.Call.Recv != nil {
		uses = append(uses, s.Call.Recv)
	}
	uses = append(uses, s.Call.Args...)
	return uses
}

// If is a conditional branch on Cond; successors are labelled IfTrue/IfFalse in the CFG.
type If struct {
	base
	Cond *Var
}

func NewIf(index int, cond *Var) *If  { return &If{newBase(index), cond} }
func (s *If) GetDef() (*Var, bool)    { return nil, false }
func (s *If) GetUses() []*Var         { return []*Var{s.Cond} }

// Switch dispatches on Var; successors are labelled SwitchCase(k)/SwitchDefault in the CFG.
type Switch struct {
	base
	Var *Var
}

func NewSwitch(index int, v *Var) *Switch { return &Switch{newBase(index), v} }
func (s *Switch) GetDef() (*Var, bool)    { return nil, false }
func (s *Switch) GetUses() []*Var         { return []*Var{s.Var} }

// Return returns zero or more Vars (a closed method may have multiple return statements, each
// naming the Var(s) whose value is returned at that point).
type Return struct {
	base
	Vars []*Var
}

func NewReturn(index int, vars ...*Var) *Return { return &Return{newBase(index), vars} }
func (s *Return) GetDef() (*Var, bool)          { return nil, false }
func (s *Return) GetUses() []*Var               { return s.Vars }

// Nop is a control-only statement (e.g. the synthetic entry/exit markers, unconditional jump
// targets) with no def and no uses.
type Nop struct{ base }

func NewNop(index int) *Nop          { return &Nop{newBase(index)} }
func (s *Nop) GetDef() (*Var, bool)  { return nil, false }
func (s *Nop) GetUses() []*Var       { return nil }
