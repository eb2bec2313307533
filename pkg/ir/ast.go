// Package ir defines the linear three-address IR the lowering pass
// produces: a flat, goto-threaded instruction stream with no block
// structure, mirroring the teacher repo's pkg/linear but specialized to
// this source language's four-case type system and isref-tracked operands
// instead of CompCert's register/stack-slot locations.
package ir

import "fmt"

// Var is a uniquely named temporary allocated in allocation order.
// IsRef is true iff the variable holds the address of an aggregate (array
// or struct) rather than a scalar value.
type Var struct {
	ID    int
	Name  string // printable form "t<ID>"
	IsRef bool
}

func (v *Var) String() string { return v.Name }

// Label is a named jump target: either a named label carrying a source
// function's identifier verbatim, or an anonymous "l<n>" label.
type Label struct {
	Name string
}

func (l *Label) String() string { return l.Name }

// Operand is a tagged four-shape operand: Var, Const, Ref, or Deref.
type Operand interface {
	implOperand()
	// Assignable reports whether this operand may appear as the
	// destination of an Assign instruction (Var or Deref only).
	Assignable() bool
	String() string
}

// VarOperand reads or writes variable V directly.
type VarOperand struct{ V *Var }

// ConstOperand is a signed 32-bit immediate.
type ConstOperand struct{ Value int32 }

// RefOperand is the address of variable V; valid only where V backs
// storage reserved by a Dec in the same function.
type RefOperand struct{ V *Var }

// DerefOperand is the value stored at the address held in V.
type DerefOperand struct{ V *Var }

func (VarOperand) implOperand()   {}
func (ConstOperand) implOperand() {}
func (RefOperand) implOperand()   {}
func (DerefOperand) implOperand() {}

func (VarOperand) Assignable() bool   { return true }
func (ConstOperand) Assignable() bool { return false }
func (RefOperand) Assignable() bool   { return false }
func (DerefOperand) Assignable() bool { return true }

func (o VarOperand) String() string   { return o.V.Name }
func (o ConstOperand) String() string { return fmt.Sprintf("#%d", o.Value) }
func (o RefOperand) String() string   { return "&" + o.V.Name }
func (o DerefOperand) String() string { return "*" + o.V.Name }

// VarOf builds a VarOperand for v.
func VarOf(v *Var) Operand { return VarOperand{V: v} }

// Const builds a ConstOperand holding k.
func Const(k int32) Operand { return ConstOperand{Value: k} }

// Ref builds a RefOperand for v.
func Ref(v *Var) Operand { return RefOperand{V: v} }

// Deref builds a DerefOperand for v.
func Deref(v *Var) Operand { return DerefOperand{V: v} }

// Rval denotes the scalar value referred to by v: Deref(v) when v.IsRef is
// set, otherwise Var(v). Callers only invoke Rval where the surrounding
// translation rule has already established that v is scalar-typed (an
// arithmetic operand, a return value, a scalar argument, a branch
// comparand) — IsRef is never set on a variable representing the address
// of a sub-aggregate in those positions, so the flag alone is sufficient.
// IsRef is set by aggregate local declarations and parameters, copied by
// identifier loads, and set by array assignment and by the member/index-
// addressing rules, whose result may still denote an aggregate.
func Rval(v *Var) Operand {
	if v.IsRef {
		return Deref(v)
	}
	return VarOf(v)
}

// Relop is a relational operator, printed per the table in the output
// format: L S LE SE E NE map to > < >= <= == !=.
type Relop int

const (
	RelL Relop = iota
	RelS
	RelLE
	RelSE
	RelE
	RelNE
)

func (r Relop) String() string {
	switch r {
	case RelL:
		return ">"
	case RelS:
		return "<"
	case RelLE:
		return ">="
	case RelSE:
		return "<="
	case RelE:
		return "=="
	case RelNE:
		return "!="
	}
	return "?"
}

// Instruction is a tagged instruction variant; payloads are statically
// shaped per kind as described in the canonical text form table.
type Instruction interface {
	implInstruction()
}

// LabelInstr marks a jump target; it is a no-op during execution.
type LabelInstr struct{ L *Label }

// FuncInstr marks the start of a function; a no-op during execution.
type FuncInstr struct{ L *Label }

// Assign is l := r.
type Assign struct{ L, R Operand }

// BinOpKind distinguishes the four arithmetic instruction kinds.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
)

func (k BinOpKind) symbol() string {
	switch k {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// BinOp is target := a <op> b for op in {+, -, *, /}. Target must be a
// VarOperand.
type BinOp struct {
	Kind   BinOpKind
	Target Operand
	A, B   Operand
}

// Goto is an unconditional jump to L.
type Goto struct{ L *Label }

// Branch is IF a <relop> b GOTO L.
type Branch struct {
	Op   Relop
	A, B Operand
	L    *Label
}

// Return is RETURN v.
type Return struct{ V Operand }

// Dec reserves N bytes of storage for V, which must be a VarOperand.
type Dec struct {
	V Operand
	N int
}

// Arg pushes an actual argument in call order.
type Arg struct{ V Operand }

// Call is target := CALL L; target must be a VarOperand.
type Call struct {
	Target Operand
	L      *Label
}

// Param declares a formal parameter; V must be a VarOperand.
type Param struct{ V Operand }

// Read is READ v; v must be a VarOperand.
type Read struct{ V Operand }

// Write is WRITE v.
type Write struct{ V Operand }

func (LabelInstr) implInstruction() {}
func (FuncInstr) implInstruction()  {}
func (Assign) implInstruction()     {}
func (BinOp) implInstruction()      {}
func (Goto) implInstruction()       {}
func (Branch) implInstruction()     {}
func (Return) implInstruction()     {}
func (Dec) implInstruction()        {}
func (Arg) implInstruction()        {}
func (Call) implInstruction()       {}
func (Param) implInstruction()      {}
func (Read) implInstruction()       {}
func (Write) implInstruction()      {}

// Program is the flat output of translation: the instruction stream in
// execution order, plus the variable table and count.
type Program struct {
	Instructions []Instruction
	Vars         []*Var
	VarCount     int
}
