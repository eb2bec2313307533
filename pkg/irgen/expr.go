package irgen

import (
	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/ir"
	"github.com/go-tacc/tacc/pkg/sem"
)

// translateExpr lowers e into target, bottom-up: target always ends up
// holding this expression's value (or, for an aggregate-typed expression,
// its address with target.IsRef set). This mirrors ir.c's translate_Exp
// dispatch on syntax_tree shape, here dispatched on the decorated node's
// Go type instead.
func (s *Session) translateExpr(e ast.Expr, target *ir.Var) {
	s.logf(e.ExprLine(), "Exp")
	switch expr := e.(type) {
	case ast.ExpInt:
		s.em.EmitAssign(ir.VarOf(target), ir.Const(expr.Value))

	case ast.ExpFloat:
		fatalf(expr.Line, "floating-point values are not supported")

	case ast.ExpId:
		s.translateID(expr, target)

	case ast.ExpUnary:
		s.translateUnary(expr, target)

	case ast.ExpArith:
		s.translateArith(expr, target)

	case ast.ExpLogic:
		s.translateBoolValue(expr, target)

	case ast.ExpRelop:
		s.translateBoolValue(expr, target)

	case ast.ExpParen:
		s.translateExpr(expr.Inner, target)

	case ast.ExpAssign:
		s.translateAssign(expr, target)

	case ast.ExpCall:
		s.translateCall(expr, target)

	case ast.ExpIndex:
		s.translateIndex(expr, target)

	case ast.ExpMember:
		s.translateMember(expr, target)

	default:
		internalf("unhandled expression kind %T", e)
	}
}

func (s *Session) translateID(expr ast.ExpId, target *ir.Var) {
	v, ok := expr.Sym.IR.(*ir.Var)
	if !ok || v == nil {
		fatalf(expr.Line, "identifier %q has no bound storage", expr.Sym.Name)
	}
	s.em.EmitAssign(ir.VarOf(target), ir.VarOf(v))
	target.IsRef = v.IsRef
}

func (s *Session) translateUnary(expr ast.ExpUnary, target *ir.Var) {
	switch expr.Op {
	case ast.OpNeg:
		v := s.em.NewVar()
		s.translateExpr(expr.Arg, v)
		s.em.EmitSub(ir.VarOf(target), ir.Const(0), ir.Rval(v))
	case ast.OpNot:
		s.translateBoolValue(expr, target)
	default:
		internalf("unhandled unary operator %d", expr.Op)
	}
}

func (s *Session) translateArith(expr ast.ExpArith, target *ir.Var) {
	t1 := s.em.NewVar()
	t2 := s.em.NewVar()
	s.translateExpr(expr.Left, t1)
	s.translateExpr(expr.Right, t2)
	a, b := ir.Rval(t1), ir.Rval(t2)

	switch expr.Op {
	case ast.OpAdd:
		s.em.EmitAdd(ir.VarOf(target), a, b)
	case ast.OpSub:
		s.em.EmitSub(ir.VarOf(target), a, b)
	case ast.OpMul:
		s.em.EmitMul(ir.VarOf(target), a, b)
	case ast.OpDiv:
		s.em.EmitDiv(ir.VarOf(target), a, b)
	default:
		internalf("unhandled arithmetic operator %d", expr.Op)
	}
}

// translateBoolValue lowers a boolean-yielding expression (NOT, AND, OR,
// RELOP) into a scalar 0/1 target: assign false, evaluate the condition
// for its jumps, overwrite with true between the label pair it threads.
// The two label-bracketed assigns are a distinct shape from the
// short-circuit jumps translateCond emits on its own — they are never
// collapsed into one.
func (s *Session) translateBoolValue(e ast.Expr, target *ir.Var) {
	t := s.em.NewLabel()
	f := s.em.NewLabel()
	s.em.EmitAssign(ir.VarOf(target), ir.Const(0))
	s.translateCond(e, t, f)
	s.em.EmitLabel(t)
	s.em.EmitAssign(ir.VarOf(target), ir.Const(1))
	s.em.EmitLabel(f)
}

// translateMember lowers Exp DOT ID: the base must already denote an
// address (a struct variable or another member/index chain), and the
// result is that address plus the field's byte offset.
func (s *Session) translateMember(expr ast.ExpMember, target *ir.Var) {
	offset := s.em.NewVar()
	s.translateExpr(expr.Base, offset)
	assertEq(offset.IsRef, expr.Line, "member access base is not addressable")

	baseType, ok := expr.Base.ExprType().(sem.Struct)
	if !ok {
		fatalf(expr.Line, "member access on non-struct type %s", expr.Base.ExprType())
	}
	off := sem.MemberOffset(baseType, expr.Field)

	t1 := s.em.NewVar()
	s.em.EmitAdd(ir.VarOf(t1), ir.VarOf(offset), ir.Const(int32(off)))
	s.em.EmitAssign(ir.VarOf(target), ir.VarOf(t1))
	target.IsRef = true
}

// translateIndex lowers Exp LB Exp RB: the base must denote an address,
// the index is scaled by the element size and added to it.
func (s *Session) translateIndex(expr ast.ExpIndex, target *ir.Var) {
	offset := s.em.NewVar()
	s.translateExpr(expr.Base, offset)
	assertEq(offset.IsRef, expr.Line, "index base is not addressable")

	sz := sem.Sizeof(expr.Typ)
	index := s.em.NewVar()
	s.translateExpr(expr.Index, index)

	t1 := s.em.NewVar()
	t2 := s.em.NewVar()
	s.em.EmitMul(ir.VarOf(t1), ir.Rval(index), ir.Const(int32(sz)))
	s.em.EmitAdd(ir.VarOf(t2), ir.VarOf(offset), ir.VarOf(t1))
	s.em.EmitAssign(ir.VarOf(target), ir.VarOf(t2))
	target.IsRef = true
}

// genArrCopy emits a 4-byte-word copy loop from *ro to *lo, sz bytes long,
// for aggregate assignment (array-to-array; struct-to-struct stays a
// fatal error per the Non-goal — this helper is never called with a
// struct operand).
func (s *Session) genArrCopy(lo, ro *ir.Var, sz int) {
	lt := s.em.NewVar()
	rt := s.em.NewVar()
	for i := 0; i < sz; i += 4 {
		s.em.EmitAdd(ir.VarOf(lt), ir.VarOf(lo), ir.Const(int32(i)))
		s.em.EmitAdd(ir.VarOf(rt), ir.VarOf(ro), ir.Const(int32(i)))
		s.em.EmitAssign(ir.Deref(lt), ir.Deref(rt))
	}
}

// translateAssign lowers one of the three supported assignment forms:
// ID = Exp, E[index] = Exp, E.member = Exp. In every form the assignment
// expression's own value is the assigned value (or, for the ID form, the
// variable's own identity — matching ir.c's literal op_var(var) rather
// than op_rval(var) there).
func (s *Session) translateAssign(expr ast.ExpAssign, target *ir.Var) {
	switch left := expr.Left.(type) {
	case ast.ExpId:
		s.translateAssignID(expr, left, target)
	case ast.ExpIndex:
		s.translateAssignIndex(expr, left, target)
	case ast.ExpMember:
		s.translateAssignMember(expr, left, target)
	default:
		fatalf(expr.Line, "unsupported assignment target %T", expr.Left)
	}
}

func (s *Session) translateAssignID(expr ast.ExpAssign, left ast.ExpId, target *ir.Var) {
	v, ok := left.Sym.IR.(*ir.Var)
	if !ok || v == nil {
		fatalf(left.Line, "identifier %q has no bound storage", left.Sym.Name)
	}
	temp := s.em.NewVar()
	s.translateExpr(expr.Right, temp)

	switch leftType := left.ExprType().(type) {
	case sem.Meta:
		s.em.EmitAssign(ir.VarOf(v), ir.Rval(temp))
		s.em.EmitAssign(ir.VarOf(target), ir.VarOf(v))
	case sem.Struct:
		fatalf(expr.Line, "structure-valued assignment is not supported")
	case sem.Array:
		assertEq(v.IsRef, expr.Line, "array assignment target is not addressable")
		assertEq(temp.IsRef, expr.Line, "array assignment source is not addressable")
		sz := min(sem.Sizeof(leftType), sem.Sizeof(expr.Right.ExprType()))
		s.genArrCopy(v, temp, sz)
		s.em.EmitAssign(ir.VarOf(target), ir.VarOf(temp))
		target.IsRef = true
	default:
		fatalf(expr.Line, "unexpected assignment type %s", left.ExprType())
	}
}

func (s *Session) translateAssignIndex(expr ast.ExpAssign, left ast.ExpIndex, target *ir.Var) {
	offset := s.em.NewVar()
	s.translateExpr(left, offset)
	assertEq(offset.IsRef, expr.Line, "index assignment target is not addressable")

	value := s.em.NewVar()
	s.translateExpr(expr.Right, value)

	switch leftType := left.ExprType().(type) {
	case sem.Meta:
		s.em.EmitAssign(ir.Deref(offset), ir.Rval(value))
		s.em.EmitAssign(ir.VarOf(target), ir.Rval(value))
	case sem.Struct:
		fatalf(expr.Line, "structure-valued assignment is not supported")
	case sem.Array:
		assertEq(value.IsRef, expr.Line, "array assignment source is not addressable")
		sz := min(sem.Sizeof(leftType), sem.Sizeof(expr.Right.ExprType()))
		s.genArrCopy(offset, value, sz)
		s.em.EmitAssign(ir.VarOf(target), ir.VarOf(value))
		target.IsRef = true
	default:
		fatalf(expr.Line, "unexpected assignment type %s", left.ExprType())
	}
}

func (s *Session) translateAssignMember(expr ast.ExpAssign, left ast.ExpMember, target *ir.Var) {
	offset := s.em.NewVar()
	s.translateExpr(left, offset)
	assertEq(offset.IsRef, expr.Line, "member assignment target is not addressable")

	value := s.em.NewVar()
	s.translateExpr(expr.Right, value)

	switch left.ExprType().(type) {
	case sem.Meta:
		s.em.EmitAssign(ir.Deref(offset), ir.Rval(value))
		s.em.EmitAssign(ir.VarOf(target), ir.Rval(value))
	case sem.Struct, sem.Array:
		fatalf(expr.Line, "aggregate-valued member assignment is not supported")
	default:
		fatalf(expr.Line, "unexpected assignment type %s", left.ExprType())
	}
}

// translateCall lowers a call expression: the read/write intrinsics, or
// an ordinary function call whose actual arguments are evaluated left to
// right but emitted as Arg instructions in reverse — rightmost argument
// first — per the calling convention; aggregate-typed arguments pass
// their address, everything else passes its value.
func (s *Session) translateCall(expr ast.ExpCall, target *ir.Var) {
	switch expr.Func.Name {
	case "read":
		if len(expr.Args) != 0 {
			fatalf(expr.Line, "read takes no arguments")
		}
		s.em.EmitRead(ir.VarOf(target))
		return
	case "write":
		if len(expr.Args) != 1 {
			fatalf(expr.Line, "write takes exactly one argument")
		}
		p := s.em.NewVar()
		s.translateExpr(expr.Args[0], p)
		s.em.EmitWrite(ir.Rval(p))
		s.em.EmitAssign(ir.VarOf(target), ir.Const(0))
		return
	}

	fnType, ok := expr.Func.Type.(sem.Func)
	if !ok {
		fatalf(expr.Line, "%q is not callable", expr.Func.Name)
	}
	if len(expr.Args) != len(fnType.Args) {
		fatalf(expr.Line, "%q expects %d arguments, got %d", expr.Func.Name, len(fnType.Args), len(expr.Args))
	}

	actuals := make([]*ir.Var, len(expr.Args))
	for i, a := range expr.Args {
		v := s.em.NewVar()
		s.translateExpr(a, v)
		actuals[i] = v
	}

	for i := len(actuals) - 1; i >= 0; i-- {
		formal := fnType.Args[i]
		p := actuals[i]
		if isAggregate(formal.Type) {
			assertEq(p.IsRef, expr.Line, "aggregate argument is not addressable")
			s.em.EmitArg(ir.VarOf(p))
		} else {
			s.em.EmitArg(ir.Rval(p))
		}
	}

	label, ok := expr.Func.IR.(*ir.Label)
	if !ok || label == nil {
		fatalf(expr.Line, "%q has no bound function label", expr.Func.Name)
	}
	s.em.EmitCall(ir.VarOf(target), label)
}
