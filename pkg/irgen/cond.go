package irgen

import (
	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/ir"
)

var astToIRRelop = map[ast.RelOp]ir.Relop{
	ast.RelL:  ir.RelL,
	ast.RelS:  ir.RelS,
	ast.RelLE: ir.RelLE,
	ast.RelSE: ir.RelSE,
	ast.RelE:  ir.RelE,
	ast.RelNE: ir.RelNE,
}

// translateCond lowers a boolean-position expression into short-circuit
// control flow: jump to trueLabel when it holds, falseLabel otherwise.
// NOT swaps the two labels and recurses; parens simply recurse; AND/OR
// fan into a shared intermediate label; RELOP compares its operands
// directly. Anything else falls through to the default rule: evaluate it
// as an ordinary value and branch on whether it's nonzero.
func (s *Session) translateCond(e ast.Expr, trueLabel, falseLabel *ir.Label) {
	switch expr := e.(type) {
	case ast.ExpUnary:
		if expr.Op == ast.OpNot {
			s.translateCond(expr.Arg, falseLabel, trueLabel)
			return
		}

	case ast.ExpParen:
		s.translateCond(expr.Inner, trueLabel, falseLabel)
		return

	case ast.ExpLogic:
		switch expr.Op {
		case ast.OpAnd:
			mid := s.em.NewLabel()
			s.translateCond(expr.Left, mid, falseLabel)
			s.em.EmitLabel(mid)
			s.translateCond(expr.Right, trueLabel, falseLabel)
			return
		case ast.OpOr:
			mid := s.em.NewLabel()
			s.translateCond(expr.Left, trueLabel, mid)
			s.em.EmitLabel(mid)
			s.translateCond(expr.Right, trueLabel, falseLabel)
			return
		}

	case ast.ExpRelop:
		v1 := s.em.NewVar()
		v2 := s.em.NewVar()
		s.translateExpr(expr.Left, v1)
		s.translateExpr(expr.Right, v2)
		op, ok := astToIRRelop[expr.Op]
		if !ok {
			internalf("unknown relational operator %d", expr.Op)
		}
		s.em.EmitBranch(op, ir.Rval(v1), ir.Rval(v2), trueLabel)
		s.em.EmitGoto(falseLabel)
		return
	}

	v1 := s.em.NewVar()
	s.translateExpr(e, v1)
	s.em.EmitBranch(ir.RelNE, ir.Rval(v1), ir.Const(0), trueLabel)
	s.em.EmitGoto(falseLabel)
}
