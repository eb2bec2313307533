package irgen

import (
	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/ir"
)

// translateStmt lowers one statement, exactly the table in ir.c's
// translate_Stmt: expression statements discard their value into the
// ignore_var sentinel, RETURN copies through a second temp before
// returning it, and IF/WHILE thread labels through the condition
// translator.
func (s *Session) translateStmt(st ast.Stmt) {
	s.logf(st.StmtLine(), "Stmt")
	switch stmt := st.(type) {
	case ast.StmtExpr:
		s.translateExpr(stmt.Exp, s.ignore)

	case ast.StmtBlock:
		s.translateBlock(&stmt)

	case *ast.StmtBlock:
		s.translateBlock(stmt)

	case ast.StmtReturn:
		v1 := s.em.NewVar()
		s.translateExpr(stmt.Exp, v1)
		v2 := s.em.NewVar()
		s.em.EmitAssign(ir.VarOf(v2), ir.Rval(v1))
		s.em.EmitReturn(ir.Rval(v2))

	case ast.StmtIf:
		s.translateIf(stmt)

	case ast.StmtWhile:
		s.translateWhile(stmt)

	default:
		internalf("unhandled statement kind %T", st)
	}
}

func (s *Session) translateIf(stmt ast.StmtIf) {
	if stmt.Else == nil {
		lt := s.em.NewLabel()
		lf := s.em.NewLabel()
		s.translateCond(stmt.Cond, lt, lf)
		s.em.EmitLabel(lt)
		s.translateStmt(stmt.Then)
		s.em.EmitLabel(lf)
		return
	}

	// Labels are minted together, before any code for either branch, so
	// that label numbering matches translation order rather than
	// emission order.
	lt := s.em.NewLabel()
	lf := s.em.NewLabel()
	le := s.em.NewLabel()
	s.translateCond(stmt.Cond, lt, lf)
	s.em.EmitLabel(lt)
	s.translateStmt(stmt.Then)
	s.em.EmitGoto(le)
	s.em.EmitLabel(lf)
	s.translateStmt(stmt.Else)
	s.em.EmitLabel(le)
}

func (s *Session) translateWhile(stmt ast.StmtWhile) {
	ls := s.em.NewLabel()
	lt := s.em.NewLabel()
	lf := s.em.NewLabel()

	s.em.EmitLabel(ls)
	s.translateCond(stmt.Cond, lt, lf)
	s.em.EmitLabel(lt)
	s.translateStmt(stmt.Body)
	s.em.EmitGoto(ls)
	s.em.EmitLabel(lf)
}
