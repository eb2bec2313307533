// Package irgen implements the lowering pass: it walks a decorated
// pkg/ast tree and produces a pkg/ir program, threading an explicit
// Session instead of reaching for package-level state.
package irgen

import (
	"log/slog"

	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/ir"
	"github.com/go-tacc/tacc/pkg/sem"
)

// Translate lowers prog into an IR program. A FatalError raised anywhere
// during translation — a rejected construct or a violated invariant — is
// recovered here and returned as a plain error; anything else propagates.
func Translate(prog *ast.Program, log *slog.Logger) (result *ir.Program, err error) {
	s := newSession(log)
	s.prepare()

	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			err = fe
		}
	}()

	s.translateProgram(prog)
	result = s.program()
	return result, err
}

func (s *Session) translateProgram(prog *ast.Program) {
	s.logf(0, "Program")
	for _, def := range prog.ExtDefs {
		s.translateExtDef(def)
	}
}

func (s *Session) translateExtDef(def ast.ExtDef) {
	s.logf(def.ExtDefLine(), "ExtDef")
	switch d := def.(type) {
	case ast.ExtDefFunc:
		s.translateFunDec(d.Fun)
		s.translateBlock(d.Fun.Body)
	case ast.ExtDefGlobalVar:
		fatalf(d.Line, "global variables are not supported")
	case ast.ExtDefProto:
		fatalf(d.Line, "function prototypes without a body are not supported")
	case ast.ExtDefEmpty:
		// Specifier SEMI with nothing attached: a no-op, same as the
		// source compiler's unmatched switch case.
	default:
		internalf("unhandled ExtDef kind %T", def)
	}
}

func isAggregate(t sem.Type) bool {
	switch t.(type) {
	case sem.Array, sem.Struct:
		return true
	}
	return false
}

func (s *Session) translateFunDec(fn *ast.FunDec) {
	s.logf(fn.Line, "FunDec")
	label := s.em.NewNamedLabel(fn.Sym.Name)
	fn.Sym.IR = label
	s.em.EmitFunc(label)

	for _, param := range fn.Params {
		v := s.em.NewVar()
		if isAggregate(param.Type) {
			v.IsRef = true
		}
		param.IR = v
		s.em.EmitParam(ir.VarOf(v))
	}
}

// translateBlock lowers a CompSt: the local declarations followed by the
// statement list.
func (s *Session) translateBlock(block *ast.StmtBlock) {
	s.logf(block.Line, "CompSt")
	for _, dec := range block.Decs {
		s.translateDec(dec)
	}
	for _, st := range block.Stmts {
		s.translateStmt(st)
	}
}

// translateVarDec allocates storage for a local declaration's symbol,
// mirroring ir.c's translate_VarDec switch on the symbol's type class.
func (s *Session) translateVarDec(dec *ast.VarDec) *ir.Var {
	s.logf(dec.Line, "VarDec")
	sym := dec.Sym
	v := s.em.NewVar()

	switch tp := sym.Type.(type) {
	case sem.Meta:
		sym.IR = v
	case sem.Array:
		s.allocAggregate(v, tp)
		sym.IR = v
	case sem.Struct:
		s.allocAggregate(v, tp)
		sym.IR = v
	default:
		fatalf(dec.Line, "unexpected declaration type %s", sym.Type)
	}
	return v
}

// allocAggregate reserves backing storage for a struct/array-typed
// variable and makes v an address to it: DEC a fresh temp of the type's
// size, assign v := &temp, and mark v.IsRef.
func (s *Session) allocAggregate(v *ir.Var, tp sem.Type) {
	sz := sem.Sizeof(tp)
	tmp := s.em.NewVar()
	s.em.EmitDec(ir.VarOf(tmp), sz)
	s.em.EmitAssign(ir.VarOf(v), ir.Ref(tmp))
	v.IsRef = true
}

// translateDec lowers a local Dec: VarDec, optionally followed by an
// initializer assignment.
func (s *Session) translateDec(dec *ast.VarDec) {
	s.logf(dec.Line, "Dec")
	v := s.translateVarDec(dec)
	if dec.Init == nil {
		return
	}
	temp := s.em.NewVar()
	s.translateExpr(dec.Init, temp)
	s.em.EmitAssign(ir.VarOf(v), ir.Rval(temp))
}
