package irgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/ir"
	"github.com/go-tacc/tacc/pkg/sem"
)

func emptyProgram() *ast.Program { return &ast.Program{} }

func TestTranslateExtDefEmptyIsNoop(t *testing.T) {
	prog := &ast.Program{ExtDefs: []ast.ExtDef{ast.ExtDefEmpty{Line: 1}}}
	result, err := Translate(prog, nil)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(result.Instructions) != 0 {
		t.Errorf("expected no instructions from a bare Specifier SEMI, got %d", len(result.Instructions))
	}
}

func TestTranslateRejectsGlobalVar(t *testing.T) {
	prog := &ast.Program{ExtDefs: []ast.ExtDef{ast.ExtDefGlobalVar{Line: 3}}}
	_, err := Translate(prog, nil)
	if err == nil {
		t.Fatal("expected a fatal error for a global variable declaration")
	}
	if !strings.Contains(err.Error(), "global") {
		t.Errorf("error %q should mention global variables", err)
	}
}

func TestTranslateRejectsPrototype(t *testing.T) {
	prog := &ast.Program{ExtDefs: []ast.ExtDef{ast.ExtDefProto{Line: 5}}}
	_, err := Translate(prog, nil)
	if err == nil {
		t.Fatal("expected a fatal error for a prototype without a body")
	}
}

func TestTranslateRejectsFloat(t *testing.T) {
	mainSym := &sem.Symbol{Name: "main", Type: sem.Func{Return: sem.Meta{}}}
	prog := &ast.Program{ExtDefs: []ast.ExtDef{
		ast.ExtDefFunc{Fun: &ast.FunDec{
			Sym:  mainSym,
			Body: &ast.StmtBlock{Stmts: []ast.Stmt{ast.StmtReturn{Exp: ast.ExpFloat{Line: 7}}}},
		}},
	}}
	_, err := Translate(prog, nil)
	if err == nil {
		t.Fatal("expected a fatal error for a float literal")
	}
}

func TestTranslateRejectsStructAssignment(t *testing.T) {
	structType := sem.Struct{Name: "pt", Members: []*sem.Symbol{
		{Name: "x", Type: sem.Meta{}}, {Name: "y", Type: sem.Meta{}},
	}}
	aSym := &sem.Symbol{Name: "a", Type: structType}
	bSym := &sem.Symbol{Name: "b", Type: structType}
	mainSym := &sem.Symbol{Name: "main", Type: sem.Func{Return: sem.Meta{}}}

	prog := &ast.Program{ExtDefs: []ast.ExtDef{
		ast.ExtDefFunc{Fun: &ast.FunDec{
			Sym: mainSym,
			Body: &ast.StmtBlock{
				Decs: []*ast.VarDec{{Sym: aSym}, {Sym: bSym}},
				Stmts: []ast.Stmt{ast.StmtExpr{Exp: ast.ExpAssign{
					Left: ast.ExpId{Sym: aSym}, Right: ast.ExpId{Sym: bSym}, Typ: structType,
				}}},
			},
		}},
	}}

	_, err := Translate(prog, nil)
	if err == nil {
		t.Fatal("expected a fatal error for structure-valued assignment")
	}
}

func TestTranslateReadWriteIntrinsics(t *testing.T) {
	aSym := &sem.Symbol{Name: "a", Type: sem.Meta{}}
	mainSym := &sem.Symbol{Name: "main", Type: sem.Func{Return: sem.Meta{}}}
	readSym := &sem.Symbol{Name: "read", Type: sem.Func{Return: sem.Meta{}}}
	writeSym := &sem.Symbol{Name: "write", Type: sem.Func{Args: []*sem.Symbol{{Type: sem.Meta{}}}, Return: sem.Meta{}}}

	prog := &ast.Program{ExtDefs: []ast.ExtDef{
		ast.ExtDefFunc{Fun: &ast.FunDec{
			Sym: mainSym,
			Body: &ast.StmtBlock{
				Decs: []*ast.VarDec{{Sym: aSym, Init: ast.ExpCall{Func: readSym}}},
				Stmts: []ast.Stmt{
					ast.StmtExpr{Exp: ast.ExpCall{Func: writeSym, Args: []ast.Expr{ast.ExpId{Sym: aSym}}}},
					ast.StmtReturn{Exp: ast.ExpInt{Value: 0}},
				},
			},
		}},
	}}

	result, err := Translate(prog, nil)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	var buf bytes.Buffer
	ir.Print(&buf, result)
	out := buf.String()
	if !strings.Contains(out, "READ ") {
		t.Errorf("expected a READ instruction, got:\n%s", out)
	}
	if !strings.Contains(out, "WRITE ") {
		t.Errorf("expected a WRITE instruction, got:\n%s", out)
	}
}

func TestSessionRejectsSecondPrepare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected prepare() to panic on reuse")
		}
	}()
	s := newSession(nil)
	s.prepare()
	s.prepare()
}

func TestEmitterAssignRejectsNonAssignable(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for a non-assignable destination")
		}
		if _, ok := r.(*FatalError); !ok {
			t.Fatalf("expected a *FatalError panic, got %T", r)
		}
	}()
	e := &Emitter{}
	v := e.NewVar()
	e.EmitAssign(ir.Const(1), ir.VarOf(v))
}

func TestEmitterDecRejectsNonVariable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a Dec whose operand is not a variable")
		}
	}()
	e := &Emitter{}
	e.EmitDec(ir.Const(4), 4)
}

func TestFunDecMarksAggregateParamsIsRef(t *testing.T) {
	arrType := sem.Array{Elem: sem.Meta{}, Rank: 1, Lens: []int{4}}
	pSym := &sem.Symbol{Name: "p", Type: arrType}
	fSym := &sem.Symbol{Name: "f", Type: sem.Func{Args: []*sem.Symbol{pSym}, Return: sem.Meta{}}}

	prog := &ast.Program{ExtDefs: []ast.ExtDef{
		ast.ExtDefFunc{Fun: &ast.FunDec{
			Sym:    fSym,
			Params: []*sem.Symbol{pSym},
			Body:   &ast.StmtBlock{Stmts: []ast.Stmt{ast.StmtReturn{Exp: ast.ExpInt{Value: 0}}}},
		}},
	}}

	if _, err := Translate(prog, nil); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	v, ok := pSym.IR.(*ir.Var)
	if !ok {
		t.Fatalf("param symbol IR binding is %T, want *ir.Var", pSym.IR)
	}
	if !v.IsRef {
		t.Error("aggregate-typed parameter should have IsRef set")
	}
}

func TestEmptyProgramTranslates(t *testing.T) {
	result, err := Translate(emptyProgram(), nil)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(result.Instructions) != 0 {
		t.Errorf("expected no instructions, got %d", len(result.Instructions))
	}
}
