// Fixture decoding: since this module stops short of a front end (no
// lexer/parser/checker — see SPEC_FULL.md's Non-goals), the CLI's input
// format is a YAML rendering of an already-decorated syntax tree, in the
// same flat Kind-discriminated shape pkg/parser's test fixtures use for
// cabs.Node. Build resolves the textual type and symbol references in that
// rendering into the sem.Type/*sem.Symbol values irgen.Translate expects.
package main

import (
	"fmt"
	"os"

	"github.com/go-tacc/tacc/pkg/ast"
	"github.com/go-tacc/tacc/pkg/sem"
	"gopkg.in/yaml.v3"
)

// TypeSpec names a type: kind "int" (or empty), kind "array" with an element
// type and one length per dimension, or kind "struct" naming an entry of the
// fixture's top-level structs list.
type TypeSpec struct {
	Kind    string      `yaml:"kind"`              // int | array | struct
	Elem    *TypeSpec   `yaml:"elem,omitempty"`    // array element type
	Lens    []int       `yaml:"lens,omitempty"`    // array dimension lengths
	Struct  string      `yaml:"struct,omitempty"`  // struct type name
}

// MemberSpec is one field of a struct type declaration.
type MemberSpec struct {
	Name string   `yaml:"name"`
	Type TypeSpec `yaml:"type"`
	Line int      `yaml:"line,omitempty"`
}

// StructSpec declares a named struct type, referenced elsewhere by name.
type StructSpec struct {
	Name    string       `yaml:"name"`
	Members []MemberSpec `yaml:"members"`
}

// ExprSpec is a decorated expression node.
type ExprSpec struct {
	Kind  string    `yaml:"kind"`
	Value int32     `yaml:"value,omitempty"`
	Name  string    `yaml:"name,omitempty"` // ExpId / ExpCall callee / ExpMember field
	Op    string    `yaml:"op,omitempty"`
	Left  *ExprSpec `yaml:"left,omitempty"`
	Right *ExprSpec `yaml:"right,omitempty"`
	Arg   *ExprSpec `yaml:"arg,omitempty"`
	Inner *ExprSpec `yaml:"inner,omitempty"`
	Base  *ExprSpec `yaml:"base,omitempty"`
	Index *ExprSpec `yaml:"index,omitempty"`
	Args  []ExprSpec `yaml:"args,omitempty"`
	Type  *TypeSpec `yaml:"type,omitempty"`
	Line  int       `yaml:"line,omitempty"`
}

// DecSpec is a local variable declaration, with an optional initializer.
type DecSpec struct {
	Name string    `yaml:"name"`
	Type TypeSpec  `yaml:"type"`
	Init *ExprSpec `yaml:"init,omitempty"`
	Line int       `yaml:"line,omitempty"`
}

// StmtSpec is a decorated statement node.
type StmtSpec struct {
	Kind string    `yaml:"kind"`
	Exp  *ExprSpec `yaml:"exp,omitempty"`
	Cond *ExprSpec `yaml:"cond,omitempty"`
	Then *StmtSpec `yaml:"then,omitempty"`
	Else *StmtSpec `yaml:"else,omitempty"`
	Body *StmtSpec `yaml:"body,omitempty"`
	Decs []DecSpec `yaml:"decs,omitempty"`
	Stmts []StmtSpec `yaml:"stmts,omitempty"`
	Line int       `yaml:"line,omitempty"`
}

// ParamSpec is one formal parameter of a function definition.
type ParamSpec struct {
	Name string   `yaml:"name"`
	Type TypeSpec `yaml:"type"`
	Line int      `yaml:"line,omitempty"`
}

// ExtDefSpec is a top-level definition.
type ExtDefSpec struct {
	Kind   string      `yaml:"kind"` // func | globalvar | proto | empty
	Name   string      `yaml:"name,omitempty"`
	Return *TypeSpec   `yaml:"return,omitempty"`
	Params []ParamSpec `yaml:"params,omitempty"`
	Body   *StmtSpec   `yaml:"body,omitempty"`
	Line   int         `yaml:"line,omitempty"`
}

// Fixture is the root of a decoded input file.
type Fixture struct {
	Structs []StructSpec `yaml:"structs,omitempty"`
	ExtDefs []ExtDefSpec `yaml:"program"`
}

// LoadFixture reads and decodes a fixture file from path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &fx, nil
}

// builder threads the struct-type registry and a chain of lexical scopes
// while turning a Fixture into a decorated ast.Program.
type builder struct {
	structs map[string]sem.Struct
}

// Build converts fx into a decorated ast.Program, resolving every named
// type and identifier reference against a fresh global scope.
func (fx *Fixture) Build() (*ast.Program, error) {
	b := &builder{structs: make(map[string]sem.Struct)}

	for _, ss := range fx.Structs {
		st := sem.Struct{Name: ss.Name}
		for _, m := range ss.Members {
			mt, err := b.resolveType(m.Type)
			if err != nil {
				return nil, fmt.Errorf("struct %s member %s: %w", ss.Name, m.Name, err)
			}
			st.Members = append(st.Members, &sem.Symbol{Name: m.Name, Type: mt, Line: m.Line})
		}
		b.structs[ss.Name] = st
	}

	global := sem.NewSymbolTable(nil)
	prog := &ast.Program{}
	for _, ed := range fx.ExtDefs {
		def, err := b.buildExtDef(global, ed)
		if err != nil {
			return nil, err
		}
		prog.ExtDefs = append(prog.ExtDefs, def)
	}
	return prog, nil
}

func (b *builder) resolveType(t TypeSpec) (sem.Type, error) {
	switch t.Kind {
	case "", "int":
		return sem.Meta{}, nil
	case "array":
		if t.Elem == nil || len(t.Lens) == 0 {
			return nil, fmt.Errorf("array type missing elem/lens")
		}
		elem, err := b.resolveType(*t.Elem)
		if err != nil {
			return nil, err
		}
		return sem.Array{Elem: elem, Rank: len(t.Lens), Lens: t.Lens}, nil
	case "struct":
		st, ok := b.structs[t.Struct]
		if !ok {
			return nil, fmt.Errorf("unknown struct type %q", t.Struct)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", t.Kind)
	}
}

func (b *builder) buildExtDef(scope *sem.SymbolTable, ed ExtDefSpec) (ast.ExtDef, error) {
	switch ed.Kind {
	case "globalvar":
		return ast.ExtDefGlobalVar{Line: ed.Line}, nil
	case "proto":
		return ast.ExtDefProto{Line: ed.Line}, nil
	case "empty":
		return ast.ExtDefEmpty{Line: ed.Line}, nil
	case "func":
		return b.buildFunc(scope, ed)
	default:
		return nil, fmt.Errorf("unknown ExtDef kind %q", ed.Kind)
	}
}

func (b *builder) buildFunc(global *sem.SymbolTable, ed ExtDefSpec) (ast.ExtDef, error) {
	retType := sem.Type(sem.Meta{})
	if ed.Return != nil {
		rt, err := b.resolveType(*ed.Return)
		if err != nil {
			return nil, fmt.Errorf("function %s return type: %w", ed.Name, err)
		}
		retType = rt
	}

	fnScope := sem.NewSymbolTable(global)
	var params []*sem.Symbol
	fnType := sem.Func{Return: retType}
	for _, p := range ed.Params {
		pt, err := b.resolveType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s param %s: %w", ed.Name, p.Name, err)
		}
		sym := &sem.Symbol{Name: p.Name, Type: pt, Line: p.Line}
		fnScope.Add(sym)
		params = append(params, sym)
		fnType.Args = append(fnType.Args, sym)
	}

	fnSym := &sem.Symbol{Name: ed.Name, Type: fnType, Line: ed.Line}
	global.Add(fnSym)

	fun := &ast.FunDec{Sym: fnSym, Params: params, Line: ed.Line}
	if ed.Body != nil {
		body, err := b.buildStmt(fnScope, *ed.Body)
		if err != nil {
			return nil, err
		}
		block, ok := body.(*ast.StmtBlock)
		if !ok {
			return nil, fmt.Errorf("function %s body must be a block", ed.Name)
		}
		fun.Body = block
	} else {
		fun.Body = &ast.StmtBlock{Line: ed.Line}
	}
	return ast.ExtDefFunc{Fun: fun, Line: ed.Line}, nil
}

func (b *builder) buildStmt(scope *sem.SymbolTable, s StmtSpec) (ast.Stmt, error) {
	switch s.Kind {
	case "expr":
		e, err := b.buildExpr(scope, *s.Exp)
		if err != nil {
			return nil, err
		}
		return ast.StmtExpr{Exp: e, Line: s.Line}, nil

	case "block":
		inner := sem.NewSymbolTable(scope)
		blk := &ast.StmtBlock{Line: s.Line}
		for _, d := range s.Decs {
			dec, err := b.buildDec(inner, d)
			if err != nil {
				return nil, err
			}
			blk.Decs = append(blk.Decs, dec)
		}
		for _, st := range s.Stmts {
			stmt, err := b.buildStmt(inner, st)
			if err != nil {
				return nil, err
			}
			blk.Stmts = append(blk.Stmts, stmt)
		}
		return blk, nil

	case "return":
		e, err := b.buildExpr(scope, *s.Exp)
		if err != nil {
			return nil, err
		}
		return ast.StmtReturn{Exp: e, Line: s.Line}, nil

	case "if":
		cond, err := b.buildExpr(scope, *s.Cond)
		if err != nil {
			return nil, err
		}
		then, err := b.buildStmt(scope, *s.Then)
		if err != nil {
			return nil, err
		}
		stmt := ast.StmtIf{Cond: cond, Then: then, Line: s.Line}
		if s.Else != nil {
			els, err := b.buildStmt(scope, *s.Else)
			if err != nil {
				return nil, err
			}
			stmt.Else = els
		}
		return stmt, nil

	case "while":
		cond, err := b.buildExpr(scope, *s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := b.buildStmt(scope, *s.Body)
		if err != nil {
			return nil, err
		}
		return ast.StmtWhile{Cond: cond, Body: body, Line: s.Line}, nil

	default:
		return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
	}
}

func (b *builder) buildDec(scope *sem.SymbolTable, d DecSpec) (*ast.VarDec, error) {
	t, err := b.resolveType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("declaration %s: %w", d.Name, err)
	}
	sym := &sem.Symbol{Name: d.Name, Type: t, Line: d.Line}
	scope.Add(sym)

	dec := &ast.VarDec{Sym: sym, Line: d.Line}
	if d.Init != nil {
		init, err := b.buildExpr(scope, *d.Init)
		if err != nil {
			return nil, err
		}
		dec.Init = init
	}
	return dec, nil
}

var arithOps = map[string]ast.ArithOp{"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv}
var logicOps = map[string]ast.LogicOp{"&&": ast.OpAnd, "||": ast.OpOr}
var relOps = map[string]ast.RelOp{">": ast.RelL, "<": ast.RelS, ">=": ast.RelLE, "<=": ast.RelSE, "==": ast.RelE, "!=": ast.RelNE}

func (b *builder) buildExpr(scope *sem.SymbolTable, e ExprSpec) (ast.Expr, error) {
	resolveTyp := func() (sem.Type, error) {
		if e.Type == nil {
			return sem.Meta{}, nil
		}
		return b.resolveType(*e.Type)
	}

	switch e.Kind {
	case "int":
		return ast.ExpInt{Value: e.Value, Line: e.Line}, nil

	case "float":
		return ast.ExpFloat{Line: e.Line}, nil

	case "id":
		sym := scope.Find(e.Name)
		if sym == nil {
			return nil, fmt.Errorf("line %d: undeclared identifier %q", e.Line, e.Name)
		}
		return ast.ExpId{Sym: sym, Line: e.Line}, nil

	case "neg", "not":
		arg, err := b.buildExpr(scope, *e.Arg)
		if err != nil {
			return nil, err
		}
		op := ast.OpNeg
		if e.Kind == "not" {
			op = ast.OpNot
		}
		typ, err := resolveTyp()
		if err != nil {
			return nil, err
		}
		return ast.ExpUnary{Op: op, Arg: arg, Line: e.Line, Typ: typ}, nil

	case "arith":
		op, ok := arithOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown arithmetic operator %q", e.Line, e.Op)
		}
		left, right, err := b.buildPair(scope, e)
		if err != nil {
			return nil, err
		}
		typ, err := resolveTyp()
		if err != nil {
			return nil, err
		}
		return ast.ExpArith{Op: op, Left: left, Right: right, Line: e.Line, Typ: typ}, nil

	case "logic":
		op, ok := logicOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown logical operator %q", e.Line, e.Op)
		}
		left, right, err := b.buildPair(scope, e)
		if err != nil {
			return nil, err
		}
		return ast.ExpLogic{Op: op, Left: left, Right: right, Line: e.Line}, nil

	case "relop":
		op, ok := relOps[e.Op]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown relational operator %q", e.Line, e.Op)
		}
		left, right, err := b.buildPair(scope, e)
		if err != nil {
			return nil, err
		}
		return ast.ExpRelop{Op: op, Left: left, Right: right, Line: e.Line}, nil

	case "paren":
		inner, err := b.buildExpr(scope, *e.Inner)
		if err != nil {
			return nil, err
		}
		return ast.ExpParen{Inner: inner, Line: e.Line}, nil

	case "assign":
		left, right, err := b.buildPair(scope, e)
		if err != nil {
			return nil, err
		}
		typ, err := resolveTyp()
		if err != nil {
			return nil, err
		}
		if e.Type == nil {
			typ = left.ExprType()
		}
		return ast.ExpAssign{Left: left, Right: right, Line: e.Line, Typ: typ}, nil

	case "call":
		sym := scope.Find(e.Name)
		if sym == nil {
			return nil, fmt.Errorf("line %d: call to undeclared function %q", e.Line, e.Name)
		}
		var args []ast.Expr
		for i := range e.Args {
			a, err := b.buildExpr(scope, e.Args[i])
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		typ := sem.Type(sem.Meta{})
		if fn, ok := sym.Type.(sem.Func); ok {
			typ = fn.Return
		}
		return ast.ExpCall{Func: sym, Args: args, Line: e.Line, Typ: typ}, nil

	case "index":
		base, err := b.buildExpr(scope, *e.Base)
		if err != nil {
			return nil, err
		}
		idx, err := b.buildExpr(scope, *e.Index)
		if err != nil {
			return nil, err
		}
		typ := sem.ElementType(base.ExprType())
		return ast.ExpIndex{Base: base, Index: idx, Line: e.Line, Typ: typ}, nil

	case "member":
		base, err := b.buildExpr(scope, *e.Base)
		if err != nil {
			return nil, err
		}
		st, ok := base.ExprType().(sem.Struct)
		if !ok {
			return nil, fmt.Errorf("line %d: member access on non-struct type %s", e.Line, base.ExprType())
		}
		msym := sem.Member(st, e.Name)
		if msym == nil {
			return nil, fmt.Errorf("line %d: struct %s has no member %q", e.Line, st.Name, e.Name)
		}
		return ast.ExpMember{Base: base, Field: e.Name, Line: e.Line, Typ: msym.Type}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown expression kind %q", e.Line, e.Kind)
	}
}

func (b *builder) buildPair(scope *sem.SymbolTable, e ExprSpec) (ast.Expr, ast.Expr, error) {
	left, err := b.buildExpr(scope, *e.Left)
	if err != nil {
		return nil, nil, err
	}
	right, err := b.buildExpr(scope, *e.Right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
