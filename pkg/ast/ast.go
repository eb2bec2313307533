// Package ast defines the decorated syntax tree the lowering pass consumes:
// every node already carries a resolved sem.Symbol/sem.Type where the
// source grammar calls for one. Building this tree — lexing, parsing, name
// resolution, type-checking — is the job of an external front end; this
// module only describes its shape, analogous to how pkg/clight describes
// CompCert's Clight tree without owning the parser that produces it.
package ast

import "github.com/go-tacc/tacc/pkg/sem"

// Expr is a decorated expression node.
type Expr interface {
	implExpr()
	ExprLine() int
	ExprType() sem.Type
}

// ExpInt is an integer literal.
type ExpInt struct {
	Value int32
	Line  int
}

// ExpFloat is a float literal; the lowering pass rejects it (spec Non-goal).
type ExpFloat struct {
	Line int
}

// ExpId is a reference to a resolved variable or parameter symbol.
type ExpId struct {
	Sym  *sem.Symbol
	Line int
}

// UnaryOp is the operator of an ExpUnary node.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// ExpUnary is MINUS Exp or NOT Exp.
type ExpUnary struct {
	Op   UnaryOp
	Arg  Expr
	Line int
	Typ  sem.Type
}

// ArithOp is the operator of an ExpArith node.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

// ExpArith is Exp {+,-,*,/} Exp.
type ExpArith struct {
	Op          ArithOp
	Left, Right Expr
	Line        int
	Typ         sem.Type
}

// LogicOp is the operator of an ExpLogic node.
type LogicOp int

const (
	OpAnd LogicOp = iota
	OpOr
)

// ExpLogic is Exp {AND,OR} Exp.
type ExpLogic struct {
	Op          LogicOp
	Left, Right Expr
	Line        int
	Typ         sem.Type
}

// RelOp is a relational operator, named after the source grammar's
// RELOP_L/RELOP_S/... constants.
type RelOp int

const (
	RelL  RelOp = iota // >
	RelS               // <
	RelLE              // >=
	RelSE              // <=
	RelE               // ==
	RelNE              // !=
)

// ExpRelop is Exp RELOP Exp.
type ExpRelop struct {
	Op          RelOp
	Left, Right Expr
	Line        int
	Typ         sem.Type
}

// ExpParen is LP Exp RP.
type ExpParen struct {
	Inner Expr
	Line  int
}

// ExpAssign is L = Exp, where L is one of ExpId, ExpIndex, or ExpMember.
type ExpAssign struct {
	Left, Right Expr
	Line        int
	Typ         sem.Type
}

// ExpCall is ID LP Args RP / ID LP RP, including the read/write intrinsics.
type ExpCall struct {
	Func *sem.Symbol
	Args []Expr
	Line int
	Typ  sem.Type
}

// ExpIndex is Exp LB Exp RB.
type ExpIndex struct {
	Base, Index Expr
	Line        int
	Typ         sem.Type
}

// ExpMember is Exp DOT ID.
type ExpMember struct {
	Base  Expr
	Field string
	Line  int
	Typ   sem.Type
}

func (ExpInt) implExpr()    {}
func (ExpFloat) implExpr()  {}
func (ExpId) implExpr()     {}
func (ExpUnary) implExpr()  {}
func (ExpArith) implExpr()  {}
func (ExpLogic) implExpr()  {}
func (ExpRelop) implExpr()  {}
func (ExpParen) implExpr()  {}
func (ExpAssign) implExpr() {}
func (ExpCall) implExpr()   {}
func (ExpIndex) implExpr()  {}
func (ExpMember) implExpr() {}

func (e ExpInt) ExprLine() int    { return e.Line }
func (e ExpFloat) ExprLine() int  { return e.Line }
func (e ExpId) ExprLine() int     { return e.Line }
func (e ExpUnary) ExprLine() int  { return e.Line }
func (e ExpArith) ExprLine() int  { return e.Line }
func (e ExpLogic) ExprLine() int  { return e.Line }
func (e ExpRelop) ExprLine() int  { return e.Line }
func (e ExpParen) ExprLine() int  { return e.Line }
func (e ExpAssign) ExprLine() int { return e.Line }
func (e ExpCall) ExprLine() int   { return e.Line }
func (e ExpIndex) ExprLine() int  { return e.Line }
func (e ExpMember) ExprLine() int { return e.Line }

func (ExpInt) ExprType() sem.Type   { return sem.Meta{} }
func (ExpFloat) ExprType() sem.Type { return sem.Meta{} }
func (e ExpId) ExprType() sem.Type  { return e.Sym.Type }
func (e ExpUnary) ExprType() sem.Type  { return e.Typ }
func (e ExpArith) ExprType() sem.Type  { return e.Typ }
func (ExpLogic) ExprType() sem.Type    { return sem.Meta{} }
func (ExpRelop) ExprType() sem.Type    { return sem.Meta{} }
func (e ExpParen) ExprType() sem.Type  { return e.Inner.ExprType() }
func (e ExpAssign) ExprType() sem.Type { return e.Typ }
func (e ExpCall) ExprType() sem.Type   { return e.Typ }
func (e ExpIndex) ExprType() sem.Type  { return e.Typ }
func (e ExpMember) ExprType() sem.Type { return e.Typ }

// Stmt is a decorated statement node.
type Stmt interface {
	implStmt()
	StmtLine() int
}

// StmtExpr is Exp SEMI.
type StmtExpr struct {
	Exp  Expr
	Line int
}

// StmtBlock is CompSt: local declarations followed by a statement list.
type StmtBlock struct {
	Decs  []*VarDec
	Stmts []Stmt
	Line  int
}

// StmtReturn is RETURN Exp SEMI.
type StmtReturn struct {
	Exp  Expr
	Line int
}

// StmtIf is IF (Cond) Then [ELSE Else]; Else is nil when absent.
type StmtIf struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Line int
}

// StmtWhile is WHILE (Cond) Body.
type StmtWhile struct {
	Cond Expr
	Body Stmt
	Line int
}

func (StmtExpr) implStmt()   {}
func (StmtBlock) implStmt()  {}
func (StmtReturn) implStmt() {}
func (StmtIf) implStmt()     {}
func (StmtWhile) implStmt()  {}

func (s StmtExpr) StmtLine() int   { return s.Line }
func (s StmtBlock) StmtLine() int  { return s.Line }
func (s StmtReturn) StmtLine() int { return s.Line }
func (s StmtIf) StmtLine() int     { return s.Line }
func (s StmtWhile) StmtLine() int  { return s.Line }

// VarDec is a local Dec: VarDec | VarDec ASSIGNOP Exp.
type VarDec struct {
	Sym  *sem.Symbol
	Init Expr // nil when the declaration has no initializer
	Line int
}

// FunDec is a function definition: FunDec : ID LP VarList RP, plus the
// CompSt body that followed it in the source (a prototype without a body
// is represented by ExtDefProto instead).
type FunDec struct {
	Sym    *sem.Symbol
	Params []*sem.Symbol
	Body   *StmtBlock
	Line   int
}

// ExtDef is a top-level definition: a function definition, or one of the
// unsupported forms this pass must reject (global variable, function
// prototype without a body), or the no-op "Specifier SEMI" form.
type ExtDef interface {
	implExtDef()
	ExtDefLine() int
}

// ExtDefFunc wraps a function definition with a body.
type ExtDefFunc struct {
	Fun  *FunDec
	Line int
}

// ExtDefGlobalVar marks a rejected global variable declaration.
type ExtDefGlobalVar struct {
	Line int
}

// ExtDefProto marks a rejected function prototype without a body.
type ExtDefProto struct {
	Line int
}

// ExtDefEmpty is the "Specifier SEMI" form, a no-op.
type ExtDefEmpty struct {
	Line int
}

func (ExtDefFunc) implExtDef()      {}
func (ExtDefGlobalVar) implExtDef() {}
func (ExtDefProto) implExtDef()     {}
func (ExtDefEmpty) implExtDef()     {}

func (e ExtDefFunc) ExtDefLine() int      { return e.Line }
func (e ExtDefGlobalVar) ExtDefLine() int { return e.Line }
func (e ExtDefProto) ExtDefLine() int     { return e.Line }
func (e ExtDefEmpty) ExtDefLine() int     { return e.Line }

// Program is the decorated syntax tree's root: Program : ExtDefList.
type Program struct {
	ExtDefs []ExtDef
}
