package irgen

import (
	"fmt"
	"log/slog"

	"github.com/go-tacc/tacc/pkg/ir"
)

// Emitter mints fresh variables and labels in allocation order and appends
// instructions to the program's flat stream. It is the Go replacement for
// ir.c's package-level irs/vars/var_count globals (§5 REDESIGN FLAG):
// one Emitter backs exactly one translation, threaded explicitly instead
// of reached for through global state.
type Emitter struct {
	instrs     []ir.Instruction
	vars       []*ir.Var
	varCount   int
	labelCount int
}

// NewVar allocates the next temporary, named "t<n>".
func (e *Emitter) NewVar() *ir.Var {
	e.varCount++
	v := &ir.Var{ID: e.varCount, Name: fmt.Sprintf("t%d", e.varCount)}
	e.vars = append(e.vars, v)
	return v
}

// NewLabel allocates the next anonymous label, named "l<n>".
func (e *Emitter) NewLabel() *ir.Label {
	e.labelCount++
	return &ir.Label{Name: fmt.Sprintf("l%d", e.labelCount)}
}

// NewNamedLabel wraps a source identifier as a label verbatim, for
// function entry points.
func (e *Emitter) NewNamedLabel(name string) *ir.Label {
	return &ir.Label{Name: name}
}

func (e *Emitter) push(i ir.Instruction) {
	e.instrs = append(e.instrs, i)
}

func (e *Emitter) EmitLabel(l *ir.Label) { e.push(ir.LabelInstr{L: l}) }
func (e *Emitter) EmitFunc(l *ir.Label)  { e.push(ir.FuncInstr{L: l}) }

func (e *Emitter) EmitAssign(left, right ir.Operand) {
	if !left.Assignable() {
		internalf("assign target %s is not assignable", left)
	}
	e.push(ir.Assign{L: left, R: right})
}

func (e *Emitter) emitBinOp(kind ir.BinOpKind, target, a, b ir.Operand) {
	if _, ok := target.(ir.VarOperand); !ok {
		internalf("binop target %s must be a variable", target)
	}
	e.push(ir.BinOp{Kind: kind, Target: target, A: a, B: b})
}

func (e *Emitter) EmitAdd(target, a, b ir.Operand) { e.emitBinOp(ir.OpAdd, target, a, b) }
func (e *Emitter) EmitSub(target, a, b ir.Operand) { e.emitBinOp(ir.OpSub, target, a, b) }
func (e *Emitter) EmitMul(target, a, b ir.Operand) { e.emitBinOp(ir.OpMul, target, a, b) }
func (e *Emitter) EmitDiv(target, a, b ir.Operand) { e.emitBinOp(ir.OpDiv, target, a, b) }

func (e *Emitter) EmitGoto(l *ir.Label) { e.push(ir.Goto{L: l}) }

func (e *Emitter) EmitBranch(op ir.Relop, a, b ir.Operand, l *ir.Label) {
	e.push(ir.Branch{Op: op, A: a, B: b, L: l})
}

func (e *Emitter) EmitReturn(v ir.Operand) { e.push(ir.Return{V: v}) }

func (e *Emitter) EmitDec(v ir.Operand, n int) {
	if _, ok := v.(ir.VarOperand); !ok {
		internalf("dec target %s must be a variable", v)
	}
	e.push(ir.Dec{V: v, N: n})
}

func (e *Emitter) EmitArg(v ir.Operand) { e.push(ir.Arg{V: v}) }

func (e *Emitter) EmitCall(target ir.Operand, l *ir.Label) {
	if _, ok := target.(ir.VarOperand); !ok {
		internalf("call target %s must be a variable", target)
	}
	e.push(ir.Call{Target: target, L: l})
}

func (e *Emitter) EmitParam(v ir.Operand) {
	if _, ok := v.(ir.VarOperand); !ok {
		internalf("param %s must be a variable", v)
	}
	e.push(ir.Param{V: v})
}

func (e *Emitter) EmitRead(v ir.Operand) {
	if _, ok := v.(ir.VarOperand); !ok {
		internalf("read target %s must be a variable", v)
	}
	e.push(ir.Read{V: v})
}

func (e *Emitter) EmitWrite(v ir.Operand) { e.push(ir.Write{V: v}) }

// Session is the translation context threaded through every translate*
// call for one run: the Emitter, the ignore_var sentinel, and a logger.
// A Session must not be reused across two translations — see prepare.
type Session struct {
	em       *Emitter
	ignore   *ir.Var
	log      *slog.Logger
	prepared bool
}

func newSession(log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{log: log}
}

// prepare resets the Emitter and mints the ignore_var sentinel, mirroring
// ir.c's ir_prepare. It panics if called twice on the same Session: unlike
// the C globals, which ir_prepare resets for free, a Go struct carries no
// such guarantee, so a second use is refused outright rather than
// silently continuing var/label numbering from the first run.
func (s *Session) prepare() {
	if s.prepared {
		internalf("session already prepared: a Session may back only one Translate call")
	}
	s.prepared = true
	s.em = &Emitter{}
	s.ignore = s.em.NewVar()
}

func (s *Session) logf(line int, node string) {
	s.log.Debug("translate", "line", line, "node", node)
}

func (s *Session) program() *ir.Program {
	return &ir.Program{
		Instructions: s.em.instrs,
		Vars:         s.em.vars,
		VarCount:     s.em.varCount,
	}
}
