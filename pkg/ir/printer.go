package ir

import (
	"fmt"
	"io"
)

// Printer writes a Program in its canonical text form, one instruction per
// line: LABEL/FUNCTION headers unindented, everything else as a single
// statement line. The format is the pass's sole externally observable
// contract with the downstream linearizer.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram writes every instruction of p in order.
func (p *Printer) PrintProgram(prog *Program) {
	for _, inst := range prog.Instructions {
		p.printInstruction(inst)
	}
}

func (p *Printer) printInstruction(inst Instruction) {
	switch i := inst.(type) {
	case LabelInstr:
		fmt.Fprintf(p.w, "LABEL %s :\n", i.L.Name)
	case FuncInstr:
		fmt.Fprintf(p.w, "FUNCTION %s :\n", i.L.Name)
	case Assign:
		fmt.Fprintf(p.w, "%s := %s\n", i.L, i.R)
	case BinOp:
		fmt.Fprintf(p.w, "%s := %s %s %s\n", i.Target, i.A, i.Kind.symbol(), i.B)
	case Goto:
		fmt.Fprintf(p.w, "GOTO %s\n", i.L.Name)
	case Branch:
		fmt.Fprintf(p.w, "IF %s %s %s GOTO %s\n", i.A, i.Op, i.B, i.L.Name)
	case Return:
		fmt.Fprintf(p.w, "RETURN %s\n", i.V)
	case Dec:
		fmt.Fprintf(p.w, "DEC %s %d\n", i.V, i.N)
	case Arg:
		fmt.Fprintf(p.w, "ARG %s\n", i.V)
	case Call:
		fmt.Fprintf(p.w, "%s := CALL %s\n", i.Target, i.L.Name)
	case Param:
		fmt.Fprintf(p.w, "PARAM %s\n", i.V)
	case Read:
		fmt.Fprintf(p.w, "READ %s\n", i.V)
	case Write:
		fmt.Fprintf(p.w, "WRITE %s\n", i.V)
	default:
		fmt.Fprintf(p.w, "??? (%T)\n", inst)
	}
}

// Print writes prog's canonical text form to w.
func Print(w io.Writer, prog *Program) {
	NewPrinter(w).PrintProgram(prog)
}
