package parser

import (
	"math"
	"stasm/pkg/bytecode"
	"stasm/pkg/lexer"
	"strconv"

	"github.com/pkg/errors"
)

type Parser struct {
	lines      []lexer.Line // tokenized program
	labels     Labels       // label name -> line index
	procedures Procedures   // proc name -> extent
	errors     []error      // list of errors
}

// NewParser creates a new parser instance
func NewParser(lines []lexer.Line) *Parser {
	return &Parser{
		lines:  lines,
		errors: []error{},
	}
}

// Parse resolves labels and procedures, then turns every line into an
// instruction. All lines are checked and the first error is returned; the
// rest are available from Errors.
func (p *Parser) Parse() (bytecode.Program, error) {
	p.labels = FindLabels(p.lines)

	procs, err := FindProcedures(p.lines)
	if err != nil {
		p.errors = append(p.errors, err)
		return nil, err
	}
	p.procedures = procs

	program := make(bytecode.Program, 0, len(p.lines))
	for _, l := range p.lines {
		in, err := p.parseInstruction(l)
		if err != nil {
			p.addError(l, err)
			continue
		}
		program = append(program, in)
	}

	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}

	return program, nil
}

// Labels returns the labels found by Parse
func (p *Parser) Labels() Labels {
	return p.labels
}

// Procedures returns the procedures found by Parse
func (p *Parser) Procedures() Procedures {
	return p.procedures
}

// parseInstruction lowers one line. Directives become a nop (`label`, `end`)
// or a jump over the body (`proc`).
func (p *Parser) parseInstruction(l lexer.Line) (bytecode.Instruction, error) {
	mnemonic, args := l.Tokens[0], l.Tokens[1:]

	switch {
	case mnemonic == "label":
		return bytecode.Instruction{Op: bytecode.OpNoop}, nil
	case l.Is("end"):
		return bytecode.Instruction{Op: bytecode.OpNoop}, nil
	case mnemonic == "proc" && len(args) == 1:
		proc, err := p.procedure(args[0])
		if err != nil {
			return bytecode.Instruction{}, err
		}
		return bytecode.Instruction{Op: bytecode.OpJmp, Target: proc.End, Symbol: args[0]}, nil
	}

	op, ok := bytecode.Lookup(mnemonic)
	if !ok {
		return bytecode.Instruction{}, errors.WithStack(ErrUnknownMnemonic)
	}

	if len(args) != op.Arity() {
		return bytecode.Instruction{}, errors.Wrapf(ErrOperandCount, "%s takes %d, got %d", mnemonic, op.Arity(), len(args))
	}

	in := bytecode.Instruction{Op: op}
	var err error

	switch op.Operand() {
	case bytecode.IntLit, bytecode.Register:
		in.Int, err = parseInt(args[0])
	case bytecode.Slot:
		in.Slot, err = parseInt(args[0])
	case bytecode.RegSlot:
		if in.Int, err = parseInt(args[0]); err == nil {
			in.Slot, err = parseInt(args[1])
		}
	case bytecode.Index:
		in.Index, err = parseIndex(args[0])
	case bytecode.FloatLit:
		in.Float, err = parseFloat(args[0])
	case bytecode.StrLit, bytecode.Name:
		in.Str = args[0]
	case bytecode.Label:
		target, ok := p.labels[args[0]]
		if !ok {
			return bytecode.Instruction{}, errors.Wrapf(ErrUnresolvedSymbol, "label %s", args[0])
		}
		in.Target, in.Symbol = target, args[0]
	case bytecode.Procedure:
		var proc Procedure
		if proc, err = p.procedure(args[0]); err == nil {
			in.Target, in.Symbol = proc.Entry(), args[0]
		}
	}

	if err != nil {
		return bytecode.Instruction{}, err
	}

	return in, nil
}

func (p *Parser) procedure(name string) (Procedure, error) {
	proc, ok := p.procedures[name]
	if !ok {
		return Procedure{}, errors.Wrapf(ErrUnresolvedSymbol, "procedure %s", name)
	}
	return proc, nil
}

func parseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedLiteral, "integer %q", s)
	}
	return v, nil
}

func parseIndex(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > math.MaxInt {
		return 0, errors.Wrapf(ErrMalformedLiteral, "index %q", s)
	}
	return int(v), nil
}

// parseFloat accepts out of range literals as infinities.
func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, errors.Wrapf(ErrMalformedLiteral, "float %q", s)
	}
	return float32(v), nil
}

// Load tokenizes and parses a program in one step.
func Load(src string, commentMarkers ...string) (bytecode.Program, error) {
	return NewParser(lexer.NewLexer(src, commentMarkers...).Lines()).Parse()
}
