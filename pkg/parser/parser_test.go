package parser_test

import (
	"stasm/pkg/bytecode"
	"stasm/pkg/lexer"
	"stasm/pkg/parser"
	"testing"

	"github.com/pkg/errors"
)

func TestFindLabels(t *testing.T) {
	lines := lexer.Tokenize(`pint 1
label a
label b extra
label a
label`)

	labels := parser.FindLabels(lines)
	if len(labels) != 1 {
		t.Fatalf("expected 1 label, got %v", labels)
	}
	if labels["a"] != 3 {
		t.Errorf("expected later definition at 3, got %d", labels["a"])
	}
}

func TestFindProcedures(t *testing.T) {
	lines := lexer.Tokenize(`proc first
pint 1
ret
end
pint 2
proc second
ret
end`)

	procs, err := parser.FindProcedures(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := parser.Procedures{
		"first":  {Start: 0, End: 4},
		"second": {Start: 5, End: 8},
	}
	for name, p := range want {
		if procs[name] != p {
			t.Errorf("%s: expected %+v, got %+v", name, p, procs[name])
		}
	}
	if procs["first"].Entry() != 1 {
		t.Errorf("expected entry 1, got %d", procs["first"].Entry())
	}
}

func TestUnterminatedProcedure(t *testing.T) {
	_, err := parser.FindProcedures(lexer.Tokenize("proc lost\npint 1\nret"))
	if !errors.Is(err, parser.ErrMalformedProcedure) {
		t.Fatalf("expected malformed procedure, got %v", err)
	}

	var le *parser.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a *LoadError, got %T", err)
	}
	if le.Pos.Line != 1 {
		t.Errorf("expected error on line 1, got %d", le.Pos.Line)
	}
}

func TestResolveTargets(t *testing.T) {
	program, err := parser.Load(`pint 3
proc twice
get 0
pint 2
mul
ret
end
call twice
label done
jmp done`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		pc   int
		want bytecode.Instruction
	}{
		{0, bytecode.Instruction{Op: bytecode.OpPushInt, Int: 3}},
		{1, bytecode.Instruction{Op: bytecode.OpJmp, Target: 7, Symbol: "twice"}},
		{2, bytecode.Instruction{Op: bytecode.OpGet, Index: 0}},
		{6, bytecode.Instruction{Op: bytecode.OpNoop}},
		{7, bytecode.Instruction{Op: bytecode.OpCall, Target: 2, Symbol: "twice"}},
		{8, bytecode.Instruction{Op: bytecode.OpNoop}},
		{9, bytecode.Instruction{Op: bytecode.OpJmp, Target: 8, Symbol: "done"}},
	}

	for _, test := range tests {
		if got := program[test.pc]; got != test.want {
			t.Errorf("pc %d: expected %v, got %v", test.pc, test.want, got)
		}
	}
}

func TestOperands(t *testing.T) {
	program, err := parser.Load(`pushint -42
pflt 2.5
pstr hello
mov 3 -1
dmphash 2
getarg 1
prntstr hi!
extern prtvfs`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := bytecode.Program{
		{Op: bytecode.OpPushInt, Int: -42},
		{Op: bytecode.OpPushFloat, Float: 2.5},
		{Op: bytecode.OpPushStr, Str: "hello"},
		{Op: bytecode.OpMov, Int: 3, Slot: -1},
		{Op: bytecode.OpDmpHash, Slot: 2},
		{Op: bytecode.OpGetArg, Index: 1},
		{Op: bytecode.OpPrntStr, Str: "hi!"},
		{Op: bytecode.OpExtern, Str: "prtvfs"},
	}

	for i := range want {
		if program[i] != want[i] {
			t.Errorf("pc %d: expected %v, got %v", i, want[i], program[i])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		src  string
		err  error
		line int
	}{
		{"pint 1\njmp nowhere", parser.ErrUnresolvedSymbol, 2},
		{"call ghost", parser.ErrUnresolvedSymbol, 1},
		{"proc outer\nproc inner\nend\nend", parser.ErrUnresolvedSymbol, 2},
		{"pint x", parser.ErrMalformedLiteral, 1},
		{"pint 99999999999999999999", parser.ErrMalformedLiteral, 1},
		{"pflt nope", parser.ErrMalformedLiteral, 1},
		{"get -1", parser.ErrMalformedLiteral, 1},
		{"mov 1 z", parser.ErrMalformedLiteral, 1},
		{"\n\nfrobnicate", parser.ErrUnknownMnemonic, 3},
		{"PINT 1", parser.ErrUnknownMnemonic, 1},
		{"end now", parser.ErrUnknownMnemonic, 1},
		{"pint", parser.ErrOperandCount, 1},
		{"add 1", parser.ErrOperandCount, 1},
		{"proc open\npint 1", parser.ErrMalformedProcedure, 1},
	}

	for _, test := range tests {
		_, err := parser.Load(test.src)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: expected %v, got %v", test.src, test.err, err)
			continue
		}

		var le *parser.LoadError
		if !errors.As(err, &le) {
			t.Errorf("%q: expected a *LoadError, got %T", test.src, err)
			continue
		}
		if le.Pos.Line != test.line {
			t.Errorf("%q: expected line %d, got %d", test.src, test.line, le.Pos.Line)
		}
	}
}

func TestAllErrorsCollected(t *testing.T) {
	p := parser.NewParser(lexer.Tokenize("bogus\npint 1\njmp missing\npint q"))

	if _, err := p.Parse(); err == nil {
		t.Fatal("expected an error")
	}
	if n := len(p.Errors()); n != 3 {
		t.Errorf("expected 3 errors, got %d", n)
	}
}

func TestFloatOverflowIsInfinite(t *testing.T) {
	program, err := parser.Load("pflt 1e50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program[0].Float <= 3.4e38 {
		t.Errorf("expected +Inf, got %v", program[0].Float)
	}
}
