package compiler

import (
	"fmt"
	"io"
	"os"
	"stasm/pkg/color"
	"stasm/pkg/interpreter"
	"stasm/pkg/lexer"
	"stasm/pkg/parser"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

type Compiler struct {
	Help           bool     // Show help message
	Verbose        bool     // Enable verbose output
	NoColor        bool     // Disable colored output
	Trace          bool     // Log every executed instruction
	List           bool     // Print the resolved program before running it
	MaxSteps       int      // Step budget, 0 for none
	CommentMarkers []string // First tokens that mark a comment line
	SourceFile     string   // Path to the source file

	Stdout io.Writer // program output, os.Stdout when nil
	Stderr io.Writer // diagnostics, os.Stderr when nil
}

// Compile reads the source file, resolves its symbols and runs it. Load
// errors are all reported before anything runs.
func (opts *Compiler) Compile() error {
	stdout, stderr := opts.writers()

	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", opts.SourceFile)
	}

	lines := lexer.NewLexer(string(input), opts.CommentMarkers...).Lines()
	p := parser.NewParser(lines)

	program, err := p.Parse()
	if err != nil {
		loadErrors := p.Errors()
		fmt.Fprintln(stderr, color.BrightRedText("=== Load Errors ==="))
		for _, e := range loadErrors {
			fmt.Fprintln(stderr, e)
		}
		return errors.Wrapf(err, "loading failed with %d errors", len(loadErrors))
	}

	log.Info("Program loaded",
		"instructions", len(program),
		"labels", len(p.Labels()),
		"procedures", len(p.Procedures()))

	if opts.List {
		fmt.Fprintln(stdout, color.GreenText("=== Resolved Program ==="))
		if len(program) == 0 {
			fmt.Fprintln(stdout, color.GrayText("No instructions."))
		} else if err := program.Disassemble(stdout); err != nil {
			return errors.Wrap(err, "listing failed")
		}
		fmt.Fprintln(stdout, color.GreenText("\n=== Program Output ==="))
	}

	intr := interpreter.NewInterpreter(program,
		interpreter.WithWriter(stdout),
		interpreter.WithMaxSteps(opts.MaxSteps),
		interpreter.WithTrace(opts.Trace))

	if err := intr.Run(); err != nil {
		return errors.Wrap(err, "execution failed")
	}

	log.Info("Program halted", "steps", intr.Steps())

	return nil
}

func (opts *Compiler) writers() (io.Writer, io.Writer) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
