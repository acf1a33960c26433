package interpreter

import (
	"fmt"
	"io"
	"os"

	"stasm/pkg/bytecode"
	"stasm/pkg/stack"

	"github.com/pkg/errors"
)

// Interpreter executes a resolved program. It owns every piece of run-time
// state, so independent interpreters never share anything.
type Interpreter struct {
	pb bytecode.Program // program block (list of instructions)
	ip int              // instruction pointer

	stack     *stack.Stack[Cell]  // operand stack
	table     *Table              // interned strings and floats
	registers *Registers          // register file
	frames    *stack.Stack[Frame] // call stack

	externs Externs // host functions reachable through `extern`

	out   io.Writer // output writer for print instructions
	trace bool      // log every executed instruction

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print instructions
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithExterns adds host functions to the extern table, replacing defaults of the same name
func WithExterns(ext Externs) Option {
	return func(i *Interpreter) {
		for name, fn := range ext {
			i.externs[name] = fn
		}
	}
}

// WithTrace logs each instruction at debug level before it runs
func WithTrace(trace bool) Option {
	return func(i *Interpreter) { i.trace = trace }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(pb bytecode.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		pb:        pb,
		stack:     stack.NewStack[Cell](),
		table:     NewTable(),
		registers: NewRegisters(),
		frames:    stack.NewStack[Frame](),
		externs:   DefaultExterns(),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// Exec runs a program with stdout as writer
func Exec(pb bytecode.Program, opts ...Option) error {
	return NewInterpreter(pb, opts...).Run()
}

// Load replaces the current program, resetting state
func (i *Interpreter) Load(pb bytecode.Program) {
	i.pb = pb
	i.Reset()
}

// Reset clears run-time state (stacks, table, registers, IP, counters)
func (i *Interpreter) Reset() {
	i.ip = 0
	i.stack = stack.NewStack[Cell]()
	i.table = NewTable()
	i.registers = NewRegisters()
	i.frames = stack.NewStack[Frame]()
	i.steps = 0
}

// Step executes a single instruction, returning (halted, error). The
// program halts when the instruction pointer runs past its end.
func (i *Interpreter) Step() (bool, error) {
	if i.ip < 0 || i.ip >= len(i.pb) {
		return true, nil
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, &RuntimeError{PC: i.ip, Instruction: i.pb[i.ip], Err: errors.WithStack(ErrMaxStepsExceeded)}
	}

	pc := i.ip
	in := i.pb[pc]
	i.ip++
	i.steps++

	if err := i.exec(in); err != nil {
		return false, &RuntimeError{PC: pc, Instruction: in, Err: err}
	}

	return false, nil
}

// Run executes until halt or error
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

// Program returns the active program
func (i *Interpreter) Program() bytecode.Program {
	return i.pb
}

// Output returns the output writer used for print
func (i *Interpreter) Output() io.Writer {
	return i.out
}

// PC returns the instruction pointer
func (i *Interpreter) PC() int {
	return i.ip
}

// SetPC moves the instruction pointer
func (i *Interpreter) SetPC(pc int) {
	i.ip = pc
}

// Steps returns the number of instructions executed so far
func (i *Interpreter) Steps() int {
	return i.steps
}

// Stack returns the operand stack, bottom first. The slice aliases the
// interpreter's stack.
func (i *Interpreter) Stack() []Cell {
	return i.stack.Array()
}

// Push pushes a cell onto the operand stack
func (i *Interpreter) Push(c Cell) {
	i.stack.Push(c)
}

// Peek returns the top of the operand stack
func (i *Interpreter) Peek() (Cell, error) {
	return i.stack.Peek()
}

// Table returns the interning table
func (i *Interpreter) Table() *Table {
	return i.table
}

// Registers returns the register file
func (i *Interpreter) Registers() *Registers {
	return i.registers
}

// CallDepth returns the number of active frames
func (i *Interpreter) CallDepth() int {
	return i.frames.Size()
}

// currentFrame returns the current call frame, or nil if none
func (i *Interpreter) currentFrame() *Frame {
	f, err := i.frames.PeekMut()
	if err != nil {
		return nil
	}
	return f
}

// base is the stack offset of the current frame; top-level code runs in an
// implicit frame based at 0.
func (i *Interpreter) base() int {
	if f := i.currentFrame(); f != nil {
		return f.StackOffset
	}
	return 0
}

// Run-time failures, wrapped in a *RuntimeError.
var (
	ErrStackUnderflow     = stack.ErrUnderflow
	ErrIndexOutOfRange    = stack.ErrOutOfRange
	ErrCallStackUnderflow = errors.New("call stack underflow")
	ErrDivisionByZero     = errors.New("integer division by zero")
	ErrUnknownExtern      = errors.New("unknown extern")
	ErrMaxStepsExceeded   = errors.New("maximum steps exceeded")
)

// RuntimeError reports the instruction that failed.
type RuntimeError struct {
	PC          int
	Instruction bytecode.Instruction
	Err         error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("pc %d (%s): %v", e.PC, e.Instruction, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
