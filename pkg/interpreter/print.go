package interpreter

import (
	"strconv"
	"strings"

	"stasm/pkg/bytecode"

	"github.com/pkg/errors"
)

// printTop writes the raw payload of the top cell, as a number or as the
// Latin-1 character of its low byte.
func (i *Interpreter) printTop(op bytecode.Op, top Cell) error {
	var s string
	switch op {
	case bytecode.OpPrnt, bytecode.OpPrntln:
		s = strconv.FormatInt(top.Value, 10)
	default:
		s = string(rune(byte(top.Value)))
	}

	if op == bytecode.OpPrntln || op == bytecode.OpPrntCln {
		s += "\n"
	}

	_, err := i.out.Write([]byte(s))
	return errors.WithStack(err)
}

// Render returns the display form of a cell: integers in decimal, interned
// values resolved through the table, and dangling handles as #<handle>.
func (i *Interpreter) Render(c Cell) string {
	if !c.Hashed {
		return strconv.FormatInt(c.Value, 10)
	}
	if v, ok := i.table.Get(c.Value); ok {
		return v.String()
	}
	return "#" + strconv.FormatInt(c.Value, 10)
}

// printStack writes the operand stack bottom to top as [a, b, c].
func (i *Interpreter) printStack() error {
	cells := i.stack.Array()
	parts := make([]string, len(cells))
	for n, c := range cells {
		parts[n] = i.Render(c)
	}

	_, err := i.out.Write([]byte("[" + strings.Join(parts, ", ") + "]\n"))
	return errors.WithStack(err)
}

// printRegisters writes the register file in id order as {id: value, ...}.
func (i *Interpreter) printRegisters() error {
	ids := i.registers.Keys()
	parts := make([]string, len(ids))
	for n, id := range ids {
		c, _ := i.registers.Get(id)
		parts[n] = strconv.FormatInt(id, 10) + ": " + i.Render(c)
	}

	_, err := i.out.Write([]byte("{" + strings.Join(parts, ", ") + "}\n"))
	return errors.WithStack(err)
}
