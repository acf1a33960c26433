package bytecode

import (
	"fmt"
	"io"
	"stasm/pkg/color"
	"strconv"
)

// Instruction is one resolved instruction. Only the fields used by Op are set.
type Instruction struct {
	Op Op

	Int    int64   // pushint literal, or the register id of mov, ld and dmpreg
	Slot   int64   // stack slot of mov and dmphash
	Index  int     // frame index of get, set, getarg and setarg
	Float  float32 // pushfloat literal
	Str    string  // pushstr and prntstr literal, extern name
	Target int     // absolute target of jumps and calls
	Symbol string  // label or procedure the target was resolved from
}

// String returns a string representation of the instruction
func (i Instruction) String() string {
	name := i.Op.String()

	switch i.Op.Operand() {
	case IntLit, Register:
		return name + " " + strconv.FormatInt(i.Int, 10)
	case FloatLit:
		return name + " " + strconv.FormatFloat(float64(i.Float), 'g', -1, 32)
	case StrLit, Name:
		return name + " " + i.Str
	case Slot:
		return name + " " + strconv.FormatInt(i.Slot, 10)
	case RegSlot:
		return fmt.Sprintf("%s %d %d", name, i.Int, i.Slot)
	case Index:
		return name + " " + strconv.Itoa(i.Index)
	case Label, Procedure:
		if i.Symbol == "" {
			return fmt.Sprintf("%s @%d", name, i.Target)
		}
		return fmt.Sprintf("%s %s @%d", name, i.Symbol, i.Target)
	}

	return name
}

// Program is a flat, resolved instruction sequence.
type Program []Instruction

// Disassemble writes a listing of the program, one instruction per line.
func (p Program) Disassemble(w io.Writer) error {
	for pc, in := range p {
		var line string
		switch {
		case in.Op == OpNoop:
			line = color.GrayText(in.String())
		case in.Op.IsJump():
			line = color.MagentaText(in.String())
		default:
			line = color.YellowText(in.String())
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\n", color.CyanText(fmt.Sprintf("% 6d", pc)), line); err != nil {
			return err
		}
	}

	return nil
}
