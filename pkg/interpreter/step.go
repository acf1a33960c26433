package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stasm/pkg/bytecode"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// exec carries out one instruction. The instruction pointer already points
// at the next instruction; jumps overwrite it.
//
// Binary operations pop both operands first. When the operands are not of
// the kind the operation works on, nothing is pushed and no jump is taken.
func (i *Interpreter) exec(in bytecode.Instruction) error {
	if i.trace {
		log.Debug("exec", "pc", i.ip-1, "op", in.String(), "depth", i.stack.Size(), "frames", i.frames.Size())
	}

	switch in.Op {
	case bytecode.OpNoop:
		return nil

	// literals
	case bytecode.OpPushInt:
		i.stack.Push(IntCell(in.Int))
	case bytecode.OpPushFloat:
		i.stack.Push(HandleCell(i.table.InternFloat(in.Float)))
	case bytecode.OpPushStr:
		i.stack.Push(HandleCell(i.table.InternString(in.Str)))

	// stack shape
	case bytecode.OpPop:
		_, err := i.stack.Pop()
		return err
	case bytecode.OpDup:
		a, err := i.stack.Peek()
		if err != nil {
			return err
		}
		i.stack.Push(a)
	case bytecode.OpSwap:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		i.stack.Push(a)
		i.stack.Push(b)
	case bytecode.OpClsStk:
		i.stack.Clear()
	case bytecode.OpDlcStk:
		i.stack.Shrink()

	// integer arithmetic, b op a
	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		if a.Hashed || b.Hashed {
			return nil
		}
		r, err := intArith(in.Op, b.Value, a.Value)
		if err != nil {
			return err
		}
		i.stack.Push(IntCell(r))
	case bytecode.OpIncr, bytecode.OpDecr:
		top, err := i.stack.PeekMut()
		if err != nil {
			return err
		}
		if top.Hashed {
			return nil
		}
		if in.Op == bytecode.OpIncr {
			top.Value++
		} else {
			top.Value--
		}

	// float arithmetic, b op a
	case bytecode.OpAddF, bytecode.OpSubF, bytecode.OpMulF, bytecode.OpDivF, bytecode.OpModF:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		fa, fb, ok := i.floats(a, b)
		if !ok {
			return nil
		}
		i.stack.Push(HandleCell(i.table.InternFloat(floatArith(in.Op, fb, fa))))

	// registers and table maintenance
	case bytecode.OpMov:
		idx, err := i.address(in.Slot)
		if err != nil {
			return err
		}
		c, err := i.stack.Get(idx)
		if err != nil {
			return err
		}
		i.registers.Set(in.Int, c)
	case bytecode.OpLd:
		if c, ok := i.registers.Get(in.Int); ok {
			i.stack.Push(c)
		}
	case bytecode.OpDmpHash:
		idx, err := i.address(in.Slot)
		if err != nil {
			return err
		}
		c, err := i.stack.Get(idx)
		if err != nil {
			return err
		}
		if c.Hashed {
			i.table.Remove(c.Value)
		}
	case bytecode.OpClsHash:
		i.table.Clear()
	case bytecode.OpDlcHash:
		i.table.Shrink()
	case bytecode.OpDmpReg:
		i.registers.Remove(in.Int)
	case bytecode.OpClsReg:
		i.registers.Clear()
	case bytecode.OpDlcReg:
		i.registers.Shrink()

	// control flow
	case bytecode.OpJmp:
		i.ip = in.Target
	case bytecode.OpCmp:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		if a.Hashed == b.Hashed && a.Value == b.Value {
			i.stack.Push(b)
			i.ip = in.Target
		}
	case bytecode.OpIntHas, bytecode.OpStrHas, bytecode.OpFltHas:
		a, b, err := i.pop2()
		if err != nil {
			return err
		}
		sa, sb, ok := i.containmentOperands(in.Op, a, b)
		if ok && strings.Contains(sb, sa) {
			i.stack.Push(b)
			i.ip = in.Target
		}
	case bytecode.OpJE, bytecode.OpJNE, bytecode.OpJGT, bytecode.OpJLT, bytecode.OpJGE, bytecode.OpJLE:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if compareZero(in.Op, sign(top.Value)) {
			return i.takeJump(in.Target)
		}
	case bytecode.OpJFE, bytecode.OpJFNE, bytecode.OpJFGT, bytecode.OpJFLT, bytecode.OpJFGE, bytecode.OpJFLE:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		if !top.Hashed {
			return nil
		}
		f, ok := i.table.FloatAt(top.Value)
		if !ok {
			return nil
		}
		// NaN is unequal to zero and unordered against it
		if math.IsNaN(float64(f)) && in.Op != bytecode.OpJFNE {
			return nil
		}
		if compareZero(in.Op, sign(f)) || math.IsNaN(float64(f)) {
			return i.takeJump(in.Target)
		}

	// frame addressing
	case bytecode.OpGet:
		c, err := i.stack.Get(in.Index + i.base())
		if err != nil {
			return err
		}
		i.stack.Push(c)
	case bytecode.OpSet:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		return i.stack.Set(in.Index+i.base(), top)
	case bytecode.OpGetArg:
		c, err := i.stack.Get(i.base() - 1 - in.Index)
		if err != nil {
			return err
		}
		i.stack.Push(c)
	case bytecode.OpSetArg:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		return i.stack.Set(i.base()-1-in.Index, top)

	// calls
	case bytecode.OpCall:
		i.frames.Push(Frame{StackOffset: i.stack.Size(), ReturnIP: i.ip})
		i.ip = in.Target
	case bytecode.OpRet:
		f, err := i.frames.Pop()
		if err != nil {
			return errors.WithStack(ErrCallStackUnderflow)
		}
		i.ip = f.ReturnIP
	case bytecode.OpExtern:
		fn, ok := i.externs[in.Str]
		if !ok {
			return errors.Wrapf(ErrUnknownExtern, "%s", in.Str)
		}
		return fn(i)

	// output
	case bytecode.OpPrnt, bytecode.OpPrntln, bytecode.OpPrntC, bytecode.OpPrntCln:
		top, err := i.stack.Peek()
		if err != nil {
			return err
		}
		return i.printTop(in.Op, top)
	case bytecode.OpPrntStr:
		_, err := fmt.Fprintln(i.out, in.Str)
		return errors.WithStack(err)
	case bytecode.OpPrntStk:
		return i.printStack()
	case bytecode.OpPrntReg:
		return i.printRegisters()

	default:
		return errors.Errorf("unhandled op %v", in.Op)
	}

	return nil
}

// pop2 pops a, then b. a is the most recently pushed.
func (i *Interpreter) pop2() (a, b Cell, err error) {
	if a, err = i.stack.Pop(); err != nil {
		return
	}
	b, err = i.stack.Pop()
	return
}

// floats resolves two handles to floats.
func (i *Interpreter) floats(a, b Cell) (fa, fb float32, ok bool) {
	if !a.Hashed || !b.Hashed {
		return 0, 0, false
	}
	fa, okA := i.table.FloatAt(a.Value)
	fb, okB := i.table.FloatAt(b.Value)
	return fa, fb, okA && okB
}

// containmentOperands renders a and b as text for inthas, strhas and flthas.
func (i *Interpreter) containmentOperands(op bytecode.Op, a, b Cell) (sa, sb string, ok bool) {
	switch op {
	case bytecode.OpIntHas:
		if a.Hashed || b.Hashed {
			return "", "", false
		}
		return strconv.FormatInt(a.Value, 10), strconv.FormatInt(b.Value, 10), true
	case bytecode.OpStrHas:
		if !a.Hashed || !b.Hashed {
			return "", "", false
		}
		sa, okA := i.table.StringAt(a.Value)
		sb, okB := i.table.StringAt(b.Value)
		return sa, sb, okA && okB
	default:
		fa, fb, ok := i.floats(a, b)
		return FormatFloat(fa), FormatFloat(fb), ok
	}
}

// address resolves a mov/dmphash slot. Negative slots count down from the
// top of the stack, others are relative to the frame base.
func (i *Interpreter) address(slot int64) (int, error) {
	if slot < 0 {
		return i.stack.Size() - int(-slot), nil
	}
	return int(slot) + i.base(), nil
}

// takeJump pops the tested cell and jumps.
func (i *Interpreter) takeJump(target int) error {
	if _, err := i.stack.Pop(); err != nil {
		return err
	}
	i.ip = target
	return nil
}

func intArith(op bytecode.Op, b, a int64) (int64, error) {
	switch op {
	case bytecode.OpAdd:
		return b + a, nil
	case bytecode.OpSub:
		return b - a, nil
	case bytecode.OpMul:
		return b * a, nil
	}

	if a == 0 {
		return 0, errors.WithStack(ErrDivisionByZero)
	}
	if op == bytecode.OpDiv {
		return b / a, nil
	}
	return b % a, nil
}

func floatArith(op bytecode.Op, b, a float32) float32 {
	switch op {
	case bytecode.OpAddF:
		return b + a
	case bytecode.OpSubF:
		return b - a
	case bytecode.OpMulF:
		return b * a
	case bytecode.OpDivF:
		return b / a
	default:
		return float32(math.Mod(float64(b), float64(a)))
	}
}

// sign returns the sign of v: -1, 0 or 1.
func sign[T int64 | float32](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// compareZero evaluates a conditional jump against the sign of the tested value.
func compareZero(op bytecode.Op, s int) bool {
	switch op {
	case bytecode.OpJE, bytecode.OpJFE:
		return s == 0
	case bytecode.OpJNE, bytecode.OpJFNE:
		return s != 0
	case bytecode.OpJGT, bytecode.OpJFGT:
		return s > 0
	case bytecode.OpJLT, bytecode.OpJFLT:
		return s < 0
	case bytecode.OpJGE, bytecode.OpJFGE:
		return s >= 0
	default:
		return s <= 0
	}
}
