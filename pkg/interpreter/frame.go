package interpreter

// Frame represents a procedure call frame.
type Frame struct {
	StackOffset int // operand stack length at the call, the frame base
	ReturnIP    int // instruction to continue at after ret
}
