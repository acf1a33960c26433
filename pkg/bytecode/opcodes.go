package bytecode

// Op identifies an instruction variant.
type Op uint8

const (
	OpNoop Op = iota
	OpPushInt
	OpPushFloat
	OpPushStr
	OpPop
	OpDup
	OpSwap
	OpClsStk
	OpDlcStk
	OpAdd
	OpAddF
	OpSub
	OpSubF
	OpMul
	OpMulF
	OpDiv
	OpDivF
	OpMod
	OpModF
	OpIncr
	OpDecr
	OpMov
	OpLd
	OpDmpHash
	OpClsHash
	OpDlcHash
	OpDmpReg
	OpClsReg
	OpDlcReg
	OpJmp
	OpCmp
	OpIntHas
	OpStrHas
	OpFltHas
	OpJE
	OpJFE
	OpJNE
	OpJFNE
	OpJGT
	OpJFGT
	OpJLT
	OpJFLT
	OpJGE
	OpJFGE
	OpJLE
	OpJFLE
	OpGet
	OpSet
	OpGetArg
	OpSetArg
	OpPrnt
	OpPrntStr
	OpPrntln
	OpPrntC
	OpPrntCln
	OpPrntStk
	OpPrntReg
	OpCall
	OpRet
	OpExtern

	opCount
)

// Operand describes what follows a mnemonic in program text.
type Operand uint8

const (
	None      Operand = iota
	IntLit            // signed 64-bit literal
	FloatLit          // 32-bit float literal
	StrLit            // single token taken verbatim
	Register          // signed register id
	Slot              // signed stack slot, negative counts from the top
	RegSlot           // register id then slot
	Index             // unsigned frame index
	Label             // label name, resolved to its line
	Procedure         // procedure name, resolved to its first body line
	Name              // extern name
)

type opInfo struct {
	names   []string // first one is used when printing
	operand Operand
}

var opcodes = [opCount]opInfo{
	OpNoop:      {[]string{"nop"}, None},
	OpPushInt:   {[]string{"pushint", "pint"}, IntLit},
	OpPushFloat: {[]string{"pushfloat", "pflt"}, FloatLit},
	OpPushStr:   {[]string{"pushstr", "pstr"}, StrLit},
	OpPop:       {[]string{"pop"}, None},
	OpDup:       {[]string{"dup"}, None},
	OpSwap:      {[]string{"swap"}, None},
	OpClsStk:    {[]string{"clsstk"}, None},
	OpDlcStk:    {[]string{"dlcstk"}, None},
	OpAdd:       {[]string{"add"}, None},
	OpAddF:      {[]string{"addf"}, None},
	OpSub:       {[]string{"sub"}, None},
	OpSubF:      {[]string{"subf"}, None},
	OpMul:       {[]string{"mul"}, None},
	OpMulF:      {[]string{"mulf"}, None},
	OpDiv:       {[]string{"div"}, None},
	OpDivF:      {[]string{"divf"}, None},
	OpMod:       {[]string{"mod"}, None},
	OpModF:      {[]string{"modf"}, None},
	OpIncr:      {[]string{"incr"}, None},
	OpDecr:      {[]string{"decr"}, None},
	OpMov:       {[]string{"mov"}, RegSlot},
	OpLd:        {[]string{"ld"}, Register},
	OpDmpHash:   {[]string{"dmphash"}, Slot},
	OpClsHash:   {[]string{"clshash"}, None},
	OpDlcHash:   {[]string{"dlchash"}, None},
	OpDmpReg:    {[]string{"dmpreg"}, Register},
	OpClsReg:    {[]string{"clsreg"}, None},
	OpDlcReg:    {[]string{"dlcreg"}, None},
	OpJmp:       {[]string{"jmp"}, Label},
	OpCmp:       {[]string{"cmp"}, Label},
	OpIntHas:    {[]string{"inthas"}, Label},
	OpStrHas:    {[]string{"strhas"}, Label},
	OpFltHas:    {[]string{"flthas"}, Label},
	OpJE:        {[]string{"je"}, Label},
	OpJFE:       {[]string{"jfe"}, Label},
	OpJNE:       {[]string{"jne"}, Label},
	OpJFNE:      {[]string{"jfne"}, Label},
	OpJGT:       {[]string{"jgt"}, Label},
	OpJFGT:      {[]string{"jfgt"}, Label},
	OpJLT:       {[]string{"jlt"}, Label},
	OpJFLT:      {[]string{"jflt"}, Label},
	OpJGE:       {[]string{"jge"}, Label},
	OpJFGE:      {[]string{"jfge"}, Label},
	OpJLE:       {[]string{"jle"}, Label},
	OpJFLE:      {[]string{"jfle"}, Label},
	OpGet:       {[]string{"get"}, Index},
	OpSet:       {[]string{"set"}, Index},
	OpGetArg:    {[]string{"getarg"}, Index},
	OpSetArg:    {[]string{"setarg"}, Index},
	OpPrnt:      {[]string{"prnt"}, None},
	OpPrntStr:   {[]string{"prntstr"}, StrLit},
	OpPrntln:    {[]string{"prntln"}, None},
	OpPrntC:     {[]string{"prntc"}, None},
	OpPrntCln:   {[]string{"prntcln"}, None},
	OpPrntStk:   {[]string{"prntstk"}, None},
	OpPrntReg:   {[]string{"prntreg"}, None},
	OpCall:      {[]string{"call"}, Procedure},
	OpRet:       {[]string{"ret"}, None},
	OpExtern:    {[]string{"extern"}, Name},
}

var opcodeIndex = make(map[string]Op)

func init() {
	for i, info := range opcodes {
		for _, n := range info.names {
			opcodeIndex[n] = Op(i)
		}
	}
}

// Lookup returns the Op for a mnemonic.
func Lookup(mnemonic string) (Op, bool) {
	op, ok := opcodeIndex[mnemonic]
	return op, ok
}

// String returns the canonical mnemonic.
func (op Op) String() string {
	if op >= opCount {
		return "???"
	}
	return opcodes[op].names[0]
}

// Operand returns the kind of operand the op takes in program text.
func (op Op) Operand() Operand {
	if op >= opCount {
		return None
	}
	return opcodes[op].operand
}

// Arity returns the number of operand tokens following the mnemonic.
func (op Op) Arity() int {
	switch op.Operand() {
	case None:
		return 0
	case RegSlot:
		return 2
	default:
		return 1
	}
}

// IsJump reports whether the op may transfer control to its Target.
func (op Op) IsJump() bool {
	switch op.Operand() {
	case Label, Procedure:
		return true
	}
	return false
}
