package cpu

import (
	"fmt"
	"iter"
)

// CodeOp is the operation performed by an instruction.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp,CodeArg,CodeCond
const (
	OP_UNDEFINED = CodeOp(0)  // undef
	OP_LOAD      = CodeOp(1)  // ld
	OP_ADD       = CodeOp(2)  // add
	OP_SUB       = CodeOp(3)  // sub
	OP_MUL       = CodeOp(4)  // mul
	OP_DIV       = CodeOp(5)  // div
	OP_INC       = CodeOp(6)  // inc
	OP_DEC       = CodeOp(7)  // dec
	OP_AND       = CodeOp(8)  // and
	OP_OR        = CodeOp(9)  // or
	OP_XOR       = CodeOp(10) // xor
	OP_CLEAR     = CodeOp(11) // clr
	OP_CALL      = CodeOp(12) // call
	OP_RET       = CodeOp(13) // ret
	OP_JUMP      = CodeOp(14) // jmp
	OP_BRANCH    = CodeOp(15) // bra
	OP_PUSH      = CodeOp(16) // push
	OP_POP       = CodeOp(17) // pop
	OP_NOP       = CodeOp(18) // nop
	OP_HALT      = CodeOp(19) // halt
)

// CodeArg is the source or destination of an operand.
type CodeArg int

const (
	ARG_NONE    = CodeArg(0) // -
	ARG_IMM     = CodeArg(1) // imm
	ARG_X       = CodeArg(2) // x
	ARG_Y       = CodeArg(3) // y
	ARG_SP      = CodeArg(4) // sp
	ARG_IO      = CodeArg(5) // io
	ARG_MEM_IMM = CodeArg(6) // [imm]
	ARG_MEM_X   = CodeArg(7) // [x]
	ARG_MEM_Y   = CodeArg(8) // [y]
)

// CodeCond is the flag condition gating a jump or branch.
type CodeCond int

const (
	COND_ALWAYS = CodeCond(0) // .
	COND_O      = CodeCond(1) // o
	COND_NO     = CodeCond(2) // no
	COND_Z      = CodeCond(3) // z
	COND_NZ     = CodeCond(4) // nz
	COND_T      = CodeCond(5) // t
	COND_NT     = CodeCond(6) // nt
	COND_C      = CodeCond(7) // c
	COND_NC     = CodeCond(8) // nc
)

// Opcode family bases.
const (
	CODE_LOAD        = 0x00
	CODE_ADD         = 0x10
	CODE_SUB         = 0x20
	CODE_MUL         = 0x30
	CODE_DIV         = 0x40
	CODE_INC         = 0x50
	CODE_DEC         = 0x55
	CODE_AND         = 0x60
	CODE_OR          = 0x70
	CODE_XOR         = 0x80
	CODE_CLEAR       = 0x88
	CODE_CALL        = 0x90
	CODE_RET         = 0x93
	CODE_JUMP        = 0xa0
	CODE_JUMP_COND   = 0xa3
	CODE_BRANCH      = 0xbb
	CODE_BRANCH_COND = 0xbe
	CODE_PUSH        = 0xe0
	CODE_POP         = 0xe6
	CODE_OUT         = 0xf0
	CODE_IN          = 0xf5
	CODE_NOP         = 0xfe
	CODE_HALT        = 0xff
)

// Instruction is a decoded instruction table entry.
type Instruction struct {
	Name string   // Mnemonic, ie "ADD_X_IMM".
	Op   CodeOp   // Operation.
	Dst  CodeArg  // Destination operand, or the only operand.
	Src  CodeArg  // Source operand.
	Cond CodeCond // Condition for jumps and branches.
}

// INSTRUCTION is the decode table, indexed by opcode.
var INSTRUCTION = makeInstructions()

// Defined returns true if the entry is an implemented instruction.
func (in Instruction) Defined() bool {
	return in.Op != OP_UNDEFINED
}

// Width returns the instruction width in bytes. Instructions that consume
// the immediate operand are two bytes wide.
func (in Instruction) Width() int {
	for _, arg := range []CodeArg{in.Dst, in.Src} {
		if arg == ARG_IMM || arg == ARG_MEM_IMM {
			return 2
		}
	}

	return 1
}

// WritesFlags returns true if the instruction can update the result flags.
func (in Instruction) WritesFlags() bool {
	switch in.Op {
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_INC, OP_DEC,
		OP_AND, OP_OR, OP_XOR, OP_CLEAR, OP_BRANCH:
		return true
	}

	return false
}

// Jumps returns true if the instruction can assign the program counter.
func (in Instruction) Jumps() bool {
	switch in.Op {
	case OP_CALL, OP_RET, OP_JUMP, OP_BRANCH:
		return true
	}

	return false
}

// ReadsIo returns true if the instruction reads the I/O latch.
func (in Instruction) ReadsIo() bool {
	return in.Op == OP_LOAD && in.Src == ARG_IO
}

// WritesIo returns true if the instruction writes the I/O latch.
func (in Instruction) WritesIo() bool {
	return in.Op == OP_LOAD && in.Dst == ARG_IO
}

// String returns the assembly-like representation of the entry.
func (in Instruction) String() string {
	if !in.Defined() {
		return OP_UNDEFINED.String()
	}

	return fmt.Sprintf("%v.%v.%v.%v", in.Op, in.Cond, in.Dst, in.Src)
}

// Lookup returns the opcode for a mnemonic.
func Lookup(name string) (code byte, ok bool) {
	for n, in := range INSTRUCTION {
		if in.Defined() && in.Name == name {
			return byte(n), true
		}
	}

	return
}

// Mnemonics returns an iterator over all defined mnemonics and their opcodes.
func Mnemonics() iter.Seq2[string, int] {
	return func(yield func(name string, code int) bool) {
		for n, in := range INSTRUCTION {
			if !in.Defined() {
				continue
			}
			if !yield(in.Name, n) {
				return
			}
		}
	}
}

// argName is the mnemonic suffix for an operand.
func argName(arg CodeArg) string {
	switch arg {
	case ARG_IMM:
		return "IMM"
	case ARG_X:
		return "X"
	case ARG_Y:
		return "Y"
	case ARG_SP:
		return "SP"
	case ARG_IO:
		return "IO"
	case ARG_MEM_IMM:
		return "MEM"
	case ARG_MEM_X:
		return "MEM_X"
	case ARG_MEM_Y:
		return "MEM_Y"
	}

	return ""
}

// condName is the mnemonic suffix for a condition.
func condName(cond CodeCond) string {
	switch cond {
	case COND_O:
		return "O"
	case COND_NO:
		return "NO"
	case COND_Z:
		return "Z"
	case COND_NZ:
		return "NZ"
	case COND_T:
		return "T"
	case COND_NT:
		return "NT"
	case COND_C:
		return "C"
	case COND_NC:
		return "NC"
	}

	return ""
}

type operands struct {
	dst CodeArg
	src CodeArg
}

// Operand order shared by the arithmetic and logic families.
var _binary_operands = [8]operands{
	{ARG_X, ARG_IMM},
	{ARG_Y, ARG_IMM},
	{ARG_X, ARG_Y},
	{ARG_Y, ARG_X},
	{ARG_X, ARG_MEM_IMM},
	{ARG_Y, ARG_MEM_IMM},
	{ARG_X, ARG_MEM_Y},
	{ARG_Y, ARG_MEM_X},
}

// Targets of the unary (inc, dec, clear) families.
var _unary_operands = [5]CodeArg{ARG_X, ARG_Y, ARG_MEM_IMM, ARG_MEM_X, ARG_MEM_Y}

// Targets of call, jump and branch families.
var _target_operands = [3]CodeArg{ARG_IMM, ARG_X, ARG_Y}

var _conditions = [8]CodeCond{COND_O, COND_NO, COND_Z, COND_NZ, COND_T, COND_NT, COND_C, COND_NC}

func makeInstructions() (table [256]Instruction) {
	set := func(code int, in Instruction) {
		if table[code].Defined() {
			panic(fmt.Sprintf("opcode 0x%02x defined twice", code))
		}
		table[code] = in
	}

	// Load and store.
	loads := []operands{
		{ARG_X, ARG_IMM},
		{ARG_Y, ARG_IMM},
		{ARG_X, ARG_MEM_IMM},
		{ARG_Y, ARG_MEM_IMM},
		{ARG_MEM_IMM, ARG_X},
		{ARG_MEM_IMM, ARG_Y},
		{ARG_X, ARG_Y},
		{ARG_Y, ARG_X},
		{ARG_SP, ARG_IMM},
		{ARG_SP, ARG_X},
		{ARG_SP, ARG_Y},
		{ARG_SP, ARG_MEM_IMM},
		{ARG_X, ARG_SP},
		{ARG_Y, ARG_SP},
	}
	for n, arg := range loads {
		var name string
		switch {
		case arg.dst == ARG_MEM_IMM:
			name = "ST" + argName(arg.src) + "_MEM"
		case arg.src == ARG_IMM, arg.src == ARG_MEM_IMM:
			name = "LD" + argName(arg.dst) + "_" + argName(arg.src)
		default:
			name = "MOV_" + argName(arg.dst) + "_" + argName(arg.src)
		}
		set(CODE_LOAD+n, Instruction{Name: name, Op: OP_LOAD, Dst: arg.dst, Src: arg.src})
	}

	// Arithmetic and logic.
	binary := []struct {
		base int
		op   CodeOp
		name string
	}{
		{CODE_ADD, OP_ADD, "ADD"},
		{CODE_SUB, OP_SUB, "SUB"},
		{CODE_MUL, OP_MUL, "MUL"},
		{CODE_DIV, OP_DIV, "DIV"},
		{CODE_AND, OP_AND, "AND"},
		{CODE_OR, OP_OR, "OR"},
		{CODE_XOR, OP_XOR, "XOR"},
	}
	for _, family := range binary {
		for n, arg := range _binary_operands {
			name := family.name + "_" + argName(arg.dst) + "_" + argName(arg.src)
			set(family.base+n, Instruction{Name: name, Op: family.op, Dst: arg.dst, Src: arg.src})
		}
	}

	// Increment, decrement and clear.
	unary := []struct {
		base int
		op   CodeOp
		name string
	}{
		{CODE_INC, OP_INC, "INC"},
		{CODE_DEC, OP_DEC, "DEC"},
		{CODE_CLEAR, OP_CLEAR, "CLR"},
	}
	for _, family := range unary {
		for n, arg := range _unary_operands {
			name := family.name + "_" + argName(arg)
			set(family.base+n, Instruction{Name: name, Op: family.op, Dst: arg})
		}
	}

	// Control flow.
	for n, arg := range _target_operands {
		set(CODE_CALL+n, Instruction{Name: "CALL_" + argName(arg), Op: OP_CALL, Src: arg})
		set(CODE_JUMP+n, Instruction{Name: "JMP_" + argName(arg), Op: OP_JUMP, Src: arg})
		set(CODE_BRANCH+n, Instruction{Name: "BRA_" + argName(arg), Op: OP_BRANCH, Src: arg})
		for c, cond := range _conditions {
			code := c*len(_target_operands) + n
			set(CODE_JUMP_COND+code, Instruction{
				Name: "J" + condName(cond) + "_" + argName(arg),
				Op:   OP_JUMP, Src: arg, Cond: cond,
			})
			set(CODE_BRANCH_COND+code, Instruction{
				Name: "B" + condName(cond) + "_" + argName(arg),
				Op:   OP_BRANCH, Src: arg, Cond: cond,
			})
		}
	}
	set(CODE_RET, Instruction{Name: "RET", Op: OP_RET})

	// Stack.
	for n, arg := range []CodeArg{ARG_IMM, ARG_MEM_IMM, ARG_MEM_X, ARG_MEM_Y, ARG_X, ARG_Y} {
		set(CODE_PUSH+n, Instruction{Name: "PUSH_" + argName(arg), Op: OP_PUSH, Src: arg})
	}
	for n, arg := range []CodeArg{ARG_MEM_IMM, ARG_X, ARG_Y, ARG_MEM_X} {
		set(CODE_POP+n, Instruction{Name: "POP_" + argName(arg), Op: OP_POP, Dst: arg})
	}

	// I/O latch.
	for n, arg := range []CodeArg{ARG_X, ARG_Y, ARG_IMM, ARG_MEM_IMM, ARG_MEM_X} {
		set(CODE_OUT+n, Instruction{Name: "OUT_" + argName(arg), Op: OP_LOAD, Dst: ARG_IO, Src: arg})
	}
	for n, arg := range []CodeArg{ARG_X, ARG_Y, ARG_MEM_IMM, ARG_MEM_X, ARG_MEM_Y} {
		set(CODE_IN+n, Instruction{Name: "IN_" + argName(arg), Op: OP_LOAD, Dst: arg, Src: ARG_IO})
	}

	set(CODE_NOP, Instruction{Name: "NOP", Op: OP_NOP})
	set(CODE_HALT, Instruction{Name: "HALT", Op: OP_HALT})

	return
}
