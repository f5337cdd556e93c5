package cpu

import (
	"iter"
)

// Program is a memory image loaded at address 0 on reset.
type Program struct {
	Data []byte
}

// BOOTSTRAP is the default program: load X, set the stack, then move X
// to Y through the stack.
var BOOTSTRAP = Program{
	Data: []byte{
		0x00, 0xaa, // LDX_IMM 0xaa
		0x08, 0xd0, // LDSP_IMM 0xd0
		0xe4, // PUSH_X
		0xe8, // POP_Y
	},
}

// Codes returns an iterator over the address and value of each program byte.
func (prog *Program) Codes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for n, value := range prog.Data {
			if !yield(uint16(n), value) {
				return
			}
		}
	}
}

// Binary returns a memory image of the given size: the program followed by
// MEMORY_SENTINEL fill.
func (prog *Program) Binary(size int) (mem Memory, err error) {
	if len(prog.Data) > size {
		err = ErrProgramSize
		return
	}

	mem = make(Memory, size)
	mem.Fill(MEMORY_SENTINEL)
	for addr, value := range prog.Codes() {
		mem[addr] = value
	}

	return
}
