// Package cpu implements the processor core of the cpu8 system.
//
// The CPU consists of two 8-bit general-purpose registers (X, Y), an 8-bit
// I/O latch, a stack pointer and a program counter that both index a single
// byte-addressable memory, and a flags byte recording Overflow, Zero, Carry
// and Trap.
//
// Each instruction is fetched as a two byte word (opcode, immediate) and
// dispatched through a 256 entry instruction table. The program counter
// advances by the width of the instruction (1 or 2 bytes), unless the
// instruction assigned it.
package cpu
