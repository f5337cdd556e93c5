package cpu

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	// Decode errors, recovered by Tick.
	ErrUnimplemented = errors.New(f("unimplemented opcode"))

	// Fatal errors.
	ErrMemory     = errors.New(f("memory fault"))
	ErrArithmetic = errors.New(f("arithmetic fault"))
	ErrHalted     = errors.New(f("halted"))

	// Configuration errors.
	ErrMemorySize  = errors.New(f("memory size invalid"))
	ErrProgramSize = errors.New(f("program larger than memory"))
)

// ErrOpcode is an opcode with no instruction table entry.
type ErrOpcode byte

func (eo ErrOpcode) Error() string {
	return f("unimplemented opcode 0x%02x", byte(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrUnimplemented {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrAddress is an access outside of memory.
type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address 0x%03x out of range", uint16(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrMemory
}

// ErrDivide is a division by zero; the value is the dividend.
type ErrDivide byte

func (ed ErrDivide) Error() string {
	return f("divide 0x%02x by zero", byte(ed))
}

func (ed ErrDivide) Is(err error) bool {
	return err == ErrArithmetic
}

// ErrCycle locates a fatal error in the instruction stream.
type ErrCycle struct {
	Pc        byte
	Opcode    byte
	Immediate byte
	Err       error
}

func (err *ErrCycle) Error() string {
	return f("pc 0x%02x opcode 0x%02x %v imm 0x%02x: %v",
		err.Pc, err.Opcode, INSTRUCTION[err.Opcode].Name, err.Immediate, err.Err)
}

func (err *ErrCycle) Unwrap() error {
	return err.Err
}
