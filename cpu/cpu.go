package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// CpuState is the cycle state machine.
type CpuState int

//go:generate go tool stringer -linecomment -type=CpuState,HaltPolicy
const (
	STATE_RUNNING = CpuState(0) // running
	STATE_HALTED  = CpuState(1) // halted
)

// HaltPolicy selects what HALT does while the trap flag is clear.
type HaltPolicy int

const (
	HALT_SPIN      = HaltPolicy(0) // spin
	HALT_TERMINATE = HaltPolicy(1) // terminate
)

var _cpu_defines = map[string]int{
	"FLAG_OVERFLOW":   int(FLAG_OVERFLOW),
	"FLAG_ZERO":       int(FLAG_ZERO),
	"FLAG_CARRY":      int(FLAG_CARRY),
	"FLAG_TRAP":       int(FLAG_TRAP),
	"HALT_SPIN":       int(HALT_SPIN),
	"HALT_TERMINATE":  int(HALT_TERMINATE),
	"MEMORY_SIZE":     MEMORY_SIZE,
	"MEMORY_SIZE_MAX": MEMORY_SIZE_MAX,
	"MEMORY_SENTINEL": MEMORY_SENTINEL,
}

// Trace is the per-cycle event handed to the logging collaborator.
type Trace struct {
	Cycle     int    // Cycle number, from 1.
	Pc        byte   // Address of the executed instruction.
	Opcode    byte   // Fetched opcode.
	Immediate byte   // Fetched immediate operand.
	Name      string // Mnemonic, empty if unimplemented.

	X      byte
	Y      byte
	Io     byte
	Sp     byte
	NextPc byte
	Flags  Flags
	State  CpuState

	Err error // Recovered decode error, if any.
}

// TraceFunc receives a Trace after each cycle.
type TraceFunc func(trace *Trace)

// Cpu is the simulation context for the processor.
type Cpu struct {
	Verbose bool       // Set to enable verbose logging.
	Halt    HaltPolicy // Spin on HALT until the trap flag is set, or terminate.
	Trace   TraceFunc  // If set, called after each cycle.

	X      byte     // General purpose register.
	Y      byte     // General purpose register.
	Io     byte     // External I/O latch.
	Sp     byte     // Stack pointer.
	Pc     byte     // Program counter.
	Flags  Flags    // Status flags.
	State  CpuState // Cycle state.
	Memory Memory   // Code, data and stack.

	Ticks int // Completed cycles since reset.
}

// NewCpu creates a new CPU with a specifically sized memory.
// Panics if size is not in 1..MEMORY_SIZE_MAX.
func NewCpu(size int) (cpu *Cpu) {
	if size < 1 || size > MEMORY_SIZE_MAX {
		panic(ErrMemorySize)
	}

	cpu = &Cpu{
		Memory: make(Memory, size),
	}
	cpu.Memory.Fill(MEMORY_SENTINEL)

	return
}

// Defines for the cpu: opcode mnemonics, flag bits, policies and sizes.
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for name, value := range maps.All(_cpu_defines) {
			if !yield(name, value) {
				return
			}
		}
		for name, code := range Mnemonics() {
			if !yield(name, code) {
				return
			}
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "x", "y", "io", "sp", "flags", "state", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X", cpu.Y)
		case "io":
			strval = fmt.Sprintf("%02X", cpu.Io)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Sp)
			if top, err := cpu.Peek(); err == nil {
				strval += fmt.Sprintf(" [%02X]", top)
			} else {
				strval += " [--]"
			}
		case "flags":
			strval = cpu.Flags.String()
		case "state":
			strval = cpu.State.String()
		case "ticks":
			strval = f("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Fills memory with MEMORY_SENTINEL and loads the program at address 0.
// - Clears the registers and flags.
// - Zeros the cycle counter.
func (cpu *Cpu) Reset(prog *Program) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	mem, err := prog.Binary(len(cpu.Memory))
	if err != nil {
		return
	}
	copy(cpu.Memory, mem)

	cpu.X = 0
	cpu.Y = 0
	cpu.Io = 0
	cpu.Sp = 0
	cpu.Pc = 0
	cpu.Flags = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: loaded %d byte program", len(prog.Data))
	}

	return
}

// SetTrap sets the trap flag, waking a halted CPU on its next Tick.
func (cpu *Cpu) SetTrap() {
	cpu.Flags |= FLAG_TRAP
}

// ClearTrap clears the trap flag.
func (cpu *Cpu) ClearTrap() {
	cpu.Flags &^= FLAG_TRAP
}

// Fetch reads the instruction word at Pc.
func (cpu *Cpu) Fetch() (opcode byte, imm byte, err error) {
	opcode, err = cpu.Memory.Read(uint16(cpu.Pc))
	if err != nil {
		return
	}

	imm, err = cpu.Memory.Read(uint16(cpu.Pc) + 1)
	return
}

// Tick executes a single CPU instruction cycle.
//
// A halted CPU polls the trap flag: nothing happens until it is set, then
// the HALT completes. Unimplemented opcodes are reported to Trace and
// skipped. All other errors are fatal, and returned as *ErrCycle, except
// for ErrHalted.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State == STATE_HALTED {
		if (cpu.Flags & FLAG_TRAP) == 0 {
			return
		}
		pc := cpu.Pc
		cpu.State = STATE_RUNNING
		cpu.Pc++
		cpu.Ticks++
		cpu.trace(pc, CODE_HALT, 0, nil)
		return
	}

	pc := cpu.Pc

	opcode, imm, err := cpu.Fetch()
	if err != nil {
		err = &ErrCycle{Pc: pc, Opcode: opcode, Immediate: imm, Err: err}
		return
	}

	err = cpu.Execute(opcode, imm)

	var recovered error
	switch {
	case err == nil:
	case errors.Is(err, ErrUnimplemented):
		recovered = err
		err = nil
	default:
		return
	}

	if cpu.State == STATE_HALTED {
		// Not complete until the trap flag is set.
		return
	}

	cpu.Ticks++
	cpu.trace(pc, opcode, imm, recovered)

	return
}

// trace reports a completed cycle.
func (cpu *Cpu) trace(pc byte, opcode byte, imm byte, recovered error) {
	if cpu.Trace == nil {
		return
	}

	cpu.Trace(&Trace{
		Cycle:     cpu.Ticks,
		Pc:        pc,
		Opcode:    opcode,
		Immediate: imm,
		Name:      INSTRUCTION[opcode].Name,
		X:         cpu.X,
		Y:         cpu.Y,
		Io:        cpu.Io,
		Sp:        cpu.Sp,
		NextPc:    cpu.Pc,
		Flags:     cpu.Flags,
		State:     cpu.State,
		Err:       recovered,
	})
}

// Execute executes a single fetched instruction.
//
// An unimplemented opcode advances Pc by one and returns ErrOpcode.
// Any other error leaves Pc unchanged and is returned as *ErrCycle.
func (cpu *Cpu) Execute(opcode byte, imm byte) (err error) {
	in := INSTRUCTION[opcode]

	if !in.Defined() {
		cpu.Pc++
		err = ErrOpcode(opcode)
		return
	}

	defer func() {
		if err != nil && !errors.Is(err, ErrHalted) {
			err = &ErrCycle{Pc: cpu.Pc, Opcode: opcode, Immediate: imm, Err: err}
		}
	}()

	next_pc := cpu.Pc + byte(in.Width())
	jumped := false

	switch in.Op {
	case OP_LOAD:
		var dst, src *byte
		dst, err = cpu.ref(in.Dst, imm)
		if err != nil {
			return
		}
		src, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		*dst = *src
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_AND, OP_OR, OP_XOR:
		var dst, src *byte
		dst, err = cpu.ref(in.Dst, imm)
		if err != nil {
			return
		}
		src, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		var t uint16
		t, err = doAlu(in.Op, uint16(*dst), uint16(*src))
		if err != nil {
			return
		}
		*dst = byte(t)
		cpu.Flags = ApplyFlags(cpu.Flags, t)
	case OP_INC, OP_DEC, OP_CLEAR:
		var dst *byte
		dst, err = cpu.ref(in.Dst, imm)
		if err != nil {
			return
		}
		a := uint16(*dst)
		var t uint16
		switch in.Op {
		case OP_INC:
			t = a + 1
		case OP_DEC:
			t = a - 1
		case OP_CLEAR:
			t = a ^ a
		}
		*dst = byte(t)
		cpu.Flags = ApplyFlags(cpu.Flags, t)
	case OP_CALL:
		var target *byte
		target, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		to := *target
		err = cpu.Push(next_pc)
		if err != nil {
			return
		}
		next_pc = to
		jumped = true
	case OP_RET:
		next_pc, err = cpu.Pop()
		if err != nil {
			return
		}
		jumped = true
	case OP_JUMP:
		if !cpu.Flags.Test(in.Cond) {
			break
		}
		var target *byte
		target, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		next_pc = *target
		jumped = true
	case OP_BRANCH:
		if !cpu.Flags.Test(in.Cond) {
			break
		}
		var offset *byte
		offset, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		t := uint16(int(cpu.Pc) + int(int8(*offset)))
		cpu.Flags = ApplyFlags(cpu.Flags, t)
		next_pc = byte(t)
		jumped = true
	case OP_PUSH:
		var src *byte
		src, err = cpu.ref(in.Src, imm)
		if err != nil {
			return
		}
		err = cpu.Push(*src)
		if err != nil {
			return
		}
	case OP_POP:
		var dst *byte
		dst, err = cpu.ref(in.Dst, imm)
		if err != nil {
			return
		}
		var value byte
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		*dst = value
	case OP_NOP:
		// pass
	case OP_HALT:
		if cpu.Halt == HALT_TERMINATE {
			err = ErrHalted
			return
		}
		if (cpu.Flags & FLAG_TRAP) == 0 {
			// Don't advance to next PC.
			cpu.State = STATE_HALTED
			return
		}
	}

	if jumped {
		cpu.Pc = next_pc
		return
	}

	cpu.Pc += byte(in.Width())

	return
}

// ref returns the cell for an operand. Immediate operands are copied to a
// fresh cell, so writes to them are discarded.
func (cpu *Cpu) ref(arg CodeArg, imm byte) (cell *byte, err error) {
	switch arg {
	case ARG_IMM:
		value := imm
		cell = &value
	case ARG_X:
		cell = &cpu.X
	case ARG_Y:
		cell = &cpu.Y
	case ARG_SP:
		cell = &cpu.Sp
	case ARG_IO:
		cell = &cpu.Io
	case ARG_MEM_IMM:
		cell, err = cpu.Memory.Ref(uint16(imm))
	case ARG_MEM_X:
		cell, err = cpu.Memory.Ref(uint16(cpu.X))
	case ARG_MEM_Y:
		cell, err = cpu.Memory.Ref(uint16(cpu.Y))
	default:
		panic("unknown operand")
	}

	return
}

// doAlu performs the requested ALU action, and returns the untruncated result.
func doAlu(op CodeOp, a uint16, b uint16) (t uint16, err error) {
	switch op {
	case OP_ADD:
		t = a + b
	case OP_SUB:
		t = a - b
	case OP_MUL:
		t = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivide(a)
			return
		}
		t = a / b
	case OP_AND:
		t = a & b
	case OP_OR:
		t = a | b
	case OP_XOR:
		t = a ^ b
	}

	return
}
