// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/cpu8/cpu"
	"github.com/ezrec/cpu8/internal"
	"github.com/ezrec/cpu8/io"
)

const (
	TRAP_QUEUE        = 8 // Pending trap requests.
	DEFAULT_FREQUENCY = 0 // Unthrottled.
)

var _emulator_defines = map[string]int{
	"TRAP_QUEUE":        TRAP_QUEUE,
	"DEFAULT_FREQUENCY": DEFAULT_FREQUENCY,
}

// Emulator state. CPU + I/O latch peripheral + run policy.
type Emulator struct {
	Verbose   bool          // If set, logs every cycle.
	*cpu.Cpu                // Reference to the CPU simulation.
	Program   *cpu.Program  // Memory image loaded on reset.
	Frequency int           // Cycles per second; 0 runs unthrottled.
	Device    io.Device     // Peripheral mapped onto the I/O latch, or nil.
	Monitor   cpu.TraceFunc // If set, called after every cycle.

	// TrapRequest is the only way for other goroutines to set the trap
	// flag; requests are applied between cycles.
	TrapRequest chan struct{}
}

// NewEmulator creates a new emulator with a memory of the given size,
// loaded with the bootstrap program.
func NewEmulator(size int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(size),
		Program:     &cpu.BOOTSTRAP,
		Frequency:   DEFAULT_FREQUENCY,
		TrapRequest: make(chan struct{}, TRAP_QUEUE),
	}

	emu.Cpu.Trace = emu.trace

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		io.Defines(),
	)
}

// Reset the emulator state: reload the program, rewind the device, and
// discard pending trap requests.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(emu.Program)
	if err != nil {
		return
	}

	if emu.Device != nil {
		emu.Device.Rewind()
	}

	for len(emu.TrapRequest) > 0 {
		<-emu.TrapRequest
	}

	if emu.Verbose {
		log.Printf("%v", f("emulator: reset, %d byte program", len(emu.Program.Data)))
	}

	return
}

// Trap requests the trap flag be set. Safe to call from any goroutine.
// Returns false if the request queue is full.
func (emu *Emulator) Trap() (ok bool) {
	select {
	case emu.TrapRequest <- struct{}{}:
		ok = true
	default:
	}

	return
}

// Halted returns true if the CPU is waiting for the trap flag.
func (emu *Emulator) Halted() bool {
	return emu.Cpu.State == cpu.STATE_HALTED
}

// Ticks returns the total cycles since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
// done is set when the program halted under the HALT_TERMINATE policy.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ticks := emu.Cpu.Ticks
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Cycle: ticks + 1, Pc: pc, Err: err}
		}
	}()

	emu.pollTrap()

	var in cpu.Instruction
	if !emu.Halted() {
		opcode, _, fetch_err := emu.Cpu.Fetch()
		if fetch_err == nil {
			in = cpu.INSTRUCTION[opcode]
		}
	}

	// Load the latch before the instruction reads it.
	if in.ReadsIo() && emu.Device != nil {
		var value byte
		var ok bool
		value, ok, err = emu.Device.Receive()
		if err != nil {
			return
		}
		if ok {
			emu.Cpu.Io = value
		}
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	// Deliver the latch after the instruction wrote it.
	if in.WritesIo() && emu.Device != nil && emu.Cpu.Ticks != ticks {
		err = emu.Device.Send(emu.Cpu.Io)
		if err != nil {
			return
		}
	}

	return
}

// Run ticks the emulator until the program terminates, a fatal error
// occurs, or ctx is done. While halted, Run waits for a trap request.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	var pace <-chan time.Time
	if emu.Frequency > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(emu.Frequency))
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if emu.Halted() && (emu.Cpu.Flags&cpu.FLAG_TRAP) == 0 {
			if emu.Verbose {
				log.Printf("%v", f("emulator: halted at pc 0x%02x, awaiting trap", emu.Cpu.Pc))
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-emu.TrapRequest:
				emu.Cpu.SetTrap()
			}
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-pace:
			}
		} else if err = ctx.Err(); err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// pollTrap applies pending trap requests.
func (emu *Emulator) pollTrap() {
	for {
		select {
		case <-emu.TrapRequest:
			emu.Cpu.SetTrap()
			continue
		default:
		}
		return
	}
}

// trace is the logging collaborator for the CPU.
func (emu *Emulator) trace(trace *cpu.Trace) {
	if trace.Err != nil {
		log.Printf("%v", f("%02x: %v", trace.Pc, trace.Err))
	}

	if emu.Verbose {
		log.Printf("%v", f("%d %02x: %02x %02x %-11v x:%02x y:%02x io:%02x sp:%02x pc:%02x %v",
			trace.Cycle, trace.Pc, trace.Opcode, trace.Immediate, trace.Name,
			trace.X, trace.Y, trace.Io, trace.Sp, trace.NextPc, trace.Flags))
	}

	if emu.Monitor != nil {
		emu.Monitor(trace)
	}
}
