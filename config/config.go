// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads run configurations for the cpu8 emulator.
//
// Configuration files are Starlark scripts. Every opcode mnemonic, flag
// bit, halt policy and device id is predeclared as an integer constant,
// so a program image can be written as a list of mnemonics and operands:
//
//	program = [LDX_IMM, 0x41, OUT_X, HALT]
//	halt = "terminate"
//	device = "tape"
package config

import (
	"fmt"
	"log"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/text/language"

	"github.com/ezrec/cpu8/cpu"
	"github.com/ezrec/cpu8/emulator"
	"github.com/ezrec/cpu8/io"
	"github.com/ezrec/cpu8/translate"
)

// Config is the run policy for an emulator.
type Config struct {
	Halt       cpu.HaltPolicy // Behaviour of HALT while the trap flag is clear.
	Frequency  int            // Cycles per second; 0 runs unthrottled.
	Trace      bool           // Log every cycle.
	Watch      bool           // Refresh a register dump on the console every cycle.
	MemorySize int            // Memory cells.
	Program    cpu.Program    // Memory image loaded on reset.
	Device     io.DeviceId    // Peripheral mapped onto the I/O latch.
	Locale     string         // Message locale; empty for the system locale.
}

// Default returns the default configuration: the bootstrap program in a
// MEMORY_SIZE memory, spinning on HALT, unthrottled and quiet.
func Default() (cfg Config) {
	cfg = Config{
		Halt:       cpu.HALT_SPIN,
		Frequency:  emulator.DEFAULT_FREQUENCY,
		MemorySize: cpu.MEMORY_SIZE,
		Program:    cpu.Program{Data: slices.Clone(cpu.BOOTSTRAP.Data)},
		Device:     io.DEVICE_NONE,
	}

	return
}

// Predeclared returns the constants visible to configuration scripts.
func Predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	emu := emulator.NewEmulator(cpu.MEMORY_SIZE)
	for name, value := range emu.Defines() {
		pred[name] = starlark.MakeInt(value)
	}

	return
}

// Load evaluates the Starlark configuration in src, over the defaults.
// src may be nil, in which case the file named filename is read.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, Predeclared())
	if err != nil {
		return
	}

	err = cfg.apply(globals)
	if err != nil {
		return
	}

	err = cfg.Validate()
	return
}

// apply sets each configuration field present in globals.
func (cfg *Config) apply(globals starlark.StringDict) (err error) {
	for name, value := range globals {
		switch name {
		case "program":
			cfg.Program.Data, err = asProgram(name, value)
		case "halt":
			cfg.Halt, err = asHaltPolicy(name, value)
		case "device":
			cfg.Device, err = asDeviceId(name, value)
		case "frequency":
			cfg.Frequency, err = asInt(name, value)
		case "memory_size":
			cfg.MemorySize, err = asInt(name, value)
		case "trace":
			cfg.Trace, err = asBool(name, value)
		case "watch":
			cfg.Watch, err = asBool(name, value)
		case "locale":
			cfg.Locale, err = asString(name, value)
		default:
			// Helper values and functions are ignored.
		}
		if err != nil {
			return
		}
	}

	return
}

// Validate checks the configuration ranges.
func (cfg *Config) Validate() (err error) {
	switch {
	case cfg.Halt != cpu.HALT_SPIN && cfg.Halt != cpu.HALT_TERMINATE:
		err = &ErrConfigValue{Name: "halt", Value: fmt.Sprint(int(cfg.Halt))}
	case cfg.Frequency < 0:
		err = &ErrConfigValue{Name: "frequency", Value: fmt.Sprint(cfg.Frequency)}
	case cfg.MemorySize < 1 || cfg.MemorySize > cpu.MEMORY_SIZE_MAX:
		err = &ErrConfigValue{Name: "memory_size", Value: fmt.Sprint(cfg.MemorySize)}
	case cfg.Device < io.DEVICE_NONE || cfg.Device > io.DEVICE_ROM:
		err = &ErrConfigValue{Name: "device", Value: fmt.Sprint(int(cfg.Device))}
	case len(cfg.Program.Data) > cfg.MemorySize:
		err = cpu.ErrProgramSize
	}
	if err != nil {
		return
	}

	if len(cfg.Locale) != 0 {
		_, err = language.Parse(cfg.Locale)
		if err != nil {
			err = &ErrConfigValue{Name: "locale", Value: cfg.Locale}
			return
		}
	}

	return
}

// ApplyLocale switches user-visible messages to the configured locale.
// An empty locale keeps the one detected from the environment.
func (cfg *Config) ApplyLocale() (err error) {
	if len(cfg.Locale) == 0 {
		return
	}

	err = translate.SetLocale(cfg.Locale)
	if err != nil {
		err = &ErrConfigValue{Name: "locale", Value: cfg.Locale}
	}

	return
}

// NewEmulator creates an emulator with this configuration. The tape is
// used when the device is DEVICE_TAPE, and a DEVICE_ROM reads back the
// program image.
func (cfg *Config) NewEmulator(tape *io.Tape) (emu *emulator.Emulator, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	emu = emulator.NewEmulator(cfg.MemorySize)
	emu.Verbose = cfg.Trace
	emu.Frequency = cfg.Frequency
	emu.Cpu.Halt = cfg.Halt
	emu.Program = &cfg.Program

	switch cfg.Device {
	case io.DEVICE_TAPE:
		if tape == nil {
			tape = &io.Tape{}
		}
		emu.Device = tape
	case io.DEVICE_TEMP:
		emu.Device = &io.Temporary{Capacity: cfg.MemorySize}
	case io.DEVICE_ROM:
		emu.Device = &io.Rom{Data: cfg.Program.Data}
	}

	err = emu.Reset()
	return
}

func typeError(name string, want string, value starlark.Value) error {
	return &ErrConfigType{Name: name, Want: want, Got: value.Type()}
}

func asInt(name string, value starlark.Value) (n int, err error) {
	st_int, ok := value.(starlark.Int)
	if !ok {
		err = typeError(name, "int", value)
		return
	}

	n64, ok := st_int.Int64()
	if !ok {
		err = &ErrConfigValue{Name: name, Value: st_int.String()}
		return
	}

	n = int(n64)
	return
}

func asBool(name string, value starlark.Value) (b bool, err error) {
	st_bool, ok := value.(starlark.Bool)
	if !ok {
		err = typeError(name, "bool", value)
		return
	}

	b = bool(st_bool)
	return
}

func asString(name string, value starlark.Value) (str string, err error) {
	str, ok := starlark.AsString(value)
	if !ok {
		err = typeError(name, "string", value)
	}

	return
}

// ParseHaltPolicy returns the policy with the given name.
func ParseHaltPolicy(str string) (policy cpu.HaltPolicy, err error) {
	for _, policy = range []cpu.HaltPolicy{cpu.HALT_SPIN, cpu.HALT_TERMINATE} {
		if policy.String() == str {
			return
		}
	}

	policy = cpu.HALT_SPIN
	err = &ErrConfigValue{Name: "halt", Value: str}
	return
}

// asHaltPolicy accepts a policy name, or a HALT_* constant.
func asHaltPolicy(name string, value starlark.Value) (policy cpu.HaltPolicy, err error) {
	if str, ok := starlark.AsString(value); ok {
		policy, err = ParseHaltPolicy(str)
		if err != nil {
			err = &ErrConfigValue{Name: name, Value: str}
		}
		return
	}

	n, err := asInt(name, value)
	if err != nil {
		err = typeError(name, "string or int", value)
		return
	}

	policy = cpu.HaltPolicy(n)
	return
}

// asDeviceId accepts a device name, or a DEVICE_* constant.
func asDeviceId(name string, value starlark.Value) (id io.DeviceId, err error) {
	if str, ok := starlark.AsString(value); ok {
		id, err = io.ParseDeviceId(str)
		if err != nil {
			err = &ErrConfigValue{Name: name, Value: str}
		}
		return
	}

	n, err := asInt(name, value)
	if err != nil {
		err = typeError(name, "string or int", value)
		return
	}

	id = io.DeviceId(n)
	return
}

// asProgram accepts bytes, or any iterable of integers in 0..255.
func asProgram(name string, value starlark.Value) (data []byte, err error) {
	if st_bytes, ok := value.(starlark.Bytes); ok {
		data = []byte(string(st_bytes))
		return
	}

	iterable, ok := value.(starlark.Iterable)
	if !ok {
		err = typeError(name, "bytes or list", value)
		return
	}

	iter := iterable.Iterate()
	defer iter.Done()

	data = []byte{}
	var item starlark.Value
	for iter.Next(&item) {
		var code int
		code, err = asInt(name, item)
		if err != nil {
			return
		}
		if code < 0 || code > 0xff {
			err = &ErrConfigValue{Name: name, Value: item.String()}
			return
		}
		data = append(data, byte(code))
	}

	return
}
