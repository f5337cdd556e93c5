// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

// ErrRuntime stops a run. Cycle counts from 1; Pc is where the cycle began.
type ErrRuntime struct {
	Cycle int
	Pc    byte
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("cycle %d pc 0x%02x: %v", err.Cycle, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
