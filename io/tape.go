package io

import (
	"errors"
	"io"
)

// Tape provides sequential I/O operations for reading and writing byte
// streams. Either side may be nil, in which case the tape has no input or
// discards output.
type Tape struct {
	Input  io.Reader
	Output io.Writer
}

var _ Device = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// Receive reads the next byte from the input stream.
// End of input is not an error; the tape simply has no more data.
func (tc *Tape) Receive() (value byte, ok bool, err error) {
	if tc.Input == nil {
		return
	}

	var one [1]byte
	n, err := tc.Input.Read(one[:])
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if n != 1 {
		return
	}

	// A byte read alongside an error is still delivered.
	err = nil

	value = one[0]
	ok = true
	return
}

// Send writes a byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = tc.Output.Write([]byte{value})
	return
}
