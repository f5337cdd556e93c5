package io

import (
	"errors"

	"github.com/ezrec/cpu8/translate"
)

var f = translate.From

var (
	// Device errors
	ErrDeviceFull     = errors.New(f("device full"))
	ErrDeviceReadOnly = errors.New(f("device read-only"))
)

// ErrDeviceUnknown is an unrecognized device name.
type ErrDeviceUnknown string

func (err ErrDeviceUnknown) Error() string {
	return f("device '%v' unknown", string(err))
}
