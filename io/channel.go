// Package io provides peripherals that the emulator can map onto the
// CPU's I/O latch. It includes sequential I/O backed by a reader and
// writer (Tape), a bounded loopback FIFO (Temporary), and read-only
// data (Rom).
package io

import (
	"iter"
	"maps"
)

// Device defines the interface for all I/O latch peripherals.
// Devices transfer one byte per latch access.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Receive returns the next byte from the device, if one is available.
	// err is set only for a device failure, never for a lack of data.
	Receive() (value byte, ok bool, err error)
	// Send writes a single byte to the device.
	Send(value byte) error
}

// DeviceId selects a peripheral by name.
type DeviceId int

//go:generate go tool stringer -linecomment -type=DeviceId
const (
	DEVICE_NONE = DeviceId(0) // none
	DEVICE_TAPE = DeviceId(1) // tape
	DEVICE_TEMP = DeviceId(2) // temp
	DEVICE_ROM  = DeviceId(3) // rom
)

var _io_defines = map[string]int{
	"DEVICE_NONE": int(DEVICE_NONE),
	"DEVICE_TAPE": int(DEVICE_TAPE),
	"DEVICE_TEMP": int(DEVICE_TEMP),
	"DEVICE_ROM":  int(DEVICE_ROM),
}

// Defines returns an iter of the device id defines.
func Defines() iter.Seq2[string, int] {
	return maps.All(_io_defines)
}

// ParseDeviceId returns the DeviceId for a device name.
func ParseDeviceId(name string) (id DeviceId, err error) {
	for id = DEVICE_NONE; id <= DEVICE_ROM; id++ {
		if id.String() == name {
			return
		}
	}

	err = ErrDeviceUnknown(name)
	return
}
