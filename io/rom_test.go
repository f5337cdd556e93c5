package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0xaa, 0xbb}}

	var got []byte
	for {
		value, ok, _ := rom.Receive()
		if !ok {
			break
		}
		got = append(got, value)
	}
	assert.Equal([]byte{0xaa, 0xbb}, got)

	assert.ErrorIs(rom.Send(0x01), ErrDeviceReadOnly)

	rom.Rewind()
	value, ok, _ := rom.Receive()
	assert.True(ok)
	assert.Equal(byte(0xaa), value)
}

func TestParseDeviceId(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		id   DeviceId
	}{
		{"none", DEVICE_NONE},
		{"tape", DEVICE_TAPE},
		{"temp", DEVICE_TEMP},
		{"rom", DEVICE_ROM},
	}

	for _, entry := range table {
		id, err := ParseDeviceId(entry.name)
		assert.NoError(err, entry.name)
		assert.Equal(entry.id, id, entry.name)
	}

	_, err := ParseDeviceId("drum")
	assert.Equal(ErrDeviceUnknown("drum"), err)
	assert.Equal("device 'drum' unknown", err.Error())

	defines := map[string]int{}
	for name, value := range Defines() {
		defines[name] = value
	}
	assert.Equal(int(DEVICE_ROM), defines["DEVICE_ROM"])
	assert.Len(defines, 4)
}
