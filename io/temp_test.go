package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporary(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}
	temp.Rewind()

	_, ok, _ := temp.Receive()
	assert.False(ok)

	assert.NoError(temp.Send(1))
	assert.NoError(temp.Send(2))
	assert.NoError(temp.Send(3))
	assert.ErrorIs(temp.Send(4), ErrDeviceFull)
	assert.Equal(3, temp.Len())

	value, ok, _ := temp.Receive()
	assert.True(ok)
	assert.Equal(byte(1), value)

	// Wraps around the capacity boundary.
	assert.NoError(temp.Send(4))
	for _, expect := range []byte{2, 3, 4} {
		value, ok, _ = temp.Receive()
		assert.True(ok)
		assert.Equal(expect, value)
	}
	_, ok, _ = temp.Receive()
	assert.False(ok)
	assert.Equal(0, temp.Len())
}

func TestTemporary_Rewind(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	temp.Rewind()
	assert.NoError(temp.Send(1))

	temp.Rewind()
	assert.Equal(0, temp.Len())
	assert.Len(temp.Data, 2)

	_, ok, _ := temp.Receive()
	assert.False(ok)
}

func TestTemporary_Zero(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{}
	temp.Rewind()

	assert.ErrorIs(temp.Send(1), ErrDeviceFull)
	_, ok, _ := temp.Receive()
	assert.False(ok)
}
