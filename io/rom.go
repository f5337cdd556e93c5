package io

// Rom is a read-only device that yields Data in order.
type Rom struct {
	Data []byte

	readIndex int
}

var _ Device = (*Rom)(nil)

// Rewind restarts reading from the first byte.
func (rc *Rom) Rewind() {
	rc.readIndex = 0
}

func (rc *Rom) Receive() (value byte, ok bool, err error) {
	if rc.readIndex >= len(rc.Data) {
		return
	}

	value = rc.Data[rc.readIndex]
	rc.readIndex++
	ok = true
	return
}

func (rc *Rom) Send(value byte) error {
	return ErrDeviceReadOnly
}
