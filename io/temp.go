package io

// Temporary is a bounded byte FIFO: bytes sent to it are received back in
// order. Call Rewind before first use to allocate the buffer.
type Temporary struct {
	Capacity int    // Capacity in bytes.
	Data     []byte // Ring storage.

	head  int // Index of the oldest byte.
	count int // Bytes queued.
}

var _ Device = (*Temporary)(nil)

// Rewind empties the buffer.
func (temp *Temporary) Rewind() {
	temp.head = 0
	temp.count = 0
	temp.Data = make([]byte, temp.Capacity)
}

// Len returns the number of queued bytes.
func (temp *Temporary) Len() int {
	return temp.count
}

// Receive dequeues the oldest byte.
func (temp *Temporary) Receive() (value byte, ok bool, err error) {
	if temp.count == 0 {
		return
	}

	value = temp.Data[temp.head]
	temp.head = (temp.head + 1) % len(temp.Data)
	temp.count--

	ok = true
	return
}

// Send enqueues a byte. Returns ErrDeviceFull when at capacity.
func (temp *Temporary) Send(value byte) (err error) {
	if temp.count >= len(temp.Data) {
		err = ErrDeviceFull
		return
	}

	temp.Data[(temp.head+temp.count)%len(temp.Data)] = value
	temp.count++

	return
}
