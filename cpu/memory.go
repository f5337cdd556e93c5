package cpu

const (
	MEMORY_SIZE     = 0xff  // Default number of memory cells.
	MEMORY_SIZE_MAX = 0x100 // Largest memory addressable by an 8-bit value.
	MEMORY_SENTINEL = 0xff  // Fill byte for memory outside the program image.
)

// Memory is the byte-addressable store shared by code, data and stack.
// Addresses at or beyond its length fault.
type Memory []byte

// Ref returns the mutable cell at addr.
func (mem Memory) Ref(addr uint16) (cell *byte, err error) {
	if int(addr) >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	cell = &mem[addr]
	return
}

// Read returns the byte at addr.
func (mem Memory) Read(addr uint16) (value byte, err error) {
	cell, err := mem.Ref(addr)
	if err != nil {
		return
	}

	value = *cell
	return
}

// Write stores value at addr.
func (mem Memory) Write(addr uint16, value byte) (err error) {
	cell, err := mem.Ref(addr)
	if err != nil {
		return
	}

	*cell = value
	return
}

// Fill sets every cell to value.
func (mem Memory) Fill(value byte) {
	for n := range mem {
		mem[n] = value
	}
}
