package cpu

// Push writes value at Sp, then increments Sp.
// On a fault, Sp is unchanged.
func (cpu *Cpu) Push(value byte) (err error) {
	err = cpu.Memory.Write(uint16(cpu.Sp), value)
	if err != nil {
		return
	}

	cpu.Sp++
	return
}

// Pop decrements Sp, then reads the value at Sp.
// On a fault, Sp is unchanged.
func (cpu *Cpu) Pop() (value byte, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Sp--
	return
}

// Peek returns the value Pop would return, without changing Sp.
func (cpu *Cpu) Peek() (value byte, err error) {
	return cpu.Memory.Read(uint16(cpu.Sp - 1))
}
