package cpu

import (
	"strings"
)

// Flags is the processor status byte.
type Flags byte

const (
	FLAG_OVERFLOW = Flags(0b0000_0001) // Result did not fit in 8 bits.
	FLAG_ZERO     = Flags(0b0000_0010) // Low 8 bits of the result are zero.
	FLAG_CARRY    = Flags(0b0000_0100) // Bit 8 of the result is set.
	FLAG_TRAP     = Flags(0b1000_0000) // Set by an external agent; wakes HALT.

	FLAG_RESULT_MASK = FLAG_OVERFLOW | FLAG_ZERO | FLAG_CARRY
)

// ApplyFlags returns flags updated from the 16-bit pre-truncation result
// of an 8-bit operation. Bits outside FLAG_RESULT_MASK are preserved.
func ApplyFlags(flags Flags, t uint16) Flags {
	flags &^= FLAG_RESULT_MASK

	if (t & 0xff00) != 0 {
		flags |= FLAG_OVERFLOW
	}
	if (t & 0x0100) != 0 {
		flags |= FLAG_CARRY
	}
	if (t & 0x00ff) == 0 {
		flags |= FLAG_ZERO
	}

	return flags
}

// Test evaluates a branch condition.
//
// No condition other than COND_ALWAYS holds while the flags byte is zero,
// including the negated ones.
func (flags Flags) Test(cond CodeCond) bool {
	if cond == COND_ALWAYS {
		return true
	}

	if flags == 0 {
		return false
	}

	switch cond {
	case COND_O:
		return (flags & FLAG_OVERFLOW) != 0
	case COND_NO:
		return (flags & FLAG_OVERFLOW) == 0
	case COND_Z:
		return (flags & FLAG_ZERO) != 0
	case COND_NZ:
		return (flags & FLAG_ZERO) == 0
	case COND_T:
		return (flags & FLAG_TRAP) != 0
	case COND_NT:
		return (flags & FLAG_TRAP) == 0
	case COND_C:
		return (flags & FLAG_CARRY) != 0
	case COND_NC:
		return (flags & FLAG_CARRY) == 0
	}

	return false
}

// String returns the flags as "tczo", upper case when set.
func (flags Flags) String() string {
	s := strings.Builder{}

	for _, bit := range []struct {
		flag Flags
		name rune
	}{
		{FLAG_TRAP, 't'},
		{FLAG_CARRY, 'c'},
		{FLAG_ZERO, 'z'},
		{FLAG_OVERFLOW, 'o'},
	} {
		if (flags & bit.flag) != 0 {
			s.WriteRune(bit.name - 'a' + 'A')
		} else {
			s.WriteRune(bit.name)
		}
	}

	return s.String()
}
