package types

// Register represents an SM83 Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// Pair identifies a pair of Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL. The stack
// pointer is a single 16-bit register, but it is accessed through the
// same view so that instructions can treat all five uniformly.
type Pair uint8

const (
	AF Pair = iota
	BC
	DE
	HL
	SP
)

var pairNames = [...]string{"AF", "BC", "DE", "HL", "SP"}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return "??"
}

// Registers represents the SM83 register file.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	// F holds the flags. Only the upper nibble is meaningful, the lower
	// nibble always reads as zero.
	F Register
	H Register
	L Register

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
}

// Pair returns the value of the given register pair as (high<<8)|low.
func (r *Registers) Pair(p Pair) uint16 {
	switch p {
	case AF:
		return join(r.A, r.F)
	case BC:
		return join(r.B, r.C)
	case DE:
		return join(r.D, r.E)
	case HL:
		return join(r.H, r.L)
	case SP:
		return r.SP
	}
	return 0
}

// SetPair writes the high byte of value to the high register of the
// pair, and the low byte to the low register. Writes to AF drop the
// lower nibble of F.
func (r *Registers) SetPair(p Pair, value uint16) {
	high, low := uint8(value>>8), uint8(value)
	switch p {
	case AF:
		r.A, r.F = high, low&FlagMask
	case BC:
		r.B, r.C = high, low
	case DE:
		r.D, r.E = high, low
	case HL:
		r.H, r.L = high, low
	case SP:
		r.SP = value
	}
}

// SetFlags replaces the F register, keeping the lower nibble clear.
func (r *Registers) SetFlags(f uint8) {
	r.F = f & FlagMask
}

// Flag returns true if every bit of the given flag mask is set in F.
func (r *Registers) Flag(flag Flag) bool {
	return r.F&flag == flag
}

func join(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}
