package types

// Flag is a bit mask selecting one of the flags held in the F register.
type Flag = uint8

const (
	FlagZero      Flag = Bit7 // Z - result was zero
	FlagSubtract  Flag = Bit6 // N - last operation was a subtraction (BCD)
	FlagHalfCarry Flag = Bit5 // H - carry from bit 3 (BCD)
	FlagCarry     Flag = Bit4 // C - carry from bit 7

	// FlagMask covers the bits of F that carry meaning.
	FlagMask = FlagZero | FlagSubtract | FlagHalfCarry | FlagCarry
)

// Flags encodes the four flag outcomes into an F register value.
func Flags(zero, subtract, halfCarry, carry bool) uint8 {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	return f
}
