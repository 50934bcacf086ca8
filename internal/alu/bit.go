package alu

import "github.com/thelolagemann/sm83/internal/types"

// TestBit tests bit b of value.
//
//	BIT b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of Register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func TestBit(value, b, f uint8) uint8 {
	return types.Flags(value&types.Bit(b) == 0, false, true, f&types.FlagCarry != 0)
}

// SetBit sets bit b of value. No flags are affected.
//
//	SET b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
func SetBit(value, b uint8) uint8 {
	return value | types.Bit(b)
}

// ResetBit clears bit b of value. No flags are affected.
//
//	RES b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
func ResetBit(value, b uint8) uint8 {
	return value &^ types.Bit(b)
}
