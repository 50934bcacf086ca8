package alu

import "github.com/thelolagemann/sm83/internal/types"

// RotateLeftCarry rotates n left by one bit. Bit 7 is moved into both
// bit 0 and the carry flag.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func RotateLeftCarry(n uint8) (uint8, uint8) {
	computed := n<<1 | n>>7
	return computed, types.Flags(computed == 0, false, false, n&types.Bit7 != 0)
}

// RotateRightCarry rotates n right by one bit. Bit 0 is moved into both
// bit 7 and the carry flag.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func RotateRightCarry(n uint8) (uint8, uint8) {
	computed := n>>1 | n<<7
	return computed, types.Flags(computed == 0, false, false, n&types.Bit0 != 0)
}

// RotateLeft rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func RotateLeft(n, f uint8) (uint8, uint8) {
	computed := n<<1 | (f&types.FlagCarry)>>4
	return computed, types.Flags(computed == 0, false, false, n&types.Bit7 != 0)
}

// RotateRight rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func RotateRight(n, f uint8) (uint8, uint8) {
	computed := n>>1 | (f&types.FlagCarry)<<3
	return computed, types.Flags(computed == 0, false, false, n&types.Bit0 != 0)
}

// Accumulator drops the zero flag from the result of a rotate, giving
// the flags of the one byte RLCA, RRCA, RLA and RRA instructions.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Reset.
//	C - As computed by the rotate.
func Accumulator(a, f uint8) (uint8, uint8) {
	return a, f &^ types.FlagZero
}
