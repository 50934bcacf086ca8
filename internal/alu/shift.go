package alu

import "github.com/thelolagemann/sm83/internal/types"

// ShiftLeft shifts n left by one bit, and sets the carry flag to the
// most significant bit of n.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func ShiftLeft(n uint8) (uint8, uint8) {
	computed := n << 1
	return computed, types.Flags(computed == 0, false, false, n&types.Bit7 != 0)
}

// ShiftRightArithmetic shifts n right by one bit and sets the carry flag
// to the least significant bit of n. The most significant bit does not
// change.
//
//	SRA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func ShiftRightArithmetic(n uint8) (uint8, uint8) {
	computed := n>>1 | n&types.Bit7
	return computed, types.Flags(computed == 0, false, false, n&types.Bit0 != 0)
}

// ShiftRightLogical shifts n right one bit and sets the carry flag to the
// least significant bit of n. The most significant bit is cleared.
//
//	SRL n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func ShiftRightLogical(n uint8) (uint8, uint8) {
	computed := n >> 1
	return computed, types.Flags(computed == 0, false, false, n&types.Bit0 != 0)
}

// Swap the upper and lower nibbles of n.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Swap(n uint8) (uint8, uint8) {
	computed := n<<4 | n>>4
	return computed, types.Flags(computed == 0, false, false, false)
}
