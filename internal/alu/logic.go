// Package alu implements the arithmetic, logical, rotate, shift and bit
// operations of the SM83. Every function is pure: it takes the operands
// (and the current flags, where some flags are left unaffected) and
// returns the result together with the new value of the F register.
package alu

import "github.com/thelolagemann/sm83/internal/types"

// And performs a bitwise AND operation on a and n.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func And(a, n uint8) (uint8, uint8) {
	computed := a & n
	return computed, types.Flags(computed == 0, false, true, false)
}

// Or performs a bitwise OR operation on a and n.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Or(a, n uint8) (uint8, uint8) {
	computed := a | n
	return computed, types.Flags(computed == 0, false, false, false)
}

// Xor performs a bitwise XOR operation on a and n.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func Xor(a, n uint8) (uint8, uint8) {
	computed := a ^ n
	return computed, types.Flags(computed == 0, false, false, false)
}

// Complement flips every bit of a.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func Complement(a, f uint8) (uint8, uint8) {
	return ^a, f&(types.FlagZero|types.FlagCarry) | types.FlagSubtract | types.FlagHalfCarry
}

// ComplementCarry toggles the carry flag.
//
//	CCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Complemented.
func ComplementCarry(f uint8) uint8 {
	return (f ^ types.FlagCarry) & (types.FlagZero | types.FlagCarry)
}

// SetCarry sets the carry flag.
//
//	SCF
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Reset.
//	C - Set.
func SetCarry(f uint8) uint8 {
	return f&types.FlagZero | types.FlagCarry
}
