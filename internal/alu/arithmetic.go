package alu

import "github.com/thelolagemann/sm83/internal/types"

// Add adds n to a.
//
//	ADD A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(a, n uint8) (uint8, uint8) {
	sum := uint16(a) + uint16(n)
	return uint8(sum), types.Flags(uint8(sum) == 0, false, a&0xF+n&0xF > 0xF, sum > 0xFF)
}

// AddCarry adds n plus the carry flag to a.
//
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddCarry(a, n, f uint8) (uint8, uint8) {
	carry := uint16(f&types.FlagCarry) >> 4
	sum := uint16(a) + uint16(n) + carry
	half := uint16(a&0xF)+uint16(n&0xF)+carry > 0xF
	return uint8(sum), types.Flags(uint8(sum) == 0, false, half, sum > 0xFF)
}

// Subtract subtracts n from a.
//
//	SUB n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Subtract(a, n uint8) (uint8, uint8) {
	computed := a - n
	return computed, types.Flags(computed == 0, true, n&0xF > a&0xF, n > a)
}

// SubtractCarry subtracts n plus the carry flag from a.
//
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func SubtractCarry(a, n, f uint8) (uint8, uint8) {
	carry := int(f&types.FlagCarry) >> 4
	diff := int(a) - int(n) - carry
	half := int(a&0xF)-int(n&0xF)-carry < 0
	return uint8(diff), types.Flags(uint8(diff) == 0, true, half, diff < 0)
}

// Compare compares n to a, setting the flags as Subtract would
// without keeping the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Compare(a, n uint8) uint8 {
	_, f := Subtract(a, n)
	return f
}

// Increment n by 1.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func Increment(n, f uint8) (uint8, uint8) {
	incremented := n + 1
	return incremented, types.Flags(incremented == 0, false, n&0xF == 0xF, f&types.FlagCarry != 0)
}

// Decrement n by 1.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func Decrement(n, f uint8) (uint8, uint8) {
	decremented := n - 1
	return decremented, types.Flags(decremented == 0, true, n&0xF == 0, f&types.FlagCarry != 0)
}

// AddWord adds the 16-bit value n to hl.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func AddWord(hl, n uint16, f uint8) (uint16, uint8) {
	sum := uint32(hl) + uint32(n)
	half := hl&0xFFF+n&0xFFF > 0xFFF
	return uint16(sum), types.Flags(f&types.FlagZero != 0, false, half, sum > 0xFFFF)
}

// AddSigned adds the signed 8-bit value e to sp. The carry flags are
// computed on the low byte as an unsigned addition.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func AddSigned(sp uint16, e uint8) (uint16, uint8) {
	computed := sp + uint16(int8(e))
	half := sp&0xF+uint16(e&0xF) > 0xF
	carry := sp&0xFF+uint16(e) > 0xFF
	return computed, types.Flags(false, false, half, carry)
}

// DecimalAdjust corrects a after a BCD addition or subtraction, using
// the N, H and C flags left by that operation.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func DecimalAdjust(a, f uint8) (uint8, uint8) {
	subtract := f&types.FlagSubtract != 0
	carry := f&types.FlagCarry != 0
	half := f&types.FlagHalfCarry != 0

	if !subtract {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if half || a&0xF > 0x9 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if half {
			a -= 0x06
		}
	}

	return a, types.Flags(a == 0, subtract, false, carry)
}
