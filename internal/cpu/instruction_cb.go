package cpu

import (
	"github.com/thelolagemann/sm83/internal/alu"
	"github.com/thelolagemann/sm83/internal/opcode"
)

// shiftOperations are the rotate and shift operations of the extended
// opcodes 0x00 - 0x3F, in encoding order.
var shiftOperations = [8]func(n, f uint8) (uint8, uint8){
	func(n, _ uint8) (uint8, uint8) { return alu.RotateLeftCarry(n) },
	func(n, _ uint8) (uint8, uint8) { return alu.RotateRightCarry(n) },
	alu.RotateLeft,
	alu.RotateRight,
	func(n, _ uint8) (uint8, uint8) { return alu.ShiftLeft(n) },
	func(n, _ uint8) (uint8, uint8) { return alu.ShiftRightArithmetic(n) },
	func(n, _ uint8) (uint8, uint8) { return alu.Swap(n) },
	func(n, _ uint8) (uint8, uint8) { return alu.ShiftRightLogical(n) },
}

// defineCB sets the Instruction for opcode op of the extended space.
func defineCB(op uint8, fn Instruction) {
	instructionSet[opcode.Extended][op] = fn
}

func init() {
	// loop through each operand (B, C, D, E, H, L, (HL), A)
	for index := uint8(0); index < 8; index++ {
		index := index

		// 0x00 - 0x3F - RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
		for i, operation := range shiftOperations {
			operation := operation
			defineCB(uint8(i)<<3|index, func(c *CPU) {
				var result uint8
				result, c.F = operation(c.readOperand(index), c.F)
				c.writeOperand(index, result)
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b

			// 0x40 - 0x7F - BIT b, r
			defineCB(0x40|b<<3|index, func(c *CPU) {
				c.SetFlags(alu.TestBit(c.readOperand(index), b, c.F))
			})
			// 0x80 - 0xBF - RES b, r
			defineCB(0x80|b<<3|index, func(c *CPU) {
				c.writeOperand(index, alu.ResetBit(c.readOperand(index), b))
			})
			// 0xC0 - 0xFF - SET b, r
			defineCB(0xC0|b<<3|index, func(c *CPU) {
				c.writeOperand(index, alu.SetBit(c.readOperand(index), b))
			})
		}
	}
}
