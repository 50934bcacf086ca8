package cpu

import (
	"github.com/thelolagemann/sm83/internal/alu"
	"github.com/thelolagemann/sm83/internal/opcode"
	"github.com/thelolagemann/sm83/internal/types"
)

// Instruction is the action of a single opcode. The dispatcher has
// already fetched the immediates and looked up the length and cost.
type Instruction func(c *CPU)

// instructionSet maps an opcode space and opcode to its Instruction.
var instructionSet [2][256]Instruction

// define sets the Instruction for opcode op of the base space.
func define(op uint8, fn Instruction) {
	instructionSet[opcode.Base][op] = fn
}

// pairs is the register pair encoded in bits 4-5 of the 16-bit load,
// increment, decrement and add opcodes.
var pairs = [4]types.Pair{types.BC, types.DE, types.HL, types.SP}

// stackPairs is the register pair encoded in bits 4-5 of PUSH and POP.
var stackPairs = [4]types.Pair{types.BC, types.DE, types.HL, types.AF}

// incDec is the amount added to HL by LD (HL+) and LD (HL-).
var incDec = [2]uint16{0x0001, 0xFFFF}

func init() {
	generateLoadInstructions()
	generateArithmeticInstructions()
	generatePairInstructions()
	generateFlowInstructions()

	define(0x00, func(c *CPU) {}) // NOP
	define(0x02, func(c *CPU) { c.storeIndirect(types.BC, 0) })
	define(0x0A, func(c *CPU) { c.loadIndirect(types.BC, 0) })
	define(0x12, func(c *CPU) { c.storeIndirect(types.DE, 0) })
	define(0x1A, func(c *CPU) { c.loadIndirect(types.DE, 0) })
	define(0x22, func(c *CPU) { c.storeIndirect(types.HL, incDec[0]) })
	define(0x2A, func(c *CPU) { c.loadIndirect(types.HL, incDec[0]) })
	define(0x32, func(c *CPU) { c.storeIndirect(types.HL, incDec[1]) })
	define(0x3A, func(c *CPU) { c.loadIndirect(types.HL, incDec[1]) })
	define(0x08, func(c *CPU) { c.storeSP() })

	define(0x07, func(c *CPU) { // RLCA
		c.A, c.F = alu.Accumulator(alu.RotateLeftCarry(c.A))
	})
	define(0x0F, func(c *CPU) { // RRCA
		c.A, c.F = alu.Accumulator(alu.RotateRightCarry(c.A))
	})
	define(0x17, func(c *CPU) { // RLA
		c.A, c.F = alu.Accumulator(alu.RotateLeft(c.A, c.F))
	})
	define(0x1F, func(c *CPU) { // RRA
		c.A, c.F = alu.Accumulator(alu.RotateRight(c.A, c.F))
	})
	define(0x27, func(c *CPU) { // DAA
		c.A, c.F = alu.DecimalAdjust(c.A, c.F)
	})
	define(0x2F, func(c *CPU) { // CPL
		c.A, c.F = alu.Complement(c.A, c.F)
	})
	define(0x37, func(c *CPU) { c.SetFlags(alu.SetCarry(c.F)) })        // SCF
	define(0x3F, func(c *CPU) { c.SetFlags(alu.ComplementCarry(c.F)) }) // CCF

	define(0x10, func(c *CPU) { c.state = Stopped }) // STOP
	define(0x76, func(c *CPU) { c.state = Halted })  // HALT
	define(0xF3, func(c *CPU) { c.IME = false })     // DI
	define(0xFB, func(c *CPU) { c.IME = true })      // EI

	// high memory page 0xFF00 - 0xFFFF
	define(0xE0, func(c *CPU) { c.writeByte(0xFF00+uint16(c.n8), c.A) })
	define(0xF0, func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.n8)) })
	define(0xE2, func(c *CPU) { c.writeByte(0xFF00+uint16(c.C), c.A) })
	define(0xF2, func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.C)) })

	define(0xEA, func(c *CPU) { c.writeByte(c.n16, c.A) }) // LD (a16), A
	define(0xFA, func(c *CPU) { c.A = c.readByte(c.n16) }) // LD A, (a16)

	define(0xE8, func(c *CPU) { // ADD SP, r8
		c.SP, c.F = alu.AddSigned(c.SP, c.n8)
	})
	define(0xF8, func(c *CPU) { // LD HL, SP+r8
		var hl uint16
		hl, c.F = alu.AddSigned(c.SP, c.n8)
		c.SetPair(types.HL, hl)
	})
	define(0xF9, func(c *CPU) { c.SP = c.Pair(types.HL) }) // LD SP, HL
}

// generateLoadInstructions defines LD r, r' (0x40 - 0x7F) and
// LD r, d8 (0x06, 0x0E ... 0x3E).
func generateLoadInstructions() {
	for dst := uint8(0); dst < 8; dst++ {
		dst := dst
		define(0x06|dst<<3, func(c *CPU) {
			c.writeOperand(dst, c.n8)
		})

		for src := uint8(0); src < 8; src++ {
			src := src
			if dst == opcode.HL && src == opcode.HL {
				continue // HALT
			}
			define(0x40|dst<<3|src, func(c *CPU) {
				c.writeOperand(dst, c.readOperand(src))
			})
		}
	}
}

// arithmetic applies operation (ADD, ADC, SUB, SBC, AND, XOR, OR, CP)
// to A and n.
func (c *CPU) arithmetic(operation, n uint8) {
	switch operation {
	case 0:
		c.A, c.F = alu.Add(c.A, n)
	case 1:
		c.A, c.F = alu.AddCarry(c.A, n, c.F)
	case 2:
		c.A, c.F = alu.Subtract(c.A, n)
	case 3:
		c.A, c.F = alu.SubtractCarry(c.A, n, c.F)
	case 4:
		c.A, c.F = alu.And(c.A, n)
	case 5:
		c.A, c.F = alu.Xor(c.A, n)
	case 6:
		c.A, c.F = alu.Or(c.A, n)
	case 7:
		c.F = alu.Compare(c.A, n)
	}
}

// generateArithmeticInstructions defines the 8-bit ALU operations on
// registers and (HL) (0x80 - 0xBF), on immediates (0xC6, 0xCE ... 0xFE)
// and INC/DEC r (0x04, 0x05 ... 0x3D).
func generateArithmeticInstructions() {
	for operation := uint8(0); operation < 8; operation++ {
		operation := operation
		define(0xC6|operation<<3, func(c *CPU) {
			c.arithmetic(operation, c.n8)
		})

		for src := uint8(0); src < 8; src++ {
			src := src
			define(0x80|operation<<3|src, func(c *CPU) {
				c.arithmetic(operation, c.readOperand(src))
			})
		}
	}

	for index := uint8(0); index < 8; index++ {
		index := index
		define(0x04|index<<3, func(c *CPU) {
			var result uint8
			result, c.F = alu.Increment(c.readOperand(index), c.F)
			c.writeOperand(index, result)
		})
		define(0x05|index<<3, func(c *CPU) {
			var result uint8
			result, c.F = alu.Decrement(c.readOperand(index), c.F)
			c.writeOperand(index, result)
		})
	}
}

// generatePairInstructions defines the 16-bit loads, INC/DEC rr,
// ADD HL, rr and PUSH/POP.
func generatePairInstructions() {
	for i, pair := range pairs {
		pair, row := pair, uint8(i)<<4
		define(0x01|row, func(c *CPU) { // LD rr, d16
			c.SetPair(pair, c.n16)
		})
		define(0x03|row, func(c *CPU) { // INC rr
			c.SetPair(pair, c.Pair(pair)+1)
		})
		define(0x0B|row, func(c *CPU) { // DEC rr
			c.SetPair(pair, c.Pair(pair)-1)
		})
		define(0x09|row, func(c *CPU) { // ADD HL, rr
			var hl uint16
			hl, c.F = alu.AddWord(c.Pair(types.HL), c.Pair(pair), c.F)
			c.SetPair(types.HL, hl)
		})
	}

	for i, pair := range stackPairs {
		pair, row := pair, uint8(i)<<4
		define(0xC1|row, func(c *CPU) { // POP rr
			c.SetPair(pair, c.pop())
		})
		define(0xC5|row, func(c *CPU) { // PUSH rr
			c.push(c.Pair(pair))
		})
	}
}

// generateFlowInstructions defines the jumps, calls, returns and restarts.
func generateFlowInstructions() {
	define(0x18, func(c *CPU) { c.jumpRelative() })      // JR r8
	define(0xC3, func(c *CPU) { c.jumpAbsolute(c.n16) }) // JP a16
	define(0xCD, func(c *CPU) { c.call(c.n16) })         // CALL a16
	define(0xC9, func(c *CPU) { c.ret() })               // RET

	define(0xE9, func(c *CPU) { // JP HL
		c.jumpAbsolute(c.Pair(types.HL))
	})
	define(0xD9, func(c *CPU) { // RETI
		c.ret()
		c.IME = true
	})

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc << 3
		define(0x20|cc, func(c *CPU) { // JR cc, r8
			if c.condition(cc) {
				c.jumpRelative()
			}
		})
		define(0xC2|cc, func(c *CPU) { // JP cc, a16
			if c.condition(cc) {
				c.jumpAbsolute(c.n16)
			}
		})
		define(0xC4|cc, func(c *CPU) { // CALL cc, a16
			if c.condition(cc) {
				c.call(c.n16)
			}
		})
		define(0xC0|cc, func(c *CPU) { // RET cc
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	for t := uint8(0); t < 8; t++ {
		target := uint16(t) << 3
		define(0xC7|uint8(target), func(c *CPU) { // RST t
			c.call(target)
		})
	}
}
