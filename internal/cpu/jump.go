package cpu

import "github.com/thelolagemann/sm83/internal/types"

// condition returns true if the condition encoded in bits 3-4 of a
// conditional jump, call or return holds.
//
//	0 - NZ, Zero flag reset
//	1 - Z, Zero flag set
//	2 - NC, Carry flag reset
//	3 - C, Carry flag set
func (c *CPU) condition(instr uint8) bool {
	switch (instr >> 3) & 0x3 {
	case 0:
		return !c.Flag(types.FlagZero)
	case 1:
		return c.Flag(types.FlagZero)
	case 2:
		return !c.Flag(types.FlagCarry)
	default:
		return c.Flag(types.FlagCarry)
	}
}

// jumpAbsolute loads PC with address. The dispatcher leaves PC alone
// after an instruction that jumped.
//
//	JP nn
//	JP (HL)
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
	c.branched = true
}

// jumpRelative adds the signed 8-bit immediate to the address of the
// next instruction and jumps there.
//
//	JR n
func (c *CPU) jumpRelative() {
	c.jumpAbsolute(c.next + uint16(int8(c.n8)))
}

// call pushes the address of the next instruction onto the stack and
// jumps to address.
//
//	CALL nn
//	RST n
func (c *CPU) call(address uint16) {
	c.push(c.next)
	c.jumpAbsolute(address)
}

// ret pops the return address from the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.jumpAbsolute(c.pop())
}
