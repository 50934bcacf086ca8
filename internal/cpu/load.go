package cpu

import "github.com/thelolagemann/sm83/internal/types"

// push the given value onto the stack, high byte first, so that it is
// stored little-endian below the old SP.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func (c *CPU) push(value uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// pop a value off the stack.
//
//	POP nn
//	nn = AF, BC, DE, HL
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// storeIndirect stores A at the address held in the pair, then adds
// delta to the pair.
//
//	LD (BC), A
//	LD (DE), A
//	LD (HL+), A
//	LD (HL-), A
func (c *CPU) storeIndirect(pair types.Pair, delta uint16) {
	address := c.Pair(pair)
	c.writeByte(address, c.A)
	c.SetPair(pair, address+delta)
}

// loadIndirect loads A from the address held in the pair, then adds
// delta to the pair.
//
//	LD A, (BC)
//	LD A, (DE)
//	LD A, (HL+)
//	LD A, (HL-)
func (c *CPU) loadIndirect(pair types.Pair, delta uint16) {
	address := c.Pair(pair)
	c.A = c.readByte(address)
	c.SetPair(pair, address+delta)
}

// storeSP writes SP to the absolute address n16, low byte first. The
// second byte is bounds checked rather than wrapped to 0x0000.
//
//	LD (nn), SP
func (c *CPU) storeSP() {
	c.writeAt(int(c.n16), uint8(c.SP))
	c.writeAt(int(c.n16)+1, uint8(c.SP>>8))
}
