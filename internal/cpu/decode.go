package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/opcode"
	"github.com/thelolagemann/sm83/internal/types"
)

// execute fetches, decodes and executes the instruction at PC.
func (c *CPU) execute() error {
	c.lastCycles = 0
	address := c.PC

	instr, err := c.bus.Read(int(address))
	if err != nil {
		return err
	}

	space := opcode.Base
	operands := int(address) + 1
	if instr == opcode.Prefix {
		// the real opcode follows the prefix
		if instr, err = c.bus.Read(operands); err != nil {
			return err
		}
		space = opcode.Extended
		operands++
	}

	desc, ok := opcode.Lookup(space, instr)
	fn := instructionSet[space][instr]
	if !ok || fn == nil {
		err := &UnimplementedOpcodeError{Opcode: instr, Extended: space == opcode.Extended, Address: address}
		c.log.Errorf("%v", err)
		return err
	}

	// the two bytes following the opcode are fetched for every
	// instruction, but only those within its length have to exist
	n1, err1 := c.bus.Read(operands)
	n2, err2 := c.bus.Read(operands + 1)
	immediates := int(desc.Length) - (operands - int(address))
	if immediates >= 1 && err1 != nil {
		return err1
	}
	if immediates >= 2 && err2 != nil {
		return err2
	}

	c.n8 = n1
	c.n16 = c.order.Uint16([]byte{n1, n2})
	c.next = address + uint16(desc.Length)
	c.branched = false
	c.err = nil

	if c.Debug {
		c.log.Debugf("%04X  %-18s %s", address, c.mnemonic(desc, immediates), c.registerDump())
	}

	fn(c)
	if c.err != nil {
		return c.err
	}

	cycles := desc.Cycles
	if c.branched {
		if desc.BranchCycles != 0 {
			cycles = desc.BranchCycles
		}
	} else {
		c.PC = c.next
	}
	c.account(cycles)

	return nil
}

// mnemonic appends the immediate operands of an instruction.
func (c *CPU) mnemonic(desc opcode.Descriptor, immediates int) string {
	switch immediates {
	case 1:
		return fmt.Sprintf("%s [%02X]", desc.Mnemonic, c.n8)
	case 2:
		return fmt.Sprintf("%s [%04X]", desc.Mnemonic, c.n16)
	}
	return desc.Mnemonic
}

func (c *CPU) registerDump() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
}

// readAt reads a byte from the bus, recording the first failed access
// of the instruction.
func (c *CPU) readAt(address int) uint8 {
	if c.err != nil {
		return 0
	}
	value, err := c.bus.Read(address)
	if err != nil {
		c.err = err
		return 0
	}
	return value
}

// writeAt writes a byte to the bus, recording the first failed access
// of the instruction. Nothing is written once an access has failed.
func (c *CPU) writeAt(address int, value uint8) {
	if c.err != nil {
		return
	}
	if err := c.bus.Write(address, value); err != nil {
		c.err = err
	}
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.readAt(int(addr))
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.writeAt(int(addr), value)
}

// registerIndex returns a Register pointer for the given operand index.
func (c *CPU) registerIndex(index uint8) *types.Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// readOperand returns the operand encoded by index, B, C, D, E, H, L,
// (HL) or A.
func (c *CPU) readOperand(index uint8) uint8 {
	if index == opcode.HL {
		return c.readByte(c.Pair(types.HL))
	}
	return *c.registerIndex(index)
}

// writeOperand stores value in the operand encoded by index.
func (c *CPU) writeOperand(index uint8, value uint8) {
	if index == opcode.HL {
		c.writeByte(c.Pair(types.HL), value)
		return
	}
	*c.registerIndex(index) = value
}
