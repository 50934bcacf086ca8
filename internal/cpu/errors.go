package cpu

import (
	"errors"
	"fmt"
)

// ErrUnimplementedOpcode is matched by every UnimplementedOpcodeError.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// UnimplementedOpcodeError is returned by Step when the opcode at PC has
// no instruction. Execution can not continue past it, as the length of
// the instruction (and so the next PC) is unknown.
type UnimplementedOpcodeError struct {
	Opcode   uint8
	Extended bool // the opcode followed the CB prefix
	Address  uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.Extended {
		return fmt.Sprintf("unimplemented opcode CB %02X at %04X", e.Opcode, e.Address)
	}
	return fmt.Sprintf("unimplemented opcode %02X at %04X", e.Opcode, e.Address)
}

func (e *UnimplementedOpcodeError) Is(err error) bool {
	return err == ErrUnimplementedOpcode
}
