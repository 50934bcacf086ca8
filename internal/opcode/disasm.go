package opcode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Disassemble decodes the instruction at the start of code, returning
// its text with the immediates filled in and its length in bytes.
// Bytes that do not start a complete instruction are rendered as a
// single DB directive. order rebuilds 16-bit immediates, as the cpu
// package does.
func Disassemble(code []byte, order binary.ByteOrder) (string, int) {
	if len(code) == 0 {
		return "", 0
	}

	space, instr, offset := Base, code[0], 1
	if instr == Prefix && len(code) > 1 {
		space, instr, offset = Extended, code[1], 2
	}

	d, ok := Lookup(space, instr)
	if !ok || int(d.Length) > len(code) {
		return fmt.Sprintf("DB $%02X", code[0]), 1
	}

	operands := code[offset:d.Length]
	text := d.Mnemonic
	switch len(operands) {
	case 1:
		n := operands[0]
		text = strings.NewReplacer(
			"d8", fmt.Sprintf("$%02X", n),
			"a8", fmt.Sprintf("$%02X", n),
			"r8", fmt.Sprintf("%d", int8(n)),
		).Replace(text)
	case 2:
		nn := fmt.Sprintf("$%04X", order.Uint16(operands))
		text = strings.NewReplacer("d16", nn, "a16", nn).Replace(text)
	}
	return text, int(d.Length)
}
