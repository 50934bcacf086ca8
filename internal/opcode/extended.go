package opcode

import "fmt"

// extended is the CB-prefixed opcode space. It is built from the
// hardware encoding rather than written out: bits 6-7 select the group
// (rotate/shift, BIT, RES, SET), bits 3-5 the operation or bit index,
// and bits 0-2 the operand.
var extended [16][16]Descriptor

var shiftMnemonics = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

func init() {
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		group, y, operand := opcode>>6, (opcode>>3)&7, opcode&7

		var mnemonic string
		switch group {
		case 0:
			mnemonic = shiftMnemonics[y] + " " + Operands[operand]
		case 1:
			mnemonic = fmt.Sprintf("BIT %d,%s", y, Operands[operand])
		case 2:
			mnemonic = fmt.Sprintf("RES %d,%s", y, Operands[operand])
		case 3:
			mnemonic = fmt.Sprintf("SET %d,%s", y, Operands[operand])
		}

		cycles := uint8(8)
		if operand == HL {
			// BIT only reads (HL), the others read and write it back
			if group == 1 {
				cycles = 12
			} else {
				cycles = 16
			}
		}

		extended[opcode>>4][opcode&0xF] = op(mnemonic, 2, cycles)
	}
}
