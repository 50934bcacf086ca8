package opcode

// undefined marks the opcodes that lock up real hardware.
var undefined = Descriptor{}

// base is the unprefixed opcode space, one row per high nibble.
var base = [16][16]Descriptor{
	{ // 0x00 - 0x0F
		op("NOP", 1, 4), op("LD BC,d16", 3, 12), op("LD (BC),A", 1, 8), op("INC BC", 1, 8),
		op("INC B", 1, 4), op("DEC B", 1, 4), op("LD B,d8", 2, 8), op("RLCA", 1, 4),
		op("LD (a16),SP", 3, 20), op("ADD HL,BC", 1, 8), op("LD A,(BC)", 1, 8), op("DEC BC", 1, 8),
		op("INC C", 1, 4), op("DEC C", 1, 4), op("LD C,d8", 2, 8), op("RRCA", 1, 4),
	},
	{ // 0x10 - 0x1F
		op("STOP", 2, 4), op("LD DE,d16", 3, 12), op("LD (DE),A", 1, 8), op("INC DE", 1, 8),
		op("INC D", 1, 4), op("DEC D", 1, 4), op("LD D,d8", 2, 8), op("RLA", 1, 4),
		jump("JR r8", 2, 12), op("ADD HL,DE", 1, 8), op("LD A,(DE)", 1, 8), op("DEC DE", 1, 8),
		op("INC E", 1, 4), op("DEC E", 1, 4), op("LD E,d8", 2, 8), op("RRA", 1, 4),
	},
	{ // 0x20 - 0x2F
		branch("JR NZ,r8", 2, 8, 12), op("LD HL,d16", 3, 12), op("LD (HL+),A", 1, 8), op("INC HL", 1, 8),
		op("INC H", 1, 4), op("DEC H", 1, 4), op("LD H,d8", 2, 8), op("DAA", 1, 4),
		branch("JR Z,r8", 2, 8, 12), op("ADD HL,HL", 1, 8), op("LD A,(HL+)", 1, 8), op("DEC HL", 1, 8),
		op("INC L", 1, 4), op("DEC L", 1, 4), op("LD L,d8", 2, 8), op("CPL", 1, 4),
	},
	{ // 0x30 - 0x3F
		branch("JR NC,r8", 2, 8, 12), op("LD SP,d16", 3, 12), op("LD (HL-),A", 1, 8), op("INC SP", 1, 8),
		op("INC (HL)", 1, 12), op("DEC (HL)", 1, 12), op("LD (HL),d8", 2, 12), op("SCF", 1, 4),
		branch("JR C,r8", 2, 8, 12), op("ADD HL,SP", 1, 8), op("LD A,(HL-)", 1, 8), op("DEC SP", 1, 8),
		op("INC A", 1, 4), op("DEC A", 1, 4), op("LD A,d8", 2, 8), op("CCF", 1, 4),
	},
	loadRow(0x40), loadRow(0x50), loadRow(0x60), loadRow(0x70),
	aluRow(0x80), aluRow(0x90), aluRow(0xA0), aluRow(0xB0),
	{ // 0xC0 - 0xCF
		branch("RET NZ", 1, 8, 20), op("POP BC", 1, 12), branch("JP NZ,a16", 3, 12, 16), jump("JP a16", 3, 16),
		branch("CALL NZ,a16", 3, 12, 24), op("PUSH BC", 1, 16), op("ADD A,d8", 2, 8), jump("RST 00H", 1, 16),
		branch("RET Z", 1, 8, 20), jump("RET", 1, 16), branch("JP Z,a16", 3, 12, 16), op("PREFIX CB", 1, 4),
		branch("CALL Z,a16", 3, 12, 24), jump("CALL a16", 3, 24), op("ADC A,d8", 2, 8), jump("RST 08H", 1, 16),
	},
	{ // 0xD0 - 0xDF
		branch("RET NC", 1, 8, 20), op("POP DE", 1, 12), branch("JP NC,a16", 3, 12, 16), undefined,
		branch("CALL NC,a16", 3, 12, 24), op("PUSH DE", 1, 16), op("SUB d8", 2, 8), jump("RST 10H", 1, 16),
		branch("RET C", 1, 8, 20), jump("RETI", 1, 16), branch("JP C,a16", 3, 12, 16), undefined,
		branch("CALL C,a16", 3, 12, 24), undefined, op("SBC A,d8", 2, 8), jump("RST 18H", 1, 16),
	},
	{ // 0xE0 - 0xEF
		op("LDH (a8),A", 2, 12), op("POP HL", 1, 12), op("LD (C),A", 1, 8), undefined,
		undefined, op("PUSH HL", 1, 16), op("AND d8", 2, 8), jump("RST 20H", 1, 16),
		op("ADD SP,r8", 2, 16), jump("JP HL", 1, 4), op("LD (a16),A", 3, 16), undefined,
		undefined, undefined, op("XOR d8", 2, 8), jump("RST 28H", 1, 16),
	},
	{ // 0xF0 - 0xFF
		op("LDH A,(a8)", 2, 12), op("POP AF", 1, 12), op("LD A,(C)", 1, 8), op("DI", 1, 4),
		undefined, op("PUSH AF", 1, 16), op("OR d8", 2, 8), jump("RST 30H", 1, 16),
		op("LD HL,SP+r8", 2, 12), op("LD SP,HL", 1, 8), op("LD A,(a16)", 3, 16), op("EI", 1, 4),
		undefined, undefined, op("CP d8", 2, 8), jump("RST 38H", 1, 16),
	},
}

// Operands names the eight operand locations in the order the
// hardware encodes them in the low three bits of an opcode.
var Operands = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// HL is the operand index of the memory location addressed by HL.
const HL = 6

// loadRow builds one of the LD r,r' rows 0x40 - 0x7F. Each row holds
// two destinations, 0x76 (which would be LD (HL),(HL)) is HALT.
func loadRow(first uint8) (row [16]Descriptor) {
	for i := uint8(0); i < 16; i++ {
		opcode := first + i
		dst, src := (opcode>>3)&7, opcode&7
		switch {
		case opcode == 0x76:
			row[i] = op("HALT", 1, 4)
		case dst == HL || src == HL:
			row[i] = op("LD "+Operands[dst]+","+Operands[src], 1, 8)
		default:
			row[i] = op("LD "+Operands[dst]+","+Operands[src], 1, 4)
		}
	}
	return row
}

var aluMnemonics = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

// aluRow builds one of the 8-bit arithmetic rows 0x80 - 0xBF.
func aluRow(first uint8) (row [16]Descriptor) {
	for i := uint8(0); i < 16; i++ {
		opcode := first + i
		operation, src := (opcode>>3)&7, opcode&7
		cycles := uint8(4)
		if src == HL {
			cycles = 8
		}
		row[i] = op(aluMnemonics[operation]+Operands[src], 1, cycles)
	}
	return row
}
