// Package opcode holds the static instruction tables of the SM83: the
// mnemonic, byte length and cycle cost of every opcode in the base and
// the CB-prefixed (extended) opcode spaces. The tables carry no
// behaviour, the cpu package resolves the action for each opcode.
package opcode

import "fmt"

// Prefix is the opcode that escapes into the extended opcode space.
const Prefix = 0xCB

// Space selects one of the two 256 entry opcode spaces.
type Space uint8

const (
	Base Space = iota
	Extended
)

func (s Space) String() string {
	switch s {
	case Base:
		return "base"
	case Extended:
		return "extended"
	}
	return "unknown space"
}

// Descriptor describes a single opcode.
type Descriptor struct {
	Mnemonic string
	// Length is the number of bytes the instruction occupies, including
	// the opcode (and the prefix for extended instructions).
	Length uint8
	// Cycles is the number of clock cycles the instruction takes. For
	// conditional control transfers this is the cost when the condition
	// does not hold.
	Cycles uint8
	// BranchCycles is the cost of a conditional control transfer when
	// the condition holds, zero otherwise.
	BranchCycles uint8
	// Flow is set for instructions that may load PC directly.
	Flow bool
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%d bytes, %d cycles)", d.Mnemonic, d.Length, d.Cycles)
}

// Defined reports whether the descriptor names a real instruction.
func (d Descriptor) Defined() bool {
	return d.Length != 0
}

// Lookup returns the descriptor for opcode op in the given space. The
// tables are indexed by the high and low nibble of the opcode. ok is
// false for opcodes the hardware does not define.
func Lookup(space Space, op uint8) (d Descriptor, ok bool) {
	switch space {
	case Base:
		d = base[op>>4][op&0xF]
	case Extended:
		d = extended[op>>4][op&0xF]
	}
	return d, d.Defined()
}

// op describes an instruction that never transfers control.
func op(mnemonic string, length, cycles uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Length: length, Cycles: cycles}
}

// jump describes an unconditional control transfer.
func jump(mnemonic string, length, cycles uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Length: length, Cycles: cycles, Flow: true}
}

// branch describes a conditional control transfer that costs cycles
// when it falls through and taken when it does not.
func branch(mnemonic string, length, cycles, taken uint8) Descriptor {
	return Descriptor{Mnemonic: mnemonic, Length: length, Cycles: cycles, BranchCycles: taken, Flow: true}
}
