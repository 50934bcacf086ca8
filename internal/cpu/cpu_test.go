package cpu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/opcode"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// newTestCPU returns a CPU with program loaded at address 0.
func newTestCPU(t *testing.T, program []byte, opts ...Opt) (*CPU, *mmu.MMU) {
	t.Helper()
	m := mmu.New()
	require.NoError(t, m.LoadAt(0, program))
	return NewCPU(m, opts...), m
}

func read(t *testing.T, m *mmu.MMU, address int) uint8 {
	t.Helper()
	v, err := m.Read(address)
	require.NoError(t, err)
	return v
}

func TestCPU_LoadImmediate(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0x3E, 0x05})
	require.NoError(t, c.Step())

	assert.Equal(t, uint8(0x05), c.A)
	assert.Equal(t, uint16(2), c.PC)
	assert.Equal(t, uint8(8), c.LastCycles())
}

func TestCPU_LoadPairImmediate(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0x21, 0x12, 0x34})
	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1234), c.Pair(types.HL))
	assert.Equal(t, uint8(0x12), c.H)
	assert.Equal(t, uint8(0x34), c.L)
	assert.Equal(t, uint16(3), c.PC)
}

func TestCPU_LoadPairImmediateLittleEndian(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0x21, 0x34, 0x12}, WithOperandOrder(binary.LittleEndian))
	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1234), c.Pair(types.HL))
	assert.Equal(t, uint16(3), c.PC)
}

func TestCPU_JumpAbsolute(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0xC3, 0x00, 0x10})
	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x0010), c.PC)
	assert.Equal(t, uint8(16), c.LastCycles())
}

func TestCPU_XorSelf(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0xAF})
	c.A = 0x7F
	require.NoError(t, c.Step())

	assert.Equal(t, uint8(0x00), c.A)
	assert.Equal(t, types.FlagZero, c.F)
	assert.Equal(t, uint16(1), c.PC)
}

// setupOpcode prepares a CPU at 0x0100 about to execute instr, followed
// by the given operand bytes.
func setupOpcode(t *testing.T, instr []byte) (*CPU, *mmu.MMU) {
	t.Helper()
	m := mmu.New()
	require.NoError(t, m.LoadAt(0x0100, instr))
	c := NewCPU(m)
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.SetPair(types.HL, 0xC000)
	return c, m
}

func TestCPU_BaseOpcodesAdvanceByLength(t *testing.T) {
	for i := 0; i < 256; i++ {
		instr := uint8(i)
		desc, ok := opcode.Lookup(opcode.Base, instr)
		if !ok || desc.Flow || instr == opcode.Prefix {
			continue
		}

		c, _ := setupOpcode(t, []byte{instr, 0x00, 0x00})
		require.NoError(t, c.Step(), desc.Mnemonic)
		assert.Equal(t, 0x0100+uint16(desc.Length), c.PC, desc.Mnemonic)
		assert.Equal(t, desc.Cycles, c.LastCycles(), desc.Mnemonic)
		assert.Zero(t, c.F&0x0F, desc.Mnemonic)
	}
}

func TestCPU_ExtendedOpcodesAdvanceByTwo(t *testing.T) {
	for i := 0; i < 256; i++ {
		instr := uint8(i)
		desc, ok := opcode.Lookup(opcode.Extended, instr)
		require.True(t, ok)

		c, _ := setupOpcode(t, []byte{opcode.Prefix, instr})
		require.NoError(t, c.Step(), desc.Mnemonic)
		assert.Equal(t, uint16(0x0102), c.PC, desc.Mnemonic)
		assert.Equal(t, desc.Cycles, c.LastCycles(), desc.Mnemonic)
	}
}

func TestCPU_FlowOpcodes(t *testing.T) {
	// all flags are clear, so NZ and NC hold while Z and C do not. The
	// operands are 0x10 0x20, the stack holds the return address 0x1234.
	expected := map[uint8]uint16{
		0x18: 0x0112, 0x20: 0x0112, 0x28: 0x0102, 0x30: 0x0112, 0x38: 0x0102,
		0xC3: 0x1020, 0xC2: 0x1020, 0xCA: 0x0103, 0xD2: 0x1020, 0xDA: 0x0103,
		0xCD: 0x1020, 0xC4: 0x1020, 0xCC: 0x0103, 0xD4: 0x1020, 0xDC: 0x0103,
		0xC9: 0x1234, 0xD9: 0x1234, 0xC0: 0x1234, 0xC8: 0x0101, 0xD0: 0x1234, 0xD8: 0x0101,
		0xE9: 0xC000,
		0xC7: 0x00, 0xCF: 0x08, 0xD7: 0x10, 0xDF: 0x18, 0xE7: 0x20, 0xEF: 0x28, 0xF7: 0x30, 0xFF: 0x38,
	}

	for i := 0; i < 256; i++ {
		instr := uint8(i)
		desc, ok := opcode.Lookup(opcode.Base, instr)
		if !ok || !desc.Flow {
			continue
		}
		want, ok := expected[instr]
		require.True(t, ok, "no expectation for %s", desc.Mnemonic)

		c, m := setupOpcode(t, []byte{instr, 0x10, 0x20})
		require.NoError(t, m.Write(0xFFFE, 0x34))
		require.NoError(t, m.Write(0xFFFF, 0x12))

		require.NoError(t, c.Step(), desc.Mnemonic)
		assert.Equal(t, want, c.PC, desc.Mnemonic)

		taken := want != 0x0100+uint16(desc.Length)
		if taken && desc.BranchCycles != 0 {
			assert.Equal(t, desc.BranchCycles, c.LastCycles(), desc.Mnemonic)
		} else {
			assert.Equal(t, desc.Cycles, c.LastCycles(), desc.Mnemonic)
		}
	}
}

func TestCPU_Call(t *testing.T) {
	c, m := setupOpcode(t, []byte{0xCD, 0x20, 0x00})
	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x2000), c.PC)
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x03), read(t, m, 0xFFFC))
	assert.Equal(t, uint8(0x01), read(t, m, 0xFFFD))

	// RET at the target returns past the call
	require.NoError(t, m.Write(0x2000, 0xC9))
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint16(0xFFFE), c.SP)
}

func TestCPU_ConditionalBranchCycles(t *testing.T) {
	tests := []struct {
		name   string
		flags  uint8
		pc     uint16
		cycles uint8
	}{
		{"taken", 0, 0x0102 - 2, 12},
		{"not taken", types.FlagZero, 0x0102, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := setupOpcode(t, []byte{0x20, 0xFE}) // JR NZ, -2
			c.F = tt.flags
			require.NoError(t, c.Step())
			assert.Equal(t, tt.pc, c.PC)
			assert.Equal(t, tt.cycles, c.LastCycles())
		})
	}
}

func TestCPU_UnimplementedOpcodes(t *testing.T) {
	for _, instr := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		var buf bytes.Buffer
		c, _ := setupOpcode(t, []byte{instr})
		c.log = log.NewWithOutput(&buf)

		err := c.Step()
		require.ErrorIs(t, err, ErrUnimplementedOpcode)

		var opErr *UnimplementedOpcodeError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, instr, opErr.Opcode)
		assert.Equal(t, uint16(0x0100), opErr.Address)
		assert.False(t, opErr.Extended)

		// the failing instruction is left at PC
		assert.Equal(t, uint16(0x0100), c.PC)
		assert.Zero(t, c.Cycles)
		assert.Contains(t, buf.String(), "level=error")

		// and stepping again fails the same way
		assert.ErrorIs(t, c.Step(), ErrUnimplementedOpcode)
	}
}

func TestCPU_TopOfMemory(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		m := mmu.New()
		c := NewCPU(m)
		c.PC = 0xFFFF
		require.NoError(t, c.Step())
		assert.Equal(t, uint16(0x0000), c.PC)
	})
	t.Run("immediate out of range", func(t *testing.T) {
		m := mmu.New()
		require.NoError(t, m.Write(0xFFFF, 0x3E)) // LD A, d8
		c := NewCPU(m)
		c.PC = 0xFFFF

		err := c.Step()
		assert.ErrorIs(t, err, mmu.ErrOutOfRangeAddress)
		var rangeErr *mmu.OutOfRangeAddressError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, 0x10000, rangeErr.Address)
		assert.Equal(t, uint16(0xFFFF), c.PC)
	})
	t.Run("prefix out of range", func(t *testing.T) {
		m := mmu.New()
		require.NoError(t, m.Write(0xFFFF, opcode.Prefix))
		c := NewCPU(m)
		c.PC = 0xFFFF
		assert.ErrorIs(t, c.Step(), mmu.ErrOutOfRangeAddress)
	})
	t.Run("store SP across the top", func(t *testing.T) {
		c, _ := newTestCPU(t, []byte{0x08, 0xFF, 0xFF}) // LD (0xFFFF), SP
		assert.ErrorIs(t, c.Step(), mmu.ErrOutOfRangeAddress)
		assert.Equal(t, uint16(0), c.PC)
	})
}

func TestCPU_HaltStop(t *testing.T) {
	t.Run("halt", func(t *testing.T) {
		c, _ := newTestCPU(t, []byte{0x76, 0x3C}) // HALT, INC A
		require.NoError(t, c.Step())
		assert.Equal(t, Halted, c.State())
		assert.Equal(t, uint16(1), c.PC)

		for i := 0; i < 3; i++ {
			require.NoError(t, c.Step())
			assert.Equal(t, uint16(1), c.PC)
			assert.Equal(t, uint8(4), c.LastCycles())
		}
		assert.Equal(t, uint8(0), c.A)
		assert.Equal(t, uint64(16), c.Cycles)

		c.Wake()
		assert.Equal(t, Running, c.State())
		require.NoError(t, c.Step())
		assert.Equal(t, uint8(1), c.A)
		assert.Equal(t, uint16(2), c.PC)
	})
	t.Run("stop", func(t *testing.T) {
		c, _ := newTestCPU(t, []byte{0x10, 0x00})
		require.NoError(t, c.Step())
		assert.Equal(t, Stopped, c.State())
		assert.Equal(t, uint16(2), c.PC)

		require.NoError(t, c.Step())
		assert.Equal(t, uint16(2), c.PC)
		assert.Equal(t, "stopped", c.State().String())
	})
}

func TestCPU_InterruptMasterEnable(t *testing.T) {
	c, m := newTestCPU(t, []byte{0xFB, 0xF3, 0xD9}) // EI, DI, RETI
	require.NoError(t, m.LoadAt(0xFFFC, []byte{0x00, 0x40}))
	c.SP = 0xFFFC

	require.NoError(t, c.Step())
	assert.True(t, c.IME)
	require.NoError(t, c.Step())
	assert.False(t, c.IME)
	require.NoError(t, c.Step())
	assert.True(t, c.IME)
	assert.Equal(t, uint16(0x4000), c.PC)
}

func TestCPU_PairWrap(t *testing.T) {
	c, _ := newTestCPU(t, []byte{0x03, 0x0B, 0x0B, 0x33}) // INC BC, DEC BC, DEC BC, INC SP
	c.SetPair(types.BC, 0xFFFF)
	c.SP = 0xFFFF
	c.F = types.FlagZero | types.FlagCarry

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0000), c.Pair(types.BC))
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xFFFF), c.Pair(types.BC))
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xFFFE), c.Pair(types.BC))
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x0000), c.SP)

	// 16-bit increments and decrements leave the flags alone
	assert.Equal(t, types.FlagZero|types.FlagCarry, c.F)
}

func TestCPU_PushPop(t *testing.T) {
	c, m := newTestCPU(t, []byte{0xC5, 0xD1, 0xF1}) // PUSH BC, POP DE, POP AF
	c.SP = 0xFFF0
	c.SetPair(types.BC, 0xBEEF)
	require.NoError(t, m.LoadAt(0xFFF0, []byte{0xFF, 0x12}))

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xFFEE), c.SP)
	assert.Equal(t, uint8(0xEF), read(t, m, 0xFFEE))
	assert.Equal(t, uint8(0xBE), read(t, m, 0xFFEF))

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xBEEF), c.Pair(types.DE))

	// the low nibble of F always reads zero
	require.NoError(t, c.Step())
	assert.Equal(t, uint8(0x12), c.A)
	assert.Equal(t, uint8(0xF0), c.F)
	assert.Equal(t, uint16(0xFFF2), c.SP)
}

func TestCPU_LoadIncrementDecrement(t *testing.T) {
	c, m := newTestCPU(t, []byte{0x22, 0x32, 0x2A}) // LD (HL+),A; LD (HL-),A; LD A,(HL+)
	c.SetPair(types.HL, 0xC000)
	c.A = 0x42

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xC001), c.Pair(types.HL))
	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0xC000), c.Pair(types.HL))
	assert.Equal(t, uint8(0x42), read(t, m, 0xC000))
	assert.Equal(t, uint8(0x42), read(t, m, 0xC001))

	c.A = 0
	require.NoError(t, c.Step())
	assert.Equal(t, uint8(0x42), c.A)
	assert.Equal(t, uint16(0xC001), c.Pair(types.HL))
}

func TestCPU_HighPage(t *testing.T) {
	c, m := newTestCPU(t, []byte{0xE0, 0x80, 0xF2}) // LDH (0x80),A; LD A,(C)
	c.A = 0x99
	c.C = 0x81
	require.NoError(t, m.Write(0xFF81, 0x66))

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(0x99), read(t, m, 0xFF80))
	require.NoError(t, c.Step())
	assert.Equal(t, uint8(0x66), c.A)
}

func TestCPU_StoreStackPointer(t *testing.T) {
	c, m := newTestCPU(t, []byte{0x08, 0xC0, 0x00}) // LD (0xC000), SP
	c.SP = 0xABCD
	require.NoError(t, c.Step())

	assert.Equal(t, uint8(0xCD), read(t, m, 0xC000))
	assert.Equal(t, uint8(0xAB), read(t, m, 0xC001))
}

func TestCPU_Extended(t *testing.T) {
	tests := []struct {
		name    string
		instr   uint8
		b       uint8
		f       uint8
		wantB   uint8
		wantF   uint8
		hlValue uint8
		wantHL  uint8
	}{
		{name: "SET 3,B", instr: 0xD8, f: 0xB0, wantB: 0x08, wantF: 0xB0},
		{name: "RES 0,B", instr: 0x80, b: 0xFF, f: 0x50, wantB: 0xFE, wantF: 0x50},
		{name: "RES 7,(HL)", instr: 0xBE, hlValue: 0xFF, wantHL: 0x7F},
		{name: "SET 0,(HL)", instr: 0xC6, f: types.FlagZero, wantF: types.FlagZero, wantHL: 0x01},
		{name: "BIT 7,B set", instr: 0x78, b: 0x80, f: types.FlagCarry, wantB: 0x80, wantF: types.FlagHalfCarry | types.FlagCarry},
		{name: "BIT 0,B clear", instr: 0x40, b: 0xFE, wantB: 0xFE, wantF: types.FlagZero | types.FlagHalfCarry},
		{name: "SRA B", instr: 0x28, b: 0x81, wantB: 0xC0, wantF: types.FlagCarry},
		{name: "SRL B", instr: 0x38, b: 0x81, wantB: 0x40, wantF: types.FlagCarry},
		{name: "SWAP B", instr: 0x30, b: 0xF1, f: types.FlagCarry, wantB: 0x1F},
		{name: "SWAP (HL) zero", instr: 0x36, wantF: types.FlagZero},
		{name: "RL B", instr: 0x10, b: 0x80, f: types.FlagCarry, wantB: 0x01, wantF: types.FlagCarry},
		{name: "RLC B", instr: 0x00, b: 0x80, wantB: 0x01, wantF: types.FlagCarry},
		{name: "RR (HL)", instr: 0x1E, f: types.FlagCarry, hlValue: 0x01, wantHL: 0x80, wantF: types.FlagCarry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, m := setupOpcode(t, []byte{opcode.Prefix, tt.instr})
			c.B = tt.b
			c.F = tt.f
			require.NoError(t, m.Write(0xC000, tt.hlValue))

			require.NoError(t, c.Step())
			assert.Equal(t, tt.wantB, c.B, "B")
			assert.Equal(t, tt.wantF, c.F, "F")
			assert.Equal(t, tt.wantHL, read(t, m, 0xC000), "(HL)")
		})
	}
}

func TestCPU_Program(t *testing.T) {
	program := []byte{
		0x31, 0xFF, 0xFE, // LD SP, 0xFFFE
		0x3E, 0x05,       // LD A, 5
		0x06, 0x03,       // LD B, 3
		0x80,             // loop: ADD A, B
		0xC5,             // PUSH BC
		0x05,             // DEC B
		0x20, 0xFB,       // JR NZ, loop
		0x76,             // HALT
	}
	c, m := newTestCPU(t, program)

	steps := 0
	for c.State() == Running {
		require.NoError(t, c.Step())
		steps++
		require.Less(t, steps, 100)
	}

	assert.Equal(t, 16, steps)
	assert.Equal(t, uint8(0x0B), c.A)
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, types.FlagZero|types.FlagSubtract, c.F)
	assert.Equal(t, uint16(0xFFF8), c.SP)
	assert.Equal(t, uint16(0x000D), c.PC)
	assert.Equal(t, uint64(136), c.Cycles)

	stack, err := m.ReadRange(0xFFF8, 0xFFFE)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}, stack)
}

func TestCPU_Debug(t *testing.T) {
	var buf bytes.Buffer
	c, _ := newTestCPU(t, []byte{0x3E, 0x05}, WithLogger(log.NewWithOutput(&buf)), Debug())
	require.NoError(t, c.Step())

	assert.Contains(t, buf.String(), "LD A,d8 [05]")
	assert.Contains(t, buf.String(), "A:00")
}

// saveMachine captures the CPU and its memory in a single state.
func saveMachine(c *CPU, m *mmu.MMU) *types.State {
	s := types.NewState()
	c.Save(s)
	m.Save(s)
	return s
}

func TestCPU_SaveLoad(t *testing.T) {
	c, m := newTestCPU(t, []byte{0x3E, 0x05, 0x06, 0x07, 0x80, 0xFB, 0x76})
	for c.State() == Running {
		require.NoError(t, c.Step())
	}
	saved := saveMachine(c, m)

	restored := mmu.New()
	rc := NewCPU(restored)
	s := types.StateFromBytes(saved.Bytes())
	rc.Load(s)
	restored.Load(s)
	require.NoError(t, s.Err())

	assert.Equal(t, c.Registers, rc.Registers)
	assert.Equal(t, c.IME, rc.IME)
	assert.Equal(t, Halted, rc.State())
	assert.Equal(t, c.Cycles, rc.Cycles)
	assert.Equal(t, saved.Sum64(), saveMachine(rc, restored).Sum64())
}

// FuzzCPU_Deterministic runs the same memory image on two machines and
// expects identical states after every step.
func FuzzCPU_Deterministic(f *testing.F) {
	f.Add([]byte{0x3E, 0x05, 0xAF, 0x18, 0xFC})
	f.Add([]byte{0x31, 0xFF, 0xFE, 0xCD, 0x00, 0x08, 0xC9})
	f.Add([]byte{0xCB, 0x37, 0xCB, 0x7F, 0xD3})

	f.Fuzz(func(t *testing.T, program []byte) {
		if len(program) > mmu.Size {
			program = program[:mmu.Size]
		}
		a, am := newTestCPU(t, program)
		b, bm := newTestCPU(t, program)

		for i := 0; i < 64; i++ {
			errA, errB := a.Step(), b.Step()
			require.Equal(t, errA == nil, errB == nil)
			require.Equal(t, saveMachine(a, am).Sum64(), saveMachine(b, bm).Sum64())
			if errA != nil {
				return
			}
			assert.Zero(t, a.F&0x0F)
		}
	})
}
