package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
)

func writeProgram(t *testing.T, program []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.bin")
	require.NoError(t, os.WriteFile(path, program, 0o644))
	return path
}

func TestRun(t *testing.T) {
	path := writeProgram(t, []byte{0x3E, 0x05, 0x3C, 0x76}) // LD A,5; INC A; HALT
	_, c, err := newMachine(path, 0x0100, false, false)
	require.NoError(t, err)
	c.PC = 0x0100

	executed, err := run(c, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, cpu.Halted, c.State())
	assert.Equal(t, uint8(6), c.A)
}

func TestRun_Limit(t *testing.T) {
	path := writeProgram(t, []byte{0x18, 0xFE}) // JR -2
	_, c, err := newMachine(path, 0, false, false)
	require.NoError(t, err)

	executed, err := run(c, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, executed)
	assert.Equal(t, uint16(0), c.PC)
}

func TestRun_Error(t *testing.T) {
	path := writeProgram(t, []byte{0x00, 0xD3})
	_, c, err := newMachine(path, 0, false, false)
	require.NoError(t, err)

	executed, err := run(c, 0)
	assert.ErrorIs(t, err, cpu.ErrUnimplementedOpcode)
	assert.Equal(t, 1, executed)
}

func TestNewMachine_DoesNotFit(t *testing.T) {
	path := writeProgram(t, []byte{0x00, 0x00})
	_, _, err := newMachine(path, 0xFFFF, false, false)
	assert.ErrorIs(t, err, mmu.ErrOutOfRangeAddress)
}
