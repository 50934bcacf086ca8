// Package mmu provides the memory bus of the CPU: a flat 64kB byte
// store with bounds-checked reads and writes. The MMU is unaware of the
// other components, cartridge banking and memory mapped peripherals are
// layered in front of it by the host.
package mmu

import (
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Size is the number of addressable bytes, 0x0000 - 0xFFFF.
const Size = 0x10000

// MMU is the memory management unit. It owns the 64kB of memory that
// the CPU executes from, and that the host populates before the first
// step and inspects afterwards (e.g. video RAM at 0x8000 - 0x9FFF).
type MMU struct {
	raw [Size]uint8

	Log log.Logger
}

// New returns a new MMU with every byte cleared.
func New() *MMU {
	return &MMU{
		Log: log.NewNullLogger(),
	}
}

// checkRange returns an OutOfRangeAddressError if address falls outside
// of the address space.
func checkRange(address int) error {
	if address < 0 || address >= Size {
		return &OutOfRangeAddressError{Address: address}
	}
	return nil
}

// Read returns the byte at address.
func (m *MMU) Read(address int) (uint8, error) {
	if err := checkRange(address); err != nil {
		return 0, err
	}
	return m.raw[address], nil
}

// Write stores value at address.
func (m *MMU) Write(address int, value uint8) error {
	if err := checkRange(address); err != nil {
		return err
	}
	m.raw[address] = value
	return nil
}

// LoadAt copies data into memory starting at offset. Nothing is written
// unless all of data fits.
func (m *MMU) LoadAt(offset int, data []byte) error {
	if err := checkRange(offset); err != nil {
		return err
	}
	if len(data) > 0 {
		if err := checkRange(offset + len(data) - 1); err != nil {
			return err
		}
	}
	copy(m.raw[offset:], data)
	m.Log.Debugf("loaded %d bytes at %04X", len(data), offset)
	return nil
}

// ReadRange returns a copy of the bytes in [start, end).
func (m *MMU) ReadRange(start, end int) ([]byte, error) {
	if err := checkRange(start); err != nil {
		return nil, err
	}
	if end < start || end > Size {
		return nil, &OutOfRangeAddressError{Address: end}
	}
	out := make([]byte, end-start)
	copy(out, m.raw[start:end])
	return out, nil
}

// Reset clears every byte of memory, returning it to the power-on state.
func (m *MMU) Reset() {
	m.raw = [Size]uint8{}
}

var _ types.Stater = (*MMU)(nil)

// Load restores memory from the given state.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.raw[:])
}

// Save writes the contents of memory to the given state.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.raw[:])
}
