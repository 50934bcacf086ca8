package cpu

import (
	"encoding/binary"

	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// idleCycles is the cost of a step taken while halted or stopped.
	idleCycles = 4
)

// ExecState is the execution state of the CPU.
type ExecState uint8

const (
	// Running is the normal CPU state, Step executes instructions.
	Running ExecState = iota
	// Halted is entered by HALT, the CPU idles until woken.
	Halted
	// Stopped is entered by STOP, the CPU idles until woken.
	Stopped
)

func (s ExecState) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Bus is the memory the CPU executes from. Addresses outside of
// 0x0000 - 0xFFFF must be rejected with an error rather than wrapped.
// *mmu.MMU implements Bus, hosts may wrap it to map cartridges or
// peripherals in front of it.
type Bus interface {
	Read(address int) (uint8, error)
	Write(address int, value uint8) error
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, SP and PC.
	types.Registers

	// IME is the interrupt master enable flag, set by EI and RETI and
	// cleared by DI. Servicing interrupts is left to the host.
	IME bool

	// Debug logs every executed instruction.
	Debug bool

	// Cycles is the total number of cycles executed so far.
	Cycles uint64

	bus   Bus
	log   log.Logger
	order binary.ByteOrder
	state ExecState

	// operands of the instruction being executed
	n8   uint8
	n16  uint16
	next uint16 // address of the following instruction

	branched   bool  // the instruction loaded PC itself
	err        error // first bus error of the instruction
	lastCycles uint8
}

// Opt is a function that modifies a CPU instance.
type Opt func(c *CPU)

// WithLogger sets the logger used to report failed steps and, in debug
// mode, every executed instruction.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithOperandOrder sets the byte order used to rebuild 16-bit
// immediates from the two bytes following an opcode. The default,
// binary.BigEndian, treats the first byte as the high byte,
// binary.LittleEndian matches the order real cartridges are assembled in.
func WithOperandOrder(order binary.ByteOrder) Opt {
	return func(c *CPU) {
		c.order = order
	}
}

// Debug enables instruction tracing.
func Debug() Opt {
	return func(c *CPU) {
		c.Debug = true
	}
}

// NewCPU creates a new CPU executing from the given bus. All registers
// start cleared, as they are before the boot ROM runs.
func NewCPU(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		bus:   bus,
		log:   log.NewNullLogger(),
		order: binary.BigEndian,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step executes exactly one instruction, advancing PC past it (or to
// the target of a control transfer). While halted or stopped the CPU
// only idles for a cycle and PC is left alone.
//
// A failed step returns an *UnimplementedOpcodeError or the error of
// the bus access that failed. Both are deterministic, so stepping again
// from the same state fails again.
func (c *CPU) Step() error {
	if c.state != Running {
		c.account(idleCycles)
		return nil
	}

	return c.execute()
}

// State returns the execution state of the CPU.
func (c *CPU) State() ExecState {
	return c.state
}

// Wake returns a halted or stopped CPU to Running. It is called by the
// host when an interrupt or joypad input ends the suspension.
func (c *CPU) Wake() {
	c.state = Running
}

// LastCycles returns the number of cycles taken by the last Step.
func (c *CPU) LastCycles() uint8 {
	return c.lastCycles
}

func (c *CPU) account(cycles uint8) {
	c.lastCycles = cycles
	c.Cycles += uint64(cycles)
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.SetFlags(s.Read8())
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.state = ExecState(s.Read8())
	c.Cycles = s.Read64()
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(uint8(c.state))
	s.Write64(c.Cycles)
}
