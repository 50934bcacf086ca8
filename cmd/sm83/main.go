package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/opcode"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sm83",
		Short:        "SM83 CPU core: step programs against a flat 64kB memory",
		SilenceUsage: true,
	}

	// run command
	var (
		offset       int
		pc           uint16
		steps        int
		littleEndian bool
		trace        bool
		digest       bool
		saveState    string
		loadState    string
	)

	runCmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Load a program image and step it until it halts or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, c, err := newMachine(args[0], offset, littleEndian, trace)
			if err != nil {
				return err
			}
			c.PC = pc

			if loadState != "" {
				s, err := utils.LoadStateFile(loadState)
				if err != nil {
					return err
				}
				c.Load(s)
				m.Load(s)
				if err := s.Err(); err != nil {
					return fmt.Errorf("%s: %w", loadState, err)
				}
			}

			executed, stepErr := run(c, steps)
			fmt.Printf("%d steps, %d cycles, %s\n", executed, c.Cycles, c.State())
			fmt.Printf("PC:%04X SP:%04X AF:%04X BC:%04X DE:%04X HL:%04X IME:%t\n",
				c.PC, c.SP, c.Pair(types.AF), c.Pair(types.BC), c.Pair(types.DE), c.Pair(types.HL), c.IME)

			s := types.NewState()
			c.Save(s)
			m.Save(s)
			if digest {
				fmt.Printf("digest: %016x\n", s.Sum64())
			}
			if saveState != "" {
				if err := utils.SaveStateFile(saveState, s); err != nil {
					return err
				}
				fmt.Printf("state written to %s\n", saveState)
			}

			return stepErr
		},
	}
	runCmd.Flags().IntVar(&offset, "offset", 0, "Address the program is loaded at")
	runCmd.Flags().Uint16Var(&pc, "pc", 0, "Initial program counter")
	runCmd.Flags().IntVar(&steps, "steps", 1_000_000, "Maximum number of steps (0 = until halted)")
	runCmd.Flags().BoolVar(&littleEndian, "little-endian", false, "Read 16-bit immediates low byte first")
	runCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Log every executed instruction")
	runCmd.Flags().BoolVar(&digest, "digest", false, "Print the xxhash digest of the final state")
	runCmd.Flags().StringVar(&saveState, "save-state", "", "Write the final state to a file")
	runCmd.Flags().StringVar(&loadState, "load-state", "", "Restore a state written by --save-state before running")

	// disasm command
	var count int

	disasmCmd := &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := utils.LoadFile(args[0])
			if err != nil {
				return err
			}

			var order binary.ByteOrder = binary.BigEndian
			if littleEndian {
				order = binary.LittleEndian
			}

			address := offset
			for i := 0; len(data) > 0 && (count == 0 || i < count); i++ {
				text, length := opcode.Disassemble(data, order)
				fmt.Printf("%04X  % -9X %s\n", address, data[:length], text)
				data = data[length:]
				address += length
			}
			return nil
		},
	}
	disasmCmd.Flags().IntVar(&offset, "offset", 0, "Address the program is loaded at")
	disasmCmd.Flags().IntVar(&count, "count", 0, "Number of instructions (0 = whole image)")
	disasmCmd.Flags().BoolVar(&littleEndian, "little-endian", false, "Read 16-bit immediates low byte first")

	rootCmd.AddCommand(runCmd, disasmCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newMachine loads the program at offset into a fresh memory and returns
// a CPU executing from it.
func newMachine(filename string, offset int, littleEndian, trace bool) (*mmu.MMU, *cpu.CPU, error) {
	program, err := utils.LoadFile(filename)
	if err != nil {
		return nil, nil, err
	}

	logger := log.New()
	m := mmu.New()
	m.Log = logger
	if err := m.LoadAt(offset, program); err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", filename, err)
	}

	opts := []cpu.Opt{cpu.WithLogger(logger)}
	if littleEndian {
		opts = append(opts, cpu.WithOperandOrder(binary.LittleEndian))
	}
	if trace {
		opts = append(opts, cpu.Debug())
	}
	return m, cpu.NewCPU(m, opts...), nil
}

// run steps c until it leaves the Running state, fails, or limit steps
// have been taken.
func run(c *cpu.CPU, limit int) (int, error) {
	executed := 0
	for c.State() == cpu.Running && (limit == 0 || executed < limit) {
		if err := c.Step(); err != nil {
			return executed, fmt.Errorf("step %d at %04X: %w", executed, c.PC, err)
		}
		executed++
	}
	return executed, nil
}
