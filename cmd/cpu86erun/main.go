// main.go - cpu86erun: flat-memory smoke-test host for the cpu86e package
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

// Command cpu86erun is a flat-memory smoke-test host for the cpu86e
// package: it loads a raw binary image, optionally points CS:IP at it
// directly, runs the interpreter for a step budget, and dumps the
// final register/flag state. It is a test harness, not a PC emulator.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/disba1ancer/cpu86e"
	"github.com/disba1ancer/cpu86e/internal/hostmem"
)

// deviceMap optionally names extra devices, each by a single I/O port,
// that a program under test expects to exist, purely for the runner to
// report — it does not wire up any device behavior itself.
type deviceMap struct {
	Device []struct {
		Name string `toml:"name"`
		Port int    `toml:"port"`
	} `toml:"device"`
}

func main() {
	var (
		imagePath string
		devicePath string
		org       uint32
		entrySeg  uint16
		entryOff  uint16
		useEntry  bool
		steps     int
		trace     bool
	)

	root := &cobra.Command{
		Use:   "cpu86erun",
		Short: "Run a flat real-mode binary image under the cpu86e interpreter",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			if devicePath != "" {
				var dm deviceMap
				if _, err := toml.DecodeFile(devicePath, &dm); err != nil {
					return fmt.Errorf("reading device map: %w", err)
				}
				for _, d := range dm.Device {
					fmt.Fprintf(os.Stderr, "device map: %s at port 0x%04X\n", d.Name, d.Port)
				}
			}

			mem := hostmem.New()
			mem.Load(org, img)

			state := cpu86e.InitState()
			if useEntry {
				state.SetSeg(cpu86e.CS, entrySeg)
				state.SetIP(entryOff)
			}
			c := cpu86e.NewCPUWithState(state, mem)

			if trace {
				fmt.Fprintf(os.Stderr, "starting at %04X:%04X, budget %d steps\n",
					c.State().Seg(cpu86e.CS), c.State().IP(), steps)
			}

			ran := c.Run(steps)

			s := c.State()
			fmt.Printf("ran %d steps, halted=%v\n", ran, c.Halted())
			fmt.Printf("AX=%04X CX=%04X DX=%04X BX=%04X SP=%04X BP=%04X SI=%04X DI=%04X\n",
				s.GPR(cpu86e.AX), s.GPR(cpu86e.CX), s.GPR(cpu86e.DX), s.GPR(cpu86e.BX),
				s.GPR(cpu86e.SP), s.GPR(cpu86e.BP), s.GPR(cpu86e.SI), s.GPR(cpu86e.DI))
			fmt.Printf("CS=%04X IP=%04X FLAGS=%04X\n", s.Seg(cpu86e.CS), s.IP(), s.Flags())
			return nil
		},
	}

	root.Flags().StringVar(&imagePath, "image", "", "path to a raw flat binary image (required)")
	root.Flags().StringVar(&devicePath, "devices", "", "optional TOML device map to report")
	root.Flags().Uint32Var(&org, "org", 0, "linear address to load the image at")
	root.Flags().Uint16Var(&entrySeg, "entry-seg", 0, "CS to start execution at (with --entry-off)")
	root.Flags().Uint16Var(&entryOff, "entry-off", 0, "IP to start execution at (with --entry-seg)")
	root.Flags().BoolVar(&useEntry, "entry", false, "start at --entry-seg:--entry-off instead of the FFFF:0000 reset vector")
	root.Flags().IntVar(&steps, "steps", 1_000_000, "maximum number of engine steps to run (-1 for unbounded)")
	root.Flags().BoolVar(&trace, "trace", false, "print a line before execution starts")
	root.MarkFlagRequired("image")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
