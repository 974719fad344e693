// Command sixtytwo loads a flat 6502 binary image and either runs it
// headlessly to the first BRK or single-steps it through the bubbletea
// debugger.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"sixtytwo/bus"
	"sixtytwo/interp"
)

func main() {
	app := &cli.App{
		Name:    "sixtytwo",
		Usage:   "run or step a flat 6502 binary image",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "program",
				Aliases:  []string{"p"},
				Usage:    "path to a flat binary image",
				Required: true,
			},
			&cli.UintFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "address to load the image at",
				Value:   uint(interp.DefaultBaseAddress),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "single-step through the program in the TUI debugger",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sixtytwo:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	program, err := os.ReadFile(c.String("program"))
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}
	base := uint16(c.Uint("base"))

	i := interp.New(bus.NewWithFlatCartridge())

	if c.Bool("debug") {
		interp.Debug(i, program, base)
		return nil
	}

	i.Load(program, base, base)
	i.Reset()

	steps := 0
	runErr := i.RunWithCallback(func(*interp.Interp) { steps++ })
	fmt.Printf("halted after %d instructions: A=%#02x X=%#02x Y=%#02x SP=%#02x P=%s PC=%#04x\n",
		steps, i.A, i.X, i.Y, i.SP, i.P, i.PC)
	return runErr
}
