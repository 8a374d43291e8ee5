// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/ezrec/redisc/cpu"
	"github.com/ezrec/redisc/disc"
	"github.com/ezrec/redisc/emulator"
	"github.com/ezrec/redisc/stimulus"
)

var options struct {
	emulate     bool
	interactive bool
	turing      bool
	minecraft   bool
	tokens      bool
	trace       bool
	dump        bool
	verbose     bool
	output      string
	script      string
	depth       int
	steps       int
}

var rootCmd = &cobra.Command{
	Use:   "redisc [flags] input.asm",
	Short: "Music disc computer assembler and emulator",
	Long: `Redisc assembles programs for the single bit music disc computer.

By default the program is assembled, and the disc token listing is written
to the output file. With --minecraft, give commands for shulker boxes of
27 discs are written instead. With --emulate or --interactive the program
is run in the emulator.`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&options.emulate, "emulate", "e", false, "Run the program in the emulator")
	flags.BoolVarP(&options.interactive, "interactive", "i", false, "Run the program in the interactive emulator")
	flags.BoolVarP(&options.turing, "turing", "t", false, "Enable tape mode in the emulator")
	flags.StringVarP(&options.output, "output", "o", "output.txt", "Assembler output file")
	flags.BoolVarP(&options.minecraft, "minecraft", "m", false, "Write give commands instead of a token listing")
	flags.BoolVar(&options.tokens, "tokens", false, "Input is a disc token listing, not assembly")
	flags.BoolVar(&options.trace, "trace", false, "Print a trace line for every emulator step")
	flags.BoolVar(&options.dump, "dump", false, "Dump the assembled program, and the final emulator state")
	flags.BoolVar(&options.verbose, "verbose", false, "Verbose logging")
	flags.StringVar(&options.script, "script", "", "Starlark stimulus script for the emulator")
	flags.IntVar(&options.depth, "depth", cpu.MAX_NESTED_MACRO_DEPTH, "Maximum macro expansion rounds")
	flags.IntVar(&options.steps, "steps", 0, "Emulator step limit, 0 for none")

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// load reads the program from a source or token listing file.
func load(filename string) (prog *cpu.Program, err error) {
	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	if options.tokens {
		prog, err = disc.ReadTokens(inf)
		return
	}

	asm := &cpu.Assembler{
		Verbose:  options.verbose,
		MaxDepth: options.depth,
	}
	prog, err = asm.Parse(inf)
	if prog == nil {
		return
	}

	// Assembly is best effort; diagnostics are reported, not fatal.
	for _, diag := range asm.Diagnostics {
		glog.Errorf("%v: %v", filename, diag)
	}
	err = nil

	return
}

// assemble writes the program to the output file.
func assemble(prog *cpu.Program) (err error) {
	ouf, err := os.Create(options.output)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, ouf.Close())
	}()

	if options.minecraft {
		err = disc.WriteGiveCommands(ouf, prog)
		if err == nil {
			fmt.Printf("Assembly complete. Minecraft commands written to %v\n", options.output)
		}
		return
	}

	err = disc.WriteTokens(ouf, prog)
	if err == nil {
		fmt.Printf("Assembly complete. Token listing written to %v\n", options.output)
	}
	return
}

// emulate runs the program.
func emulate(prog *cpu.Program) (err error) {
	if prog.Len() == 0 {
		err = emulator.ErrProgramEmpty
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = options.verbose
	emu.Load(prog)

	if options.turing {
		emu.SetTapeMode(true)
		fmt.Println("Tape mode enabled: DA3-DA5 drive tape 1, DA6-DA8 drive tape 2.")
	}

	if len(options.script) != 0 {
		var script *stimulus.Script
		script, err = stimulus.Load(options.script, nil)
		if err != nil {
			return
		}
		script.Verbose = options.verbose
		emu.Stimulus = script
	}

	if options.interactive {
		err = emu.Interactive(os.Stdin, os.Stdout)
	} else {
		if options.trace {
			emu.Trace = os.Stdout
		}

		fmt.Println("Running program...")
		fmt.Print(emu.State())
		fmt.Println()

		err = emu.Run(options.steps)
		if err == nil {
			fmt.Println("Program halted.")
		}
		fmt.Print(emu.State())
	}

	if options.dump {
		pp.Println(emu.Snapshot())
	}

	return
}

func run(filename string) (err error) {
	prog, err := load(filename)
	if err != nil {
		return
	}

	if options.dump {
		pp.Println(prog)
	}

	if options.emulate || options.interactive {
		return emulate(prog)
	}

	return assemble(prog)
}

func main() {
	_ = flag.Set("logtostderr", "true")

	err := rootCmd.Execute()
	if err != nil {
		glog.Exitf("redisc: %v", err)
	}
	glog.Flush()
}
