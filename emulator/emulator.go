// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled disc programs on the cpu model.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/ezrec/redisc/cpu"
)

// Stimulus drives data line inputs before each step.
type Stimulus interface {
	Stimulate(emu *Emulator) error
}

// Emulator state. CPU + program + stimulus.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Stimulus Stimulus  // Optional input driver, called before every tick.
	Trace    io.Writer // Optional per-step trace output.
}

// Snapshot is a copy of the observable machine state.
type Snapshot struct {
	Ip        int
	Register  bool
	Selected  int
	Halted    bool
	SkipNext  bool
	TapeMode  bool
	Lines     [cpu.DATA_LINES]cpu.DataLine
	TapeHeads [2]int
	Ticks     int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Load installs a program and resets the machine.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// LoadSource assembles source text and loads the result.
// Assembler diagnostics are returned alongside a successful load.
func (emu *Emulator) LoadSource(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if prog == nil {
		return
	}
	if prog.Len() == 0 {
		err = errors.Join(err, ErrProgramEmpty)
		return
	}

	emu.Load(prog)
	if emu.Verbose {
		glog.Infof("emulator: loaded %d instructions", prog.Len())
	}

	return
}

// Reset the machine state. Tape mode is kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// SetTapeMode enables or disables the tapes.
func (emu *Emulator) SetTapeMode(enable bool) {
	emu.Cpu.TapeMode = enable
	if emu.Verbose {
		glog.Infof("emulator: tape mode %v", enable)
	}
}

// SetDataInput drives a data line's input bit, lines numbered from zero.
func (emu *Emulator) SetDataInput(line int, value bool) error {
	return emu.Cpu.SetInput(line, value)
}

// DataOutput reads a data line's output bit, lines numbered from zero.
func (emu *Emulator) DataOutput(line int) bool {
	return emu.Cpu.Output(line)
}

// Halted is true once the program has halted.
func (emu *Emulator) Halted() bool {
	return emu.Cpu.Halted
}

// Running is true until the program halts.
func (emu *Emulator) Running() bool {
	return !emu.Cpu.Halted
}

// Ip returns current program counter.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Ip
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Opcode returns the opcode at the program counter.
func (emu *Emulator) Opcode() cpu.Opcode {
	if emu.Cpu.Ip < 0 || emu.Cpu.Ip >= emu.Program.Len() {
		return cpu.OP_INVALID
	}
	return emu.Program.Opcodes[emu.Cpu.Ip]
}

// LineNo returns the source line number for the current opcode.
func (emu *Emulator) LineNo() int {
	ip := emu.Cpu.Ip
	if ip < 0 || ip >= len(emu.Program.LineNo) {
		return 0
	}
	return emu.Program.LineNo[ip]
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	if emu.Stimulus != nil {
		err = emu.Stimulus.Stimulate(emu)
		if err != nil {
			return
		}
	}

	ip := emu.Cpu.Ip
	op := emu.Opcode()
	lineno := emu.LineNo()
	skipped := emu.Cpu.SkipNext

	err = emu.Cpu.Tick(emu.Program.Opcodes)
	if err != nil {
		err = &ErrRuntime{Ip: ip, LineNo: lineno, Op: op, Err: err}
	}

	if emu.Trace != nil && emu.Program.Len() > 0 {
		emu.trace(ip, op, skipped)
	}

	done = emu.Cpu.Halted
	return
}

// trace writes one line describing the step just executed.
func (emu *Emulator) trace(ip int, op cpu.Opcode, skipped bool) {
	c := emu.Cpu
	text := fmt.Sprintf("PC:%3d | %8v | ", ip, op)
	if skipped {
		text += fmt.Sprintf("SKIPPED | REG:%d", bit(c.Register))
	} else {
		line := &c.Line[c.Selected]
		text += fmt.Sprintf("REG:%d | DA%d IN:%d OUT:%d",
			bit(c.Register), c.Selected+1, bit(line.Input), bit(line.Output))
	}
	fmt.Fprintln(emu.Trace, text)
}

// Run ticks until the program halts. A positive limit bounds the number
// of ticks, returning ErrStepLimit when reached.
func (emu *Emulator) Run(limit int) (err error) {
	for steps := 0; limit <= 0 || steps < limit; steps++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrStepLimit
	return
}

func bit(value bool) int {
	if value {
		return 1
	}
	return 0
}

// Snapshot copies the machine state.
func (emu *Emulator) Snapshot() Snapshot {
	c := emu.Cpu
	return Snapshot{
		Ip:        c.Ip,
		Register:  c.Register,
		Selected:  c.Selected,
		Halted:    c.Halted,
		SkipNext:  c.SkipNext,
		TapeMode:  c.TapeMode,
		Lines:     c.Line,
		TapeHeads: [2]int{c.Tape[0].Head, c.Tape[1].Head},
		Ticks:     c.Ticks,
	}
}

// State returns a human readable dump of the machine.
func (emu *Emulator) State() string {
	return "=== Computer State ===\n" + emu.Cpu.String()
}

// ProgramListing returns the program, marking the program counter.
func (emu *Emulator) ProgramListing() string {
	var sb strings.Builder

	sb.WriteString("=== Program ===\n")
	for n, op := range emu.Program.Opcodes {
		fmt.Fprintf(&sb, "%3d: %v", n, op)
		if n == emu.Cpu.Ip {
			sb.WriteString(" <-- PC")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
