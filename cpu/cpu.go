// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Data line assignments.
const (
	DATA_LINES = 8

	LINE_HALT        = 0 // DA1: halt flag latch.
	LINE_SKIP        = 1 // DA2: skip flag latch.
	LINE_TAPE1_LEFT  = 2 // DA3: tape 1 move left.
	LINE_TAPE1_HEAD  = 3 // DA4: tape 1 read/write.
	LINE_TAPE1_RIGHT = 4 // DA5: tape 1 move right.
	LINE_TAPE2_LEFT  = 5 // DA6: tape 2 move left.
	LINE_TAPE2_HEAD  = 6 // DA7: tape 2 read/write.
	LINE_TAPE2_RIGHT = 7 // DA8: tape 2 move right.
)

// DataLine is one multiplexed data line.
type DataLine struct {
	Input  bool // Externally driven input bit.
	Output bool // Output bit.
	Memory bool // Internal latch; only used by DA1 and DA2.
}

// Cpu is the simulation context for the single bit disc computer.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register bool                 // The one bit register.
	Line     [DATA_LINES]DataLine // Data lines DA1..DA8.
	Selected int                  // Selected data line, 0..7.
	Ip       int                  // Program counter.
	Halted   bool                 // Set once the program has halted.
	SkipNext bool                 // Skip the next instruction.
	TapeMode bool                 // Tape lines address the tapes.
	Tape     [2]Tape              // Tape 1 (DA3-DA5) and tape 2 (DA6-DA8).

	Ticks int // Steps since reset.

	commit bool // OUT pending for this step.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()
	return
}

// Reset the CPU state. Tape mode is preserved.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		glog.Infof("cpu: reset")
	}

	cpu.Register = false
	clear(cpu.Line[:])
	cpu.Selected = 0
	cpu.Ip = 0
	cpu.Halted = false
	cpu.SkipNext = false
	cpu.Ticks = 0
	cpu.commit = false
	for n := range cpu.Tape {
		cpu.Tape[n].Reset()
	}
}

// SetInput drives the input bit of a data line.
func (cpu *Cpu) SetInput(line int, value bool) (err error) {
	if line < 0 || line >= DATA_LINES {
		err = ErrDataLine
		return
	}
	cpu.Line[line].Input = value
	return
}

// Output returns the output bit of a data line.
func (cpu *Cpu) Output(line int) bool {
	if line < 0 || line >= DATA_LINES {
		return false
	}
	return cpu.Line[line].Output
}

// wrap applies the end of program policy: halt if the halt flag is
// latched, otherwise loop back to the start.
func (cpu *Cpu) wrap(size int) {
	if cpu.Ip < size {
		return
	}
	if cpu.Line[LINE_HALT].Memory {
		cpu.Halted = true
		return
	}
	cpu.Ip = 0
}

// value returns the bit sourced by the selected data line.
func (cpu *Cpu) value() bool {
	line := cpu.Selected
	switch {
	case line == LINE_HALT || line == LINE_SKIP:
		return cpu.Line[line].Memory
	case cpu.TapeMode && line == LINE_TAPE1_HEAD:
		return cpu.Tape[0].Read()
	case cpu.TapeMode && line == LINE_TAPE2_HEAD:
		return cpu.Tape[1].Read()
	}
	return cpu.Line[line].Input
}

// isTapeLine is true when the selected line is routed to a tape.
func (cpu *Cpu) isTapeLine() bool {
	return cpu.TapeMode && cpu.Selected >= LINE_TAPE1_LEFT
}

// tape performs an LD (write == false) or OUT commit (write == true)
// on the selected tape line.
//
// Tape 2's move-left line is not gated on the register, and its head is;
// tape 1 is the other way around.
func (cpu *Cpu) tape(write bool) {
	reg := cpu.Register

	switch cpu.Selected {
	case LINE_TAPE1_LEFT:
		if reg {
			cpu.Tape[0].MoveLeft()
		}
	case LINE_TAPE1_HEAD:
		if write {
			cpu.Tape[0].Write(reg)
		} else {
			cpu.Register = cpu.Tape[0].Read()
		}
	case LINE_TAPE1_RIGHT:
		if reg {
			cpu.Tape[0].MoveRight()
		}
	case LINE_TAPE2_LEFT:
		cpu.Tape[1].MoveLeft()
	case LINE_TAPE2_HEAD:
		if reg {
			if write {
				cpu.Tape[1].Write(reg)
			} else {
				cpu.Register = cpu.Tape[1].Read()
			}
		}
	case LINE_TAPE2_RIGHT:
		if reg {
			cpu.Tape[1].MoveRight()
		}
	}
}

// store commits the register to the selected line's sink.
func (cpu *Cpu) store() {
	line := cpu.Selected
	switch {
	case cpu.isTapeLine():
		cpu.tape(true)
	case line == LINE_HALT || line == LINE_SKIP:
		cpu.Line[line].Memory = cpu.Register
	default:
		cpu.Line[line].Output = cpu.Register
	}
}

// Tick executes a single step of the program.
func (cpu *Cpu) Tick(program []Opcode) (err error) {
	if cpu.Halted {
		return
	}

	cpu.wrap(len(program))
	if cpu.Halted || len(program) == 0 {
		return
	}

	cpu.Ticks++

	if cpu.SkipNext {
		cpu.SkipNext = false
		if cpu.Verbose {
			glog.Infof("cpu: %3d %v skipped", cpu.Ip, program[cpu.Ip])
		}
		cpu.Ip++
		cpu.wrap(len(program))
		return
	}

	op := program[cpu.Ip]

	switch op {
	case OP_NOT:
		cpu.Register = !cpu.Register
	case OP_SKZ:
		if cpu.Line[LINE_SKIP].Memory {
			cpu.SkipNext = true
		}
	case OP_OR:
		cpu.Register = cpu.Register || cpu.value()
	case OP_AND:
		cpu.Register = cpu.Register && cpu.value()
	case OP_XOR:
		cpu.Register = cpu.Register != cpu.value()
	case OP_LD:
		if cpu.isTapeLine() {
			cpu.tape(false)
		} else {
			cpu.Register = cpu.value()
		}
	case OP_OUT:
		cpu.commit = true
	case OP_DA1, OP_DA2, OP_DA3, OP_DA4, OP_DA5, OP_DA6, OP_DA7, OP_DA8:
		cpu.Selected, _ = op.DataLine()
	default:
		cpu.Halted = true
		err = fmt.Errorf("%w: %v", ErrOpcodeInvalid, op)
		return
	}

	if cpu.commit {
		cpu.store()
		cpu.commit = false
	}

	if cpu.Verbose {
		glog.Infof("cpu: %3d %-3v reg:%v DA%d in:%v out:%v", cpu.Ip, op,
			bit(cpu.Register), cpu.Selected+1,
			bit(cpu.Line[cpu.Selected].Input), bit(cpu.Line[cpu.Selected].Output))
	}

	cpu.Ip++
	cpu.wrap(len(program))

	return
}

func bit(value bool) int {
	if value {
		return 1
	}
	return 0
}

// tapeString formats the cells around the head.
func tapeString(tp *Tape, radius int) string {
	var cells []string
	for n, cell := range tp.Window(radius) {
		str := fmt.Sprint(bit(cell))
		if n == radius {
			str = "[" + str + "]"
		}
		cells = append(cells, str)
	}
	return fmt.Sprintf("%v (head at %d)", strings.Join(cells, " "), tp.Head)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("%8s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("%8s: %d\n", "register", bit(cpu.Register))
	text += fmt.Sprintf("%8s: DA%d\n", "selected", cpu.Selected+1)
	text += fmt.Sprintf("%8s: %v\n", "halted", cpu.Halted)
	text += fmt.Sprintf("%8s: %v\n", "skip", cpu.SkipNext)
	text += fmt.Sprintf("%8s: %v\n", "tape", cpu.TapeMode)

	for n, line := range cpu.Line {
		var strval string
		if n == LINE_HALT || n == LINE_SKIP {
			strval = fmt.Sprintf("mem=%d", bit(line.Memory))
		} else {
			strval = fmt.Sprintf("in=%d out=%d", bit(line.Input), bit(line.Output))
		}
		if n == cpu.Selected {
			strval += " [selected]"
		}
		text += fmt.Sprintf("%8s: %v\n", fmt.Sprintf("DA%d", n+1), strval)
	}

	if cpu.TapeMode {
		text += fmt.Sprintf("%8s: %v\n", "tape1", tapeString(&cpu.Tape[0], 3))
		text += fmt.Sprintf("%8s: %v\n", "tape2", tapeString(&cpu.Tape[1], 3))
	}

	return
}
