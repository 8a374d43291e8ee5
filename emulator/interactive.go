package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const interactiveHelp = `Interactive mode commands:
  Enter/step     - Execute next instruction
  q/quit         - Quit emulator
  r/run [n]      - Run until halted, or for n steps
  s/state        - Show current state
  p/program      - Show program with PC
  set DAx 0/1    - Set data line x input to 0 or 1
  t/tape on/off  - Enable or disable tape mode
  h/help         - Show this help
`

// parseSet parses "set DAx value", returning a zero based line index.
func parseSet(words []string) (line int, value bool, err error) {
	if len(words) != 3 || !strings.HasPrefix(words[1], "DA") {
		err = ErrCommand
		return
	}

	line, err = strconv.Atoi(words[1][2:])
	if err != nil || line < 1 || line > 8 {
		err = ErrCommand
		return
	}
	line--

	num, err := strconv.Atoi(words[2])
	if err != nil {
		err = ErrCommand
		return
	}
	value = num != 0

	return
}

// Interactive runs a console session, reading commands from in until the
// program halts, input ends, or the user quits.
func (emu *Emulator) Interactive(in io.Reader, out io.Writer) (err error) {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, interactiveHelp)
	fmt.Fprintln(out)
	fmt.Fprint(out, emu.State())

	for emu.Running() {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		words := strings.Fields(scanner.Text())
		command := ""
		if len(words) > 0 {
			command = words[0]
		}

		switch command {
		case "q", "quit":
			return
		case "r", "run":
			limit := 0
			if len(words) > 1 {
				limit, err = strconv.Atoi(words[1])
				if err != nil {
					fmt.Fprintln(out, ErrCommand)
					err = nil
					continue
				}
			}
			err = emu.Run(limit)
			if errors.Is(err, ErrStepLimit) {
				err = nil
			}
			if err != nil {
				return
			}
			fmt.Fprint(out, emu.State())
		case "s", "state":
			fmt.Fprint(out, emu.State())
		case "p", "program":
			fmt.Fprint(out, emu.ProgramListing())
		case "h", "help":
			fmt.Fprint(out, interactiveHelp)
		case "t", "tape":
			if len(words) != 2 || (words[1] != "on" && words[1] != "off") {
				fmt.Fprintln(out, ErrCommand)
				continue
			}
			emu.SetTapeMode(words[1] == "on")
			fmt.Fprint(out, emu.State())
		case "set":
			line, value, perr := parseSet(words)
			if perr != nil {
				fmt.Fprintln(out, perr)
				continue
			}
			err = emu.SetDataInput(line, value)
			if err != nil {
				return
			}
			fmt.Fprintf(out, "Set DA%d input to %d\n", line+1, bit(value))
			fmt.Fprint(out, emu.State())
		case "", "step":
			_, err = emu.Tick()
			if err != nil {
				return
			}
			fmt.Fprint(out, emu.State())
		default:
			fmt.Fprintln(out, ErrCommand)
		}
	}

	fmt.Fprintln(out, "Program halted.")
	return
}
