package cpu

import (
	"iter"
	"strings"
)

// Program is an assembled instruction stream.
type Program struct {
	Opcodes []Opcode // Instructions, in program order.
	LineNo  []int    // Source line of each opcode, zero for padding.
	Padding int      // Number of NOTs appended by Pad.
}

// ProgramFromMnemonics builds a program from an externally supplied
// mnemonic list. Unknown mnemonics become OP_INVALID.
func ProgramFromMnemonics(mnemonics []string) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, len(mnemonics)),
		LineNo:  make([]int, len(mnemonics)),
	}

	for n, mnemonic := range mnemonics {
		prog.Opcodes[n], _ = ParseOpcode(strings.TrimSpace(mnemonic))
		prog.LineNo[n] = n + 1
	}

	return
}

// Pad appends NOTs until the program fills a whole number of blocks.
func (prog *Program) Pad() {
	remainder := len(prog.Opcodes) % BLOCK_SIZE
	if remainder == 0 {
		return
	}

	need := BLOCK_SIZE - remainder
	for range need {
		prog.Opcodes = append(prog.Opcodes, OP_NOT)
		prog.LineNo = append(prog.LineNo, 0)
	}
	prog.Padding += need
}

// Len is the number of opcodes.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Mnemonics returns the opcode names.
func (prog *Program) Mnemonics() (names []string) {
	for _, op := range prog.Opcodes {
		names = append(names, op.String())
	}
	return
}

// Tokens returns the disc token of each opcode.
func (prog *Program) Tokens() (tokens []string) {
	for _, op := range prog.Opcodes {
		tokens = append(tokens, op.Token())
	}
	return
}

// Blocks iterates over the program in BLOCK_SIZE groups.
// The final group is short if the program is not padded.
func (prog *Program) Blocks() iter.Seq2[int, []Opcode] {
	return func(yield func(index int, block []Opcode) bool) {
		for index := 0; index*BLOCK_SIZE < len(prog.Opcodes); index++ {
			start := index * BLOCK_SIZE
			end := min(start+BLOCK_SIZE, len(prog.Opcodes))
			if !yield(index, prog.Opcodes[start:end]) {
				return
			}
		}
	}
}
