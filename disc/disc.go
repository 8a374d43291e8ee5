// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package disc encodes assembled programs as music disc listings.
//
// A token listing holds one disc name per line. Give commands pack the
// discs into shulker boxes of cpu.BLOCK_SIZE slots, one command per box.
package disc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/redisc/cpu"
)

// BoxName returns the display name of a box, numbered from zero, in a
// program of count boxes.
func BoxName(index int, count int) string {
	if count <= 1 {
		return "Program"
	}
	return fmt.Sprintf("Program_Part_%d", index+1)
}

// checkProgram rejects programs holding opcodes that have no disc.
func checkProgram(prog *cpu.Program) (err error) {
	for n, op := range prog.Opcodes {
		if !op.Valid() {
			err = fmt.Errorf("%w: %v at %d", cpu.ErrOpcodeInvalid, op, n)
			return
		}
	}
	return
}

// WriteTokens writes the disc token of every opcode, one per line.
func WriteTokens(w io.Writer, prog *cpu.Program) (err error) {
	err = checkProgram(prog)
	if err != nil {
		return
	}

	bw := bufio.NewWriter(w)
	for _, token := range prog.Tokens() {
		_, err = fmt.Fprintln(bw, token)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// giveCommand formats the command that gives one filled box.
func giveCommand(name string, block []cpu.Opcode) string {
	items := make([]string, len(block))
	for slot, op := range block {
		items[slot] = fmt.Sprintf(`{Slot:%db,id:"minecraft:music_disc_%v",Count:1b}`, slot, op.Token())
	}

	return fmt.Sprintf(`/give @p shulker_box{display:{Name:'{"text":"%v"}'},BlockEntityTag:{Items:[%v]}}`,
		name, strings.Join(items, ","))
}

// WriteGiveCommands writes one give command per block of the program.
func WriteGiveCommands(w io.Writer, prog *cpu.Program) (err error) {
	err = checkProgram(prog)
	if err != nil {
		return
	}

	count := (prog.Len() + cpu.BLOCK_SIZE - 1) / cpu.BLOCK_SIZE

	bw := bufio.NewWriter(w)
	for index, block := range prog.Blocks() {
		_, err = fmt.Fprintln(bw, giveCommand(BoxName(index, count), block))
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// ReadTokens reads a token listing back into a program. Blank lines are
// ignored; the program is not padded.
func ReadTokens(r io.Reader) (prog *cpu.Program, err error) {
	prog = &cpu.Program{}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		token := strings.TrimSpace(scanner.Text())
		if len(token) == 0 {
			continue
		}

		op, ok := cpu.ParseToken(token)
		if !ok {
			prog = nil
			err = &ErrToken{LineNo: lineno, Token: token, Err: ErrTokenUnknown}
			return
		}

		prog.Opcodes = append(prog.Opcodes, op)
		prog.LineNo = append(prog.LineNo, lineno)
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}
