package disc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/redisc/cpu"
)

func TestBoxName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Program", BoxName(0, 0))
	assert.Equal("Program", BoxName(0, 1))
	assert.Equal("Program_Part_1", BoxName(0, 2))
	assert.Equal("Program_Part_2", BoxName(1, 2))
}

func TestWriteTokens(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.ProgramFromMnemonics([]string{"NOT", "SKZ", "DA4", "DA8", "OUT"})

	buf := &bytes.Buffer{}
	err := WriteTokens(buf, prog)
	assert.NoError(err)
	assert.Equal("13\ncat\n11\n5\nmall\n", buf.String())

	buf.Reset()
	err = WriteTokens(buf, &cpu.Program{})
	assert.NoError(err)
	assert.Equal("", buf.String())

	buf.Reset()
	err = WriteTokens(buf, cpu.ProgramFromMnemonics([]string{"NOT", "JMP"}))
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	assert.Equal("", buf.String())
}

func TestWriteGiveCommands(t *testing.T) {
	assert := assert.New(t)

	prog := cpu.ProgramFromMnemonics([]string{"NOT", "DA1", "OUT"})

	buf := &bytes.Buffer{}
	err := WriteGiveCommands(buf, prog)
	assert.NoError(err)
	assert.Equal(`/give @p shulker_box{display:{Name:'{"text":"Program"}'},BlockEntityTag:{Items:[`+
		`{Slot:0b,id:"minecraft:music_disc_13",Count:1b},`+
		`{Slot:1b,id:"minecraft:music_disc_stal",Count:1b},`+
		`{Slot:2b,id:"minecraft:music_disc_mall",Count:1b}]}}`+"\n", buf.String())
}

func TestWriteGiveCommandsParts(t *testing.T) {
	assert := assert.New(t)

	mnemonics := make([]string, cpu.BLOCK_SIZE+1)
	for n := range mnemonics {
		mnemonics[n] = "XOR"
	}
	mnemonics[cpu.BLOCK_SIZE] = "DA7"
	prog := cpu.ProgramFromMnemonics(mnemonics)

	buf := &bytes.Buffer{}
	err := WriteGiveCommands(buf, prog)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(lines, 2)
	assert.Contains(lines[0], `{"text":"Program_Part_1"}`)
	assert.Equal(cpu.BLOCK_SIZE, strings.Count(lines[0], "music_disc_far"))
	assert.Contains(lines[0], `{Slot:26b,id:"minecraft:music_disc_far",Count:1b}]}}`)
	assert.Equal(`/give @p shulker_box{display:{Name:'{"text":"Program_Part_2"}'},BlockEntityTag:{Items:[`+
		`{Slot:0b,id:"minecraft:music_disc_otherside",Count:1b}]}}`, lines[1])

	buf.Reset()
	err = WriteGiveCommands(buf, cpu.ProgramFromMnemonics([]string{"HALT"}))
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
}

func TestReadTokens(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("NOT\nDA3\nOUT\nDA1\nOUT\n"))
	assert.NoError(err)

	buf := &bytes.Buffer{}
	assert.NoError(WriteTokens(buf, prog))

	back, err := ReadTokens(buf)
	assert.NoError(err)
	assert.Equal(prog.Opcodes, back.Opcodes)
	assert.Equal(cpu.BLOCK_SIZE, back.Len())
	assert.Equal(1, back.LineNo[0])

	back, err = ReadTokens(strings.NewReader("\n 13 \n\nmall\n"))
	assert.NoError(err)
	assert.Equal([]cpu.Opcode{cpu.OP_NOT, cpu.OP_OUT}, back.Opcodes)
	assert.Equal([]int{2, 4}, back.LineNo)

	back, err = ReadTokens(strings.NewReader("13\nrelic\n"))
	assert.ErrorIs(err, ErrTokenUnknown)
	assert.Nil(back)
	var te *ErrToken
	assert.ErrorAs(err, &te)
	if te != nil {
		assert.Equal(2, te.LineNo)
		assert.Equal("relic", te.Token)
	}
}
