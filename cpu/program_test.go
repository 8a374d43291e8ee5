package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Pad(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Opcodes: []Opcode{OP_XOR}, LineNo: []int{1}}
	prog.Pad()
	assert.Equal(BLOCK_SIZE, prog.Len())
	assert.Equal(BLOCK_SIZE-1, prog.Padding)
	assert.Equal(0, prog.LineNo[BLOCK_SIZE-1])

	// Already aligned
	prog.Pad()
	assert.Equal(BLOCK_SIZE, prog.Len())
	assert.Equal(BLOCK_SIZE-1, prog.Padding)
}

func TestProgram_Tokens(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Opcodes: []Opcode{OP_NOT, OP_SKZ, OP_DA4, OP_DA8}}
	assert.Equal([]string{"13", "cat", "11", "5"}, prog.Tokens())
	assert.Equal([]string{"NOT", "SKZ", "DA4", "DA8"}, prog.Mnemonics())
}

func TestProgram_Blocks(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	for n := range 2*BLOCK_SIZE + 3 {
		prog.Opcodes = append(prog.Opcodes, Opcode(n%OPCODE_COUNT))
	}

	var sizes []int
	var indexes []int
	for index, block := range prog.Blocks() {
		indexes = append(indexes, index)
		sizes = append(sizes, len(block))
		assert.Equal(prog.Opcodes[index*BLOCK_SIZE], block[0])
	}
	assert.Equal([]int{0, 1, 2}, indexes)
	assert.Equal([]int{BLOCK_SIZE, BLOCK_SIZE, 3}, sizes)

	// Early stop
	count := 0
	for range prog.Blocks() {
		count++
		break
	}
	assert.Equal(1, count)

	// Empty
	for range (&Program{}).Blocks() {
		assert.Fail("empty program has no blocks")
	}
}

func TestProgramFromMnemonics(t *testing.T) {
	assert := assert.New(t)

	prog := ProgramFromMnemonics([]string{"NOT", " DA2 ", "JMP"})
	assert.Equal([]Opcode{OP_NOT, OP_DA2, OP_INVALID}, prog.Opcodes)
	assert.Equal([]int{1, 2, 3}, prog.LineNo)
	assert.Equal(0, prog.Padding)
}
