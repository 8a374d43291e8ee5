package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/redisc/cpu"
)

func TestInteractive(t *testing.T) {
	assert := assert.New(t)

	emu := load(t, []string{"NOT", "DA1", "OUT"})

	session := strings.Join([]string{
		"set DA3 1",
		"set DA9 1",
		"bogus",
		"p",
		"",
		"r 2",
		"t on",
		"t sideways",
		"run",
		"this is never read",
	}, "\n")

	out := &bytes.Buffer{}
	err := emu.Interactive(strings.NewReader(session), out)
	assert.NoError(err)

	text := out.String()
	assert.True(strings.HasPrefix(text, interactiveHelp))
	assert.Contains(text, "Set DA3 input to 1")
	assert.Contains(text, ErrCommand.Error())
	assert.Contains(text, "  0: NOT <-- PC")
	assert.Contains(text, "ip: 3")
	assert.Contains(text, "tape1:")
	assert.True(strings.HasSuffix(text, "Program halted.\n"))

	assert.True(emu.Halted())
	assert.True(emu.Cpu.TapeMode)
	assert.True(emu.Cpu.Line[2].Input)
	assert.Equal(cpu.BLOCK_SIZE, emu.Ticks())
}

func TestInteractiveQuit(t *testing.T) {
	assert := assert.New(t)

	emu := load(t, []string{"NOT"})

	out := &bytes.Buffer{}
	err := emu.Interactive(strings.NewReader("step\nq\nstep\n"), out)
	assert.NoError(err)
	assert.Equal(1, emu.Ticks())
	assert.False(emu.Halted())
	assert.NotContains(out.String(), "Program halted.")

	// End of input leaves the session too.
	out.Reset()
	err = emu.Interactive(strings.NewReader("s\n"), out)
	assert.NoError(err)
	assert.Equal(1, emu.Ticks())
}

func TestParseSet(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		words []string
		line  int
		value bool
		err   error
	}){
		{[]string{"set", "DA1", "1"}, 0, true, nil},
		{[]string{"set", "DA8", "0"}, 7, false, nil},
		{[]string{"set", "DA4", "7"}, 3, true, nil},
		{[]string{"set", "DA0", "1"}, 0, false, ErrCommand},
		{[]string{"set", "DA9", "1"}, 0, false, ErrCommand},
		{[]string{"set", "XX3", "1"}, 0, false, ErrCommand},
		{[]string{"set", "DA3", "on"}, 0, false, ErrCommand},
		{[]string{"set", "DA3"}, 0, false, ErrCommand},
	}

	for n, entry := range table {
		line, value, err := parseSet(entry.words)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, "%d: %v", n, entry.words)
			continue
		}
		assert.NoError(err, "%d: %v", n, entry.words)
		assert.Equal(entry.line, line, "%d: %v", n, entry.words)
		assert.Equal(entry.value, value, "%d: %v", n, entry.words)
	}
}
