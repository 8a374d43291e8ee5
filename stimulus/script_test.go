package stimulus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/redisc/cpu"
	"github.com/ezrec/redisc/emulator"
)

func newEmulator(mnemonics ...string) (emu *emulator.Emulator) {
	emu = emulator.NewEmulator()
	emu.Load(cpu.ProgramFromMnemonics(mnemonics))
	return
}

func TestScriptDrive(t *testing.T) {
	assert := assert.New(t)

	script, err := Load("drive.star", `
def stimulus(step, pc, register, outputs):
    return {"DA3": True}
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	// Copy DA3 to DA4.
	emu := newEmulator("DA3", "LD", "DA4", "OUT")
	emu.Stimulus = script

	err = emu.Run(4)
	assert.ErrorIs(err, emulator.ErrStepLimit)
	assert.True(emu.DataOutput(3))
}

func TestScriptKeys(t *testing.T) {
	assert := assert.New(t)

	script, err := Load("keys.star", `
def stimulus(step, pc, register, outputs):
    return {4: 1, "DA5": "yes", 8: 0, "DA6": step == 0}
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	emu := newEmulator("NOT")
	assert.NoError(emu.SetDataInput(7, true))

	assert.NoError(script.Stimulate(emu))
	assert.False(emu.Cpu.Line[2].Input)
	assert.True(emu.Cpu.Line[3].Input)
	assert.True(emu.Cpu.Line[4].Input)
	assert.True(emu.Cpu.Line[5].Input)
	assert.False(emu.Cpu.Line[7].Input)

	_, err = emu.Tick()
	assert.NoError(err)
	assert.NoError(script.Stimulate(emu))
	assert.False(emu.Cpu.Line[5].Input)
}

func TestScriptArguments(t *testing.T) {
	assert := assert.New(t)

	script, err := Load("args.star", `
def stimulus(step, pc, register, outputs):
    if len(outputs) != 8:
        fail("outputs")
    if pc != step % 4:
        fail("pc")
    if step == 1 and register != 1:
        fail("register")
    if step == 3 and outputs[3] != 1:
        fail("output")
    return None
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	emu := newEmulator("NOT", "DA4", "OUT", "NOT")
	emu.Stimulus = script

	err = emu.Run(10)
	assert.ErrorIs(err, emulator.ErrStepLimit)
}

func TestScriptErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load("missing.star", "x = 1\n")
	assert.ErrorIs(err, ErrStimulusMissing)

	_, err = Load("notfunc.star", "stimulus = 1\n")
	assert.ErrorIs(err, ErrStimulusMissing)

	_, err = Load("syntax.star", "def stimulus(:\n")
	assert.Error(err)

	table := [](struct {
		body string
		err  error
	}){
		{`return 5`, ErrStimulusReturn},
		{`return {2: 1}`, ErrStimulusLine},
		{`return {9: 1}`, ErrStimulusLine},
		{`return {"DA1": 1}`, ErrStimulusLine},
		{`return {"DA9": 1}`, ErrStimulusLine},
		{`return {"DA": 1}`, ErrStimulusLine},
		{`return {"XX4": 1}`, ErrStimulusLine},
		{`return {None: 1}`, ErrStimulusLine},
	}

	for n, entry := range table {
		src := "def stimulus(step, pc, register, outputs):\n    " + entry.body + "\n"
		script, err := Load("bad.star", src)
		assert.NoError(err, "%d: %v", n, entry.body)
		if err != nil {
			continue
		}

		emu := newEmulator("NOT")
		err = script.Stimulate(emu)
		assert.ErrorIs(err, entry.err, "%d: %v", n, entry.body)

		var se *ErrScript
		assert.True(errors.As(err, &se), "%d: %v", n, entry.body)
	}

	// Failures inside the script stop the emulator.
	script, err := Load("fail.star", `
def stimulus(step, pc, register, outputs):
    if step == 2:
        fail("enough")
`)
	assert.NoError(err)
	if err != nil {
		return
	}

	emu := newEmulator("NOT")
	emu.Stimulus = script
	err = emu.Run(0)
	var se *ErrScript
	assert.True(errors.As(err, &se))
	if se != nil {
		assert.Equal(2, se.Step)
		assert.Equal("fail.star", se.Name)
	}
	assert.Equal(2, emu.Ticks())
}
