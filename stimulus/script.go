// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package stimulus drives emulator data line inputs from Starlark scripts.
//
// A script defines a function:
//
//	def stimulus(step, pc, register, outputs):
//	    return {"DA3": step % 2 == 0}
//
// It is called before every emulator step. step counts the steps taken
// since reset, outputs is the list of the eight data line output bits.
// The function returns None, or a dict mapping data lines (3..8, or
// "DA3".."DA8") to the input bit to drive.
package stimulus

import (
	"strings"

	"github.com/golang/glog"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/redisc/cpu"
	"github.com/ezrec/redisc/emulator"
)

// Script is a compiled stimulus script.
type Script struct {
	Verbose bool   // If set, logs every line driven by the script.
	Name    string // Script file name, for diagnostics.

	thread *starlark.Thread
	fn     starlark.Callable
}

var _ emulator.Stimulus = (*Script)(nil)

// Load compiles a script. src may be nil to read filename, or a string,
// []byte or io.Reader holding the script text.
func Load(filename string, src any) (script *Script, err error) {
	thread := &starlark.Thread{
		Name: "stimulus",
		Print: func(_ *starlark.Thread, msg string) {
			glog.Infof("%v: %v", filename, msg)
		},
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, nil)
	if err != nil {
		return
	}

	fn, ok := globals["stimulus"].(starlark.Callable)
	if !ok {
		err = &ErrScript{Name: filename, Err: ErrStimulusMissing}
		return
	}

	script = &Script{
		Name:   filename,
		thread: thread,
		fn:     fn,
	}
	return
}

// dataLine converts a dict key to a zero based data line.
func dataLine(key starlark.Value) (line int, err error) {
	var num int
	switch key := key.(type) {
	case starlark.Int:
		n, ok := key.Int64()
		if !ok {
			err = lineError(key)
			return
		}
		num = int(n)
	case starlark.String:
		text, ok := strings.CutPrefix(string(key), "DA")
		if !ok || len(text) != 1 || text[0] < '0' || text[0] > '9' {
			err = lineError(key)
			return
		}
		num = int(text[0] - '0')
	default:
		err = lineError(key)
		return
	}

	if num < 3 || num > cpu.DATA_LINES {
		err = lineError(key)
		return
	}

	line = num - 1
	return
}

// Stimulate calls the script's stimulus function, and drives the
// data line inputs it returns.
func (script *Script) Stimulate(emu *emulator.Emulator) (err error) {
	step := emu.Ticks()
	defer func() {
		if err != nil {
			err = &ErrScript{Name: script.Name, Step: step, Err: err}
		}
	}()

	outputs := make([]starlark.Value, cpu.DATA_LINES)
	for n := range outputs {
		outputs[n] = starlark.MakeInt(bit(emu.DataOutput(n)))
	}

	args := starlark.Tuple{
		starlark.MakeInt(step),
		starlark.MakeInt(emu.Ip()),
		starlark.MakeInt(bit(emu.Cpu.Register)),
		starlark.NewList(outputs),
	}

	rc, err := starlark.Call(script.thread, script.fn, args, nil)
	if err != nil {
		return
	}

	if rc == starlark.None {
		return
	}

	dict, ok := rc.(*starlark.Dict)
	if !ok {
		err = ErrStimulusReturn
		return
	}

	for _, item := range dict.Items() {
		var line int
		line, err = dataLine(item[0])
		if err != nil {
			return
		}
		value := bool(item[1].Truth())
		if script.Verbose {
			glog.Infof("stimulus: step %d: DA%d = %v", step, line+1, bit(value))
		}
		err = emu.SetDataInput(line, value)
		if err != nil {
			return
		}
	}

	return
}

func bit(value bool) int {
	if value {
		return 1
	}
	return 0
}
