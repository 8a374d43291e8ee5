package emulator

import (
	"errors"

	"github.com/ezrec/redisc/cpu"
	"github.com/ezrec/redisc/translate"
)

var f = translate.From

var (
	ErrProgramEmpty = errors.New(f("no instructions found"))
	ErrStepLimit    = errors.New(f("step limit reached"))
	ErrCommand      = errors.New(f("invalid command (h for help)"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip     int
	LineNo int
	Op     cpu.Opcode
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d (line %d) %v: %v", err.Ip, err.LineNo, err.Op, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
