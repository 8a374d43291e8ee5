package cpu

import (
	"errors"

	"github.com/ezrec/redisc/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrDataLine      = errors.New(f("data line out of range"))

	// Assembler errors
	ErrMacroSyntax             = errors.New(f("def syntax, expected: def NAME(param, ...)"))
	ErrMacroParen              = errors.New(f("def missing closing parenthesis"))
	ErrMacroParameterDuplicate = errors.New(f("def parameter duplicated"))
	ErrMacroNesting            = errors.New(f("def in def prohibited"))
	ErrMacroLonely             = errors.New(f("def without end"))
	ErrMacroBody               = errors.New(f("invalid instruction in macro body"))
	ErrMacroUnknown            = errors.New(f("unknown macro"))
	ErrMacroArity              = errors.New(f("argument count mismatch"))
	ErrMacroArgument           = errors.New(f("invalid macro argument"))
	ErrMacroDepth              = errors.New(f("maximum nested macro depth exceeded"))
	ErrInstructionInvalid      = errors.New(f("invalid opcode or macro invocation"))
)

// ErrSyntax locates an assembler diagnostic in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro is a failure while expanding a macro invocation.
type ErrMacro struct {
	Macro string
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v %v", err.Macro, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}

// ErrArgument names the offending argument of an invocation.
type ErrArgument string

func (err ErrArgument) Error() string {
	return f("'%v' is not an opcode or macro invocation", string(err))
}

func (err ErrArgument) Is(target error) bool {
	return target == ErrMacroArgument
}

// ErrArity reports an argument count mismatch.
type ErrArity struct {
	Want int
	Got  int
}

func (err ErrArity) Error() string {
	return f("expected %d arguments, got %d", err.Want, err.Got)
}

func (err ErrArity) Is(target error) bool {
	return target == ErrMacroArity
}
