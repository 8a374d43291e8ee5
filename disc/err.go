package disc

import (
	"errors"

	"github.com/ezrec/redisc/translate"
)

var f = translate.From

var (
	ErrTokenUnknown = errors.New(f("unknown disc token"))
)

// ErrToken locates a bad line in a token listing.
type ErrToken struct {
	LineNo int
	Token  string
	Err    error
}

func (err *ErrToken) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Token, err.Err)
}

func (err *ErrToken) Unwrap() error {
	return err.Err
}
