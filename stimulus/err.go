package stimulus

import (
	"errors"
	"fmt"

	"github.com/ezrec/redisc/translate"
)

var f = translate.From

var (
	ErrStimulusMissing = errors.New(f("script does not define a callable 'stimulus'"))
	ErrStimulusReturn  = errors.New(f("stimulus must return None or a dict"))
	ErrStimulusLine    = errors.New(f("stimulus data line must be 3..8 or DA3..DA8"))
)

// ErrScript locates a failure inside a stimulus script.
type ErrScript struct {
	Name string
	Step int
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: step %d: %v", err.Name, err.Step, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// lineError reports an unusable dict key.
func lineError(key fmt.Stringer) error {
	return fmt.Errorf("%w: %v", ErrStimulusLine, key)
}
