// Package translate formats user-facing messages for the redisc tools
// in the language of the current locale.
package translate

import (
	"github.com/golang/glog"
	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		glog.Warningf("redisc: locale: %v", err)
	}

	SetLanguage(match(locales))
}

// SetLanguage forces the message language, regardless of the locale.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
