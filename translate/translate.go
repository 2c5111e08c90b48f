// Package translate renders the user-visible diagnostics of the nibble CPU
// in the language of the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// fallback is used when the host reports no locale at all.
const fallback = "en-US"

func hostPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("nibble: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallback}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage forces the output language, overriding the host locale.
func SetLanguage(tag language.Tag) {
	printerOnce.Do(func() {})
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(func() { printer = hostPrinter() })
	return printer.Sprintf(key, args...)
}
