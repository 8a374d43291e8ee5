package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supported languages; the first is the fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.German,
}

var german = map[string]string{
	"no instructions found":                        "keine Befehle gefunden",
	"step limit reached":                           "Schrittgrenze erreicht",
	"invalid command (h for help)":                 "ungültiger Befehl (h für Hilfe)",
	"opcode invalid":                               "ungültiger Opcode",
	"data line out of range":                       "Datenleitung außerhalb des Bereichs",
	"unknown disc token":                           "unbekannte Schallplatte",
	"def without end":                              "def ohne end",
	"unknown macro":                                "unbekanntes Makro",
	"maximum nested macro depth exceeded":          "maximale Makro-Verschachtelungstiefe überschritten",
	"invalid opcode or macro invocation":           "ungültiger Opcode oder Makroaufruf",
	"line %d '%v' %v":                              "Zeile %d '%v' %v",
	"stimulus must return None or a dict":          "stimulus muss None oder ein dict liefern",
	"script does not define a callable 'stimulus'": "Skript definiert keine aufrufbare Funktion 'stimulus'",
}

func init() {
	for key, msg := range german {
		_ = message.SetString(language.German, key, msg)
	}
}

// match picks the supported language closest to the locale list.
func match(locales []string) language.Tag {
	tags := make([]language.Tag, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	_, index, _ := language.NewMatcher(supported).Match(tags...)
	return supported[index]
}
