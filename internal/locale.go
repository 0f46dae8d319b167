package internal

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DetectSystemLocale returns the locale used for number formatting.
// Priority is LC_NUMERIC (most specific), LC_ALL, LANG; C and POSIX are skipped.
// Returns language.Und if nothing usable is set.
func DetectSystemLocale() language.Tag {
	for _, envVar := range []string{"LC_NUMERIC", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale == "" || locale == "C" || locale == "POSIX" {
			continue
		}
		if tag := parseLocale(locale); tag != language.Und {
			return tag
		}
	}
	return language.Und
}

// parseLocale converts a POSIX locale string to a language tag.
// Examples: "sv_SE.UTF-8" -> sv-SE, "de_DE@euro" -> de-DE
func parseLocale(locale string) language.Tag {
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}
	if base == "" {
		return language.Und
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return language.Und
	}
	return tag
}
