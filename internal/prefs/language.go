package prefs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrUnsupportedLanguage is returned for tags outside SupportedLanguages.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// DefaultLanguage is used when nothing valid is stored.
var DefaultLanguage = language.English

var supportedLanguages = []language.Tag{
	language.English,
	language.Hindi,
	language.Marathi,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// SupportedLanguages returns the UI languages in cycle order.
func SupportedLanguages() []language.Tag {
	out := make([]language.Tag, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage maps a BCP 47 tag such as "hi-IN" onto a supported language.
func ParseLanguage(raw string) (language.Tag, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultLanguage, fmt.Errorf("%w: empty tag", ErrUnsupportedLanguage)
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return DefaultLanguage, fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, raw, err)
	}
	return matchLanguage(tag)
}

func matchLanguage(tag language.Tag) (language.Tag, error) {
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	return supportedLanguages[idx], nil
}

func languageIndex(tag language.Tag) int {
	for i, candidate := range supportedLanguages {
		if candidate.String() == tag.String() {
			return i
		}
	}
	return -1
}
