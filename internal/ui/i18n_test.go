package ui

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/kisanportal/kisan/internal/prefs"
)

func TestCatalogCoversEveryLanguage(t *testing.T) {
	english := catalog["en"]
	for _, tag := range prefs.SupportedLanguages() {
		base, _ := tag.Base()
		table, ok := catalog[base.String()]
		if !ok {
			t.Fatalf("catalog has no table for %s", tag)
		}
		for key := range english {
			if table[key] == "" {
				t.Errorf("catalog[%s] missing %q", base, key)
			}
		}
	}
}

func TestT_FallsBack(t *testing.T) {
	if got := T(language.Hindi, "view.prices"); got != "भाव" {
		t.Fatalf("T(hi, view.prices) = %q, want %q", got, "भाव")
	}
	if got := T(language.MustParse("hi-IN"), "prices.average"); got != "औसत" {
		t.Fatalf("T(hi-IN, prices.average) = %q, want %q", got, "औसत")
	}
	if got := T(language.French, "view.prices"); got != "Prices" {
		t.Fatalf("T(fr, view.prices) = %q, want English fallback", got)
	}
	if got := T(language.English, "no.such.key"); got != "no.such.key" {
		t.Fatalf("T(en, no.such.key) = %q, want key", got)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName(language.Marathi); got != "मराठी" {
		t.Fatalf("LanguageName(mr) = %q, want %q", got, "मराठी")
	}
	if got := LanguageName(language.English); got != "English" {
		t.Fatalf("LanguageName(en) = %q, want English", got)
	}
}
