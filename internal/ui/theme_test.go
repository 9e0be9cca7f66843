package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/kisanportal/kisan/internal/notify"
	"github.com/kisanportal/kisan/internal/prefs"
)

func TestThemeFor(t *testing.T) {
	if got := ThemeFor(prefs.SchemeDark).Name; got != ThemeDark {
		t.Fatalf("ThemeFor(dark).Name = %q, want %q", got, ThemeDark)
	}
	if got := ThemeFor(prefs.SchemeLight).Name; got != ThemeLight {
		t.Fatalf("ThemeFor(light).Name = %q, want %q", got, ThemeLight)
	}
}

func TestSelectedKeepsSelectionColors(t *testing.T) {
	th := lightTheme()
	styles := th.Styles().WithBackground(th.Surface)

	if got := styles.Selected.GetBackground(); got != lipgloss.Color(th.SelectionBg) {
		t.Fatalf("Selected background = %v, want %q", got, th.SelectionBg)
	}
	if got := styles.Selected.GetForeground(); got != lipgloss.Color(th.SelectionText) {
		t.Fatalf("Selected foreground = %v, want %q", got, th.SelectionText)
	}
}

func TestPalettesDiffer(t *testing.T) {
	light, dark := lightTheme(), darkTheme()
	if light.Background == dark.Background || light.Text == dark.Text {
		t.Fatalf("light and dark palettes share base colors: %q/%q", light.Background, light.Text)
	}
}

func TestKindColors(t *testing.T) {
	th := darkTheme()
	styles := th.Styles()

	if got := styles.KindColor(notify.KindError); got != th.Danger {
		t.Fatalf("KindColor(error) = %q, want %q", got, th.Danger)
	}
	if got := styles.KindColor(notify.KindSuccess); got != th.Success {
		t.Fatalf("KindColor(success) = %q, want %q", got, th.Success)
	}
	if got := styles.KindColor(notify.Kind(99)); got != th.Muted {
		t.Fatalf("KindColor(unknown) = %q, want %q", got, th.Muted)
	}
}
