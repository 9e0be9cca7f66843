package ui

import (
	"strings"
	"testing"
	"time"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -5 * time.Second, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12 * time.Second, "12s"},
		{"minutes", 61 * time.Second, "1m"},
		{"hours", 2*time.Hour + 10*time.Second, "2h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeDuration(tc.in); got != tc.want {
				t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatRupees(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{2150.4, "₹2,150"},
		{123456, "₹1,23,456"},
		{12345678, "₹1,23,45,678"},
		{-1500, "-₹1,500"},
	}
	for _, tc := range cases {
		if got := formatRupees(tc.in); got != tc.want {
			t.Fatalf("formatRupees(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("  green_chilli "); got != "Green Chilli" {
		t.Fatalf("titleCase = %q, want %q", got, "Green Chilli")
	}
	if got := titleCase(""); got != "" {
		t.Fatalf("titleCase empty = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Lasalgaon APMC", 8); got != "Lasal..." {
		t.Fatalf("truncate = %q, want %q", got, "Lasal...")
	}
	if got := truncate("Pune", 8); got != "Pune" {
		t.Fatalf("truncate short = %q, want Pune", got)
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(2.345); got != "+2.3%" {
		t.Fatalf("formatPercent = %q, want +2.3%%", got)
	}
	if got := formatPercent(-10); got != "-10.0%" {
		t.Fatalf("formatPercent = %q, want -10.0%%", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("/home/farmer/.local/share/kisan/kisan.log", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("got %q (%d runes), want 20", got, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "kisan.log") {
		t.Fatalf("got %q, want the file name kept", got)
	}
}
