package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show district and variety columns.
	LayoutWideWidth = 120
)

// Display limits.
const (
	// PriceRowLimit is the maximum number of price rows rendered.
	PriceRowLimit = 30

	// ToastLimit is the maximum number of notifications shown at once.
	ToastLimit = 4

	// TranscriptLimit is the number of assistant exchanges kept in memory.
	TranscriptLimit = 50
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// AskTimeout bounds a single assistant request.
	AskTimeout = 60 * time.Second
)
