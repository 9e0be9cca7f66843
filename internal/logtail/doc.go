// Package logtail reads the tail of kisan's JSON log file and renders it for
// the terminal.
//
// # Reading
//
// Read returns the last N lines using a ring buffer, so memory stays
// O(N) regardless of file size. A missing file is not an error: kisan may
// simply not have logged anything yet.
//
// # Formatting
//
// The TUI owns stdout, so kisan logs structured JSON to a file. Parse decodes
// one line back into an Entry (time, level, logger, message, extra fields);
// FormatLine renders it as
//
//	2026-10-19 21:01:05 WARN  [poller] price poll failed commodity=onion error=...
//
// with the level colored. Lines that are not JSON are passed through
// untouched so panics and stack traces remain readable. Filter drops entries
// below a minimum zap level.
//
// # Usage
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range logtail.FormatLines(logtail.Filter(lines, zapcore.WarnLevel)) {
//		fmt.Println(line)
//	}
package logtail
