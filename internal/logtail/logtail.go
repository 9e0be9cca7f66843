package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines. maxLines <= 0 returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one structured log line as written by the JSON encoder.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]any
}

var reservedKeys = map[string]struct{}{
	"ts": {}, "level": {}, "logger": {}, "msg": {}, "caller": {}, "stacktrace": {},
}

// Parse decodes a JSON log line. ok is false for lines that are not JSON
// objects with a message.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &raw); err != nil {
		return Entry{}, false
	}
	msg, _ := raw["msg"].(string)
	if msg == "" {
		return Entry{}, false
	}

	e := Entry{Message: msg, Level: zapcore.InfoLevel}
	if lvl, ok := raw["level"].(string); ok {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			e.Level = parsed
		}
	}
	e.Logger, _ = raw["logger"].(string)

	switch ts := raw["ts"].(type) {
	case float64:
		sec, frac := math.Modf(ts)
		e.Time = time.Unix(int64(sec), int64(frac*1e9))
	case string:
		if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			e.Time = t
		} else if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Time = t
		}
	}

	for k, v := range raw {
		if _, reserved := reservedKeys[k]; reserved {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[k] = v
	}
	return e, true
}

// Filter keeps lines at or above min. Lines that do not parse are kept so
// panics and other raw output stay visible.
func Filter(lines []string, min zapcore.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if e, ok := Parse(line); ok && e.Level < min {
			continue
		}
		out = append(out, line)
	}
	return out
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	loggerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AFFF"))
	levelStyles = map[zapcore.Level]lipgloss.Style{
		zapcore.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

func levelStyle(l zapcore.Level) lipgloss.Style {
	if s, ok := levelStyles[l]; ok {
		return s
	}
	return levelStyles[zapcore.ErrorLevel]
}

// FormatLine renders a JSON log line for humans:
//
//	2026-10-19 21:01:05 INFO  [poller] price poll failed commodity=onion
//
// Lines that do not parse are returned unchanged.
func FormatLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	parts := make([]string, 0, 4)
	if !e.Time.IsZero() {
		parts = append(parts, timeStyle.Render(e.Time.Local().Format("2006-01-02 15:04:05")))
	}
	parts = append(parts, levelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level.CapitalString())))
	if e.Logger != "" {
		parts = append(parts, loggerStyle.Render("["+e.Logger+"]"))
	}
	parts = append(parts, e.Message)

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fieldStyle.Render(fmt.Sprintf("%s=%v", k, e.Fields[k])))
		}
	}
	return strings.Join(parts, " ")
}

// FormatLines applies FormatLine to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line)
	}
	return out
}
