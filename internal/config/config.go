package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the portal's runtime settings.
type Config struct {
	MarketAPI        string
	AssistantAPI     string
	APIToken         string
	DefaultCommodity string
	Region           string
	Debounce         time.Duration
	ToastDuration    time.Duration
	PollInterval     time.Duration
	LogFile          string
	AppearanceFile   string
	PrefsFile        string
}

const (
	defaultConfigPath     = "~/.config/kisan/config.toml"
	defaultDataDir        = "~/.local/share/kisan"
	defaultMarketAPI      = "127.0.0.1:5000"
	defaultAssistantAPI   = "127.0.0.1:5000"
	defaultCommodity      = "wheat"
	defaultDebounce       = 500 * time.Millisecond
	defaultToastDuration  = 5 * time.Second
	defaultPollInterval   = 60 * time.Second
	defaultAppearanceFile = "~/.config/kisan/appearance"
	defaultPrefsFile      = "~/.config/kisan/prefs.toml"
)

type rawConfig struct {
	MarketAPI        string `toml:"market_api"`
	AssistantAPI     string `toml:"assistant_api"`
	APIToken         string `toml:"api_token"`
	DefaultCommodity string `toml:"default_commodity"`
	Region           string `toml:"region"`
	DebounceMS       int    `toml:"debounce_ms"`
	ToastMS          int    `toml:"toast_ms"`
	PollSeconds      int    `toml:"poll_seconds"`
	LogFile          string `toml:"log_file"`
	AppearanceFile   string `toml:"appearance_file"`
	PrefsFile        string `toml:"prefs_file"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		MarketAPI:        defaultMarketAPI,
		AssistantAPI:     defaultAssistantAPI,
		DefaultCommodity: defaultCommodity,
		Debounce:         defaultDebounce,
		ToastDuration:    defaultToastDuration,
		PollInterval:     defaultPollInterval,
		LogFile:          mustExpand(filepath.Join(defaultDataDir, "kisan.log")),
		AppearanceFile:   mustExpand(defaultAppearanceFile),
		PrefsFile:        mustExpand(defaultPrefsFile),
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.MarketAPI = orDefault(raw.MarketAPI, defaultMarketAPI)
	cfg.AssistantAPI = orDefault(raw.AssistantAPI, cfg.MarketAPI)
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	cfg.DefaultCommodity = orDefault(raw.DefaultCommodity, defaultCommodity)
	cfg.Region = strings.TrimSpace(raw.Region)

	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.ToastMS > 0 {
		cfg.ToastDuration = time.Duration(raw.ToastMS) * time.Millisecond
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.AppearanceFile); v != "" {
		cfg.AppearanceFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.PrefsFile); v != "" {
		cfg.PrefsFile = mustExpand(v)
	}

	return cfg, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
