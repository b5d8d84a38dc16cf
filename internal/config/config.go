// Package config provides configuration types, defaults and validation for
// mockbanker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mockbanker/mockbanker/internal/catalog"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/pipeline"
	"github.com/mockbanker/mockbanker/internal/theme"
	"github.com/mockbanker/mockbanker/internal/tracing"
)

// Config holds all configuration options.
type Config struct {
	Storage StorageConfig   `mapstructure:"storage"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	Export  ExportConfig    `mapstructure:"export"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	Log     LogConfig       `mapstructure:"log"`
	Flags   map[string]bool `mapstructure:"flags"`

	// Defaults holds "count" plus one default selector per domain key,
	// e.g. defaults.iban: GB.
	Defaults map[string]any `mapstructure:"defaults"`
}

// StorageConfig locates the key/value store.
type StorageConfig struct {
	// Path of the SQLite file. "memory" keeps everything in process.
	Path string `mapstructure:"path"`
}

// InMemory reports whether persistence is disabled.
func (s StorageConfig) InMemory() bool { return s.Path == "memory" }

// ThemeConfig forces a color scheme.
type ThemeConfig struct {
	// Mode is "light", "dark" or empty for the stored/terminal preference.
	Mode string `mapstructure:"mode"`
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	// Dir defaults to ~/Downloads when it exists, else the working directory.
	Dir string `mapstructure:"dir"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultCount is defaults.count clamped into the batch range.
func (c Config) DefaultCount() int {
	n, ok := toInt(c.Defaults["count"])
	if !ok {
		return pipeline.DefaultCount
	}
	return pipeline.ClampCount(n)
}

// DefaultSelector returns the configured default for domain, or the
// domain's own default.
func (c Config) DefaultSelector(domain string) string {
	if s, ok := c.Defaults[domain].(string); ok && s != "" {
		return strings.TrimSpace(s)
	}
	if d, ok := catalog.Lookup(domain); ok {
		return d.Info().DefaultSelector
	}
	return ""
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

// Dir returns ~/.config/mockbanker, or "" without a home directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mockbanker")
}

// ExpandPath replaces a leading "~/" with the home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}

// DefaultConfigPath is the user-level config file.
func DefaultConfigPath() string {
	if d := Dir(); d != "" {
		return filepath.Join(d, "config.yaml")
	}
	return filepath.Join(".mockbanker", "config.yaml")
}

// DefaultStorePath is the SQLite store next to the user config.
func DefaultStorePath() string {
	if d := Dir(); d != "" {
		return filepath.Join(d, "mockbanker.db")
	}
	return filepath.Join(".mockbanker", "mockbanker.db")
}

// DefaultTracesFilePath is where the file exporter writes by default.
func DefaultTracesFilePath() string {
	if d := Dir(); d != "" {
		return filepath.Join(d, "traces", "traces.jsonl")
	}
	return ""
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()
	return Config{
		Storage:  StorageConfig{Path: DefaultStorePath()},
		Tracing:  tc,
		Log:      LogConfig{Level: "debug"},
		Flags:    map[string]bool{},
		Defaults: map[string]any{"count": pipeline.DefaultCount},
	}
}

// ValidateTheme checks theme.mode.
func ValidateTheme(t ThemeConfig) error {
	if t.Mode == "" {
		return nil
	}
	if _, ok := theme.Parse(t.Mode); !ok {
		return fmt.Errorf("theme.mode must be \"light\", \"dark\" or empty, got %q", t.Mode)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\" or \"stdout\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "file" && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	return nil
}

// ValidateDefaults checks defaults.count and every defaults.<domain>.
func ValidateDefaults(defaults map[string]any) error {
	for key, v := range defaults {
		if key == "count" {
			n, ok := toInt(v)
			if !ok || n < pipeline.MinCount || n > pipeline.MaxCount {
				return fmt.Errorf("defaults.count must be an integer between %d and %d, got %v", pipeline.MinCount, pipeline.MaxCount, v)
			}
			continue
		}
		d, ok := catalog.Lookup(key)
		if !ok {
			return fmt.Errorf("defaults.%s: unknown domain (want one of %s)", key, strings.Join(catalog.Keys(), ", "))
		}
		sel, ok := v.(string)
		if !ok {
			return fmt.Errorf("defaults.%s must be a string, got %T", key, v)
		}
		if sel == "" && d.Info().AllowRandom {
			continue
		}
		if !catalog.HasOption(d, sel) {
			return fmt.Errorf("defaults.%s: %q is not a supported %s", key, sel, strings.ToLower(d.Info().SelectorLabel))
		}
	}
	return nil
}

// Validate runs every check.
func (c Config) Validate() error {
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateDefaults(c.Defaults)
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# MockBanker configuration

# Key/value store for history and theme. Use "memory" to keep nothing on disk.
# storage:
#   path: ~/.config/mockbanker/mockbanker.db

# Force a color scheme ("light" or "dark"). Leave unset to follow ctrl+t / the terminal.
# theme:
#   mode: dark

# Where exported CSV/JSON/SQL files are written (default: ~/Downloads or the working directory)
# export:
#   dir: ./fixtures

# Per-domain defaults
defaults:
  count: 5
  # iban: DE
  # card: visa
  # id: EE

# Feature flags
flags:
  history: true        # Record every generated batch in the History tab
  repair-hints: true   # Suggest corrected check digits in the Validator tab
  mouse: true          # Clickable tabs and selector rows

# Tracing (OpenTelemetry, local only)
# tracing:
#   enabled: true
#   exporter: file     # none, file or stdout
#   file_path: ~/.config/mockbanker/traces/traces.jsonl
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates configPath from the template, creating its
// directory if needed.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}
	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
