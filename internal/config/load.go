package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mockbanker/mockbanker/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. MOCKBANKER_STORAGE_PATH.
const EnvPrefix = "MOCKBANKER"

// LocalConfigPath is the per-project config file.
var LocalConfigPath = filepath.Join(".mockbanker", "config.yaml")

// Load reads configuration into v and decodes it. Lookup order is explicit,
// then LocalConfigPath, then DefaultConfigPath. A missing file is not an
// error; the returned path is then empty.
func Load(v *viper.Viper, explicit string) (Config, string, error) {
	defaults := Defaults()
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("defaults.count", defaults.Defaults["count"])
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		path = firstExisting(LocalConfigPath, DefaultConfigPath())
	}

	used := ""
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit != "" || !(errors.As(err, &notFound) || os.IsNotExist(err)) {
				return Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
			}
		} else {
			used = v.ConfigFileUsed()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, used, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = map[string]any{}
	}
	log.Debug(log.CatConfig, "config loaded", "file", used, "store", cfg.Storage.Path)
	return cfg, used, nil
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
