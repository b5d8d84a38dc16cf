package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/mockbanker/mockbanker/internal/config"
	"github.com/mockbanker/mockbanker/internal/export"
	"github.com/mockbanker/mockbanker/internal/flags"
	"github.com/mockbanker/mockbanker/internal/history"
	"github.com/mockbanker/mockbanker/internal/infrastructure/sqlite"
	"github.com/mockbanker/mockbanker/internal/kvstore"
	"github.com/mockbanker/mockbanker/internal/log"
	"github.com/mockbanker/mockbanker/internal/mode"
	"github.com/mockbanker/mockbanker/internal/mode/shared"
	"github.com/mockbanker/mockbanker/internal/pipeline"
	"github.com/mockbanker/mockbanker/internal/theme"
	"github.com/mockbanker/mockbanker/internal/tracing"
	"github.com/mockbanker/mockbanker/internal/validation"
)

// environment is everything a command needs, built from config.
type environment struct {
	cfg        config.Config
	configPath string
	// storePath is the SQLite file, empty when the store is in memory.
	storePath string
	store     kvstore.Store
	theme     *theme.Preference
	services  mode.Services

	cleanup []func()
}

// setup loads and validates config, then opens the store and builds the
// services. Callers must Close the result.
func setup(ctx context.Context, g *globalOptions) (*environment, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, used, err := config.Load(viper.New(), g.cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	env := &environment{cfg: cfg, configPath: used}

	if g.debugEnabled() {
		logPath := cfg.Log.File
		if logPath == "" {
			logPath = os.Getenv("MOCKBANKER_LOG")
		}
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(config.ExpandPath(logPath))
		if err != nil {
			return nil, fmt.Errorf("initializing logging: %w", err)
		}
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		env.cleanup = append(env.cleanup, cleanup)
		log.Info(log.CatConfig, "starting", "version", version, "config", used)
	}

	if cfg.Storage.InMemory() {
		env.store = kvstore.NewMemory()
	} else {
		env.storePath = config.ExpandPath(cfg.Storage.Path)
		db, err := sqlite.NewDB(env.storePath)
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("opening store %s: %w", env.storePath, err)
		}
		env.store = db.KVStore()
		env.cleanup = append(env.cleanup, func() { _ = db.Close() })
	}

	tc := cfg.Tracing
	tc.FilePath = config.ExpandPath(tc.FilePath)
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	env.cleanup = append(env.cleanup, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	})
	tracer := provider.Tracer()

	var themeOpts []theme.Option
	if m, ok := theme.Parse(cfg.Theme.Mode); ok {
		themeOpts = append(themeOpts, theme.WithForced(m))
	}
	env.theme = theme.New(env.store, themeOpts...)

	registry := flags.New(cfg.Flags)
	hist := history.New(env.store, history.WithTracer(tracer))
	hist.Load(ctx)

	fs := afero.NewOsFs()
	exportDir := config.ExpandPath(cfg.Export.Dir)
	if exportDir == "" {
		exportDir = export.DefaultDir(fs)
	}

	env.services = mode.Services{
		Config:     cfg,
		ConfigPath: used,
		Flags:      registry,
		Runner:     pipeline.NewRunner(hist, tracer, registry.Enabled(flags.FlagHistory)),
		History:    hist,
		Saver:      export.NewSaver(fs, exportDir, tracer),
		Validator: validation.New(
			validation.WithRepairHints(registry.Enabled(flags.FlagRepairHints)),
			validation.WithTracer(tracer),
		),
		Clipboard: shared.NewSystemClipboard(os.Stderr),
		Clock:     shared.RealClock{},
		Tracer:    tracer,
	}
	return env, nil
}

// Close releases resources in reverse order of acquisition.
func (e *environment) Close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
}
