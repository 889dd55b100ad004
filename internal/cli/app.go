package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Punitjadhav07/Hack-build/internal/auth"
	"github.com/Punitjadhav07/Hack-build/internal/config"
	"github.com/Punitjadhav07/Hack-build/internal/engine"
	"github.com/Punitjadhav07/Hack-build/internal/store"
)

// backend is a key-value table both the engine and auth can use.
// Implemented by store.Store and store.RedisKV.
type backend interface {
	engine.Backend
	auth.KV
	io.Closer
}

// app is the store opened for one command.
type app struct {
	cfg    config.Config
	kv     backend
	engine *engine.Engine
	auth   *auth.Service
	logger *slog.Logger
	out    *OutputFormatter
	clock  engine.Clock
}

func (a *app) now() time.Time { return a.clock.Now() }

// loadConfig reads the env file and the environment, then applies the
// --db and --backend overrides.
func loadConfig(opts *RootOptions) (config.Config, error) {
	var files []string
	if opts.EnvFile != "" {
		files = append(files, opts.EnvFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}
	if opts.DB != "" {
		cfg.DB = opts.DB
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	return cfg, nil
}

func openBackend(cfg config.Config) (backend, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		kv, err := store.OpenRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendSQLite:
		kv, err := store.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, NewExitError(ExitCommandError, "unknown backend "+cfg.Backend)
	}
}

// newLogger logs to w, as JSON when the output format is json.
func newLogger(w io.Writer, level slog.Level, verbose bool, format string) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// openApp opens the configured store. The caller must Close it.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "failed to load config", Err: err}
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.Verbose, opts.Format)

	kv, err := openBackend(cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "failed to open store", Err: err, ErrCode: ErrCodeStore}
	}
	logger.Debug("store opened", "backend", cfg.Backend, "db", cfg.DB, "redis", cfg.Redis.Addr)

	clock := opts.Clock
	if clock == nil {
		clock = engine.SystemClock{}
	}
	engOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithClock(clock),
	}
	if opts.IDs != nil {
		engOpts = append(engOpts, engine.WithIDGenerator(opts.IDs))
	}

	return &app{
		cfg:    cfg,
		kv:     kv,
		engine: engine.New(kv, engOpts...),
		auth: auth.New(kv,
			auth.WithLogger(logger),
			auth.WithNow(clock.Now),
			auth.WithAdmin(cfg.Admin.Email, cfg.Admin.Password),
		),
		logger: logger,
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
		clock: clock,
	}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Error("error closing store", "error", err)
	}
}

// withApp opens the store, runs fn and closes the store.
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, a)
}
