// Command pgforge introspects a PostgreSQL schema and generates typed
// interface declarations from it.
//
// Usage:
//
//	pgforge -dsn "postgres://..." -target typescript -out ./gen
//	pgforge -config pgforge.yaml -watch
//	pgforge -dsn "postgres://..." -snapshot schema.msgpack
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/lib/pq"

	"github.com/syssam/pgforge/codegen"
	"github.com/syssam/pgforge/dialect"
	"github.com/syssam/pgforge/dialect/sql"
	"github.com/syssam/pgforge/introspect"
)

type options struct {
	configPath string
	dsn        string
	schema     string
	mode       string
	target     string
	out        string
	pkg        string
	snapshot   string
	watch      bool
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a yaml config file")
	flag.StringVar(&opts.dsn, "dsn", os.Getenv("PGFORGE_DSN"), "postgres connection string (defaults to $PGFORGE_DSN)")
	flag.StringVar(&opts.schema, "schema", "", "database schema to introspect")
	flag.StringVar(&opts.mode, "mode", "", "output layout: single or multi")
	flag.StringVar(&opts.target, "target", "", "generation target: typescript, go or graphql")
	flag.StringVar(&opts.out, "out", "", "output directory")
	flag.StringVar(&opts.pkg, "package", "", "package name for the go target")
	flag.StringVar(&opts.snapshot, "snapshot", "", "write a msgpack schema snapshot to this path instead of generating")
	flag.BoolVar(&opts.watch, "watch", false, "regenerate whenever the config file changes")
	flag.BoolVar(&opts.verbose, "v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("pgforge failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	if opts.dsn == "" {
		return fmt.Errorf("no connection string: set -dsn or $PGFORGE_DSN")
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.snapshot != "" {
		return writeSnapshot(ctx, logger, opts, cfg)
	}
	if err := generate(ctx, logger, opts, cfg); err != nil {
		return err
	}
	if opts.watch {
		if opts.configPath == "" {
			return fmt.Errorf("-watch requires -config")
		}
		return watch(ctx, logger, opts)
	}
	return nil
}

// loadConfig reads the optional yaml config file and overlays the
// command-line flags on top of it. Flags win.
func loadConfig(opts options) (codegen.Config, error) {
	var cfg codegen.Config
	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return codegen.Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = codegen.ParseConfig(data); err != nil {
			return codegen.Config{}, err
		}
	}
	if opts.schema != "" {
		cfg.Schema = opts.schema
	}
	if opts.mode != "" {
		cfg.Mode = opts.mode
	}
	if opts.target != "" {
		cfg.Target = opts.target
	}
	if opts.out != "" {
		cfg.Out = opts.out
	}
	if opts.pkg != "" {
		cfg.Package = opts.pkg
	}
	if err := cfg.Normalize(); err != nil {
		return codegen.Config{}, err
	}
	if cfg.Out == "" {
		cfg.Out = "."
	}
	return cfg, nil
}

func open(logger *slog.Logger, opts options) (*sql.StatsDriver, error) {
	drv, _, err := sql.OpenWithStats(dialect.Postgres, opts.dsn,
		sql.WithSlowThreshold(200*time.Millisecond),
		sql.WithSlowQueryLog(),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if opts.verbose {
		logger.Debug("database opened", "dialect", drv.Dialect())
	}
	return drv, nil
}

// connFor returns the connection the inspector should run against. Verbose
// mode wraps the driver so every catalog query logs its text and arguments
// at debug level.
func connFor(drv *sql.StatsDriver, logger *slog.Logger, opts options) dialect.ExecQuerier {
	if opts.verbose {
		return dialect.Debug(drv, logger)
	}
	return drv
}

func generate(ctx context.Context, logger *slog.Logger, opts options, cfg codegen.Config) error {
	drv, err := open(logger, opts)
	if err != nil {
		return err
	}
	defer drv.Close()

	inspector := introspect.NewInspector(connFor(drv, logger, opts), introspect.WithSchema(cfg.Schema))
	start := time.Now()
	res := codegen.Generate(ctx, inspector, cfg)
	if !res.Success {
		return fmt.Errorf("generate: %s", res.Message)
	}
	if err := writeFiles(cfg.Out, res.Files); err != nil {
		return err
	}
	logger.Info("generated",
		"tables", len(res.Tables),
		"files", len(res.Files),
		"target", cfg.Target,
		"out", cfg.Out,
		"elapsed", time.Since(start),
	)
	logger.Debug("query statistics", "stats", drv.QueryStats().Stats().String())
	return nil
}

func writeFiles(dir string, files []codegen.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func writeSnapshot(ctx context.Context, logger *slog.Logger, opts options, cfg codegen.Config) error {
	drv, err := open(logger, opts)
	if err != nil {
		return err
	}
	defer drv.Close()

	inspector := introspect.NewInspector(connFor(drv, logger, opts), introspect.WithSchema(cfg.Schema))
	tables, err := inspector.Schema(ctx)
	if err != nil {
		return err
	}
	snap := introspect.NewSnapshot(cfg.Schema, tables)
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.snapshot, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	logger.Info("snapshot written", "id", snap.ID, "tables", len(tables), "path", opts.snapshot)
	return nil
}

// watch blocks until the context is canceled, regenerating whenever the
// config file is rewritten. Editors often replace files instead of writing
// in place, so the watch is on the directory and filters by name.
func watch(ctx context.Context, logger *slog.Logger, opts options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(opts.configPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching for config changes", "path", abs)

	// Debounce bursts of events from editors that write multiple times.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(250 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			cfg, err := loadConfig(opts)
			if err != nil {
				logger.Error("config reload failed", "err", err)
				continue
			}
			if err := generate(ctx, logger, opts, cfg); err != nil {
				logger.Error("regeneration failed", "err", err)
			}
		}
	}
}
