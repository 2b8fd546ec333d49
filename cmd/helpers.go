package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ziadkadry99/csslab/internal/config"
	"github.com/ziadkadry99/csslab/internal/db"
	"github.com/ziadkadry99/csslab/internal/kv"
	"github.com/ziadkadry99/csslab/internal/notify"
	"github.com/ziadkadry99/csslab/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `csslab init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds a console logger at the configured level. --verbose
// forces debug.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", level, err)
		}
		lvl = parsed
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.DisableStacktrace = !verbose
	zcfg.Sampling = nil
	return zcfg.Build()
}

// runtime is everything a command needs to work with the learner's session.
type runtime struct {
	cfg        *config.Config
	logger     *zap.Logger
	database   *db.DB
	store      kv.Store
	toasts     *notify.Store
	dispatcher *notify.Dispatcher
	manager    *session.Manager
}

// openRuntime opens the configured store, restores the session and returns
// a runtime. ephemeral forces the in-memory store. The caller must Close it.
func openRuntime(ctx context.Context, ephemeral bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.Store = config.StoreMemory
	}

	logger, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger}

	switch cfg.Store {
	case config.StoreSQLite:
		rt.database, err = db.Open(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		rt.store = kv.NewSQLiteStore(rt.database)
	case config.StoreRedis:
		rt.store, err = kv.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
	case config.StoreMemory:
		rt.store = kv.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}

	if rt.database != nil {
		rt.toasts = notify.NewStore(rt.database)
		if n, err := rt.toasts.PruneDelivered(ctx); err != nil {
			logger.Warn("pruning delivered toasts", zap.Error(err))
		} else if n > 0 {
			logger.Debug("pruned delivered toasts", zap.Int64("count", n))
		}
	}
	rt.dispatcher = notify.NewDispatcher(rt.toasts, logger.Named("notify"))
	rt.manager = session.NewManager(rt.store, rt.dispatcher, logger.Named("session"))
	rt.manager.Load(ctx)

	logger.Debug("session restored",
		zap.String("store", string(cfg.Store)),
		zap.Int("exercise", rt.manager.Snapshot().Index),
	)
	return rt, nil
}

// Close releases the store and the database.
func (rt *runtime) Close() error {
	var errs []error
	if rt.store != nil {
		errs = append(errs, rt.store.Close())
	}
	if rt.database != nil {
		errs = append(errs, rt.database.Close())
	}
	_ = rt.logger.Sync()
	return errors.Join(errs...)
}
