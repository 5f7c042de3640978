package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/iudanet/mastopress/internal/client/api"
	"github.com/iudanet/mastopress/internal/config"
	"github.com/iudanet/mastopress/internal/state"
	"github.com/iudanet/mastopress/internal/state/boltdb"
	"github.com/iudanet/mastopress/internal/state/jsonfile"
	"github.com/iudanet/mastopress/internal/state/sqlite"
	"github.com/iudanet/mastopress/internal/sync"
)

// app - собранные зависимости одной команды
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   state.Store
	tracked *state.TrackedState
	engine  *sync.Engine
}

// loadConfig читает конфигурацию и создает логгер
func loadConfig(opts *RootOptions, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	logger, err := config.NewLogger(cfg.Log, logOut)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openStore открывает хранилище отслеживаемых постов выбранного backend
func openStore(ctx context.Context, cfg config.StateConfig) (state.Store, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonfile.New(cfg.Path), nil
	case config.BackendBolt:
		s, err := boltdb.New(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.New(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}

// loadState загружает состояние; поврежденное хранилище заменяется пустым
// только при state.reset_on_corrupt.
func loadState(ctx context.Context, store state.Store, cfg config.StateConfig, logger *slog.Logger) (*state.TrackedState, error) {
	tracked, err := store.Load(ctx)
	if err == nil {
		return tracked, nil
	}
	if errors.Is(err, state.ErrCorrupt) && cfg.ResetOnCorrupt {
		logger.Warn("Tracked state is corrupt, starting with empty state", "path", cfg.Path, "error", err)
		return state.New(), nil
	}
	return nil, fmt.Errorf("failed to load tracked state: %w", err)
}

// newApp собирает движок синхронизации: конфигурация, хранилище, клиенты
func newApp(ctx context.Context, opts *RootOptions, logOut io.Writer) (_ *app, err error) {
	cfg, logger, err := loadConfig(opts, logOut)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.WordPress.Password == "" {
		password, err := readPassword(fmt.Sprintf("WordPress application password for %s: ", cfg.WordPress.Username))
		if err != nil {
			return nil, err
		}
		cfg.WordPress.Password = password
	}

	mode, err := api.ParseUpdateMode(cfg.WordPress.UpdateMode)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.State)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	defer func() {
		if err != nil {
			if closeErr := store.Close(); closeErr != nil {
				logger.Error("Failed to close state store", "error", closeErr)
			}
		}
	}()

	tracked, err := loadState(ctx, store, cfg.State, logger)
	if err != nil {
		return nil, err
	}

	mastodon := api.NewMastodonClient(cfg.Mastodon.BaseURL, cfg.Mastodon.AccessToken, cfg.Mastodon.Hashtag, cfg.Mastodon.Limit, cfg.HTTP.Timeout)
	wordpress := api.NewWordPressClient(cfg.WordPress.BaseURL, cfg.WordPress.Username, cfg.WordPress.Password, mode, cfg.HTTP.Timeout)

	engine := sync.NewEngine(mastodon, wordpress, tracked, store, logger,
		sync.WithTitlePrefix(cfg.WordPress.TitlePrefix),
		sync.WithCheckpointRetry(cfg.Sync.CheckpointRetries, cfg.Sync.CheckpointRetryDelay),
	)

	logger.Info("Loaded tracked state",
		"backend", cfg.State.Backend,
		"path", cfg.State.Path,
		"tracked", tracked.Len(),
		"hashtag", cfg.Mastodon.Hashtag,
		"update_mode", wordpress.Mode())

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		tracked: tracked,
		engine:  engine,
	}, nil
}

// Close освобождает хранилище
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close state store", "error", err)
	}
}
