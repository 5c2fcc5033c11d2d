package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-progress-service/internal/app"
	"quiz-progress-service/internal/catalog"
	"quiz-progress-service/internal/config"
	"quiz-progress-service/internal/i18n"
	"quiz-progress-service/internal/infra/memory"
	"quiz-progress-service/internal/infra/postgres"
	redisstore "quiz-progress-service/internal/infra/redis"
	"quiz-progress-service/internal/infra/sqlite"
	"quiz-progress-service/internal/locale"
	"quiz-progress-service/internal/share"
)

// components is everything a command needs, built from one config.
type components struct {
	cfg     config.Config
	logger  *slog.Logger
	service *app.ProgressService
	views   *app.ViewRenderer
	shares  *share.Builder
	closers []func()
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func buildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger) (*components, error) {
	c := &components{cfg: cfg, logger: logger}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	store, err := c.openStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	messages := i18n.Default()
	if cfg.Locale.MessagesPath != "" {
		if err := messages.LoadInto(cfg.Locale.MessagesPath); err != nil {
			c.Close()
			return nil, err
		}
	}

	c.service = app.NewProgressService(cat, store, app.WithLogger(logger))
	c.views = app.NewViewRenderer(newFormatter(cfg), messages, cfg.Community)
	c.shares = share.NewBuilder(cfg.Share.Template, cfg.Share.Hashtags)
	return c, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.Load(cfg.Catalog.Path)
	}
	return catalog.Default()
}

func newFormatter(cfg config.Config) *locale.Formatter {
	opts := []locale.Option{locale.WithFallback(cfg.Locale.Default)}
	for lang, numberLocale := range cfg.Locale.NumberLocales {
		opts = append(opts, locale.WithNumberLocale(lang, numberLocale))
	}
	if len(cfg.Locale.RightToLeftScript) > 0 {
		opts = append(opts, locale.WithRightToLeftScripts(cfg.Locale.RightToLeftScript...))
	}
	return locale.New(opts...)
}

func (c *components) openStore(ctx context.Context) (app.RecordStore, error) {
	cfg := c.cfg
	switch strings.ToLower(cfg.Store.Engine) {
	case config.EngineMemory:
		return memory.NewRecordStore(), nil
	case "", config.EngineSQLite:
		store, err := sqlite.NewRecordStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		c.closers = append(c.closers, func() { _ = store.Close() })
		return store, nil
	case config.EngineRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, func() { _ = client.Close() })
		return redisstore.NewRecordStore(client, config.TTLDuration(cfg.Redis.TTL, 0)), nil
	case config.EnginePostgres:
		if err := runMigrations(ctx, cfg, c.logger); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		return postgres.NewRecordStore(pool), nil
	default:
		return nil, fmt.Errorf("unsupported store engine %q", cfg.Store.Engine)
	}
}

func (c *components) dispatcher(out io.Writer) *share.Dispatcher {
	return share.NewDispatcher(c.cfg.Share.BaseURL, &share.WriterOpener{W: out}, c.logger)
}

// commandTimeout bounds one-shot CLI commands against remote stores.
const commandTimeout = 30 * time.Second
