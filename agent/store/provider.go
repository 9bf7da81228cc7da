package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrUnavailable = errors.New("store is not configured")
	ErrNotFound    = errors.New("record not found")
)

type Config struct {
	URL          string        `envconfig:"URL"`
	Key          string        `envconfig:"KEY"`
	QueryTimeout time.Duration `split_words:"true" default:"5s"`
	MaxOpenConns int           `split_words:"true" default:"10"`
}

func (c Config) configured() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.Key) != ""
}

// Provider hands out a Repository backed by one lazily opened connection pool.
// A missing configuration is reported on every call rather than remembered.
type Provider struct {
	cfg  Config
	open func(Config) (*bun.DB, error)

	mu   sync.Mutex
	db   *bun.DB
	repo *BunRepository
}

func NewProvider(cfg Config) *Provider {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	return &Provider{cfg: cfg, open: openDB}
}

func (p *Provider) Repository(ctx context.Context) (Repository, error) {
	db, err := p.DB(ctx)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.repo == nil {
		p.repo = NewBunRepository(db, p.cfg.QueryTimeout)
	}
	return p.repo, nil
}

// DB returns the shared pool, opening it on first use.
func (p *Provider) DB(_ context.Context) (*bun.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}
	if !p.cfg.configured() {
		log.Warn().Msg("store url or key is not set; database features are unavailable")
		return nil, ErrUnavailable
	}

	db, err := p.open(p.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	p.db = db
	log.Debug().Msg("store connection pool opened")
	return db, nil
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.repo = nil
	return err
}

func openDB(cfg Config) (*bun.DB, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(strings.TrimSpace(cfg.URL)),
		pgdriver.WithPassword(strings.TrimSpace(cfg.Key)),
	)
	sqldb := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}
