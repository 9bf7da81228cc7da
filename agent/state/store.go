package state

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrStateNotFound   = errors.New("session state not found")
	ErrNilSessionState = errors.New("session state is nil")
	ErrInvalidSession  = errors.New("session id is empty")
)

const (
	defaultStoreKeyPrefix = "travelbot:session:"
	defaultStoreTTL       = 24 * time.Hour
)

// Store keeps a conversation's SessionState between turns.
type Store interface {
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Save(ctx context.Context, st *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

type storeOptions struct {
	keyPrefix  string
	ttl        time.Duration
	httpClient *http.Client
}

// StoreOption customizes any of the Store implementations.
type StoreOption func(*storeOptions)

func WithKeyPrefix(prefix string) StoreOption {
	return func(o *storeOptions) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			o.keyPrefix = trimmed
		}
	}
}

// WithTTL sets how long an idle conversation is kept. Zero keeps it forever.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.ttl = ttl
	}
}

// WithHTTPClient is only used by the Upstash REST store.
func WithHTTPClient(client *http.Client) StoreOption {
	return func(o *storeOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func buildOptions(opts []StoreOption) (storeOptions, error) {
	o := storeOptions{
		keyPrefix: defaultStoreKeyPrefix,
		ttl:       defaultStoreTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ttl < 0 {
		return o, errors.New("ttl must be >= 0")
	}
	return o, nil
}

func (o storeOptions) key(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrInvalidSession
	}
	return o.keyPrefix + sessionID, nil
}

// prepareForSave validates st and normalises its timestamp before it is written.
func prepareForSave(st *SessionState) error {
	if st == nil {
		return ErrNilSessionState
	}
	if strings.TrimSpace(st.SessionID) == "" {
		return ErrInvalidSession
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid session: %w", err)
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	} else {
		st.UpdatedAt = st.UpdatedAt.UTC()
	}
	return nil
}

// Config selects and configures the session backend.
type Config struct {
	Backend   string        `split_words:"true" default:"memory"`
	KeyPrefix string        `split_words:"true" default:"travelbot:session:"`
	TTL       time.Duration `envconfig:"TTL" default:"24h"`

	RedisAddr     string `split_words:"true" default:"localhost:6379"`
	RedisPassword string `split_words:"true"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	UpstashURL     string        `split_words:"true"`
	UpstashToken   string        `split_words:"true"`
	UpstashTimeout time.Duration `split_words:"true" default:"10s"`
}

// NewStore builds the backend named by cfg.Backend: memory, redis or upstash.
func NewStore(cfg Config) (Store, error) {
	opts := []StoreOption{WithKeyPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL)}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "memory":
		return NewMemoryStore(opts...)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
	case "upstash":
		return NewUpstashRedisStore(UpstashRedisConfig{
			URL:     cfg.UpstashURL,
			Token:   cfg.UpstashToken,
			Timeout: cfg.UpstashTimeout,
		}, opts...)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
