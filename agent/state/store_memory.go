package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

// MemoryStore keeps sessions in process memory. Values are stored encoded so
// callers never share a *SessionState across turns.
type MemoryStore struct {
	cache *gocache.Cache
	opts  storeOptions
}

func NewMemoryStore(opts ...StoreOption) (*MemoryStore, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	expiration := o.ttl
	if expiration == 0 {
		expiration = gocache.NoExpiration
	}
	return &MemoryStore{
		cache: gocache.New(expiration, memoryCleanupInterval),
		opts:  o,
	}, nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*SessionState, error) {
	key, err := s.opts.key(sessionID)
	if err != nil {
		return nil, err
	}
	raw, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrStateNotFound
	}
	var st SessionState
	if err := json.Unmarshal(raw.([]byte), &st); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &st, nil
}

func (s *MemoryStore) Save(_ context.Context, st *SessionState) error {
	if err := prepareForSave(st); err != nil {
		return err
	}
	key, err := s.opts.key(st.SessionID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	s.cache.Set(key, payload, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	key, err := s.opts.key(sessionID)
	if err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}
