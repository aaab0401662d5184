package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"backend-snapfeed/internal/user"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Record is the cached session state for one access token.
type Record struct {
	User          user.User `json:"user"`
	Authenticated bool      `json:"authenticated"`
}

// LoadFunc resolves a token into a session record when the cache misses.
// A (nil, nil) return means "no session" and is not cached.
type LoadFunc func(ctx context.Context, token string) (*Record, error)

// Store caches session records in Redis, falling back to an in-process map
// when no Redis client is configured.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	load   LoadFunc
	flight singleflight.Group

	mu    sync.RWMutex
	local map[string]Record
}

func NewStore(redisClient *redis.Client, ttl time.Duration, load LoadFunc) *Store {
	return &Store{
		redis: redisClient,
		ttl:   ttl,
		load:  load,
		local: map[string]Record{},
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Init returns the session for token, loading and caching it on a miss.
// Concurrent initializations for the same token collapse to one flight.
func (s *Store) Init(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, nil
	}
	if rec, err := s.Get(ctx, token); err != nil {
		return nil, err
	} else if rec != nil {
		return rec, nil
	}

	v, err, _ := s.flight.Do(token, func() (interface{}, error) {
		rec, err := s.load(ctx, token)
		if err != nil || rec == nil {
			return nil, err
		}
		if err := s.put(ctx, token, *rec); err != nil {
			return nil, err
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*Record), nil
}

// Get reads the cached record without loading. Missing tokens return (nil, nil).
func (s *Store) Get(ctx context.Context, token string) (*Record, error) {
	if s.redis == nil {
		s.mu.RLock()
		rec, ok := s.local[token]
		s.mu.RUnlock()
		if !ok {
			return nil, nil
		}
		return &rec, nil
	}

	raw, err := s.redis.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Set caches an authenticated session for token.
func (s *Store) Set(ctx context.Context, token string, u user.User) error {
	return s.put(ctx, token, Record{User: u, Authenticated: true})
}

func (s *Store) put(ctx context.Context, token string, rec Record) error {
	if s.redis == nil {
		s.mu.Lock()
		s.local[token] = rec
		s.mu.Unlock()
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(token), raw, s.ttl).Err()
}

// Clear drops the cached session for token.
func (s *Store) Clear(ctx context.Context, token string) error {
	if s.redis == nil {
		s.mu.Lock()
		delete(s.local, token)
		s.mu.Unlock()
		return nil
	}
	return s.redis.Del(ctx, sessionKey(token)).Err()
}
