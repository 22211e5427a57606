package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foodiecrew/catering-backend/pkg/redis"
)

// ErrSessionNotFound is returned when no session exists for an id,
// including sessions that expired out of Redis.
var ErrSessionNotFound = errors.New("booking session not found")

// SessionStore persists booking sessions between requests.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// sessionKV is the slice of the Redis client the store needs.
type sessionKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	BookingSessionKey(sessionID string) string
}

type redisSessionStore struct {
	kv  sessionKV
	ttl time.Duration
}

// NewSessionStore builds a Redis-backed session store. Each write renews
// the TTL so an active flow stays alive for its full window.
func NewSessionStore(kv sessionKV, ttl time.Duration) (SessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &redisSessionStore{kv: kv, ttl: ttl}, nil
}

func (s *redisSessionStore) Create(ctx context.Context, session *Session) error {
	return s.write(ctx, session)
}

func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	return s.write(ctx, session)
}

func (s *redisSessionStore) write(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	key := s.kv.BookingSessionKey(session.ID.String())
	if err := s.kv.Set(ctx, key, payload, s.ttl); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	key := s.kv.BookingSessionKey(sessionID)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.kv.BookingSessionKey(sessionID))
}
