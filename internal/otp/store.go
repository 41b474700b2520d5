package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	PurposeVerify = "verify"
	PurposeReset  = "reset"

	TTL = 5 * time.Minute
)

var ErrNotFound = errors.New("otp not found")

// Store keeps short-lived one-time passwords keyed by (purpose, email).
type Store interface {
	Set(ctx context.Context, purpose, email, code string) error
	Get(ctx context.Context, purpose, email string) (string, error)
	Del(ctx context.Context, purpose, email string) error
}

func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func key(purpose, email string) string {
	return "otp:" + purpose + ":" + email
}

type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Set(ctx context.Context, purpose, email, code string) error {
	return s.Client.Set(ctx, key(purpose, email), code, TTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, purpose, email string) (string, error) {
	code, err := s.Client.Get(ctx, key(purpose, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return code, err
}

func (s *RedisStore) Del(ctx context.Context, purpose, email string) error {
	return s.Client.Del(ctx, key(purpose, email)).Err()
}

// MemoryStore backs tests and local runs without redis.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]string)}
}

func (s *MemoryStore) Set(_ context.Context, purpose, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key(purpose, email)] = code
	return nil
}

func (s *MemoryStore) Get(_ context.Context, purpose, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[key(purpose, email)]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

func (s *MemoryStore) Del(_ context.Context, purpose, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, key(purpose, email))
	return nil
}
