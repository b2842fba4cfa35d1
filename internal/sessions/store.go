package sessions

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/elitehands/elitehands-api/internal/config"
)

// Store keeps revoked JWT ids and per-user revocation watermarks in redis.
// When redis is unreachable the store degrades to a no-op: tokens keep
// working, revocation checks are skipped.
type Store struct {
	client *redis.Client
}

func New(cfg *config.Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, session revocation disabled: %v", err)
		client.Close()
		return &Store{}
	}

	return &Store{client: client}
}

func denyKey(jti string) string {
	return "session:deny:" + jti
}

func watermarkKey(userID uint) string {
	return fmt.Sprintf("session:revoked_at:%d", userID)
}

// RevokeToken denylists a single token id until it would have expired anyway.
func (s *Store) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if s.client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, denyKey(jti), "1", ttl).Err()
}

func (s *Store) IsTokenRevoked(ctx context.Context, jti string) bool {
	if s.client == nil || jti == "" {
		return false
	}
	n, err := s.client.Exists(ctx, denyKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// RevokeAllBefore invalidates every token issued at or before t for the user.
// Used on password reset so prior sessions cannot outlive the old credential.
func (s *Store) RevokeAllBefore(ctx context.Context, userID uint, t time.Time) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, watermarkKey(userID), strconv.FormatInt(t.Unix(), 10), 25*time.Hour).Err()
}

func (s *Store) IssuedBeforeRevocation(ctx context.Context, userID uint, issuedAt time.Time) bool {
	if s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, watermarkKey(userID)).Result()
	if err != nil {
		return false
	}
	mark, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return issuedAt.Unix() <= mark
}
