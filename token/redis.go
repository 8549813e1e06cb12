package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Persisted key layout. Every value is a string; expiries are stringified
// epoch milliseconds.
const (
	keyAccessToken   = "access_token"
	keyRefreshToken  = "refresh_token"
	keyAccessExpiry  = "token_expiry"
	keyRefreshExpiry = "refresh_token_expiry"
)

// RedisStorage is a Redis-backed [Storage]. All four values are written in one
// transaction so concurrent readers in other processes never observe a partial
// pair; a record missing any of its keys is reported as absent.
type RedisStorage struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStorage creates a Redis backend. prefix namespaces the four keys,
// typically one prefix per console deployment.
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "ak"
	}
	return &RedisStorage{redis: client, prefix: prefix}
}

func (s *RedisStorage) key(name string) string {
	return s.prefix + ":" + name
}

func (s *RedisStorage) keys() []string {
	return []string{
		s.key(keyAccessToken),
		s.key(keyRefreshToken),
		s.key(keyAccessExpiry),
		s.key(keyRefreshExpiry),
	}
}

// Load fetches all four values in one MGET. Partial records (any key missing)
// are reported as absent to preserve the pair invariant.
func (s *RedisStorage) Load(ctx context.Context) (Record, bool, error) {
	values, err := s.redis.MGet(ctx, s.keys()...).Result()
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	fields := make([]string, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok || str == "" {
			return Record{}, false, nil
		}
		fields[i] = str
	}

	accessExpiry, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Record{}, false, nil
	}
	refreshExpiry, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Record{}, false, nil
	}

	return Record{
		AccessToken:   fields[0],
		RefreshToken:  fields[1],
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}, true, nil
}

// Save writes all four values in one transaction.
func (s *RedisStorage) Save(ctx context.Context, rec Record) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(keyAccessToken), rec.AccessToken, 0)
		pipe.Set(ctx, s.key(keyRefreshToken), rec.RefreshToken, 0)
		pipe.Set(ctx, s.key(keyAccessExpiry), strconv.FormatInt(rec.AccessExpiry, 10), 0)
		pipe.Set(ctx, s.key(keyRefreshExpiry), strconv.FormatInt(rec.RefreshExpiry, 10), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear deletes all four keys unconditionally.
func (s *RedisStorage) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.keys()...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
