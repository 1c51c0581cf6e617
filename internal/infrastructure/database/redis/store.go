package redis

import (
	"context"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// Store is the byte-oriented shared cache tier. Keys are namespaced with the
// configured prefix; TTLs get a small jitter so entries written by a burst of
// replicas do not all expire in the same instant.
type Store struct {
	client *Client
	prefix string
	jitter float64
	logger logging.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPrefix overrides the key prefix taken from the client configuration.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

// WithJitter sets the maximum TTL reduction as a fraction (0 disables).
func WithJitter(fraction float64) StoreOption {
	return func(s *Store) { s.jitter = fraction }
}

// NewStore builds a Store on client.
func NewStore(client *Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		prefix: client.config.KeyPrefix,
		jitter: 0.05,
		logger: client.logger.Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) fullKey(key string) string {
	return s.prefix + key
}

// jitterTTL shortens ttl by up to jitter×ttl. It never lengthens it, so the
// shared tier never outlives the coordinator's own expiry.
func (s *Store) jitterTTL(ttl time.Duration) time.Duration {
	if s.jitter <= 0 || ttl <= time.Second {
		return ttl
	}
	cut := time.Duration(rand.Float64() * s.jitter * float64(ttl))
	return ttl - cut
}

// Get returns the value and true on a hit, (nil, false, nil) on a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rdb, err := s.client.get()
	if err != nil {
		return nil, false, err
	}
	val, err := rdb.Get(ctx, s.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeStoreFailed, "redis get").WithDetail(key)
	}
	return val, true, nil
}

// Set writes value with ttl. A non-positive ttl is rejected because the
// coordinator always resolves one.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New(errors.CodeInvalidParam, "redis set requires a positive ttl").WithDetail(key)
	}
	rdb, err := s.client.get()
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, s.fullKey(key), value, s.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreFailed, "redis set").WithDetail(key)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	rdb, err := s.client.get()
	if err != nil {
		return err
	}
	if err := rdb.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreFailed, "redis del").WithDetail(key)
	}
	return nil
}

//Personal.AI order the ending
