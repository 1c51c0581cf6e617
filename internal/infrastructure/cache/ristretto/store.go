// Package ristretto provides a bounded in-process shared tier for the cache
// coordinator, used when cache.store is "ristretto". Unlike the coordinator's
// own map it is cost-bounded and admits entries by frequency, so it keeps hot
// results across coordinator sweeps without growing without limit.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// Store wraps a ristretto cache of byte slices.
type Store struct {
	c *ristretto.Cache[string, []byte]
}

// NewStore creates a store holding at most maxCostBytes of values.
func NewStore(maxCostBytes int64) (*Store, error) {
	if maxCostBytes <= 0 {
		return nil, errors.New(errors.CodeInvalidParam, "ristretto max cost must be positive")
	}
	counters := maxCostBytes / 100 * 10
	if counters < 1000 {
		counters = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: counters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailed, "create ristretto cache")
	}
	return &Store{c: c}, nil
}

// Get returns the value and true on a hit.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := s.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value with ttl. Ristretto may drop the write under admission
// pressure; that is reported as success because the tier is best effort.
// The write is flushed before returning so a following Get observes it.
func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New(errors.CodeInvalidParam, "ristretto set requires a positive ttl").WithDetail(key)
	}
	s.c.SetWithTTL(key, value, int64(len(value))+int64(len(key)), ttl)
	s.c.Wait()
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

// Close stops ristretto's background goroutines.
func (s *Store) Close() {
	s.c.Close()
}

//Personal.AI order the ending
