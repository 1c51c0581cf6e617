// Package cache implements the coordinator that sits in front of every
// scoring operation: an in-memory map with adaptive TTLs, coalescing of
// concurrent computations for the same key, a periodic sweep and an optional
// shared byte store (Redis or Ristretto) behind it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// DefaultSweepInterval is how often expired entries are purged.
const DefaultSweepInterval = time.Hour

// emaAlpha is the smoothing factor of the average response time.
const emaAlpha = 0.1

// Store is a shared byte cache consulted on a local miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Hit tiers passed to Recorder.CacheLookup.
const (
	TierMemory = "memory"
	TierStore  = "store"
	TierMiss   = "miss"
)

// Recorder receives cache metrics.
type Recorder interface {
	CacheLookup(prefix, tier string)
	CacheCoalesced(prefix string)
	CacheEvicted(n int)
	CacheStoreError(op string)
}

type entry struct {
	value     interface{}
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) live(now time.Time) bool { return now.Sub(e.createdAt) < e.ttl }

// Stats is a snapshot of the coordinator's counters.
type Stats struct {
	Requests          int64   `json:"requests"`
	CacheHits         int64   `json:"cache_hits"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	Errors            int64   `json:"errors"`
	CacheSize         int     `json:"cache_size"`
}

// Coordinator caches computed values by key.
//
// Lifecycle: create with NewCoordinator, call Start once to run the sweep and
// Close on shutdown. A coordinator that was never started still serves
// requests; expired entries are then only dropped when read.
type Coordinator struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	store         Store
	now           func() time.Time
	sweepInterval time.Duration
	logger        logging.Logger
	recorder      Recorder

	requests atomic.Int64
	hits     atomic.Int64
	errs     atomic.Int64
	avgMu    sync.Mutex
	avgMs    float64

	startOnce sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithStore adds a shared tier.
func WithStore(s Store) Option {
	return func(c *Coordinator) { c.store = s }
}

func WithSweepInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		entries:       make(map[string]entry),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
		logger:        logging.NewNopLogger(),
		recorder:      nopRecorder{},
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("cache")
	return c
}

// GetOrCompute returns the live value cached under key or computes it with
// producer. Concurrent callers for the same key share one producer call. The
// producer runs on a context detached from the caller's cancellation, so a
// caller that gives up does not abort the computation; it simply returns
// ctx.Err(). A failed computation is not cached and its error is returned to
// every caller that joined it. ttl <= 0 selects the adaptive policy.
func GetOrCompute[T any](ctx context.Context, c *Coordinator, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()
	c.requests.Add(1)
	defer func() { c.observeLatency(time.Since(start)) }()

	prefix := keyPrefix(key)
	if v, ok := lookup[T](c, key); ok {
		c.hits.Add(1)
		c.recorder.CacheLookup(prefix, TierMemory)
		return v, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A flight that finished just before this one may have stored the value.
		if v, ok := lookup[T](c, key); ok {
			c.hits.Add(1)
			c.recorder.CacheLookup(prefix, TierMemory)
			return v, nil
		}
		pctx := context.WithoutCancel(ctx)
		if v, ok := loadFromStore[T](pctx, c, key); ok {
			c.hits.Add(1)
			c.recorder.CacheLookup(prefix, TierStore)
			c.put(key, v, ResolveTTL(key, ttl, v))
			return v, nil
		}
		c.recorder.CacheLookup(prefix, TierMiss)

		v, err := safeProduce(pctx, producer)
		if err != nil {
			return nil, err
		}
		d := ResolveTTL(key, ttl, v)
		c.put(key, v, d)
		c.saveToStore(pctx, key, v, d)
		return v, nil
	})

	select {
	case <-ctx.Done():
		c.errs.Add(1)
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.recorder.CacheCoalesced(prefix)
		}
		if res.Err != nil {
			c.errs.Add(1)
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			c.errs.Add(1)
			return zero, errors.New(errors.CodeCacheError, "cached value has unexpected type").WithDetail(key)
		}
		return v, nil
	}
}

func lookup[T any](c *Coordinator, key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.live(c.now()) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && !cur.live(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

func loadFromStore[T any](ctx context.Context, c *Coordinator, key string) (T, bool) {
	var zero T
	if c.store == nil {
		return zero, false
	}
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.recorder.CacheStoreError("get")
		c.logger.Warn("shared store get failed", logging.String("key", key), logging.Err(err))
		return zero, false
	}
	if !found {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("discarding undecodable store entry", logging.String("key", key), logging.Err(err))
		_ = c.store.Delete(ctx, key)
		return zero, false
	}
	return v, true
}

func (c *Coordinator) saveToStore(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("value not serializable for shared store", logging.String("key", key), logging.Err(err))
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.recorder.CacheStoreError("set")
		c.logger.Warn("shared store set failed", logging.String("key", key), logging.Err(err))
	}
}

func safeProduce[T any](ctx context.Context, producer func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeProducerFailed, "producer panicked").WithDetail(fmt.Sprint(r))
		}
	}()
	return producer(ctx)
}

func (c *Coordinator) put(key string, v interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: v, createdAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Set stores v under key, bypassing any producer.
func (c *Coordinator) Set(key string, v interface{}, ttl time.Duration) {
	c.put(key, v, ResolveTTL(key, ttl, v))
}

// Invalidate removes key from memory and from the shared store.
func (c *Coordinator) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	if err := c.store.Delete(ctx, key); err != nil {
		c.recorder.CacheStoreError("delete")
		return errors.Wrap(err, errors.CodeCacheError, "invalidate").WithDetail(key)
	}
	return nil
}

// Len returns the number of entries held in memory, expired or not.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep deletes every expired entry and returns how many were removed.
func (c *Coordinator) Sweep() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for k, e := range c.entries {
		if !e.live(now) {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()
	if removed > 0 {
		c.recorder.CacheEvicted(removed)
		c.logger.Debug("cache sweep", logging.Int("removed", removed))
	}
	return removed
}

// Start runs the sweep every sweep interval until ctx is done or Close is
// called. Calls after the first are no-ops.
func (c *Coordinator) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		go c.sweepLoop(ctx)
	})
}

func (c *Coordinator) sweepLoop(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Close stops the sweep and waits for it to exit. It is idempotent.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		started := true
		c.startOnce.Do(func() { started = false })
		if started {
			<-c.done
		}
	})
	return nil
}

func (c *Coordinator) observeLatency(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	c.avgMu.Lock()
	if c.avgMs == 0 {
		c.avgMs = ms
	} else {
		c.avgMs = c.avgMs*(1-emaAlpha) + ms*emaAlpha
	}
	c.avgMu.Unlock()
}

// Stats returns the current counters.
func (c *Coordinator) Stats() Stats {
	s := Stats{
		Requests:  c.requests.Load(),
		CacheHits: c.hits.Load(),
		Errors:    c.errs.Load(),
		CacheSize: c.Len(),
	}
	if s.Requests > 0 {
		s.CacheHitRate = float64(s.CacheHits) / float64(s.Requests)
	}
	c.avgMu.Lock()
	s.AvgResponseTimeMs = c.avgMs
	c.avgMu.Unlock()
	return s
}

// keyPrefix returns the first two colon-separated segments of key.
func keyPrefix(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + ":" + parts[1]
}

type nopRecorder struct{}

func (nopRecorder) CacheLookup(string, string) {}
func (nopRecorder) CacheCoalesced(string)      {}
func (nopRecorder) CacheEvicted(int)           {}
func (nopRecorder) CacheStoreError(string)     {}

//Personal.AI order the ending
