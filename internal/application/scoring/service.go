// Package scoring is the entry point of mission intelligence. Every
// operation follows the same template: look the request up in the cache
// coordinator, otherwise ask the ML service and fall back to the local
// heuristics when it is unavailable. Operations never fail: when even the
// fallback breaks, a minimal default result is returned and not cached.
package scoring

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/cache"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/standardize"
	"github.com/turtacn/MissionIntelligence/pkg/errors"
	"github.com/turtacn/MissionIntelligence/pkg/types/events"
	scoringtypes "github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// DefaultPublishTimeout bounds one event publication.
const DefaultPublishTimeout = 5 * time.Second

// marketBucket is the time bucket appended to real-time pricing and market
// heat keys.
const marketBucket = 5 * time.Minute

// Fallback reasons.
const (
	ReasonOffline         = "offline"
	ReasonCircuitOpen     = "circuit_open"
	ReasonInferenceFailed = "inference_failed"
	ReasonMalformed       = "malformed"
	ReasonError           = "error"
)

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Metrics receives operation metrics. *prometheus.AppMetrics implements it.
type Metrics interface {
	RecordOperation(operation, source string, d time.Duration)
	RecordFallback(operation, reason string)
	RecordBrief(category string, quality, complexity float64)
	RecordEvent(eventType string, err error)
	SetBreakerOpen(client string, open bool)
}

// Stats is the service-level view exposed on /api/v1/stats.
type Stats struct {
	cache.Stats
	MLOffline    bool   `json:"ml_offline"`
	BreakerState string `json:"breaker_state,omitempty"`
}

// Service orchestrates the cache, the ML client, the heuristic scorer and
// the standardization engine.
//
// Results handed out by the service may be shared with other callers
// through the cache and must be treated as read-only.
type Service struct {
	client    common.ServingClient
	coord     *cache.Coordinator
	scorer    *heuristic.Scorer
	engine    *standardize.Engine
	publisher EventPublisher
	metrics   Metrics
	logger    logging.Logger
	breaker   *common.Breaker
	now       func() time.Time

	publishTimeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithEngine sets the standardization engine.
func WithEngine(e *standardize.Engine) Option { return func(s *Service) { s.engine = e } }

// WithPublisher enables event publication.
func WithPublisher(p EventPublisher) Option { return func(s *Service) { s.publisher = p } }

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock replaces time.Now, used for the time-bucketed keys.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithBreaker reports transitions of the ML client's breaker as events and
// metrics.
func WithBreaker(b *common.Breaker) Option { return func(s *Service) { s.breaker = b } }

// WithPublishTimeout bounds each event publication.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// NewService creates a service over an ML client and a cache coordinator.
func NewService(client common.ServingClient, coord *cache.Coordinator, opts ...Option) *Service {
	s := &Service{
		client:         client,
		coord:          coord,
		scorer:         heuristic.New(),
		metrics:        nopMetrics{},
		logger:         logging.NewNopLogger(),
		now:            time.Now,
		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("scoring")
	if s.engine == nil {
		s.engine = standardize.NewEngine(standardize.WithLogger(s.logger))
	}
	if s.breaker != nil {
		s.breaker.OnStateChange(s.onBreakerChange)
	}
	return s
}

func (s *Service) onBreakerChange(from, to common.BreakerState) {
	s.metrics.SetBreakerOpen("ml", to == common.BreakerOpen)
	if to == common.BreakerOpen {
		s.logger.Warn("ML circuit opened", logging.String("from", from.String()))
		s.emit(events.New(events.TypeBreakerOpened, "", "").With("from", from.String()))
	}
}

// SetOffline switches the ML client in or out of offline mode.
func (s *Service) SetOffline(offline bool) { s.client.SetOffline(offline) }

// Stats returns the cache counters plus the state of the ML client.
func (s *Service) Stats() Stats {
	st := Stats{Stats: s.coord.Stats(), MLOffline: s.client.Offline()}
	if s.breaker != nil {
		st.BreakerState = s.breaker.State().String()
	}
	return st
}

// Close waits for pending event publications. The coordinator and the
// publisher are owned by the caller.
func (s *Service) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.pending.Wait()
	return nil
}

// operation describes one entry point of the template.
type operation[T any] struct {
	name   string
	path   string
	prefix string
	// ttl 0 lets the coordinator pick an adaptive TTL.
	ttl    time.Duration
	bucket time.Duration

	// call overrides the default POST of the request to path.
	call     func(ctx context.Context, out *T) error
	fallback func(ctx context.Context) *T
	deflt    func() *T
	// source points at the result's Source field.
	source   func(*T) *string
	// computed runs once on every freshly computed result.
	computed func(key string, res *T)
}

func execute[T any](ctx context.Context, s *Service, op operation[T], req interface{}) *T {
	start := s.now()
	key := s.cacheKey(op.prefix, req, op.bucket)

	res, err := cache.GetOrCompute(ctx, s.coord, key, op.ttl, func(ctx context.Context) (*T, error) {
		return produce(ctx, s, op, key, req)
	})
	if err != nil || res == nil {
		s.logger.Warn("returning default result",
			logging.String("operation", op.name), logging.String("key", key), logging.Err(err))
		res = op.deflt()
		*op.source(res) = scoringtypes.SourceDefault
	}
	s.metrics.RecordOperation(op.name, *op.source(res), s.now().Sub(start))
	return res
}

func produce[T any](ctx context.Context, s *Service, op operation[T], key string, req interface{}) (*T, error) {
	var reason string
	if s.client.Offline() {
		reason = ReasonOffline
	} else {
		out := new(T)
		var err error
		if op.call != nil {
			err = op.call(ctx, out)
		} else {
			err = s.client.Post(ctx, op.path, req, out)
		}
		if err == nil {
			*op.source(out) = scoringtypes.SourceML
			finish(op, key, out)
			return out, nil
		}
		reason = fallbackReason(err)
		s.logger.Debug("ML unavailable, using fallback",
			logging.String("operation", op.name), logging.String("reason", reason), logging.Err(err))
	}

	res, err := safeFallback(ctx, op)
	if err != nil {
		s.emit(events.New(events.TypeDefaultUsed, op.name, key).With("error", err.Error()))
		return nil, err
	}
	*op.source(res) = scoringtypes.SourceFallback
	s.metrics.RecordFallback(op.name, reason)
	s.emit(events.New(events.TypeFallbackUsed, op.name, key).With("reason", reason))
	finish(op, key, res)
	return res, nil
}

func finish[T any](op operation[T], key string, res *T) {
	if op.computed != nil {
		op.computed(key, res)
	}
}

// safeFallback runs the heuristic path, turning panics and schema-invalid
// results into errors.
func safeFallback[T any](ctx context.Context, op operation[T]) (res *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, errors.Newf(errors.ErrCodeInternal, "%s fallback panicked: %v", op.name, r)
		}
	}()
	res = op.fallback(ctx)
	if res == nil {
		return nil, errors.Newf(errors.ErrCodeInternal, "%s fallback returned nothing", op.name)
	}
	if v, ok := interface{}(res).(common.Validator); ok {
		if verr := v.Validate(); verr != nil {
			return nil, errors.Wrap(verr, errors.ErrCodeInternal, op.name+" fallback result invalid")
		}
	}
	return res, nil
}

func fallbackReason(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeServingOffline:
		return ReasonOffline
	case errors.ErrCodeCircuitOpen:
		return ReasonCircuitOpen
	case errors.ErrCodeInferenceFailed:
		return ReasonInferenceFailed
	case errors.ErrCodeMalformedPrediction:
		return ReasonMalformed
	default:
		return ReasonError
	}
}

// cacheKey is prefix:sha256(json(req)), plus the time bucket when set.
func (s *Service) cacheKey(prefix string, req interface{}, bucket time.Duration) string {
	raw, err := json.Marshal(req)
	if err != nil {
		raw = []byte(fmt.Sprintf("%#v", req))
	}
	sum := sha256.Sum256(raw)
	key := prefix + ":" + hex.EncodeToString(sum[:])
	if bucket > 0 {
		key += fmt.Sprintf(":%d", s.now().Unix()/int64(bucket/time.Second))
	}
	return key
}

// emit publishes e in the background; Close waits for it.
func (s *Service) emit(e events.Event) {
	if s.publisher == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()
		err := s.publisher.Publish(ctx, e)
		s.metrics.RecordEvent(e.Type, err)
		if err != nil {
			s.logger.Warn("event publication failed", logging.String("type", e.Type), logging.Err(err))
		}
	}()
}

type nopMetrics struct{}

func (nopMetrics) RecordOperation(string, string, time.Duration) {}
func (nopMetrics) RecordFallback(string, string)                 {}
func (nopMetrics) RecordBrief(string, float64, float64)          {}
func (nopMetrics) RecordEvent(string, error)                     {}
func (nopMetrics) SetBreakerOpen(string, bool)                   {}

//Personal.AI order the ending
