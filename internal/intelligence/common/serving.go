// Package common holds the client for the external ML service shared by every
// intelligence component: JSON over HTTP, an offline switch and a circuit
// breaker in front of the network.
package common

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

var (
	ErrServingOffline      = errors.New(errors.ErrCodeServingOffline, "ML service is in offline mode")
	ErrCircuitOpen         = errors.New(errors.ErrCodeCircuitOpen, "ML circuit breaker is open")
	ErrInferenceFailed     = errors.New(errors.ErrCodeInferenceFailed, "ML inference failed")
	ErrMalformedPrediction = errors.New(errors.ErrCodeMalformedPrediction, "ML service returned a malformed payload")
)

// maxResponseBytes bounds the body read from the ML service.
const maxResponseBytes = 4 << 20

// Call outcomes reported to a CallObserver.
const (
	OutcomeOK          = "ok"
	OutcomeOffline     = "offline"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeHTTPError   = "http_error"
	OutcomeTransport   = "transport_error"
	OutcomeMalformed   = "malformed"
)

// ServingClient talks to the external ML service. in is encoded as the JSON
// request body and the response body is decoded into out. When out
// implements Validator, a payload that fails validation is rejected with
// ErrMalformedPrediction.
type ServingClient interface {
	Post(ctx context.Context, path string, in, out interface{}) error
	Get(ctx context.Context, path string, out interface{}) error
	Offline() bool
	SetOffline(offline bool)
}

// Validator is implemented by result types that can check their own schema.
type Validator interface {
	Validate() error
}

// CallObserver receives one notification per ML call.
type CallObserver interface {
	ObserveCall(endpoint, outcome string, d time.Duration)
}

type httpServingClient struct {
	baseURL  string
	http     *http.Client
	offline  atomic.Bool
	breaker  *Breaker
	retries  int
	backoff  time.Duration
	observer CallObserver
	logger   logging.Logger
}

// ClientOption configures NewHTTPServingClient.
type ClientOption func(*httpServingClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *httpServingClient) { c.http = hc }
}

// WithBreaker replaces the breaker built from configuration.
func WithBreaker(b *Breaker) ClientOption {
	return func(c *httpServingClient) { c.breaker = b }
}

// WithObserver reports every call to o.
func WithObserver(o CallObserver) ClientOption {
	return func(c *httpServingClient) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *httpServingClient) { c.logger = l }
}

// NewHTTPServingClient builds a client from cfg. When cfg.Offline is set no
// request ever leaves the process.
func NewHTTPServingClient(cfg config.MLConfig, opts ...ClientOption) ServingClient {
	c := &httpServingClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: NewBreaker(cfg.BreakerFailures, cfg.BreakerCooldown),
		retries: cfg.Retries,
		backoff: cfg.RetryBackoff,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("ml")
	c.offline.Store(cfg.Offline)
	return c
}

func (c *httpServingClient) Offline() bool { return c.offline.Load() }

func (c *httpServingClient) SetOffline(offline bool) {
	if c.offline.Swap(offline) != offline {
		c.logger.Info("ML offline mode changed", logging.Bool("offline", offline))
	}
}

func (c *httpServingClient) Post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode ML request").WithDetail(path)
	}
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *httpServingClient) Get(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *httpServingClient) call(ctx context.Context, method, path string, body []byte, out interface{}) error {
	start := time.Now()
	if c.offline.Load() {
		c.observe(path, OutcomeOffline, start)
		return ErrServingOffline.WithDetail(path)
	}

	var outcome string
	err := c.breaker.Execute(func() error {
		var callErr error
		outcome, callErr = c.callWithRetry(ctx, method, path, body, out)
		return callErr
	})
	if stderrors.Is(err, ErrCircuitOpen) && outcome == "" {
		c.observe(path, OutcomeCircuitOpen, start)
		return ErrCircuitOpen.WithDetail(path)
	}
	c.observe(path, outcome, start)
	if err != nil {
		c.logger.Debug("ML call failed", logging.String("path", path), logging.String("outcome", outcome), logging.Err(err))
	}
	return err
}

// callWithRetry retries transport failures and 5xx answers with exponential
// backoff. Malformed payloads and 4xx answers are final.
func (c *httpServingClient) callWithRetry(ctx context.Context, method, path string, body []byte, out interface{}) (string, error) {
	backoff := c.backoff
	var (
		outcome string
		err     error
	)
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return OutcomeTransport, ErrInferenceFailed.WithCause(ctx.Err()).WithDetail(path)
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		var retryable bool
		outcome, retryable, err = c.do(ctx, method, path, body, out)
		if err == nil || !retryable {
			return outcome, err
		}
	}
	return outcome, err
}

func (c *httpServingClient) do(ctx context.Context, method, path string, body []byte, out interface{}) (string, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return OutcomeTransport, false, ErrInferenceFailed.WithCause(err).WithDetail(path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return OutcomeTransport, ctx.Err() == nil, ErrInferenceFailed.WithCause(err).WithDetail(path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return OutcomeTransport, true, ErrInferenceFailed.WithCause(err).WithDetail(path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := fmt.Sprintf("%s: status %d", path, resp.StatusCode)
		return OutcomeHTTPError, resp.StatusCode >= 500, ErrInferenceFailed.WithDetail(detail)
	}

	if out == nil {
		return OutcomeOK, false, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return OutcomeMalformed, false, ErrMalformedPrediction.WithCause(err).WithDetail(path)
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return OutcomeMalformed, false, ErrMalformedPrediction.WithCause(err).WithDetail(path)
		}
	}
	return OutcomeOK, false, nil
}

func (c *httpServingClient) observe(path, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveCall(path, outcome, time.Since(start))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MockServingClient
// ─────────────────────────────────────────────────────────────────────────────

// MockServingClient is a ServingClient for tests. Calls are counted per path;
// without PostFunc/GetFunc every call fails with ErrInferenceFailed.
type MockServingClient struct {
	PostFunc func(ctx context.Context, path string, in, out interface{}) error
	GetFunc  func(ctx context.Context, path string, out interface{}) error

	offline atomic.Bool
	calls   atomic.Int64
	byPath  syncCounter
}

func NewMockServingClient() *MockServingClient {
	return &MockServingClient{byPath: newSyncCounter()}
}

func (m *MockServingClient) Post(ctx context.Context, path string, in, out interface{}) error {
	if m.offline.Load() {
		return ErrServingOffline
	}
	m.calls.Add(1)
	m.byPath.inc(path)
	if m.PostFunc == nil {
		return ErrInferenceFailed
	}
	return m.PostFunc(ctx, path, in, out)
}

func (m *MockServingClient) Get(ctx context.Context, path string, out interface{}) error {
	if m.offline.Load() {
		return ErrServingOffline
	}
	m.calls.Add(1)
	m.byPath.inc(path)
	if m.GetFunc == nil {
		return ErrInferenceFailed
	}
	return m.GetFunc(ctx, path, out)
}

func (m *MockServingClient) Offline() bool           { return m.offline.Load() }
func (m *MockServingClient) SetOffline(offline bool) { m.offline.Store(offline) }

// Calls returns the number of calls that reached the (fake) network.
func (m *MockServingClient) Calls() int64 { return m.calls.Load() }

// CallsTo returns the number of calls made to path.
func (m *MockServingClient) CallsTo(path string) int64 { return m.byPath.get(path) }

// RespondJSON returns a PostFunc decoding raw into out, the way the HTTP
// client does.
func RespondJSON(raw string) func(ctx context.Context, path string, in, out interface{}) error {
	return func(_ context.Context, path string, _, out interface{}) error {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return ErrMalformedPrediction.WithCause(err).WithDetail(path)
		}
		if v, ok := out.(Validator); ok {
			if err := v.Validate(); err != nil {
				return ErrMalformedPrediction.WithCause(err).WithDetail(path)
			}
		}
		return nil
	}
}

//Personal.AI order the ending
