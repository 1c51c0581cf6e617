package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// New / Wrap
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"offline", errors.ErrCodeServingOffline, "ml client is offline"},
		{"invalid param", errors.CodeInvalidParam, "budget must be positive"},
		{"rate limit", errors.CodeRateLimit, "too many requests"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.NotEmpty(t, ae.Stack)
		})
	}
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("connection refused")
	ae := errors.Wrap(root, errors.ErrCodeInferenceFailed, "POST /score/comprehensive")

	require.NotNil(t, ae)
	assert.True(t, stderrors.Is(ae, root))
	assert.Equal(t, root, ae.Unwrap())
	assert.Contains(t, ae.Error(), "connection refused")
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCircuitOpen, "circuit open")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	assert.Equal(t, errors.ErrCodeCircuitOpen, outer.Code)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCircuitOpen, "circuit open")
	outer := errors.Wrap(inner, errors.ErrCodeProducerFailed, "producer")

	assert.Equal(t, errors.ErrCodeProducerFailed, outer.Code)
	assert.True(t, errors.IsCode(outer, errors.ErrCodeCircuitOpen))
}

// ─────────────────────────────────────────────────────────────────────────────
// Error formatting
// ─────────────────────────────────────────────────────────────────────────────

func TestError_Format(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeServingOffline, "offline")
	assert.Equal(t, "[ML_001] offline", ae.Error())

	withDetail := ae.WithDetail("MISSION_ML_OFFLINE=true")
	assert.Equal(t, "[ML_001] offline: MISSION_ML_OFFLINE=true", withDetail.Error())
	assert.Empty(t, ae.Detail, "WithDetail must not mutate the receiver")
}

func TestWithDetail_NilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode(t *testing.T) {
	t.Parallel()

	base := errors.New(errors.ErrCodeMalformedPrediction, "bad json")
	wrapped := fmt.Errorf("service: %w", errors.Wrap(base, errors.ErrCodeProducerFailed, "producer"))

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeMalformedPrediction))
	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeProducerFailed))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeCircuitOpen))
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
	assert.False(t, errors.IsCode(stderrors.New("plain"), errors.CodeInternal))
}

func TestIs_MatchesSentinelCopies(t *testing.T) {
	t.Parallel()

	sentinel := errors.New(errors.ErrCodeCacheMiss, "cache miss")
	copyWithDetail := sentinel.WithDetail("key=price:recommend:abc")

	assert.True(t, stderrors.Is(copyWithDetail, sentinel))
	assert.False(t, stderrors.Is(errors.New(errors.ErrCodeCacheMiss, "other"), sentinel))
}

func TestIsServingUnavailable(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsServingUnavailable(errors.New(errors.ErrCodeServingOffline, "x")))
	assert.True(t, errors.IsServingUnavailable(errors.New(errors.ErrCodeInferenceFailed, "x")))
	assert.True(t, errors.IsServingUnavailable(fmt.Errorf("w: %w", errors.New(errors.ErrCodeCircuitOpen, "x"))))
	assert.False(t, errors.IsServingUnavailable(errors.New(errors.CodeValidation, "x")))
	assert.False(t, errors.IsServingUnavailable(nil))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeCacheMiss,
		errors.GetCode(fmt.Errorf("w: %w", errors.New(errors.ErrCodeCacheMiss, "miss"))))
}

func TestConvenienceFactories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *errors.AppError
		code errors.ErrorCode
	}{
		{errors.NotFound("x"), errors.CodeNotFound},
		{errors.InvalidParam("x"), errors.CodeInvalidParam},
		{errors.Validation("x"), errors.CodeValidation},
		{errors.Internal("x"), errors.CodeInternal},
		{errors.RateLimit("x"), errors.CodeRateLimit},
		{errors.Newf(errors.ErrCodeBriefTooLong, "%d chars", 70000), errors.ErrCodeBriefTooLong},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
	}
	assert.True(t, errors.IsNotFound(errors.NotFound("x")))
	assert.Equal(t, "70000 chars", cases[5].err.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// Code table
// ─────────────────────────────────────────────────────────────────────────────

func TestHTTPStatusForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusServiceUnavailable, errors.HTTPStatusForCode(errors.ErrCodeServingOffline))
	assert.Equal(t, http.StatusBadRequest, errors.HTTPStatusForCode(errors.CodeInvalidParam))
	assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatusForCode("NOPE_999"))
	assert.True(t, errors.IsClientError(errors.ErrCodeBriefEmpty))
	assert.True(t, errors.IsServerError(errors.ErrCodeInferenceFailed))
}

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	t.Parallel()

	for code := range errors.ErrorCodeHTTPStatus {
		_, ok := errors.ErrorCodeMessage[code]
		assert.True(t, ok, "missing message for %s", code)
	}
	assert.Equal(t, "unknown error", errors.DefaultMessageForCode("NOPE_999"))
}

func TestModuleForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ML", errors.ModuleForCode(errors.ErrCodeCircuitOpen))
	assert.Equal(t, "BRIEF", errors.ModuleForCode(errors.ErrCodeBriefEmpty))
	assert.Equal(t, "UNKNOWN", errors.ModuleForCode(errors.CodeOK))
}

//Personal.AI order the ending
