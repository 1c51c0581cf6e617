package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Sentinel codes that are not failures of a particular module.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// ML serving error codes.
const (
	ErrCodeServingOffline      ErrorCode = "ML_001"
	ErrCodeCircuitOpen         ErrorCode = "ML_002"
	ErrCodeInferenceFailed     ErrorCode = "ML_003"
	ErrCodeMalformedPrediction ErrorCode = "ML_004"
)

// Cache coordinator error codes.
const (
	ErrCodeCacheMiss      ErrorCode = "CACHE_001"
	ErrCodeProducerFailed ErrorCode = "CACHE_002"
	ErrCodeStoreFailed    ErrorCode = "CACHE_003"
)

// Brief standardization error codes.
const (
	ErrCodeBriefEmpty    ErrorCode = "BRIEF_001"
	ErrCodeBriefTooLong  ErrorCode = "BRIEF_002"
	ErrCodeInsightFailed ErrorCode = "BRIEF_003"
)

// Messaging error codes.
const (
	ErrCodePublishFailed ErrorCode = "MSG_001"
)

// Short aliases used at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeValidation   = ErrCodeValidation
	CodeCacheError   = ErrCodeCacheError
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	CodeOK:                    http.StatusOK,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeServingOffline:      http.StatusServiceUnavailable,
	ErrCodeCircuitOpen:         http.StatusServiceUnavailable,
	ErrCodeInferenceFailed:     http.StatusBadGateway,
	ErrCodeMalformedPrediction: http.StatusBadGateway,

	ErrCodeCacheMiss:      http.StatusNotFound,
	ErrCodeProducerFailed: http.StatusInternalServerError,
	ErrCodeStoreFailed:    http.StatusInternalServerError,

	ErrCodeBriefEmpty:    http.StatusBadRequest,
	ErrCodeBriefTooLong:  http.StatusRequestEntityTooLarge,
	ErrCodeInsightFailed: http.StatusBadGateway,

	ErrCodePublishFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	CodeOK:                    "ok",
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeServingOffline:      "ML service is in offline mode",
	ErrCodeCircuitOpen:         "ML service circuit breaker is open",
	ErrCodeInferenceFailed:     "ML inference failed",
	ErrCodeMalformedPrediction: "ML service returned a malformed payload",

	ErrCodeCacheMiss:      "cache miss",
	ErrCodeProducerFailed: "cache producer failed",
	ErrCodeStoreFailed:    "shared cache store failed",

	ErrCodeBriefEmpty:    "brief has no title and no description",
	ErrCodeBriefTooLong:  "brief exceeds the maximum length",
	ErrCodeInsightFailed: "insight provider failed",

	ErrCodePublishFailed: "failed to publish event",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
