// Package handlers implements the HTTP handlers of the mission intelligence API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// DefaultMaxBodySize bounds request bodies when the router is not told otherwise.
const DefaultMaxBodySize int64 = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeError maps err to its HTTP status through the error code table.
// Errors without an AppError in their chain are masked as internal errors.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	var ae *errors.AppError
	if code == errors.CodeUnknown || !stderrors.As(err, &ae) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, errors.HTTPStatusForCode(code), ErrorResponse{
		Code:    string(ae.Code),
		Message: ae.Message,
		Detail:  ae.Detail,
	})
}

// decodeJSON reads a single JSON document from the request body into v.
// Every failure is reported as a bad request.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeBadRequest, "request body is empty")
		}
		return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid JSON body")
	}
	return nil
}

//Personal.AI order the ending
