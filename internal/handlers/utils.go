package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
)

type contextKey string

const (
	contextUserIDKey contextKey = "userId"
	contextEmailKey  contextKey = "email"
)

const maxFieldLength = 255

// bcrypt rejects anything longer.
const maxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrorResponse is the error payload. Fields carries per-field validation
// detail and is omitted for every other error class.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func userIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(contextUserIDKey).(int)
	if !ok || userID < 1 {
		return 0, errors.New("missing subject")
	}
	return userID, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "validation failed",
		Fields: fields,
	})
}

// fieldErrors accumulates per-field validation problems.
type fieldErrors map[string]string

func (f fieldErrors) requireString(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		f[field] = "is required"
	} else if len(value) > maxFieldLength {
		f[field] = "is too long"
	}
	return value
}

func (f fieldErrors) requirePassword(field, value string) {
	if value == "" {
		f[field] = "is required"
	} else if len(value) > maxPasswordBytes {
		f[field] = "is too long"
	}
}

func (f fieldErrors) requireEmail(field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		f[field] = "is required"
	} else if len(value) > maxFieldLength || !emailPattern.MatchString(value) {
		f[field] = "is not a valid email address"
	}
	return value
}

func (f fieldErrors) requireNonNegative(field string, value float64) {
	if value < 0 {
		f[field] = "must not be negative"
	}
}
