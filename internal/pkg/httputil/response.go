// Package httputil provides HTTP response helpers and shared middleware.
package httputil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorDetail carries the human-readable part of an error payload.
type ErrorDetail struct {
	Message string `json:"message"`
}

// ErrorPayload is the uniform error body returned by every endpoint:
// {"statusCode": ..., "title": ..., "detail": {"message": ...}}.
type ErrorPayload struct {
	StatusCode int         `json:"statusCode"`
	Title      string      `json:"title"`
	Detail     ErrorDetail `json:"detail"`
}

// JSON writes a JSON response body.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// Text writes a plain text response.
func Text(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Fail writes the uniform error payload.
func Fail(w http.ResponseWriter, status int, title, message string) {
	JSON(w, status, ErrorPayload{
		StatusCode: status,
		Title:      title,
		Detail:     ErrorDetail{Message: message},
	})
}

// ValidationError writes a 400 with a message naming every failing
// field. Handlers register the json tag name function on their
// validator so fields are reported by their wire names.
func ValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !asValidationErrors(err, &validationErrors) {
		Fail(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	Fail(w, http.StatusBadRequest, "validation error", strings.Join(messages, "; "))
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", e.Field(), e.Tag())
	}
}
