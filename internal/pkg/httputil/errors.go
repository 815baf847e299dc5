package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/folhadev/funcionarios-api/internal/pkg/ctxlog"
)

// ErrorMapping defines how a domain error maps to an HTTP response.
type ErrorMapping struct {
	Error   error
	Status  int
	Title   string
	Message string // if empty, uses err.Error()
}

// HandleError maps a domain error to an HTTP response using the given
// mappings. Unmapped errors are logged and become a generic 500 so
// internal details never leak to the client.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = err.Error()
			}
			Fail(w, m.Status, m.Title, msg)
			return
		}
	}
	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Fail(w, http.StatusInternalServerError, "internal error", "internal error")
}
