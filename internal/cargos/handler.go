package cargos

import (
	"net/http"
	"strconv"

	"github.com/folhadev/funcionarios-api/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler serves the read-only cargo endpoints. Cargo reads carry no
// business rules, so the handler talks to the repository directly.
type Handler struct {
	repo Repository
}

// NewHandler creates a new cargos handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers cargo routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cargos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
	})
}

// List handles GET /cargos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.List(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// GetByID handles GET /cargos/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.Fail(w, http.StatusBadRequest, "validation error", "id must be a positive integer")
		return
	}

	cargo, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: ErrCargoNotFound, Status: http.StatusNotFound, Title: "not found"},
		})
		return
	}
	httputil.JSON(w, http.StatusOK, cargo)
}
