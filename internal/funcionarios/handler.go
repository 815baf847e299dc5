package funcionarios

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/folhadev/funcionarios-api/internal/cargos"
	"github.com/folhadev/funcionarios-api/internal/domain"
	"github.com/folhadev/funcionarios-api/internal/pkg/httputil"
	"github.com/folhadev/funcionarios-api/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the funcionarios module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new funcionarios handler.
func NewHandler(service *Service) *Handler {
	v := validator.New()
	// Report failing fields by their wire names (nomeFuncionario, not
	// Nome) so validation messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes registers funcionarios routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Route("/funcionarios", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// cargoRef is the role reference inside a funcionario body.
type cargoRef struct {
	IDCargo int64 `json:"idCargo" validate:"required,gt=0"`
}

// CreateBody is the funcionario container of a create request.
type CreateBody struct {
	Nome    string    `json:"nomeFuncionario" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Senha   string    `json:"senha" validate:"required"`
	Usuario string    `json:"usuario" validate:"required"`
	Cargo   *cargoRef `json:"cargo" validate:"required"`
}

// CreateRequest is the create request envelope.
type CreateRequest struct {
	Funcionario *CreateBody `json:"funcionario" validate:"required"`
}

// UpdateBody mirrors CreateBody except senha is optional: an absent or
// empty senha leaves the stored hash unchanged.
type UpdateBody struct {
	Nome    string    `json:"nomeFuncionario" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Senha   string    `json:"senha"`
	Usuario string    `json:"usuario" validate:"required"`
	Cargo   *cargoRef `json:"cargo" validate:"required"`
}

// UpdateRequest is the update request envelope.
type UpdateRequest struct {
	Funcionario *UpdateBody `json:"funcionario" validate:"required"`
}

// LoginBody is the funcionario container of a login request.
type LoginBody struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginRequest is the login request envelope.
type LoginRequest struct {
	Funcionario *LoginBody `json:"funcionario" validate:"required"`
}

// LoginResponse wraps the issued claims and token.
type LoginResponse struct {
	User  LoginUser `json:"user"`
	Token string    `json:"token"`
}

// LoginUser nests the claims under the funcionario container.
type LoginUser struct {
	Funcionario *domain.Claims `json:"funcionario"`
}

// Create handles POST /funcionarios.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "validation error", "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), Input{
		Nome:    req.Funcionario.Nome,
		Email:   req.Funcionario.Email,
		Senha:   req.Funcionario.Senha,
		Usuario: req.Funcionario.Usuario,
		CargoID: req.Funcionario.Cargo.IDCargo,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, created)
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "validation error", "invalid json")
		return
	}

	if req.Funcionario != nil {
		req.Funcionario.Email = strings.TrimSpace(req.Funcionario.Email)
		req.Funcionario.Senha = strings.TrimSpace(req.Funcionario.Senha)
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	claims, token, err := h.service.Login(r.Context(), req.Funcionario.Email, req.Funcionario.Senha)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		h.handleServiceError(w, r, err)
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	httputil.JSON(w, http.StatusOK, LoginResponse{
		User:  LoginUser{Funcionario: claims},
		Token: token,
	})
}

// List handles GET /funcionarios.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindAll(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// GetByID handles GET /funcionarios/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	f, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, f)
}

// Update handles PUT /funcionarios/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Fail(w, http.StatusBadRequest, "validation error", "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, Input{
		Nome:    req.Funcionario.Nome,
		Email:   req.Funcionario.Email,
		Senha:   req.Funcionario.Senha,
		Usuario: req.Funcionario.Usuario,
		CargoID: req.Funcionario.Cargo.IDCargo,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /funcionarios/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, deleted)
}

// idParam parses the {id} route parameter as a positive integer,
// writing a validation failure and returning false otherwise.
func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.Fail(w, http.StatusBadRequest, "validation error", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: cargos.ErrCargoNotFound, Status: http.StatusBadRequest, Title: "invalid cargo reference"},
		{Error: ErrEmailExists, Status: http.StatusBadRequest, Title: "conflict"},
		{Error: ErrUsuarioExists, Status: http.StatusBadRequest, Title: "conflict"},
		{Error: ErrFuncionarioNotFound, Status: http.StatusNotFound, Title: "not found"},
		{Error: ErrInvalidCredentials, Status: http.StatusUnauthorized, Title: "unauthorized"},
	})
}
