package handler

import (
	"log/slog"
	"net/http"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LookupHandlerParams holds dependencies for LookupHandler, injected by Fx.
type LookupHandlerParams struct {
	fx.In

	LookupUC usecase.LookupUsecase
	Logger   *slog.Logger
}

// LookupHandler serves every named reference list. Each method returns the
// handler for one kind, so the router mounts the same code under
// /categories, /tags, /side-effects and so on.
type LookupHandler struct {
	lookupUC usecase.LookupUsecase
	logger   *slog.Logger
}

// NewLookupHandler is the constructor for LookupHandler
func NewLookupHandler(params LookupHandlerParams) *LookupHandler {
	return &LookupHandler{
		lookupUC: params.LookupUC,
		logger:   params.Logger,
	}
}

// CreateLookupRequest represents the request body for creating a reference record
type CreateLookupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateLookupRequest represents the request body for patching a reference record
type UpdateLookupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// Create returns the create handler for kind
func (h *LookupHandler) Create(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CreateLookupRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid "+kind.String()+" input")
		}

		if err := c.Validate(&req); err != nil {
			return response.ValidationFailed(c, err)
		}

		lookup, err := h.lookupUC.CreateLookup(c.Request().Context(), kind, req.Name, req.Description)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusCreated, lookup)
	}
}

// List returns the paged list handler for kind
func (h *LookupHandler) List(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := bindPage(c)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		result, err := h.lookupUC.ListLookups(c.Request().Context(), kind, page)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, result)
	}
}

// Get returns the single-record handler for kind
func (h *LookupHandler) Get(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}

		lookup, err := h.lookupUC.GetLookup(c.Request().Context(), kind, id)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, lookup)
	}
}

// Update returns the patch handler for kind
func (h *LookupHandler) Update(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}

		var req UpdateLookupRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid "+kind.String()+" input")
		}

		if err := c.Validate(&req); err != nil {
			return response.ValidationFailed(c, err)
		}

		lookup, err := h.lookupUC.UpdateLookup(c.Request().Context(), kind, id, &entity.LookupPatch{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, lookup)
	}
}

// Delete returns the soft delete handler for kind
func (h *LookupHandler) Delete(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := caller(c)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		id, err := pathID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}

		if err := h.lookupUC.DeleteLookup(c.Request().Context(), kind, id, principal.UserID); err != nil {
			return response.HandleAppError(c, err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
