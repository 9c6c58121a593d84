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

// RoleHandlerParams holds dependencies for RoleHandler, injected by Fx.
type RoleHandlerParams struct {
	fx.In

	RoleUC usecase.RoleUsecase
	Logger *slog.Logger
}

// RoleHandler serves role management.
type RoleHandler struct {
	roleUC usecase.RoleUsecase
	logger *slog.Logger
}

// NewRoleHandler is the constructor for RoleHandler
func NewRoleHandler(params RoleHandlerParams) *RoleHandler {
	return &RoleHandler{
		roleUC: params.RoleUC,
		logger: params.Logger,
	}
}

// CreateRoleRequest represents the request body for creating a role
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Description string   `json:"description" validate:"max=255"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// UpdateRoleRequest represents the request body for patching a role.
// A present permissions list replaces the role's permissions.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=50"`
	Description *string   `json:"description" validate:"omitempty,max=255"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,required"`
}

// CreateRole handles role creation
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	role, err := h.roleUC.CreateRole(c.Request().Context(), &usecase.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, role)
}

// ListRoles handles listing every role with its permissions
func (h *RoleHandler) ListRoles(c echo.Context) error {
	roles, err := h.roleUC.ListRoles(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, roles)
}

// GetRole handles retrieving one role
func (h *RoleHandler) GetRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.GetRole(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

// UpdateRole handles patching a role
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	role, err := h.roleUC.UpdateRole(c.Request().Context(), id, &entity.RolePatch{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}
