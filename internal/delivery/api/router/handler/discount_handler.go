package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// DiscountHandlerParams holds dependencies for DiscountHandler, injected by Fx.
type DiscountHandlerParams struct {
	fx.In

	DiscountUC usecase.DiscountUsecase
	Logger     *slog.Logger
}

// DiscountHandler serves discounts, their parameters and their associations.
type DiscountHandler struct {
	discountUC usecase.DiscountUsecase
	logger     *slog.Logger
}

// NewDiscountHandler is the constructor for DiscountHandler
func NewDiscountHandler(params DiscountHandlerParams) *DiscountHandler {
	return &DiscountHandler{
		discountUC: params.DiscountUC,
		logger:     params.Logger,
	}
}

// DiscountParameterRequest represents one key/value parameter of a discount
type DiscountParameterRequest struct {
	Key   string `json:"param_key" validate:"required,max=100"`
	Value string `json:"param_value" validate:"max=255"`
}

// CreateDiscountRequest represents the request body for creating a discount
type CreateDiscountRequest struct {
	Name              string                     `json:"name" validate:"required,max=255"`
	Description       string                     `json:"description"`
	DiscountTypeID    int64                      `json:"discount_type_id" validate:"required,gt=0"`
	Value             decimal.Decimal            `json:"value"`
	StartDate         time.Time                  `json:"start_date" validate:"required"`
	EndDate           time.Time                  `json:"end_date" validate:"required"`
	MinPurchaseAmount decimal.Decimal            `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal           `json:"max_discount_amount"`
	UsageLimit        *int                       `json:"usage_limit" validate:"omitempty,gt=0"`
	Parameters        []DiscountParameterRequest `json:"parameters" validate:"dive"`
	MedicineIDs       []int64                    `json:"medicine_ids" validate:"dive,gt=0"`
	CategoryIDs       []int64                    `json:"category_ids" validate:"dive,gt=0"`
}

// UpdateDiscountRequest represents the request body for patching a discount.
// A present association list replaces the stored set.
type UpdateDiscountRequest struct {
	Name              *string                     `json:"name" validate:"omitempty,min=1,max=255"`
	Description       *string                     `json:"description"`
	DiscountTypeID    *int64                      `json:"discount_type_id" validate:"omitempty,gt=0"`
	Value             *decimal.Decimal            `json:"value"`
	StartDate         *time.Time                  `json:"start_date"`
	EndDate           *time.Time                  `json:"end_date"`
	MinPurchaseAmount *decimal.Decimal            `json:"min_purchase_amount"`
	MaxDiscountAmount *decimal.Decimal            `json:"max_discount_amount"`
	UsageLimit        *int                        `json:"usage_limit" validate:"omitempty,gt=0"`
	Parameters        *[]DiscountParameterRequest `json:"parameters" validate:"omitempty,dive"`
	MedicineIDs       *[]int64                    `json:"medicine_ids" validate:"omitempty,dive,gt=0"`
	CategoryIDs       *[]int64                    `json:"category_ids" validate:"omitempty,dive,gt=0"`
}

// UpdateParameterRequest represents the request body for patching a discount parameter
type UpdateParameterRequest struct {
	Key   *string `json:"param_key" validate:"omitempty,min=1,max=100"`
	Value *string `json:"param_value" validate:"omitempty,max=255"`
}

// AssignRequest represents a list of ids to link to a discount
type AssignRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

func toParameters(reqs []DiscountParameterRequest) []entity.DiscountParameter {
	params := make([]entity.DiscountParameter, 0, len(reqs))
	for _, r := range reqs {
		params = append(params, entity.DiscountParameter{Key: r.Key, Value: r.Value})
	}

	return params
}

// CreateDiscount handles discount creation with parameters and associations
func (h *DiscountHandler) CreateDiscount(c echo.Context) error {
	var req CreateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	discount, err := h.discountUC.CreateDiscount(c.Request().Context(), &usecase.CreateDiscountInput{
		Name:              req.Name,
		Description:       req.Description,
		DiscountTypeID:    req.DiscountTypeID,
		Value:             req.Value,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		Parameters:        toParameters(req.Parameters),
		MedicineIDs:       req.MedicineIDs,
		CategoryIDs:       req.CategoryIDs,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, discount)
}

// ListDiscounts handles the paged discount list. ?active=true keeps the
// discounts running now, ?active=false the others.
func (h *DiscountHandler) ListDiscounts(c echo.Context) error {
	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "active must be true or false")
		}
		active = &v
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.discountUC.ListDiscounts(c.Request().Context(), active, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GetDiscount handles retrieving one discount
func (h *DiscountHandler) GetDiscount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	discount, err := h.discountUC.GetDiscount(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount)
}

// UpdateDiscount handles patching a discount
func (h *DiscountHandler) UpdateDiscount(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	patch := &entity.DiscountPatch{
		Name:              req.Name,
		Description:       req.Description,
		DiscountTypeID:    req.DiscountTypeID,
		Value:             req.Value,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		MedicineIDs:       req.MedicineIDs,
		CategoryIDs:       req.CategoryIDs,
	}
	if req.Parameters != nil {
		params := toParameters(*req.Parameters)
		patch.Parameters = &params
	}

	discount, err := h.discountUC.UpdateDiscount(c.Request().Context(), id, patch, principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount)
}

// DeleteDiscount handles soft deleting a discount
func (h *DiscountHandler) DeleteDiscount(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.discountUC.DeleteDiscount(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListParameters handles listing the parameters of a discount
func (h *DiscountHandler) ListParameters(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	params, err := h.discountUC.ListParameters(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, params)
}

// AddParameter handles adding a parameter to a discount
func (h *DiscountHandler) AddParameter(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req DiscountParameterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid parameter input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	param, err := h.discountUC.AddParameter(c.Request().Context(), id, req.Key, req.Value)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, param)
}

// UpdateParameter handles patching a discount parameter
func (h *DiscountHandler) UpdateParameter(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	paramID, err := pathID(c, "paramId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateParameterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid parameter input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	param, err := h.discountUC.UpdateParameter(c.Request().Context(), id, paramID, req.Key, req.Value)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, param)
}

// DeleteParameter handles soft deleting a discount parameter
func (h *DiscountHandler) DeleteParameter(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	paramID, err := pathID(c, "paramId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.discountUC.DeleteParameter(c.Request().Context(), id, paramID, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AssignMedicines handles linking medicines to a discount
func (h *DiscountHandler) AssignMedicines(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid medicine list")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	discount, err := h.discountUC.AssignMedicines(c.Request().Context(), id, req.IDs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount)
}

// AssignCategories handles linking categories to a discount
func (h *DiscountHandler) AssignCategories(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category list")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	discount, err := h.discountUC.AssignCategories(c.Request().Context(), id, req.IDs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount)
}

// RemoveMedicine handles unlinking one medicine from a discount
func (h *DiscountHandler) RemoveMedicine(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	medicineID, err := pathID(c, "medicineId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.discountUC.RemoveMedicine(c.Request().Context(), id, medicineID, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RemoveCategory handles unlinking one category from a discount
func (h *DiscountHandler) RemoveCategory(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.discountUC.RemoveCategory(c.Request().Context(), id, categoryID, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
