package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandlerParams holds dependencies for InventoryHandler, injected by Fx.
type InventoryHandlerParams struct {
	fx.In

	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

// InventoryHandler serves medicines, batches and GST slabs.
type InventoryHandler struct {
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler
func NewInventoryHandler(params InventoryHandlerParams) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

// CreateMedicineRequest represents the request body for creating a medicine
type CreateMedicineRequest struct {
	Name           string  `json:"name" validate:"required,max=255"`
	GenericName    string  `json:"generic_name" validate:"max=255"`
	Manufacturer   string  `json:"manufacturer" validate:"max=255"`
	Description    string  `json:"description"`
	HSNCode        string  `json:"hsn_code" validate:"omitempty,max=20"`
	IsPrescribed   bool    `json:"is_prescribed"`
	Weight         float64 `json:"weight" validate:"gte=0"`
	ImageAssetID   *int64  `json:"image_asset_id" validate:"omitempty,gt=0"`
	CategoryIDs    []int64 `json:"category_ids" validate:"dive,gt=0"`
	TagIDs         []int64 `json:"tag_ids" validate:"dive,gt=0"`
	SideEffectIDs  []int64 `json:"side_effect_ids" validate:"dive,gt=0"`
	AlternativeIDs []int64 `json:"alternative_ids" validate:"dive,gt=0"`
}

// UpdateMedicineRequest represents the request body for patching a medicine.
// A present id list replaces that link set.
type UpdateMedicineRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=255"`
	GenericName    *string  `json:"generic_name" validate:"omitempty,max=255"`
	Manufacturer   *string  `json:"manufacturer" validate:"omitempty,max=255"`
	Description    *string  `json:"description"`
	HSNCode        *string  `json:"hsn_code" validate:"omitempty,max=20"`
	IsPrescribed   *bool    `json:"is_prescribed"`
	Weight         *float64 `json:"weight" validate:"omitempty,gte=0"`
	ImageAssetID   *int64   `json:"image_asset_id" validate:"omitempty,gt=0"`
	CategoryIDs    *[]int64 `json:"category_ids" validate:"omitempty,dive,gt=0"`
	TagIDs         *[]int64 `json:"tag_ids" validate:"omitempty,dive,gt=0"`
	SideEffectIDs  *[]int64 `json:"side_effect_ids" validate:"omitempty,dive,gt=0"`
	AlternativeIDs *[]int64 `json:"alternative_ids" validate:"omitempty,dive,gt=0"`
}

// MedicineQuery represents the filters of the medicine list
type MedicineQuery struct {
	Name       string `query:"name" validate:"max=255"`
	CategoryID int64  `query:"category_id" validate:"gte=0"`
	TagID      int64  `query:"tag_id" validate:"gte=0"`
}

// ReplaceLinksRequest represents the request body for replacing one link set
type ReplaceLinksRequest struct {
	IDs []int64 `json:"ids" validate:"dive,gt=0"`
}

// CreateBatchRequest represents the request body for receiving stock
type CreateBatchRequest struct {
	MedicineID    int64           `json:"medicine_id" validate:"required,gt=0"`
	BatchNumber   string          `json:"batch_number" validate:"required,max=100"`
	ExpiryDate    time.Time       `json:"expiry_date" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// UpdateBatchRequest represents the request body for patching a batch
type UpdateBatchRequest struct {
	BatchNumber   *string          `json:"batch_number" validate:"omitempty,min=1,max=100"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gte=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// GSTSlabRequest represents the request body for creating a GST slab
type GSTSlabRequest struct {
	HSNCode     string          `json:"hsn_code" validate:"required,max=20"`
	Description string          `json:"description" validate:"max=255"`
	Rate        decimal.Decimal `json:"rate"`
}

// UpdateGSTSlabRequest represents the request body for patching a GST slab
type UpdateGSTSlabRequest struct {
	HSNCode     *string          `json:"hsn_code" validate:"omitempty,min=1,max=20"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Rate        *decimal.Decimal `json:"rate"`
}

// CreateMedicine handles medicine creation with its links
func (h *InventoryHandler) CreateMedicine(c echo.Context) error {
	var req CreateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid medicine input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	medicine, err := h.inventoryUC.CreateMedicine(c.Request().Context(), &entity.Medicine{
		Name:           req.Name,
		GenericName:    req.GenericName,
		Manufacturer:   req.Manufacturer,
		Description:    req.Description,
		HSNCode:        req.HSNCode,
		IsPrescribed:   req.IsPrescribed,
		Weight:         req.Weight,
		ImageAssetID:   req.ImageAssetID,
		CategoryIDs:    req.CategoryIDs,
		TagIDs:         req.TagIDs,
		SideEffectIDs:  req.SideEffectIDs,
		AlternativeIDs: req.AlternativeIDs,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, medicine)
}

// ListMedicines handles the filtered, paged medicine list
func (h *InventoryHandler) ListMedicines(c echo.Context) error {
	var q MedicineQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid medicine filter")
	}

	if err := c.Validate(&q); err != nil {
		return response.ValidationFailed(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filter := entity.MedicineFilter{Name: q.Name, CategoryID: q.CategoryID, TagID: q.TagID}
	result, err := h.inventoryUC.ListMedicines(c.Request().Context(), filter, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GetMedicine handles retrieving one medicine
func (h *InventoryHandler) GetMedicine(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	medicine, err := h.inventoryUC.GetMedicine(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, medicine)
}

// UpdateMedicine handles patching a medicine
func (h *InventoryHandler) UpdateMedicine(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid medicine input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	medicine, err := h.inventoryUC.UpdateMedicine(c.Request().Context(), id, &entity.MedicinePatch{
		Name:           req.Name,
		GenericName:    req.GenericName,
		Manufacturer:   req.Manufacturer,
		Description:    req.Description,
		HSNCode:        req.HSNCode,
		IsPrescribed:   req.IsPrescribed,
		Weight:         req.Weight,
		ImageAssetID:   req.ImageAssetID,
		CategoryIDs:    req.CategoryIDs,
		TagIDs:         req.TagIDs,
		SideEffectIDs:  req.SideEffectIDs,
		AlternativeIDs: req.AlternativeIDs,
	}, principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, medicine)
}

// DeleteMedicine handles soft deleting a medicine
func (h *InventoryHandler) DeleteMedicine(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.inventoryUC.DeleteMedicine(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ReplaceLinks returns the handler that sets one link set of a medicine
func (h *InventoryHandler) ReplaceLinks(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := caller(c)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		id, err := pathID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}

		var req ReplaceLinksRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid link input")
		}

		if err := c.Validate(&req); err != nil {
			return response.ValidationFailed(c, err)
		}

		medicine, err := h.inventoryUC.ReplaceMedicineLinks(c.Request().Context(), id, kind, req.IDs, principal.UserID)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, medicine)
	}
}

// CreateBatch handles receiving stock
func (h *InventoryHandler) CreateBatch(c echo.Context) error {
	var req CreateBatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid batch input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	batch, err := h.inventoryUC.CreateBatch(c.Request().Context(), &entity.MedicineBatch{
		MedicineID:    req.MedicineID,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    req.ExpiryDate,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, batch)
}

// ListBatches handles the paged batch list, optionally for one medicine
func (h *InventoryHandler) ListBatches(c echo.Context) error {
	medicineID, err := optionalQueryID(c, "medicine_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.ListBatches(c.Request().Context(), medicineID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GetBatch handles retrieving one batch
func (h *InventoryHandler) GetBatch(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	batch, err := h.inventoryUC.GetBatch(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, batch)
}

// UpdateBatch handles patching a batch
func (h *InventoryHandler) UpdateBatch(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateBatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid batch input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	batch, err := h.inventoryUC.UpdateBatch(c.Request().Context(), id, &entity.BatchPatch{
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    req.ExpiryDate,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, batch)
}

// DeleteBatch handles soft deleting a batch
func (h *InventoryHandler) DeleteBatch(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.inventoryUC.DeleteBatch(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportBatches handles downloading the stock as a spreadsheet
func (h *InventoryHandler) ExportBatches(c echo.Context) error {
	medicineID, err := optionalQueryID(c, "medicine_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var buf bytes.Buffer
	if err := h.inventoryUC.ExportBatches(c.Request().Context(), medicineID, &buf); err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)

	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CreateGSTSlab handles GST slab creation
func (h *InventoryHandler) CreateGSTSlab(c echo.Context) error {
	var req GSTSlabRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid GST slab input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	slab, err := h.inventoryUC.CreateGSTSlab(c.Request().Context(), &entity.GSTSlab{
		HSNCode:     req.HSNCode,
		Description: req.Description,
		Rate:        req.Rate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, slab)
}

// ListGSTSlabs handles the paged GST slab list
func (h *InventoryHandler) ListGSTSlabs(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.ListGSTSlabs(c.Request().Context(), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GetGSTSlab handles retrieving one GST slab
func (h *InventoryHandler) GetGSTSlab(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	slab, err := h.inventoryUC.GetGSTSlab(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, slab)
}

// UpdateGSTSlab handles patching a GST slab
func (h *InventoryHandler) UpdateGSTSlab(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateGSTSlabRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid GST slab input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	slab, err := h.inventoryUC.UpdateGSTSlab(c.Request().Context(), id, &entity.GSTSlabPatch{
		HSNCode:     req.HSNCode,
		Description: req.Description,
		Rate:        req.Rate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, slab)
}

// DeleteGSTSlab handles soft deleting a GST slab
func (h *InventoryHandler) DeleteGSTSlab(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.inventoryUC.DeleteGSTSlab(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
