package handler

import (
	"log/slog"
	"net/http"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PrescriptionHandlerParams holds dependencies for PrescriptionHandler, injected by Fx.
type PrescriptionHandlerParams struct {
	fx.In

	PrescriptionUC usecase.PrescriptionUsecase
	Logger         *slog.Logger
}

// PrescriptionHandler serves prescription uploads and reviews.
type PrescriptionHandler struct {
	prescriptionUC usecase.PrescriptionUsecase
	logger         *slog.Logger
}

// NewPrescriptionHandler is the constructor for PrescriptionHandler
func NewPrescriptionHandler(params PrescriptionHandlerParams) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUC: params.PrescriptionUC,
		logger:         params.Logger,
	}
}

// VerifyPrescriptionRequest represents the pharmacist's decision
type VerifyPrescriptionRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
	Notes  string `json:"notes" validate:"max=1000"`
}

// Upload handles a multipart prescription upload in the "file" field
func (h *PrescriptionHandler) Upload(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fh, err := formFile(c, "file")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	upload, f, err := openUpload(fh)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer f.Close()

	prescription, err := h.prescriptionUC.Upload(c.Request().Context(), principal.UserID, upload)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, prescription)
}

// List handles the paged prescription list of the caller, or of ?user_id= for staff
func (h *PrescriptionHandler) List(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	customerID, err := targetUserID(c, principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.prescriptionUC.List(c.Request().Context(), customerID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Get handles retrieving one prescription
func (h *PrescriptionHandler) Get(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	prescription, err := h.prescriptionUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !canAccess(principal, prescription.CustomerID) {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	return response.Success(c, http.StatusOK, prescription)
}

// Verify records the pharmacist's decision on a pending prescription
func (h *PrescriptionHandler) Verify(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req VerifyPrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid decision input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	prescription, err := h.prescriptionUC.Verify(c.Request().Context(), id, entity.PrescriptionStatus(req.Status), req.Notes, principal.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, prescription)
}

// Delete handles soft deleting a prescription
func (h *PrescriptionHandler) Delete(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.prescriptionUC.Delete(c.Request().Context(), id, principal.UserID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
