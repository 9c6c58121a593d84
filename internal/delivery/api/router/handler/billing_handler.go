package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"medico/internal/delivery/api/response"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// BillingHandlerParams holds dependencies for BillingHandler, injected by Fx.
type BillingHandlerParams struct {
	fx.In

	InvoiceUC usecase.InvoiceUsecase
	PaymentUC usecase.PaymentUsecase
	OrderUC   usecase.OrderUsecase
	Logger    *slog.Logger
}

// BillingHandler serves invoices and payments.
type BillingHandler struct {
	invoiceUC usecase.InvoiceUsecase
	paymentUC usecase.PaymentUsecase
	orderUC   usecase.OrderUsecase
	logger    *slog.Logger
}

// NewBillingHandler is the constructor for BillingHandler
func NewBillingHandler(params BillingHandlerParams) *BillingHandler {
	return &BillingHandler{
		invoiceUC: params.InvoiceUC,
		paymentUC: params.PaymentUC,
		orderUC:   params.OrderUC,
		logger:    params.Logger,
	}
}

// GenerateInvoiceRequest represents the request body for billing an order
type GenerateInvoiceRequest struct {
	OrderID    int64  `json:"order_id" validate:"required,gt=0"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=50"`
}

// UpdateInvoiceStatusRequest represents the request body for marking an invoice
type UpdateInvoiceStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=paid unpaid"`
}

// InitiatePaymentRequest represents the request body for starting a payment
type InitiatePaymentRequest struct {
	OrderID int64            `json:"order_id" validate:"required,gt=0"`
	Amount  *decimal.Decimal `json:"amount"`
	Mode    string           `json:"payment_mode" validate:"required,max=50"`
}

// UpdatePaymentStatusRequest represents the request body for moving a payment along its lifecycle
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

func (h *BillingHandler) authorizeOrder(ctx context.Context, p *entity.Principal, orderID int64) error {
	if isStaff(p) {
		return nil
	}

	order, err := h.orderUC.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerID != p.UserID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// GenerateInvoice handles billing an order
func (h *BillingHandler) GenerateInvoice(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req GenerateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invoice input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	invoice, err := h.invoiceUC.GenerateInvoice(c.Request().Context(), &usecase.GenerateInvoiceInput{
		OrderID:    req.OrderID,
		CouponCode: req.CouponCode,
		IssuedBy:   principal.UserID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, invoice)
}

// GetInvoice handles retrieving one invoice with its lines
func (h *BillingHandler) GetInvoice(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	invoice, err := h.invoiceUC.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !canAccess(principal, invoice.UserID) {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	return response.Success(c, http.StatusOK, invoice)
}

// ListInvoices handles the paged invoice list of the caller, or of ?user_id= for staff
func (h *BillingHandler) ListInvoices(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	userID, err := targetUserID(c, principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := bindPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.invoiceUC.ListCustomerInvoices(c.Request().Context(), userID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// DownloadInvoice streams the invoice PDF
func (h *BillingHandler) DownloadInvoice(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	invoice, err := h.invoiceUC.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !canAccess(principal, invoice.UserID) {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	download, err := h.invoiceUC.DownloadInvoice(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer download.Body.Close()

	return streamFile(c, download)
}

// UpdateInvoiceStatus handles marking an invoice paid or unpaid
func (h *BillingHandler) UpdateInvoiceStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateInvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	invoice, err := h.invoiceUC.UpdatePaymentStatus(c.Request().Context(), id, entity.InvoicePaymentStatus(req.PaymentStatus))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, invoice)
}

// InitiatePayment handles starting a payment for an order
func (h *BillingHandler) InitiatePayment(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if req.Amount != nil && !req.Amount.IsPositive() {
		return response.BadRequest(c, "VALIDATION_ERROR", "amount must be positive")
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, req.OrderID); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.InitiatePayment(c.Request().Context(), &usecase.InitiatePaymentInput{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Mode:    req.Mode,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, payment)
}

// ListOrderPayments handles listing the payments of an order
func (h *BillingHandler) ListOrderPayments(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	orderID, err := strconv.ParseInt(c.QueryParam("order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		return response.BadRequest(c, "INVALID_INPUT", "order_id is required")
	}

	if err := h.authorizeOrder(c.Request().Context(), principal, orderID); err != nil {
		return response.HandleAppError(c, err)
	}

	payments, err := h.paymentUC.ListOrderPayments(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payments)
}

// UpdatePaymentStatus handles moving a payment along its lifecycle
func (h *BillingHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	payment, err := h.paymentUC.UpdatePaymentStatus(c.Request().Context(), id, entity.PaymentStatus(req.Status))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payment)
}

// PaymentHistory handles the paged payment history of the caller, or of ?user_id= for staff
func (h *BillingHandler) PaymentHistory(c echo.Context) error {
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

	result, err := h.paymentUC.PaymentHistory(c.Request().Context(), customerID, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}
