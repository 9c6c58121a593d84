package usecase

import (
	"context"

	"medico/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// GenerateInvoiceInput selects the order to bill and an optional coupon.
type GenerateInvoiceInput struct {
	OrderID    int64
	CouponCode string
	IssuedBy   int64
}

// InitiatePaymentInput starts a payment. A nil amount means the order total.
type InitiatePaymentInput struct {
	OrderID int64
	Amount  *decimal.Decimal
	Mode    string
}

// InvoiceUsecase defines the invoice operations.
type InvoiceUsecase interface {
	// GenerateInvoice prices the order with GST, applies the coupon, renders the
	// PDF and stores everything in one transaction.
	GenerateInvoice(ctx context.Context, input *GenerateInvoiceInput) (*entity.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error)
	ListCustomerInvoices(ctx context.Context, userID int64, page entity.Page) (*entity.PagedResult[*entity.Invoice], error)
	// DownloadInvoice opens the stored PDF. Callers must close the body.
	DownloadInvoice(ctx context.Context, id int64) (*FileDownload, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status entity.InvoicePaymentStatus) (*entity.Invoice, error)
}

// PaymentUsecase defines the payment operations.
type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, input *InitiatePaymentInput) (*entity.Payment, error)
	ListOrderPayments(ctx context.Context, orderID int64) ([]entity.Payment, error)
	// UpdatePaymentStatus moves a payment along its lifecycle. Completing a payment
	// stamps paid_at and marks the order's invoice paid.
	UpdatePaymentStatus(ctx context.Context, id int64, status entity.PaymentStatus) (*entity.Payment, error)
	PaymentHistory(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[entity.Payment], error)
}
