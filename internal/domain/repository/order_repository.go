package repository

import (
	"context"
	"time"

	"medico/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the persistence of orders and their items.
type OrderRepository interface {
	// CreateOrder persists the order and its items.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order with its live items, payments and invoice id.
	FindOrderByID(ctx context.Context, id int64) (*entity.Order, error)

	// ListOrdersByCustomer returns a page of a customer's orders, newest first.
	ListOrdersByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Order, int64, error)

	// UpdateOrderStatus moves an order from one status to another. It fails with
	// ErrInvalidTransition when the order is no longer in the from status and
	// ErrOrderNotFound when there is no live order.
	UpdateOrderStatus(ctx context.Context, id int64, from, to entity.OrderStatus, at time.Time) error
	UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal, at time.Time) error
	SoftDeleteOrder(ctx context.Context, id, deletedBy int64) error

	ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
	FindOrderItem(ctx context.Context, orderID, itemID int64) (*entity.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *entity.OrderItem) error
	UpdateOrderItem(ctx context.Context, item *entity.OrderItem) error
	SoftDeleteOrderItem(ctx context.Context, orderID, itemID, deletedBy int64) error
}

// PrescriptionRepository defines the persistence of prescriptions.
type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, prescription *entity.Prescription) error
	FindPrescriptionByID(ctx context.Context, id int64) (*entity.Prescription, error)
	ListPrescriptionsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Prescription, int64, error)

	// SaveDecision stores the status, verifier, time and notes of a review.
	SaveDecision(ctx context.Context, prescription *entity.Prescription) error

	SoftDeletePrescription(ctx context.Context, id, deletedBy int64) error
}

// InvoiceRepository defines the persistence of invoices.
type InvoiceRepository interface {
	// CreateInvoice persists the invoice and its items. The invoice number may be
	// filled in afterwards with SetInvoiceNumber once the id is known.
	CreateInvoice(ctx context.Context, invoice *entity.Invoice) error

	FindInvoiceByID(ctx context.Context, id int64) (*entity.Invoice, error)
	FindInvoiceByOrderID(ctx context.Context, orderID int64) (*entity.Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID int64, page entity.Page) ([]*entity.Invoice, int64, error)

	SetInvoiceNumber(ctx context.Context, id int64, number string) error
	SetInvoicePDF(ctx context.Context, id, assetID int64) error
	UpdatePaymentStatus(ctx context.Context, id int64, status entity.InvoicePaymentStatus) error
}

// PaymentRepository defines the persistence of payments.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *entity.Payment) error
	FindPaymentByID(ctx context.Context, id int64) (*entity.Payment, error)
	ListPaymentsByOrder(ctx context.Context, orderID int64) ([]entity.Payment, error)

	// ListPaymentsByCustomer returns a page of payments across a customer's orders, newest first.
	ListPaymentsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]entity.Payment, int64, error)

	// UpdatePaymentStatus stores the status and paid_at of a payment.
	UpdatePaymentStatus(ctx context.Context, payment *entity.Payment) error
}
