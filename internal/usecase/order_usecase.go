package usecase

import (
	"context"

	"medico/internal/domain/entity"
)

// OrderUsecase defines the order lifecycle operations.
type OrderUsecase interface {
	// CreateOrder validates every reference and inserts the order and its items
	// in one transaction. Nothing is written when a reference is missing.
	CreateOrder(ctx context.Context, input *entity.NewOrder) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	ListCustomerOrders(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Order], error)
	// UpdateStatus moves the order along its lifecycle and publishes an event after commit.
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, by int64) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id, by int64) error

	ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error)
	AddItem(ctx context.Context, orderID int64, item entity.NewOrderItem) (*entity.Order, error)
	UpdateItem(ctx context.Context, orderID, itemID int64, patch *entity.OrderItemPatch) (*entity.Order, error)
	DeleteItem(ctx context.Context, orderID, itemID, by int64) (*entity.Order, error)
}

// PrescriptionUsecase defines the prescription upload and review operations.
type PrescriptionUsecase interface {
	// Upload stores the document and records a pending prescription.
	Upload(ctx context.Context, customerID int64, file *FileUpload) (*entity.Prescription, error)
	List(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Prescription], error)
	Get(ctx context.Context, id int64) (*entity.Prescription, error)
	// Verify records the pharmacist's decision. A decided prescription is a Conflict.
	Verify(ctx context.Context, id int64, status entity.PrescriptionStatus, notes string, by int64) (*entity.Prescription, error)
	Delete(ctx context.Context, id, by int64) error
}
