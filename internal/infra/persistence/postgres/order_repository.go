package postgres

import (
	"context"
	"strconv"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder persists the order together with its items.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return writeError(err, nil, "create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i := range order.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindOrderByID retrieves a live order with its live items, payments and invoice id.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", live, func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Scopes(live).
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrOrderNotFound, "find order by ID")
	}

	order := toOrderDomain(&orderM)

	payments, err := NewPaymentRepository(repo.db).ListPaymentsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Payments = payments

	var invoiceIDs []int64
	err = repo.db.WithContext(ctx).Model(&model.InvoiceModel{}).
		Where("order_id = ?", id).
		Pluck("id", &invoiceIDs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find order invoice")
	}
	if len(invoiceIDs) > 0 {
		order.InvoiceID = &invoiceIDs[0]
	}

	return order, nil
}

// ListOrdersByCustomer returns a page of a customer's live orders, newest first.
func (repo *orderRepository) ListOrdersByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Order, int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Scopes(live).
		Where("customer_id = ?", customerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count orders")
	}

	var orderModels []model.OrderModel
	err = repo.db.WithContext(ctx).
		Preload("Items", live).
		Scopes(live, paginate(page)).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, toOrderDomain(&orderModels[i]))
	}

	return orders, total, nil
}

// UpdateOrderStatus stores a new status only while the order still holds from.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, from, to entity.OrderStatus, at time.Time) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Scopes(live).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]any{"status": to.String(), "updated_at": at})
	if result.Error != nil {
		return writeError(result.Error, nil, "update order status")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&model.OrderModel{}).
		Scopes(live).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check order")
	}
	if count == 0 {
		return domainerrors.ErrOrderNotFound.WrapMessage("update order status")
	}

	return domainerrors.ErrInvalidTransition.WrapMessage("order " + strconv.FormatInt(id, 10) + " is no longer " + from.String())
}

// UpdateOrderTotal stores a recalculated total for a live order.
func (repo *orderRepository) UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal, at time.Time) error {
	return repo.update(ctx, id, map[string]any{"total_amount": total, "updated_at": at})
}

func (repo *orderRepository) update(ctx context.Context, id int64, columns map[string]any) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Scopes(live).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return writeError(result.Error, nil, "update order")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound.WrapMessage("update order")
	}

	return nil
}

// SoftDeleteOrder flags an order as deleted.
func (repo *orderRepository) SoftDeleteOrder(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.OrderModel{}.TableName(), id, deletedBy, domainerrors.ErrOrderNotFound)
}

// ListOrderItems returns the live items of an order.
func (repo *orderRepository) ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	var itemModels []model.OrderItemModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&itemModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list order items")
	}

	return toOrderItemsDomain(itemModels), nil
}

// FindOrderItem retrieves a live item that belongs to the order.
func (repo *orderRepository) FindOrderItem(ctx context.Context, orderID, itemID int64) (*entity.OrderItem, error) {
	var itemM model.OrderItemModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("id = ? AND order_id = ?", itemID, orderID).
		First(&itemM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrOrderItemNotFound, "find order item")
	}

	item := toOrderItemDomain(itemM)

	return &item, nil
}

func (repo *orderRepository) CreateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	itemM := fromOrderItemDomain(*item)

	if err := repo.db.WithContext(ctx).Create(&itemM).Error; err != nil {
		return writeError(err, nil, "create order item")
	}
	item.ID = itemM.ID

	return nil
}

func (repo *orderRepository) UpdateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderItemModel{}).
		Scopes(live).
		Where("id = ? AND order_id = ?", item.ID, item.OrderID).
		Updates(map[string]any{"quantity": item.Quantity, "price": item.Price})
	if result.Error != nil {
		return writeError(result.Error, nil, "update order item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderItemNotFound.WrapMessage("update order item")
	}

	return nil
}

// SoftDeleteOrderItem flags an item of the order as deleted.
func (repo *orderRepository) SoftDeleteOrderItem(ctx context.Context, orderID, itemID, deletedBy int64) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderItemModel{}).
		Scopes(live).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Updates(softDeleteColumns(repo.db, deletedBy))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderItemNotFound.WrapMessage("delete order item")
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:             data.ID,
		CustomerID:     data.CustomerID,
		MemberID:       data.MemberID,
		PrescriptionID: data.PrescriptionID,
		Status:         entity.OrderStatus(data.Status),
		TotalAmount:    data.TotalAmount,
		Items:          toOrderItemsDomain(data.Items),
		Payments:       []entity.Payment{},
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity and its items to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, fromOrderItemDomain(item))
	}

	return &model.OrderModel{
		ID:             data.ID,
		CustomerID:     data.CustomerID,
		MemberID:       data.MemberID,
		PrescriptionID: data.PrescriptionID,
		Status:         data.Status.String(),
		TotalAmount:    data.TotalAmount,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		Items:          items,
	}
}

func toOrderItemDomain(data model.OrderItemModel) entity.OrderItem {
	return entity.OrderItem{
		ID:       data.ID,
		OrderID:  data.OrderID,
		BatchID:  data.BatchID,
		Quantity: data.Quantity,
		Price:    data.Price,
	}
}

func toOrderItemsDomain(data []model.OrderItemModel) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(data))
	for _, item := range data {
		items = append(items, toOrderItemDomain(item))
	}

	return items
}

func fromOrderItemDomain(data entity.OrderItem) model.OrderItemModel {
	return model.OrderItemModel{
		ID:       data.ID,
		OrderID:  data.OrderID,
		BatchID:  data.BatchID,
		Quantity: data.Quantity,
		Price:    data.Price,
	}
}
