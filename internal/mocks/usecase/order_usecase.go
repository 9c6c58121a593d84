package mockusecase

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockOrderUsecase is a mock implementation of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

// NewMockOrderUsecase creates a mock that asserts its expectations when the test ends.
func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) CreateOrder(ctx context.Context, input *entity.NewOrder) (*entity.Order, error) {
	args := m.Called(ctx, input)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) ListCustomerOrders(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Order], error) {
	args := m.Called(ctx, customerID, page)

	return get[*entity.PagedResult[*entity.Order]](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, by int64) (*entity.Order, error) {
	args := m.Called(ctx, id, status, by)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) DeleteOrder(ctx context.Context, id, by int64) error {
	return m.Called(ctx, id, by).Error(0)
}

func (m *MockOrderUsecase) ListItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	args := m.Called(ctx, orderID)

	return get[[]entity.OrderItem](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) AddItem(ctx context.Context, orderID int64, item entity.NewOrderItem) (*entity.Order, error) {
	args := m.Called(ctx, orderID, item)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) UpdateItem(ctx context.Context, orderID, itemID int64, patch *entity.OrderItemPatch) (*entity.Order, error) {
	args := m.Called(ctx, orderID, itemID, patch)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) DeleteItem(ctx context.Context, orderID, itemID, by int64) (*entity.Order, error) {
	args := m.Called(ctx, orderID, itemID, by)

	return get[*entity.Order](args, 0), args.Error(1)
}
