package impl

import (
	"context"
	"testing"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/service"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	mockservice "medico/internal/mocks/service"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	txManager *mockrepository.MockTransactionManager
	orders    *mockrepository.MockOrderRepository
	users     *mockrepository.MockUserRepository
	profiles  *mockrepository.MockProfileRepository
	batches   *mockrepository.MockBatchRepository
	publisher *mockservice.MockEventPublisher
	repos     *mockrepository.Repositories
	service   usecase.OrderUsecase
}

func newOrderFixture(t *testing.T) *orderFixture {
	f := &orderFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		orders:    mockrepository.NewMockOrderRepository(t),
		users:     mockrepository.NewMockUserRepository(t),
		profiles:  mockrepository.NewMockProfileRepository(t),
		batches:   mockrepository.NewMockBatchRepository(t),
		publisher: mockservice.NewMockEventPublisher(t),
	}
	f.repos = &mockrepository.Repositories{
		T:       t,
		Order:   f.orders,
		User:    f.users,
		Profile: f.profiles,
		Batch:   f.batches,
	}
	f.service = NewOrderService(OrderServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Publisher: f.publisher,
		Clock:     fixedClock(),
		Logger:    discardLogger(),
	})

	return f
}

func pendingOrder(status entity.OrderStatus) *entity.Order {
	return &entity.Order{
		ID:          30,
		CustomerID:  2,
		Status:      status,
		TotalAmount: decimal.NewFromInt(240),
		Items: []entity.OrderItem{
			{ID: 1, OrderID: 30, BatchID: 11, Quantity: 2, Price: decimal.NewFromInt(120)},
		},
	}
}

func TestOrderService_CreateOrder_Empty(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.CreateOrder(context.Background(), &entity.NewOrder{CustomerID: 2})

	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
}

func TestOrderService_CreateOrder_UnknownCustomerWritesNothing(t *testing.T) {
	f := newOrderFixture(t)

	f.txManager.OnExecute(&mockrepository.Repositories{T: t, User: f.users}).Once()
	f.users.On("FindUserByID", mock.Anything, int64(404)).Return(nil, domainerrors.ErrUserNotFound).Once()

	_, err := f.service.CreateOrder(context.Background(), &entity.NewOrder{
		CustomerID: 404,
		Items:      []entity.NewOrderItem{{BatchID: 11, Quantity: 1}},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_ForeignFamilyMember(t *testing.T) {
	f := newOrderFixture(t)
	memberID := int64(8)

	f.txManager.OnExecute(f.repos).Once()
	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.profiles.On("FindFamilyMemberByID", mock.Anything, memberID).
		Return(&entity.FamilyMember{ID: memberID, UserID: 99}, nil).Once()

	_, err := f.service.CreateOrder(context.Background(), &entity.NewOrder{
		CustomerID: 2,
		MemberID:   &memberID,
		Items:      []entity.NewOrderItem{{BatchID: 11, Quantity: 1}},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrFamilyMemberNotFound))
}

func TestOrderService_CreateOrder_PricesAtSellingPrice(t *testing.T) {
	f := newOrderFixture(t)
	override := decimal.NewFromInt(90)

	f.txManager.OnExecute(f.repos).Once()
	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.batches.On("FindBatchByID", mock.Anything, int64(11)).
		Return(&entity.MedicineBatch{ID: 11, MedicineID: 3, SellingPrice: decimal.NewFromInt(120)}, nil).Once()
	f.batches.On("FindBatchByID", mock.Anything, int64(12)).
		Return(&entity.MedicineBatch{ID: 12, MedicineID: 4, SellingPrice: decimal.NewFromInt(100)}, nil).Once()
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Status == entity.OrderPending &&
			len(o.Items) == 2 &&
			o.Items[0].Price.Equal(decimal.NewFromInt(120)) &&
			o.Items[1].Price.Equal(override) &&
			o.TotalAmount.Equal(decimal.NewFromInt(330))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = 30
	}).Return(nil).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderPending), nil).Once()
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
		return e.Type == service.EventOrderCreated && e.OrderID == 30 && e.OccurredAt.Equal(testNow)
	})).Return(nil).Once()

	order, err := f.service.CreateOrder(context.Background(), &entity.NewOrder{
		CustomerID: 2,
		Items: []entity.NewOrderItem{
			{BatchID: 11, Quantity: 2},
			{BatchID: 12, Quantity: 1, Price: &override},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(30), order.ID)
}

func TestOrderService_CreateOrder_RejectsZeroQuantity(t *testing.T) {
	f := newOrderFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()

	_, err := f.service.CreateOrder(context.Background(), &entity.NewOrder{
		CustomerID: 2,
		Items:      []entity.NewOrderItem{{BatchID: 11, Quantity: 0}},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
	f.batches.AssertNotCalled(t, "FindBatchByID", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		wantErr error
	}{
		{name: "pending to shipped", from: entity.OrderPending, to: entity.OrderShipped},
		{name: "shipped to delivered", from: entity.OrderShipped, to: entity.OrderDelivered},
		{name: "pending cannot skip to delivered", from: entity.OrderPending, to: entity.OrderDelivered, wantErr: domainerrors.ErrInvalidTransition},
		{name: "delivered is terminal", from: entity.OrderDelivered, to: entity.OrderCancelled, wantErr: domainerrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)

			f.txManager.OnExecute(f.repos).Once()
			f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(tt.from), nil).Once()

			if tt.wantErr == nil {
				f.orders.On("UpdateOrderStatus", mock.Anything, int64(30), tt.from, tt.to, testNow).Return(nil).Once()
				f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(tt.to), nil).Once()
				f.publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
					return e.Type == service.EventOrderStatusChanged &&
						e.FromStatus == tt.from.String() &&
						e.ToStatus == tt.to.String() &&
						e.ChangedBy == 9
				})).Return(nil).Once()
			}

			order, err := f.service.UpdateStatus(context.Background(), 30, tt.to, 9)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, order.Status)
		})
	}
}

func TestOrderService_UpdateStatus_ConcurrentChangeWins(t *testing.T) {
	f := newOrderFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderShipped), nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, int64(30), entity.OrderShipped, entity.OrderCancelled, testNow).
		Return(domainerrors.ErrInvalidTransition.WrapMessage("order 30 is no longer shipped")).Once()

	_, err := f.service.UpdateStatus(context.Background(), 30, entity.OrderCancelled, 9)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
	f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_PublishFailureKeepsChange(t *testing.T) {
	f := newOrderFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderPending), nil).Once()
	f.orders.On("UpdateOrderStatus", mock.Anything, int64(30), entity.OrderPending, entity.OrderCancelled, testNow).Return(nil).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderCancelled), nil).Once()
	f.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := f.service.UpdateStatus(context.Background(), 30, entity.OrderCancelled, 9)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, order.Status)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), 30, entity.OrderStatus("lost"), 9)

	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestOrderService_AddItem_NotPending(t *testing.T) {
	f := newOrderFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderShipped), nil).Once()

	_, err := f.service.AddItem(context.Background(), 30, entity.NewOrderItem{BatchID: 12, Quantity: 1})

	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotEditable))
	f.orders.AssertNotCalled(t, "CreateOrderItem", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateItem_RefreshesTotal(t *testing.T) {
	f := newOrderFixture(t)
	item := &entity.OrderItem{ID: 1, OrderID: 30, BatchID: 11, Quantity: 2, Price: decimal.NewFromInt(120)}

	f.txManager.OnExecute(f.repos).Once()
	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderPending), nil).Twice()
	f.orders.On("FindOrderItem", mock.Anything, int64(30), int64(1)).Return(item, nil).Once()
	f.orders.On("UpdateOrderItem", mock.Anything, mock.MatchedBy(func(i *entity.OrderItem) bool {
		return i.Quantity == 5
	})).Return(nil).Once()
	f.orders.On("ListOrderItems", mock.Anything, int64(30)).
		Return([]entity.OrderItem{{ID: 1, Quantity: 5, Price: decimal.NewFromInt(120)}}, nil).Once()
	f.orders.On("UpdateOrderTotal", mock.Anything, int64(30), mock.MatchedBy(func(total decimal.Decimal) bool {
		return total.Equal(decimal.NewFromInt(600))
	}), testNow).Return(nil).Once()

	_, err := f.service.UpdateItem(context.Background(), 30, 1, &entity.OrderItemPatch{Quantity: ptr(5)})

	require.NoError(t, err)
}
