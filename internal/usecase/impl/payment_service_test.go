package impl

import (
	"context"
	"testing"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	"medico/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	txManager *mockrepository.MockTransactionManager
	payments  *mockrepository.MockPaymentRepository
	invoices  *mockrepository.MockInvoiceRepository
	orders    *mockrepository.MockOrderRepository
	repos     *mockrepository.Repositories
	service   usecase.PaymentUsecase
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	f := &paymentFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		payments:  mockrepository.NewMockPaymentRepository(t),
		invoices:  mockrepository.NewMockInvoiceRepository(t),
		orders:    mockrepository.NewMockOrderRepository(t),
	}
	f.repos = &mockrepository.Repositories{T: t, Payment: f.payments, Invoice: f.invoices, Order: f.orders}
	f.service = NewPaymentService(PaymentServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Clock:     fixedClock(),
		Logger:    discardLogger(),
	})

	return f
}

func TestPaymentService_InitiatePayment_DefaultsToOrderTotal(t *testing.T) {
	f := newPaymentFixture(t)

	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderPending), nil).Once()
	f.payments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Status == entity.PaymentPending && p.Amount.Equal(decimal.NewFromInt(240)) && p.Mode == "upi"
	})).Return(nil).Once()

	payment, err := f.service.InitiatePayment(context.Background(), &usecase.InitiatePaymentInput{OrderID: 30, Mode: "upi"})

	require.NoError(t, err)
	assert.Equal(t, int64(30), payment.OrderID)
}

func TestPaymentService_InitiatePayment_CancelledOrder(t *testing.T) {
	f := newPaymentFixture(t)

	f.orders.On("FindOrderByID", mock.Anything, int64(30)).Return(pendingOrder(entity.OrderCancelled), nil).Once()

	_, err := f.service.InitiatePayment(context.Background(), &usecase.InitiatePaymentInput{OrderID: 30})

	assert.True(t, errors.Is(err, domainerrors.ErrOrderCancelled))
}

func TestPaymentService_UpdatePaymentStatus_CompletedMarksInvoicePaid(t *testing.T) {
	f := newPaymentFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.payments.On("FindPaymentByID", mock.Anything, int64(6)).
		Return(&entity.Payment{ID: 6, OrderID: 30, Status: entity.PaymentPending}, nil).Once()
	f.payments.On("UpdatePaymentStatus", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.Status == entity.PaymentCompleted && p.PaidAt != nil && p.PaidAt.Equal(testNow)
	})).Return(nil).Once()
	f.invoices.On("FindInvoiceByOrderID", mock.Anything, int64(30)).Return(&entity.Invoice{ID: 42, OrderID: 30}, nil).Once()
	f.invoices.On("UpdatePaymentStatus", mock.Anything, int64(42), entity.InvoicePaid).Return(nil).Once()

	payment, err := f.service.UpdatePaymentStatus(context.Background(), 6, entity.PaymentCompleted)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, payment.Status)
}

func TestPaymentService_UpdatePaymentStatus_NoInvoiceYet(t *testing.T) {
	f := newPaymentFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.payments.On("FindPaymentByID", mock.Anything, int64(6)).
		Return(&entity.Payment{ID: 6, OrderID: 30, Status: entity.PaymentPending}, nil).Once()
	f.payments.On("UpdatePaymentStatus", mock.Anything, mock.Anything).Return(nil).Once()
	f.invoices.On("FindInvoiceByOrderID", mock.Anything, int64(30)).Return(nil, domainerrors.ErrInvoiceNotFound).Once()

	_, err := f.service.UpdatePaymentStatus(context.Background(), 6, entity.PaymentCompleted)

	require.NoError(t, err)
	f.invoices.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_UpdatePaymentStatus_InvalidTransition(t *testing.T) {
	f := newPaymentFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.payments.On("FindPaymentByID", mock.Anything, int64(6)).
		Return(&entity.Payment{ID: 6, OrderID: 30, Status: entity.PaymentFailed}, nil).Once()

	_, err := f.service.UpdatePaymentStatus(context.Background(), 6, entity.PaymentCompleted)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
	f.payments.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
}
