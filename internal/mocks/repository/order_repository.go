package mockrepository

import (
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

// NewMockOrderRepository creates a mock that asserts its expectations when the test ends.
func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)

	return get[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, customerID, page)

	return get[[]*entity.Order](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, id int64, from, to entity.OrderStatus, at time.Time) error {
	args := m.Called(ctx, id, from, to, at)

	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderTotal(ctx context.Context, id int64, total decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, id, total, at)

	return args.Error(0)
}

func (m *MockOrderRepository) SoftDeleteOrder(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

func (m *MockOrderRepository) ListOrderItems(ctx context.Context, orderID int64) ([]entity.OrderItem, error) {
	args := m.Called(ctx, orderID)

	return get[[]entity.OrderItem](args, 0), args.Error(1)
}

func (m *MockOrderRepository) FindOrderItem(ctx context.Context, orderID int64, itemID int64) (*entity.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)

	return get[*entity.OrderItem](args, 0), args.Error(1)
}

func (m *MockOrderRepository) CreateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *MockOrderRepository) SoftDeleteOrderItem(ctx context.Context, orderID int64, itemID int64, deletedBy int64) error {
	args := m.Called(ctx, orderID, itemID, deletedBy)

	return args.Error(0)
}

// MockPrescriptionRepository is a mock implementation of repository.PrescriptionRepository.
type MockPrescriptionRepository struct {
	mock.Mock
}

// NewMockPrescriptionRepository creates a mock that asserts its expectations when the test ends.
func NewMockPrescriptionRepository(t *testing.T) *MockPrescriptionRepository {
	m := &MockPrescriptionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPrescriptionRepository) CreatePrescription(ctx context.Context, prescription *entity.Prescription) error {
	args := m.Called(ctx, prescription)

	return args.Error(0)
}

func (m *MockPrescriptionRepository) FindPrescriptionByID(ctx context.Context, id int64) (*entity.Prescription, error) {
	args := m.Called(ctx, id)

	return get[*entity.Prescription](args, 0), args.Error(1)
}

func (m *MockPrescriptionRepository) ListPrescriptionsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Prescription, int64, error) {
	args := m.Called(ctx, customerID, page)

	return get[[]*entity.Prescription](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockPrescriptionRepository) SaveDecision(ctx context.Context, prescription *entity.Prescription) error {
	args := m.Called(ctx, prescription)

	return args.Error(0)
}

func (m *MockPrescriptionRepository) SoftDeletePrescription(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of repository.InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

// NewMockInvoiceRepository creates a mock that asserts its expectations when the test ends.
func NewMockInvoiceRepository(t *testing.T) *MockInvoiceRepository {
	m := &MockInvoiceRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice *entity.Invoice) error {
	args := m.Called(ctx, invoice)

	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	args := m.Called(ctx, id)

	return get[*entity.Invoice](args, 0), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByOrderID(ctx context.Context, orderID int64) (*entity.Invoice, error) {
	args := m.Called(ctx, orderID)

	return get[*entity.Invoice](args, 0), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByUser(ctx context.Context, userID int64, page entity.Page) ([]*entity.Invoice, int64, error) {
	args := m.Called(ctx, userID, page)

	return get[[]*entity.Invoice](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockInvoiceRepository) SetInvoiceNumber(ctx context.Context, id int64, number string) error {
	args := m.Called(ctx, id, number)

	return args.Error(0)
}

func (m *MockInvoiceRepository) SetInvoicePDF(ctx context.Context, id int64, assetID int64) error {
	args := m.Called(ctx, id, assetID)

	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdatePaymentStatus(ctx context.Context, id int64, status entity.InvoicePaymentStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of repository.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

// NewMockPaymentRepository creates a mock that asserts its expectations when the test ends.
func NewMockPaymentRepository(t *testing.T) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, id int64) (*entity.Payment, error) {
	args := m.Called(ctx, id)

	return get[*entity.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	args := m.Called(ctx, orderID)

	return get[[]entity.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]entity.Payment, int64, error) {
	args := m.Called(ctx, customerID, page)

	return get[[]entity.Payment](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}
