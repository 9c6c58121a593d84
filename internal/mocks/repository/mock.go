// Package mockrepository provides testify mocks of the repository interfaces.
package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// get returns the i-th return value as T, or the zero value when it was set to nil.
func get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// Execute runs the callback against the factory registered with OnExecute.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock that asserts its expectations when the test ends.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if factory := get[repository.RepositoryFactory](args, 0); factory != nil {
		return fn(factory)
	}

	return args.Error(1)
}

// OnExecute expects one transaction whose repositories come from factory.
// The callback's error is returned as the transaction result.
func (m *MockTransactionManager) OnExecute(factory repository.RepositoryFactory) *mock.Call {
	return m.On("Execute", mock.Anything, mock.Anything).Return(factory, nil)
}

// Repositories is a RepositoryFactory handing out fixed repositories, usually
// mocks. Accessing a repository that was not set fails the test.
type Repositories struct {
	T *testing.T

	User         repository.UserRepository
	Role         repository.RoleRepository
	Auth         repository.AuthRepository
	OTP          repository.OTPRepository
	Profile      repository.ProfileRepository
	Lookup       repository.LookupRepository
	Medicine     repository.MedicineRepository
	Batch        repository.BatchRepository
	GSTSlab      repository.GSTSlabRepository
	Discount     repository.DiscountRepository
	Coupon       repository.CouponRepository
	Order        repository.OrderRepository
	Prescription repository.PrescriptionRepository
	Invoice      repository.InvoiceRepository
	Payment      repository.PaymentRepository
	Issue        repository.IssueRepository
	File         repository.FileRepository
}

func require[T comparable](r *Repositories, name string, repo T) T {
	var zero T
	if repo == zero && r.T != nil {
		r.T.Fatalf("unexpected use of the %s repository", name)
	}

	return repo
}

func (r *Repositories) UserRepo() repository.UserRepository { return require(r, "user", r.User) }
func (r *Repositories) RoleRepo() repository.RoleRepository { return require(r, "role", r.Role) }
func (r *Repositories) AuthRepo() repository.AuthRepository { return require(r, "auth", r.Auth) }
func (r *Repositories) OTPRepo() repository.OTPRepository   { return require(r, "otp", r.OTP) }

func (r *Repositories) ProfileRepo() repository.ProfileRepository {
	return require(r, "profile", r.Profile)
}

func (r *Repositories) LookupRepo() repository.LookupRepository {
	return require(r, "lookup", r.Lookup)
}

func (r *Repositories) MedicineRepo() repository.MedicineRepository {
	return require(r, "medicine", r.Medicine)
}

func (r *Repositories) BatchRepo() repository.BatchRepository {
	return require(r, "batch", r.Batch)
}

func (r *Repositories) GSTSlabRepo() repository.GSTSlabRepository {
	return require(r, "gst slab", r.GSTSlab)
}

func (r *Repositories) DiscountRepo() repository.DiscountRepository {
	return require(r, "discount", r.Discount)
}

func (r *Repositories) CouponRepo() repository.CouponRepository {
	return require(r, "coupon", r.Coupon)
}

func (r *Repositories) OrderRepo() repository.OrderRepository {
	return require(r, "order", r.Order)
}

func (r *Repositories) PrescriptionRepo() repository.PrescriptionRepository {
	return require(r, "prescription", r.Prescription)
}

func (r *Repositories) InvoiceRepo() repository.InvoiceRepository {
	return require(r, "invoice", r.Invoice)
}

func (r *Repositories) PaymentRepo() repository.PaymentRepository {
	return require(r, "payment", r.Payment)
}

func (r *Repositories) IssueRepo() repository.IssueRepository {
	return require(r, "issue", r.Issue)
}

func (r *Repositories) FileRepo() repository.FileRepository {
	return require(r, "file", r.File)
}
