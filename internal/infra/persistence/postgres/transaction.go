package postgres

import (
	"context"
	"fmt"

	"medico/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// Every repository it hands out is bound to the same transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// NewRepositoryFactory binds repositories to db. Outside a transaction it serves plain reads.
func NewRepositoryFactory(db *gorm.DB) repository.RepositoryFactory {
	return &gormRepositoryFactory{tx: db}
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository { return NewUserRepository(f.tx) }
func (f *gormRepositoryFactory) RoleRepo() repository.RoleRepository { return NewRoleRepository(f.tx) }
func (f *gormRepositoryFactory) AuthRepo() repository.AuthRepository { return NewAuthRepository(f.tx) }
func (f *gormRepositoryFactory) OTPRepo() repository.OTPRepository   { return NewOTPRepository(f.tx) }

func (f *gormRepositoryFactory) ProfileRepo() repository.ProfileRepository {
	return NewProfileRepository(f.tx)
}

func (f *gormRepositoryFactory) LookupRepo() repository.LookupRepository {
	return NewLookupRepository(f.tx)
}

func (f *gormRepositoryFactory) MedicineRepo() repository.MedicineRepository {
	return NewMedicineRepository(f.tx)
}

func (f *gormRepositoryFactory) BatchRepo() repository.BatchRepository {
	return NewBatchRepository(f.tx)
}

func (f *gormRepositoryFactory) GSTSlabRepo() repository.GSTSlabRepository {
	return NewGSTSlabRepository(f.tx)
}

func (f *gormRepositoryFactory) DiscountRepo() repository.DiscountRepository {
	return NewDiscountRepository(f.tx)
}

func (f *gormRepositoryFactory) CouponRepo() repository.CouponRepository {
	return NewCouponRepository(f.tx)
}

func (f *gormRepositoryFactory) OrderRepo() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f *gormRepositoryFactory) PrescriptionRepo() repository.PrescriptionRepository {
	return NewPrescriptionRepository(f.tx)
}

func (f *gormRepositoryFactory) InvoiceRepo() repository.InvoiceRepository {
	return NewInvoiceRepository(f.tx)
}

func (f *gormRepositoryFactory) PaymentRepo() repository.PaymentRepository {
	return NewPaymentRepository(f.tx)
}

func (f *gormRepositoryFactory) IssueRepo() repository.IssueRepository {
	return NewIssueRepository(f.tx)
}

func (f *gormRepositoryFactory) FileRepo() repository.FileRepository {
	return NewFileRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// A panic inside fn must never leave the transaction open.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
