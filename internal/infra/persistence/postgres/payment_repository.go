package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// paymentRepository implements the domain.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("invalid order reference")
		}

		return writeError(err, nil, "create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt

	return nil
}

func (repo *paymentRepository) FindPaymentByID(ctx context.Context, id int64) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&paymentM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrPaymentNotFound, "find payment by ID")
	}

	payment := toPaymentDomain(paymentM)

	return &payment, nil
}

// ListPaymentsByOrder returns the live payments of an order, oldest first.
func (repo *paymentRepository) ListPaymentsByOrder(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	var paymentModels []model.PaymentModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("order_id = ?", orderID).
		Order("created_at, id").
		Find(&paymentModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list order payments")
	}

	return toPaymentsDomain(paymentModels), nil
}

// ListPaymentsByCustomer returns a page of the payments across a customer's orders.
func (repo *paymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]entity.Payment, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return live(db.Model(&model.PaymentModel{})).
			Where("order_id IN (SELECT id FROM orders WHERE customer_id = ?)", customerID)
	}

	var total int64
	if err := repo.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count payments")
	}

	var paymentModels []model.PaymentModel
	err := repo.db.WithContext(ctx).Scopes(scope, paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list payments")
	}

	return toPaymentsDomain(paymentModels), total, nil
}

// UpdatePaymentStatus stores the status and paid_at of a live payment.
func (repo *paymentRepository) UpdatePaymentStatus(ctx context.Context, payment *entity.Payment) error {
	result := repo.db.WithContext(ctx).Model(&model.PaymentModel{}).
		Scopes(live).
		Where("id = ?", payment.ID).
		Updates(map[string]any{"status": string(payment.Status), "paid_at": payment.PaidAt})
	if result.Error != nil {
		return writeError(result.Error, nil, "update payment")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound.WrapMessage("update payment")
	}

	return nil
}

// --- Mapper Functions ---

func toPaymentDomain(data model.PaymentModel) entity.Payment {
	return entity.Payment{
		ID:        data.ID,
		OrderID:   data.OrderID,
		Amount:    data.Amount,
		Status:    entity.PaymentStatus(data.Status),
		Mode:      data.PaymentMode,
		PaidAt:    data.PaidAt,
		CreatedAt: data.CreatedAt,
	}
}

func toPaymentsDomain(data []model.PaymentModel) []entity.Payment {
	payments := make([]entity.Payment, 0, len(data))
	for _, p := range data {
		payments = append(payments, toPaymentDomain(p))
	}

	return payments
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:          data.ID,
		OrderID:     data.OrderID,
		Amount:      data.Amount,
		Status:      string(data.Status),
		PaymentMode: data.Mode,
		PaidAt:      data.PaidAt,
		CreatedAt:   data.CreatedAt,
	}
}
