package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// prescriptionRepository implements the domain.PrescriptionRepository interface.
type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository is the constructor for prescriptionRepository.
func NewPrescriptionRepository(db *gorm.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (repo *prescriptionRepository) CreatePrescription(ctx context.Context, prescription *entity.Prescription) error {
	prescriptionM := fromPrescriptionDomain(prescription)

	if err := repo.db.WithContext(ctx).Create(prescriptionM).Error; err != nil {
		return writeError(err, nil, "create prescription")
	}
	prescription.ID = prescriptionM.ID

	return nil
}

func (repo *prescriptionRepository) FindPrescriptionByID(ctx context.Context, id int64) (*entity.Prescription, error) {
	var prescriptionM model.PrescriptionModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&prescriptionM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrPrescriptionNotFound, "find prescription by ID")
	}

	return toPrescriptionDomain(&prescriptionM), nil
}

// ListPrescriptionsByCustomer returns a page of a customer's prescriptions, newest first.
func (repo *prescriptionRepository) ListPrescriptionsByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Prescription, int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).Model(&model.PrescriptionModel{}).Scopes(live).
		Where("customer_id = ?", customerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count prescriptions")
	}

	var prescriptionModels []model.PrescriptionModel
	err = repo.db.WithContext(ctx).Scopes(live, paginate(page)).
		Where("customer_id = ?", customerID).
		Order("uploaded_at DESC, id DESC").
		Find(&prescriptionModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list prescriptions")
	}

	prescriptions := make([]*entity.Prescription, 0, len(prescriptionModels))
	for i := range prescriptionModels {
		prescriptions = append(prescriptions, toPrescriptionDomain(&prescriptionModels[i]))
	}

	return prescriptions, total, nil
}

// SaveDecision stores a review only while the prescription is still pending.
func (repo *prescriptionRepository) SaveDecision(ctx context.Context, prescription *entity.Prescription) error {
	result := repo.db.WithContext(ctx).Model(&model.PrescriptionModel{}).
		Scopes(live).
		Where("id = ? AND status = ?", prescription.ID, entity.PrescriptionPending).
		Updates(map[string]any{
			"status":      string(prescription.Status),
			"verified_by": prescription.VerifiedBy,
			"verified_at": prescription.VerifiedAt,
			"notes":       prescription.Notes,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "save prescription decision")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrescriptionAlreadyDecided
	}

	return nil
}

func (repo *prescriptionRepository) SoftDeletePrescription(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.PrescriptionModel{}.TableName(), id, deletedBy, domainerrors.ErrPrescriptionNotFound)
}

// --- Mapper Functions ---

func toPrescriptionDomain(data *model.PrescriptionModel) *entity.Prescription {
	if data == nil {
		return nil
	}

	return &entity.Prescription{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		FileAssetID: data.FileAssetID,
		Status:      entity.PrescriptionStatus(data.Status),
		VerifiedBy:  data.VerifiedBy,
		VerifiedAt:  data.VerifiedAt,
		Notes:       data.Notes,
		UploadedAt:  data.UploadedAt,
	}
}

func fromPrescriptionDomain(data *entity.Prescription) *model.PrescriptionModel {
	if data == nil {
		return nil
	}

	return &model.PrescriptionModel{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		FileAssetID: data.FileAssetID,
		Status:      string(data.Status),
		VerifiedBy:  data.VerifiedBy,
		VerifiedAt:  data.VerifiedAt,
		Notes:       data.Notes,
		UploadedAt:  data.UploadedAt,
	}
}
