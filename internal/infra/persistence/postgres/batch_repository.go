package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// batchRepository implements the domain.BatchRepository interface.
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository is the constructor for batchRepository.
func NewBatchRepository(db *gorm.DB) repository.BatchRepository {
	return &batchRepository{db: db}
}

// CreateBatch persists a new batch of a medicine.
func (repo *batchRepository) CreateBatch(ctx context.Context, batch *entity.MedicineBatch) error {
	batchM := fromBatchDomain(batch)

	if err := repo.db.WithContext(ctx).Omit("Medicine").Create(batchM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMedicineNotFound.WrapMessage("invalid medicine reference")
		}

		return writeError(err, nil, "create batch")
	}

	batch.ID = batchM.ID
	batch.CreatedAt = batchM.CreatedAt
	batch.UpdatedAt = batchM.UpdatedAt

	return nil
}

// FindBatchByID retrieves a live batch with its medicine name.
func (repo *batchRepository) FindBatchByID(ctx context.Context, id int64) (*entity.MedicineBatch, error) {
	var batchM model.MedicineBatchModel
	err := repo.db.WithContext(ctx).Preload("Medicine").Scopes(live).
		Where("id = ?", id).
		First(&batchM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrBatchNotFound, "find batch by ID")
	}

	return toBatchDomain(&batchM), nil
}

// ListBatches returns a page of live batches, soonest expiry first.
func (repo *batchRepository) ListBatches(ctx context.Context, medicineID *int64, page entity.Page) ([]*entity.MedicineBatch, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = live(db.Model(&model.MedicineBatchModel{}))
		if medicineID != nil {
			db = db.Where("medicine_id = ?", *medicineID)
		}

		return db
	}

	var total int64
	if err := repo.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count batches")
	}

	var batchModels []model.MedicineBatchModel
	err := repo.db.WithContext(ctx).Preload("Medicine").Scopes(scope, paginate(page)).
		Order("expiry_date, id").
		Find(&batchModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list batches")
	}

	return toBatchesDomain(batchModels), total, nil
}

// ListAllBatches returns every live batch for stock exports.
func (repo *batchRepository) ListAllBatches(ctx context.Context, medicineID *int64) ([]*entity.MedicineBatch, error) {
	db := repo.db.WithContext(ctx).Preload("Medicine").Scopes(live)
	if medicineID != nil {
		db = db.Where("medicine_id = ?", *medicineID)
	}

	var batchModels []model.MedicineBatchModel
	if err := db.Order("expiry_date, id").Find(&batchModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list batches")
	}

	return toBatchesDomain(batchModels), nil
}

// UpdateBatch saves the editable fields of a live batch.
func (repo *batchRepository) UpdateBatch(ctx context.Context, batch *entity.MedicineBatch) error {
	result := repo.db.WithContext(ctx).Model(&model.MedicineBatchModel{}).
		Scopes(live).
		Where("id = ?", batch.ID).
		Updates(map[string]any{
			"batch_number":   batch.BatchNumber,
			"expiry_date":    batch.ExpiryDate,
			"quantity":       batch.Quantity,
			"purchase_price": batch.PurchasePrice,
			"selling_price":  batch.SellingPrice,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "update batch")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBatchNotFound.WrapMessage("update batch")
	}

	return nil
}

// SoftDeleteBatch flags a batch as deleted.
func (repo *batchRepository) SoftDeleteBatch(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.MedicineBatchModel{}.TableName(), id, deletedBy, domainerrors.ErrBatchNotFound)
}

// --- Mapper Functions ---

// toBatchDomain converts a GORM MedicineBatchModel to a domain MedicineBatch entity.
func toBatchDomain(data *model.MedicineBatchModel) *entity.MedicineBatch {
	if data == nil {
		return nil
	}

	batch := &entity.MedicineBatch{
		ID:            data.ID,
		MedicineID:    data.MedicineID,
		BatchNumber:   data.BatchNumber,
		ExpiryDate:    data.ExpiryDate,
		Quantity:      data.Quantity,
		PurchasePrice: data.PurchasePrice,
		SellingPrice:  data.SellingPrice,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
	if data.Medicine != nil {
		batch.MedicineName = data.Medicine.Name
	}

	return batch
}

func toBatchesDomain(data []model.MedicineBatchModel) []*entity.MedicineBatch {
	batches := make([]*entity.MedicineBatch, 0, len(data))
	for i := range data {
		batches = append(batches, toBatchDomain(&data[i]))
	}

	return batches
}

// fromBatchDomain converts a domain MedicineBatch entity to a GORM MedicineBatchModel.
func fromBatchDomain(data *entity.MedicineBatch) *model.MedicineBatchModel {
	if data == nil {
		return nil
	}

	return &model.MedicineBatchModel{
		ID:            data.ID,
		MedicineID:    data.MedicineID,
		BatchNumber:   data.BatchNumber,
		ExpiryDate:    data.ExpiryDate,
		Quantity:      data.Quantity,
		PurchasePrice: data.PurchasePrice,
		SellingPrice:  data.SellingPrice,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
