package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// gstSlabRepository implements the domain.GSTSlabRepository interface.
type gstSlabRepository struct {
	db *gorm.DB
}

// NewGSTSlabRepository is the constructor for gstSlabRepository.
func NewGSTSlabRepository(db *gorm.DB) repository.GSTSlabRepository {
	return &gstSlabRepository{db: db}
}

func (repo *gstSlabRepository) CreateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error {
	slabM := &model.GSTSlabModel{
		HSNCode:     slab.HSNCode,
		Description: slab.Description,
		Rate:        slab.Rate,
	}

	if err := repo.db.WithContext(ctx).Create(slabM).Error; err != nil {
		return writeError(err, domainerrors.ErrGSTSlabAlreadyExists, "create gst slab")
	}

	slab.ID = slabM.ID
	slab.CreatedAt = slabM.CreatedAt
	slab.UpdatedAt = slabM.UpdatedAt

	return nil
}

func (repo *gstSlabRepository) FindGSTSlabByID(ctx context.Context, id int64) (*entity.GSTSlab, error) {
	var slabM model.GSTSlabModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&slabM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrGSTSlabNotFound, "find gst slab by ID")
	}

	return toGSTSlabDomain(&slabM), nil
}

// FindGSTSlabByHSN retrieves the live slab of an HSN code.
func (repo *gstSlabRepository) FindGSTSlabByHSN(ctx context.Context, hsnCode string) (*entity.GSTSlab, error) {
	var slabM model.GSTSlabModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("hsn_code = ?", hsnCode).First(&slabM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrGSTSlabNotFound, "find gst slab by HSN code")
	}

	return toGSTSlabDomain(&slabM), nil
}

func (repo *gstSlabRepository) ListGSTSlabs(ctx context.Context, page entity.Page) ([]*entity.GSTSlab, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.GSTSlabModel{}).Scopes(live).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count gst slabs")
	}

	var slabModels []model.GSTSlabModel
	err := repo.db.WithContext(ctx).Scopes(live, paginate(page)).
		Order("hsn_code, id").
		Find(&slabModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list gst slabs")
	}

	slabs := make([]*entity.GSTSlab, 0, len(slabModels))
	for i := range slabModels {
		slabs = append(slabs, toGSTSlabDomain(&slabModels[i]))
	}

	return slabs, total, nil
}

func (repo *gstSlabRepository) UpdateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error {
	result := repo.db.WithContext(ctx).Model(&model.GSTSlabModel{}).
		Scopes(live).
		Where("id = ?", slab.ID).
		Updates(map[string]any{
			"hsn_code":    slab.HSNCode,
			"description": slab.Description,
			"rate":        slab.Rate,
		})
	if result.Error != nil {
		return writeError(result.Error, domainerrors.ErrGSTSlabAlreadyExists, "update gst slab")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrGSTSlabNotFound.WrapMessage("update gst slab")
	}

	return nil
}

func (repo *gstSlabRepository) SoftDeleteGSTSlab(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.GSTSlabModel{}.TableName(), id, deletedBy, domainerrors.ErrGSTSlabNotFound)
}

// --- Mapper Functions ---

func toGSTSlabDomain(data *model.GSTSlabModel) *entity.GSTSlab {
	if data == nil {
		return nil
	}

	return &entity.GSTSlab{
		ID:          data.ID,
		HSNCode:     data.HSNCode,
		Description: data.Description,
		Rate:        data.Rate,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
