package postgres

import (
	"context"
	"strings"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// medicineLink describes one medicine link table and the column naming its target.
type medicineLink struct {
	table  string
	column string
}

var medicineLinks = map[entity.LookupKind]medicineLink{
	entity.LookupCategory:    {model.MedicineCategoryModel{}.TableName(), "category_id"},
	entity.LookupTag:         {model.MedicineTagModel{}.TableName(), "tag_id"},
	entity.LookupSideEffect:  {model.MedicineSideEffectModel{}.TableName(), "side_effect_id"},
	entity.LookupAlternative: {model.MedicineAlternativeModel{}.TableName(), "alternative_id"},
}

// medicineRepository implements the domain.MedicineRepository interface.
type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository is the constructor for medicineRepository.
func NewMedicineRepository(db *gorm.DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

// CreateMedicine persists the medicine row.
func (repo *medicineRepository) CreateMedicine(ctx context.Context, medicine *entity.Medicine) error {
	medicineM := fromMedicineDomain(medicine)

	if err := repo.db.WithContext(ctx).Create(medicineM).Error; err != nil {
		return writeError(err, nil, "create medicine")
	}

	medicine.ID = medicineM.ID
	medicine.CreatedAt = medicineM.CreatedAt
	medicine.UpdatedAt = medicineM.UpdatedAt

	return nil
}

// FindMedicineByID retrieves a live medicine and the ids of its live links.
func (repo *medicineRepository) FindMedicineByID(ctx context.Context, id int64) (*entity.Medicine, error) {
	var medicineM model.MedicineModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&medicineM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrMedicineNotFound, "find medicine by ID")
	}

	medicine := toMedicineDomain(&medicineM)
	if err := repo.loadLinks(ctx, []*entity.Medicine{medicine}); err != nil {
		return nil, err
	}

	return medicine, nil
}

// ListMedicines returns a filtered page of live medicines ordered by name.
func (repo *medicineRepository) ListMedicines(ctx context.Context, filter entity.MedicineFilter, page entity.Page) ([]*entity.Medicine, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = live(db.Model(&model.MedicineModel{}))
		if name := strings.TrimSpace(filter.Name); name != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if filter.CategoryID > 0 {
			db = db.Where("id IN (?)", repo.linkedMedicines(entity.LookupCategory, filter.CategoryID))
		}
		if filter.TagID > 0 {
			db = db.Where("id IN (?)", repo.linkedMedicines(entity.LookupTag, filter.TagID))
		}

		return db
	}

	var total int64
	if err := repo.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count medicines")
	}

	var medicineModels []model.MedicineModel
	err := repo.db.WithContext(ctx).Scopes(scope, paginate(page)).
		Order("name, id").
		Find(&medicineModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list medicines")
	}

	medicines := make([]*entity.Medicine, 0, len(medicineModels))
	for i := range medicineModels {
		medicines = append(medicines, toMedicineDomain(&medicineModels[i]))
	}
	if err := repo.loadLinks(ctx, medicines); err != nil {
		return nil, 0, err
	}

	return medicines, total, nil
}

func (repo *medicineRepository) linkedMedicines(kind entity.LookupKind, targetID int64) *gorm.DB {
	link := medicineLinks[kind]

	return repo.db.Table(link.table).Select("medicine_id").
		Where(link.column+" = ? AND is_deleted = ?", targetID, false)
}

// UpdateMedicine saves the scalar fields of a live medicine.
func (repo *medicineRepository) UpdateMedicine(ctx context.Context, medicine *entity.Medicine) error {
	result := repo.db.WithContext(ctx).Model(&model.MedicineModel{}).
		Scopes(live).
		Where("id = ?", medicine.ID).
		Updates(map[string]any{
			"name":           medicine.Name,
			"generic_name":   medicine.GenericName,
			"manufacturer":   medicine.Manufacturer,
			"description":    medicine.Description,
			"hsn_code":       medicine.HSNCode,
			"is_prescribed":  medicine.IsPrescribed,
			"weight":         medicine.Weight,
			"image_asset_id": medicine.ImageAssetID,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "update medicine")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMedicineNotFound.WrapMessage("update medicine")
	}

	return nil
}

// SoftDeleteMedicine flags a medicine as deleted.
func (repo *medicineRepository) SoftDeleteMedicine(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.MedicineModel{}.TableName(), id, deletedBy, domainerrors.ErrMedicineNotFound)
}

// ReplaceLinks flags the live links of one kind and inserts targetIDs as new rows.
func (repo *medicineRepository) ReplaceLinks(ctx context.Context, medicineID int64, kind entity.LookupKind, targetIDs []int64, deletedBy int64) error {
	link, ok := medicineLinks[kind]
	if !ok {
		return domainerrors.ErrValidation.WrapMessage("medicines cannot link to " + kind.String())
	}

	err := repo.db.WithContext(ctx).Table(link.table).
		Where("medicine_id = ? AND is_deleted = ?", medicineID, false).
		Updates(softDeleteColumns(repo.db, deletedBy)).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear "+link.table)
	}

	targetIDs = uniqueIDs(targetIDs)
	if len(targetIDs) == 0 {
		return nil
	}

	now := repo.db.NowFunc()
	rows := make([]map[string]any, 0, len(targetIDs))
	for _, id := range targetIDs {
		rows = append(rows, map[string]any{
			"medicine_id": medicineID,
			link.column:   id,
			"created_at":  now,
			"is_deleted":  false,
		})
	}
	if err := repo.db.WithContext(ctx).Table(link.table).Create(&rows).Error; err != nil {
		return writeError(err, nil, "link "+link.table)
	}

	return nil
}

// MissingMedicineIDs returns the ids without a live medicine.
func (repo *medicineRepository) MissingMedicineIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return missingIDs(ctx, repo.db, model.MedicineModel{}.TableName(), ids)
}

type linkRow struct {
	MedicineID int64
	TargetID   int64
}

// loadLinks fills the live link ids of every medicine with one query per link table.
func (repo *medicineRepository) loadLinks(ctx context.Context, medicines []*entity.Medicine) error {
	if len(medicines) == 0 {
		return nil
	}

	byID := make(map[int64]*entity.Medicine, len(medicines))
	ids := make([]int64, 0, len(medicines))
	for _, m := range medicines {
		m.CategoryIDs, m.TagIDs, m.SideEffectIDs, m.AlternativeIDs = []int64{}, []int64{}, []int64{}, []int64{}
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	for kind, link := range medicineLinks {
		var rows []linkRow
		err := repo.db.WithContext(ctx).Table(link.table).
			Select("medicine_id, "+link.column+" AS target_id").
			Where("medicine_id IN ? AND is_deleted = ?", ids, false).
			Order("id").
			Scan(&rows).Error
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to load "+link.table)
		}

		for _, row := range rows {
			m := byID[row.MedicineID]
			switch kind {
			case entity.LookupCategory:
				m.CategoryIDs = append(m.CategoryIDs, row.TargetID)
			case entity.LookupTag:
				m.TagIDs = append(m.TagIDs, row.TargetID)
			case entity.LookupSideEffect:
				m.SideEffectIDs = append(m.SideEffectIDs, row.TargetID)
			case entity.LookupAlternative:
				m.AlternativeIDs = append(m.AlternativeIDs, row.TargetID)
			}
		}
	}

	return nil
}

// --- Mapper Functions ---

// toMedicineDomain converts a GORM MedicineModel to a domain Medicine entity without links.
func toMedicineDomain(data *model.MedicineModel) *entity.Medicine {
	if data == nil {
		return nil
	}

	return &entity.Medicine{
		ID:           data.ID,
		Name:         data.Name,
		GenericName:  data.GenericName,
		Manufacturer: data.Manufacturer,
		Description:  data.Description,
		HSNCode:      data.HSNCode,
		IsPrescribed: data.IsPrescribed,
		Weight:       data.Weight,
		ImageAssetID: data.ImageAssetID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromMedicineDomain converts a domain Medicine entity to a GORM MedicineModel.
func fromMedicineDomain(data *entity.Medicine) *model.MedicineModel {
	if data == nil {
		return nil
	}

	return &model.MedicineModel{
		ID:           data.ID,
		Name:         data.Name,
		GenericName:  data.GenericName,
		Manufacturer: data.Manufacturer,
		Description:  data.Description,
		HSNCode:      data.HSNCode,
		IsPrescribed: data.IsPrescribed,
		Weight:       data.Weight,
		ImageAssetID: data.ImageAssetID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
