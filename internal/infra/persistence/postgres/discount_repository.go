package postgres

import (
	"context"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// discountLink describes one discount association table.
type discountLink struct {
	table  string
	column string
}

var (
	discountMedicines  = discountLink{model.DiscountMedicineModel{}.TableName(), "medicine_id"}
	discountCategories = discountLink{model.DiscountCategoryModel{}.TableName(), "category_id"}
)

// discountRepository implements the domain.DiscountRepository interface.
type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository is the constructor for discountRepository.
func NewDiscountRepository(db *gorm.DB) repository.DiscountRepository {
	return &discountRepository{db: db}
}

// CreateDiscount persists the discount row.
func (repo *discountRepository) CreateDiscount(ctx context.Context, discount *entity.Discount) error {
	discountM := fromDiscountDomain(discount)

	if err := repo.db.WithContext(ctx).Create(discountM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrDiscountTypeNotFound.WrapMessage("invalid discount type reference")
		}

		return writeError(err, nil, "create discount")
	}

	discount.ID = discountM.ID
	discount.CreatedAt = discountM.CreatedAt

	return nil
}

// FindDiscountByID retrieves a live discount with its relations.
func (repo *discountRepository) FindDiscountByID(ctx context.Context, id int64) (*entity.Discount, error) {
	var discountM model.DiscountModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&discountM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrDiscountNotFound, "find discount by ID")
	}

	discount := toDiscountDomain(&discountM)
	if err := repo.loadRelations(ctx, []*entity.Discount{discount}); err != nil {
		return nil, err
	}

	return discount, nil
}

// ListDiscounts returns a page of live discounts, newest first.
func (repo *discountRepository) ListDiscounts(ctx context.Context, active *bool, now time.Time, page entity.Page) ([]*entity.Discount, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = live(db.Model(&model.DiscountModel{}))
		if active == nil {
			return db
		}
		if *active {
			return db.Where("start_date <= ? AND end_date >= ?", now, now)
		}

		return db.Where("(start_date > ? OR end_date < ?)", now, now)
	}

	var total int64
	if err := repo.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count discounts")
	}

	var discountModels []model.DiscountModel
	err := repo.db.WithContext(ctx).Scopes(scope, paginate(page)).
		Order("id DESC").
		Find(&discountModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list discounts")
	}

	discounts := make([]*entity.Discount, 0, len(discountModels))
	for i := range discountModels {
		discounts = append(discounts, toDiscountDomain(&discountModels[i]))
	}
	if err := repo.loadRelations(ctx, discounts); err != nil {
		return nil, 0, err
	}

	return discounts, total, nil
}

// UpdateDiscount saves the scalar fields of a live discount.
func (repo *discountRepository) UpdateDiscount(ctx context.Context, discount *entity.Discount) error {
	result := repo.db.WithContext(ctx).Model(&model.DiscountModel{}).
		Scopes(live).
		Where("id = ?", discount.ID).
		Updates(map[string]any{
			"name":                discount.Name,
			"description":         discount.Description,
			"discount_type_id":    discount.DiscountTypeID,
			"value":               discount.Value,
			"start_date":          discount.StartDate,
			"end_date":            discount.EndDate,
			"min_purchase_amount": discount.MinPurchaseAmount,
			"max_discount_amount": discount.MaxDiscountAmount,
			"usage_limit":         discount.UsageLimit,
			"updated_at":          discount.UpdatedAt,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "update discount")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDiscountNotFound.WrapMessage("update discount")
	}

	return nil
}

// SoftDeleteDiscount flags a discount as deleted.
func (repo *discountRepository) SoftDeleteDiscount(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.DiscountModel{}.TableName(), id, deletedBy, domainerrors.ErrDiscountNotFound)
}

// ReplaceParameters flags the live parameters and inserts params as new rows.
func (repo *discountRepository) ReplaceParameters(ctx context.Context, discountID int64, params []entity.DiscountParameter, deletedBy int64) error {
	err := repo.db.WithContext(ctx).Model(&model.DiscountParameterModel{}).
		Scopes(live).
		Where("discount_id = ?", discountID).
		Updates(softDeleteColumns(repo.db, deletedBy)).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear discount parameters")
	}
	if len(params) == 0 {
		return nil
	}

	paramModels := make([]model.DiscountParameterModel, 0, len(params))
	for _, p := range params {
		paramModels = append(paramModels, model.DiscountParameterModel{
			DiscountID: discountID,
			ParamKey:   p.Key,
			ParamValue: p.Value,
		})
	}
	if err := repo.db.WithContext(ctx).Create(&paramModels).Error; err != nil {
		return writeError(err, nil, "create discount parameters")
	}

	return nil
}

// ReplaceMedicines flags the live medicine links and inserts medicineIDs as new rows.
func (repo *discountRepository) ReplaceMedicines(ctx context.Context, discountID int64, medicineIDs []int64, deletedBy int64) error {
	return repo.replaceLinks(ctx, discountMedicines, discountID, medicineIDs, deletedBy)
}

// ReplaceCategories flags the live category links and inserts categoryIDs as new rows.
func (repo *discountRepository) ReplaceCategories(ctx context.Context, discountID int64, categoryIDs []int64, deletedBy int64) error {
	return repo.replaceLinks(ctx, discountCategories, discountID, categoryIDs, deletedBy)
}

func (repo *discountRepository) replaceLinks(ctx context.Context, link discountLink, discountID int64, targetIDs []int64, deletedBy int64) error {
	err := repo.db.WithContext(ctx).Table(link.table).
		Where("discount_id = ? AND is_deleted = ?", discountID, false).
		Updates(softDeleteColumns(repo.db, deletedBy)).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear "+link.table)
	}

	for _, id := range uniqueIDs(targetIDs) {
		if err := repo.insertLink(ctx, link, discountID, id); err != nil {
			return err
		}
	}

	return nil
}

// AssignMedicines links medicines without disturbing existing live links.
func (repo *discountRepository) AssignMedicines(ctx context.Context, discountID int64, medicineIDs []int64) error {
	return repo.assignLinks(ctx, discountMedicines, discountID, medicineIDs)
}

// AssignCategories links categories without disturbing existing live links.
func (repo *discountRepository) AssignCategories(ctx context.Context, discountID int64, categoryIDs []int64) error {
	return repo.assignLinks(ctx, discountCategories, discountID, categoryIDs)
}

type linkState struct {
	ID        int64
	IsDeleted bool
}

func (repo *discountRepository) assignLinks(ctx context.Context, link discountLink, discountID int64, targetIDs []int64) error {
	for _, targetID := range uniqueIDs(targetIDs) {
		var rows []linkState
		err := repo.db.WithContext(ctx).Table(link.table).
			Select("id, is_deleted").
			Where("discount_id = ? AND "+link.column+" = ?", discountID, targetID).
			Order("id DESC").
			Scan(&rows).Error
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to read "+link.table)
		}

		switch {
		case len(rows) == 0:
			if err := repo.insertLink(ctx, link, discountID, targetID); err != nil {
				return err
			}
		case hasLiveLink(rows):
			continue
		default:
			err := repo.db.WithContext(ctx).Table(link.table).
				Where("id = ?", rows[0].ID).
				Updates(map[string]any{"is_deleted": false, "deleted_at": nil, "deleted_by": nil}).Error
			if err != nil {
				return domainerrors.NewDatabaseExecuteError(err, "failed to restore "+link.table)
			}
		}
	}

	return nil
}

func hasLiveLink(rows []linkState) bool {
	for _, row := range rows {
		if !row.IsDeleted {
			return true
		}
	}

	return false
}

func (repo *discountRepository) insertLink(ctx context.Context, link discountLink, discountID, targetID int64) error {
	row := map[string]any{
		"discount_id": discountID,
		link.column:   targetID,
		"created_at":  repo.db.NowFunc(),
		"is_deleted":  false,
	}
	if err := repo.db.WithContext(ctx).Table(link.table).Create(row).Error; err != nil {
		return writeError(err, nil, "link "+link.table)
	}

	return nil
}

// RemoveMedicine unlinks a medicine from a discount.
func (repo *discountRepository) RemoveMedicine(ctx context.Context, discountID, medicineID, deletedBy int64) error {
	return repo.removeLink(ctx, discountMedicines, discountID, medicineID, deletedBy)
}

// RemoveCategory unlinks a category from a discount.
func (repo *discountRepository) RemoveCategory(ctx context.Context, discountID, categoryID, deletedBy int64) error {
	return repo.removeLink(ctx, discountCategories, discountID, categoryID, deletedBy)
}

func (repo *discountRepository) removeLink(ctx context.Context, link discountLink, discountID, targetID, deletedBy int64) error {
	result := repo.db.WithContext(ctx).Table(link.table).
		Where("discount_id = ? AND "+link.column+" = ? AND is_deleted = ?", discountID, targetID, false).
		Updates(softDeleteColumns(repo.db, deletedBy))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to unlink "+link.table)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRelationNotFound.WrapMessage(link.table)
	}

	return nil
}

// ListParameters returns the live parameters of a discount in insertion order.
func (repo *discountRepository) ListParameters(ctx context.Context, discountID int64) ([]entity.DiscountParameter, error) {
	var paramModels []model.DiscountParameterModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("discount_id = ?", discountID).
		Order("id").
		Find(&paramModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list discount parameters")
	}

	return toParametersDomain(paramModels), nil
}

// FindParameter retrieves a live parameter that belongs to the discount.
func (repo *discountRepository) FindParameter(ctx context.Context, discountID, parameterID int64) (*entity.DiscountParameter, error) {
	var paramM model.DiscountParameterModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("id = ? AND discount_id = ?", parameterID, discountID).
		First(&paramM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrDiscountParameterNotFound, "find discount parameter")
	}

	param := toParameterDomain(paramM)

	return &param, nil
}

func (repo *discountRepository) CreateParameter(ctx context.Context, param *entity.DiscountParameter) error {
	paramM := &model.DiscountParameterModel{
		DiscountID: param.DiscountID,
		ParamKey:   param.Key,
		ParamValue: param.Value,
	}

	if err := repo.db.WithContext(ctx).Create(paramM).Error; err != nil {
		return writeError(err, nil, "create discount parameter")
	}
	param.ID = paramM.ID

	return nil
}

func (repo *discountRepository) UpdateParameter(ctx context.Context, param *entity.DiscountParameter) error {
	result := repo.db.WithContext(ctx).Model(&model.DiscountParameterModel{}).
		Scopes(live).
		Where("id = ? AND discount_id = ?", param.ID, param.DiscountID).
		Updates(map[string]any{"param_key": param.Key, "param_value": param.Value})
	if result.Error != nil {
		return writeError(result.Error, nil, "update discount parameter")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDiscountParameterNotFound.WrapMessage("update discount parameter")
	}

	return nil
}

func (repo *discountRepository) SoftDeleteParameter(ctx context.Context, discountID, parameterID, deletedBy int64) error {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.DiscountParameterModel{}).
		Where("id = ? AND discount_id = ?", parameterID, discountID).
		Count(&count).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check discount parameter")
	}
	if count == 0 {
		return domainerrors.ErrDiscountParameterNotFound.WrapMessage("delete discount parameter")
	}

	return softDelete(ctx, repo.db, model.DiscountParameterModel{}.TableName(), parameterID, deletedBy, domainerrors.ErrDiscountParameterNotFound)
}

// loadRelations fills type names, parameters and association ids of the discounts.
func (repo *discountRepository) loadRelations(ctx context.Context, discounts []*entity.Discount) error {
	if len(discounts) == 0 {
		return nil
	}

	byID := make(map[int64]*entity.Discount, len(discounts))
	ids := make([]int64, 0, len(discounts))
	typeIDs := make([]int64, 0, len(discounts))
	for _, d := range discounts {
		d.Parameters, d.MedicineIDs, d.CategoryIDs = []entity.DiscountParameter{}, []int64{}, []int64{}
		byID[d.ID] = d
		ids = append(ids, d.ID)
		typeIDs = append(typeIDs, d.DiscountTypeID)
	}

	var types []model.LookupModel
	err := repo.db.WithContext(ctx).Table(model.DiscountTypeModel{}.TableName()).
		Where("id IN ?", uniqueIDs(typeIDs)).
		Find(&types).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to load discount types")
	}
	typeNames := make(map[int64]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	for _, d := range discounts {
		d.DiscountTypeName = typeNames[d.DiscountTypeID]
	}

	var paramModels []model.DiscountParameterModel
	err = repo.db.WithContext(ctx).Scopes(live).
		Where("discount_id IN ?", ids).
		Order("id").
		Find(&paramModels).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to load discount parameters")
	}
	for _, p := range paramModels {
		byID[p.DiscountID].Parameters = append(byID[p.DiscountID].Parameters, toParameterDomain(p))
	}

	for _, link := range []discountLink{discountMedicines, discountCategories} {
		var rows []struct {
			DiscountID int64
			TargetID   int64
		}
		err := repo.db.WithContext(ctx).Table(link.table).
			Select("discount_id, "+link.column+" AS target_id").
			Where("discount_id IN ? AND is_deleted = ?", ids, false).
			Order("id").
			Scan(&rows).Error
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to load "+link.table)
		}

		for _, row := range rows {
			d := byID[row.DiscountID]
			if link == discountMedicines {
				d.MedicineIDs = append(d.MedicineIDs, row.TargetID)
			} else {
				d.CategoryIDs = append(d.CategoryIDs, row.TargetID)
			}
		}
	}

	return nil
}

// --- Mapper Functions ---

// toDiscountDomain converts a GORM DiscountModel to a domain Discount entity without relations.
func toDiscountDomain(data *model.DiscountModel) *entity.Discount {
	if data == nil {
		return nil
	}

	return &entity.Discount{
		ID:                data.ID,
		Name:              data.Name,
		Description:       data.Description,
		DiscountTypeID:    data.DiscountTypeID,
		Value:             data.Value,
		StartDate:         data.StartDate,
		EndDate:           data.EndDate,
		MinPurchaseAmount: data.MinPurchaseAmount,
		MaxDiscountAmount: data.MaxDiscountAmount,
		UsageLimit:        data.UsageLimit,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromDiscountDomain converts a domain Discount entity to a GORM DiscountModel.
func fromDiscountDomain(data *entity.Discount) *model.DiscountModel {
	if data == nil {
		return nil
	}

	return &model.DiscountModel{
		ID:                data.ID,
		Name:              data.Name,
		Description:       data.Description,
		DiscountTypeID:    data.DiscountTypeID,
		Value:             data.Value,
		StartDate:         data.StartDate,
		EndDate:           data.EndDate,
		MinPurchaseAmount: data.MinPurchaseAmount,
		MaxDiscountAmount: data.MaxDiscountAmount,
		UsageLimit:        data.UsageLimit,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func toParameterDomain(data model.DiscountParameterModel) entity.DiscountParameter {
	return entity.DiscountParameter{
		ID:         data.ID,
		DiscountID: data.DiscountID,
		Key:        data.ParamKey,
		Value:      data.ParamValue,
	}
}

func toParametersDomain(data []model.DiscountParameterModel) []entity.DiscountParameter {
	params := make([]entity.DiscountParameter, 0, len(data))
	for _, p := range data {
		params = append(params, toParameterDomain(p))
	}

	return params
}
