package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// lookupTable binds a lookup kind to its table and the errors reported for it.
type lookupTable struct {
	name     string
	notFound *domainerrors.BaseError
	exists   *domainerrors.BaseError
}

var lookupTables = map[entity.LookupKind]lookupTable{
	entity.LookupCategory:      {model.CategoryModel{}.TableName(), domainerrors.ErrCategoryNotFound, domainerrors.ErrCategoryAlreadyExists},
	entity.LookupTag:           {model.TagModel{}.TableName(), domainerrors.ErrTagNotFound, domainerrors.ErrTagAlreadyExists},
	entity.LookupSideEffect:    {model.SideEffectModel{}.TableName(), domainerrors.ErrSideEffectNotFound, domainerrors.ErrSideEffectAlreadyExists},
	entity.LookupAlternative:   {model.AlternativeModel{}.TableName(), domainerrors.ErrAlternativeNotFound, domainerrors.ErrAlternativeAlreadyExists},
	entity.LookupDiscountType:  {model.DiscountTypeModel{}.TableName(), domainerrors.ErrDiscountTypeNotFound, domainerrors.ErrDiscountTypeAlreadyExists},
	entity.LookupIssueCategory: {model.IssueCategoryModel{}.TableName(), domainerrors.ErrIssueCategoryNotFound, domainerrors.ErrIssueCategoryAlreadyExists},
	entity.LookupAddressType:   {model.AddressTypeModel{}.TableName(), domainerrors.ErrAddressTypeNotFound, domainerrors.ErrAddressTypeAlreadyExists},
}

func tableFor(kind entity.LookupKind) (lookupTable, error) {
	t, ok := lookupTables[kind]
	if !ok {
		return lookupTable{}, domainerrors.ErrValidation.WrapMessage("unknown lookup kind " + kind.String())
	}

	return t, nil
}

// lookupRepository implements the domain.LookupRepository interface over every lookup table.
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository is the constructor for lookupRepository.
func NewLookupRepository(db *gorm.DB) repository.LookupRepository {
	return &lookupRepository{db: db}
}

// CreateLookup persists a new record in the table of its kind.
func (repo *lookupRepository) CreateLookup(ctx context.Context, lookup *entity.Lookup) error {
	t, err := tableFor(lookup.Kind)
	if err != nil {
		return err
	}

	lookupM := &model.LookupModel{Name: lookup.Name, Description: lookup.Description}
	if err := repo.db.WithContext(ctx).Table(t.name).Create(lookupM).Error; err != nil {
		return writeError(err, t.exists, "create "+lookup.Kind.String())
	}

	lookup.ID = lookupM.ID
	lookup.CreatedAt = lookupM.CreatedAt
	lookup.UpdatedAt = lookupM.UpdatedAt

	return nil
}

// FindLookupByID retrieves a live record by ID.
func (repo *lookupRepository) FindLookupByID(ctx context.Context, kind entity.LookupKind, id int64) (*entity.Lookup, error) {
	return repo.findOne(ctx, kind, "id = ?", id)
}

// FindLookupByName retrieves a live record by name.
func (repo *lookupRepository) FindLookupByName(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error) {
	return repo.findOne(ctx, kind, "name = ?", name)
}

func (repo *lookupRepository) findOne(ctx context.Context, kind entity.LookupKind, query string, arg any) (*entity.Lookup, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var lookupM model.LookupModel
	err = repo.db.WithContext(ctx).Table(t.name).Scopes(live).
		Where(query, arg).
		First(&lookupM).Error
	if err != nil {
		return nil, findError(err, t.notFound, "find "+kind.String())
	}

	return toLookupDomain(kind, &lookupM), nil
}

// ListLookups returns a page of live records ordered by name.
func (repo *lookupRepository) ListLookups(ctx context.Context, kind entity.LookupKind, page entity.Page) ([]*entity.Lookup, int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := repo.db.WithContext(ctx).Table(t.name).Scopes(live).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count "+t.name)
	}

	var lookupModels []model.LookupModel
	err = repo.db.WithContext(ctx).Table(t.name).Scopes(live, paginate(page)).
		Order("name, id").
		Find(&lookupModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list "+t.name)
	}

	lookups := make([]*entity.Lookup, 0, len(lookupModels))
	for i := range lookupModels {
		lookups = append(lookups, toLookupDomain(kind, &lookupModels[i]))
	}

	return lookups, total, nil
}

// UpdateLookup saves the name and description of a live record.
func (repo *lookupRepository) UpdateLookup(ctx context.Context, lookup *entity.Lookup) error {
	t, err := tableFor(lookup.Kind)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).Table(t.name).Scopes(live).
		Where("id = ?", lookup.ID).
		Updates(map[string]any{
			"name":        lookup.Name,
			"description": lookup.Description,
			"updated_at":  lookup.UpdatedAt,
		})
	if result.Error != nil {
		return writeError(result.Error, t.exists, "update "+lookup.Kind.String())
	}
	if result.RowsAffected == 0 {
		return t.notFound.WrapMessage("update " + lookup.Kind.String())
	}

	return nil
}

// SoftDeleteLookup flags a record as deleted.
func (repo *lookupRepository) SoftDeleteLookup(ctx context.Context, kind entity.LookupKind, id, deletedBy int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	return softDelete(ctx, repo.db, t.name, id, deletedBy, t.notFound)
}

// MissingLookupIDs returns the ids without a live record of the kind.
func (repo *lookupRepository) MissingLookupIDs(ctx context.Context, kind entity.LookupKind, ids []int64) ([]int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	return missingIDs(ctx, repo.db, t.name, ids)
}

// --- Mapper Functions ---

// toLookupDomain converts a GORM LookupModel row of a kind to a domain Lookup entity.
func toLookupDomain(kind entity.LookupKind, data *model.LookupModel) *entity.Lookup {
	if data == nil {
		return nil
	}

	return &entity.Lookup{
		ID:          data.ID,
		Kind:        kind,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
