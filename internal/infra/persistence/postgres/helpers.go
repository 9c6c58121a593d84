package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"

	"gorm.io/gorm"
)

// live restricts a query to rows that are not soft-deleted.
func live(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// paginate applies the normalized offset and limit of a page.
func paginate(page entity.Page) func(*gorm.DB) *gorm.DB {
	p := page.Normalize()

	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset).Limit(p.Limit)
	}
}

// findError maps a failed single-row read onto notFound or a database error.
func findError(err error, notFound *domainerrors.BaseError, details string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to "+details)
}

// writeError maps a failed insert or update onto the domain error taxonomy.
// exists may be nil when the table has no natural key.
func writeError(err error, exists *domainerrors.BaseError, details string) error {
	switch {
	case exists != nil && isUniqueConstraintViolation(err):
		return exists.WrapMessage(details)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrInvalidReference.WrapMessage(details)
	case isNotNullConstraintViolation(err), isCheckConstraintViolation(err):
		return domainerrors.ErrValidation.WrapMessage(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to "+details)
	}
}

// softDelete flags the live row with the given id. A missing row yields
// notFound and a row that is already flagged yields ErrAlreadyDeleted.
func softDelete(ctx context.Context, db *gorm.DB, table string, id, deletedBy int64, notFound *domainerrors.BaseError) error {
	result := db.WithContext(ctx).Table(table).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(softDeleteColumns(db, deletedBy))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete from "+table)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to check "+table)
	}
	if count == 0 {
		return notFound.WrapMessage("record does not exist")
	}

	return domainerrors.ErrAlreadyDeleted.WrapMessage(table)
}

// softDeleteColumns stamps deleted_at with the clock configured on db.
func softDeleteColumns(db *gorm.DB, deletedBy int64) map[string]any {
	return map[string]any{
		"is_deleted": true,
		"deleted_at": db.NowFunc(),
		"deleted_by": deletedBy,
	}
}

// missingIDs returns the ids that have no live row in table, preserving input order.
func missingIDs(ctx context.Context, db *gorm.DB, table string, ids []int64) ([]int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	err := db.WithContext(ctx).Table(table).Scopes(live).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to check "+table)
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

// uniqueIDs drops duplicates while keeping the first occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
