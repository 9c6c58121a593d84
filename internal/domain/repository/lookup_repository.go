package repository

import (
	"context"

	"medico/internal/domain/entity"
)

// LookupRepository defines the operations shared by every lookup kind. Names are
// unique per kind among records that are not deleted.
type LookupRepository interface {
	// CreateLookup persists a record. Returns the kind's AlreadyExists error on a duplicate name.
	CreateLookup(ctx context.Context, lookup *entity.Lookup) error

	// FindLookupByID retrieves a live record of a kind.
	FindLookupByID(ctx context.Context, kind entity.LookupKind, id int64) (*entity.Lookup, error)

	// FindLookupByName retrieves a live record of a kind by its name.
	FindLookupByName(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error)

	// ListLookups returns a page of live records along with the total count.
	ListLookups(ctx context.Context, kind entity.LookupKind, page entity.Page) ([]*entity.Lookup, int64, error)

	// UpdateLookup saves the name and description of a record.
	UpdateLookup(ctx context.Context, lookup *entity.Lookup) error

	// SoftDeleteLookup flags a record as deleted. Returns ErrAlreadyDeleted when it already is.
	SoftDeleteLookup(ctx context.Context, kind entity.LookupKind, id, deletedBy int64) error

	// MissingLookupIDs returns the ids that do not reference a live record of the kind.
	MissingLookupIDs(ctx context.Context, kind entity.LookupKind, ids []int64) ([]int64, error)
}
