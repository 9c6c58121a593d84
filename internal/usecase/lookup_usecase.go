package usecase

import (
	"context"

	"medico/internal/domain/entity"
)

// LookupUsecase manages every kind of named reference record: medicine
// categories, tags, side effects, alternatives, discount types, issue
// categories and address types.
type LookupUsecase interface {
	// CreateLookup inserts a record. A live record of the same kind and name is a Conflict.
	CreateLookup(ctx context.Context, kind entity.LookupKind, name, description string) (*entity.Lookup, error)
	GetLookup(ctx context.Context, kind entity.LookupKind, id int64) (*entity.Lookup, error)
	ListLookups(ctx context.Context, kind entity.LookupKind, page entity.Page) (*entity.PagedResult[*entity.Lookup], error)
	UpdateLookup(ctx context.Context, kind entity.LookupKind, id int64, patch *entity.LookupPatch) (*entity.Lookup, error)
	DeleteLookup(ctx context.Context, kind entity.LookupKind, id, deletedBy int64) error
}
