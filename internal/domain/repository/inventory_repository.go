package repository

import (
	"context"

	"medico/internal/domain/entity"
)

// MedicineRepository defines the persistence of medicines and their links.
type MedicineRepository interface {
	// CreateMedicine persists the medicine row. Links are written with ReplaceLinks.
	CreateMedicine(ctx context.Context, medicine *entity.Medicine) error

	// FindMedicineByID retrieves a medicine with the ids of its live links.
	FindMedicineByID(ctx context.Context, id int64) (*entity.Medicine, error)

	// ListMedicines returns a filtered page of medicines and the total match count.
	ListMedicines(ctx context.Context, filter entity.MedicineFilter, page entity.Page) ([]*entity.Medicine, int64, error)

	// UpdateMedicine saves the scalar fields of a medicine.
	UpdateMedicine(ctx context.Context, medicine *entity.Medicine) error

	// SoftDeleteMedicine flags a medicine as deleted.
	SoftDeleteMedicine(ctx context.Context, id, deletedBy int64) error

	// ReplaceLinks soft-deletes the live links of one kind and inserts targetIDs fresh.
	ReplaceLinks(ctx context.Context, medicineID int64, kind entity.LookupKind, targetIDs []int64, deletedBy int64) error

	// MissingMedicineIDs returns the ids that do not reference a live medicine.
	MissingMedicineIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// BatchRepository defines the persistence of medicine batches.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *entity.MedicineBatch) error
	FindBatchByID(ctx context.Context, id int64) (*entity.MedicineBatch, error)

	// ListBatches returns a page of batches, optionally only those of one medicine.
	ListBatches(ctx context.Context, medicineID *int64, page entity.Page) ([]*entity.MedicineBatch, int64, error)

	// ListAllBatches returns every live batch with its medicine name, ordered by expiry.
	ListAllBatches(ctx context.Context, medicineID *int64) ([]*entity.MedicineBatch, error)

	UpdateBatch(ctx context.Context, batch *entity.MedicineBatch) error
	SoftDeleteBatch(ctx context.Context, id, deletedBy int64) error
}

// GSTSlabRepository defines the persistence of GST slabs keyed by HSN code.
type GSTSlabRepository interface {
	CreateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error
	FindGSTSlabByID(ctx context.Context, id int64) (*entity.GSTSlab, error)
	FindGSTSlabByHSN(ctx context.Context, hsnCode string) (*entity.GSTSlab, error)
	ListGSTSlabs(ctx context.Context, page entity.Page) ([]*entity.GSTSlab, int64, error)
	UpdateGSTSlab(ctx context.Context, slab *entity.GSTSlab) error
	SoftDeleteGSTSlab(ctx context.Context, id, deletedBy int64) error
}
