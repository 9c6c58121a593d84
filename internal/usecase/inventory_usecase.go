package usecase

import (
	"context"
	"io"

	"medico/internal/domain/entity"
)

// InventoryUsecase defines the catalogue operations: medicines, batches and GST slabs.
type InventoryUsecase interface {
	// CreateMedicine inserts a medicine with its category, tag, side effect and alternative links.
	CreateMedicine(ctx context.Context, medicine *entity.Medicine) (*entity.Medicine, error)
	GetMedicine(ctx context.Context, id int64) (*entity.Medicine, error)
	ListMedicines(ctx context.Context, filter entity.MedicineFilter, page entity.Page) (*entity.PagedResult[*entity.Medicine], error)
	UpdateMedicine(ctx context.Context, id int64, patch *entity.MedicinePatch, by int64) (*entity.Medicine, error)
	DeleteMedicine(ctx context.Context, id, by int64) error
	// ReplaceMedicineLinks sets the links of one kind to exactly targetIDs.
	ReplaceMedicineLinks(ctx context.Context, id int64, kind entity.LookupKind, targetIDs []int64, by int64) (*entity.Medicine, error)

	// CreateBatch receives stock. The medicine must exist and the quantity must be positive.
	CreateBatch(ctx context.Context, batch *entity.MedicineBatch) (*entity.MedicineBatch, error)
	GetBatch(ctx context.Context, id int64) (*entity.MedicineBatch, error)
	ListBatches(ctx context.Context, medicineID *int64, page entity.Page) (*entity.PagedResult[*entity.MedicineBatch], error)
	UpdateBatch(ctx context.Context, id int64, patch *entity.BatchPatch) (*entity.MedicineBatch, error)
	DeleteBatch(ctx context.Context, id, by int64) error
	// ExportBatches writes the live batches as an xlsx workbook.
	ExportBatches(ctx context.Context, medicineID *int64, w io.Writer) error

	CreateGSTSlab(ctx context.Context, slab *entity.GSTSlab) (*entity.GSTSlab, error)
	GetGSTSlab(ctx context.Context, id int64) (*entity.GSTSlab, error)
	ListGSTSlabs(ctx context.Context, page entity.Page) (*entity.PagedResult[*entity.GSTSlab], error)
	UpdateGSTSlab(ctx context.Context, id int64, patch *entity.GSTSlabPatch) (*entity.GSTSlab, error)
	DeleteGSTSlab(ctx context.Context, id, by int64) error
}
