package impl

import (
	"context"
	"io"
	"log/slog"

	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"go.uber.org/fx"
)

// inventoryService implements the InventoryUsecase interface.
type inventoryService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	exporter  service.StockExporter
	clock     service.Clock
	logger    *slog.Logger
}

// InventoryServiceParams holds dependencies for InventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Exporter  service.StockExporter
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewInventoryService is the constructor for inventoryService.
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		txManager: params.TxManager,
		repos:     params.Repos,
		exporter:  params.Exporter,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *inventoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// medicineLinkSets returns the link slices of m keyed by their lookup kind.
func medicineLinkSets(m *entity.Medicine) map[entity.LookupKind][]int64 {
	return map[entity.LookupKind][]int64{
		entity.LookupCategory:    m.CategoryIDs,
		entity.LookupTag:         m.TagIDs,
		entity.LookupSideEffect:  m.SideEffectIDs,
		entity.LookupAlternative: m.AlternativeIDs,
	}
}

// CreateMedicine inserts the medicine and its links in one transaction.
func (srv *inventoryService) CreateMedicine(ctx context.Context, medicine *entity.Medicine) (*entity.Medicine, error) {
	var created *entity.Medicine
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lookupRepo := repoFactory.LookupRepo()
		medicineRepo := repoFactory.MedicineRepo()

		links := medicineLinkSets(medicine)
		for kind, ids := range links {
			if err := ensureLookupsExist(ctx, lookupRepo, kind, ids); err != nil {
				return err
			}
		}
		if medicine.ImageAssetID != nil {
			if _, err := repoFactory.FileRepo().FindFileAssetByID(ctx, *medicine.ImageAssetID); err != nil {
				return err
			}
		}

		if err := medicineRepo.CreateMedicine(ctx, medicine); err != nil {
			return err
		}
		for kind, ids := range links {
			if len(ids) == 0 {
				continue
			}
			if err := medicineRepo.ReplaceLinks(ctx, medicine.ID, kind, ids, 0); err != nil {
				return err
			}
		}

		var err error
		created, err = medicineRepo.FindMedicineByID(ctx, medicine.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create medicine")
	}

	srv.log(ctx).Info("Medicine created", slog.Int64("medicineID", created.ID), slog.String("name", created.Name))

	return created, nil
}

func (srv *inventoryService) GetMedicine(ctx context.Context, id int64) (*entity.Medicine, error) {
	return srv.repos.MedicineRepo().FindMedicineByID(ctx, id)
}

func (srv *inventoryService) ListMedicines(ctx context.Context, filter entity.MedicineFilter, page entity.Page) (*entity.PagedResult[*entity.Medicine], error) {
	medicines, total, err := srv.repos.MedicineRepo().ListMedicines(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list medicines")
	}

	return paged(medicines, total), nil
}

// UpdateMedicine patches the scalars and replaces every supplied link set.
func (srv *inventoryService) UpdateMedicine(ctx context.Context, id int64, patch *entity.MedicinePatch, by int64) (*entity.Medicine, error) {
	replacements := map[entity.LookupKind]*[]int64{
		entity.LookupCategory:    patch.CategoryIDs,
		entity.LookupTag:         patch.TagIDs,
		entity.LookupSideEffect:  patch.SideEffectIDs,
		entity.LookupAlternative: patch.AlternativeIDs,
	}

	var updated *entity.Medicine
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lookupRepo := repoFactory.LookupRepo()
		medicineRepo := repoFactory.MedicineRepo()

		medicine, err := medicineRepo.FindMedicineByID(ctx, id)
		if err != nil {
			return err
		}

		for kind, ids := range replacements {
			if ids == nil {
				continue
			}
			if err := ensureLookupsExist(ctx, lookupRepo, kind, *ids); err != nil {
				return err
			}
		}
		if patch.ImageAssetID != nil {
			if _, err := repoFactory.FileRepo().FindFileAssetByID(ctx, *patch.ImageAssetID); err != nil {
				return err
			}
		}

		patch.Apply(medicine)
		medicine.UpdatedAt = srv.clock.Now()
		if err := medicineRepo.UpdateMedicine(ctx, medicine); err != nil {
			return err
		}

		for kind, ids := range replacements {
			if ids == nil {
				continue
			}
			if err := medicineRepo.ReplaceLinks(ctx, id, kind, *ids, by); err != nil {
				return err
			}
		}

		updated, err = medicineRepo.FindMedicineByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update medicine")
	}

	return updated, nil
}

func (srv *inventoryService) DeleteMedicine(ctx context.Context, id, by int64) error {
	if err := srv.repos.MedicineRepo().SoftDeleteMedicine(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete medicine")
	}

	srv.log(ctx).Info("Medicine deleted", slog.Int64("medicineID", id), slog.Int64("by", by))

	return nil
}

// ReplaceMedicineLinks sets the links of one kind to exactly targetIDs.
func (srv *inventoryService) ReplaceMedicineLinks(ctx context.Context, id int64, kind entity.LookupKind, targetIDs []int64, by int64) (*entity.Medicine, error) {
	var updated *entity.Medicine
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		medicineRepo := repoFactory.MedicineRepo()

		if _, err := medicineRepo.FindMedicineByID(ctx, id); err != nil {
			return err
		}
		if err := ensureLookupsExist(ctx, repoFactory.LookupRepo(), kind, targetIDs); err != nil {
			return err
		}
		if err := medicineRepo.ReplaceLinks(ctx, id, kind, targetIDs, by); err != nil {
			return err
		}

		var err error
		updated, err = medicineRepo.FindMedicineByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to replace medicine %s links", kind)
	}

	return updated, nil
}

// CreateBatch receives stock for an existing medicine.
func (srv *inventoryService) CreateBatch(ctx context.Context, batch *entity.MedicineBatch) (*entity.MedicineBatch, error) {
	if err := validateBatch(batch); err != nil {
		return nil, err
	}

	if _, err := srv.repos.MedicineRepo().FindMedicineByID(ctx, batch.MedicineID); err != nil {
		return nil, errors.Wrap(err, "failed to find batch medicine")
	}

	if err := srv.repos.BatchRepo().CreateBatch(ctx, batch); err != nil {
		return nil, errors.Wrap(err, "failed to create batch")
	}

	srv.log(ctx).Info("Batch received",
		slog.Int64("batchID", batch.ID),
		slog.Int64("medicineID", batch.MedicineID),
		slog.Int("quantity", batch.Quantity),
	)

	return batch, nil
}

func validateBatch(batch *entity.MedicineBatch) error {
	if batch.Quantity <= 0 {
		return domainerrors.ErrValidation.WrapMessage("quantity must be positive")
	}
	if batch.PurchasePrice.IsNegative() || batch.SellingPrice.IsNegative() {
		return domainerrors.ErrValidation.WrapMessage("prices must not be negative")
	}

	return nil
}

func (srv *inventoryService) GetBatch(ctx context.Context, id int64) (*entity.MedicineBatch, error) {
	return srv.repos.BatchRepo().FindBatchByID(ctx, id)
}

func (srv *inventoryService) ListBatches(ctx context.Context, medicineID *int64, page entity.Page) (*entity.PagedResult[*entity.MedicineBatch], error) {
	batches, total, err := srv.repos.BatchRepo().ListBatches(ctx, medicineID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list batches")
	}

	return paged(batches, total), nil
}

func (srv *inventoryService) UpdateBatch(ctx context.Context, id int64, patch *entity.BatchPatch) (*entity.MedicineBatch, error) {
	batchRepo := srv.repos.BatchRepo()

	batch, err := batchRepo.FindBatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(batch)
	if err := validateBatch(batch); err != nil {
		return nil, err
	}
	batch.UpdatedAt = srv.clock.Now()

	if err := batchRepo.UpdateBatch(ctx, batch); err != nil {
		return nil, errors.Wrap(err, "failed to update batch")
	}

	return batch, nil
}

func (srv *inventoryService) DeleteBatch(ctx context.Context, id, by int64) error {
	if err := srv.repos.BatchRepo().SoftDeleteBatch(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete batch")
	}

	return nil
}

// ExportBatches writes every live batch, optionally of one medicine, as a workbook.
func (srv *inventoryService) ExportBatches(ctx context.Context, medicineID *int64, w io.Writer) error {
	batches, err := srv.repos.BatchRepo().ListAllBatches(ctx, medicineID)
	if err != nil {
		return errors.Wrap(err, "failed to load batches for export")
	}

	if err := srv.exporter.ExportBatches(w, batches); err != nil {
		return errors.Wrap(err, "failed to export batches")
	}

	srv.log(ctx).Info("Batches exported", slog.Int("count", len(batches)))

	return nil
}

// CreateGSTSlab inserts a slab. The HSN code must not have a live slab yet.
func (srv *inventoryService) CreateGSTSlab(ctx context.Context, slab *entity.GSTSlab) (*entity.GSTSlab, error) {
	if slab.Rate.IsNegative() {
		return nil, domainerrors.ErrValidation.WrapMessage("rate must not be negative")
	}

	slabRepo := srv.repos.GSTSlabRepo()
	if err := ensureHSNFree(ctx, slabRepo, slab.HSNCode, 0); err != nil {
		return nil, err
	}

	if err := slabRepo.CreateGSTSlab(ctx, slab); err != nil {
		return nil, errors.Wrap(err, "failed to create GST slab")
	}

	return slab, nil
}

func (srv *inventoryService) GetGSTSlab(ctx context.Context, id int64) (*entity.GSTSlab, error) {
	return srv.repos.GSTSlabRepo().FindGSTSlabByID(ctx, id)
}

func (srv *inventoryService) ListGSTSlabs(ctx context.Context, page entity.Page) (*entity.PagedResult[*entity.GSTSlab], error) {
	slabs, total, err := srv.repos.GSTSlabRepo().ListGSTSlabs(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list GST slabs")
	}

	return paged(slabs, total), nil
}

func (srv *inventoryService) UpdateGSTSlab(ctx context.Context, id int64, patch *entity.GSTSlabPatch) (*entity.GSTSlab, error) {
	slabRepo := srv.repos.GSTSlabRepo()

	slab, err := slabRepo.FindGSTSlabByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.HSNCode != nil && *patch.HSNCode != slab.HSNCode {
		if err := ensureHSNFree(ctx, slabRepo, *patch.HSNCode, id); err != nil {
			return nil, err
		}
		slab.HSNCode = *patch.HSNCode
	}
	if patch.Description != nil {
		slab.Description = *patch.Description
	}
	if patch.Rate != nil {
		if patch.Rate.IsNegative() {
			return nil, domainerrors.ErrValidation.WrapMessage("rate must not be negative")
		}
		slab.Rate = *patch.Rate
	}
	slab.UpdatedAt = srv.clock.Now()

	if err := slabRepo.UpdateGSTSlab(ctx, slab); err != nil {
		return nil, errors.Wrap(err, "failed to update GST slab")
	}

	return slab, nil
}

func (srv *inventoryService) DeleteGSTSlab(ctx context.Context, id, by int64) error {
	if err := srv.repos.GSTSlabRepo().SoftDeleteGSTSlab(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete GST slab")
	}

	return nil
}

func ensureHSNFree(ctx context.Context, slabRepo repository.GSTSlabRepository, hsnCode string, selfID int64) error {
	existing, err := slabRepo.FindGSTSlabByHSN(ctx, hsnCode)
	if errors.Is(err, domainerrors.ErrGSTSlabNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return domainerrors.ErrGSTSlabAlreadyExists.WrapMessage(hsnCode)
	}

	return nil
}
