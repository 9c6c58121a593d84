package impl

import (
	"context"
	"log/slog"

	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"go.uber.org/fx"
)

// discountService implements the DiscountUsecase interface.
type discountService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	clock     service.Clock
	logger    *slog.Logger
}

// DiscountServiceParams holds dependencies for DiscountService, injected by Fx.
type DiscountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewDiscountService is the constructor for discountService.
func NewDiscountService(params DiscountServiceParams) usecase.DiscountUsecase {
	return &discountService{
		txManager: params.TxManager,
		repos:     params.Repos,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *discountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateDiscount validates the window and every reference, then writes the
// discount with its parameters and associations atomically.
func (srv *discountService) CreateDiscount(ctx context.Context, input *usecase.CreateDiscountInput) (*entity.Discount, error) {
	if err := entity.ValidateDiscountPeriod(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	var created *entity.Discount
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()

		if err := srv.checkReferences(ctx, repoFactory, &input.DiscountTypeID, input.MedicineIDs, input.CategoryIDs); err != nil {
			return err
		}

		discount := &entity.Discount{
			Name:              input.Name,
			Description:       input.Description,
			DiscountTypeID:    input.DiscountTypeID,
			Value:             input.Value,
			StartDate:         input.StartDate,
			EndDate:           input.EndDate,
			MinPurchaseAmount: input.MinPurchaseAmount,
			MaxDiscountAmount: input.MaxDiscountAmount,
			UsageLimit:        input.UsageLimit,
		}
		if err := discountRepo.CreateDiscount(ctx, discount); err != nil {
			return err
		}

		if len(input.Parameters) > 0 {
			if err := discountRepo.ReplaceParameters(ctx, discount.ID, input.Parameters, 0); err != nil {
				return err
			}
		}
		if len(input.MedicineIDs) > 0 {
			if err := discountRepo.ReplaceMedicines(ctx, discount.ID, input.MedicineIDs, 0); err != nil {
				return err
			}
		}
		if len(input.CategoryIDs) > 0 {
			if err := discountRepo.ReplaceCategories(ctx, discount.ID, input.CategoryIDs, 0); err != nil {
				return err
			}
		}

		var err error
		created, err = discountRepo.FindDiscountByID(ctx, discount.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discount")
	}

	srv.log(ctx).Info("Discount created", slog.Int64("discountID", created.ID), slog.String("name", created.Name))

	return created, nil
}

// checkReferences verifies the discount type and the targeted medicines and categories.
func (srv *discountService) checkReferences(ctx context.Context, repoFactory repository.RepositoryFactory, typeID *int64, medicineIDs, categoryIDs []int64) error {
	lookupRepo := repoFactory.LookupRepo()

	if typeID != nil {
		if _, err := lookupRepo.FindLookupByID(ctx, entity.LookupDiscountType, *typeID); err != nil {
			return err
		}
	}
	if err := ensureMedicinesExist(ctx, repoFactory.MedicineRepo(), medicineIDs); err != nil {
		return err
	}

	return ensureLookupsExist(ctx, lookupRepo, entity.LookupCategory, categoryIDs)
}

// UpdateDiscount patches the scalars and replaces each supplied association
// set. Omitted sets are left as they are.
func (srv *discountService) UpdateDiscount(ctx context.Context, id int64, patch *entity.DiscountPatch, by int64) (*entity.Discount, error) {
	var updated *entity.Discount
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()

		discount, err := discountRepo.FindDiscountByID(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(discount)
		if err := entity.ValidateDiscountPeriod(discount.StartDate, discount.EndDate); err != nil {
			return err
		}

		var medicineIDs, categoryIDs []int64
		if patch.MedicineIDs != nil {
			medicineIDs = *patch.MedicineIDs
		}
		if patch.CategoryIDs != nil {
			categoryIDs = *patch.CategoryIDs
		}
		if err := srv.checkReferences(ctx, repoFactory, patch.DiscountTypeID, medicineIDs, categoryIDs); err != nil {
			return err
		}

		now := srv.clock.Now()
		discount.UpdatedAt = &now
		if err := discountRepo.UpdateDiscount(ctx, discount); err != nil {
			return err
		}

		if patch.Parameters != nil {
			if err := discountRepo.ReplaceParameters(ctx, id, *patch.Parameters, by); err != nil {
				return err
			}
		}
		if patch.MedicineIDs != nil {
			if err := discountRepo.ReplaceMedicines(ctx, id, medicineIDs, by); err != nil {
				return err
			}
		}
		if patch.CategoryIDs != nil {
			if err := discountRepo.ReplaceCategories(ctx, id, categoryIDs, by); err != nil {
				return err
			}
		}

		updated, err = discountRepo.FindDiscountByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update discount")
	}

	srv.log(ctx).Info("Discount updated", slog.Int64("discountID", id), slog.Int64("by", by))

	return updated, nil
}

// ListDiscounts filters on whether the current time falls inside each window.
func (srv *discountService) ListDiscounts(ctx context.Context, active *bool, page entity.Page) (*entity.PagedResult[*entity.Discount], error) {
	discounts, total, err := srv.repos.DiscountRepo().ListDiscounts(ctx, active, srv.clock.Now(), page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list discounts")
	}

	return paged(discounts, total), nil
}

func (srv *discountService) GetDiscount(ctx context.Context, id int64) (*entity.Discount, error) {
	return srv.repos.DiscountRepo().FindDiscountByID(ctx, id)
}

func (srv *discountService) DeleteDiscount(ctx context.Context, id, by int64) error {
	if err := srv.repos.DiscountRepo().SoftDeleteDiscount(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete discount")
	}

	srv.log(ctx).Info("Discount deleted", slog.Int64("discountID", id), slog.Int64("by", by))

	return nil
}

func (srv *discountService) ListParameters(ctx context.Context, discountID int64) ([]entity.DiscountParameter, error) {
	discountRepo := srv.repos.DiscountRepo()

	if _, err := discountRepo.FindDiscountByID(ctx, discountID); err != nil {
		return nil, err
	}

	return discountRepo.ListParameters(ctx, discountID)
}

func (srv *discountService) AddParameter(ctx context.Context, discountID int64, key, value string) (*entity.DiscountParameter, error) {
	discountRepo := srv.repos.DiscountRepo()

	if _, err := discountRepo.FindDiscountByID(ctx, discountID); err != nil {
		return nil, err
	}

	param := &entity.DiscountParameter{DiscountID: discountID, Key: key, Value: value}
	if err := discountRepo.CreateParameter(ctx, param); err != nil {
		return nil, errors.Wrap(err, "failed to add discount parameter")
	}

	return param, nil
}

func (srv *discountService) UpdateParameter(ctx context.Context, discountID, parameterID int64, key, value *string) (*entity.DiscountParameter, error) {
	discountRepo := srv.repos.DiscountRepo()

	param, err := discountRepo.FindParameter(ctx, discountID, parameterID)
	if err != nil {
		return nil, err
	}
	if key != nil {
		param.Key = *key
	}
	if value != nil {
		param.Value = *value
	}

	if err := discountRepo.UpdateParameter(ctx, param); err != nil {
		return nil, errors.Wrap(err, "failed to update discount parameter")
	}

	return param, nil
}

func (srv *discountService) DeleteParameter(ctx context.Context, discountID, parameterID, by int64) error {
	if err := srv.repos.DiscountRepo().SoftDeleteParameter(ctx, discountID, parameterID, by); err != nil {
		return errors.Wrap(err, "failed to delete discount parameter")
	}

	return nil
}

// AssignMedicines links medicines to a discount. Existing links are kept.
func (srv *discountService) AssignMedicines(ctx context.Context, discountID int64, medicineIDs []int64) (*entity.Discount, error) {
	return srv.assign(ctx, discountID, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureMedicinesExist(ctx, repoFactory.MedicineRepo(), medicineIDs); err != nil {
			return err
		}

		return repoFactory.DiscountRepo().AssignMedicines(ctx, discountID, medicineIDs)
	})
}

// AssignCategories links categories to a discount. Existing links are kept.
func (srv *discountService) AssignCategories(ctx context.Context, discountID int64, categoryIDs []int64) (*entity.Discount, error) {
	return srv.assign(ctx, discountID, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureLookupsExist(ctx, repoFactory.LookupRepo(), entity.LookupCategory, categoryIDs); err != nil {
			return err
		}

		return repoFactory.DiscountRepo().AssignCategories(ctx, discountID, categoryIDs)
	})
}

func (srv *discountService) assign(ctx context.Context, discountID int64, link func(repository.RepositoryFactory) error) (*entity.Discount, error) {
	var discount *entity.Discount
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()

		if _, err := discountRepo.FindDiscountByID(ctx, discountID); err != nil {
			return err
		}
		if err := link(repoFactory); err != nil {
			return err
		}

		var err error
		discount, err = discountRepo.FindDiscountByID(ctx, discountID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to assign discount targets")
	}

	return discount, nil
}

func (srv *discountService) RemoveMedicine(ctx context.Context, discountID, medicineID, by int64) error {
	if err := srv.repos.DiscountRepo().RemoveMedicine(ctx, discountID, medicineID, by); err != nil {
		return errors.Wrap(err, "failed to remove discount medicine")
	}

	return nil
}

func (srv *discountService) RemoveCategory(ctx context.Context, discountID, categoryID, by int64) error {
	if err := srv.repos.DiscountRepo().RemoveCategory(ctx, discountID, categoryID, by); err != nil {
		return errors.Wrap(err, "failed to remove discount category")
	}

	return nil
}
