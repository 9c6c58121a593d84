package impl

import (
	"context"
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

// lookupConflicts pairs each kind with its duplicate-name error.
var lookupConflicts = map[entity.LookupKind]*domainerrors.BaseError{
	entity.LookupCategory:      domainerrors.ErrCategoryAlreadyExists,
	entity.LookupTag:           domainerrors.ErrTagAlreadyExists,
	entity.LookupSideEffect:    domainerrors.ErrSideEffectAlreadyExists,
	entity.LookupAlternative:   domainerrors.ErrAlternativeAlreadyExists,
	entity.LookupDiscountType:  domainerrors.ErrDiscountTypeAlreadyExists,
	entity.LookupIssueCategory: domainerrors.ErrIssueCategoryAlreadyExists,
	entity.LookupAddressType:   domainerrors.ErrAddressTypeAlreadyExists,
}

// lookupService implements the LookupUsecase interface for every lookup kind.
type lookupService struct {
	repos  repository.RepositoryFactory
	clock  service.Clock
	logger *slog.Logger
}

// LookupServiceParams holds dependencies for LookupService, injected by Fx.
type LookupServiceParams struct {
	fx.In

	Repos  repository.RepositoryFactory
	Clock  service.Clock
	Logger *slog.Logger
}

// NewLookupService is the constructor for lookupService.
func NewLookupService(params LookupServiceParams) usecase.LookupUsecase {
	return &lookupService{
		repos:  params.Repos,
		clock:  params.Clock,
		logger: params.Logger,
	}
}

func (srv *lookupService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateLookup checks that no live record of the kind has the name, then inserts it.
func (srv *lookupService) CreateLookup(ctx context.Context, kind entity.LookupKind, name, description string) (*entity.Lookup, error) {
	if !kind.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown lookup kind")
	}

	lookupRepo := srv.repos.LookupRepo()
	if err := srv.ensureNameFree(ctx, lookupRepo, kind, name, 0); err != nil {
		return nil, err
	}

	lookup := &entity.Lookup{Kind: kind, Name: name, Description: description}
	if err := lookupRepo.CreateLookup(ctx, lookup); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", kind)
	}

	srv.log(ctx).Info("Lookup created", slog.String("kind", kind.String()), slog.Int64("id", lookup.ID))

	return lookup, nil
}

func (srv *lookupService) GetLookup(ctx context.Context, kind entity.LookupKind, id int64) (*entity.Lookup, error) {
	return srv.repos.LookupRepo().FindLookupByID(ctx, kind, id)
}

func (srv *lookupService) ListLookups(ctx context.Context, kind entity.LookupKind, page entity.Page) (*entity.PagedResult[*entity.Lookup], error) {
	lookups, total, err := srv.repos.LookupRepo().ListLookups(ctx, kind, page)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", kind)
	}

	return paged(lookups, total), nil
}

// UpdateLookup patches the name and description. A rename must stay unique.
func (srv *lookupService) UpdateLookup(ctx context.Context, kind entity.LookupKind, id int64, patch *entity.LookupPatch) (*entity.Lookup, error) {
	lookupRepo := srv.repos.LookupRepo()

	lookup, err := lookupRepo.FindLookupByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != lookup.Name {
		if err := srv.ensureNameFree(ctx, lookupRepo, kind, *patch.Name, id); err != nil {
			return nil, err
		}
		lookup.Name = *patch.Name
	}
	if patch.Description != nil {
		lookup.Description = *patch.Description
	}
	lookup.UpdatedAt = srv.clock.Now()

	if err := lookupRepo.UpdateLookup(ctx, lookup); err != nil {
		return nil, errors.Wrapf(err, "failed to update %s", kind)
	}

	return lookup, nil
}

// DeleteLookup soft-deletes a record. Deleting it again is a Conflict.
func (srv *lookupService) DeleteLookup(ctx context.Context, kind entity.LookupKind, id, deletedBy int64) error {
	if err := srv.repos.LookupRepo().SoftDeleteLookup(ctx, kind, id, deletedBy); err != nil {
		return errors.Wrapf(err, "failed to delete %s", kind)
	}

	srv.log(ctx).Info("Lookup deleted", slog.String("kind", kind.String()), slog.Int64("id", id), slog.Int64("by", deletedBy))

	return nil
}

func (srv *lookupService) ensureNameFree(ctx context.Context, lookupRepo repository.LookupRepository, kind entity.LookupKind, name string, selfID int64) error {
	existing, err := lookupRepo.FindLookupByName(ctx, kind, name)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return lookupConflicts[kind].WrapMessage(name)
	}

	return nil
}
