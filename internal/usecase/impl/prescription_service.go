package impl

import (
	"context"
	"log/slog"

	"medico/config"
	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"go.uber.org/fx"
)

// prescriptionService implements the PrescriptionUsecase interface.
type prescriptionService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	files     *fileStorer
	clock     service.Clock
	logger    *slog.Logger
}

// PrescriptionServiceParams holds dependencies for PrescriptionService, injected by Fx.
type PrescriptionServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Blobs     service.BlobStore
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPrescriptionService is the constructor for prescriptionService.
func NewPrescriptionService(params PrescriptionServiceParams) usecase.PrescriptionUsecase {
	return &prescriptionService{
		txManager: params.TxManager,
		repos:     params.Repos,
		files:     newFileStorer(params.Blobs, params.Config),
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *prescriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload stores a PNG, JPEG or PDF document and records it as pending review.
func (srv *prescriptionService) Upload(ctx context.Context, customerID int64, file *usecase.FileUpload) (*entity.Prescription, error) {
	if _, err := srv.repos.UserRepo().FindUserByID(ctx, customerID); err != nil {
		return nil, errors.Wrap(err, "failed to find prescription owner")
	}

	var prescription *entity.Prescription
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		asset, err := srv.files.store(ctx, repoFactory.FileRepo(), customerID, file, documentTypes)
		if err != nil {
			return err
		}

		prescription = &entity.Prescription{
			CustomerID:  customerID,
			FileAssetID: asset.ID,
			Status:      entity.PrescriptionPending,
			UploadedAt:  srv.clock.Now(),
		}

		return repoFactory.PrescriptionRepo().CreatePrescription(ctx, prescription)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload prescription")
	}

	srv.log(ctx).Info("Prescription uploaded",
		slog.Int64("prescriptionID", prescription.ID),
		slog.Int64("customerID", customerID),
	)

	return prescription, nil
}

func (srv *prescriptionService) List(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Prescription], error) {
	prescriptions, total, err := srv.repos.PrescriptionRepo().ListPrescriptionsByCustomer(ctx, customerID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list prescriptions")
	}

	return paged(prescriptions, total), nil
}

func (srv *prescriptionService) Get(ctx context.Context, id int64) (*entity.Prescription, error) {
	return srv.repos.PrescriptionRepo().FindPrescriptionByID(ctx, id)
}

// Verify records a verified or rejected decision on a pending prescription.
func (srv *prescriptionService) Verify(ctx context.Context, id int64, status entity.PrescriptionStatus, notes string, by int64) (*entity.Prescription, error) {
	if !status.IsDecision() {
		return nil, domainerrors.ErrValidation.WrapMessage("status must be verified or rejected")
	}

	prescriptionRepo := srv.repos.PrescriptionRepo()

	prescription, err := prescriptionRepo.FindPrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !prescription.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrPrescriptionAlreadyDecided
	}

	now := srv.clock.Now()
	prescription.Status = status
	prescription.Notes = notes
	prescription.VerifiedBy = &by
	prescription.VerifiedAt = &now

	if err := prescriptionRepo.SaveDecision(ctx, prescription); err != nil {
		return nil, errors.Wrap(err, "failed to verify prescription")
	}

	srv.log(ctx).Info("Prescription reviewed",
		slog.Int64("prescriptionID", id),
		slog.String("status", string(status)),
		slog.Int64("by", by),
	)

	return prescription, nil
}

func (srv *prescriptionService) Delete(ctx context.Context, id, by int64) error {
	if err := srv.repos.PrescriptionRepo().SoftDeletePrescription(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete prescription")
	}

	return nil
}
