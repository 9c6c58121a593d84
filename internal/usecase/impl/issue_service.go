package impl

import (
	"context"
	"log/slog"
	"strings"

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

// issueService implements the IssueUsecase interface.
type issueService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	files     *fileStorer
	clock     service.Clock
	logger    *slog.Logger
}

// IssueServiceParams holds dependencies for IssueService, injected by Fx.
type IssueServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Blobs     service.BlobStore
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewIssueService is the constructor for issueService.
func NewIssueService(params IssueServiceParams) usecase.IssueUsecase {
	return &issueService{
		txManager: params.TxManager,
		repos:     params.Repos,
		files:     newFileStorer(params.Blobs, params.Config),
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *issueService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RaiseIssue opens a ticket in a known category, optionally about one of the
// customer's orders.
func (srv *issueService) RaiseIssue(ctx context.Context, input *usecase.RaiseIssueInput) (*entity.Issue, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("description is required")
	}

	if _, err := srv.repos.UserRepo().FindUserByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if _, err := srv.repos.LookupRepo().FindLookupByID(ctx, entity.LookupIssueCategory, input.CategoryID); err != nil {
		return nil, err
	}
	if input.OrderID != nil {
		order, err := srv.repos.OrderRepo().FindOrderByID(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order.CustomerID != input.CustomerID {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order belongs to another customer")
		}
	}

	issue := &entity.Issue{
		CustomerID:  input.CustomerID,
		OrderID:     input.OrderID,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Status:      entity.IssueOpen,
		OpenedAt:    srv.clock.Now(),
	}
	if err := srv.repos.IssueRepo().CreateIssue(ctx, issue); err != nil {
		return nil, errors.Wrap(err, "failed to raise issue")
	}

	srv.log(ctx).Info("Issue raised", slog.Int64("issueID", issue.ID), slog.Int64("customerID", issue.CustomerID))

	return issue, nil
}

func (srv *issueService) GetIssue(ctx context.Context, id int64) (*entity.Issue, error) {
	return srv.repos.IssueRepo().FindIssueByID(ctx, id)
}

func (srv *issueService) ListCustomerIssues(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Issue], error) {
	issues, total, err := srv.repos.IssueRepo().ListIssuesByCustomer(ctx, customerID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list issues")
	}

	return paged(issues, total), nil
}

func (srv *issueService) ListOrderIssues(ctx context.Context, orderID int64) ([]*entity.Issue, error) {
	if _, err := srv.repos.OrderRepo().FindOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	return srv.repos.IssueRepo().ListIssuesByOrder(ctx, orderID)
}

// UpdateStatus applies a lifecycle transition. Resolving or closing stamps
// closed_at, reopening clears it.
func (srv *issueService) UpdateStatus(ctx context.Context, id int64, status entity.IssueStatus) (*entity.Issue, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidation.WrapMessage("unknown issue status " + string(status))
	}

	issueRepo := srv.repos.IssueRepo()

	issue, err := issueRepo.FindIssueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !issue.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidTransition.WrapMessage(string(issue.Status) + " -> " + string(status))
	}

	issue.Status = status
	if status.StampsClosedAt() {
		now := srv.clock.Now()
		issue.ClosedAt = &now
	} else {
		issue.ClosedAt = nil
	}

	if err := issueRepo.UpdateIssue(ctx, issue); err != nil {
		return nil, errors.Wrap(err, "failed to update issue status")
	}

	srv.log(ctx).Info("Issue status changed", slog.Int64("issueID", id), slog.String("status", string(status)))

	return issue, nil
}

// Assign hands the issue to an existing user.
func (srv *issueService) Assign(ctx context.Context, id, assigneeID int64) (*entity.Issue, error) {
	issueRepo := srv.repos.IssueRepo()

	issue, err := issueRepo.FindIssueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := srv.repos.UserRepo().FindUserByID(ctx, assigneeID); err != nil {
		return nil, err
	}

	issue.AssignedTo = &assigneeID
	if err := issueRepo.UpdateIssue(ctx, issue); err != nil {
		return nil, errors.Wrap(err, "failed to assign issue")
	}

	return issue, nil
}

func (srv *issueService) DeleteIssue(ctx context.Context, id, by int64) error {
	if err := srv.repos.IssueRepo().SoftDeleteIssue(ctx, id, by); err != nil {
		return errors.Wrap(err, "failed to delete issue")
	}

	return nil
}

// AddMessage appends a text message to the conversation of a live issue.
func (srv *issueService) AddMessage(ctx context.Context, issueID, senderID int64, message string) (*entity.IssueMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domainerrors.ErrValidation.WrapMessage("message is required")
	}

	issueRepo := srv.repos.IssueRepo()
	if _, err := issueRepo.FindIssueByID(ctx, issueID); err != nil {
		return nil, err
	}

	msg := &entity.IssueMessage{
		IssueID:     issueID,
		SenderID:    senderID,
		Message:     message,
		MessageType: entity.IssueMessageText,
		CreatedAt:   srv.clock.Now(),
	}
	if err := issueRepo.CreateMessage(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "failed to add issue message")
	}

	return msg, nil
}

func (srv *issueService) ListMessages(ctx context.Context, issueID int64) ([]*entity.IssueMessage, error) {
	issueRepo := srv.repos.IssueRepo()
	if _, err := issueRepo.FindIssueByID(ctx, issueID); err != nil {
		return nil, err
	}

	return issueRepo.ListMessages(ctx, issueID)
}

// UploadAttachment stores a document and links it to a message of the issue.
func (srv *issueService) UploadAttachment(ctx context.Context, issueID, messageID, uploadedBy int64, file *usecase.FileUpload) (*entity.IssueAttachment, error) {
	var attachment *entity.IssueAttachment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		issueRepo := repoFactory.IssueRepo()

		if _, err := issueRepo.FindMessageByID(ctx, issueID, messageID); err != nil {
			return err
		}

		asset, err := srv.files.store(ctx, repoFactory.FileRepo(), uploadedBy, file, documentTypes)
		if err != nil {
			return err
		}

		attachment = &entity.IssueAttachment{
			MessageID:   messageID,
			FileAssetID: asset.ID,
			FileName:    asset.FileName,
			FileType:    asset.ContentType,
			UploadedAt:  srv.clock.Now(),
		}

		return issueRepo.CreateAttachment(ctx, attachment)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload issue attachment")
	}

	srv.log(ctx).Info("Issue attachment uploaded",
		slog.Int64("issueID", issueID),
		slog.Int64("messageID", messageID),
		slog.Int64("fileID", attachment.FileAssetID),
	)

	return attachment, nil
}

func (srv *issueService) ListAttachments(ctx context.Context, issueID, messageID int64) ([]entity.IssueAttachment, error) {
	issueRepo := srv.repos.IssueRepo()
	if _, err := issueRepo.FindMessageByID(ctx, issueID, messageID); err != nil {
		return nil, err
	}

	return issueRepo.ListAttachments(ctx, messageID)
}
