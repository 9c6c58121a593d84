package usecase

import (
	"context"

	"medico/internal/domain/entity"
)

// RaiseIssueInput defines a new support issue.
type RaiseIssueInput struct {
	CustomerID  int64
	OrderID     *int64
	CategoryID  int64
	Description string
}

// IssueUsecase defines the support issue operations.
type IssueUsecase interface {
	RaiseIssue(ctx context.Context, input *RaiseIssueInput) (*entity.Issue, error)
	GetIssue(ctx context.Context, id int64) (*entity.Issue, error)
	ListCustomerIssues(ctx context.Context, customerID int64, page entity.Page) (*entity.PagedResult[*entity.Issue], error)
	ListOrderIssues(ctx context.Context, orderID int64) ([]*entity.Issue, error)
	UpdateStatus(ctx context.Context, id int64, status entity.IssueStatus) (*entity.Issue, error)
	Assign(ctx context.Context, id, assigneeID int64) (*entity.Issue, error)
	DeleteIssue(ctx context.Context, id, by int64) error

	AddMessage(ctx context.Context, issueID, senderID int64, message string) (*entity.IssueMessage, error)
	ListMessages(ctx context.Context, issueID int64) ([]*entity.IssueMessage, error)
	// UploadAttachment stores the file and links it to a message of the issue.
	UploadAttachment(ctx context.Context, issueID, messageID, uploadedBy int64, file *FileUpload) (*entity.IssueAttachment, error)
	ListAttachments(ctx context.Context, issueID, messageID int64) ([]entity.IssueAttachment, error)
}
