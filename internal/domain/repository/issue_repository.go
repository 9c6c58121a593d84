package repository

import (
	"context"

	"medico/internal/domain/entity"
)

// IssueRepository defines the persistence of support issues and their conversation.
type IssueRepository interface {
	CreateIssue(ctx context.Context, issue *entity.Issue) error
	FindIssueByID(ctx context.Context, id int64) (*entity.Issue, error)
	ListIssuesByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Issue, int64, error)
	ListIssuesByOrder(ctx context.Context, orderID int64) ([]*entity.Issue, error)

	// UpdateIssue stores the status, assignee and closing time of an issue.
	UpdateIssue(ctx context.Context, issue *entity.Issue) error

	SoftDeleteIssue(ctx context.Context, id, deletedBy int64) error

	CreateMessage(ctx context.Context, message *entity.IssueMessage) error
	FindMessageByID(ctx context.Context, issueID, messageID int64) (*entity.IssueMessage, error)

	// ListMessages returns the live messages of an issue with their attachments, oldest first.
	ListMessages(ctx context.Context, issueID int64) ([]*entity.IssueMessage, error)

	CreateAttachment(ctx context.Context, attachment *entity.IssueAttachment) error
	ListAttachments(ctx context.Context, messageID int64) ([]entity.IssueAttachment, error)
}

// FileRepository defines the persistence of file asset metadata.
type FileRepository interface {
	CreateFileAsset(ctx context.Context, asset *entity.FileAsset) error
	FindFileAssetByID(ctx context.Context, id int64) (*entity.FileAsset, error)

	// FindFileAssetsByIDs returns the assets in the order of ids. Returns ErrFileNotFound if any is missing.
	FindFileAssetsByIDs(ctx context.Context, ids []int64) ([]*entity.FileAsset, error)
}
