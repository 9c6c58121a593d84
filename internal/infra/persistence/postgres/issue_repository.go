package postgres

import (
	"context"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// issueRepository implements the domain.IssueRepository interface.
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository is the constructor for issueRepository.
func NewIssueRepository(db *gorm.DB) repository.IssueRepository {
	return &issueRepository{db: db}
}

func (repo *issueRepository) CreateIssue(ctx context.Context, issue *entity.Issue) error {
	issueM := fromIssueDomain(issue)

	if err := repo.db.WithContext(ctx).Create(issueM).Error; err != nil {
		return writeError(err, nil, "create issue")
	}
	issue.ID = issueM.ID

	return nil
}

func (repo *issueRepository) FindIssueByID(ctx context.Context, id int64) (*entity.Issue, error) {
	var issueM model.IssueModel
	if err := repo.db.WithContext(ctx).Scopes(live).Where("id = ?", id).First(&issueM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrIssueNotFound, "find issue by ID")
	}

	return toIssueDomain(&issueM), nil
}

// ListIssuesByCustomer returns a page of a customer's issues, newest first.
func (repo *issueRepository) ListIssuesByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Issue, int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).Model(&model.IssueModel{}).Scopes(live).
		Where("customer_id = ?", customerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count issues")
	}

	var issueModels []model.IssueModel
	err = repo.db.WithContext(ctx).Scopes(live, paginate(page)).
		Where("customer_id = ?", customerID).
		Order("opened_at DESC, id DESC").
		Find(&issueModels).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list issues")
	}

	return toIssuesDomain(issueModels), total, nil
}

// ListIssuesByOrder returns the live issues raised against an order.
func (repo *issueRepository) ListIssuesByOrder(ctx context.Context, orderID int64) ([]*entity.Issue, error) {
	var issueModels []model.IssueModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("order_id = ?", orderID).
		Order("opened_at DESC, id DESC").
		Find(&issueModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list order issues")
	}

	return toIssuesDomain(issueModels), nil
}

func (repo *issueRepository) UpdateIssue(ctx context.Context, issue *entity.Issue) error {
	result := repo.db.WithContext(ctx).Model(&model.IssueModel{}).
		Scopes(live).
		Where("id = ?", issue.ID).
		Updates(map[string]any{
			"status":      string(issue.Status),
			"assigned_to": issue.AssignedTo,
			"closed_at":   issue.ClosedAt,
		})
	if result.Error != nil {
		return writeError(result.Error, nil, "update issue")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrIssueNotFound.WrapMessage("update issue")
	}

	return nil
}

func (repo *issueRepository) SoftDeleteIssue(ctx context.Context, id, deletedBy int64) error {
	return softDelete(ctx, repo.db, model.IssueModel{}.TableName(), id, deletedBy, domainerrors.ErrIssueNotFound)
}

func (repo *issueRepository) CreateMessage(ctx context.Context, message *entity.IssueMessage) error {
	messageM := &model.IssueMessageModel{
		IssueID:     message.IssueID,
		SenderID:    message.SenderID,
		Message:     message.Message,
		MessageType: message.MessageType,
		CreatedAt:   message.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return writeError(err, nil, "create issue message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// FindMessageByID retrieves a live message that belongs to the issue.
func (repo *issueRepository) FindMessageByID(ctx context.Context, issueID, messageID int64) (*entity.IssueMessage, error) {
	var messageM model.IssueMessageModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("id = ? AND issue_id = ?", messageID, issueID).
		First(&messageM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrIssueMessageNotFound, "find issue message")
	}

	message := toIssueMessageDomain(&messageM)
	message.Attachments, err = repo.ListAttachments(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// ListMessages returns the conversation of an issue, oldest first.
func (repo *issueRepository) ListMessages(ctx context.Context, issueID int64) ([]*entity.IssueMessage, error) {
	var messageModels []model.IssueMessageModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("issue_id = ?", issueID).
		Order("created_at, id").
		Find(&messageModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list issue messages")
	}
	if len(messageModels) == 0 {
		return []*entity.IssueMessage{}, nil
	}

	messages := make([]*entity.IssueMessage, 0, len(messageModels))
	byID := make(map[int64]*entity.IssueMessage, len(messageModels))
	ids := make([]int64, 0, len(messageModels))
	for i := range messageModels {
		message := toIssueMessageDomain(&messageModels[i])
		messages = append(messages, message)
		byID[message.ID] = message
		ids = append(ids, message.ID)
	}

	var attachmentModels []model.IssueAttachmentModel
	err = repo.db.WithContext(ctx).Scopes(live).
		Where("message_id IN ?", ids).
		Order("id").
		Find(&attachmentModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list issue attachments")
	}
	for _, a := range attachmentModels {
		m := byID[a.MessageID]
		m.Attachments = append(m.Attachments, toIssueAttachmentDomain(a))
	}

	return messages, nil
}

func (repo *issueRepository) CreateAttachment(ctx context.Context, attachment *entity.IssueAttachment) error {
	attachmentM := &model.IssueAttachmentModel{
		MessageID:   attachment.MessageID,
		FileAssetID: attachment.FileAssetID,
		FileName:    attachment.FileName,
		FileType:    attachment.FileType,
		UploadedAt:  attachment.UploadedAt,
	}

	if err := repo.db.WithContext(ctx).Create(attachmentM).Error; err != nil {
		return writeError(err, nil, "create issue attachment")
	}
	attachment.ID = attachmentM.ID

	return nil
}

func (repo *issueRepository) ListAttachments(ctx context.Context, messageID int64) ([]entity.IssueAttachment, error) {
	var attachmentModels []model.IssueAttachmentModel
	err := repo.db.WithContext(ctx).Scopes(live).
		Where("message_id = ?", messageID).
		Order("id").
		Find(&attachmentModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list issue attachments")
	}

	attachments := make([]entity.IssueAttachment, 0, len(attachmentModels))
	for _, a := range attachmentModels {
		attachments = append(attachments, toIssueAttachmentDomain(a))
	}

	return attachments, nil
}

// --- Mapper Functions ---

func toIssueDomain(data *model.IssueModel) *entity.Issue {
	if data == nil {
		return nil
	}

	return &entity.Issue{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		OrderID:     data.OrderID,
		CategoryID:  data.CategoryID,
		Description: data.Description,
		Status:      entity.IssueStatus(data.Status),
		AssignedTo:  data.AssignedTo,
		OpenedAt:    data.OpenedAt,
		ClosedAt:    data.ClosedAt,
	}
}

func toIssuesDomain(data []model.IssueModel) []*entity.Issue {
	issues := make([]*entity.Issue, 0, len(data))
	for i := range data {
		issues = append(issues, toIssueDomain(&data[i]))
	}

	return issues
}

func fromIssueDomain(data *entity.Issue) *model.IssueModel {
	if data == nil {
		return nil
	}

	return &model.IssueModel{
		ID:          data.ID,
		CustomerID:  data.CustomerID,
		OrderID:     data.OrderID,
		CategoryID:  data.CategoryID,
		Description: data.Description,
		Status:      string(data.Status),
		AssignedTo:  data.AssignedTo,
		OpenedAt:    data.OpenedAt,
		ClosedAt:    data.ClosedAt,
	}
}

func toIssueMessageDomain(data *model.IssueMessageModel) *entity.IssueMessage {
	return &entity.IssueMessage{
		ID:          data.ID,
		IssueID:     data.IssueID,
		SenderID:    data.SenderID,
		Message:     data.Message,
		MessageType: data.MessageType,
		CreatedAt:   data.CreatedAt,
	}
}

func toIssueAttachmentDomain(data model.IssueAttachmentModel) entity.IssueAttachment {
	return entity.IssueAttachment{
		ID:          data.ID,
		MessageID:   data.MessageID,
		FileAssetID: data.FileAssetID,
		FileName:    data.FileName,
		FileType:    data.FileType,
		UploadedAt:  data.UploadedAt,
	}
}
