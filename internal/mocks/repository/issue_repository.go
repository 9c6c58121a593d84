package mockrepository

import (
	"context"
	"testing"

	"medico/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockIssueRepository is a mock implementation of repository.IssueRepository.
type MockIssueRepository struct {
	mock.Mock
}

// NewMockIssueRepository creates a mock that asserts its expectations when the test ends.
func NewMockIssueRepository(t *testing.T) *MockIssueRepository {
	m := &MockIssueRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIssueRepository) CreateIssue(ctx context.Context, issue *entity.Issue) error {
	args := m.Called(ctx, issue)

	return args.Error(0)
}

func (m *MockIssueRepository) FindIssueByID(ctx context.Context, id int64) (*entity.Issue, error) {
	args := m.Called(ctx, id)

	return get[*entity.Issue](args, 0), args.Error(1)
}

func (m *MockIssueRepository) ListIssuesByCustomer(ctx context.Context, customerID int64, page entity.Page) ([]*entity.Issue, int64, error) {
	args := m.Called(ctx, customerID, page)

	return get[[]*entity.Issue](args, 0), get[int64](args, 1), args.Error(2)
}

func (m *MockIssueRepository) ListIssuesByOrder(ctx context.Context, orderID int64) ([]*entity.Issue, error) {
	args := m.Called(ctx, orderID)

	return get[[]*entity.Issue](args, 0), args.Error(1)
}

func (m *MockIssueRepository) UpdateIssue(ctx context.Context, issue *entity.Issue) error {
	args := m.Called(ctx, issue)

	return args.Error(0)
}

func (m *MockIssueRepository) SoftDeleteIssue(ctx context.Context, id int64, deletedBy int64) error {
	args := m.Called(ctx, id, deletedBy)

	return args.Error(0)
}

func (m *MockIssueRepository) CreateMessage(ctx context.Context, message *entity.IssueMessage) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}

func (m *MockIssueRepository) FindMessageByID(ctx context.Context, issueID int64, messageID int64) (*entity.IssueMessage, error) {
	args := m.Called(ctx, issueID, messageID)

	return get[*entity.IssueMessage](args, 0), args.Error(1)
}

func (m *MockIssueRepository) ListMessages(ctx context.Context, issueID int64) ([]*entity.IssueMessage, error) {
	args := m.Called(ctx, issueID)

	return get[[]*entity.IssueMessage](args, 0), args.Error(1)
}

func (m *MockIssueRepository) CreateAttachment(ctx context.Context, attachment *entity.IssueAttachment) error {
	args := m.Called(ctx, attachment)

	return args.Error(0)
}

func (m *MockIssueRepository) ListAttachments(ctx context.Context, messageID int64) ([]entity.IssueAttachment, error) {
	args := m.Called(ctx, messageID)

	return get[[]entity.IssueAttachment](args, 0), args.Error(1)
}

// MockFileRepository is a mock implementation of repository.FileRepository.
type MockFileRepository struct {
	mock.Mock
}

// NewMockFileRepository creates a mock that asserts its expectations when the test ends.
func NewMockFileRepository(t *testing.T) *MockFileRepository {
	m := &MockFileRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFileRepository) CreateFileAsset(ctx context.Context, asset *entity.FileAsset) error {
	args := m.Called(ctx, asset)

	return args.Error(0)
}

func (m *MockFileRepository) FindFileAssetByID(ctx context.Context, id int64) (*entity.FileAsset, error) {
	args := m.Called(ctx, id)

	return get[*entity.FileAsset](args, 0), args.Error(1)
}

func (m *MockFileRepository) FindFileAssetsByIDs(ctx context.Context, ids []int64) ([]*entity.FileAsset, error) {
	args := m.Called(ctx, ids)

	return get[[]*entity.FileAsset](args, 0), args.Error(1)
}
