package impl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	mockservice "medico/internal/mocks/service"
	"medico/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type issueFixture struct {
	txManager *mockrepository.MockTransactionManager
	issues    *mockrepository.MockIssueRepository
	users     *mockrepository.MockUserRepository
	lookups   *mockrepository.MockLookupRepository
	orders    *mockrepository.MockOrderRepository
	files     *mockrepository.MockFileRepository
	blobs     *mockservice.MockBlobStore
	repos     *mockrepository.Repositories
	service   usecase.IssueUsecase
}

func newIssueFixture(t *testing.T) *issueFixture {
	f := &issueFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		issues:    mockrepository.NewMockIssueRepository(t),
		users:     mockrepository.NewMockUserRepository(t),
		lookups:   mockrepository.NewMockLookupRepository(t),
		orders:    mockrepository.NewMockOrderRepository(t),
		files:     mockrepository.NewMockFileRepository(t),
		blobs:     mockservice.NewMockBlobStore(t),
	}
	f.repos = &mockrepository.Repositories{
		T:      t,
		Issue:  f.issues,
		User:   f.users,
		Lookup: f.lookups,
		Order:  f.orders,
		File:   f.files,
	}
	f.service = NewIssueService(IssueServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Blobs:     f.blobs,
		Clock:     fixedClock(),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	return f
}

func TestIssueService_RaiseIssue(t *testing.T) {
	f := newIssueFixture(t)
	orderID := int64(30)

	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.lookups.On("FindLookupByID", mock.Anything, entity.LookupIssueCategory, int64(1)).
		Return(&entity.Lookup{ID: 1, Name: "delivery"}, nil).Once()
	f.orders.On("FindOrderByID", mock.Anything, orderID).Return(pendingOrder(entity.OrderShipped), nil).Once()
	f.issues.On("CreateIssue", mock.Anything, mock.MatchedBy(func(i *entity.Issue) bool {
		return i.Status == entity.IssueOpen && i.OpenedAt.Equal(testNow) && *i.OrderID == orderID
	})).Return(nil).Once()

	issue, err := f.service.RaiseIssue(context.Background(), &usecase.RaiseIssueInput{
		CustomerID:  2,
		OrderID:     &orderID,
		CategoryID:  1,
		Description: "Package arrived damaged",
	})

	require.NoError(t, err)
	assert.Nil(t, issue.ClosedAt)
}

func TestIssueService_RaiseIssue_ForeignOrder(t *testing.T) {
	f := newIssueFixture(t)
	orderID := int64(30)

	f.users.On("FindUserByID", mock.Anything, int64(5)).Return(&entity.User{ID: 5}, nil).Once()
	f.lookups.On("FindLookupByID", mock.Anything, entity.LookupIssueCategory, int64(1)).Return(&entity.Lookup{ID: 1}, nil).Once()
	f.orders.On("FindOrderByID", mock.Anything, orderID).Return(pendingOrder(entity.OrderShipped), nil).Once()

	_, err := f.service.RaiseIssue(context.Background(), &usecase.RaiseIssueInput{
		CustomerID:  5,
		OrderID:     &orderID,
		CategoryID:  1,
		Description: "Where is my order?",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
	f.issues.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
}

func TestIssueService_UpdateStatus(t *testing.T) {
	closedAt := testNow.Add(-48 * time.Hour)

	tests := []struct {
		name       string
		from       entity.IssueStatus
		to         entity.IssueStatus
		wantErr    error
		wantClosed bool
	}{
		{name: "resolve stamps closing time", from: entity.IssueInProgress, to: entity.IssueResolved, wantClosed: true},
		{name: "reopen clears closing time", from: entity.IssueResolved, to: entity.IssueInProgress},
		{name: "closed cannot reopen", from: entity.IssueClosed, to: entity.IssueOpen, wantErr: domainerrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIssueFixture(t)
			issue := &entity.Issue{ID: 4, CustomerID: 2, Status: tt.from}
			if tt.from.StampsClosedAt() {
				issue.ClosedAt = &closedAt
			}

			f.issues.On("FindIssueByID", mock.Anything, int64(4)).Return(issue, nil).Once()
			if tt.wantErr == nil {
				f.issues.On("UpdateIssue", mock.Anything, issue).Return(nil).Once()
			}

			got, err := f.service.UpdateStatus(context.Background(), 4, tt.to)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			if tt.wantClosed {
				require.NotNil(t, got.ClosedAt)
				assert.Equal(t, testNow, *got.ClosedAt)
			} else {
				assert.Nil(t, got.ClosedAt)
			}
		})
	}
}

func TestIssueService_AddMessage_Empty(t *testing.T) {
	f := newIssueFixture(t)

	_, err := f.service.AddMessage(context.Background(), 4, 2, "   ")

	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestIssueService_UploadAttachment(t *testing.T) {
	f := newIssueFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.issues.On("FindMessageByID", mock.Anything, int64(4), int64(10)).
		Return(&entity.IssueMessage{ID: 10, IssueID: 4}, nil).Once()
	f.blobs.On("Exists", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()
	f.files.On("CreateFileAsset", mock.Anything, mock.MatchedBy(func(a *entity.FileAsset) bool {
		return a.ContentType == "image/png" && a.SizeBytes == int64(len(pngHeader))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.FileAsset).ID = 55
	}).Return(nil).Once()
	f.issues.On("CreateAttachment", mock.Anything, mock.MatchedBy(func(a *entity.IssueAttachment) bool {
		return a.MessageID == 10 && a.FileAssetID == 55 && a.FileType == "image/png"
	})).Return(nil).Once()

	attachment, err := f.service.UploadAttachment(context.Background(), 4, 10, 2, &usecase.FileUpload{
		FileName: "damage.png",
		Size:     int64(len(pngHeader)),
		Content:  bytes.NewReader(pngHeader),
	})

	require.NoError(t, err)
	assert.Equal(t, "damage.png", attachment.FileName)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueService_UploadAttachment_UnsupportedType(t *testing.T) {
	f := newIssueFixture(t)

	f.txManager.OnExecute(f.repos).Once()
	f.issues.On("FindMessageByID", mock.Anything, int64(4), int64(10)).
		Return(&entity.IssueMessage{ID: 10, IssueID: 4}, nil).Once()

	_, err := f.service.UploadAttachment(context.Background(), 4, 10, 2, &usecase.FileUpload{
		FileName: "notes.txt",
		Content:  bytes.NewReader([]byte("plain text is not accepted")),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedFileType))
	f.files.AssertNotCalled(t, "CreateFileAsset", mock.Anything, mock.Anything)
}
