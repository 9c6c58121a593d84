package impl

import (
	"bytes"
	"context"
	"testing"

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

type prescriptionFixture struct {
	txManager     *mockrepository.MockTransactionManager
	prescriptions *mockrepository.MockPrescriptionRepository
	users         *mockrepository.MockUserRepository
	files         *mockrepository.MockFileRepository
	blobs         *mockservice.MockBlobStore
	repos         *mockrepository.Repositories
	service       usecase.PrescriptionUsecase
}

func newPrescriptionFixture(t *testing.T) *prescriptionFixture {
	f := &prescriptionFixture{
		txManager:     mockrepository.NewMockTransactionManager(t),
		prescriptions: mockrepository.NewMockPrescriptionRepository(t),
		users:         mockrepository.NewMockUserRepository(t),
		files:         mockrepository.NewMockFileRepository(t),
		blobs:         mockservice.NewMockBlobStore(t),
	}
	f.repos = &mockrepository.Repositories{T: t, Prescription: f.prescriptions, User: f.users, File: f.files}
	f.service = NewPrescriptionService(PrescriptionServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Blobs:     f.blobs,
		Clock:     fixedClock(),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	return f
}

func TestPrescriptionService_Upload(t *testing.T) {
	f := newPrescriptionFixture(t)
	pdf := []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")

	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.blobs.On("Exists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	f.blobs.On("Put", mock.Anything, mock.AnythingOfType("string"), "application/pdf", mock.Anything).Return(nil).Once()
	f.files.On("CreateFileAsset", mock.Anything, mock.AnythingOfType("*entity.FileAsset")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.FileAsset).ID = 21
	}).Return(nil).Once()
	f.prescriptions.On("CreatePrescription", mock.Anything, mock.MatchedBy(func(p *entity.Prescription) bool {
		return p.FileAssetID == 21 && p.Status == entity.PrescriptionPending && p.UploadedAt.Equal(testNow)
	})).Return(nil).Once()

	prescription, err := f.service.Upload(context.Background(), 2, &usecase.FileUpload{
		FileName: "rx.pdf",
		Size:     int64(len(pdf)),
		Content:  bytes.NewReader(pdf),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), prescription.CustomerID)
}

func TestPrescriptionService_Verify(t *testing.T) {
	f := newPrescriptionFixture(t)

	f.prescriptions.On("FindPrescriptionByID", mock.Anything, int64(14)).
		Return(&entity.Prescription{ID: 14, CustomerID: 2, Status: entity.PrescriptionPending}, nil).Once()
	f.prescriptions.On("SaveDecision", mock.Anything, mock.AnythingOfType("*entity.Prescription")).Return(nil).Once()

	prescription, err := f.service.Verify(context.Background(), 14, entity.PrescriptionVerified, "Dosage confirmed", 7)

	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionVerified, prescription.Status)
	require.NotNil(t, prescription.VerifiedBy)
	assert.Equal(t, int64(7), *prescription.VerifiedBy)
	assert.Equal(t, testNow, *prescription.VerifiedAt)
}

func TestPrescriptionService_Verify_AlreadyDecided(t *testing.T) {
	f := newPrescriptionFixture(t)

	f.prescriptions.On("FindPrescriptionByID", mock.Anything, int64(14)).
		Return(&entity.Prescription{ID: 14, Status: entity.PrescriptionRejected}, nil).Once()

	_, err := f.service.Verify(context.Background(), 14, entity.PrescriptionVerified, "", 7)

	assert.True(t, errors.Is(err, domainerrors.ErrPrescriptionAlreadyDecided))
	f.prescriptions.AssertNotCalled(t, "SaveDecision", mock.Anything, mock.Anything)
}

func TestPrescriptionService_Verify_PendingIsNotADecision(t *testing.T) {
	f := newPrescriptionFixture(t)

	_, err := f.service.Verify(context.Background(), 14, entity.PrescriptionPending, "", 7)

	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}
