package impl

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
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

type fileFixture struct {
	txManager *mockrepository.MockTransactionManager
	files     *mockrepository.MockFileRepository
	users     *mockrepository.MockUserRepository
	blobs     *mockservice.MockBlobStore
	repos     *mockrepository.Repositories
	service   usecase.FileUsecase
}

func newFileFixture(t *testing.T) *fileFixture {
	f := &fileFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		files:     mockrepository.NewMockFileRepository(t),
		users:     mockrepository.NewMockUserRepository(t),
		blobs:     mockservice.NewMockBlobStore(t),
	}
	f.repos = &mockrepository.Repositories{T: t, File: f.files, User: f.users}
	f.service = NewFileService(FileServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Blobs:     f.blobs,
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	return f
}

func textUpload(name, body string) *usecase.FileUpload {
	return &usecase.FileUpload{FileName: name, Size: int64(len(body)), Content: strings.NewReader(body)}
}

func TestFileService_UploadMany_TooManyFiles(t *testing.T) {
	f := newFileFixture(t)

	_, err := f.service.UploadMany(context.Background(), 2, []*usecase.FileUpload{
		textUpload("a.txt", "a"),
		textUpload("b.txt", "b"),
		textUpload("c.txt", "c"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrTooManyFiles))
}

func TestFileService_UploadMany_TooLarge(t *testing.T) {
	f := newFileFixture(t)

	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.txManager.OnExecute(f.repos).Once()

	_, err := f.service.UploadMany(context.Background(), 2, []*usecase.FileUpload{
		{FileName: "big.bin", Size: 2 << 20, Content: bytes.NewReader(make([]byte, 16))},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrFileTooLarge))
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_StoresContentAddressedBlob(t *testing.T) {
	f := newFileFixture(t)
	// sha256("hello")
	key := "sha256/2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	f.users.On("FindUserByID", mock.Anything, int64(2)).Return(&entity.User{ID: 2}, nil).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.blobs.On("Exists", mock.Anything, key).Return(false, nil).Once()
	f.blobs.On("Put", mock.Anything, key, "text/plain; charset=utf-8", mock.Anything).Return(nil).Once()
	f.files.On("CreateFileAsset", mock.Anything, mock.MatchedBy(func(a *entity.FileAsset) bool {
		return a.BlobKey == key && a.SizeBytes == 5 && a.UploadedBy == 2
	})).Return(nil).Once()

	asset, err := f.service.Upload(context.Background(), 2, textUpload("hello.txt", "hello"))

	require.NoError(t, err)
	assert.Equal(t, "hello.txt", asset.FileName)
}

func TestFileService_DownloadArchive(t *testing.T) {
	f := newFileFixture(t)
	assets := []*entity.FileAsset{
		{ID: 1, FileName: "report.txt", BlobKey: "sha256/a"},
		{ID: 2, FileName: "report.txt", BlobKey: "sha256/b"},
		{ID: 1, FileName: "report.txt", BlobKey: "sha256/a"},
	}

	f.files.On("FindFileAssetsByIDs", mock.Anything, []int64{1, 2, 1}).Return(assets, nil).Once()
	f.blobs.On("Open", mock.Anything, "sha256/a").Return(io.NopCloser(strings.NewReader("first")), nil).Once()
	f.blobs.On("Open", mock.Anything, "sha256/b").Return(io.NopCloser(strings.NewReader("second")), nil).Once()

	var buf bytes.Buffer
	require.NoError(t, f.service.DownloadArchive(context.Background(), []int64{1, 2, 1}, &buf))

	archive, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	contents := map[string]string{}
	for _, entry := range archive.File {
		rc, err := entry.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		contents[entry.Name] = string(body)
	}

	assert.Equal(t, map[string]string{"report.txt": "first", "2-report.txt": "second"}, contents)
}

func TestFileService_DownloadArchive_MissingFile(t *testing.T) {
	f := newFileFixture(t)

	f.files.On("FindFileAssetsByIDs", mock.Anything, []int64{1, 9}).Return(nil, domainerrors.ErrFileNotFound).Once()

	err := f.service.DownloadArchive(context.Background(), []int64{1, 9}, io.Discard)

	assert.True(t, errors.Is(err, domainerrors.ErrFileNotFound))
}
