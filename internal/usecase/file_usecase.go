package usecase

import (
	"context"
	"io"

	"medico/internal/domain/entity"
)

// FileUpload is one file received from a client.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FileDownload is an opened stored file. Callers must close Body.
type FileDownload struct {
	Asset *entity.FileAsset
	Body  io.ReadCloser
}

// FileUsecase defines the generic file storage operations.
type FileUsecase interface {
	// Upload stores one file for an existing user.
	Upload(ctx context.Context, userID int64, file *FileUpload) (*entity.FileAsset, error)
	// UploadMany stores up to the configured number of files for an existing user.
	UploadMany(ctx context.Context, userID int64, files []*FileUpload) ([]*entity.FileAsset, error)
	Download(ctx context.Context, id int64) (*FileDownload, error)
	// DownloadArchive writes the files as a zip archive to w.
	DownloadArchive(ctx context.Context, ids []int64, w io.Writer) error
}
