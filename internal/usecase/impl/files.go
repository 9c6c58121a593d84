package impl

import (
	"bytes"
	"context"
	"io"

	"medico/config"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"
	"medico/internal/util"

	"github.com/gabriel-vasile/mimetype"
)

const blobKeyPrefix = "sha256/"

// Content types accepted for prescriptions and issue attachments.
var documentTypes = []string{"image/png", "image/jpeg", "application/pdf"}

// fileStorer writes uploads to the blob store under content-addressed keys and
// records their metadata.
type fileStorer struct {
	blobs   service.BlobStore
	maxSize int64
}

func newFileStorer(blobs service.BlobStore, cfg *config.Config) *fileStorer {
	storer := &fileStorer{blobs: blobs}
	if cfg != nil && cfg.Storage != nil {
		storer.maxSize = cfg.Storage.MaxUploadSize
	}

	return storer
}

// store reads the upload, checks its size and sniffed type against allowed (any
// type when allowed is empty), writes the blob unless the same content is
// already stored, and inserts the FileAsset row through fileRepo.
func (s *fileStorer) store(
	ctx context.Context,
	fileRepo repository.FileRepository,
	uploadedBy int64,
	file *usecase.FileUpload,
	allowed []string,
) (*entity.FileAsset, error) {
	if file == nil || file.Content == nil {
		return nil, domainerrors.ErrValidation.WrapMessage("file is required")
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return nil, domainerrors.ErrFileTooLarge.WrapMessage(util.FormatBytes(file.Size))
	}

	content, err := s.read(file.Content)
	if err != nil {
		return nil, err
	}

	contentType := mimetype.Detect(content).String()
	if len(allowed) > 0 && !mimetype.EqualsAny(contentType, allowed...) {
		return nil, domainerrors.ErrUnsupportedFileType.WrapMessage(contentType)
	}

	asset, err := s.put(ctx, fileRepo, uploadedBy, file.FileName, contentType, content)
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// put stores content that is already in memory, such as a generated document.
func (s *fileStorer) put(
	ctx context.Context,
	fileRepo repository.FileRepository,
	uploadedBy int64,
	fileName, contentType string,
	content []byte,
) (*entity.FileAsset, error) {
	checksum, size, err := util.ContentChecksum(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	key := blobKeyPrefix + checksum
	exists, err := s.blobs.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := s.blobs.Put(ctx, key, contentType, bytes.NewReader(content)); err != nil {
			return nil, err
		}
	}

	asset := &entity.FileAsset{
		FileName:    fileName,
		BlobKey:     key,
		Checksum:    checksum,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  uploadedBy,
	}
	if err := fileRepo.CreateFileAsset(ctx, asset); err != nil {
		return nil, errors.Wrap(err, "failed to record file asset")
	}

	return asset, nil
}

func (s *fileStorer) read(r io.Reader) ([]byte, error) {
	if s.maxSize > 0 {
		r = io.LimitReader(r, s.maxSize+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if s.maxSize > 0 && int64(len(content)) > s.maxSize {
		return nil, domainerrors.ErrFileTooLarge.WrapMessage(util.FormatBytes(int64(len(content))))
	}
	if len(content) == 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("file is empty")
	}

	return content, nil
}

// open returns the stored content of an asset.
func (s *fileStorer) open(ctx context.Context, asset *entity.FileAsset) (*usecase.FileDownload, error) {
	body, err := s.blobs.Open(ctx, asset.BlobKey)
	if err != nil {
		return nil, err
	}

	return &usecase.FileDownload{Asset: asset, Body: body}, nil
}
