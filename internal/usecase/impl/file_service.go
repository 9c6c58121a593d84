package impl

import (
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"path"
	"strconv"

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

const defaultMaxFiles = 5

// fileService implements the FileUsecase interface.
type fileService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	files     *fileStorer
	maxFiles  int
	logger    *slog.Logger
}

// FileServiceParams holds dependencies for FileService, injected by Fx.
type FileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Blobs     service.BlobStore
	Config    *config.Config
	Logger    *slog.Logger
}

// NewFileService is the constructor for fileService.
func NewFileService(params FileServiceParams) usecase.FileUsecase {
	srv := &fileService{
		txManager: params.TxManager,
		repos:     params.Repos,
		files:     newFileStorer(params.Blobs, params.Config),
		maxFiles:  defaultMaxFiles,
		logger:    params.Logger,
	}
	if params.Config.Storage != nil && params.Config.Storage.MaxFiles > 0 {
		srv.maxFiles = params.Config.Storage.MaxFiles
	}

	return srv
}

func (srv *fileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload stores one file of any type for an existing user.
func (srv *fileService) Upload(ctx context.Context, userID int64, file *usecase.FileUpload) (*entity.FileAsset, error) {
	assets, err := srv.UploadMany(ctx, userID, []*usecase.FileUpload{file})
	if err != nil {
		return nil, err
	}

	return assets[0], nil
}

// UploadMany stores every file or none of their metadata rows.
func (srv *fileService) UploadMany(ctx context.Context, userID int64, files []*usecase.FileUpload) ([]*entity.FileAsset, error) {
	if len(files) == 0 {
		return nil, domainerrors.ErrValidation.WrapMessage("at least one file is required")
	}
	if len(files) > srv.maxFiles {
		return nil, domainerrors.ErrTooManyFiles.WrapMessage("at most " + strconv.Itoa(srv.maxFiles) + " files per request")
	}

	if _, err := srv.repos.UserRepo().FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	assets := make([]*entity.FileAsset, 0, len(files))
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		for _, file := range files {
			asset, err := srv.files.store(ctx, repoFactory.FileRepo(), userID, file, nil)
			if err != nil {
				return err
			}
			assets = append(assets, asset)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload files")
	}

	srv.log(ctx).Info("Files uploaded", slog.Int64("userID", userID), slog.Int("count", len(assets)))

	return assets, nil
}

// Download opens one stored file.
func (srv *fileService) Download(ctx context.Context, id int64) (*usecase.FileDownload, error) {
	asset, err := srv.repos.FileRepo().FindFileAssetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return srv.files.open(ctx, asset)
}

// DownloadArchive streams the requested files into a zip archive. Every id
// must exist. Clashing file names are prefixed with the asset id.
func (srv *fileService) DownloadArchive(ctx context.Context, ids []int64, w io.Writer) error {
	if len(ids) == 0 {
		return domainerrors.ErrValidation.WrapMessage("at least one file id is required")
	}

	assets, err := srv.repos.FileRepo().FindFileAssetsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	archive := zip.NewWriter(w)
	seen := make(map[string]bool, len(assets))
	written := make(map[int64]bool, len(assets))
	for _, asset := range assets {
		if written[asset.ID] {
			continue
		}
		written[asset.ID] = true

		name := path.Base(asset.FileName)
		if name == "." || name == "/" || seen[name] {
			name = strconv.FormatInt(asset.ID, 10) + "-" + name
		}
		seen[name] = true

		if err := srv.copyInto(ctx, archive, name, asset); err != nil {
			return err
		}
	}

	if err := archive.Close(); err != nil {
		return errors.Wrap(err, "failed to finish archive")
	}

	return nil
}

func (srv *fileService) copyInto(ctx context.Context, archive *zip.Writer, name string, asset *entity.FileAsset) error {
	download, err := srv.files.open(ctx, asset)
	if err != nil {
		return err
	}
	defer download.Body.Close()

	entry, err := archive.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: asset.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to add archive entry")
	}

	if _, err := io.Copy(entry, download.Body); err != nil {
		return errors.Wrapf(err, "failed to archive file %d", asset.ID)
	}

	return nil
}
