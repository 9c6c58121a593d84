package postgres

import (
	"context"
	"fmt"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// fileRepository implements the domain.FileRepository interface.
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository is the constructor for fileRepository.
func NewFileRepository(db *gorm.DB) repository.FileRepository {
	return &fileRepository{db: db}
}

func (repo *fileRepository) CreateFileAsset(ctx context.Context, asset *entity.FileAsset) error {
	assetM := &model.FileAssetModel{
		FileName:    asset.FileName,
		BlobKey:     asset.BlobKey,
		Checksum:    asset.Checksum,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		UploadedBy:  asset.UploadedBy,
	}

	if err := repo.db.WithContext(ctx).Create(assetM).Error; err != nil {
		return writeError(err, nil, "create file asset")
	}

	asset.ID = assetM.ID
	asset.CreatedAt = assetM.CreatedAt

	return nil
}

func (repo *fileRepository) FindFileAssetByID(ctx context.Context, id int64) (*entity.FileAsset, error) {
	var assetM model.FileAssetModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&assetM).Error; err != nil {
		return nil, findError(err, domainerrors.ErrFileNotFound, "find file asset by ID")
	}

	return toFileAssetDomain(&assetM), nil
}

// FindFileAssetsByIDs returns the assets in the order of ids.
func (repo *fileRepository) FindFileAssetsByIDs(ctx context.Context, ids []int64) ([]*entity.FileAsset, error) {
	if len(ids) == 0 {
		return []*entity.FileAsset{}, nil
	}

	var assetModels []model.FileAssetModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", uniqueIDs(ids)).Find(&assetModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find file assets")
	}

	byID := make(map[int64]*model.FileAssetModel, len(assetModels))
	for i := range assetModels {
		byID[assetModels[i].ID] = &assetModels[i]
	}

	assets := make([]*entity.FileAsset, 0, len(ids))
	for _, id := range ids {
		assetM, ok := byID[id]
		if !ok {
			return nil, domainerrors.ErrFileNotFound.WrapMessage(fmt.Sprintf("file asset %d", id))
		}
		assets = append(assets, toFileAssetDomain(assetM))
	}

	return assets, nil
}

// --- Mapper Functions ---

func toFileAssetDomain(data *model.FileAssetModel) *entity.FileAsset {
	if data == nil {
		return nil
	}

	return &entity.FileAsset{
		ID:          data.ID,
		FileName:    data.FileName,
		BlobKey:     data.BlobKey,
		Checksum:    data.Checksum,
		ContentType: data.ContentType,
		SizeBytes:   data.SizeBytes,
		UploadedBy:  data.UploadedBy,
		CreatedAt:   data.CreatedAt,
	}
}
