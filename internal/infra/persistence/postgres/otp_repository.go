package postgres

import (
	"context"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// otpRepository implements the domain.OTPRepository interface on the otp_codes table.
type otpRepository struct {
	db *gorm.DB
}

// NewOTPRepository is the constructor for otpRepository.
func NewOTPRepository(db *gorm.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}

// SaveOTP upserts the pending code of a phone number.
func (repo *otpRepository) SaveOTP(ctx context.Context, otp *entity.OTPCode) error {
	otpM := &model.OTPCodeModel{
		PhoneNumber: otp.PhoneNumber,
		CodeHash:    otp.CodeHash,
		ExpiresAt:   otp.ExpiresAt,
		CreatedAt:   otp.CreatedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "created_at"}),
		}).
		Create(otpM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save otp")
	}

	otp.CreatedAt = otpM.CreatedAt

	return nil
}

// FindOTP returns the pending code of a phone number from the primary.
func (repo *otpRepository) FindOTP(ctx context.Context, phone string) (*entity.OTPCode, error) {
	var otpM model.OTPCodeModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("phone_number = ?", phone).
		First(&otpM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrOTPNotFound, "find otp")
	}

	return &entity.OTPCode{
		PhoneNumber: otpM.PhoneNumber,
		CodeHash:    otpM.CodeHash,
		ExpiresAt:   otpM.ExpiresAt,
		CreatedAt:   otpM.CreatedAt,
	}, nil
}

// DeleteOTP removes the pending code of a phone number.
func (repo *otpRepository) DeleteOTP(ctx context.Context, phone string) error {
	err := repo.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		Delete(&model.OTPCodeModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete otp")
	}

	return nil
}

// DeleteExpiredOTPs purges codes whose expiry is not after now.
func (repo *otpRepository) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.OTPCodeModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge expired otps")
	}

	return result.RowsAffected, nil
}
