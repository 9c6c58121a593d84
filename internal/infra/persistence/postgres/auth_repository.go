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

// authRepository implements the domain.AuthRepository interface.
type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository is the constructor for authRepository.
func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

// CreateSession persists a new login session.
func (repo *authRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return writeError(err, nil, "create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindSessionByTokenHash retrieves a session by its refresh token hash.
func (repo *authRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("refresh_token_hash = ?", tokenHash).
		First(&sessionM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrSessionInvalid, "find session by token hash")
	}

	return toSessionDomain(&sessionM), nil
}

// RevokeUserSessions revokes all sessions of a user.
func (repo *authRepository) RevokeUserSessions(ctx context.Context, userID int64) error {
	err := repo.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke user sessions")
	}

	return nil
}

// RevokeExcessSessions keeps the newest keep active sessions and revokes the rest.
func (repo *authRepository) RevokeExcessSessions(ctx context.Context, userID int64, keep int, now time.Time) error {
	var active []int64
	err := repo.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("user_id = ? AND is_revoked = ? AND expires_at > ?", userID, false, now).
		Order("created_at DESC, id DESC").
		Pluck("id", &active).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to find active sessions")
	}
	if keep < 0 {
		keep = 0
	}
	if len(active) <= keep {
		return nil
	}
	stale := active[keep:]

	err = repo.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("id IN ?", stale).
		Update("is_revoked", true).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke excess sessions")
	}

	return nil
}

// RevokeToken blacklists a jti until the token would have expired anyway.
func (repo *authRepository) RevokeToken(ctx context.Context, token *entity.RevokedToken) error {
	tokenM := &model.RevokedTokenModel{
		JTI:       token.JTI,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		RevokedAt: token.RevokedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tokenM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke token")
	}

	return nil
}

// IsTokenRevoked checks the blacklist on the primary so a fresh logout is seen immediately.
func (repo *authRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&model.RevokedTokenModel{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check revoked token")
	}

	return count > 0, nil
}

// CreatePasswordReset persists a reset request.
func (repo *authRepository) CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error {
	resetM := &model.PasswordResetModel{
		UserID:    reset.UserID,
		TokenHash: reset.TokenHash,
		ExpiresAt: reset.ExpiresAt,
		Used:      reset.Used,
	}

	if err := repo.db.WithContext(ctx).Create(resetM).Error; err != nil {
		return writeError(err, nil, "create password reset")
	}

	reset.ID = resetM.ID
	reset.CreatedAt = resetM.CreatedAt

	return nil
}

// FindPasswordResetByTokenHash retrieves a reset request by the hash of its token.
func (repo *authRepository) FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error) {
	var resetM model.PasswordResetModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("token_hash = ?", tokenHash).
		First(&resetM).Error
	if err != nil {
		return nil, findError(err, domainerrors.ErrResetTokenInvalid, "find password reset")
	}

	return &entity.PasswordReset{
		ID:        resetM.ID,
		UserID:    resetM.UserID,
		TokenHash: resetM.TokenHash,
		ExpiresAt: resetM.ExpiresAt,
		Used:      resetM.Used,
		CreatedAt: resetM.CreatedAt,
	}, nil
}

// MarkPasswordResetUsed consumes a reset request. A request can only be consumed once.
func (repo *authRepository) MarkPasswordResetUsed(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Model(&model.PasswordResetModel{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume password reset")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrResetTokenUsed
	}

	return nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:               data.ID,
		UserID:           data.UserID,
		RefreshTokenHash: data.RefreshTokenHash,
		DeviceInfo:       data.DeviceInfo,
		IPAddress:        data.IPAddress,
		ExpiresAt:        data.ExpiresAt,
		IsRevoked:        data.IsRevoked,
		CreatedAt:        data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:               data.ID,
		UserID:           data.UserID,
		RefreshTokenHash: data.RefreshTokenHash,
		DeviceInfo:       data.DeviceInfo,
		IPAddress:        data.IPAddress,
		ExpiresAt:        data.ExpiresAt,
		IsRevoked:        data.IsRevoked,
		CreatedAt:        data.CreatedAt,
	}
}
