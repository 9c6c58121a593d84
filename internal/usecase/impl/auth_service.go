// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/url"

	"medico/config"
	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/repository"
	"medico/internal/domain/service"
	"medico/internal/errors"
	"medico/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const tokenTypeBearer = "Bearer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	hasher    service.PasswordHasher
	otp       service.OTPService
	tokens    service.TokenService
	clock     service.Clock
	auth      config.AuthConfig
	debug     bool
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Repos     repository.RepositoryFactory
	Hasher    service.PasswordHasher
	OTP       service.OTPService
	Tokens    service.TokenService
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	srv := &authService{
		txManager: params.TxManager,
		repos:     params.Repos,
		hasher:    params.Hasher,
		otp:       params.OTP,
		tokens:    params.Tokens,
		clock:     params.Clock,
		debug:     params.Config.Env.Debug,
		logger:    params.Logger,
	}
	if params.Config.Auth != nil {
		srv.auth = *params.Config.Auth
	}
	if srv.auth.CustomerRole == "" {
		srv.auth.CustomerRole = entity.RoleCustomer
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AdminLogin verifies the credentials of a staff account and opens a session.
func (srv *authService) AdminLogin(ctx context.Context, input *usecase.AdminLoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting admin login", slog.String("email", input.Email))

	user, err := srv.repos.UserRepo().FindUserByEmail(ctx, input.Email)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed: unknown email", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load admin for login")
	}

	// bcrypt is CPU-bound, so check the password before opening a transaction.
	if user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.Int64("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}
	if !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrUserInactive, "login failed")
	}

	var tokens *entity.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		tokens, err = srv.openSession(ctx, repoFactory.AuthRepo(), user, input.Client)

		return err
	})
	if err != nil {
		srv.log(ctx).Error("Failed to open admin session", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin login transaction")
	}

	srv.log(ctx).Info("Admin logged in", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{Tokens: tokens, User: user}, nil
}

// RegisterAdmin creates a staff account together with its management profile.
func (srv *authService) RegisterAdmin(ctx context.Context, input *usecase.RegisterAdminInput) (*entity.User, error) {
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	roleName := input.RoleName
	if roleName == "" {
		roleName = entity.RoleAdmin
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindUserByEmail(ctx, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, input.Email)
		}
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		role, err := repoFactory.RoleRepo().FindRoleByName(ctx, roleName)
		if err != nil {
			return errors.Wrap(err, "failed to resolve role")
		}

		user := &entity.User{
			Email:        input.Email,
			PhoneNumber:  input.PhoneNumber,
			PasswordHash: hash,
			RoleID:       role.ID,
			Role:         role,
			IsActive:     true,
		}
		if err := userRepo.CreateUser(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create admin")
		}

		profile := &entity.ManagementProfile{UserID: user.ID, Name: input.Name, PhoneNumber: input.PhoneNumber}
		if err := repoFactory.ProfileRepo().SaveManagementProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create admin profile")
		}

		created = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Admin registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin registration transaction")
	}

	srv.log(ctx).Info("Admin registered", slog.Int64("userID", created.ID), slog.String("role", roleName))

	return created, nil
}

// AdminLogout revokes the current access token and every session of the account.
func (srv *authService) AdminLogout(ctx context.Context, principal *entity.Principal) error {
	if err := srv.endSessions(ctx, principal); err != nil {
		return errors.Wrap(err, "failed to execute admin logout transaction")
	}

	srv.log(ctx).Info("Admin logged out", slog.Int64("userID", principal.UserID))

	return nil
}

// Logout revokes the current access token and invalidates the caller's sessions,
// so the refresh token stops working too.
func (srv *authService) Logout(ctx context.Context, principal *entity.Principal) error {
	if err := srv.endSessions(ctx, principal); err != nil {
		return errors.Wrap(err, "failed to log out")
	}

	srv.log(ctx).Info("User logged out", slog.Int64("userID", principal.UserID))

	return nil
}

func (srv *authService) endSessions(ctx context.Context, principal *entity.Principal) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		if err := srv.revoke(ctx, authRepo, principal); err != nil {
			return err
		}

		return authRepo.RevokeUserSessions(ctx, principal.UserID)
	})
}

func (srv *authService) revoke(ctx context.Context, authRepo repository.AuthRepository, principal *entity.Principal) error {
	if principal == nil || principal.JTI == "" {
		return domainerrors.ErrTokenInvalid
	}

	return authRepo.RevokeToken(ctx, &entity.RevokedToken{
		JTI:       principal.JTI,
		UserID:    principal.UserID,
		ExpiresAt: principal.ExpiresAt,
		RevokedAt: srv.clock.Now(),
	})
}

// ForgotPassword stores the hash of a fresh reset token for the account.
func (srv *authService) ForgotPassword(ctx context.Context, email string) (*usecase.PasswordResetIssued, error) {
	user, err := srv.repos.UserRepo().FindUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account for password reset")
	}

	token := uuid.NewString()
	reset := &entity.PasswordReset{
		UserID:    user.ID,
		TokenHash: srv.tokens.HashToken(token),
		ExpiresAt: srv.clock.Now().Add(srv.auth.PasswordResetTTL),
	}
	if err := srv.repos.AuthRepo().CreatePasswordReset(ctx, reset); err != nil {
		return nil, errors.Wrap(err, "failed to create password reset")
	}

	srv.log(ctx).Info("Password reset requested", slog.Int64("userID", user.ID))

	issued := &usecase.PasswordResetIssued{ExpiresAt: reset.ExpiresAt}
	if srv.debug {
		issued.Link = srv.resetLink(token)
	}

	return issued, nil
}

func (srv *authService) resetLink(token string) string {
	base := srv.auth.PasswordResetURL
	if base == "" {
		base = "/reset-password"
	}

	return base + "?token=" + url.QueryEscape(token)
}

// ResetPassword consumes a reset token. Every session of the account is revoked.
func (srv *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := srv.repos.AuthRepo().FindPasswordResetByTokenHash(ctx, srv.tokens.HashToken(token))
	if err != nil {
		return errors.Wrap(err, "failed to find password reset")
	}

	switch {
	case reset.Used:
		return domainerrors.ErrResetTokenUsed
	case !srv.clock.Now().Before(reset.ExpiresAt):
		return domainerrors.ErrResetTokenExpired
	}

	if err := srv.hasher.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		if err := authRepo.MarkPasswordResetUsed(ctx, reset.ID); err != nil {
			return err
		}
		if err := repoFactory.UserRepo().UpdatePassword(ctx, reset.UserID, hash); err != nil {
			return err
		}

		return authRepo.RevokeUserSessions(ctx, reset.UserID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset", slog.Int64("userID", reset.UserID))

	return nil
}

// RequestOTP stores the hash of a fresh code, replacing any pending one.
func (srv *authService) RequestOTP(ctx context.Context, phoneNumber string) (*usecase.OTPIssued, error) {
	code, err := srv.otp.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate otp")
	}

	otp := &entity.OTPCode{
		PhoneNumber: phoneNumber,
		CodeHash:    srv.otp.Hash(phoneNumber, code),
		ExpiresAt:   srv.clock.Now().Add(srv.auth.OTPTTL),
	}
	if err := srv.repos.OTPRepo().SaveOTP(ctx, otp); err != nil {
		return nil, errors.Wrap(err, "failed to store otp")
	}

	srv.log(ctx).Info("OTP issued", slog.Time("expiresAt", otp.ExpiresAt))

	issued := &usecase.OTPIssued{PhoneNumber: phoneNumber, ExpiresAt: otp.ExpiresAt}
	if srv.debug {
		issued.Code = code
	}

	return issued, nil
}

// LoginWithOTP consumes a valid code and signs the customer in, creating the
// account with the customer role on first login.
func (srv *authService) LoginWithOTP(ctx context.Context, input *usecase.OTPLoginInput) (*usecase.LoginOutput, error) {
	otpRepo := srv.repos.OTPRepo()

	pending, err := otpRepo.FindOTP(ctx, input.PhoneNumber)
	if err != nil {
		return nil, errors.Wrap(err, "otp login failed")
	}
	if pending.IsExpired(srv.clock.Now()) {
		if err := otpRepo.DeleteOTP(ctx, input.PhoneNumber); err != nil {
			srv.log(ctx).Warn("Failed to purge expired otp", slog.Any("error", err))
		}

		return nil, domainerrors.ErrOTPExpired
	}
	if !srv.otp.Verify(input.PhoneNumber, input.Code, pending.CodeHash) {
		return nil, domainerrors.ErrOTPInvalid
	}

	var output *usecase.LoginOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.OTPRepo().DeleteOTP(ctx, input.PhoneNumber); err != nil {
			return errors.Wrap(err, "failed to consume otp")
		}

		user, err := srv.findOrCreateCustomer(ctx, repoFactory, input.PhoneNumber)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return domainerrors.ErrUserInactive
		}

		tokens, err := srv.openSession(ctx, repoFactory.AuthRepo(), user, input.Client)
		if err != nil {
			return err
		}
		output = &usecase.LoginOutput{Tokens: tokens, User: user}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("OTP login failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute otp login transaction")
	}

	srv.log(ctx).Info("Customer logged in", slog.Int64("userID", output.User.ID))

	return output, nil
}

func (srv *authService) findOrCreateCustomer(ctx context.Context, repoFactory repository.RepositoryFactory, phone string) (*entity.User, error) {
	userRepo := repoFactory.UserRepo()

	user, err := userRepo.FindUserByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find customer")
	}

	role, err := repoFactory.RoleRepo().FindRoleByName(ctx, srv.auth.CustomerRole)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve customer role")
	}

	user = &entity.User{PhoneNumber: phone, RoleID: role.ID, Role: role, IsActive: true}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}
	if err := repoFactory.ProfileRepo().SaveCustomerProfile(ctx, &entity.CustomerProfile{UserID: user.ID}); err != nil {
		return nil, errors.Wrap(err, "failed to create customer profile")
	}

	srv.log(ctx).Info("Customer created on first login", slog.Int64("userID", user.ID))

	return user, nil
}

// openSession issues both tokens and persists the session. Older sessions
// beyond the configured limit are revoked.
func (srv *authService) openSession(ctx context.Context, authRepo repository.AuthRepository, user *entity.User, client usecase.ClientInfo) (*entity.TokenPair, error) {
	access, err := srv.tokens.GenerateAccessToken(user.ID, user.Scopes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}
	refresh, err := srv.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	session := &entity.Session{
		UserID:           user.ID,
		RefreshTokenHash: srv.tokens.HashToken(refresh.Token),
		DeviceInfo:       client.DeviceInfo,
		IPAddress:        client.IPAddress,
		ExpiresAt:        refresh.ExpiresAt,
	}
	if err := authRepo.CreateSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	if srv.auth.MaxActiveSessions > 0 {
		if err := authRepo.RevokeExcessSessions(ctx, user.ID, srv.auth.MaxActiveSessions, srv.clock.Now()); err != nil {
			return nil, errors.Wrap(err, "failed to enforce session limit")
		}
	}

	pair := srv.tokenPair(access)
	pair.RefreshToken = refresh.Token

	return pair, nil
}

func (srv *authService) tokenPair(access *service.IssuedToken) *entity.TokenPair {
	return &entity.TokenPair{
		AccessToken: access.Token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(srv.tokens.AccessTokenDuration().Seconds()),
	}
}

// Refresh issues a new access token for an active session. The refresh token itself is kept.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := srv.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token subject")
	}

	session, err := srv.repos.AuthRepo().FindSessionByTokenHash(ctx, srv.tokens.HashToken(refreshToken))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}
	if session.UserID != userID || !session.IsActive(srv.clock.Now()) {
		return nil, domainerrors.ErrSessionInvalid
	}

	user, err := srv.repos.UserRepo().FindUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for refresh")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	access, err := srv.tokens.GenerateAccessToken(user.ID, user.Scopes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Int64("userID", user.ID))

	return srv.tokenPair(access), nil
}

// Me returns the caller's account.
func (srv *authService) Me(ctx context.Context, principal *entity.Principal) (*usecase.MeOutput, error) {
	user, err := srv.repos.UserRepo().FindUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current user")
	}

	return &usecase.MeOutput{User: user, Scopes: principal.Scopes}, nil
}

// Authorize checks an access token against the revocation list, the account
// state and the required scopes.
func (srv *authService) Authorize(ctx context.Context, accessToken string, required ...string) (*entity.Principal, error) {
	claims, err := srv.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil || claims.ID == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "token must carry sub and jti")
	}

	authRepo := srv.repos.AuthRepo()
	revoked, err := authRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, domainerrors.ErrTokenRevoked
	}

	user, err := srv.repos.UserRepo().FindUserByID(ctx, userID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "token subject does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load token subject")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	principal := &entity.Principal{
		UserID: userID,
		JTI:    claims.ID,
		Scopes: user.Scopes().Union(claims.Scopes),
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	if !principal.HasScopes(required...) {
		srv.log(ctx).Warn("Missing scope", slog.Int64("userID", userID), slog.Any("required", required))

		return nil, domainerrors.ErrInsufficientScope
	}

	return principal, nil
}
