package impl

import (
	"context"
	"strconv"
	"testing"
	"time"

	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/domain/service"
	"medico/internal/errors"
	mockrepository "medico/internal/mocks/repository"
	mockservice "medico/internal/mocks/service"
	"medico/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	txManager *mockrepository.MockTransactionManager
	users     *mockrepository.MockUserRepository
	roles     *mockrepository.MockRoleRepository
	auth      *mockrepository.MockAuthRepository
	otps      *mockrepository.MockOTPRepository
	profiles  *mockrepository.MockProfileRepository
	hasher    *mockservice.MockPasswordHasher
	otp       *mockservice.MockOTPService
	tokens    *mockservice.MockTokenService
	repos     *mockrepository.Repositories
	service   usecase.AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	f := &authFixture{
		txManager: mockrepository.NewMockTransactionManager(t),
		users:     mockrepository.NewMockUserRepository(t),
		roles:     mockrepository.NewMockRoleRepository(t),
		auth:      mockrepository.NewMockAuthRepository(t),
		otps:      mockrepository.NewMockOTPRepository(t),
		profiles:  mockrepository.NewMockProfileRepository(t),
		hasher:    mockservice.NewMockPasswordHasher(t),
		otp:       mockservice.NewMockOTPService(t),
		tokens:    mockservice.NewMockTokenService(t),
	}
	f.repos = &mockrepository.Repositories{
		T:       t,
		User:    f.users,
		Role:    f.roles,
		Auth:    f.auth,
		OTP:     f.otps,
		Profile: f.profiles,
	}
	f.service = NewAuthService(AuthServiceParams{
		TxManager: f.txManager,
		Repos:     f.repos,
		Hasher:    f.hasher,
		OTP:       f.otp,
		Tokens:    f.tokens,
		Clock:     fixedClock(),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})

	return f
}

func (f *authFixture) expectSession(userID int64) {
	f.tokens.On("GenerateAccessToken", userID, mock.Anything).
		Return(&service.IssuedToken{Token: "access", JTI: "jti-1", ExpiresAt: testNow.Add(15 * time.Minute)}, nil).Once()
	f.tokens.On("GenerateRefreshToken", userID).
		Return(&service.IssuedToken{Token: "refresh", JTI: "jti-2", ExpiresAt: testNow.Add(24 * time.Hour)}, nil).Once()
	f.tokens.On("HashToken", "refresh").Return("refresh-hash")
	f.tokens.On("AccessTokenDuration").Return(15 * time.Minute)
	f.auth.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.UserID == userID && s.RefreshTokenHash == "refresh-hash"
	})).Return(nil).Once()
	f.auth.On("RevokeExcessSessions", mock.Anything, userID, 3, testNow).Return(nil).Once()
}

func adminUser() *entity.User {
	return &entity.User{
		ID:           7,
		Email:        "admin@pharmacy.test",
		PasswordHash: "hashed",
		IsActive:     true,
		Role: &entity.Role{Name: entity.RoleAdmin, Permissions: []entity.Permission{
			{Name: entity.ScopeAdminRead}, {Name: entity.ScopeAdminWrite},
		}},
	}
}

func accessClaims(userID int64, jti string) *service.Claims {
	return &service.Claims{
		Type: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(testNow.Add(10 * time.Minute)),
		},
	}
}

func TestAuthService_AdminLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := adminUser()

	f.users.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	f.hasher.On("Check", "Secret#123", "hashed").Return(true).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.expectSession(user.ID)

	out, err := f.service.AdminLogin(ctx, &usecase.AdminLoginInput{
		Email:    user.Email,
		Password: "Secret#123",
		Client:   usecase.ClientInfo{DeviceInfo: "curl", IPAddress: "127.0.0.1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "access", out.Tokens.AccessToken)
	assert.Equal(t, "refresh", out.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", out.Tokens.TokenType)
	assert.EqualValues(t, 900, out.Tokens.ExpiresIn)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestAuthService_AdminLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("FindUserByEmail", mock.Anything, "nobody@pharmacy.test").Return(nil, domainerrors.ErrUserNotFound).Once()

	_, err := f.service.AdminLogin(context.Background(), &usecase.AdminLoginInput{Email: "nobody@pharmacy.test", Password: "x"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := adminUser()

	f.users.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	f.hasher.On("Check", "wrong", "hashed").Return(false).Once()

	_, err := f.service.AdminLogin(context.Background(), &usecase.AdminLoginInput{Email: user.Email, Password: "wrong"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_AdminLogin_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	user := adminUser()
	user.IsActive = false

	f.users.On("FindUserByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	f.hasher.On("Check", "Secret#123", "hashed").Return(true).Once()

	_, err := f.service.AdminLogin(context.Background(), &usecase.AdminLoginInput{Email: user.Email, Password: "Secret#123"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserInactive))
}

func TestAuthService_RegisterAdmin_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.hasher.On("ValidatePasswordStrength", "Secret#123").Return(nil).Once()
	f.hasher.On("Hash", "Secret#123").Return("hashed", nil).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.users.On("FindUserByEmail", mock.Anything, "admin@pharmacy.test").Return(adminUser(), nil).Once()

	_, err := f.service.RegisterAdmin(context.Background(), &usecase.RegisterAdminInput{
		Email:    "admin@pharmacy.test",
		Password: "Secret#123",
		Name:     "Asha",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_RequestOTP_ReturnsCodeInDebug(t *testing.T) {
	f := newAuthFixture(t)

	f.otp.On("Generate").Return("123456", nil).Once()
	f.otp.On("Hash", "+919800000001", "123456").Return("otp-hash").Once()
	f.otps.On("SaveOTP", mock.Anything, &entity.OTPCode{
		PhoneNumber: "+919800000001",
		CodeHash:    "otp-hash",
		ExpiresAt:   testNow.Add(5 * time.Minute),
	}).Return(nil).Once()

	issued, err := f.service.RequestOTP(context.Background(), "+919800000001")

	require.NoError(t, err)
	assert.Equal(t, "123456", issued.Code)
	assert.Equal(t, testNow.Add(5*time.Minute), issued.ExpiresAt)
}

func TestAuthService_LoginWithOTP_CreatesCustomerOnFirstLogin(t *testing.T) {
	f := newAuthFixture(t)
	phone := "+919800000001"
	customerRole := &entity.Role{ID: 2, Name: entity.RoleCustomer, Permissions: []entity.Permission{{Name: entity.ScopeUserRead}}}

	f.otps.On("FindOTP", mock.Anything, phone).
		Return(&entity.OTPCode{PhoneNumber: phone, CodeHash: "otp-hash", ExpiresAt: testNow.Add(time.Minute)}, nil).Once()
	f.otp.On("Verify", phone, "123456", "otp-hash").Return(true).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.otps.On("DeleteOTP", mock.Anything, phone).Return(nil).Once()
	f.users.On("FindUserByPhone", mock.Anything, phone).Return(nil, domainerrors.ErrUserNotFound).Once()
	f.roles.On("FindRoleByName", mock.Anything, entity.RoleCustomer).Return(customerRole, nil).Once()
	f.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 42 }).
		Return(nil).Once()
	f.profiles.On("SaveCustomerProfile", mock.Anything, &entity.CustomerProfile{UserID: 42}).Return(nil).Once()
	f.expectSession(42)

	out, err := f.service.LoginWithOTP(context.Background(), &usecase.OTPLoginInput{PhoneNumber: phone, Code: "123456"})

	require.NoError(t, err)
	assert.EqualValues(t, 42, out.User.ID)
	assert.Equal(t, phone, out.User.PhoneNumber)
	assert.Equal(t, customerRole.ID, out.User.RoleID)
}

func TestAuthService_LoginWithOTP_Expired(t *testing.T) {
	f := newAuthFixture(t)
	phone := "+919800000001"

	f.otps.On("FindOTP", mock.Anything, phone).
		Return(&entity.OTPCode{PhoneNumber: phone, CodeHash: "otp-hash", ExpiresAt: testNow}, nil).Once()
	f.otps.On("DeleteOTP", mock.Anything, phone).Return(nil).Once()

	_, err := f.service.LoginWithOTP(context.Background(), &usecase.OTPLoginInput{PhoneNumber: phone, Code: "123456"})

	assert.True(t, errors.Is(err, domainerrors.ErrOTPExpired))
}

func TestAuthService_LoginWithOTP_WrongCode(t *testing.T) {
	f := newAuthFixture(t)
	phone := "+919800000001"

	f.otps.On("FindOTP", mock.Anything, phone).
		Return(&entity.OTPCode{PhoneNumber: phone, CodeHash: "otp-hash", ExpiresAt: testNow.Add(time.Minute)}, nil).Once()
	f.otp.On("Verify", phone, "000000", "otp-hash").Return(false).Once()

	_, err := f.service.LoginWithOTP(context.Background(), &usecase.OTPLoginInput{PhoneNumber: phone, Code: "000000"})

	assert.True(t, errors.Is(err, domainerrors.ErrOTPInvalid))
}

func TestAuthService_Authorize_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := adminUser()

	f.tokens.On("ValidateAccessToken", "token").Return(accessClaims(user.ID, "jti-1"), nil).Once()
	f.auth.On("IsTokenRevoked", mock.Anything, "jti-1").Return(false, nil).Once()
	f.users.On("FindUserByID", mock.Anything, user.ID).Return(user, nil).Once()

	principal, err := f.service.Authorize(context.Background(), "token", entity.ScopeAdminWrite)

	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "jti-1", principal.JTI)
	assert.True(t, principal.Scopes.Contains(entity.ScopeAdminRead))
	assert.Equal(t, testNow.Add(10*time.Minute), principal.ExpiresAt)
}

func TestAuthService_Authorize_RevokedToken(t *testing.T) {
	f := newAuthFixture(t)

	f.tokens.On("ValidateAccessToken", "token").Return(accessClaims(7, "jti-revoked"), nil).Once()
	f.auth.On("IsTokenRevoked", mock.Anything, "jti-revoked").Return(true, nil).Once()

	_, err := f.service.Authorize(context.Background(), "token")

	assert.True(t, errors.Is(err, domainerrors.ErrTokenRevoked))
	f.users.AssertNotCalled(t, "FindUserByID", mock.Anything, mock.Anything)
}

func TestAuthService_Authorize_MissingJTI(t *testing.T) {
	f := newAuthFixture(t)

	f.tokens.On("ValidateAccessToken", "token").Return(accessClaims(7, ""), nil).Once()

	_, err := f.service.Authorize(context.Background(), "token")

	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestAuthService_Authorize_InsufficientScope(t *testing.T) {
	f := newAuthFixture(t)
	user := adminUser()

	f.tokens.On("ValidateAccessToken", "token").Return(accessClaims(user.ID, "jti-1"), nil).Once()
	f.auth.On("IsTokenRevoked", mock.Anything, "jti-1").Return(false, nil).Once()
	f.users.On("FindUserByID", mock.Anything, user.ID).Return(user, nil).Once()

	_, err := f.service.Authorize(context.Background(), "token", entity.ScopeRoleWrite)

	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientScope))
}

func TestAuthService_Logout_RevokesCurrentToken(t *testing.T) {
	f := newAuthFixture(t)
	principal := &entity.Principal{UserID: 7, JTI: "jti-1", ExpiresAt: testNow.Add(time.Minute)}

	f.auth.On("RevokeToken", mock.Anything, &entity.RevokedToken{
		JTI:       "jti-1",
		UserID:    7,
		ExpiresAt: principal.ExpiresAt,
		RevokedAt: testNow,
	}).Return(nil).Once()
	f.auth.On("RevokeUserSessions", mock.Anything, int64(7)).Return(nil).Once()
	f.txManager.OnExecute(f.repos).Once()

	require.NoError(t, f.service.Logout(context.Background(), principal))
}

func TestAuthService_Logout_RefreshFailsAfterwards(t *testing.T) {
	f := newAuthFixture(t)
	principal := &entity.Principal{UserID: 7, JTI: "jti-1", ExpiresAt: testNow.Add(time.Minute)}
	session := &entity.Session{UserID: 7, RefreshTokenHash: "refresh-hash", ExpiresAt: testNow.Add(time.Hour)}

	f.auth.On("RevokeToken", mock.Anything, mock.Anything).Return(nil).Once()
	f.auth.On("RevokeUserSessions", mock.Anything, int64(7)).
		Run(func(mock.Arguments) { session.IsRevoked = true }).
		Return(nil).Once()
	f.txManager.OnExecute(f.repos).Once()

	claims := accessClaims(7, "jti-2")
	claims.Type = service.TokenTypeRefresh
	f.tokens.On("ValidateRefreshToken", "refresh").Return(claims, nil).Once()
	f.tokens.On("HashToken", "refresh").Return("refresh-hash").Once()
	f.auth.On("FindSessionByTokenHash", mock.Anything, "refresh-hash").Return(session, nil).Once()

	require.NoError(t, f.service.Logout(context.Background(), principal))

	_, err := f.service.Refresh(context.Background(), "refresh")

	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestAuthService_Logout_MissingJTIWritesNothing(t *testing.T) {
	f := newAuthFixture(t)
	f.txManager.OnExecute(f.repos).Once()

	err := f.service.Logout(context.Background(), &entity.Principal{UserID: 7})

	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	f.auth.AssertNotCalled(t, "RevokeUserSessions", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RevokedSession(t *testing.T) {
	f := newAuthFixture(t)
	claims := accessClaims(7, "jti-2")
	claims.Type = service.TokenTypeRefresh

	f.tokens.On("ValidateRefreshToken", "refresh").Return(claims, nil).Once()
	f.tokens.On("HashToken", "refresh").Return("refresh-hash").Once()
	f.auth.On("FindSessionByTokenHash", mock.Anything, "refresh-hash").
		Return(&entity.Session{UserID: 7, IsRevoked: true, ExpiresAt: testNow.Add(time.Hour)}, nil).Once()

	_, err := f.service.Refresh(context.Background(), "refresh")

	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestAuthService_ResetPassword(t *testing.T) {
	tests := []struct {
		name    string
		reset   *entity.PasswordReset
		wantErr error
	}{
		{
			name:    "used token",
			reset:   &entity.PasswordReset{ID: 1, UserID: 7, Used: true, ExpiresAt: testNow.Add(time.Hour)},
			wantErr: domainerrors.ErrResetTokenUsed,
		},
		{
			name:    "expired token",
			reset:   &entity.PasswordReset{ID: 1, UserID: 7, ExpiresAt: testNow.Add(-time.Second)},
			wantErr: domainerrors.ErrResetTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)

			f.tokens.On("HashToken", "reset-token").Return("reset-hash").Once()
			f.auth.On("FindPasswordResetByTokenHash", mock.Anything, "reset-hash").Return(tt.reset, nil).Once()

			err := f.service.ResetPassword(context.Background(), "reset-token", "NewSecret#1")

			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestAuthService_ResetPassword_RevokesSessions(t *testing.T) {
	f := newAuthFixture(t)

	f.tokens.On("HashToken", "reset-token").Return("reset-hash").Once()
	f.auth.On("FindPasswordResetByTokenHash", mock.Anything, "reset-hash").
		Return(&entity.PasswordReset{ID: 3, UserID: 7, ExpiresAt: testNow.Add(time.Hour)}, nil).Once()
	f.hasher.On("ValidatePasswordStrength", "NewSecret#1").Return(nil).Once()
	f.hasher.On("Hash", "NewSecret#1").Return("new-hash", nil).Once()
	f.txManager.OnExecute(f.repos).Once()
	f.auth.On("MarkPasswordResetUsed", mock.Anything, int64(3)).Return(nil).Once()
	f.users.On("UpdatePassword", mock.Anything, int64(7), "new-hash").Return(nil).Once()
	f.auth.On("RevokeUserSessions", mock.Anything, int64(7)).Return(nil).Once()

	require.NoError(t, f.service.ResetPassword(context.Background(), "reset-token", "NewSecret#1"))
}
