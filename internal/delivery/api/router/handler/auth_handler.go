package handler

import (
	"log/slog"
	"net/http"

	"medico/internal/delivery/api/response"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the login, token and password flows.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// AdminLoginRequest represents the request body for staff login
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterAdminRequest represents the request body for creating a staff account
type RegisterAdminRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	RoleName    string `json:"role" validate:"omitempty,max=50"`
}

// ForgotPasswordRequest represents the request body for starting a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body for completing a password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,uuid"`
	NewPassword string `json:"new_password" validate:"required"`
}

// RequestOTPRequest represents the request body for issuing an OTP
type RequestOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
}

// OTPLoginRequest represents the request body for customer login
type OTPLoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	OTP         string `json:"otp" validate:"required,numeric"`
}

// RefreshTokenRequest represents the request body for refreshing the access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func clientInfo(c echo.Context) usecase.ClientInfo {
	return usecase.ClientInfo{
		DeviceInfo: c.Request().UserAgent(),
		IPAddress:  c.RealIP(),
	}
}

// AdminLogin handles staff login with email and password
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	out, err := h.authUC.AdminLogin(c.Request().Context(), &usecase.AdminLoginInput{
		Email:    req.Email,
		Password: req.Password,
		Client:   clientInfo(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// RegisterAdmin handles the creation of a staff account by an authorised caller
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	user, err := h.authUC.RegisterAdmin(c.Request().Context(), &usecase.RegisterAdminInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		RoleName:    req.RoleName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// AdminLogout revokes the caller's token and all of the account's sessions
func (h *AuthHandler) AdminLogout(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.AdminLogout(c.Request().Context(), principal); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ForgotPassword handles the creation of a password reset token
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	issued, err := h.authUC.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, issued)
}

// ResetPassword handles consuming a reset token
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"})
}

// RequestOTP issues a one-time password for a phone number
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	issued, err := h.authUC.RequestOTP(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, issued)
}

// Login handles customer login with an OTP
func (h *AuthHandler) Login(c echo.Context) error {
	var req OTPLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	out, err := h.authUC.LoginWithOTP(c.Request().Context(), &usecase.OTPLoginInput{
		PhoneNumber: req.PhoneNumber,
		Code:        req.OTP,
		Client:      clientInfo(c),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// RefreshToken exchanges a refresh token for a new access token
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationFailed(c, err)
	}

	tokens, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tokens)
}

// Logout revokes the caller's access token and sessions
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.Logout(c.Request().Context(), principal); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the caller and the scopes honoured for them
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Me(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}
