package middleware

import (
	"strings"

	"medico/internal/delivery/api/response"
	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthMiddleware authenticates bearer tokens and checks scopes.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC}
}

// Authenticate validates the access token, rejects revoked tokens and inactive
// users, and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		principal, err := m.authUC.Authorize(c.Request().Context(), strings.TrimSpace(token))
		if err != nil {
			return response.HandleAppError(c, err)
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireScopes is a middleware factory that checks that the caller holds every scope.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireScopes(scopes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return response.Unauthorized(c, domainerrors.ErrTokenInvalid.ErrorCode(), domainerrors.ErrTokenInvalid.Message())
			}

			if !principal.HasScopes(scopes...) {
				return response.Forbidden(c, domainerrors.ErrInsufficientScope.ErrorCode(), domainerrors.ErrInsufficientScope.Message())
			}

			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated caller.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	return deliverycontext.GetPrincipal(c)
}
