package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"medico/config"
	apimiddleware "medico/internal/delivery/api/middleware"
	"medico/internal/delivery/api/response"
	"medico/internal/delivery/api/router"
	"medico/internal/delivery/api/router/handler"
	deliverycontext "medico/internal/delivery/context"
	"medico/internal/domain/entity"
	mockusecase "medico/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	echo    *echo.Echo
	authUC  *mockusecase.MockAuthUsecase
	orderUC *mockusecase.MockOrderUsecase
}

func newTestServer(t *testing.T) *testServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1MB"

	authUC := mockusecase.NewMockAuthUsecase(t)
	orderUC := mockusecase.NewMockOrderUsecase(t)

	e := newEcho(cfg, logger, router.RouterParams{
		AuthHandler:         handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: logger}),
		RoleHandler:         &handler.RoleHandler{},
		ProfileHandler:      &handler.ProfileHandler{},
		LookupHandler:       &handler.LookupHandler{},
		InventoryHandler:    &handler.InventoryHandler{},
		DiscountHandler:     &handler.DiscountHandler{},
		CouponHandler:       &handler.CouponHandler{},
		OrderHandler:        handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: orderUC, Logger: logger}),
		PrescriptionHandler: &handler.PrescriptionHandler{},
		BillingHandler:      &handler.BillingHandler{},
		IssueHandler:        &handler.IssueHandler{},
		FileHandler:         &handler.FileHandler{},
		AuthMiddleware:      apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{AuthUC: authUC}),
	})

	return &testServer{echo: e, authUC: authUC, orderUC: orderUC}
}

func (s *testServer) do(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	require.NotNil(t, body.Meta)

	return body
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_ProtectedRouteWithoutToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/orders", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)
	assert.Equal(t, rec.Header().Get(deliverycontext.HeaderXRequestID), body.Meta.RequestID)
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/no-such-route", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", errorBody(t, rec).Error.Code)
}

func TestServer_CustomerCannotReachStaffRoutes(t *testing.T) {
	s := newTestServer(t)
	customer := &entity.Principal{UserID: 2, JTI: "jti", Scopes: entity.CustomerScopes}
	s.authUC.On("Authorize", mock.Anything, "customer-token").Return(customer, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/batches", "customer-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_SCOPE", errorBody(t, rec).Error.Code)
}

func TestServer_CustomerListsOwnOrders(t *testing.T) {
	s := newTestServer(t)
	customer := &entity.Principal{UserID: 2, JTI: "jti", Scopes: entity.CustomerScopes}
	s.authUC.On("Authorize", mock.Anything, "customer-token").Return(customer, nil).Once()
	s.orderUC.On("ListCustomerOrders", mock.Anything, int64(2), entity.Page{}).
		Return(&entity.PagedResult[*entity.Order]{Items: []*entity.Order{}, Total: 0}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders", "customer-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}
