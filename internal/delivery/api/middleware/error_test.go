package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"medico/internal/delivery/api/validator"
	domainerrors "medico/internal/domain/errors"
	"medico/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		hasDetail bool
	}{
		{
			name:   "wrapped domain error keeps its code",
			err:    errors.Wrap(domainerrors.ErrCouponNotFound, "failed to find coupon"),
			status: http.StatusNotFound,
			code:   "COUPON_NOT_FOUND",
		},
		{
			name:      "validation error lists fields",
			err:       &validator.ValidationError{Fields: []validator.FieldError{{Field: "email", Rule: "required"}}},
			status:    http.StatusBadRequest,
			code:      "VALIDATION_ERROR",
			hasDetail: true,
		},
		{
			name:   "echo error",
			err:    echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			status: http.StatusMethodNotAllowed,
			code:   "HTTP_ERROR",
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("pq: connection refused"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			info := decodeError(t, rec)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.hasDetail, info.Details != nil)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestHandleHTTPError_SkipsCommittedResponse(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "partial")

	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
