package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medico/config"
	deliverycontext "medico/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "reuses client id", header: "client-42", reuse: true},
		{name: "generates when absent"},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mw := NewRequestIDMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))
			c, rec := newContext(tt.header)

			err := mw.Process(func(c echo.Context) error {
				ctx := c.Request().Context()
				deliverycontext.GetLoggerOrDefault(ctx, nil).Info("inside")
				assert.Equal(t, deliverycontext.GetRequestID(c), deliverycontext.RequestIDFromContext(ctx))

				return nil
			})(c)
			require.NoError(t, err)

			id := deliverycontext.GetRequestID(c)
			require.NotEmpty(t, id)
			assert.Equal(t, id, rec.Header().Get(deliverycontext.HeaderXRequestID))
			assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
			if tt.reuse {
				assert.Equal(t, tt.header, id)
			} else {
				assert.NotEqual(t, tt.header, id)
			}
		})
	}
}

func TestTimeoutMiddleware_Handle(t *testing.T) {
	t.Run("attaches a deadline", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.HTTP.RequestTimeout = time.Minute
		c, _ := newContext("")

		err := NewTimeoutMiddleware(cfg).Handle(func(c echo.Context) error {
			deadline, ok := c.Request().Context().Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

			return nil
		})(c)

		require.NoError(t, err)
	})

	t.Run("zero disables the deadline", func(t *testing.T) {
		c, _ := newContext("")

		err := NewTimeoutMiddleware(&config.Config{}).Handle(func(c echo.Context) error {
			_, ok := c.Request().Context().Deadline()
			assert.False(t, ok)

			return nil
		})(c)

		require.NoError(t, err)
	})
}

func TestLoggerMiddleware_LogsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggerMiddleware(slog.New(slog.NewTextHandler(&buf, nil)), &config.Config{})

	c, _ := newContext("")
	require.NoError(t, mw.Handle(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))
	assert.Empty(t, buf.String())

	c, rec := newContext("")
	require.NoError(t, mw.Handle(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "level=WARN")
}
