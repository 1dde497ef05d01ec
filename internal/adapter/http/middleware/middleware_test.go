package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, mw echo.MiddlewareFunc, h echo.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NotPanics(t, func() {
		_ = mw(h)(c)
	})
	return rec, c
}

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, c := runHandler(t, RequestID(), okHandler, req)

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, GetRequestID(c))
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")
	rec, c := runHandler(t, RequestID(), okHandler, req)

	assert.Equal(t, "caller-supplied-id", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "caller-supplied-id", GetRequestID(c))
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

func TestRequestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/kpis?months=10", nil)
	req.Header.Set("User-Agent", "kpi-client/1.0")
	req.Header.Set("X-Real-IP", "10.1.2.3")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set(requestIDKey, "req-42")

	err := RequestLogger(log)(okHandler)(c)
	require.NoError(t, err)

	entry := logEntry(t, &buf)
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/api/v1/kpis", entry["path"])
	assert.Equal(t, "months=10", entry["query"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "kpi-client/1.0", entry["user_agent"])
	assert.Equal(t, "10.1.2.3", entry["client_ip"])
	assert.Contains(t, entry, "duration_ms")
	assert.Equal(t, "HTTP request", entry["message"])
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"2xx logs info", http.StatusOK, "info"},
		{"4xx logs warn", http.StatusBadRequest, "warn"},
		{"5xx logs error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			handler := func(c echo.Context) error {
				return c.String(tt.status, "body")
			}
			runHandler(t, RequestLogger(log), handler, httptest.NewRequest(http.MethodGet, "/", nil))

			entry := logEntry(t, &buf)
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, tt.level, entry["level"])
		})
	}
}

func TestRecover_PanicBecomes500(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := func(c echo.Context) error {
		panic("boom")
	}
	rec, _ := runHandler(t, Recover(log), handler, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["code"])
	assert.NotContains(t, body["message"], "boom")

	entry := logEntry(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["panic"])
	assert.Contains(t, entry, "stack")
	assert.Equal(t, "Panic recovered", entry["message"])
}

func TestRecover_RuntimeErrorPanic(t *testing.T) {
	handler := func(c echo.Context) error {
		var xs []int
		_ = xs[3]
		return nil
	}
	rec, _ := runHandler(t, Recover(zerolog.Nop()), handler, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	rec, _ := runHandler(t, Recover(log), okHandler, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, buf.String())
}

func TestRecoverWithConfig_DisablePrintStack(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := func(c echo.Context) error {
		panic("quiet")
	}
	mw := RecoverWithConfig(log, RecoveryConfig{DisablePrintStack: true})
	runHandler(t, mw, handler, httptest.NewRequest(http.MethodGet, "/", nil))

	entry := logEntry(t, &buf)
	assert.Equal(t, "quiet", entry["panic"])
	assert.NotContains(t, entry, "stack")
}

func TestSetup_FullChain(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	Setup(e, log)
	e.GET("/ok", okHandler)
	e.GET("/panic", func(c echo.Context) error {
		panic("chained")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	entry := logEntry(t, &buf)
	assert.NotEmpty(t, entry["request_id"])

	rec = httptest.NewRecorder()
	require.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
