package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/export"
	handlers "github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/handler/http"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/repository/memory"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/storage"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/config"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
)

func newServer(t *testing.T) *Server {
	t.Helper()

	log := zap.NewNop()
	registry := prometheus.NewRegistry()
	files := storage.NewFileStore(afero.NewMemMapFs())
	u := usecase.NewUsecases(memory.NewStore(), files, policy.Default(), export.NewWorkbookWriter(), metrics.NewRecorder(registry), log)
	h := &handlers.Handlers{
		Requests: handlers.NewRequestHandler(u.Requests, u.Exports, log),
		Items:    handlers.NewItemHandler(u.Items, log),
		Files:    handlers.NewFileHandler(u.Files, files, log),
	}

	cfg := &config.Config{}
	cfg.Service.Name = "budget-request"
	return NewServer(cfg, log, h, registry)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServerHealth(t *testing.T) {
	s := newServer(t)

	rec := serve(s, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"budget-request"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServerMetrics(t *testing.T) {
	s := newServer(t)

	rec := serve(s, http.MethodPost, "/api/v1/requests/1/submit")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `budget_request_submissions_total{result="rejected"} 1`))
}

func TestServerRoutingErrors(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{
			name:   "unknown route",
			method: http.MethodGet,
			target: "/api/v2/requests",
			status: http.StatusNotFound,
			body:   `{"error":"Not Found","code":"NOT_FOUND"}`,
		},
		{
			name:   "wrong method",
			method: http.MethodPut,
			target: "/api/v1/requests/1",
			status: http.StatusMethodNotAllowed,
			body:   `{"error":"Method Not Allowed","code":"METHOD_NOT_ALLOWED"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, tt.method, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}

	t.Run("head has no body", func(t *testing.T) {
		rec := serve(s, http.MethodHead, "/api/v2/requests")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestServerBodyLimit(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.ContentLength = 65 << 20
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request Entity Too Large","code":"PAYLOAD_TOO_LARGE"}`, rec.Body.String())
}

func TestServerRecoversPanics(t *testing.T) {
	s := newServer(t)
	s.echo.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rec := serve(s, http.MethodGet, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","code":"INTERNAL"}`, rec.Body.String())
}
