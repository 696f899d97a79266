package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarmet/icephys/internal/domain"
)

type stubSource struct {
	report   *domain.Report
	readyErr error
}

func (s *stubSource) Report() *domain.Report                 { return s.report }
func (s *stubSource) CheckReadiness(_ context.Context) error { return s.readyErr }

func newTestServer(source ReportSource) *Server {
	return New(":0", source, slog.Default())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubSource{})

	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		s := newTestServer(&stubSource{})
		rec := get(t, s, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ready")
	})

	t.Run("not ready", func(t *testing.T) {
		s := newTestServer(&stubSource{readyErr: errors.New("no analysis run has completed yet")})
		rec := get(t, s, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "no analysis run has completed yet")
	})
}

func TestReportEndpoint(t *testing.T) {
	t.Run("no report yet", func(t *testing.T) {
		s := newTestServer(&stubSource{})
		rec := get(t, s, "/report")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("serves latest report", func(t *testing.T) {
		report := &domain.Report{
			RoughnessLength: domain.Scalar(9.2e-4),
		}
		report.Salinity.Experiment = domain.Scalar(5.5)
		report.SurfaceTemperature.Floe2 = domain.Scalar(math.NaN())

		s := newTestServer(&stubSource{report: report})
		rec := get(t, s, "/report")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `"roughness_length_m":0.00092`)
		assert.Contains(t, body, `"ice_salinity_ppt":{"experiment":5.5`)
		assert.Contains(t, body, `"floe_2":null`, "undefined period serialized as null")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&stubSource{})
	rec := get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# HELP")
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(&stubSource{})
	req := httptest.NewRequest(http.MethodPost, "/report", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
