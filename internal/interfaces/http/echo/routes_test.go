package echo_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	httpecho "github.com/mohammadpnp/person-service/internal/interfaces/http/echo"
	"github.com/mohammadpnp/person-service/internal/platform/metrics"
)

func TestOpsEndpoints(t *testing.T) {
	t.Parallel()

	collectors := metrics.New(nil)
	collectors.RowImported()

	e := echo.New()
	httpecho.RegisterOps(e, collectors.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "person_import_rows_total 1") {
		t.Fatalf("expected import row counter in output:\n%s", rec.Body.String())
	}
}
