package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kreditline/leadbridge/internal/crmsync"
	"github.com/kreditline/leadbridge/internal/http/handlers"
	"github.com/kreditline/leadbridge/internal/intake"
	"github.com/kreditline/leadbridge/pkg/logging"
)

type okSyncer struct{}

func (okSyncer) SyncLead(context.Context, intake.LeadSubmission) crmsync.SyncResult {
	return crmsync.SyncResult{OK: true, ContactID: "1", DealID: "2"}
}

func newTestRouter() http.Handler {
	logger := logging.New("error")
	leadForm := handlers.NewLeadFormHandler(okSyncer{}, nil, "https://portal.bitrix24.ru", logger, nil)
	return New(&Config{
		Logger:             logger,
		LeadForm:           leadForm,
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestRouterHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rr.Code)
	}
}

func TestRouterLeadSubmission(t *testing.T) {
	body := `{"name":"Анна","phone":"79991112233"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))

	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRouterLegacyPath(t *testing.T) {
	body := `{"name":"Анна","phone":"79991112233"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24_handler.php", strings.NewReader(body))

	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from legacy path, got %d", rr.Code)
	}
}

func TestRouterPlainOptions(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/bitrix24/lead", nil)

	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for OPTIONS, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty OPTIONS body, got %q", rr.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
