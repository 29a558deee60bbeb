package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kreditline/leadbridge/internal/crmsync"
	"github.com/kreditline/leadbridge/internal/intake"
	"github.com/kreditline/leadbridge/internal/notify"
	"github.com/kreditline/leadbridge/pkg/logging"
)

// fakeSyncer records submissions and returns a scripted result.
type fakeSyncer struct {
	result      crmsync.SyncResult
	submissions []intake.LeadSubmission
}

func (f *fakeSyncer) SyncLead(_ context.Context, sub intake.LeadSubmission) crmsync.SyncResult {
	f.submissions = append(f.submissions, sub)
	return f.result
}

func newHandler(syncer *fakeSyncer) *LeadFormHandler {
	logger := logging.New("error")
	goals := notify.NewService(notify.NewStubGoalSender(logger), logger)
	return NewLeadFormHandler(syncer, goals, "https://portal.bitrix24.ru", logger, nil)
}

func TestSubmitLeadSuccess(t *testing.T) {
	syncer := &fakeSyncer{result: crmsync.SyncResult{OK: true, ContactID: "101", DealID: "501"}}
	handler := newHandler(syncer)

	body := `{"name":"Анна","phone":"79991112233","lead_source":"callback_form"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ContactID string `json:"contact_id"`
		DealID    string `json:"deal_id"`
		Message   string `json:"message"`
		Data      struct {
			ContactURL string `json:"contact_url"`
			DealURL    string `json:"deal_url"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "101", resp.ContactID)
	assert.Equal(t, "501", resp.DealID)
	assert.Equal(t, "Заявка успешно отправлена", resp.Message)
	assert.Equal(t, "https://portal.bitrix24.ru/crm/contact/details/101/", resp.Data.ContactURL)
	assert.Equal(t, "https://portal.bitrix24.ru/crm/deal/details/501/", resp.Data.DealURL)

	require.Len(t, syncer.submissions, 1)
	assert.Equal(t, "Анна", syncer.submissions[0].Name)
	assert.Equal(t, "callback_form", syncer.submissions[0].LeadSource)
}

func TestSubmitLeadValidationFailureSkipsSync(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := newHandler(syncer)

	body := `{"name":"","phone":"79991112233"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, syncer.submissions, "validation failure must not reach the CRM")

	var resp struct {
		Success   bool   `json:"success"`
		Error     string `json:"error"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Не указаны обязательные поля: имя и телефон", resp.Error)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestSubmitLeadFormEncodedFallback(t *testing.T) {
	syncer := &fakeSyncer{result: crmsync.SyncResult{OK: true, ContactID: "1", DealID: "2"}}
	handler := newHandler(syncer)

	body := "name=%D0%90%D0%BD%D0%BD%D0%B0&phone=79991112233&lead_source=calculator_modal&loan_amount=500000"
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, syncer.submissions, 1)
	sub := syncer.submissions[0]
	assert.Equal(t, "Анна", sub.Name)
	assert.Equal(t, "calculator_modal", sub.LeadSource)
	assert.Equal(t, 500000.0, sub.Calculator.LoanAmount)
}

func TestSubmitLeadWrongTypedJSON(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := newHandler(syncer)

	// Valid JSON with a wrong-typed field does not decode; the body is
	// retried as form data, yields no name/phone, and is rejected as a
	// validation failure rather than crashing or reaching the CRM.
	body := `{"name":123,"phone":"79991112233"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, syncer.submissions)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Не указаны обязательные поля: имя и телефон", resp.Error)
}

func TestSubmitLeadEmptyBody(t *testing.T) {
	syncer := &fakeSyncer{}
	handler := newHandler(syncer)

	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(""))
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, syncer.submissions)
}

func TestSubmitLeadCRMFailure(t *testing.T) {
	syncer := &fakeSyncer{result: crmsync.SyncResult{
		ErrorKind: crmsync.KindContactCreationFailed,
		Message:   "Не удалось создать/обновить контакт",
	}}
	handler := newHandler(syncer)

	body := `{"name":"Анна","phone":"79991112233"}`
	req := httptest.NewRequest(http.MethodPost, "/bitrix24/lead", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitLead(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Не удалось создать/обновить контакт", resp.Error)
	// The internal error kind must not leak to the client.
	assert.NotContains(t, resp.Error, "contact_creation_failed")
}

func TestPreflight(t *testing.T) {
	handler := newHandler(&fakeSyncer{})

	req := httptest.NewRequest(http.MethodOptions, "/bitrix24/lead", nil)
	w := httptest.NewRecorder()
	handler.Preflight(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestHealthCheck(t *testing.T) {
	handler := newHandler(&fakeSyncer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
