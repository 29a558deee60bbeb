package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kreditline/leadbridge/internal/crmsync"
	"github.com/kreditline/leadbridge/internal/intake"
	"github.com/kreditline/leadbridge/internal/notify"
	"github.com/kreditline/leadbridge/internal/observability/metrics"
	"github.com/kreditline/leadbridge/pkg/logging"
)

const maxBodySize = 1 << 20

var errEmptyBody = errors.New("empty or unparsable request body")

// LeadSyncer performs the CRM synchronization for a normalized submission.
type LeadSyncer interface {
	SyncLead(ctx context.Context, sub intake.LeadSubmission) crmsync.SyncResult
}

// LeadFormHandler accepts lead submissions from the site forms and relays
// them to the CRM.
type LeadFormHandler struct {
	syncer        LeadSyncer
	goals         *notify.Service
	portalBaseURL string
	logger        *logging.Logger
	metrics       *metrics.LeadMetrics
}

// NewLeadFormHandler creates a lead form handler.
func NewLeadFormHandler(syncer LeadSyncer, goals *notify.Service, portalBaseURL string, logger *logging.Logger, m *metrics.LeadMetrics) *LeadFormHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadFormHandler{
		syncer:        syncer,
		goals:         goals,
		portalBaseURL: strings.TrimSuffix(portalBaseURL, "/"),
		logger:        logger,
		metrics:       m,
	}
}

type submitResponse struct {
	Success   bool        `json:"success"`
	ContactID string      `json:"contact_id"`
	DealID    string      `json:"deal_id"`
	Message   string      `json:"message"`
	Data      recordLinks `json:"data"`
}

type recordLinks struct {
	ContactURL string `json:"contact_url"`
	DealURL    string `json:"deal_url"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// SubmitLead handles POST lead submissions. The body is JSON; if JSON
// parsing fails the same bytes are re-parsed as a form-encoded payload,
// which is what older embeds of the integration script send.
func (h *LeadFormHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.badRequest(w, "Нет данных для обработки")
		return
	}

	raw, err := h.decodeSubmission(body)
	if err != nil {
		h.logger.Warn("unparsable submission body", "error", err, "bytes", len(body))
		h.metrics.ObserveLead("unknown", "bad_request")
		h.badRequest(w, "Нет данных для обработки")
		return
	}

	sub, err := intake.Normalize(raw)
	if err != nil {
		h.logger.Warn("submission rejected", "error", err)
		h.metrics.ObserveLead("unknown", "validation_error")
		h.badRequest(w, "Не указаны обязательные поля: имя и телефон")
		return
	}

	h.logger.Info("processing lead", "name", sub.Name, "source", sub.LeadSource)

	res := h.syncer.SyncLead(r.Context(), sub)
	h.metrics.ObserveSyncLatency(sub.LeadSource, time.Since(start).Seconds())

	if !res.OK {
		// Which CRM call failed stays here in the log; the client gets the
		// generic message only.
		h.logger.Error("lead sync failed",
			"kind", string(res.ErrorKind),
			"source", sub.LeadSource,
			"contact_id", res.ContactID,
		)
		h.metrics.ObserveLead(sub.LeadSource, "crm_error")
		h.badRequest(w, res.Message)
		return
	}

	h.metrics.ObserveLead(sub.LeadSource, "ok")
	h.goals.LeadAccepted(r.Context(), sub.LeadSource)

	writeJSON(w, http.StatusOK, submitResponse{
		Success:   true,
		ContactID: res.ContactID,
		DealID:    res.DealID,
		Message:   "Заявка успешно отправлена",
		Data: recordLinks{
			ContactURL: h.portalBaseURL + "/crm/contact/details/" + res.ContactID + "/",
			DealURL:    h.portalBaseURL + "/crm/deal/details/" + res.DealID + "/",
		},
	})
}

// Preflight answers OPTIONS with 200 and no body.
func (h *LeadFormHandler) Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HealthCheck reports service liveness.
func (h *LeadFormHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *LeadFormHandler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *LeadFormHandler) decodeSubmission(body []byte) (intake.RawSubmission, error) {
	var raw intake.RawSubmission
	jsonErr := json.Unmarshal(body, &raw)
	if jsonErr == nil {
		return raw, nil
	}
	if len(body) > 0 {
		// Wrong-typed JSON lands here too, not just form posts. Keep the
		// decode error visible so such payloads are diagnosable.
		h.logger.Warn("json decode failed, retrying as form data", "error", jsonErr)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil || len(values) == 0 {
		return intake.RawSubmission{}, errEmptyBody
	}
	return intake.FromForm(values), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
