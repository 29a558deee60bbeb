// Package bitrix provides a client for the Bitrix24 REST webhook API.
// Every call is a form-encoded POST to <webhook base>/<method>.json; the
// response carries either a "result" key or an error/error_description pair.
package bitrix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kreditline/leadbridge/pkg/logging"
)

var callTracer = otel.Tracer("leadbridge.internal.bitrix")

const defaultTimeout = 30 * time.Second

// APIError is an error payload returned by the Bitrix24 API itself,
// as opposed to a transport failure.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("bitrix24 API error %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("bitrix24 API error %s", e.Code)
}

// RequestObserver receives the outcome of every CRM call. Implemented by the
// metrics layer; nil is fine.
type RequestObserver interface {
	ObserveCRMRequest(method, status string)
}

// Client is a Bitrix24 REST webhook client.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *logging.Logger
	observer   RequestObserver
	dryRun     bool // when true, mutating calls log but don't hit the CRM
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-call timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithObserver attaches a per-call outcome observer.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithDryRun enables dry-run mode: mutating calls log the payload and return
// fake identifiers without calling Bitrix24.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) {
		c.dryRun = dryRun
	}
}

// NewClient creates a Bitrix24 client for the given inbound webhook URL
// (e.g. https://example.bitrix24.ru/rest/1/token/).
func NewClient(webhookURL string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if webhookURL != "" && !strings.HasSuffix(webhookURL, "/") {
		webhookURL += "/"
	}
	c := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call performs one REST method invocation and returns the raw "result"
// payload. Non-200 responses and malformed JSON are transport errors; an
// error payload from the CRM comes back as *APIError.
func (c *Client) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	ctx, span := callTracer.Start(ctx, "bitrix.call")
	defer span.End()
	span.SetAttributes(attribute.String("bitrix.method", method))

	body := Encode(params).Encode()
	c.logger.Info("bitrix24 request", "method", method, "body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL+method+".json", strings.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, "transport_error")
		span.RecordError(err)
		c.logger.Error("bitrix24 request failed", "method", method, "error", err)
		return nil, fmt.Errorf("bitrix24 %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, "transport_error")
		span.RecordError(err)
		return nil, fmt.Errorf("bitrix24 %s: read response: %w", method, err)
	}

	c.logger.Info("bitrix24 response", "method", method, "status", resp.StatusCode, "body", string(respBody))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		c.observe(method, "http_error")
		err := fmt.Errorf("bitrix24 %s returned %d: %s", method, resp.StatusCode, truncate(respBody, 200))
		span.RecordError(err)
		return nil, err
	}

	var envelope struct {
		Result           json.RawMessage `json:"result"`
		Error            string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		c.observe(method, "invalid_json")
		span.RecordError(err)
		return nil, fmt.Errorf("bitrix24 %s: invalid JSON response: %w", method, err)
	}

	if envelope.Error != "" {
		c.observe(method, "api_error")
		apiErr := &APIError{Code: envelope.Error, Description: envelope.ErrorDescription}
		span.RecordError(apiErr)
		c.logger.Error("bitrix24 returned error payload", "method", method, "error", apiErr)
		return nil, apiErr
	}

	c.observe(method, "ok")
	return envelope.Result, nil
}

func (c *Client) observe(method, status string) {
	if c.observer != nil {
		c.observer.ObserveCRMRequest(method, status)
	}
}

func (c *Client) fakeID() string {
	return fmt.Sprintf("dry-run-%d", time.Now().UnixMilli())
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
