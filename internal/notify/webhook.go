package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kreditline/leadbridge/pkg/logging"
)

const goalSendTimeout = 5 * time.Second

// WebhookGoalSender posts goal hits as JSON to a collector endpoint.
type WebhookGoalSender struct {
	url        string
	counterID  string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewWebhookGoalSender creates a sender posting to the given URL.
func NewWebhookGoalSender(url, counterID string, logger *logging.Logger) *WebhookGoalSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &WebhookGoalSender{
		url:       url,
		counterID: counterID,
		httpClient: &http.Client{
			Timeout: goalSendTimeout,
		},
		logger: logger,
	}
}

// ReachGoal delivers one goal hit.
func (s *WebhookGoalSender) ReachGoal(ctx context.Context, goal string) error {
	payload, err := json.Marshal(map[string]string{
		"counter_id": s.counterID,
		"goal":       goal,
	})
	if err != nil {
		return fmt.Errorf("marshal goal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send goal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("goal collector returned %d", resp.StatusCode)
	}
	return nil
}

// StubGoalSender logs but doesn't send. Used when no collector is configured.
type StubGoalSender struct {
	logger *logging.Logger
}

// NewStubGoalSender creates a stub sender.
func NewStubGoalSender(logger *logging.Logger) *StubGoalSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubGoalSender{logger: logger}
}

// ReachGoal logs the goal and succeeds.
func (s *StubGoalSender) ReachGoal(_ context.Context, goal string) error {
	s.logger.Info("stub goal sender: would send", "goal", goal)
	return nil
}

// Ensure interface compliance
var _ GoalSender = (*WebhookGoalSender)(nil)
var _ GoalSender = (*StubGoalSender)(nil)
