// Package notify forwards analytics goals after a lead is confirmed in the
// CRM. Goal delivery is strictly best effort: a lost goal never affects the
// sync outcome.
package notify

import (
	"context"

	"github.com/kreditline/leadbridge/internal/intake"
	"github.com/kreditline/leadbridge/pkg/logging"
)

// Goal names mirror the ones the site front-end fires.
const (
	GoalCallback        = "lead_callback"
	GoalCalculatorModal = "lead_calculator_modal"
	GoalWebsite         = "lead_website"
)

// GoalSender delivers one goal hit to the analytics collector.
type GoalSender interface {
	ReachGoal(ctx context.Context, goal string) error
}

// Service fires analytics goals for accepted leads.
type Service struct {
	sender GoalSender
	logger *logging.Logger
}

// NewService creates a goal notification service.
func NewService(sender GoalSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, logger: logger}
}

// LeadAccepted fires the goal for a successfully synchronized lead.
// Errors are logged, never returned.
func (s *Service) LeadAccepted(ctx context.Context, leadSource string) {
	if s == nil || s.sender == nil {
		return
	}
	goal := GoalForSource(leadSource)
	if err := s.sender.ReachGoal(ctx, goal); err != nil {
		s.logger.Warn("goal notification failed", "goal", goal, "source", leadSource, "error", err)
		return
	}
	s.logger.Info("goal notification sent", "goal", goal, "source", leadSource)
}

// GoalForSource maps a lead source to its analytics goal name.
func GoalForSource(leadSource string) string {
	switch leadSource {
	case intake.SourceCallbackForm:
		return GoalCallback
	case intake.SourceCalculator, intake.SourceCalculatorModal:
		return GoalCalculatorModal
	default:
		return GoalWebsite
	}
}
