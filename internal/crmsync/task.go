package crmsync

import (
	"context"
	"fmt"
	"time"

	"github.com/kreditline/leadbridge/internal/intake"
)

// createManagerTask files a follow-up task bound to the deal. Best effort:
// failures are logged and never affect the sync outcome.
func (s *Service) createManagerTask(ctx context.Context, sub intake.LeadSubmission, phone, dealID string) {
	description := fmt.Sprintf(
		"Клиент оставил заявку на сайте.\nТелефон: %s\nСделка: [URL=/crm/deal/details/%s/]Открыть сделку[/URL]",
		phone, dealID,
	)

	fields := map[string]any{
		"TITLE":          "Связаться с клиентом: " + sub.Name,
		"DESCRIPTION":    description,
		"RESPONSIBLE_ID": s.cfg.TaskResponsibleID,
		"DEADLINE":       time.Now().Add(time.Hour).Format(time.RFC3339),
		"UF_CRM_TASK":    []any{"D_" + dealID},
	}

	taskID, err := s.crm.AddTask(ctx, fields)
	if err != nil {
		s.logger.Warn("manager task creation failed", "deal_id", dealID, "error", err)
		return
	}
	s.logger.Info("manager task created", "task_id", taskID, "deal_id", dealID)
}
