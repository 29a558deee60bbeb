package bitrix

import (
	"context"
	"encoding/json"
	"fmt"
)

// AddTask creates a task via tasks.task.add and returns the new task ID.
// Used for the optional manager follow-up after a deal is created.
func (c *Client) AddTask(ctx context.Context, fields map[string]any) (string, error) {
	if c.dryRun {
		c.logger.Info("DRY RUN: would create task", "fields", fields)
		return c.fakeID(), nil
	}

	result, err := c.call(ctx, "tasks.task.add", map[string]any{"fields": fields})
	if err != nil {
		return "", err
	}

	var payload struct {
		Task struct {
			ID ID `json:"id"`
		} `json:"task"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return "", fmt.Errorf("decode task: %w", err)
	}
	if payload.Task.ID == "" {
		return "", fmt.Errorf("bitrix24 returned no task id")
	}
	return string(payload.Task.ID), nil
}
