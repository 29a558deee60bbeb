package bitrix

import "context"

// AddDeal creates a deal and returns the new ID. Deals are write-only for
// this service: created once per submission, never looked up or updated.
func (c *Client) AddDeal(ctx context.Context, fields map[string]any) (string, error) {
	if c.dryRun {
		c.logger.Info("DRY RUN: would create deal", "fields", fields)
		return c.fakeID(), nil
	}

	result, err := c.call(ctx, "crm.deal.add", map[string]any{"fields": fields})
	if err != nil {
		return "", err
	}
	return decodeID(result, "deal")
}
