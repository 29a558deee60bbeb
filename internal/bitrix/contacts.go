package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ID is an opaque Bitrix24 record identifier. The API returns JSON numbers
// for freshly created records and strings inside list responses; both decode.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID(bytes.Trim(bytes.TrimSpace(data), `"`))
	return nil
}

// FindContactByPhone looks up a contact whose phone field matches exactly and
// returns its ID, or "" when no contact matches. Bitrix24 does not specify
// result order; the first record wins.
func (c *Client) FindContactByPhone(ctx context.Context, phone string) (string, error) {
	if c.dryRun {
		c.logger.Info("DRY RUN: would search contact", "phone", phone)
		return "", nil
	}

	result, err := c.call(ctx, "crm.contact.list", map[string]any{
		"filter": map[string]any{"PHONE": phone},
		"select": []string{"ID", "NAME", "PHONE"},
	})
	if err != nil {
		return "", err
	}

	var contacts []struct {
		ID ID `json:"ID"`
	}
	if err := json.Unmarshal(result, &contacts); err != nil {
		return "", fmt.Errorf("decode contact list: %w", err)
	}
	if len(contacts) == 0 || contacts[0].ID == "" {
		return "", nil
	}
	return string(contacts[0].ID), nil
}

// AddContact creates a contact and returns the new ID.
func (c *Client) AddContact(ctx context.Context, fields map[string]any) (string, error) {
	if c.dryRun {
		c.logger.Info("DRY RUN: would create contact", "fields", fields)
		return c.fakeID(), nil
	}

	result, err := c.call(ctx, "crm.contact.add", map[string]any{"fields": fields})
	if err != nil {
		return "", err
	}
	return decodeID(result, "contact")
}

// UpdateContact updates an existing contact in place.
func (c *Client) UpdateContact(ctx context.Context, id string, fields map[string]any) error {
	if c.dryRun {
		c.logger.Info("DRY RUN: would update contact", "contact_id", id, "fields", fields)
		return nil
	}

	_, err := c.call(ctx, "crm.contact.update", map[string]any{
		"id":     id,
		"fields": fields,
	})
	return err
}

func decodeID(result json.RawMessage, kind string) (string, error) {
	var id ID
	if err := json.Unmarshal(result, &id); err != nil {
		return "", fmt.Errorf("decode %s id: %w", kind, err)
	}
	if id == "" || id == "null" {
		return "", fmt.Errorf("bitrix24 returned no %s id", kind)
	}
	return string(id), nil
}
