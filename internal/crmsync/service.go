// Package crmsync turns a normalized lead submission into Bitrix24 records:
// it resolves a contact by phone (update-or-create) and then creates a deal
// linked to it. Contact resolution always completes before deal creation; no
// deal is ever created without a contact ID.
package crmsync

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kreditline/leadbridge/internal/intake"
	"github.com/kreditline/leadbridge/pkg/logging"
)

var syncTracer = otel.Tracer("leadbridge.internal.crmsync")

// Client-facing failure messages. Which CRM call failed stays in the logs.
const (
	msgContactFailed = "Не удалось создать/обновить контакт"
	msgDealFailed    = "Не удалось создать сделку"
)

// CRMClient is the slice of the Bitrix24 API the synchronizer needs.
type CRMClient interface {
	FindContactByPhone(ctx context.Context, phone string) (string, error)
	AddContact(ctx context.Context, fields map[string]any) (string, error)
	UpdateContact(ctx context.Context, id string, fields map[string]any) error
	AddDeal(ctx context.Context, fields map[string]any) (string, error)
	AddTask(ctx context.Context, fields map[string]any) (string, error)
}

// Service synchronizes lead submissions into the CRM.
type Service struct {
	crm    CRMClient
	cfg    Config
	logger *logging.Logger
}

// NewService creates a synchronizer.
func NewService(crm CRMClient, cfg Config, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		crm:    crm,
		cfg:    cfg,
		logger: logger,
	}
}

// SyncLead resolves the contact and creates the deal for one submission.
// An already created or updated contact is never rolled back when the deal
// fails; the partial outcome is reported via SyncResult.ContactID.
func (s *Service) SyncLead(ctx context.Context, sub intake.LeadSubmission) SyncResult {
	ctx, span := syncTracer.Start(ctx, "crmsync.sync_lead")
	defer span.End()
	span.SetAttributes(attribute.String("lead.source", sub.LeadSource))

	phone := intake.NormalizePhone(sub.Phone)

	contactID, err := s.findOrCreateContact(ctx, sub, phone)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("contact resolution failed", "phone", phone, "error", err)
		return SyncResult{ErrorKind: KindContactCreationFailed, Message: msgContactFailed}
	}

	title := DealTitle(sub.LeadSource, sub.Name)
	dealID, err := s.crm.AddDeal(ctx, s.dealFields(title, contactID, sub))
	if err != nil {
		span.RecordError(err)
		s.logger.Error("deal creation failed", "contact_id", contactID, "title", title, "error", err)
		return SyncResult{
			ContactID: contactID,
			ErrorKind: KindDealCreationFailed,
			Message:   msgDealFailed,
		}
	}

	s.logger.Info("lead synchronized", "contact_id", contactID, "deal_id", dealID, "source", sub.LeadSource)

	if s.cfg.CreateManagerTask {
		s.createManagerTask(ctx, sub, phone, dealID)
	}

	return SyncResult{OK: true, ContactID: contactID, DealID: dealID}
}

// findOrCreateContact resolves the contact for the normalized phone.
// The lookup is fail-open: a search failure is treated as "not found" and
// falls through to creation. Creation is fail-closed.
func (s *Service) findOrCreateContact(ctx context.Context, sub intake.LeadSubmission, phone string) (string, error) {
	contactID, err := s.crm.FindContactByPhone(ctx, phone)
	if err != nil {
		s.logger.Warn("contact lookup failed, treating as not found", "phone", phone, "error", err)
	}

	if contactID != "" {
		// Existing contacts keep their original acquisition attribution:
		// only the name and the UTM source are refreshed.
		fields := map[string]any{"NAME": sub.Name}
		if sub.UTM.Source != "" {
			fields["UTM_SOURCE"] = sub.UTM.Source
		}
		if err := s.crm.UpdateContact(ctx, contactID, fields); err != nil {
			s.logger.Warn("contact update failed", "contact_id", contactID, "error", err)
		}
		return contactID, nil
	}

	fields := map[string]any{
		"NAME": sub.Name,
		"PHONE": []any{
			map[string]any{"VALUE": phone, "VALUE_TYPE": "WORK"},
		},
		"SOURCE_ID": "WEB",
		"OPENED":    "Y",
		"TYPE_ID":   "CLIENT",
	}
	if sub.UTM.Source != "" {
		fields["UTM_SOURCE"] = sub.UTM.Source
	}
	if sub.UTM.Medium != "" {
		fields["UTM_MEDIUM"] = sub.UTM.Medium
	}
	if sub.UTM.Campaign != "" {
		fields["UTM_CAMPAIGN"] = sub.UTM.Campaign
	}

	contactID, err = s.crm.AddContact(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("create contact: %w", err)
	}
	return contactID, nil
}
