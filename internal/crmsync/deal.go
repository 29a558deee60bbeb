package crmsync

import "github.com/kreditline/leadbridge/internal/intake"

// dealFields assembles the crm.deal.add field map for a submission.
func (s *Service) dealFields(title, contactID string, sub intake.LeadSubmission) map[string]any {
	fields := map[string]any{
		"TITLE":      title,
		"CONTACT_ID": contactID,
		"OPENED":     "Y",
		"SOURCE_ID":  "WEB",
		"STAGE_ID":   "NEW",
	}

	calc := sub.Calculator
	if calc.LoanAmount > 0 {
		fields["OPPORTUNITY"] = calc.LoanAmount
		fields["CURRENCY_ID"] = "RUB"
	}

	if s.cfg.UseCustomFields {
		setNumberField(fields, s.cfg.CustomFields.LoanAmount, calc.LoanAmount)
		setNumberField(fields, s.cfg.CustomFields.LoanTerm, calc.LoanTermMonths)
		setNumberField(fields, s.cfg.CustomFields.InterestRate, calc.InterestRatePercent)
		setNumberField(fields, s.cfg.CustomFields.MonthlyPayment, calc.MonthlyPayment)
		setNumberField(fields, s.cfg.CustomFields.TotalPayment, calc.TotalPayment)
		setNumberField(fields, s.cfg.CustomFields.Overpayment, calc.Overpayment)
		if s.cfg.CustomFields.PaymentType != "" && calc.PaymentType != "" {
			// Enumeration fields take a list of enum codes.
			fields[s.cfg.CustomFields.PaymentType] = []any{s.paymentTypeCode(calc.PaymentType)}
		}
	}

	fields["COMMENTS"] = DealComment(sub.LeadSource, sub.UTM)

	// Content and term attribution lands only here, never on the contact.
	setStringField(fields, "UTM_SOURCE", sub.UTM.Source)
	setStringField(fields, "UTM_MEDIUM", sub.UTM.Medium)
	setStringField(fields, "UTM_CAMPAIGN", sub.UTM.Campaign)
	setStringField(fields, "UTM_CONTENT", sub.UTM.Content)
	setStringField(fields, "UTM_TERM", sub.UTM.Term)

	return fields
}

func (s *Service) paymentTypeCode(paymentType string) int {
	if paymentType == intake.PaymentDifferentiated {
		return s.cfg.PaymentTypeCodes.Differentiated
	}
	return s.cfg.PaymentTypeCodes.Annuity
}

func setNumberField(fields map[string]any, key string, value float64) {
	if key != "" && value != 0 {
		fields[key] = value
	}
}

func setStringField(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
