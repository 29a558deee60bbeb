package intake

import "strings"

// Normalize validates and shapes a raw submission into the canonical record.
// Name and phone are required; everything else has a permissive default.
func Normalize(raw RawSubmission) (LeadSubmission, error) {
	name := strings.TrimSpace(raw.Name)
	phone := strings.TrimSpace(raw.Phone)
	if name == "" || phone == "" {
		return LeadSubmission{}, ErrMissingRequiredField
	}

	source := strings.TrimSpace(raw.LeadSource)
	if source == "" {
		source = SourceWebsiteForm
	}

	paymentType := PaymentAnnuity
	if raw.PaymentType == PaymentDifferentiated {
		paymentType = PaymentDifferentiated
	}

	return LeadSubmission{
		Name:       name,
		Phone:      phone,
		LeadSource: source,
		PageURL:    strings.TrimSpace(raw.PageURL),
		UTM: UTM{
			Source:   raw.UTMSource,
			Medium:   raw.UTMMedium,
			Campaign: raw.UTMCampaign,
			Content:  raw.UTMContent,
			Term:     raw.UTMTerm,
		},
		Calculator: Calculator{
			LoanAmount:          float64(raw.LoanAmount),
			LoanTermMonths:      float64(raw.LoanTerm),
			InterestRatePercent: float64(raw.InterestRate),
			PaymentType:         paymentType,
			MonthlyPayment:      float64(raw.MonthlyPayment),
			TotalPayment:        float64(raw.TotalPayment),
			Overpayment:         float64(raw.Overpayment),
		},
	}, nil
}

// NormalizePhone converts a raw phone string to the +7XXXXXXXXXX form the CRM
// stores: strip everything but digits, turn a leading 8 into 7, prepend 7 when
// missing. Idempotent on already-normalized input.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	phone := digits.String()
	if strings.HasPrefix(phone, "8") {
		phone = "7" + phone[1:]
	}
	if !strings.HasPrefix(phone, "7") {
		phone = "7" + phone
	}
	return "+" + phone
}
