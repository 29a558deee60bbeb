package intake

import (
	"bytes"
	"net/url"
	"strconv"
	"strings"
)

// Number is a leniently decoded numeric value. The site forms post calculator
// values either as JSON numbers or as strings from hidden inputs; anything
// that does not parse becomes zero.
type Number float64

// UnmarshalJSON accepts numbers, quoted numbers, null, and garbage.
// It never returns an error: bad input coerces to zero.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	*n = Number(parseLenientFloat(s))
	return nil
}

func parseLenientFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// RawSubmission mirrors the flat payload posted by the site forms: the
// callback form sends name/phone/UTM only, the calculator modal adds the
// seven calculator fields. Unknown keys are dropped.
type RawSubmission struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	LeadSource string `json:"lead_source"`
	PageURL    string `json:"page_url"`

	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`

	LoanAmount     Number `json:"loan_amount"`
	LoanTerm       Number `json:"loan_term"`
	InterestRate   Number `json:"interest_rate"`
	PaymentType    string `json:"payment_type"`
	MonthlyPayment Number `json:"monthly_payment"`
	TotalPayment   Number `json:"total_payment"`
	Overpayment    Number `json:"overpayment"`
}

// FromForm fills a RawSubmission from form-encoded values, applying the same
// lenient numeric parsing as the JSON path.
func FromForm(values url.Values) RawSubmission {
	return RawSubmission{
		Name:       values.Get("name"),
		Phone:      values.Get("phone"),
		LeadSource: values.Get("lead_source"),
		PageURL:    values.Get("page_url"),

		UTMSource:   values.Get("utm_source"),
		UTMMedium:   values.Get("utm_medium"),
		UTMCampaign: values.Get("utm_campaign"),
		UTMContent:  values.Get("utm_content"),
		UTMTerm:     values.Get("utm_term"),

		LoanAmount:     Number(parseLenientFloat(values.Get("loan_amount"))),
		LoanTerm:       Number(parseLenientFloat(values.Get("loan_term"))),
		InterestRate:   Number(parseLenientFloat(values.Get("interest_rate"))),
		PaymentType:    values.Get("payment_type"),
		MonthlyPayment: Number(parseLenientFloat(values.Get("monthly_payment"))),
		TotalPayment:   Number(parseLenientFloat(values.Get("total_payment"))),
		Overpayment:    Number(parseLenientFloat(values.Get("overpayment"))),
	}
}
