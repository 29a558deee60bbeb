package intake

// Lead source values recognized by the deal title templates. Anything else is
// carried through as a free-form source string.
const (
	SourceWebsiteForm     = "website_form"
	SourceCallbackForm    = "callback_form"
	SourceCalculator      = "calculator"
	SourceCalculatorModal = "calculator_modal"
)

// Payment schedule types produced by the loan calculator.
const (
	PaymentAnnuity        = "annuity"
	PaymentDifferentiated = "differentiated"
)

// UTM holds the five campaign-attribution parameters carried from the
// referring URL. Values are opaque and forwarded to the CRM as-is.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
	Term     string
}

// Empty reports whether every UTM field is blank.
func (u UTM) Empty() bool {
	return u.Source == "" && u.Medium == "" && u.Campaign == "" && u.Content == "" && u.Term == ""
}

// Calculator is the loan-calculator snapshot attached to a submission.
// All values come from a display widget, not a financial engine: absent or
// unparsable input is zero, never an error.
type Calculator struct {
	LoanAmount          float64
	LoanTermMonths      float64
	InterestRatePercent float64
	PaymentType         string
	MonthlyPayment      float64
	TotalPayment        float64
	Overpayment         float64
}

// LeadSubmission is the canonical, validated lead record handed to the CRM
// synchronizer. Name and Phone are trimmed and non-empty.
type LeadSubmission struct {
	Name       string
	Phone      string // raw, as submitted; normalized at sync time
	LeadSource string
	PageURL    string
	UTM        UTM
	Calculator Calculator
}
