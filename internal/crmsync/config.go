package crmsync

// CustomFieldIDs maps calculator values to the UF_CRM_* deal field
// identifiers configured in the target Bitrix24 portal. An empty ID disables
// that single field.
type CustomFieldIDs struct {
	LoanAmount     string
	LoanTerm       string
	InterestRate   string
	PaymentType    string
	MonthlyPayment string
	TotalPayment   string
	Overpayment    string
}

// PaymentTypeCodes holds the portal's enumeration codes for the payment-type
// custom field. These are assigned by Bitrix24 when the enumeration is
// created, so they differ between portals.
type PaymentTypeCodes struct {
	Annuity        int
	Differentiated int
}

// Config is the explicit synchronizer configuration, passed in at
// construction time.
type Config struct {
	UseCustomFields  bool
	CustomFields     CustomFieldIDs
	PaymentTypeCodes PaymentTypeCodes

	// When enabled, a follow-up task is created for the manager after each
	// deal. Task failures never fail the sync.
	CreateManagerTask bool
	TaskResponsibleID int
}
