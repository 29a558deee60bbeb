package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string
	LogFile  string

	// Bitrix24 REST webhook settings
	BitrixWebhookURL string
	BitrixTimeout    time.Duration
	BitrixDryRun     bool

	// Base URL of the Bitrix24 portal, used to build record links in responses
	PortalBaseURL string

	// Custom deal fields holding the loan-calculator snapshot. The IDs are
	// portal-specific (created by hand in the CRM), so every one of them is
	// overridable. Empty ID disables that single field.
	UseCustomFields        bool
	LoanAmountFieldID      string
	LoanTermFieldID        string
	InterestRateFieldID    string
	PaymentTypeFieldID     string
	MonthlyPaymentFieldID  string
	TotalPaymentFieldID    string
	OverpaymentFieldID     string
	PaymentTypeAnnuityCode int
	PaymentTypeDiffCode    int

	// Optional follow-up task for the manager after a deal is created
	CreateManagerTask bool
	TaskResponsibleID int

	// Analytics goal forwarding (fired after a confirmed sync)
	GoalWebhookURL   string
	MetrikaCounterID string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		BitrixWebhookURL: getEnv("BITRIX24_WEBHOOK_URL", ""),
		BitrixTimeout:    getEnvAsDuration("BITRIX24_TIMEOUT", 30*time.Second),
		BitrixDryRun:     getEnvAsBool("BITRIX24_DRY_RUN", false),

		PortalBaseURL: getEnv("BITRIX24_PORTAL_URL", "https://b24hrms.bitrix24.ru"),

		UseCustomFields:        getEnvAsBool("BITRIX24_USE_CUSTOM_FIELDS", true),
		LoanAmountFieldID:      getEnv("BITRIX24_UF_LOAN_AMOUNT", "UF_CRM_1762440594133"),
		LoanTermFieldID:        getEnv("BITRIX24_UF_LOAN_TERM", "UF_CRM_1762440608882"),
		InterestRateFieldID:    getEnv("BITRIX24_UF_INTEREST_RATE", "UF_CRM_1762440622198"),
		PaymentTypeFieldID:     getEnv("BITRIX24_UF_PAYMENT_TYPE", "UF_CRM_1762440644083"),
		MonthlyPaymentFieldID:  getEnv("BITRIX24_UF_MONTHLY_PAYMENT", "UF_CRM_1762440657381"),
		TotalPaymentFieldID:    getEnv("BITRIX24_UF_TOTAL_PAYMENT", "UF_CRM_1762440672565"),
		OverpaymentFieldID:     getEnv("BITRIX24_UF_OVERPAYMENT", "UF_CRM_1762440678131"),
		PaymentTypeAnnuityCode: getEnvAsInt("BITRIX24_PAYMENT_TYPE_ANNUITY_CODE", 45),
		PaymentTypeDiffCode:    getEnvAsInt("BITRIX24_PAYMENT_TYPE_DIFF_CODE", 47),

		CreateManagerTask: getEnvAsBool("BITRIX24_CREATE_MANAGER_TASK", false),
		TaskResponsibleID: getEnvAsInt("BITRIX24_TASK_RESPONSIBLE_ID", 1),

		GoalWebhookURL:   getEnv("GOAL_WEBHOOK_URL", ""),
		MetrikaCounterID: getEnv("METRIKA_COUNTER_ID", ""),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
