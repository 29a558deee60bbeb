package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kreditline/leadbridge/internal/api/router"
	"github.com/kreditline/leadbridge/internal/bitrix"
	appconfig "github.com/kreditline/leadbridge/internal/config"
	"github.com/kreditline/leadbridge/internal/crmsync"
	"github.com/kreditline/leadbridge/internal/http/handlers"
	"github.com/kreditline/leadbridge/internal/notify"
	"github.com/kreditline/leadbridge/internal/observability/metrics"
	"github.com/kreditline/leadbridge/pkg/logging"
)

func main() {
	// Load .env for local development; missing file is fine
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.NewWithFile(cfg.LogLevel, cfg.LogFile)
	logger.Info("starting leadbridge API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	leadMetrics := metrics.NewLeadMetrics(nil)

	dryRun := cfg.BitrixDryRun
	if cfg.BitrixWebhookURL == "" {
		logger.Warn("BITRIX24_WEBHOOK_URL not set, forcing dry-run mode")
		dryRun = true
	}
	crmClient := bitrix.NewClient(cfg.BitrixWebhookURL, logger,
		bitrix.WithTimeout(cfg.BitrixTimeout),
		bitrix.WithObserver(leadMetrics),
		bitrix.WithDryRun(dryRun),
	)

	syncer := crmsync.NewService(crmClient, crmsync.Config{
		UseCustomFields: cfg.UseCustomFields,
		CustomFields: crmsync.CustomFieldIDs{
			LoanAmount:     cfg.LoanAmountFieldID,
			LoanTerm:       cfg.LoanTermFieldID,
			InterestRate:   cfg.InterestRateFieldID,
			PaymentType:    cfg.PaymentTypeFieldID,
			MonthlyPayment: cfg.MonthlyPaymentFieldID,
			TotalPayment:   cfg.TotalPaymentFieldID,
			Overpayment:    cfg.OverpaymentFieldID,
		},
		PaymentTypeCodes: crmsync.PaymentTypeCodes{
			Annuity:        cfg.PaymentTypeAnnuityCode,
			Differentiated: cfg.PaymentTypeDiffCode,
		},
		CreateManagerTask: cfg.CreateManagerTask,
		TaskResponsibleID: cfg.TaskResponsibleID,
	}, logger)

	var goalSender notify.GoalSender
	if cfg.GoalWebhookURL != "" {
		goalSender = notify.NewWebhookGoalSender(cfg.GoalWebhookURL, cfg.MetrikaCounterID, logger)
	} else {
		goalSender = notify.NewStubGoalSender(logger)
	}
	goals := notify.NewService(goalSender, logger)

	leadForm := handlers.NewLeadFormHandler(syncer, goals, cfg.PortalBaseURL, logger, leadMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadForm:           leadForm,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
