package global

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	services "github.com/jimstringer/store-receipt-validator/internal/services/v1"
	"github.com/jimstringer/store-receipt-validator/pkg/iap"
	"github.com/jimstringer/store-receipt-validator/pkg/itunes"
)

// SentryConfig json configuration
type SentryConfig struct {
	DSN         string `json:"dsn" env:"SENTRY_DSN"`
	Environment string `json:"environment" env:"SERVER_STAGE"`
}

// Setup setup the server based on configuration
func Setup() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	setupSentry()
	SetupSlackMessageService()
	setupIapService()
	setupReceiptService()

	Verify()
}

func setupSentry() {
	var config SentryConfig
	err := env.Parse(&config)
	if err != nil {
		panic(err)
	}

	if len(config.DSN) == 0 {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         config.DSN,
		Environment: config.Environment,
	}); err != nil {
		fmt.Printf("Sentry initialization failed: %v\n", err)
	}
}

// SetupSlackMessageService setup Slack channel
func SetupSlackMessageService() {
	var config services.SlackConfig

	err := env.Parse(&config)
	if err != nil {
		panic(err)
	}

	PaymentSlackMessageService = &services.SlackMessageService{WebHookURL: config.PaymentChannel}
}

func setupIapService() {
	var config iap.DynamoConfig
	err := env.Parse(&config)
	if err != nil {
		panic(err)
	}

	source, err := iap.NewDynamoIosSource(config)
	if err != nil {
		panic(err)
	}

	IapService = iap.NewService()
	err = IapService.Initialize(source)
	if err != nil {
		// receipts without a shared secret can still be validated
		log.WithError(err).Error("could not load the shared secrets")
	}
}

func setupReceiptService() {
	var config itunes.ReceiptValidatorConfig
	err := env.Parse(&config)
	if err != nil {
		panic(err)
	}

	ReceiptService, err = services.NewReceiptService(config, IapService)
	if err != nil {
		panic(err)
	}

	log.WithFields(log.Fields{
		"environment": config.Environment,
		"transport":   config.Transport,
	}).Info("receipt service is ready")
}
