package v1

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jimstringer/store-receipt-validator/pkg/itunes"
)

var (
	ErrNoSharedSecret = errors.New("no shared secret registered for bundle")
)

var validate = validator.New()

// SharedSecretProvider returns the shared secret registered for an app bundle
type SharedSecretProvider interface {
	GetIosSharedKey(bundleID string) (string, bool)
}

// ValidateIosRequest is a receipt to validate against the App Store
type ValidateIosRequest struct {
	BundleID               string `json:"bundleId" validate:"required"`
	Receipt                string `json:"receipt" validate:"required"`
	IsSubscription         bool   `json:"isSubscription"`
	ExcludeOldTransactions bool   `json:"excludeOldTransactions"`
}

// ValidateIosResult summarises the App Store verdict
type ValidateIosResult struct {
	Status          int                   `json:"status"`
	Category        itunes.ResultCategory `json:"category"`
	Valid           bool                  `json:"valid"`
	Environment     string                `json:"environment,omitempty"`
	Endpoint        itunes.Endpoint       `json:"endpoint"`
	SandboxFallback bool                  `json:"sandboxFallback"`

	Response *itunes.Response `json:"-"`
}

// ReceiptService validates receipts with a fresh validator per call, sharing one transport
type ReceiptService struct {
	Config        itunes.ReceiptValidatorConfig
	Transport     itunes.Transport
	SharedSecrets SharedSecretProvider
}

// NewReceiptService creates the service and the transport named by the configuration
func NewReceiptService(config itunes.ReceiptValidatorConfig, sharedSecrets SharedSecretProvider) (*ReceiptService, error) {
	if _, err := itunes.EndpointForEnvironment(config.Environment); err != nil {
		return nil, err
	}

	transport, err := config.NewTransport()
	if err != nil {
		return nil, err
	}

	return &ReceiptService{
		Config:        config,
		Transport:     transport,
		SharedSecrets: sharedSecrets,
	}, nil
}

// ValidateIos validates a receipt. Result codes reported by the App Store are part of the result, not errors.
func (receiptService *ReceiptService) ValidateIos(ctx context.Context, req ValidateIosRequest) (*ValidateIosResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	receiptValidator, err := itunes.NewReceiptValidator(receiptService.Config, receiptService.Transport)
	if err != nil {
		return nil, err
	}

	if req.IsSubscription {
		if receiptService.SharedSecrets == nil {
			return nil, ErrNoSharedSecret
		}
		sharedSecret, ok := receiptService.SharedSecrets.GetIosSharedKey(req.BundleID)
		if !ok {
			return nil, ErrNoSharedSecret
		}
		receiptValidator.SetSharedSecret(sharedSecret)
	}

	if req.ExcludeOldTransactions {
		receiptValidator.SetExcludeOldTransactions(true)
	}

	response, err := receiptValidator.Validate(ctx, itunes.WithReceiptData(req.Receipt))
	if err != nil {
		return nil, err
	}

	return &ValidateIosResult{
		Status:          response.ResultCode(),
		Category:        response.Category(),
		Valid:           response.IsValid(),
		Environment:     response.Environment(),
		Endpoint:        response.Endpoint(),
		SandboxFallback: response.Endpoint() != receiptValidator.Endpoint(),
		Response:        response,
	}, nil
}
