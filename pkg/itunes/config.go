package itunes

import (
	"strings"
	"time"

	"github.com/calmisland/go-errors"
)

const (
	TransportHTTP     = "http"
	TransportFastHTTP = "fasthttp"
)

// ReceiptValidatorConfig json configuration
type ReceiptValidatorConfig struct {
	Environment            string        `json:"environment" env:"APPLE_RECEIPT_ENVIRONMENT" envDefault:"production"`
	SharedSecret           string        `json:"shared_secret" env:"APPLE_RECEIPT_SHARED_SECRET"`
	ExcludeOldTransactions bool          `json:"exclude_old_transactions" env:"APPLE_RECEIPT_EXCLUDE_OLD_TRANSACTIONS"`
	Transport              string        `json:"transport" env:"APPLE_RECEIPT_TRANSPORT" envDefault:"http"`
	Timeout                time.Duration `json:"timeout" env:"APPLE_RECEIPT_TIMEOUT" envDefault:"30s"`
}

// NewTransport creates the transport named by the configuration
func (config ReceiptValidatorConfig) NewTransport() (Transport, error) {
	switch strings.ToLower(config.Transport) {
	case "", TransportHTTP:
		return NewHTTPTransport(config.Timeout), nil
	case TransportFastHTTP:
		return NewFastHTTPTransport(config.Timeout), nil
	default:
		return nil, errors.Errorf("unknown transport [%s]", config.Transport)
	}
}

// NewReceiptValidator creates a validator from a configuration.
// A nil transport is replaced by the one named in the configuration.
func NewReceiptValidator(config ReceiptValidatorConfig, transport Transport) (*Validator, error) {
	endpoint, err := EndpointForEnvironment(config.Environment)
	if err != nil {
		return nil, err
	}

	if transport == nil {
		transport, err = config.NewTransport()
		if err != nil {
			return nil, err
		}
	}

	validator, err := NewValidator(endpoint)
	if err != nil {
		return nil, err
	}

	if len(config.SharedSecret) > 0 {
		validator.SetSharedSecret(config.SharedSecret)
	}
	validator.SetExcludeOldTransactions(config.ExcludeOldTransactions)
	validator.SetTransport(transport)

	return validator, nil
}
