package itunes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/calmisland/go-errors"
	log "github.com/sirupsen/logrus"
)

// Validator holds the configuration used to validate App Store receipts.
// It is not safe for concurrent mutation; callers sharing one must synchronize.
type Validator struct {
	endpoint               Endpoint
	receiptData            string
	sharedSecret           *string
	excludeOldTransactions bool

	transport  Transport
	classifier *Classifier
	logger     *log.Entry
}

// Request is the payload posted to verifyReceipt
type Request struct {
	ReceiptData            string  `json:"receipt-data"`
	Password               *string `json:"password,omitempty"`
	ExcludeOldTransactions bool    `json:"exclude-old-transactions"`
}

// NewValidator creates a validator for the production or the sandbox endpoint
func NewValidator(endpoint Endpoint) (*Validator, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	return &Validator{
		endpoint:   endpoint,
		classifier: defaultClassifier,
		logger:     log.WithField("component", "itunes"),
	}, nil
}

// Endpoint returns the configured endpoint
func (validator *Validator) Endpoint() Endpoint {
	return validator.endpoint
}

// SetEndpoint switches between production and sandbox. Any other value is rejected and the current endpoint kept.
func (validator *Validator) SetEndpoint(endpoint Endpoint) (*Validator, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return validator, err
	}
	validator.endpoint = endpoint
	return validator, nil
}

// ReceiptData returns the stored receipt, always base64 encoded
func (validator *Validator) ReceiptData() string {
	return validator.receiptData
}

// SetReceiptData stores a receipt given either in base64 or as raw json.
// A value containing '{' is considered raw json and is base64 encoded.
func (validator *Validator) SetReceiptData(receiptData string) *Validator {
	if strings.Contains(receiptData, "{") {
		validator.receiptData = base64.StdEncoding.EncodeToString([]byte(receiptData))
	} else {
		validator.receiptData = receiptData
	}
	return validator
}

// SharedSecret returns the shared secret and whether one was set
func (validator *Validator) SharedSecret() (string, bool) {
	if validator.sharedSecret == nil {
		return "", false
	}
	return *validator.sharedSecret, true
}

// SetSharedSecret sets the app shared secret, needed for auto-renewable subscriptions
func (validator *Validator) SetSharedSecret(sharedSecret string) *Validator {
	validator.sharedSecret = &sharedSecret
	return validator
}

// ClearSharedSecret removes the shared secret so no password is sent
func (validator *Validator) ClearSharedSecret() *Validator {
	validator.sharedSecret = nil
	return validator
}

// ExcludeOldTransactions returns the exclude-old-transactions flag
func (validator *Validator) ExcludeOldTransactions() bool {
	return validator.excludeOldTransactions
}

// SetExcludeOldTransactions makes the service return only the latest renewal transaction of subscriptions
func (validator *Validator) SetExcludeOldTransactions(exclude bool) *Validator {
	validator.excludeOldTransactions = exclude
	return validator
}

// SetTransport replaces the transport. A nil transport is recreated on next use.
func (validator *Validator) SetTransport(transport Transport) *Validator {
	validator.transport = transport
	return validator
}

// SetClassifier replaces the result code classifier
func (validator *Validator) SetClassifier(classifier *Classifier) *Validator {
	if classifier == nil {
		classifier = defaultClassifier
	}
	validator.classifier = classifier
	return validator
}

// SetLogger replaces the logger entry
func (validator *Validator) SetLogger(logger *log.Entry) *Validator {
	if logger != nil {
		validator.logger = logger
	}
	return validator
}

func (validator *Validator) client() Transport {
	if validator.transport == nil {
		validator.transport = NewHTTPTransport(defaultTimeout)
	}
	return validator.transport
}

// Request builds the payload for the current configuration
func (validator *Validator) Request() Request {
	request := Request{
		ReceiptData:            validator.receiptData,
		ExcludeOldTransactions: validator.excludeOldTransactions,
	}
	if validator.sharedSecret != nil {
		password := *validator.sharedSecret
		request.Password = &password
	}
	return request
}

// EncodeRequest returns the json payload for the current configuration
func (validator *Validator) EncodeRequest() ([]byte, error) {
	body, err := json.Marshal(validator.Request())
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}
	return body, nil
}

// ValidateOption overrides the configured receipt data or shared secret for a validation
type ValidateOption func(*Validator)

// WithReceiptData replaces the receipt data before validating. An empty value keeps the existing one.
func WithReceiptData(receiptData string) ValidateOption {
	return func(validator *Validator) {
		if receiptData != "" {
			validator.SetReceiptData(receiptData)
		}
	}
}

// WithSharedSecret replaces the shared secret before validating. An empty value keeps the existing one.
func WithSharedSecret(sharedSecret string) ValidateOption {
	return func(validator *Validator) {
		if sharedSecret != "" {
			validator.SetSharedSecret(sharedSecret)
		}
	}
}

// Validate posts the receipt to the configured endpoint and returns the classified response.
// When production reports a sandbox receipt, the same payload is posted once to the sandbox
// and that response is returned instead.
func (validator *Validator) Validate(ctx context.Context, opts ...ValidateOption) (*Response, error) {
	for _, opt := range opts {
		opt(validator)
	}

	body, err := validator.EncodeRequest()
	if err != nil {
		return nil, err
	}

	endpoint := validator.endpoint
	response, err := validator.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	if endpoint == EndpointProduction && response.ResultCode() == ResultSandboxReceiptSentToProduction {
		validator.logger.WithFields(log.Fields{
			"status":   response.ResultCode(),
			"endpoint": EndpointSandbox,
		}).Debug("sandbox receipt sent to production, retrying against sandbox")

		return validator.post(ctx, EndpointSandbox, body)
	}

	return response, nil
}

func (validator *Validator) post(ctx context.Context, endpoint Endpoint, body []byte) (*Response, error) {
	validator.logger.WithField("endpoint", endpoint).Debug("posting receipt")

	statusCode, raw, err := validator.client().Post(ctx, string(endpoint), body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: statusCode, Err: err}
	}
	if statusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: statusCode}
	}

	response, err := parseResponse(raw, validator.classifier)
	if err != nil {
		return nil, err
	}
	response.endpoint = endpoint
	return response, nil
}
