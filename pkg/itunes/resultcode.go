package itunes

import (
	"sync"
)

// Result codes returned by the verifyReceipt services
const (
	ResultValid                          = 0
	ResultMalformedJSON                  = 21000
	ResultMalformedReceiptData           = 21002
	ResultReceiptUnauthenticated         = 21003
	ResultSharedSecretMismatch           = 21004
	ResultServerUnavailable              = 21005
	ResultSubscriptionExpired            = 21006
	ResultSandboxReceiptSentToProduction = 21007
	ResultProductionReceiptSentToSandbox = 21008
	ResultInternalDataAccess             = 21009
	ResultReceiptUnauthorized            = 21010

	resultInternalDataAccessFirst = 21100
	resultInternalDataAccessLast  = 21199
)

// ResultCategory classifies a result code
type ResultCategory int

const (
	CategoryUnknown ResultCategory = iota
	CategoryValid
	CategoryMalformedJSON
	CategoryMalformedReceiptData
	CategoryReceiptUnauthenticated
	CategorySharedSecretMismatch
	CategoryServerUnavailable
	CategorySubscriptionExpired
	CategorySandboxReceiptSentToProduction
	CategoryProductionReceiptSentToSandbox
	CategoryReceiptUnauthorized
	CategoryInternalDataAccess
)

var categoryNames = map[ResultCategory]string{
	CategoryUnknown:                        "unknown",
	CategoryValid:                          "valid",
	CategoryMalformedJSON:                  "malformed_json",
	CategoryMalformedReceiptData:           "malformed_receipt_data",
	CategoryReceiptUnauthenticated:         "receipt_unauthenticated",
	CategorySharedSecretMismatch:           "shared_secret_mismatch",
	CategoryServerUnavailable:              "server_unavailable",
	CategorySubscriptionExpired:            "subscription_expired",
	CategorySandboxReceiptSentToProduction: "sandbox_receipt_sent_to_production",
	CategoryProductionReceiptSentToSandbox: "production_receipt_sent_to_sandbox",
	CategoryReceiptUnauthorized:            "receipt_unauthorized",
	CategoryInternalDataAccess:             "internal_data_access",
}

func (c ResultCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// MarshalText lets categories appear by name in JSON documents
func (c ResultCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classifier maps result codes to categories. New codes can be registered at any time.
type Classifier struct {
	mu    sync.RWMutex
	codes map[int]ResultCategory
}

// NewClassifier returns a classifier loaded with the documented App Store codes
func NewClassifier() *Classifier {
	return &Classifier{
		codes: map[int]ResultCategory{
			ResultValid:                          CategoryValid,
			ResultMalformedJSON:                  CategoryMalformedJSON,
			ResultMalformedReceiptData:           CategoryMalformedReceiptData,
			ResultReceiptUnauthenticated:         CategoryReceiptUnauthenticated,
			ResultSharedSecretMismatch:           CategorySharedSecretMismatch,
			ResultServerUnavailable:              CategoryServerUnavailable,
			ResultSubscriptionExpired:            CategorySubscriptionExpired,
			ResultSandboxReceiptSentToProduction: CategorySandboxReceiptSentToProduction,
			ResultProductionReceiptSentToSandbox: CategoryProductionReceiptSentToSandbox,
			ResultInternalDataAccess:             CategoryInternalDataAccess,
			ResultReceiptUnauthorized:            CategoryReceiptUnauthorized,
		},
	}
}

// Register adds or overrides the category of a code
func (classifier *Classifier) Register(code int, category ResultCategory) *Classifier {
	classifier.mu.Lock()
	defer classifier.mu.Unlock()

	classifier.codes[code] = category
	return classifier
}

// Classify returns the category of a code, CategoryUnknown when it was never registered
func (classifier *Classifier) Classify(code int) ResultCategory {
	classifier.mu.RLock()
	category, ok := classifier.codes[code]
	classifier.mu.RUnlock()

	if ok {
		return category
	}
	if code >= resultInternalDataAccessFirst && code <= resultInternalDataAccessLast {
		return CategoryInternalDataAccess
	}
	return CategoryUnknown
}

var defaultClassifier = NewClassifier()

// DefaultClassifier returns a copy of the table used by validators that were not given their own classifier
func DefaultClassifier() *Classifier {
	return NewClassifier()
}
