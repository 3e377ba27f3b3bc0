package global

import (
	"errors"

	services "github.com/jimstringer/store-receipt-validator/internal/services/v1"
	"github.com/jimstringer/store-receipt-validator/pkg/iap"
)

var (
	// IapService holds the shared secrets of the registered app bundles
	IapService *iap.Service
	// ReceiptService validates receipts against the App Store
	ReceiptService *services.ReceiptService
	// PaymentSlackMessageService is a service sending messages to the payment channel
	PaymentSlackMessageService services.MessageSender
)

// Verify verifies if all variables have been properly set.
func Verify() {
	if IapService == nil {
		panic(errors.New("The iap service has not been set"))
	}
	if ReceiptService == nil {
		panic(errors.New("The receipt service has not been set"))
	}
	if PaymentSlackMessageService == nil {
		panic(errors.New("The slack message service has not been set"))
	}
}
