//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/jimstringer/store-receipt-validator/internal/global"
	utils "github.com/jimstringer/store-receipt-validator/internal/helpers"
	services "github.com/jimstringer/store-receipt-validator/internal/services/v1"
	log "github.com/sirupsen/logrus"
)

func handleValidateReceiptIos(ctx context.Context, req services.ValidateIosRequest) (*services.ValidateIosResult, error) {
	result, err := global.ReceiptService.ValidateIos(ctx, req)
	if err != nil {
		sentry.CaptureException(err)
		return nil, err
	}

	if result.SandboxFallback {
		contextLogger := log.WithFields(log.Fields{
			"paymentMethod": "InApp: apple - lambda",
			"bundleID":      req.BundleID,
			"status":        result.Status,
		})
		utils.LogFormat(contextLogger, "[IAPVALIDATERECEIPT] Received a sandbox receipt on production for bundle [%s]", req.BundleID)
	}

	return result, nil
}

func main() {
	global.Setup()
	lambda.Start(handleValidateReceiptIos)
}
