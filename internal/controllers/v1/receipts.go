package v1

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jimstringer/store-receipt-validator/internal/global"
	utils "github.com/jimstringer/store-receipt-validator/internal/helpers"
	services "github.com/jimstringer/store-receipt-validator/internal/services/v1"
	"github.com/jimstringer/store-receipt-validator/pkg/itunes"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// HandleValidateReceiptIos validates an App Store receipt and answers with the classified result
func HandleValidateReceiptIos(c echo.Context) error {
	reqBody := new(services.ValidateIosRequest)
	err := c.Bind(reqBody)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	contextLogger := log.WithFields(log.Fields{
		"paymentMethod":  "InApp: apple",
		"bundleID":       reqBody.BundleID,
		"isSubscription": reqBody.IsSubscription,
	})

	result, err := global.ReceiptService.ValidateIos(c.Request().Context(), *reqBody)
	if err != nil {
		return handleValidateError(c, contextLogger, err)
	}

	contextLogger = contextLogger.WithFields(log.Fields{
		"status":      result.Status,
		"category":    result.Category.String(),
		"environment": result.Environment,
	})

	if result.SandboxFallback {
		utils.LogFormat(contextLogger, "[IAPVALIDATERECEIPT] Received a sandbox receipt on production for bundle [%s]", reqBody.BundleID)
	}

	switch result.Category {
	case itunes.CategoryValid, itunes.CategorySubscriptionExpired:
		contextLogger.Info("[IAPVALIDATERECEIPT] receipt validated")
	case itunes.CategoryServerUnavailable, itunes.CategoryInternalDataAccess:
		utils.LogFormat(contextLogger, "[IAPVALIDATERECEIPT] The ios verification server is currently unavailable.")
	default:
		utils.LogFormat(contextLogger, "[IAPVALIDATERECEIPT] Received an invalid receipt for store [apple]: %s", result.Category)
	}

	return c.JSON(http.StatusOK, result)
}

func handleValidateError(c echo.Context, contextLogger *log.Entry, err error) error {
	switch e := err.(type) {
	case validator.ValidationErrors:
		return echo.NewHTTPError(http.StatusBadRequest, e.Error())
	case *itunes.ConfigurationError:
		return echo.NewHTTPError(http.StatusBadRequest, e.Error())
	case *itunes.TransportError, *itunes.MalformedResponseError:
		contextLogger.WithError(err).Error("[IAPVALIDATERECEIPT] itunes request failed")
		return utils.HandleInternalError(c, http.StatusBadGateway, err)
	}

	if err == services.ErrNoSharedSecret {
		return echo.NewHTTPError(http.StatusBadRequest, "No Shared Key")
	}

	return utils.HandleInternalError(c, http.StatusInternalServerError, err)
}
