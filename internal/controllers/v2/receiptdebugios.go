package v2

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jimstringer/store-receipt-validator/internal/global"
	utils "github.com/jimstringer/store-receipt-validator/internal/helpers"
	services "github.com/jimstringer/store-receipt-validator/internal/services/v1"
	"github.com/labstack/echo/v4"
)

type debugReceiptIosRequestBody struct {
	IsSubscription bool   `json:"isSubscription"`
	BundleID       string `json:"bundleId"`
	Receipt        string `json:"receipt"`
}

// DebugReceiptIos answers with the full App Store reply decoded into receipt fields
func DebugReceiptIos(c echo.Context) error {
	reqBody := new(debugReceiptIosRequestBody)
	err := c.Bind(reqBody)

	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := global.ReceiptService.ValidateIos(c.Request().Context(), services.ValidateIosRequest{
		BundleID:       reqBody.BundleID,
		Receipt:        reqBody.Receipt,
		IsSubscription: reqBody.IsSubscription,
	})
	if err != nil {
		if err == services.ErrNoSharedSecret {
			return echo.NewHTTPError(http.StatusBadRequest, "No Shared Key")
		}
		if _, ok := err.(validator.ValidationErrors); ok {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return utils.HandleInternalError(c, http.StatusBadGateway, err)
	}

	iapResp, err := result.Response.Decode()
	if err != nil {
		return utils.HandleInternalError(c, http.StatusBadGateway, err)
	}

	return c.JSON(http.StatusOK, iapResp)
}
