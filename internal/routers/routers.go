package routers

import (
	sentryecho "github.com/getsentry/sentry-go/echo"
	apiControllerV1 "github.com/jimstringer/store-receipt-validator/internal/controllers/v1"
	apiControllerV2 "github.com/jimstringer/store-receipt-validator/internal/controllers/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRouter is ...
func SetupRouter() *echo.Echo {
	// Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{}))

	v1 := e.Group("/v1")

	v1.GET("/serverinfo", apiControllerV1.HandleServerInfo)
	v1.POST("/iap/ios/validate", apiControllerV1.HandleValidateReceiptIos)

	v2 := e.Group("/v2")

	v2iap := v2.Group("/iap")

	v2debug := v2iap.Group("/debug")
	v2debug.POST("/ios", apiControllerV2.DebugReceiptIos)

	return e
}
