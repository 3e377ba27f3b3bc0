package main

import (
	"github.com/jimstringer/store-receipt-validator/internal/global"
	"github.com/jimstringer/store-receipt-validator/internal/routers"
)

func main() {
	global.Setup()
	echo := routers.SetupRouter()

	// Start server
	echo.Logger.Fatal(echo.Start(":8092"))
}
