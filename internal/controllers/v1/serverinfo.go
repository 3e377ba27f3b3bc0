package v1

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

type serverInfoResponse struct {
	Stage string `json:"stage"`
}

// HandleServerInfo answers with the server stage
func HandleServerInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, &serverInfoResponse{Stage: os.Getenv("SERVER_STAGE")})
}
