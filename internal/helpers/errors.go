package helpers

import (
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// HandleInternalError reports the error to Sentry and answers with the given status
func HandleInternalError(c echo.Context, status int, err error) error {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	log.WithError(err).WithField("path", c.Path()).Error("internal error")
	return echo.NewHTTPError(status, http.StatusText(status))
}
