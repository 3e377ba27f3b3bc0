package helpers

import (
	"fmt"
	"os"

	"github.com/Jeffail/gabs/v2"
	"github.com/jimstringer/store-receipt-validator/internal/global"
	log "github.com/sirupsen/logrus"
)

// LogFormat logs the message and mirrors it, with the logger fields, to the payment Slack channel
func LogFormat(contextLogger *log.Entry, format string, args ...interface{}) {
	contextLogger.Infof(format, args...)

	if global.PaymentSlackMessageService == nil {
		return
	}

	payload, err := slackPayload(contextLogger.Data, fmt.Sprintf(format, args...))
	if err != nil {
		contextLogger.WithError(err).Errorf("JSON marshalling process failure for a slack message")
		return
	}

	err = global.PaymentSlackMessageService.SendMessage(payload)
	if err != nil {
		contextLogger.WithError(err).Errorf("failed to send a slack message")
	}
}

func slackPayload(fields log.Fields, message string) (string, error) {
	jsonObj := gabs.New()
	for key, value := range fields {
		if _, err := jsonObj.Set(value, key); err != nil {
			return "", err
		}
	}
	if _, err := jsonObj.Set(os.Getenv("SERVER_STAGE"), "env"); err != nil {
		return "", err
	}
	if _, err := jsonObj.Set(message, "message"); err != nil {
		return "", err
	}

	return jsonObj.String(), nil
}
