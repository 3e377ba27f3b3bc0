package helpers

import (
	"testing"

	"github.com/Jeffail/gabs/v2"
	"github.com/calmisland/go-testify/assert"
	"github.com/calmisland/go-testify/require"
	"github.com/jimstringer/store-receipt-validator/internal/global"
	log "github.com/sirupsen/logrus"
)

type recordingSender struct {
	messages []string
}

func (s *recordingSender) SendMessage(message string) error {
	s.messages = append(s.messages, message)
	return nil
}

func TestLogFormat(t *testing.T) {
	backup := global.PaymentSlackMessageService
	defer func() { global.PaymentSlackMessageService = backup }()

	sender := &recordingSender{}
	global.PaymentSlackMessageService = sender

	contextLogger := log.WithFields(log.Fields{
		"paymentMethod": "InApp: apple",
		"bundleID":      "com.calmid.learnandplay",
	})
	LogFormat(contextLogger, "[IAPVALIDATERECEIPT] status [%d]", 21007)

	require.Len(t, sender.messages, 1)
	parsed, err := gabs.ParseJSON([]byte(sender.messages[0]))
	require.NoError(t, err)
	assert.Equal(t, "InApp: apple", parsed.Path("paymentMethod").Data())
	assert.Equal(t, "com.calmid.learnandplay", parsed.Path("bundleID").Data())
	assert.Equal(t, "[IAPVALIDATERECEIPT] status [21007]", parsed.Path("message").Data())

	// the logger fields are left untouched
	_, hasMessage := contextLogger.Data["message"]
	assert.False(t, hasMessage)
}

func TestSlackPayload(t *testing.T) {
	payload, err := slackPayload(log.Fields{"accountID": "TEST-ACCOUNT", "status": 21009}, "server unavailable")
	require.NoError(t, err)

	parsed, err := gabs.ParseJSON([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "TEST-ACCOUNT", parsed.Path("accountID").Data())
	assert.Equal(t, float64(21009), parsed.Path("status").Data())
	assert.Equal(t, "server unavailable", parsed.Path("message").Data())
	assert.True(t, parsed.Exists("env"))
}

func TestLogFormatWithoutSlack(t *testing.T) {
	backup := global.PaymentSlackMessageService
	defer func() { global.PaymentSlackMessageService = backup }()

	global.PaymentSlackMessageService = nil
	LogFormat(log.WithField("bundleID", "com.calmid.learnandplay"), "no channel configured")
}
