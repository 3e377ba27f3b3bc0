package v1

import (
	"fmt"
	"os"

	"github.com/multiplay/go-slack/chat"
	"github.com/multiplay/go-slack/webhook"
)

// SlackConfig json configuration
type SlackConfig struct {
	PaymentChannel string `json:"payment_channel" env:"PAYMENT_CHANNEL_SLACK_HOOK_URL"`
}

// MessageSender sends operator notifications
type MessageSender interface {
	SendMessage(message string) error
}

// SlackMessageService is a service sending messages to a Slack channel
type SlackMessageService struct {
	WebHookURL string
}

// SendMessage send a message to channel. Without a webhook nothing is sent.
func (slackMessageService *SlackMessageService) SendMessage(message string) error {
	if len(slackMessageService.WebHookURL) == 0 {
		return nil
	}

	c := webhook.New(slackMessageService.WebHookURL)
	m := &chat.Message{Text: message}
	_, err := m.Send(c)
	return err
}

// SendMessageFormat send a format message to channel, prefixed with the server stage
func (slackMessageService *SlackMessageService) SendMessageFormat(format string, args ...interface{}) error {
	text := fmt.Sprintf("[%s] ", os.Getenv("SERVER_STAGE"))
	text += fmt.Sprintf(format, args...)

	return slackMessageService.SendMessage(text)
}
