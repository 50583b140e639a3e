package notify

import (
	"context"
	"fmt"
	"net/http"
)

// DiscordSender posts alerts to a Discord webhook.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender creates a DiscordSender for the given webhook URL.
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     senderClient(),
	}
}

// Send posts the alert to the webhook with the title in Discord bold.
// Discord answers 204 No Content on success.
func (d *DiscordSender) Send(ctx context.Context, alert Alert) error {
	payload := map[string]string{
		"content": fmt.Sprintf("**%s**\n%s", alert.Title(), alert.Body()),
	}
	if err := postJSON(ctx, d.client, d.webhookURL, payload); err != nil {
		return fmt.Errorf("discord: %w", err)
	}
	return nil
}

// Name returns the sender identifier.
func (d *DiscordSender) Name() string { return "discord" }
