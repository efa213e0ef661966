package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/castline/shopfloor/internal/config"
)

// Client delivers shop-floor alerts to an external webhook consumer.
type Client interface {
	Send(ctx context.Context, n Notification) error
}

// Notification is a single outbound alert.
type Notification struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// Send posts the notification to the configured webhook URL.
func (c *WebhookClient) Send(ctx context.Context, n Notification) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(n).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("notification webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
