package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier posts order events as JSON to a fixed URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (w *WebhookNotifier) NotifyOrder(ctx context.Context, event OrderEvent) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		}).
		SetBody(event).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("order webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("order webhook failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
