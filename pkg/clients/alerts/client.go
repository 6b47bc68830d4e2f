package alerts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sotramin/mineops/internal/config"
)

// Event kinds posted to the operations webhook.
const (
	EventSaleConfirmed = "venta_confirmada"
	EventDailySummary  = "resumen_diario"
)

// Event is the payload delivered to the configured webhook.
type Event struct {
	Kind      string    `json:"evento"`
	LotCode   string    `json:"lote,omitempty"`
	Message   string    `json:"mensaje"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivers operational events to an external channel.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// WebhookClient is a resty-backed Notifier posting JSON events to a webhook.
type WebhookClient struct {
	httpClient *resty.Client
}

// NewWebhookClient builds the webhook notifier from configuration.
func NewWebhookClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.WebhookURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &WebhookClient{httpClient: restyClient}
}

// Notify posts the event. The timestamp is stamped here when the caller left
// it zero.
func (c *WebhookClient) Notify(ctx context.Context, ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(ev).
		Post("")
	if err != nil {
		return fmt.Errorf("enviar alerta: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook de alertas respondio %d", resp.StatusCode())
	}

	return nil
}
