package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamewatch/internal/config"
)

const userAgent = "gamewatch/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifySyncCompleted(ctx context.Context, games int, duration time.Duration) error
	NotifyEnrichmentCompleted(ctx context.Context, matched, failed, skipped int, duration time.Duration) error
	NotifyPriceFound(ctx context.Context, gameName string, price float64, currency, shop string, score float64) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by a Discord webhook when
// configured. When no webhook is configured, a noop implementation is
// returned.
func NewService(cfg *config.Config) Service {
	webhook := strings.TrimSpace(cfg.Notifications.DiscordWebhook)
	if webhook == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &discordService{
		webhook:          webhook,
		client:           &http.Client{Timeout: timeout},
		notifySync:       cfg.Notifications.Sync,
		notifyEnrichment: cfg.Notifications.Enrichment,
		notifyErrors:     cfg.Notifications.Errors,
	}
}

type discordService struct {
	webhook          string
	client           *http.Client
	notifySync       bool
	notifyEnrichment bool
	notifyErrors     bool
}

func (d *discordService) NotifySyncCompleted(ctx context.Context, games int, duration time.Duration) error {
	if !d.notifySync {
		return nil
	}
	return d.send(ctx, fmt.Sprintf("Catalog sync complete: %d games in %s", games, formatDuration(duration)))
}

func (d *discordService) NotifyEnrichmentCompleted(ctx context.Context, matched, failed, skipped int, duration time.Duration) error {
	if !d.notifyEnrichment {
		return nil
	}
	message := fmt.Sprintf("Price enrichment complete: %d matched, %d skipped in %s", matched, skipped, formatDuration(duration))
	if failed > 0 {
		message = fmt.Sprintf("Price enrichment complete: %d matched, %d skipped, %d failed in %s",
			matched, skipped, failed, formatDuration(duration))
	}
	return d.send(ctx, message)
}

func (d *discordService) NotifyPriceFound(ctx context.Context, gameName string, price float64, currency, shop string, score float64) error {
	if !d.notifyEnrichment {
		return nil
	}
	gameName = strings.TrimSpace(gameName)
	message := fmt.Sprintf("Best price for %s: %.2f %s", gameName, price, currency)
	if shop = strings.TrimSpace(shop); shop != "" {
		message += " at " + shop
	}
	message += fmt.Sprintf(" (match %.0f%%)", score*100)
	return d.send(ctx, message)
}

func (d *discordService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !d.notifyErrors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return d.send(ctx, builder.String())
}

func (d *discordService) TestNotification(ctx context.Context) error {
	return d.send(ctx, "Notification system test")
}

type webhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username"`
}

func (d *discordService) send(ctx context.Context, message string) error {
	if d == nil || d.client == nil {
		return nil
	}

	encoded, err := json.Marshal(webhookPayload{Content: message, Username: "gamewatch"})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhook, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func formatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	if duration <= 0 {
		return "0s"
	}
	return duration.String()
}

type noopService struct{}

func (noopService) NotifySyncCompleted(context.Context, int, time.Duration) error {
	return nil
}

func (noopService) NotifyEnrichmentCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}

func (noopService) NotifyPriceFound(context.Context, string, float64, string, string, float64) error {
	return nil
}

func (noopService) NotifyError(context.Context, error, string) error {
	return nil
}

func (noopService) TestNotification(context.Context) error {
	return nil
}
