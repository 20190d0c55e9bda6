package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gamewatch/internal/config"
	"gamewatch/internal/notifications"
	"gamewatch/internal/testsupport"
)

func TestNewServiceReturnsNoopWhenWebhookMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.DiscordWebhook = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifySyncCompleted(context.Background(), 40, time.Minute); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("expected noop test notification to return nil, got %v", err)
	}
}

type webhookRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *webhookRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var payload struct {
			Content  string `json:"content"`
			Username string `json:"username"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Username != "gamewatch" {
			t.Errorf("username = %q", payload.Username)
		}
		r.mu.Lock()
		r.messages = append(r.messages, payload.Content)
		r.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (r *webhookRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func newWebhookService(t *testing.T, recorder *webhookRecorder) notifications.Service {
	t.Helper()
	server := httptest.NewServer(recorder.handler(t))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithWebhook(server.URL))
	return notifications.NewService(cfg)
}

func TestDiscordServiceFormatsMessages(t *testing.T) {
	recorder := &webhookRecorder{}
	svc := newWebhookService(t, recorder)
	ctx := context.Background()

	if err := svc.NotifySyncCompleted(ctx, 120, 90*time.Second); err != nil {
		t.Fatalf("NotifySyncCompleted: %v", err)
	}
	if err := svc.NotifyEnrichmentCompleted(ctx, 8, 1, 2, 5*time.Minute); err != nil {
		t.Fatalf("NotifyEnrichmentCompleted: %v", err)
	}
	if err := svc.NotifyPriceFound(ctx, "Portal 2", 4.99, "EUR", "Steam", 0.93); err != nil {
		t.Fatalf("NotifyPriceFound: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "catalog sync"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}

	messages := recorder.all()
	if len(messages) != 4 {
		t.Fatalf("messages = %d, want 4", len(messages))
	}
	checks := []string{
		"Catalog sync complete: 120 games in 1m30s",
		"8 matched, 2 skipped, 1 failed",
		"Best price for Portal 2: 4.99 EUR at Steam (match 93%)",
		"Error during catalog sync: boom",
	}
	for i, want := range checks {
		if !strings.Contains(messages[i], want) {
			t.Errorf("message %d = %q, want substring %q", i, messages[i], want)
		}
	}
}

func TestDiscordServiceHonorsToggles(t *testing.T) {
	recorder := &webhookRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.DiscordWebhook = server.URL
	cfg.Notifications.Sync = false
	cfg.Notifications.Enrichment = false
	cfg.Notifications.Errors = false
	svc := notifications.NewService(&cfg)
	ctx := context.Background()

	if err := svc.NotifySyncCompleted(ctx, 1, time.Second); err != nil {
		t.Fatalf("NotifySyncCompleted: %v", err)
	}
	if err := svc.NotifyEnrichmentCompleted(ctx, 1, 0, 0, time.Second); err != nil {
		t.Fatalf("NotifyEnrichmentCompleted: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), ""); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}
	if got := recorder.all(); len(got) != 0 {
		t.Fatalf("messages = %v, want none", got)
	}

	// Test notifications always go out.
	if err := svc.TestNotification(ctx); err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if got := recorder.all(); len(got) != 1 {
		t.Fatalf("messages = %v, want test message only", got)
	}
}

func TestDiscordServiceReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid webhook", http.StatusBadRequest)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.DiscordWebhook = server.URL
	svc := notifications.NewService(&cfg)

	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for http 400")
	}
	if !strings.Contains(err.Error(), "webhook http 400") {
		t.Fatalf("err = %v", err)
	}
}
