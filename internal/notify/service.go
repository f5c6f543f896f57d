package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crosslist/internal/config"
)

const userAgent = "crosslist/0.1.0"

// RunStats is the message contract for a completed run.
type RunStats struct {
	RunID     string
	StartedAt time.Time
	Delisted  int
	Pruned    int
	Relisted  int
	Created   int
	Failed    int
	Skipped   int

	// Breaches are data-quality threshold violations, e.g. an export whose
	// row count exceeds the expected ceiling.
	Breaches []string
}

// Text renders the plain-text summary sent to the webhook.
func (s RunStats) Text() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "crosslist run %s (%s)\n", s.RunID, s.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&builder, "delisted %d / pruned %d / relisted %d / new %d / failed %d / skipped %d",
		s.Delisted, s.Pruned, s.Relisted, s.Created, s.Failed, s.Skipped)
	for _, breach := range s.Breaches {
		builder.WriteString("\n⚠ ")
		builder.WriteString(breach)
	}
	return builder.String()
}

// Service defines the notification surface exposed to run components.
type Service interface {
	RunCompleted(ctx context.Context, stats RunStats) error
	RunFailed(ctx context.Context, runErr error, contextLabel string) error
	Test(ctx context.Context) error
}

// NewService builds a webhook notification service when one is configured.
// Without a webhook URL a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	url := strings.TrimSpace(cfg.Notifications.WebhookURL)
	if url == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &webhookService{
		url:          url,
		client:       &http.Client{Timeout: timeout},
		notifyRuns:   cfg.Notifications.Runs,
		notifyErrors: cfg.Notifications.Errors,
	}
}

type webhookService struct {
	url          string
	client       *http.Client
	notifyRuns   bool
	notifyErrors bool
}

func (w *webhookService) RunCompleted(ctx context.Context, stats RunStats) error {
	if !w.notifyRuns {
		return nil
	}
	return w.send(ctx, stats.Text())
}

func (w *webhookService) RunFailed(ctx context.Context, runErr error, contextLabel string) error {
	if !w.notifyErrors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ crosslist run failed")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if runErr != nil {
		builder.WriteString(strings.TrimSpace(runErr.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return w.send(ctx, builder.String())
}

func (w *webhookService) Test(ctx context.Context) error {
	return w.send(ctx, "🧪 crosslist notification test")
}

func (w *webhookService) send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) RunCompleted(context.Context, RunStats) error   { return nil }
func (noopService) RunFailed(context.Context, error, string) error { return nil }
func (noopService) Test(context.Context) error                     { return nil }
