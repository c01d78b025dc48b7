package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/metrics"
)

const defaultTimeout = 10 * time.Second

// Sender POSTs JSON bodies to automation endpoints.
type Sender struct {
	client *http.Client
	log    *logger.Logger
}

func NewSender(timeout time.Duration, log *logger.Logger) *Sender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sender{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Deliver sends body to url. Any non-2xx answer is an error so queued
// deliveries get retried.
func (s *Sender) Deliver(ctx context.Context, kind, url string, body []byte) error {
	status, err := s.post(ctx, url, body)
	s.log.WebhookDelivery(kind, url, status, err)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.WebhookDeliveries.WithLabelValues(kind, outcome).Inc()

	return err
}

func (s *Sender) post(ctx context.Context, url string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
