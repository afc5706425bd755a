// Package haptic provides transports for delivering feedback commands to the
// toy hardware bridge. The daemon speaks an HTTP webhook to the bridge
// process; when no bridge is configured, commands are logged instead.
package haptic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/infra/metrics"
)

// WebhookSink POSTs feedback commands as JSON to the hardware bridge.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink creates a sink targeting the bridge URL.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Send delivers one command. Delivery is best-effort: the caller treats any
// error as advisory.
func (s *WebhookSink) Send(cmd domain.FeedbackCommand) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bridge returned %s", resp.Status)
	}
	metrics.FeedbackSentTotal.WithLabelValues(metrics.PatternLabel(int(cmd.Pattern))).Inc()
	return nil
}

// LogSink writes commands to the daemon log. Used when no bridge URL is
// configured, and in development.
type LogSink struct{}

// NewLogSink creates a log-only sink.
func NewLogSink() *LogSink { return &LogSink{} }

// Send logs the command and always succeeds.
func (s *LogSink) Send(cmd domain.FeedbackCommand) error {
	log.Printf("[haptic] pattern=%s intensity=%d", metrics.PatternLabel(int(cmd.Pattern)), cmd.Intensity)
	metrics.FeedbackSentTotal.WithLabelValues(metrics.PatternLabel(int(cmd.Pattern))).Inc()
	return nil
}
