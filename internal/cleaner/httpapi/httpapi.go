// Package httpapi cleans text by POSTing the request to a remote endpoint
// that answers with {"cleanedText": "..."}.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"textify/internal/httpx"
	"textify/internal/revision"
)

type Cleaner struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	log      *slog.Logger
}

// New returns a cleaner for endpoint. A nil client means http.DefaultClient.
func New(endpoint string, timeout time.Duration, client *http.Client, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	return &Cleaner{
		endpoint: endpoint,
		timeout:  timeout,
		client:   client,
		log:      log.With("component", "http_cleaner"),
	}
}

func (c *Cleaner) Clean(ctx context.Context, req revision.Request) (string, error) {
	start := time.Now()
	var out revision.Response
	if err := httpx.PostJSON(ctx, c.client, c.endpoint, c.timeout, req, &out); err != nil {
		c.log.ErrorContext(ctx, "request failed", "endpoint", c.endpoint, "error", err)
		return "", fmt.Errorf("httpapi: %w", err)
	}
	c.log.DebugContext(ctx, "cleaned", "chars", len(req.Text), "duration_ms", time.Since(start).Milliseconds())
	return out.CleanedText, nil
}
