// Package cleaner picks the cleaning backend named in the configuration.
package cleaner

import (
	"context"
	"fmt"
	"log/slog"

	"textify/internal/cleaner/gemini"
	"textify/internal/cleaner/httpapi"
	"textify/internal/cleaner/local"
	"textify/internal/config"
	"textify/internal/revision"
)

// New builds the backend for cfg.Backend.
func New(ctx context.Context, cfg config.CleanerConfig, log *slog.Logger) (revision.Cleaner, error) {
	switch cfg.Backend {
	case config.BackendGemini:
		c, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendHTTP:
		return httpapi.New(cfg.Endpoint, cfg.Timeout, nil, log), nil
	case config.BackendLocal, "":
		return local.New(), nil
	}
	return nil, fmt.Errorf("unknown cleaner backend %q", cfg.Backend)
}
