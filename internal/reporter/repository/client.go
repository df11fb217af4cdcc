package repository

import (
	"time"

	"go-market-reporter/internal/reporter/config"
)

// requestTimeout resolves the outbound request timeout, falling back to
// the per-source default when the reports config leaves it unset.
func requestTimeout(cfg *config.Config, fallback time.Duration) time.Duration {
	if cfg.Reports.RequestTimeout > 0 {
		return cfg.Reports.RequestTimeout
	}
	return fallback
}
