package classifier

import (
	"fmt"

	"github.com/pratik-mahalle/threatwatch/internal/config"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
)

// NewModel builds the configured model backend
func NewModel(cfg config.ModelConfig, log *logger.Logger) (threat.Model, error) {
	switch cfg.Backend {
	case "linear":
		return LoadLinearModel(cfg.WeightsPath)
	case "http":
		return NewHTTPModel(HTTPModelConfig{
			URL:             cfg.URL,
			Timeout:         cfg.Timeout,
			MaxFailures:     cfg.BreakerMaxFailures,
			CircuitTimeout:  cfg.BreakerTimeout,
			MaxRetries:      cfg.RetryMaxAttempts,
			InitialInterval: cfg.RetryInitial,
			MaxInterval:     cfg.RetryMaxInterval,
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown model backend: %s", cfg.Backend)
	}
}
