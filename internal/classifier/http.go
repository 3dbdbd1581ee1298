package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

// HTTPModelConfig holds the resilience settings for a remote model
type HTTPModelConfig struct {
	URL     string
	Timeout time.Duration

	MaxFailures    uint32
	CircuitTimeout time.Duration

	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPModel calls a remote inference endpoint behind a circuit breaker
type HTTPModel struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	config  HTTPModelConfig
}

type predictRequest struct {
	Features map[string]interface{} `json:"features"`
}

// NewHTTPModel creates a remote model client
func NewHTTPModel(cfg HTTPModelConfig, log *logger.Logger) *HTTPModel {
	settings := gobreaker.Settings{
		Name:        "model-api",
		MaxRequests: 1,
		Timeout:     cfg.CircuitTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
			if to == gobreaker.StateOpen {
				metrics.RecordClassificationError("circuit_open")
			}
		},
	}

	return &HTTPModel{
		url:     strings.TrimRight(cfg.URL, "/") + "/predict",
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		config:  cfg,
	}
}

// Predict posts the features and decodes the prediction
func (m *HTTPModel) Predict(ctx context.Context, features map[string]interface{}) (threat.Prediction, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return threat.Prediction{}, fmt.Errorf("failed to encode features: %w", err)
	}

	result, err := m.breaker.Execute(func() (interface{}, error) {
		return m.doWithRetry(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return threat.Prediction{}, fmt.Errorf("circuit breaker is open: %w", err)
		}
		return threat.Prediction{}, err
	}

	return result.(threat.Prediction), nil
}

func (m *HTTPModel) doWithRetry(ctx context.Context, body []byte) (threat.Prediction, error) {
	var prediction threat.Prediction

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = m.config.InitialInterval
	expBackoff.MaxInterval = m.config.MaxInterval
	expBackoff.Multiplier = 2.0
	expBackoff.MaxElapsedTime = 0

	var policy backoff.BackOff = expBackoff
	if m.config.MaxRetries >= 0 {
		policy = backoff.WithMaxRetries(expBackoff, uint64(m.config.MaxRetries))
	}
	policy = backoff.WithContext(policy, ctx)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := m.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		if shouldRetry(resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("model returned HTTP %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("model returned HTTP %d", resp.StatusCode))
		}

		var payload predictionPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode prediction: %w", err))
		}
		if payload.Label == nil || payload.Probability == nil {
			return backoff.Permanent(fmt.Errorf("prediction is missing label or probability"))
		}
		prediction = threat.Prediction{Label: *payload.Label, Probability: *payload.Probability}
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return threat.Prediction{}, fmt.Errorf("model request failed: %w", err)
	}
	return prediction, nil
}

// predictionPayload tells a missing field apart from a zero one
type predictionPayload struct {
	Label       *int     `json:"label"`
	Probability *float64 `json:"probability"`
}

func shouldRetry(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// State reports the breaker state, for readiness checks
func (m *HTTPModel) State() gobreaker.State {
	return m.breaker.State()
}
