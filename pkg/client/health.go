package client

import (
	"context"
	"net/http"
)

// Health checks liveness
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Ready checks that the server's dependencies are reachable
func (c *Client) Ready(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
