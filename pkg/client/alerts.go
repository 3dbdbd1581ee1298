package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AlertService reads stored alerts
type AlertService struct {
	client *Client
}

// List returns the caller's most recent alerts, newest first. A limit of zero
// uses the server default.
func (s *AlertService) List(ctx context.Context, limit int) ([]Alert, error) {
	path := APIPrefix + "/alerts"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var alerts []Alert
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Get returns a single alert
func (s *AlertService) Get(ctx context.Context, id int64) (*Alert, error) {
	var a Alert
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/alerts/%d", APIPrefix, id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Summary returns the global alert overview
func (s *AlertService) Summary(ctx context.Context) (*Overview, error) {
	var o Overview
	if err := s.client.doRequest(ctx, http.MethodGet, APIPrefix+"/alerts/summary", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Logs returns recent alerts rendered as security events
func (s *AlertService) Logs(ctx context.Context) ([]SecurityEvent, error) {
	var events []SecurityEvent
	if err := s.client.doRequest(ctx, http.MethodGet, APIPrefix+"/logs", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Analyze submits a flow for classification
func (c *Client) Analyze(ctx context.Context, record FeatureRecord) (*AlertSummary, error) {
	var summary AlertSummary
	if err := c.doRequest(ctx, http.MethodPost, APIPrefix+"/analyze", record, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Stats returns dashboard statistics for the authenticated caller
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.doRequest(ctx, http.MethodGet, APIPrefix+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
