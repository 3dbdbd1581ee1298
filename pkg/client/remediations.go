package client

import (
	"context"
	"fmt"
	"net/http"
)

// Remediation actions
const (
	ActionApprove  = "Approve"
	ActionRetry    = "Retry"
	ActionRollback = "Rollback"
	ActionStop     = "Stop"
)

// RemediationService drives the alert remediation workflow
type RemediationService struct {
	client *Client
}

// List returns the current remediation tasks
func (s *RemediationService) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := s.client.doRequest(ctx, http.MethodGet, APIPrefix+"/remediations", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Act applies an action to the alert with the given id
func (s *RemediationService) Act(ctx context.Context, alertID int64, action string) (*ActionResult, error) {
	var result ActionResult
	path := fmt.Sprintf("%s/remediations/%d/action", APIPrefix, alertID)
	if err := s.client.doRequest(ctx, http.MethodPost, path, map[string]string{"action": action}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Execute requests a playbook run
func (s *RemediationService) Execute(ctx context.Context) (*ExecuteResult, error) {
	var result ExecuteResult
	if err := s.client.doRequest(ctx, http.MethodPost, APIPrefix+"/remediations/execute", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
