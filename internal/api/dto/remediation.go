package dto

// ActionRequest names a remediation action: Approve, Retry, Rollback or Stop
type ActionRequest struct {
	Action string `json:"action"`
}
