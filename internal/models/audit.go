package models

import "time"

// Audit severities. AuditFilterAll is the sentinel that omits a filter.
const (
	AuditFilterAll        = "all"
	AuditSeverityLow      = "low"
	AuditSeverityMedium   = "medium"
	AuditSeverityHigh     = "high"
	AuditSeverityCritical = "critical"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string                 `json:"_id" validate:"required"`
	UserID     string                 `json:"user_id,omitempty"`
	UserEmail  string                 `json:"user_email,omitempty"`
	Action     string                 `json:"action" validate:"required"`
	Resource   string                 `json:"resource,omitempty"`
	ResourceID string                 `json:"resource_id,omitempty"`
	Severity   string                 `json:"severity,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	CreatedAt  *time.Time             `json:"created_at,omitempty"`
}

// AuditAnalytics is the optional aggregate block returned with audit logs.
type AuditAnalytics struct {
	TotalActions   int            `json:"total_actions"`
	Last24Hours    int            `json:"last_24_hours"`
	ActionCounts   map[string]int `json:"action_counts,omitempty"`
	SeverityCounts map[string]int `json:"severity_counts,omitempty"`
	TopUsers       []AuditUser    `json:"top_users,omitempty"`
}

// AuditUser counts actions per user.
type AuditUser struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Count  int    `json:"count"`
}
