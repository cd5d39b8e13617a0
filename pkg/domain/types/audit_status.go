package types

import "fmt"

// AuditStatus represents the lifecycle state of an audit
type AuditStatus string

const (
	AuditStatusPending   AuditStatus = "pending"
	AuditStatusSubmitted AuditStatus = "submitted"
	AuditStatusCompleted AuditStatus = "completed"
)

// AllAuditStatuses returns all valid audit statuses in lifecycle order
func AllAuditStatuses() []AuditStatus {
	return []AuditStatus{
		AuditStatusPending,
		AuditStatusSubmitted,
		AuditStatusCompleted,
	}
}

// IsValid checks if the audit status is valid
func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusPending,
		AuditStatusSubmitted,
		AuditStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as AuditStatusPending.
func (s AuditStatus) Normalize() AuditStatus {
	if s == "" {
		return AuditStatusPending
	}
	return s
}

// IsReportable reports whether a report may be generated for the status
func (s AuditStatus) IsReportable() bool {
	return s == AuditStatusSubmitted || s == AuditStatusCompleted
}

// String returns the string representation of the audit status
func (s AuditStatus) String() string {
	return string(s)
}

// ParseAuditStatus parses a string into an AuditStatus
func ParseAuditStatus(s string) (AuditStatus, error) {
	status := AuditStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid audit status: %s", s)
	}
	return status, nil
}
