package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AuditID is a UUID v7 string identifying an audit
type AuditID string

// NewAuditID generates a time-ordered audit ID
func NewAuditID() AuditID {
	return AuditID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks that the ID is a UUID
func (id AuditID) Validate() error {
	if id == "" {
		return goerr.Wrap(ErrInvalidAuditID, "audit ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(ErrInvalidAuditID, "audit ID must be a UUID", goerr.V(AuditIDKey, id))
	}
	return nil
}

// String returns the string representation of AuditID
func (id AuditID) String() string {
	return string(id)
}

// Audit is one auditee engagement
type Audit struct {
	ID              AuditID
	Status          types.AuditStatus
	Tier            types.Tier
	PropertyAddress string
	ClientName      string
	AuditorName     string
	CreatedAt       time.Time
	SubmittedAt     time.Time
	CompletedAt     time.Time
	UpdatedAt       time.Time
}

// NewAudit creates a pending audit
func NewAudit(tier types.Tier, propertyAddress, clientName, auditorName string, now time.Time) (*Audit, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	return &Audit{
		ID:              NewAuditID(),
		Status:          types.AuditStatusPending,
		Tier:            tier,
		PropertyAddress: propertyAddress,
		ClientName:      clientName,
		AuditorName:     auditorName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate checks the audit record
func (a *Audit) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	if err := a.Tier.Validate(); err != nil {
		return goerr.Wrap(err, "invalid audit tier", goerr.V(AuditIDKey, a.ID))
	}
	if !a.Status.Normalize().IsValid() {
		return goerr.New("invalid audit status", goerr.V(AuditIDKey, a.ID), goerr.V(StatusKey, a.Status))
	}
	return nil
}

// Submit moves the audit from pending to submitted
func (a *Audit) Submit(at time.Time) error {
	next, err := transitionAudit(a.Status.Normalize(), auditEventSubmit)
	if err != nil {
		return goerr.Wrap(err, "failed to submit audit", goerr.V(AuditIDKey, a.ID))
	}
	a.Status = next
	a.SubmittedAt = at
	a.UpdatedAt = at
	return nil
}

// Complete moves the audit from submitted to completed
func (a *Audit) Complete(at time.Time) error {
	next, err := transitionAudit(a.Status.Normalize(), auditEventComplete)
	if err != nil {
		return goerr.Wrap(err, "failed to complete audit", goerr.V(AuditIDKey, a.ID))
	}
	a.Status = next
	a.CompletedAt = at
	a.UpdatedAt = at
	return nil
}

// EndDate is the completion time, falling back to the submission time
func (a *Audit) EndDate() time.Time {
	if !a.CompletedAt.IsZero() {
		return a.CompletedAt
	}
	return a.SubmittedAt
}

// Copy returns a copy of the audit
func (a *Audit) Copy() *Audit {
	c := *a
	return &c
}
