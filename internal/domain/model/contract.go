package model

import "time"

// ContractStatus describes designer contract lifecycle.
type ContractStatus string

const (
	ContractStatusDraft    ContractStatus = "draft"
	ContractStatusSent     ContractStatus = "sent"
	ContractStatusSigned   ContractStatus = "signed"
	ContractStatusDeclined ContractStatus = "declined"
)

// Contract is a designer onboarding agreement tracked against the
// e-signature provider.
type Contract struct {
	ID            int64
	DesignerName  string
	DesignerEmail string
	Status        ContractStatus
	EnvelopeID    string
	CreatedAt     time.Time
	SentAt        *time.Time
	CompletedAt   *time.Time
}
