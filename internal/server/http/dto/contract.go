package dto

import "time"

// ContractRequest describes a designer contract creation payload.
type ContractRequest struct {
	DesignerName  string `json:"designer_name"`
	DesignerEmail string `json:"designer_email"`
}

// ContractResponse describes a designer contract with its envelope state.
type ContractResponse struct {
	ID            int64      `json:"id"`
	DesignerName  string     `json:"designer_name"`
	DesignerEmail string     `json:"designer_email"`
	Status        string     `json:"status"`
	EnvelopeID    string     `json:"envelope_id,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
