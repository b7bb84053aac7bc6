package model

// EnvelopeState describes document state reported by the e-signature provider.
type EnvelopeState string

const (
	EnvelopeStateSent     EnvelopeState = "SENT"
	EnvelopeStateViewed   EnvelopeState = "VIEWED"
	EnvelopeStateSigned   EnvelopeState = "SIGNED"
	EnvelopeStateDeclined EnvelopeState = "DECLINED"
)

// Envelope encapsulates the provider's view of a contract document.
type Envelope struct {
	ID    string
	State EnvelopeState
}
