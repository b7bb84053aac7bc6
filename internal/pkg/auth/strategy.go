package auth

import "time"

// Strategy abstracts token issuance and verification so the signing scheme
// can be swapped via configuration.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes strategy construction.
type Options struct {
	TTL time.Duration
}
