package model

import "time"

// User represents a registered storefront customer.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is a verified authenticated principal threaded into operations
// that need to know who the caller is.
type Identity struct {
	UserID int64
	Email  string
}
