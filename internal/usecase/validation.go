package usecase

import (
	"strings"

	"github.com/google/uuid"
)

// ValidateEmail performs a light structural check on a contact email.
func ValidateEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.IndexByte(domain, '@') >= 0 {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// NewOrderNumber generates a unique retail order reference.
func NewOrderNumber() string {
	id := uuid.New()
	return "ATL-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}
