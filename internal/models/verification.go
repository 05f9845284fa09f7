package models

import "time"

// EmailVerification — one live code per email address. Issuing a new code
// overwrites the previous row; terminal outcomes (success, expiry, exhausted
// attempts) delete it.
type EmailVerification struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}
