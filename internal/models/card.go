package models

import "time"

// Card types a user can request, tracked independently of each other.
const (
	CardTypePhysical = "physical"
	CardTypeVirtual  = "virtual"
)

// Request statuses.
const (
	CardStatusNone       = "none"
	CardStatusPending    = "pending"
	CardStatusProcessing = "processing"
	CardStatusCompleted  = "completed"
	CardStatusRejected   = "rejected"
)

// CardPlaceholder is what the portal shows while a card is being produced.
const CardPlaceholder = "En attente"

// CardRequest — one row per (user, card type).
type CardRequest struct {
	UserID      string     `json:"user_id"`
	CardType    string     `json:"card_type"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AdminNotes  string     `json:"admin_notes"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Card — the materialized card data behind a request. Kept forever as an
// audit trail; IsDisplayed gates visibility to the end user, separately
// from IsActive.
type Card struct {
	UserID      string    `json:"user_id"`
	CardType    string    `json:"card_type"`
	CardNumber  string    `json:"card_number"`
	ExpiryDate  string    `json:"expiry_date"`
	CVV         string    `json:"-"`
	IsActive    bool      `json:"is_active"`
	IsDisplayed bool      `json:"is_displayed"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidCardType(t string) bool {
	return t == CardTypePhysical || t == CardTypeVirtual
}

func ValidCardStatus(s string) bool {
	switch s {
	case CardStatusNone, CardStatusPending, CardStatusProcessing,
		CardStatusCompleted, CardStatusRejected:
		return true
	}
	return false
}
