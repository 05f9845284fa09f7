package services

import "bankportal/internal/models"

// Allowed card request transitions.
// NB: ActivateCard bypasses this table — it may complete a request from
// pending, processing or completed (re-activation is idempotent).
var CardTransitions = map[string]map[string]bool{
	models.CardStatusNone: {
		models.CardStatusPending:    true,
		models.CardStatusProcessing: true,
		models.CardStatusRejected:   true,
	},
	models.CardStatusPending: {
		models.CardStatusProcessing: true,
		models.CardStatusRejected:   true,
	},
	models.CardStatusProcessing: {
		models.CardStatusCompleted: true,
		models.CardStatusRejected:  true,
	},
	models.CardStatusCompleted: {},
	models.CardStatusRejected:  {},
}

func canTransition(current, to string) bool {
	if current == "" {
		// no row yet — any starting status is allowed
		return true
	}
	nexts, ok := CardTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
