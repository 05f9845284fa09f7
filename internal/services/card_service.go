package services

import (
	"log"
	"time"

	"bankportal/internal/models"
)

type UserStore interface {
	GetByID(id string) (*models.User, error)
	List() ([]*models.User, error)
}

type CardStore interface {
	GetRequest(userID, cardType string) (*models.CardRequest, error)
	SaveRequest(req *models.CardRequest) error
	GetCard(userID, cardType string) (*models.Card, error)
	SaveCard(c *models.Card) error
	ListRequestsByUser(userID string) ([]*models.CardRequest, error)
	ListCardsByUser(userID string) ([]*models.Card, error)
}

// CardActivation — the final card materials an operator supplies.
type CardActivation struct {
	CardNumber string
	ExpiryDate string
	CVV        string
	Notes      string
}

type CardService struct {
	Users    UserStore
	Cards    CardStore
	Email    EmailService     // nil disables customer notifications
	Notifier *TelegramService // nil when the integration is not configured
	Now      func() time.Time
}

func NewCardService(users UserStore, cards CardStore, email EmailService, notifier *TelegramService) *CardService {
	return &CardService{Users: users, Cards: cards, Email: email, Notifier: notifier}
}

func (s *CardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CardService) requireUser(userID string) (*models.User, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// best-effort, like the telegram notifier; the card operation already succeeded
func (s *CardService) emailStatus(user *models.User, cardType, status string) {
	if s.Email == nil {
		return
	}
	if err := s.Email.SendCardStatusEmail(user.Email, cardType, status); err != nil {
		log.Printf("[card][mail][err] user=%s err=%v", user.ID, err)
	}
}

// CreateRequest opens a card request and lays down the placeholder card row
// the portal shows while production is underway. Re-creating an existing
// request restarts the lifecycle: the request takes the given status again,
// and a previously issued card is hidden while the new request is in flight.
// Issued materials are kept as audit trail, never replaced by the placeholder.
func (s *CardService) CreateRequest(userID, cardType, status, notes string) (*models.CardRequest, error) {
	if !models.ValidCardType(cardType) {
		return nil, ErrUnknownCardType
	}
	if status == "" {
		status = models.CardStatusPending
	}
	if !models.ValidCardStatus(status) {
		return nil, ErrUnknownCardStatus
	}
	if _, err := s.requireUser(userID); err != nil {
		return nil, err
	}

	now := s.now()
	req := &models.CardRequest{
		UserID:      userID,
		CardType:    cardType,
		Status:      status,
		RequestedAt: now,
		AdminNotes:  notes,
		UpdatedAt:   now,
	}
	if err := s.Cards.SaveRequest(req); err != nil {
		return nil, err
	}

	card, err := s.Cards.GetCard(userID, cardType)
	if err != nil {
		return nil, err
	}
	if card == nil {
		card = &models.Card{
			UserID:     userID,
			CardType:   cardType,
			CardNumber: models.CardPlaceholder,
			ExpiryDate: models.CardPlaceholder,
			CVV:        models.CardPlaceholder,
		}
	}
	card.IsActive = false
	card.IsDisplayed = false
	card.UpdatedAt = now
	if err := s.Cards.SaveCard(card); err != nil {
		return nil, err
	}

	log.Printf("[card][create] user=%s type=%s status=%s", userID, cardType, status)
	s.Notifier.NotifyCardEvent(userID, cardType, status)
	return req, nil
}

// UpdateStatus moves a request along the lifecycle. Transitions outside the
// table are rejected; nil notes leave the existing annotation alone.
func (s *CardService) UpdateStatus(userID, cardType, newStatus string, notes *string) (*models.CardRequest, error) {
	if !models.ValidCardType(cardType) {
		return nil, ErrUnknownCardType
	}
	if !models.ValidCardStatus(newStatus) {
		return nil, ErrUnknownCardStatus
	}
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	req, err := s.Cards.GetRequest(userID, cardType)
	if err != nil {
		return nil, err
	}
	current := ""
	if req != nil {
		current = req.Status
	}
	if !canTransition(current, newStatus) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	if req == nil {
		req = &models.CardRequest{
			UserID:      userID,
			CardType:    cardType,
			RequestedAt: now,
		}
	}
	req.Status = newStatus
	req.UpdatedAt = now
	if newStatus == models.CardStatusCompleted {
		req.CompletedAt = &now
	}
	if notes != nil {
		req.AdminNotes = *notes
	}
	if err := s.Cards.SaveRequest(req); err != nil {
		return nil, err
	}

	log.Printf("[card][status] user=%s type=%s %s -> %s", userID, cardType, current, newStatus)
	s.emailStatus(user, cardType, newStatus)
	s.Notifier.NotifyCardEvent(userID, cardType, newStatus)
	return req, nil
}

// ActivateCard writes the real card materials and reveals the card. The only
// path that sets IsDisplayed; completing an already completed request just
// re-issues the materials.
func (s *CardService) ActivateCard(userID, cardType string, act CardActivation) (*models.Card, error) {
	if !models.ValidCardType(cardType) {
		return nil, ErrUnknownCardType
	}
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	req, err := s.Cards.GetRequest(userID, cardType)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &models.CardRequest{
			UserID:      userID,
			CardType:    cardType,
			RequestedAt: now,
		}
	}
	req.Status = models.CardStatusCompleted
	req.CompletedAt = &now
	req.UpdatedAt = now
	req.AdminNotes = act.Notes
	if err := s.Cards.SaveRequest(req); err != nil {
		return nil, err
	}

	card := &models.Card{
		UserID:      userID,
		CardType:    cardType,
		CardNumber:  act.CardNumber,
		ExpiryDate:  act.ExpiryDate,
		CVV:         act.CVV,
		IsActive:    true,
		IsDisplayed: true,
		UpdatedAt:   now,
	}
	if err := s.Cards.SaveCard(card); err != nil {
		return nil, err
	}

	log.Printf("[card][activate] user=%s type=%s", userID, cardType)
	s.emailStatus(user, cardType, models.CardStatusCompleted)
	s.Notifier.NotifyCardEvent(userID, cardType, models.CardStatusCompleted)
	return card, nil
}

// ListUsers — operational snapshot for the admin surface and the CLI.
func (s *CardService) ListUsers() ([]*models.UserCardState, error) {
	users, err := s.Users.List()
	if err != nil {
		return nil, err
	}
	out := make([]*models.UserCardState, 0, len(users))
	for _, u := range users {
		reqs, err := s.Cards.ListRequestsByUser(u.ID)
		if err != nil {
			return nil, err
		}
		cards, err := s.Cards.ListCardsByUser(u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &models.UserCardState{User: u, Requests: reqs, Cards: cards})
	}
	return out, nil
}

// MigrateExisting backfills a pending request (plus placeholder card) for
// every user/type that has none. Safe to re-run: users that already have a
// request are skipped. Returns how many requests were created.
func (s *CardService) MigrateExisting() (int, error) {
	users, err := s.Users.List()
	if err != nil {
		return 0, err
	}
	created := 0
	for _, u := range users {
		for _, cardType := range []string{models.CardTypePhysical, models.CardTypeVirtual} {
			req, err := s.Cards.GetRequest(u.ID, cardType)
			if err != nil {
				return created, err
			}
			if req != nil && req.Status != models.CardStatusNone {
				continue
			}
			if _, err := s.CreateRequest(u.ID, cardType, models.CardStatusPending, ""); err != nil {
				return created, err
			}
			created++
		}
	}
	log.Printf("[card][migrate] created=%d", created)
	return created, nil
}
