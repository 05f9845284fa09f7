package services

import (
	"bankportal/internal/models"
)

// In-memory stands-ins for the Postgres repositories.

type fakeVerificationStore struct {
	records map[string]*models.EmailVerification
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{records: map[string]*models.EmailVerification{}}
}

func (f *fakeVerificationStore) GetByEmail(email string) (*models.EmailVerification, error) {
	v, ok := f.records[email]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVerificationStore) Upsert(v *models.EmailVerification) error {
	cp := *v
	f.records[v.Email] = &cp
	return nil
}

func (f *fakeVerificationStore) IncrementAttempts(email string) (int, error) {
	v := f.records[email]
	v.Attempts++
	return v.Attempts, nil
}

func (f *fakeVerificationStore) DeleteByEmail(email string) error {
	delete(f.records, email)
	return nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(ids ...string) *fakeUserStore {
	f := &fakeUserStore{users: map[string]*models.User{}}
	for _, id := range ids {
		f.users[id] = &models.User{ID: id, Email: id + "@example.com"}
	}
	return f
}

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserStore) List() ([]*models.User, error) {
	// deterministic order keeps the migration tests simple
	var out []*models.User
	for _, id := range f.order() {
		out = append(out, f.users[id])
	}
	return out, nil
}

func (f *fakeUserStore) order() []string {
	var ids []string
	for id := range f.users {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

type fakeMailer struct {
	statusEmails []string // "to|type|status"
}

func (f *fakeMailer) SendVerificationCode(email, code string) error { return nil }

func (f *fakeMailer) SendCardStatusEmail(email, cardType, status string) error {
	f.statusEmails = append(f.statusEmails, email+"|"+cardType+"|"+status)
	return nil
}

type cardKey struct {
	userID, cardType string
}

type fakeCardStore struct {
	requests map[cardKey]*models.CardRequest
	cards    map[cardKey]*models.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{
		requests: map[cardKey]*models.CardRequest{},
		cards:    map[cardKey]*models.Card{},
	}
}

func (f *fakeCardStore) GetRequest(userID, cardType string) (*models.CardRequest, error) {
	req, ok := f.requests[cardKey{userID, cardType}]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *fakeCardStore) SaveRequest(req *models.CardRequest) error {
	cp := *req
	f.requests[cardKey{req.UserID, req.CardType}] = &cp
	return nil
}

func (f *fakeCardStore) GetCard(userID, cardType string) (*models.Card, error) {
	c, ok := f.cards[cardKey{userID, cardType}]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCardStore) SaveCard(c *models.Card) error {
	cp := *c
	f.cards[cardKey{c.UserID, c.CardType}] = &cp
	return nil
}

func (f *fakeCardStore) ListRequestsByUser(userID string) ([]*models.CardRequest, error) {
	var out []*models.CardRequest
	for _, t := range []string{models.CardTypePhysical, models.CardTypeVirtual} {
		if req, ok := f.requests[cardKey{userID, t}]; ok {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCardStore) ListCardsByUser(userID string) ([]*models.Card, error) {
	var out []*models.Card
	for _, t := range []string{models.CardTypePhysical, models.CardTypeVirtual} {
		if c, ok := f.cards[cardKey{userID, t}]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
