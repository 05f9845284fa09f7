package services

import (
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"time"

	"bankportal/internal/models"
)

// Defaults; overridable through config.
const (
	defaultCodeTTL     = 15 * time.Minute
	defaultMaxAttempts = 3
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
)

type VerificationStore interface {
	GetByEmail(email string) (*models.EmailVerification, error)
	Upsert(v *models.EmailVerification) error
	IncrementAttempts(email string) (int, error)
	DeleteByEmail(email string) error
}

type VerificationService struct {
	Store       VerificationStore
	CodeTTL     time.Duration
	MaxAttempts int
	Now         func() time.Time // tests inject a fake clock; nil means time.Now
}

func NewVerificationService(store VerificationStore) *VerificationService {
	return &VerificationService{
		Store:       store,
		CodeTTL:     defaultCodeTTL,
		MaxAttempts: defaultMaxAttempts,
	}
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *VerificationService) ttl() time.Duration {
	if s.CodeTTL <= 0 {
		return defaultCodeTTL
	}
	return s.CodeTTL
}

func (s *VerificationService) maxAttempts() int {
	if s.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return s.MaxAttempts
}

func (s *VerificationService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", rnd.Intn(1000000))
}

// IssueCode stores a fresh code for the address and returns it; delivery is
// the caller's job. Any previous code for the address is overwritten,
// attempts included.
func (s *VerificationService) IssueCode(email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}

	code := s.generateCode()
	sentAt := s.now()
	rec := &models.EmailVerification{
		Email:     email,
		Code:      code,
		SentAt:    sentAt,
		ExpiresAt: sentAt.Add(s.ttl()),
		Attempts:  0,
	}
	if err := s.Store.Upsert(rec); err != nil {
		return "", err
	}

	log.Printf("[verify][send] email=%s expires_at=%s", email, rec.ExpiresAt.Format(time.RFC3339))
	return code, nil
}

// ValidateCode checks a submitted code. Order matters: missing record, then
// expiry, then the attempt cap, then the comparison — and the attempt is
// persisted before comparing so a mismatch can never be retried for free.
// Every terminal outcome deletes the record.
func (s *VerificationService) ValidateCode(email, submitted string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if !codePattern.MatchString(submitted) {
		return ErrInvalidCode
	}

	v, err := s.Store.GetByEmail(email)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrNoCodeRequested
	}

	if s.now().After(v.ExpiresAt) {
		if err := s.Store.DeleteByEmail(email); err != nil {
			return err
		}
		return ErrCodeExpired
	}

	limit := s.maxAttempts()
	if v.Attempts >= limit {
		// normally the record is gone by the time the cap is reached; a
		// racing validation can still land here
		if err := s.Store.DeleteByEmail(email); err != nil {
			return err
		}
		return ErrTooManyAttempts
	}

	attempts, err := s.Store.IncrementAttempts(email)
	if err != nil {
		return err
	}

	if submitted != v.Code {
		remaining := limit - attempts
		if remaining <= 0 {
			remaining = 0
			if err := s.Store.DeleteByEmail(email); err != nil {
				return err
			}
		}
		log.Printf("[verify][check] mismatch email=%s remaining=%d", email, remaining)
		return &IncorrectCodeError{Remaining: remaining}
	}

	if err := s.Store.DeleteByEmail(email); err != nil {
		return err
	}
	log.Printf("[verify][check] OK email=%s", email)
	return nil
}
