package services

import (
	"errors"
	"testing"
	"time"

	"bankportal/internal/models"
)

func newTestVerificationService(store VerificationStore, at time.Time) *VerificationService {
	svc := NewVerificationService(store)
	now := at
	svc.Now = func() time.Time { return now }
	return svc
}

func TestIssueCode_RejectsMalformedEmail(t *testing.T) {
	svc := newTestVerificationService(newFakeVerificationStore(), time.Now())

	for _, email := range []string{"", "plain", "no-at.example.com", "a@b", "two words@x.io"} {
		if _, err := svc.IssueCode(email); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("IssueCode(%q): expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestIssueCode_StoresSixDigitCodeWithTTL(t *testing.T) {
	store := newFakeVerificationStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestVerificationService(store, base)

	code, err := svc.IssueCode("user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("expected 6-digit code, got %q", code)
	}

	rec, _ := store.GetByEmail("user@example.com")
	if rec == nil {
		t.Fatal("record not stored")
	}
	if rec.Code != code {
		t.Errorf("stored code %q != returned %q", rec.Code, code)
	}
	if rec.Attempts != 0 {
		t.Errorf("fresh record attempts = %d, want 0", rec.Attempts)
	}
	if want := base.Add(15 * time.Minute); !rec.ExpiresAt.Equal(want) {
		t.Errorf("expires_at = %v, want %v", rec.ExpiresAt, want)
	}
}

func TestIssueCode_OverwritesPriorRecord(t *testing.T) {
	store := newFakeVerificationStore()
	svc := newTestVerificationService(store, time.Now())

	if _, err := svc.IssueCode("user@example.com"); err != nil {
		t.Fatalf("first IssueCode: %v", err)
	}
	// burn an attempt against the first code
	_ = svc.ValidateCode("user@example.com", "000000")

	code2, err := svc.IssueCode("user@example.com")
	if err != nil {
		t.Fatalf("second IssueCode: %v", err)
	}
	rec, _ := store.GetByEmail("user@example.com")
	if rec.Attempts != 0 {
		t.Errorf("re-issue did not reset attempts: %d", rec.Attempts)
	}
	if rec.Code != code2 {
		t.Errorf("re-issue did not replace code")
	}
}

func TestValidateCode_SucceedsExactlyOnce(t *testing.T) {
	svc := newTestVerificationService(newFakeVerificationStore(), time.Now())

	code, err := svc.IssueCode("user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}
	if err := svc.ValidateCode("user@example.com", code); err != nil {
		t.Fatalf("first ValidateCode: %v", err)
	}
	// record is consumed
	if err := svc.ValidateCode("user@example.com", code); !errors.Is(err, ErrNoCodeRequested) {
		t.Errorf("second ValidateCode: expected ErrNoCodeRequested, got %v", err)
	}
}

func TestValidateCode_InputValidation(t *testing.T) {
	svc := newTestVerificationService(newFakeVerificationStore(), time.Now())

	if err := svc.ValidateCode("not-an-email", "123456"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
	for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
		if err := svc.ValidateCode("user@example.com", code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("code %q: expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestValidateCode_NoRecord(t *testing.T) {
	svc := newTestVerificationService(newFakeVerificationStore(), time.Now())
	if err := svc.ValidateCode("user@example.com", "123456"); !errors.Is(err, ErrNoCodeRequested) {
		t.Errorf("expected ErrNoCodeRequested, got %v", err)
	}
}

func TestValidateCode_Expired(t *testing.T) {
	store := newFakeVerificationStore()
	svc := NewVerificationService(store)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	code, err := svc.IssueCode("user@example.com")
	if err != nil {
		t.Fatalf("IssueCode: %v", err)
	}

	now = now.Add(15*time.Minute + time.Second)
	if err := svc.ValidateCode("user@example.com", code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired even with the right code, got %v", err)
	}
	if rec, _ := store.GetByEmail("user@example.com"); rec != nil {
		t.Error("expired record was not deleted")
	}
}

func TestValidateCode_WrongCodeCountsDown(t *testing.T) {
	store := newFakeVerificationStore()
	svc := newTestVerificationService(store, time.Now())

	// pin the stored code so the wrong guess is known
	_ = store.Upsert(&models.EmailVerification{
		Email:     "user@example.com",
		Code:      "042917",
		SentAt:    time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	})

	for i, wantRemaining := range []int{2, 1, 0} {
		err := svc.ValidateCode("user@example.com", "000000")
		var incorrect *IncorrectCodeError
		if !errors.As(err, &incorrect) {
			t.Fatalf("attempt %d: expected IncorrectCodeError, got %v", i+1, err)
		}
		if incorrect.Remaining != wantRemaining {
			t.Errorf("attempt %d: remaining = %d, want %d", i+1, incorrect.Remaining, wantRemaining)
		}
	}

	// third failure consumed the record; the correct code is useless now
	if rec, _ := store.GetByEmail("user@example.com"); rec != nil {
		t.Error("record survived the third wrong attempt")
	}
	if err := svc.ValidateCode("user@example.com", "042917"); !errors.Is(err, ErrNoCodeRequested) {
		t.Errorf("expected ErrNoCodeRequested after exhaustion, got %v", err)
	}
}

func TestValidateCode_AttemptCapOnStaleRecord(t *testing.T) {
	// a racing validation can leave a record at the cap; the next call must
	// refuse and clean up
	store := newFakeVerificationStore()
	svc := newTestVerificationService(store, time.Now())

	_ = store.Upsert(&models.EmailVerification{
		Email:     "user@example.com",
		Code:      "042917",
		SentAt:    time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
		Attempts:  3,
	})

	if err := svc.ValidateCode("user@example.com", "042917"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if rec, _ := store.GetByEmail("user@example.com"); rec != nil {
		t.Error("exhausted record was not deleted")
	}
}

func TestValidateCode_MismatchPersistsAttempt(t *testing.T) {
	store := newFakeVerificationStore()
	svc := newTestVerificationService(store, time.Now())

	_ = store.Upsert(&models.EmailVerification{
		Email:     "user@example.com",
		Code:      "042917",
		SentAt:    time.Now(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	})

	_ = svc.ValidateCode("user@example.com", "000000")
	rec, _ := store.GetByEmail("user@example.com")
	if rec == nil || rec.Attempts != 1 {
		t.Fatalf("attempt was not persisted: %+v", rec)
	}
}
