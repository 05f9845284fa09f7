package repositories

import (
	"database/sql"
	"fmt"

	"bankportal/internal/models"
)

type VerificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

// Upsert — one live row per email: a fresh send replaces whatever was there,
// attempts included.
func (r *VerificationRepository) Upsert(v *models.EmailVerification) error {
	const q = `
		INSERT INTO email_verifications (email, code, sent_at, expires_at, attempts)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code,
		    sent_at = EXCLUDED.sent_at,
		    expires_at = EXCLUDED.expires_at,
		    attempts = EXCLUDED.attempts
	`
	if _, err := r.DB.Exec(q, v.Email, v.Code, v.SentAt, v.ExpiresAt, v.Attempts); err != nil {
		return fmt.Errorf("email_verification upsert: %w", err)
	}
	return nil
}

func (r *VerificationRepository) GetByEmail(email string) (*models.EmailVerification, error) {
	const q = `
		SELECT email, code, sent_at, expires_at, attempts
		FROM email_verifications
		WHERE email = $1
	`
	var v models.EmailVerification
	err := r.DB.QueryRow(q, email).Scan(&v.Email, &v.Code, &v.SentAt, &v.ExpiresAt, &v.Attempts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("email_verification get: %w", err)
	}
	return &v, nil
}

// IncrementAttempts — +1 attempt in a single statement so concurrent
// validations cannot lose an increment; returns the new value.
func (r *VerificationRepository) IncrementAttempts(email string) (int, error) {
	const q = `
		UPDATE email_verifications
		SET attempts = attempts + 1
		WHERE email = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, email).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("email_verification increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *VerificationRepository) DeleteByEmail(email string) error {
	if _, err := r.DB.Exec(`DELETE FROM email_verifications WHERE email = $1`, email); err != nil {
		return fmt.Errorf("email_verification delete: %w", err)
	}
	return nil
}
