package repositories

import (
	"database/sql"
	"fmt"

	"bankportal/internal/models"
)

// CardRepository covers both card_requests and cards; the two tables share
// the (user_id, card_type) key and every write is a whole-row upsert.
type CardRepository struct {
	DB *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{DB: db}
}

func (r *CardRepository) GetRequest(userID, cardType string) (*models.CardRequest, error) {
	const q = `
		SELECT user_id, card_type, status, requested_at, completed_at, admin_notes, updated_at
		FROM card_requests
		WHERE user_id = $1 AND card_type = $2
	`
	var req models.CardRequest
	var completedAt sql.NullTime
	err := r.DB.QueryRow(q, userID, cardType).Scan(
		&req.UserID,
		&req.CardType,
		&req.Status,
		&req.RequestedAt,
		&completedAt,
		&req.AdminNotes,
		&req.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("card_request get: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		req.CompletedAt = &t
	}
	return &req, nil
}

func (r *CardRepository) SaveRequest(req *models.CardRequest) error {
	const q = `
		INSERT INTO card_requests (user_id, card_type, status, requested_at, completed_at, admin_notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, card_type) DO UPDATE
		SET status = EXCLUDED.status,
		    requested_at = EXCLUDED.requested_at,
		    completed_at = EXCLUDED.completed_at,
		    admin_notes = EXCLUDED.admin_notes,
		    updated_at = EXCLUDED.updated_at
	`
	var completedAt sql.NullTime
	if req.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *req.CompletedAt, Valid: true}
	}
	_, err := r.DB.Exec(q, req.UserID, req.CardType, req.Status, req.RequestedAt, completedAt, req.AdminNotes, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("card_request save: %w", err)
	}
	return nil
}

func (r *CardRepository) ListRequestsByUser(userID string) ([]*models.CardRequest, error) {
	const q = `
		SELECT user_id, card_type, status, requested_at, completed_at, admin_notes, updated_at
		FROM card_requests
		WHERE user_id = $1
		ORDER BY card_type
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("card_request list: %w", err)
	}
	defer rows.Close()

	var out []*models.CardRequest
	for rows.Next() {
		var req models.CardRequest
		var completedAt sql.NullTime
		if err := rows.Scan(
			&req.UserID,
			&req.CardType,
			&req.Status,
			&req.RequestedAt,
			&completedAt,
			&req.AdminNotes,
			&req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("card_request list scan: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			req.CompletedAt = &t
		}
		out = append(out, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("card_request list rows: %w", err)
	}
	return out, nil
}

func (r *CardRepository) GetCard(userID, cardType string) (*models.Card, error) {
	const q = `
		SELECT user_id, card_type, card_number, expiry_date, cvv, is_active, is_displayed, updated_at
		FROM cards
		WHERE user_id = $1 AND card_type = $2
	`
	var c models.Card
	err := r.DB.QueryRow(q, userID, cardType).Scan(
		&c.UserID,
		&c.CardType,
		&c.CardNumber,
		&c.ExpiryDate,
		&c.CVV,
		&c.IsActive,
		&c.IsDisplayed,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("card get: %w", err)
	}
	return &c, nil
}

func (r *CardRepository) SaveCard(c *models.Card) error {
	const q = `
		INSERT INTO cards (user_id, card_type, card_number, expiry_date, cvv, is_active, is_displayed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, card_type) DO UPDATE
		SET card_number = EXCLUDED.card_number,
		    expiry_date = EXCLUDED.expiry_date,
		    cvv = EXCLUDED.cvv,
		    is_active = EXCLUDED.is_active,
		    is_displayed = EXCLUDED.is_displayed,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.Exec(q, c.UserID, c.CardType, c.CardNumber, c.ExpiryDate, c.CVV, c.IsActive, c.IsDisplayed, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("card save: %w", err)
	}
	return nil
}

func (r *CardRepository) ListCardsByUser(userID string) ([]*models.Card, error) {
	const q = `
		SELECT user_id, card_type, card_number, expiry_date, cvv, is_active, is_displayed, updated_at
		FROM cards
		WHERE user_id = $1
		ORDER BY card_type
	`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, fmt.Errorf("card list: %w", err)
	}
	defer rows.Close()

	var out []*models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(
			&c.UserID,
			&c.CardType,
			&c.CardNumber,
			&c.ExpiryDate,
			&c.CVV,
			&c.IsActive,
			&c.IsDisplayed,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("card list scan: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("card list rows: %w", err)
	}
	return out, nil
}
