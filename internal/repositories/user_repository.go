package repositories

import (
	"database/sql"
	"fmt"

	"bankportal/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	const q = `
		SELECT id, email, first_name, last_name, created_at
		FROM users
		WHERE id = $1
	`
	var u models.User
	err := r.DB.QueryRow(q, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user get: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List() ([]*models.User, error) {
	const q = `
		SELECT id, email, first_name, last_name, created_at
		FROM users
		ORDER BY created_at
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("user list scan: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user list rows: %w", err)
	}
	return users, nil
}
