package models

import "time"

// User — portal customer. Authentication of customers lives with the
// identity provider; we only need existence and contact data here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCardState — what list-users reports: the user plus the request and
// card rows for both card types (missing entries mean never requested).
type UserCardState struct {
	User     *User          `json:"user"`
	Requests []*CardRequest `json:"requests"`
	Cards    []*Card        `json:"cards"`
}
