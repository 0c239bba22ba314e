package model

import "time"

// Admin is an administrator record served by the backend.
type Admin struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Status    string    `json:"status"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
