package model

import "time"

// Student is a student record served by the backend.
type Student struct {
	ID              string    `json:"id,omitempty"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	Major           string    `json:"major"`
	ProfilePhotoURL string    `json:"profilePhotoUrl,omitempty"`
	Status          string    `json:"status"`
	Role            string    `json:"role,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// StudentRef is the minimal projection served by /students/list/minimal,
// used to populate selection lists without the full record.
type StudentRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
