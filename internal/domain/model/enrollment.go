package model

import "time"

// Enrollment records a student's enrollment with a company after an
// accepted application.
type Enrollment struct {
	ID           string       `json:"id,omitempty"`
	StudentID    string       `json:"studentId"`
	InternshipID string       `json:"internshipId"`
	CompanyID    string       `json:"companyId"`
	Status       ReviewStatus `json:"status"`
	StartDate    string       `json:"startDate,omitempty"`
	EndDate      string       `json:"endDate,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`

	Student    *StudentRef    `json:"student,omitempty"`
	Internship *InternshipRef `json:"internship,omitempty"`
	Company    *CompanyRef    `json:"company,omitempty"`
}
