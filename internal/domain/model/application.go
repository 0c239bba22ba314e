package model

import (
	"strings"
	"time"
)

// ReviewStatus is the review state of an application or enrollment.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
)

// Valid reports whether the review status is supported.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewAccepted, ReviewRejected:
		return true
	default:
		return false
	}
}

// ParseReviewStatus normalizes a review status string and reports whether it
// is supported.
func ParseReviewStatus(value string) (ReviewStatus, bool) {
	status := ReviewStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Application is a student's application to an internship posting.
// Student, Internship, and Company are projections populated by the backend
// on list and detail reads.
type Application struct {
	ID                 string       `json:"id,omitempty"`
	StudentID          string       `json:"studentId"`
	InternshipID       string       `json:"internshipId"`
	CompanyID          string       `json:"companyId"`
	Status             ReviewStatus `json:"status"`
	CoverLetter        string       `json:"coverLetter"`
	ResumeURL          string       `json:"resumeUrl"`
	GithubURL          string       `json:"githubUrl,omitempty"`
	PortfolioURL       string       `json:"portfolioUrl,omitempty"`
	ProjectDescription string       `json:"projectDescription"`
	Notes              string       `json:"notes,omitempty"`
	CreatedAt          time.Time    `json:"createdAt,omitempty"`
	UpdatedAt          time.Time    `json:"updatedAt,omitempty"`

	Student    *StudentRef    `json:"student,omitempty"`
	Internship *InternshipRef `json:"internship,omitempty"`
	Company    *CompanyRef    `json:"company,omitempty"`
}

// InternshipRef is the minimal internship projection embedded in
// application reads.
type InternshipRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CompanyRef is the minimal company projection embedded in application reads.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
