package model

import (
	"strings"
	"time"
)

// CompanyStatus marks whether a company is currently partnered.
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// Valid reports whether the company status is supported.
func (s CompanyStatus) Valid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusInactive:
		return true
	default:
		return false
	}
}

// ParseCompanyStatus normalizes a status string and reports whether it is supported.
func ParseCompanyStatus(value string) (CompanyStatus, bool) {
	status := CompanyStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Company is a partner company record served by the backend.
type Company struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Status      CompanyStatus `json:"status"`
	Industry    string        `json:"industry,omitempty"`
	Location    string        `json:"location,omitempty"`
	Description string        `json:"description,omitempty"`
	LogoURL     string        `json:"logoUrl,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}
