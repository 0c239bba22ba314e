package model

import (
	"strings"
	"time"
)

// InternshipStatus marks whether a posting accepts applications.
type InternshipStatus string

const (
	InternshipStatusOpen   InternshipStatus = "open"
	InternshipStatusClosed InternshipStatus = "closed"
)

// LocationType describes where the internship is performed.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationOnsite LocationType = "onsite"
	LocationHybrid LocationType = "hybrid"
)

// Valid reports whether the location type is supported.
func (l LocationType) Valid() bool {
	switch l {
	case LocationRemote, LocationOnsite, LocationHybrid:
		return true
	default:
		return false
	}
}

// ParseLocationType normalizes a location type string and reports whether it
// is supported.
func ParseLocationType(value string) (LocationType, bool) {
	lt := LocationType(strings.ToLower(strings.TrimSpace(value)))
	if lt.Valid() {
		return lt, true
	}
	return "", false
}

// Internship is an internship posting served by the backend.
type Internship struct {
	ID             string           `json:"id,omitempty"`
	CompanyID      string           `json:"companyId"`
	CompanyName    string           `json:"companyName,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         InternshipStatus `json:"status"`
	Location       string           `json:"location"`
	LocationType   LocationType     `json:"locationType"`
	Duration       string           `json:"duration"`
	RequiredSkills []string         `json:"requiredSkills"`
	LogoURL        string           `json:"logoUrl,omitempty"`
	CreatedAt      time.Time        `json:"createdAt,omitempty"`
}
