package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and display.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the recognized application roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCompany, RoleStudent:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is recognized.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// AccountStatus describes whether a provisioned account may hold a session.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// Credential is the provider-level principal: proof of a completed sign-in
// as understood by the identity provider, before any profile lookup.
type Credential struct {
	UID   string
	Email string
}

// Identity is the application-level principal derived from a credential plus
// a profile record. An Identity is only constructed for active accounts.
type Identity struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is a validated profile-store record. Raw documents from the store
// pass through ParseProfile before reaching the resolution layer.
type Profile struct {
	UID       string        `json:"uid,omitempty"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status,omitempty"`
	CreatedAt time.Time     `json:"created_at,omitempty"`
}

// Inactive reports whether the profile belongs to a deactivated account.
func (p Profile) Inactive() bool { return p.Status == StatusInactive }

// RawProfile is the untyped document shape the external profile store serves.
type RawProfile struct {
	UID       string     `json:"uid,omitempty"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ParseProfile validates a raw profile document at the store boundary.
// The role must be one of the closed role set; status defaults to active and
// the creation time defaults to now when absent. Malformed records are
// rejected rather than propagated.
func ParseProfile(raw RawProfile, now time.Time) (Profile, error) {
	email := strings.TrimSpace(strings.ToLower(raw.Email))
	if email == "" {
		return Profile{}, fmt.Errorf("profile: missing email")
	}

	role, ok := ParseRole(raw.Role)
	if !ok {
		return Profile{}, fmt.Errorf("profile %s: unknown role %q", email, raw.Role)
	}

	status := AccountStatus(strings.ToLower(strings.TrimSpace(raw.Status)))
	switch status {
	case "":
		status = StatusActive
	case StatusActive, StatusInactive:
	default:
		return Profile{}, fmt.Errorf("profile %s: unknown status %q", email, raw.Status)
	}

	createdAt := now
	if raw.CreatedAt != nil && !raw.CreatedAt.IsZero() {
		createdAt = *raw.CreatedAt
	}

	return Profile{
		UID:       strings.TrimSpace(raw.UID),
		Email:     email,
		Role:      role,
		Status:    status,
		CreatedAt: createdAt,
	}, nil
}

// IdentityFromProfile constructs the application identity for an active
// profile. The credential supplies the stable identifier when the profile
// record was provisioned without one (legacy email-keyed records).
func IdentityFromProfile(cred Credential, p Profile) Identity {
	uid := p.UID
	if uid == "" {
		uid = cred.UID
	}
	return Identity{
		UID:       uid,
		Email:     p.Email,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
}
