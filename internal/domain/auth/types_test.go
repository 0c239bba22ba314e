package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Role
		ok    bool
	}{
		{name: "admin", input: "admin", want: RoleAdmin, ok: true},
		{name: "company", input: "company", want: RoleCompany, ok: true},
		{name: "student", input: "student", want: RoleStudent, ok: true},
		{name: "mixed case", input: " Admin ", want: RoleAdmin, ok: true},
		{name: "unknown", input: "superuser", want: "", ok: false},
		{name: "empty", input: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProfile_DefaultsStatusAndCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	p, err := ParseProfile(RawProfile{Email: "Admin@Example.com", Role: "admin"}, now)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", p.Email)
	assert.Equal(t, RoleAdmin, p.Role)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, now, p.CreatedAt)
	assert.False(t, p.Inactive())
}

func TestParseProfile_KeepsStoredCreatedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)

	p, err := ParseProfile(RawProfile{
		UID:       "uid-1",
		Email:     "student@example.com",
		Role:      "student",
		Status:    "inactive",
		CreatedAt: &created,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.UID)
	assert.Equal(t, created, p.CreatedAt)
	assert.True(t, p.Inactive())
}

func TestParseProfile_RejectsMalformedRecords(t *testing.T) {
	now := time.Now()

	_, err := ParseProfile(RawProfile{Email: "", Role: "admin"}, now)
	require.Error(t, err)

	_, err = ParseProfile(RawProfile{Email: "a@b.com", Role: "root"}, now)
	require.Error(t, err)

	_, err = ParseProfile(RawProfile{Email: "a@b.com", Role: "admin", Status: "suspended"}, now)
	require.Error(t, err)
}

func TestIdentityFromProfile_UsesCredentialUIDForLegacyRecords(t *testing.T) {
	cred := Credential{UID: "cred-uid", Email: "legacy@example.com"}
	profile := Profile{
		Email:     "legacy@example.com",
		Role:      RoleCompany,
		Status:    StatusActive,
		CreatedAt: time.Now(),
	}

	identity := IdentityFromProfile(cred, profile)
	assert.Equal(t, "cred-uid", identity.UID)
	assert.Equal(t, RoleCompany, identity.Role)
}

func TestIdentityFromProfile_PrefersProfileUID(t *testing.T) {
	cred := Credential{UID: "cred-uid", Email: "a@b.com"}
	profile := Profile{UID: "profile-uid", Email: "a@b.com", Role: RoleAdmin}

	identity := IdentityFromProfile(cred, profile)
	assert.Equal(t, "profile-uid", identity.UID)
}
