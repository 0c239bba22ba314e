package ports

// Package ports defines interfaces (hexagonal ports) for the auth and storage
// boundaries. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"io"

	domainauth "github.com/internlink/console/internal/domain/auth"
)

// ErrNoSession is returned by Token when no credential is signed in.
type noSessionError struct{}

func (noSessionError) Error() string { return "no active session" }

var ErrNoSession error = noSessionError{}

// ErrProfileNotFound is returned by ProfileStore lookups on a miss.
type profileNotFoundError struct{}

func (profileNotFoundError) Error() string { return "profile not found" }

var ErrProfileNotFound error = profileNotFoundError{}

// SessionCallback observes credential-session transitions. The credential is
// nil when signed out.
type SessionCallback func(cred *domainauth.Credential)

// CredentialProvider wraps the external identity service: sign-in, sign-out,
// account creation, and current-session token retrieval. Implementations map
// provider-specific failures into the internal/errors taxonomy.
type CredentialProvider interface {
	// SignIn authenticates an email/password pair and returns the credential.
	SignIn(ctx context.Context, email, password string) (domainauth.Credential, error)

	// CreateAccount provisions a new account and returns its credential.
	CreateAccount(ctx context.Context, email, password string) (domainauth.Credential, error)

	// SignOut clears the provider-level session. Idempotent.
	SignOut(ctx context.Context) error

	// Token returns a fresh bearer token for the signed-in credential, or
	// ErrNoSession when none exists. Tokens refresh transparently at the
	// provider level and must be fetched per call, never cached.
	Token(ctx context.Context) (string, error)

	// OnSessionChange registers a callback invoked once immediately with the
	// current credential (or nil), and again on every session transition.
	// The returned function unsubscribes the callback.
	OnSessionChange(cb SessionCallback) (unsubscribe func())
}

// ProfileStore reads and provisions profile documents in the external store.
// Lookups are keyed first by credential UID, falling back to email for
// records provisioned under a legacy key scheme.
type ProfileStore interface {
	GetByID(ctx context.Context, uid string) (domainauth.Profile, error)
	GetByEmail(ctx context.Context, email string) (domainauth.Profile, error)

	// CreateAdmin provisions an administrator profile for a freshly created
	// account. Registration through the console is reserved for admins.
	CreateAdmin(ctx context.Context, cred domainauth.Credential) (domainauth.Profile, error)
}

// FileStore uploads and serves file assets (logos, photos, CVs).
type FileStore interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	DownloadURL(ctx context.Context, path string) (string, error)
}
