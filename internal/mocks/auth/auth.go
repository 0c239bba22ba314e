package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	domainauth "github.com/internlink/console/internal/domain/auth"
	"github.com/internlink/console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialProvider = (*MockCredentialProvider)(nil)
	_ ports.ProfileStore       = (*MemoryProfileStore)(nil)
)

// MockCredentialProvider simulates an identity provider for tests with a
// real session fan-out, so session-change observers behave as they do
// against the production adapters.
type MockCredentialProvider struct {
	SignInFunc        func(ctx context.Context, email, password string) (domainauth.Credential, error)
	CreateAccountFunc func(ctx context.Context, email, password string) (domainauth.Credential, error)
	SignOutFunc       func(ctx context.Context) error
	TokenFunc         func(ctx context.Context) (string, error)

	// DefaultToken is returned by Token when TokenFunc is nil and a
	// credential is signed in.
	DefaultToken string

	mu        sync.Mutex
	current   *domainauth.Credential
	callbacks map[int]ports.SessionCallback
	nextID    int

	// Call counters for assertions.
	SignOutCalls int
	TokenCalls   int
}

// NewMockCredentialProvider creates a provider double with no session.
func NewMockCredentialProvider() *MockCredentialProvider {
	return &MockCredentialProvider{
		DefaultToken: "mock-token",
		callbacks:    make(map[int]ports.SessionCallback),
	}
}

func (m *MockCredentialProvider) SignIn(ctx context.Context, email, password string) (domainauth.Credential, error) {
	if m.SignInFunc != nil {
		cred, err := m.SignInFunc(ctx, email, password)
		if err != nil {
			return domainauth.Credential{}, err
		}
		m.SetSession(&cred)
		return cred, nil
	}

	cred := domainauth.Credential{
		UID:   "mock-" + strings.SplitN(email, "@", 2)[0],
		Email: strings.ToLower(email),
	}
	m.SetSession(&cred)
	return cred, nil
}

func (m *MockCredentialProvider) CreateAccount(ctx context.Context, email, password string) (domainauth.Credential, error) {
	if m.CreateAccountFunc != nil {
		cred, err := m.CreateAccountFunc(ctx, email, password)
		if err != nil {
			return domainauth.Credential{}, err
		}
		m.SetSession(&cred)
		return cred, nil
	}
	return m.SignIn(ctx, email, password)
}

func (m *MockCredentialProvider) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.SignOutCalls++
	m.mu.Unlock()

	if m.SignOutFunc != nil {
		if err := m.SignOutFunc(ctx); err != nil {
			return err
		}
	}
	m.SetSession(nil)
	return nil
}

func (m *MockCredentialProvider) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.TokenCalls++
	m.mu.Unlock()

	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}

	m.mu.Lock()
	signedIn := m.current != nil
	m.mu.Unlock()
	if !signedIn {
		return "", ports.ErrNoSession
	}
	return m.DefaultToken, nil
}

func (m *MockCredentialProvider) OnSessionChange(cb ports.SessionCallback) func() {
	m.mu.Lock()
	if m.callbacks == nil {
		m.callbacks = make(map[int]ports.SessionCallback)
	}
	id := m.nextID
	m.nextID++
	m.callbacks[id] = cb
	cred := copyCredential(m.current)
	m.mu.Unlock()

	cb(cred)

	return func() {
		m.mu.Lock()
		delete(m.callbacks, id)
		m.mu.Unlock()
	}
}

// SetSession replaces the current credential and notifies subscribers in
// registration order, as the production adapters do.
func (m *MockCredentialProvider) SetSession(cred *domainauth.Credential) {
	m.mu.Lock()
	m.current = copyCredential(cred)

	ids := make([]int, 0, len(m.callbacks))
	for id := range m.callbacks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	cbs := make([]ports.SessionCallback, 0, len(ids))
	for _, id := range ids {
		cbs = append(cbs, m.callbacks[id])
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(copyCredential(cred))
	}
}

func copyCredential(cred *domainauth.Credential) *domainauth.Credential {
	if cred == nil {
		return nil
	}
	c := *cred
	return &c
}

// MemoryProfileStore is an in-memory profile store for unit tests. Profiles
// are registered under UID and email keys independently, so tests can model
// legacy email-keyed records by seeding only SeedByEmail.
type MemoryProfileStore struct {
	mu      sync.Mutex
	byID    map[string]domainauth.Profile
	byEmail map[string]domainauth.Profile

	// Fail overrides for error-path tests.
	GetByIDErr     error
	GetByEmailErr  error
	CreateAdminErr error

	GetByIDCalls    int
	GetByEmailCalls int
}

// NewMemoryProfileStore creates an empty in-memory store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		byID:    make(map[string]domainauth.Profile),
		byEmail: make(map[string]domainauth.Profile),
	}
}

// Seed registers a profile under both its UID and email keys.
func (m *MemoryProfileStore) Seed(p domainauth.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.UID != "" {
		m.byID[p.UID] = p
	}
	m.byEmail[strings.ToLower(p.Email)] = p
}

// SeedByEmail registers a profile under its email key only, modeling records
// provisioned before UID keying.
func (m *MemoryProfileStore) SeedByEmail(p domainauth.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[strings.ToLower(p.Email)] = p
}

func (m *MemoryProfileStore) GetByID(_ context.Context, uid string) (domainauth.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByIDCalls++
	if m.GetByIDErr != nil {
		return domainauth.Profile{}, m.GetByIDErr
	}
	p, ok := m.byID[uid]
	if !ok {
		return domainauth.Profile{}, ports.ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryProfileStore) GetByEmail(_ context.Context, email string) (domainauth.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByEmailCalls++
	if m.GetByEmailErr != nil {
		return domainauth.Profile{}, m.GetByEmailErr
	}
	p, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return domainauth.Profile{}, ports.ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryProfileStore) CreateAdmin(_ context.Context, cred domainauth.Credential) (domainauth.Profile, error) {
	if m.CreateAdminErr != nil {
		return domainauth.Profile{}, m.CreateAdminErr
	}
	if cred.Email == "" {
		return domainauth.Profile{}, errors.New("credential email cannot be empty")
	}

	p := domainauth.Profile{
		UID:       cred.UID,
		Email:     strings.ToLower(cred.Email),
		Role:      domainauth.RoleAdmin,
		Status:    domainauth.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	m.Seed(p)
	return p, nil
}
