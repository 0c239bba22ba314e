package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	domainauth "github.com/internlink/console/internal/domain/auth"
	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/ports"
)

// Snapshot is the live session state handed to watchers. Identity is nil
// while signed out; Loading is true only until the first resolution after
// startup completes.
type Snapshot struct {
	Identity *domainauth.Identity
	Loading  bool
}

// Role returns the current role and whether an identity is present.
func (s Snapshot) Role() (domainauth.Role, bool) {
	if s.Identity == nil {
		return "", false
	}
	return s.Identity.Role, true
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Provider ports.CredentialProvider
	Profiles ports.ProfileStore
	Logger   *slog.Logger

	// BootstrapAdmin grants a default administrator identity when login finds
	// no profile record at all. Intended for environments where profile
	// provisioning lags credential creation. Off unless explicitly enabled.
	BootstrapAdmin bool
}

// SessionManager owns the single process-wide session: the current identity,
// the loading flag, and the login/register/logout operations. State is
// mutated only here and by the credential-change subscription; everything
// else reads through Current or Subscribe.
type SessionManager struct {
	provider  ports.CredentialProvider
	profiles  ports.ProfileStore
	resolver  *Resolver
	logger    *slog.Logger
	bootstrap bool

	mu          sync.Mutex
	identity    *domainauth.Identity
	loading     bool
	generation  uint64
	watchers    map[int]func(Snapshot)
	nextWatcher int
	unsubscribe func()
}

// NewSessionManager constructs a SessionManager. Call Start to begin
// observing credential-session changes.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		provider:  opts.Provider,
		profiles:  opts.Profiles,
		resolver:  NewResolver(opts.Provider, opts.Profiles),
		logger:    logger,
		bootstrap: opts.BootstrapAdmin,
		loading:   true,
		watchers:  make(map[int]func(Snapshot)),
	}
}

// Start subscribes to provider session changes. Each change event triggers a
// resolution tagged with a generation; a resolution whose generation is stale
// by the time it completes is discarded, so overlapping events can never
// apply out of order.
func (m *SessionManager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.unsubscribe != nil {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	unsub := m.provider.OnSessionChange(func(cred *domainauth.Credential) {
		m.mu.Lock()
		m.generation++
		gen := m.generation
		m.mu.Unlock()

		// Signed-out events resolve with no store access; apply inline.
		if cred == nil {
			m.apply(gen, nil)
			return
		}

		go func() {
			identity, err := m.resolver.Resolve(ctx, cred)
			if err != nil {
				m.logger.Error("session resolution failed", "email", cred.Email, "error", err)
				identity = nil
			}
			m.apply(gen, identity)
		}()
	})

	m.mu.Lock()
	m.unsubscribe = unsub
	m.mu.Unlock()
}

// Close stops observing provider session changes.
func (m *SessionManager) Close() {
	m.mu.Lock()
	unsub := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Current returns the live session snapshot.
func (m *SessionManager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Identity: identityCopy(m.identity), Loading: m.loading}
}

// Subscribe registers a watcher notified on every applied session
// transition, and returns an unsubscribe function. Watchers receive the
// current snapshot immediately.
func (m *SessionManager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	id := m.nextWatcher
	m.nextWatcher++
	m.watchers[id] = fn
	snap := Snapshot{Identity: identityCopy(m.identity), Loading: m.loading}
	m.mu.Unlock()

	fn(snap)

	return func() {
		m.mu.Lock()
		delete(m.watchers, id)
		m.mu.Unlock()
	}
}

// Login signs in and resolves the profile inline so callers get a typed,
// user-facing failure instead of silently landing signed out.
func (m *SessionManager) Login(ctx context.Context, email, password string) (domainauth.Identity, error) {
	cred, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, err
	}

	profile, err := m.resolver.lookup(ctx, cred)
	switch {
	case errors.Is(err, ports.ErrProfileNotFound):
		if !m.bootstrap {
			return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeProfileMissing, "User data not found")
		}
		// First-run bootstrap: credential exists, profile provisioning lags.
		identity := domainauth.Identity{
			UID:       cred.UID,
			Email:     cred.Email,
			Role:      domainauth.RoleAdmin,
			CreatedAt: time.Now(),
		}
		m.applyLocal(&identity)
		return identity, nil
	case err != nil:
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to sign in. Please try again")
	}

	if profile.Inactive() {
		if signOutErr := m.provider.SignOut(ctx); signOutErr != nil {
			m.logger.Error("sign out deactivated account failed", "email", email, "error", signOutErr)
		}
		m.applyLocal(nil)
		return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeAccountDeactivated,
			"This account has been deactivated")
	}

	identity := domainauth.IdentityFromProfile(cred, profile)
	m.applyLocal(&identity)
	return identity, nil
}

// Register creates an administrator account. Registration through the
// console is reserved for administrators, so the resulting identity carries
// the admin role no matter what the stored record says.
func (m *SessionManager) Register(ctx context.Context, email, password string) (domainauth.Identity, error) {
	cred, err := m.provider.CreateAccount(ctx, email, password)
	if err != nil {
		return domainauth.Identity{}, err
	}

	if _, createErr := m.profiles.CreateAdmin(ctx, cred); createErr != nil {
		return domainauth.Identity{}, apperrors.Wrap(createErr, apperrors.ErrCodeInternal,
			"Failed to create account. Please try again")
	}

	profile, err := m.resolver.lookup(ctx, cred)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeProfileMissing,
			"User data not found after registration")
	}

	identity := domainauth.IdentityFromProfile(cred, profile)
	identity.Role = domainauth.RoleAdmin
	m.applyLocal(&identity)
	return identity, nil
}

// Logout signs out at the provider and clears local state unconditionally,
// even when the provider call fails: local state must not be left
// inconsistent with user intent. A provider failure is still returned.
func (m *SessionManager) Logout(ctx context.Context) error {
	err := m.provider.SignOut(ctx)
	m.applyLocal(nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to sign out")
	}
	return nil
}

// apply installs a resolution result unless its generation went stale while
// it was in flight.
func (m *SessionManager) apply(gen uint64, identity *domainauth.Identity) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.identity = identity
	m.loading = false
	snap := Snapshot{Identity: identityCopy(identity), Loading: false}
	watchers := m.snapshotWatchers()
	m.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
}

// applyLocal installs a state transition produced by login/register/logout.
// Bumping the generation invalidates any resolution still in flight, so a
// slow background resolution can never overwrite a deliberate transition.
func (m *SessionManager) applyLocal(identity *domainauth.Identity) {
	m.mu.Lock()
	m.generation++
	m.identity = identity
	m.loading = false
	snap := Snapshot{Identity: identityCopy(identity), Loading: false}
	watchers := m.snapshotWatchers()
	m.mu.Unlock()

	for _, w := range watchers {
		w(snap)
	}
}

// snapshotWatchers returns watchers in subscription order. Callers must hold
// m.mu.
func (m *SessionManager) snapshotWatchers() []func(Snapshot) {
	ids := make([]int, 0, len(m.watchers))
	for id := range m.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	watchers := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		watchers = append(watchers, m.watchers[id])
	}
	return watchers
}

func identityCopy(identity *domainauth.Identity) *domainauth.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}
