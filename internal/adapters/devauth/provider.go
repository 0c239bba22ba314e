package devauth

// Package devauth provides a config-driven, in-memory CredentialProvider for
// local development and tests. It mints real HS256 bearer tokens so the data
// access client behaves the same as against the production provider.

import (
	"context"
	"errors"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/internlink/console/internal/domain/auth"
	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/ports"
)

// maxFailedAttempts is the consecutive-failure threshold before an email is
// throttled, mirroring the production provider's lockout behavior.
const maxFailedAttempts = 5

// minPasswordLen is the provider password policy.
const minPasswordLen = 6

// Account seeds the provider with a known email/password pair.
type Account struct {
	UID      string
	Email    string
	Password string
	Disabled bool
}

// Config controls the dev auth provider behavior.
type Config struct {
	Accounts   []Account
	SigningKey []byte        // required, signs issued bearer tokens
	TokenTTL   time.Duration // default 1h when zero
}

// Provider implements ports.CredentialProvider against an in-memory account
// set. One credential is current at a time; every transition is fanned out to
// registered session callbacks in subscription order.
type Provider struct {
	mu       sync.Mutex
	accounts map[string]Account // keyed by lower-cased email
	failures map[string]int     // consecutive failed sign-ins per email
	key      []byte
	tokenTTL time.Duration

	current *domainauth.Credential
	subs    map[int]ports.SessionCallback
	nextSub int
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("dev auth: SigningKey is required")
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	p := &Provider{
		accounts: make(map[string]Account, len(cfg.Accounts)),
		failures: make(map[string]int),
		key:      cfg.SigningKey,
		tokenTTL: ttl,
		subs:     make(map[int]ports.SessionCallback),
	}
	for _, acc := range cfg.Accounts {
		email := normalizeEmail(acc.Email)
		if email == "" {
			return nil, errors.New("dev auth: account email is required")
		}
		if acc.UID == "" {
			acc.UID = uuid.NewString()
		}
		acc.Email = email
		p.accounts[email] = acc
	}
	return p, nil
}

func (p *Provider) SignIn(_ context.Context, email, password string) (domainauth.Credential, error) {
	key := normalizeEmail(email)
	if key == "" || !validEmail(key) {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeMalformedEmail, "Invalid email format")
	}

	p.mu.Lock()
	if p.failures[key] >= maxFailedAttempts {
		p.mu.Unlock()
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeRateLimited,
			"Too many failed attempts. Please try again later")
	}

	acc, ok := p.accounts[key]
	if !ok {
		p.failures[key]++
		p.mu.Unlock()
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeInvalidCredentials,
			"No account found with this email")
	}
	if acc.Disabled {
		p.mu.Unlock()
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeAccountDisabled,
			"This account has been disabled")
	}
	if acc.Password != password {
		p.failures[key]++
		p.mu.Unlock()
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeInvalidCredentials,
			"Incorrect password")
	}

	delete(p.failures, key)
	cred := domainauth.Credential{UID: acc.UID, Email: acc.Email}
	p.current = &cred
	cbs := p.snapshotCallbacks()
	p.mu.Unlock()

	notify(cbs, &cred)
	return cred, nil
}

func (p *Provider) CreateAccount(_ context.Context, email, password string) (domainauth.Credential, error) {
	key := normalizeEmail(email)
	if key == "" || !validEmail(key) {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeMalformedEmail, "Invalid email format")
	}
	if len(password) < minPasswordLen {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeWeakPassword,
			"Password should be at least 6 characters")
	}

	p.mu.Lock()
	if _, exists := p.accounts[key]; exists {
		p.mu.Unlock()
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeEmailInUse,
			"An account with this email already exists")
	}

	acc := Account{UID: uuid.NewString(), Email: key, Password: password}
	p.accounts[key] = acc
	cred := domainauth.Credential{UID: acc.UID, Email: acc.Email}
	p.current = &cred
	cbs := p.snapshotCallbacks()
	p.mu.Unlock()

	notify(cbs, &cred)
	return cred, nil
}

func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	wasSignedIn := p.current != nil
	p.current = nil
	cbs := p.snapshotCallbacks()
	p.mu.Unlock()

	if wasSignedIn {
		notify(cbs, nil)
	}
	return nil
}

// Token mints a fresh HS256 bearer token for the current credential.
func (p *Provider) Token(_ context.Context) (string, error) {
	p.mu.Lock()
	cred := p.current
	p.mu.Unlock()

	if cred == nil {
		return "", ports.ErrNoSession
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   cred.UID,
		"email": cred.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(p.key)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "sign bearer token")
	}
	return signed, nil
}

func (p *Provider) OnSessionChange(cb ports.SessionCallback) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = cb
	cred := credCopy(p.current)
	p.mu.Unlock()

	// Initial invocation with the current credential (or nil).
	cb(cred)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// snapshotCallbacks returns subscribers in registration order. Callers must
// hold p.mu.
func (p *Provider) snapshotCallbacks() []ports.SessionCallback {
	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	cbs := make([]ports.SessionCallback, 0, len(ids))
	for _, id := range ids {
		cbs = append(cbs, p.subs[id])
	}
	return cbs
}

func notify(cbs []ports.SessionCallback, cred *domainauth.Credential) {
	for _, cb := range cbs {
		cb(credCopy(cred))
	}
}

func credCopy(cred *domainauth.Credential) *domainauth.Credential {
	if cred == nil {
		return nil
	}
	c := *cred
	return &c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
