package oidcauth

// Package oidcauth implements the CredentialProvider against an OIDC identity
// service using the resource-owner password grant. The console is a trusted
// first-party client, which is the one flow where the password grant remains
// appropriate.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/internlink/console/internal/domain/auth"
	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/ports"
)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string

	// RegistrationURL is the provider's account-provisioning endpoint,
	// accepting POST {"email","password"} and returning 201 on success.
	RegistrationURL string

	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Provider implements ports.CredentialProvider using OIDC/OAuth2.
// A refreshing token source is retained per sign-in so Token always returns
// a currently valid bearer, refreshed transparently by oauth2.
type Provider struct {
	config          *oauth2.Config
	verifier        *gooidc.IDTokenVerifier
	registrationURL string
	httpClient      *http.Client

	mu      sync.Mutex
	source  oauth2.TokenSource
	current *domainauth.Credential
	subs    map[int]ports.SessionCallback
	nextSub int
}

// NewProvider creates a new OIDC credential provider.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	// Initialize go-oidc provider and verifier (single discovery fetch)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     op.Endpoint(),
		},
		verifier:        op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		registrationURL: cfg.RegistrationURL,
		httpClient:      httpClient,
	}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (domainauth.Credential, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, mailErr := mail.ParseAddress(email); mailErr != nil {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeMalformedEmail, "Invalid email format")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return domainauth.Credential{}, mapTokenError(err)
	}

	cred, err := p.credentialFromToken(ctx, token, email)
	if err != nil {
		return domainauth.Credential{}, err
	}

	// The token source carries its own background context so refreshes keep
	// working after the sign-in call returns.
	srcCtx := context.WithValue(context.Background(), oauth2.HTTPClient, p.httpClient)
	src := p.config.TokenSource(srcCtx, token)

	p.mu.Lock()
	p.source = src
	p.current = &cred
	cbs := p.snapshotCallbacks()
	p.mu.Unlock()

	notify(cbs, &cred)
	return cred, nil
}

func (p *Provider) CreateAccount(ctx context.Context, email, password string) (domainauth.Credential, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, mailErr := mail.ParseAddress(email); mailErr != nil {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeMalformedEmail, "Invalid email format")
	}
	if p.registrationURL == "" {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeInternal,
			"account registration is not configured")
	}

	if err := p.register(ctx, email, password); err != nil {
		return domainauth.Credential{}, err
	}

	// Provisioning succeeded; sign in to produce the credential and session.
	return p.SignIn(ctx, email, password)
}

func (p *Provider) register(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode registration request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.registrationURL, strings.NewReader(string(body)))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "create registration request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to create account. Please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return mapRegistrationError(resp)
}

func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	wasSignedIn := p.current != nil
	p.source = nil
	p.current = nil
	cbs := p.snapshotCallbacks()
	p.mu.Unlock()

	if wasSignedIn {
		notify(cbs, nil)
	}
	return nil
}

// Token returns a fresh access token, refreshed by the oauth2 token source
// when the cached one has expired.
func (p *Provider) Token(_ context.Context) (string, error) {
	p.mu.Lock()
	src := p.source
	p.mu.Unlock()

	if src == nil {
		return "", ports.ErrNoSession
	}
	token, err := src.Token()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "refresh bearer token")
	}
	return token.AccessToken, nil
}

func (p *Provider) OnSessionChange(cb ports.SessionCallback) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs = ensureSubs(p.subs)
	p.subs[id] = cb
	cred := credCopy(p.current)
	p.mu.Unlock()

	cb(cred)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// credentialFromToken extracts the stable subject from the verified ID token,
// falling back to the sign-in email when no id_token was issued.
func (p *Provider) credentialFromToken(ctx context.Context, tok *oauth2.Token, email string) (domainauth.Credential, error) {
	rawID, _ := tok.Extra("id_token").(string)
	if rawID == "" {
		return domainauth.Credential{Email: email}, nil
	}

	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Credential{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify id_token")
	}
	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
	}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Credential{}, apperrors.Wrap(claimsErr, apperrors.ErrCodeInternal, "parse id_token claims")
	}
	if claims.Email == "" {
		claims.Email = email
	}
	return domainauth.Credential{UID: claims.Sub, Email: claims.Email}, nil
}

// providerErrorBody is the JSON error shape returned by the IdP's token and
// registration endpoints.
type providerErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"message"`
}

// mapTokenError translates oauth2 token-endpoint failures into the fixed
// credential error set.
func mapTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to sign in. Please try again")
	}

	if rerr.Response != nil && rerr.Response.StatusCode == http.StatusTooManyRequests {
		return apperrors.New(apperrors.ErrCodeRateLimited, "Too many failed attempts. Please try again later")
	}

	var body providerErrorBody
	_ = json.Unmarshal(rerr.Body, &body)
	switch body.Error {
	case "invalid_grant":
		if strings.Contains(strings.ToLower(body.Description), "disabled") {
			return apperrors.New(apperrors.ErrCodeAccountDisabled, "This account has been disabled")
		}
		return apperrors.New(apperrors.ErrCodeInvalidCredentials, "Incorrect email or password")
	case "account_disabled", "user_disabled":
		return apperrors.New(apperrors.ErrCodeAccountDisabled, "This account has been disabled")
	case "slow_down", "temporarily_unavailable":
		return apperrors.New(apperrors.ErrCodeRateLimited, "Too many failed attempts. Please try again later")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to sign in. Please try again")
	}
}

// mapRegistrationError translates registration-endpoint failures into the
// fixed credential error set.
func mapRegistrationError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body providerErrorBody
	_ = json.Unmarshal(raw, &body)

	code := body.Error
	if code == "" {
		code = body.Message
	}
	switch {
	case resp.StatusCode == http.StatusConflict || strings.Contains(code, "email_exists"):
		return apperrors.New(apperrors.ErrCodeEmailInUse, "An account with this email already exists")
	case strings.Contains(code, "weak_password"):
		return apperrors.New(apperrors.ErrCodeWeakPassword, "Password should be at least 6 characters")
	case strings.Contains(code, "invalid_email"):
		return apperrors.New(apperrors.ErrCodeMalformedEmail, "Invalid email format")
	default:
		return apperrors.Newf(apperrors.ErrCodeInternal,
			"Failed to create account. Please try again (status %d)", resp.StatusCode)
	}
}

func ensureSubs(subs map[int]ports.SessionCallback) map[int]ports.SessionCallback {
	if subs == nil {
		return make(map[int]ports.SessionCallback)
	}
	return subs
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
