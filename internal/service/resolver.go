package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/internlink/console/internal/domain/auth"
	"github.com/internlink/console/internal/ports"
)

// Resolver turns a signed-in credential into an application identity by
// consulting the profile store. It is the only component allowed to force a
// provider-level sign-out, which it does when it finds an inactive account.
type Resolver struct {
	provider ports.CredentialProvider
	profiles ports.ProfileStore
}

// NewResolver constructs a Resolver.
func NewResolver(provider ports.CredentialProvider, profiles ports.ProfileStore) *Resolver {
	return &Resolver{provider: provider, profiles: profiles}
}

// Resolve maps a credential to an identity, or nil when the session should
// be treated as signed out. A nil credential resolves to nil without any
// store access. An authenticated credential with no profile record resolves
// to nil as well: authenticated but unprovisioned grants no access.
//
// Finding an inactive profile forces a provider sign-out before returning
// nil; an inactive account must never produce a usable identity, even
// transiently.
func (r *Resolver) Resolve(ctx context.Context, cred *domainauth.Credential) (*domainauth.Identity, error) {
	if cred == nil {
		return nil, nil
	}

	profile, err := r.lookup(ctx, *cred)
	if err != nil {
		if errors.Is(err, ports.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	if profile.Inactive() {
		if signOutErr := r.provider.SignOut(ctx); signOutErr != nil {
			return nil, fmt.Errorf("sign out inactive account: %w", signOutErr)
		}
		return nil, nil
	}

	identity := domainauth.IdentityFromProfile(*cred, profile)
	return &identity, nil
}

// lookup fetches the profile record by credential UID first, falling back to
// the email key only on a miss. The fallback supports records provisioned by
// an external backend under the legacy email key scheme.
func (r *Resolver) lookup(ctx context.Context, cred domainauth.Credential) (domainauth.Profile, error) {
	if cred.UID != "" {
		profile, err := r.profiles.GetByID(ctx, cred.UID)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, ports.ErrProfileNotFound) {
			return domainauth.Profile{}, err
		}
	}
	return r.profiles.GetByEmail(ctx, cred.Email)
}
