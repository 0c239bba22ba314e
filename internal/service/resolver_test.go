package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/internlink/console/internal/domain/auth"
	"github.com/internlink/console/internal/mocks"
	mockauth "github.com/internlink/console/internal/mocks/auth"
	"github.com/internlink/console/internal/ports"
)

func activeProfile(uid, email string, role domainauth.Role) domainauth.Profile {
	return domainauth.Profile{
		UID:       uid,
		Email:     email,
		Role:      role,
		Status:    domainauth.StatusActive,
		CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestResolver_Resolve_NilCredential_NoStoreAccess(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	r := NewResolver(provider, store)

	identity, err := r.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Zero(t, store.GetByIDCalls)
	assert.Zero(t, store.GetByEmailCalls)
	assert.Zero(t, provider.SignOutCalls)
}

func TestResolver_Resolve_IDHitSkipsEmailLookup(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.Seed(activeProfile("uid-1", "admin@example.com", domainauth.RoleAdmin))
	r := NewResolver(provider, store)

	cred := &domainauth.Credential{UID: "uid-1", Email: "admin@example.com"}
	identity, err := r.Resolve(context.Background(), cred)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)
	assert.Equal(t, 1, store.GetByIDCalls)
	assert.Zero(t, store.GetByEmailCalls)
}

func TestResolver_Resolve_FallsBackToEmailOnIDMiss(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.SeedByEmail(activeProfile("", "legacy@example.com", domainauth.RoleCompany))
	r := NewResolver(provider, store)

	cred := &domainauth.Credential{UID: "uid-legacy", Email: "legacy@example.com"}
	identity, err := r.Resolve(context.Background(), cred)
	require.NoError(t, err)
	require.NotNil(t, identity)
	// Legacy email-keyed records carry no UID; the credential supplies it.
	assert.Equal(t, "uid-legacy", identity.UID)
	assert.Equal(t, domainauth.RoleCompany, identity.Role)
	assert.Equal(t, 1, store.GetByIDCalls)
	assert.Equal(t, 1, store.GetByEmailCalls)
}

func TestResolver_Resolve_EmptyUIDGoesStraightToEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockauth.NewMockCredentialProvider()
	store := mocks.NewMockProfileStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().GetByEmail(gomock.Any(), "a@b.com").
		Return(activeProfile("uid-1", "a@b.com", domainauth.RoleStudent), nil)

	r := NewResolver(provider, store)
	identity, err := r.Resolve(context.Background(), &domainauth.Credential{Email: "a@b.com"})
	require.NoError(t, err)
	require.NotNil(t, identity)
}

func TestResolver_Resolve_NoProfile_SignedOutWithoutError(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	r := NewResolver(provider, store)

	cred := &domainauth.Credential{UID: "ghost", Email: "ghost@example.com"}
	identity, err := r.Resolve(context.Background(), cred)
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Zero(t, provider.SignOutCalls)
}

func TestResolver_Resolve_InactiveProfile_SignsOutExactlyOnce(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	p := activeProfile("uid-1", "gone@example.com", domainauth.RoleAdmin)
	p.Status = domainauth.StatusInactive
	store.Seed(p)
	r := NewResolver(provider, store)

	cred := &domainauth.Credential{UID: "uid-1", Email: "gone@example.com"}
	identity, err := r.Resolve(context.Background(), cred)
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Equal(t, 1, provider.SignOutCalls)
}

func TestResolver_Resolve_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockauth.NewMockCredentialProvider()
	store := mocks.NewMockProfileStore(ctrl)
	storeErr := errors.New("connection refused")
	store.EXPECT().GetByID(gomock.Any(), "uid-1").Return(domainauth.Profile{}, storeErr)

	r := NewResolver(provider, store)
	identity, err := r.Resolve(context.Background(), &domainauth.Credential{UID: "uid-1", Email: "a@b.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, identity)
	// A transient store failure must not force a sign-out.
	assert.Zero(t, provider.SignOutCalls)
}

func TestResolver_Resolve_NotFoundSentinelDistinctFromFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockauth.NewMockCredentialProvider()
	store := mocks.NewMockProfileStore(ctrl)
	store.EXPECT().GetByID(gomock.Any(), "uid-1").Return(domainauth.Profile{}, ports.ErrProfileNotFound)
	store.EXPECT().GetByEmail(gomock.Any(), "a@b.com").Return(domainauth.Profile{}, ports.ErrProfileNotFound)

	r := NewResolver(provider, store)
	identity, err := r.Resolve(context.Background(), &domainauth.Credential{UID: "uid-1", Email: "a@b.com"})
	require.NoError(t, err)
	assert.Nil(t, identity)
}
