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
	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/mocks"
	mockauth "github.com/internlink/console/internal/mocks/auth"
)

func newManager(provider *mockauth.MockCredentialProvider, store *mockauth.MemoryProfileStore) *SessionManager {
	return NewSessionManager(SessionManagerOptions{Provider: provider, Profiles: store})
}

func TestSessionManager_LoadingUntilFirstResolution(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	m := newManager(provider, store)

	assert.True(t, m.Current().Loading)

	// A signed-out provider resolves inline on subscription.
	m.Start(context.Background())
	defer m.Close()

	snap := m.Current()
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.Identity)
}

func TestSessionManager_ResolvesExistingSessionOnStart(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.Seed(activeProfile("uid-1", "admin@example.com", domainauth.RoleAdmin))
	provider.SetSession(&domainauth.Credential{UID: "uid-1", Email: "admin@example.com"})

	m := newManager(provider, store)
	m.Start(context.Background())
	defer m.Close()

	require.Eventually(t, func() bool {
		snap := m.Current()
		return !snap.Loading && snap.Identity != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, domainauth.RoleAdmin, m.Current().Identity.Role)
}

func TestSessionManager_Login_Success(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.Seed(activeProfile("mock-admin", "admin@example.com", domainauth.RoleAdmin))
	m := newManager(provider, store)

	var seen []Snapshot
	unsub := m.Subscribe(func(s Snapshot) { seen = append(seen, s) })
	defer unsub()

	identity, err := m.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "mock-admin", identity.UID)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)

	snap := m.Current()
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, identity.Email, snap.Identity.Email)

	// Immediate snapshot on subscribe, then the login transition.
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.NotNil(t, seen[1].Identity)
}

func TestSessionManager_Login_NoProfile_BootstrapOff(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	m := newManager(provider, store)

	_, err := m.Login(context.Background(), "ghost@example.com", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.IsProfileMissing(err))
	assert.EqualError(t, err, "User data not found")
}

func TestSessionManager_Login_NoProfile_BootstrapOn(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	m := NewSessionManager(SessionManagerOptions{
		Provider:       provider,
		Profiles:       store,
		BootstrapAdmin: true,
	})

	identity, err := m.Login(context.Background(), "first@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)
	assert.Equal(t, "first@example.com", identity.Email)
	require.NotNil(t, m.Current().Identity)
}

func TestSessionManager_Login_DeactivatedAccount(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	p := activeProfile("mock-gone", "gone@example.com", domainauth.RoleAdmin)
	p.Status = domainauth.StatusInactive
	store.Seed(p)
	m := newManager(provider, store)

	_, err := m.Login(context.Background(), "gone@example.com", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.IsAccountDeactivated(err))
	assert.EqualError(t, err, "This account has been deactivated")

	// The provider session is torn down and local state cleared.
	assert.Equal(t, 1, provider.SignOutCalls)
	snap := m.Current()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Loading)
}

func TestSessionManager_Login_SignInFailurePassesThrough(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	provider.SignInFunc = func(context.Context, string, string) (domainauth.Credential, error) {
		return domainauth.Credential{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, "Incorrect password")
	}
	m := newManager(provider, mockauth.NewMemoryProfileStore())

	_, err := m.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredentials(err))
	assert.True(t, m.Current().Loading, "a failed login must not settle the loading state")
}

func TestSessionManager_Register_ForcesAdminRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockauth.NewMockCredentialProvider()
	store := mocks.NewMockProfileStore(ctrl)
	// Even when the stored record comes back with another role, a console
	// registration is an administrator.
	store.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).
		Return(activeProfile("uid-new", "new@example.com", domainauth.RoleAdmin), nil)
	store.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(activeProfile("uid-new", "new@example.com", domainauth.RoleStudent), nil)

	m := NewSessionManager(SessionManagerOptions{Provider: provider, Profiles: store})
	identity, err := m.Register(context.Background(), "new@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)
	require.NotNil(t, m.Current().Identity)
	assert.Equal(t, domainauth.RoleAdmin, m.Current().Identity.Role)
}

func TestSessionManager_Register_ProvisionFailure(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.CreateAdminErr = errors.New("write denied")
	m := newManager(provider, store)

	_, err := m.Register(context.Background(), "new@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
	assert.Nil(t, m.Current().Identity)
}

func TestSessionManager_Logout_ClearsStateEvenOnProviderFailure(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.Seed(activeProfile("mock-admin", "admin@example.com", domainauth.RoleAdmin))
	m := newManager(provider, store)

	_, err := m.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)

	provider.SignOutFunc = func(context.Context) error { return errors.New("network down") }
	err = m.Logout(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "Failed to sign out: network down")

	snap := m.Current()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Loading)
}

func TestSessionManager_StaleResolutionDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockauth.NewMockCredentialProvider()
	store := mocks.NewMockProfileStore(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	store.EXPECT().GetByID(gomock.Any(), "uid-slow").DoAndReturn(
		func(context.Context, string) (domainauth.Profile, error) {
			close(started)
			<-release
			return activeProfile("uid-slow", "slow@example.com", domainauth.RoleAdmin), nil
		})

	m := NewSessionManager(SessionManagerOptions{Provider: provider, Profiles: store})
	m.Start(context.Background())
	defer m.Close()

	// A session event kicks off a resolution that stalls in the store.
	provider.SetSession(&domainauth.Credential{UID: "uid-slow", Email: "slow@example.com"})
	<-started

	// A deliberate logout lands while that resolution is still in flight.
	require.NoError(t, m.Logout(context.Background()))
	close(release)

	// The stalled result must never overwrite the logout.
	time.Sleep(50 * time.Millisecond)
	snap := m.Current()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Loading)
}

func TestSessionManager_SubscribeUnsubscribe(t *testing.T) {
	provider := mockauth.NewMockCredentialProvider()
	store := mockauth.NewMemoryProfileStore()
	store.Seed(activeProfile("mock-admin", "admin@example.com", domainauth.RoleAdmin))
	m := newManager(provider, store)

	calls := 0
	unsub := m.Subscribe(func(Snapshot) { calls++ })
	require.Equal(t, 1, calls, "watchers receive the current snapshot immediately")

	unsub()
	_, err := m.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "unsubscribed watchers see no further transitions")
}
