package redisprofile

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/internlink/console/internal/domain/auth"
	"github.com/internlink/console/internal/ports"
	"github.com/internlink/console/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client)
	store.now = testutil.FixedTimeFunc(testutil.TestTime())
	return store
}

func seedRaw(t *testing.T, store *Store, key string, raw domainauth.RawProfile) {
	t.Helper()
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, store.client.Set(context.Background(), key, data, 0).Err())
}

func TestStore_GetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	seedRaw(t, store, idPrefix+"uid-1", domainauth.RawProfile{
		UID:       "uid-1",
		Email:     "admin@example.com",
		Role:      "admin",
		Status:    "active",
		CreatedAt: &created,
	})

	p, err := store.GetByID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.UID)
	assert.Equal(t, domainauth.RoleAdmin, p.Role)
	assert.Equal(t, created, p.CreatedAt)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrProfileNotFound)

	_, err = store.GetByID(ctx, "")
	assert.ErrorIs(t, err, ports.ErrProfileNotFound)
}

func TestStore_GetByEmail_LegacyRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Legacy records have no UID and no explicit status or timestamp.
	seedRaw(t, store, emailPrefix+"legacy@example.com", domainauth.RawProfile{
		Email: "legacy@example.com",
		Role:  "company",
	})

	p, err := store.GetByEmail(ctx, "legacy@example.com")
	require.NoError(t, err)
	assert.Empty(t, p.UID)
	assert.Equal(t, domainauth.RoleCompany, p.Role)
	assert.Equal(t, domainauth.StatusActive, p.Status)
	assert.Equal(t, testutil.TestTime(), p.CreatedAt)
}

func TestStore_Get_RejectsMalformedDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.client.Set(ctx, idPrefix+"bad-json", "{not json", 0).Err())
	_, err := store.GetByID(ctx, "bad-json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrProfileNotFound)

	seedRaw(t, store, idPrefix+"bad-role", domainauth.RawProfile{
		UID:   "bad-role",
		Email: "x@example.com",
		Role:  "superuser",
	})
	_, err = store.GetByID(ctx, "bad-role")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrProfileNotFound)
}

func TestStore_CreateAdmin_WritesBothKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cred := domainauth.Credential{UID: "uid-new", Email: "new@example.com"}
	created, err := store.CreateAdmin(ctx, cred)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, created.Role)
	assert.Equal(t, domainauth.StatusActive, created.Status)

	byID, err := store.GetByID(ctx, "uid-new")
	require.NoError(t, err)
	byEmail, err := store.GetByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, byID, byEmail)
}

func TestStore_CreateAdmin_NoUID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateAdmin(ctx, domainauth.Credential{Email: "emailonly@example.com"})
	require.NoError(t, err)
	assert.Empty(t, created.UID)

	_, err = store.GetByEmail(ctx, "emailonly@example.com")
	require.NoError(t, err)
}

func TestStore_CreateAdmin_RequiresEmail(t *testing.T) {
	store := newTestStore(t)
	_, err := store.CreateAdmin(context.Background(), domainauth.Credential{UID: "uid-1"})
	require.Error(t, err)
}
