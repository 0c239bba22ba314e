package redisprofile

// Package redisprofile provides a Redis-backed ProfileStore. Profile
// documents are stored as JSON under both an id key and an email key so
// lookups work for records provisioned under either key scheme.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/internlink/console/internal/domain/auth"
	"github.com/internlink/console/internal/ports"
)

const (
	idPrefix    = "profile:id:"
	emailPrefix = "profile:email:"
)

// Store is a Redis-based profile store.
type Store struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewStore creates a new Redis-based profile store.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client, now: time.Now}
}

func (s *Store) GetByID(ctx context.Context, uid string) (domainauth.Profile, error) {
	if uid == "" {
		return domainauth.Profile{}, ports.ErrProfileNotFound
	}
	return s.get(ctx, idPrefix+uid)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (domainauth.Profile, error) {
	if email == "" {
		return domainauth.Profile{}, ports.ErrProfileNotFound
	}
	return s.get(ctx, emailPrefix+email)
}

func (s *Store) get(ctx context.Context, key string) (domainauth.Profile, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Profile{}, ports.ErrProfileNotFound
		}
		return domainauth.Profile{}, fmt.Errorf("redis get: %w", err)
	}

	var raw domainauth.RawProfile
	if unmarshalErr := json.Unmarshal([]byte(data), &raw); unmarshalErr != nil {
		return domainauth.Profile{}, fmt.Errorf("unmarshal profile: %w", unmarshalErr)
	}

	// Validate at the store boundary so malformed documents never reach the
	// resolution layer.
	profile, parseErr := domainauth.ParseProfile(raw, s.now())
	if parseErr != nil {
		return domainauth.Profile{}, fmt.Errorf("parse profile: %w", parseErr)
	}
	return profile, nil
}

// CreateAdmin provisions an administrator profile for a freshly created
// account, written under both key schemes.
func (s *Store) CreateAdmin(ctx context.Context, cred domainauth.Credential) (domainauth.Profile, error) {
	if cred.Email == "" {
		return domainauth.Profile{}, errors.New("credential email cannot be empty")
	}

	createdAt := s.now().UTC()
	raw := domainauth.RawProfile{
		UID:       cred.UID,
		Email:     cred.Email,
		Role:      string(domainauth.RoleAdmin),
		Status:    string(domainauth.StatusActive),
		CreatedAt: &createdAt,
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return domainauth.Profile{}, fmt.Errorf("marshal profile: %w", err)
	}

	pipe := s.client.TxPipeline()
	if cred.UID != "" {
		pipe.Set(ctx, idPrefix+cred.UID, data, 0)
	}
	pipe.Set(ctx, emailPrefix+cred.Email, data, 0)
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		return domainauth.Profile{}, fmt.Errorf("write profile: %w", execErr)
	}

	return domainauth.ParseProfile(raw, createdAt)
}
