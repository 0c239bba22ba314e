package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/internlink/console/config"
	"github.com/internlink/console/internal/adapters/devauth"
	"github.com/internlink/console/internal/adapters/oidcauth"
	"github.com/internlink/console/internal/adapters/redisprofile"
	"github.com/internlink/console/internal/adapters/s3store"
	"github.com/internlink/console/internal/api"
	"github.com/internlink/console/internal/ports"
)

// BuildCredentialProvider picks the credential provider adapter based on the
// configured auth mode.
func BuildCredentialProvider(cfg config.AuthConfig) (ports.CredentialProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		return devauth.NewProvider(devauth.Config{
			Accounts: []devauth.Account{
				{Email: cfg.DevAuth.Email, Password: cfg.DevAuth.Password},
			},
			SigningKey: []byte(cfg.DevAuth.SigningKey),
			TokenTTL:   cfg.DevAuth.TokenTTL,
		})
	case config.AuthModeOIDC:
		return oidcauth.NewProvider(oidcauth.ProviderConfig{
			ClientID:        cfg.OIDC.ClientID,
			ClientSecret:    cfg.OIDC.ClientSecret,
			Scope:           cfg.OIDC.Scope,
			DiscoveryURL:    cfg.OIDC.DiscoveryURL,
			RegistrationURL: cfg.OIDC.RegistrationURL,
		})
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}

// BuildProfileStore connects the Redis-backed profile store.
func BuildProfileStore(cfg config.ProfileStoreConfig) ports.ProfileStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return redisprofile.NewStore(client)
}

// BuildAPIClient constructs the data access client over the given token
// source.
func BuildAPIClient(cfg config.APIConfig, tokens api.TokenSource) (*api.Client, error) {
	return api.New(api.Config{
		BaseURL:     cfg.BaseURL,
		MessageExpr: cfg.MessageExpr,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
	}, tokens)
}

// BuildFileStore connects the S3-backed file store.
func BuildFileStore(ctx context.Context, cfg config.StorageConfig) (ports.FileStore, error) {
	return s3store.NewStore(ctx, s3store.Config{
		Region:    cfg.Region,
		Bucket:    cfg.Bucket,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
		UsePath:   cfg.UsePathStyle,
	})
}
