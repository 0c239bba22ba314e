package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC uses the OIDC identity provider for authentication.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC identity provider configuration.
type OIDCConfig struct {
	ClientID        string `env:"CLIENT_ID"        envDefault:"console"`
	ClientSecret    string `env:"CLIENT_SECRET"    envDefault:"console"`
	Scope           string `env:"SCOPE"            envDefault:"openid profile email offline_access"`
	DiscoveryURL    string `env:"DISCOVERY_URL"`
	RegistrationURL string `env:"REGISTRATION_URL"`
}

// DevAuthConfig controls mock/dev authentication accounts.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email      string        `env:"EMAIL"       envDefault:"dev@example.com"`
	Password   string        `env:"PASSWORD"    envDefault:"devpass"`
	SigningKey string        `env:"SIGNING_KEY" envDefault:"dev-signing-key"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"1h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which credential provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// BootstrapAdmin grants a default administrator identity when login
	// finds no profile record. Deliberate first-run escape hatch for
	// environments where profile provisioning lags credential creation;
	// leave off everywhere else.
	BootstrapAdmin bool `env:"AUTH_BOOTSTRAP_ADMIN" envDefault:"false"`
}
