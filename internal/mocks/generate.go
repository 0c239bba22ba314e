// Package mocks provides mock implementations for testing the console's
// auth and storage boundaries.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockProfileStore(ctrl)
//	store.EXPECT().GetByID(gomock.Any(), "uid-1").Return(profile, nil)
package mocks

// Generate mock for CredentialProvider interface from internal/ports.
// This creates MockCredentialProvider with methods:
// SignIn, CreateAccount, SignOut, Token, OnSessionChange
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=credential_provider_mock.go github.com/internlink/console/internal/ports CredentialProvider

// Generate mock for ProfileStore interface from internal/ports.
// This creates MockProfileStore with methods:
// GetByID, GetByEmail, CreateAdmin
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=profile_store_mock.go github.com/internlink/console/internal/ports ProfileStore

// Generate mock for FileStore interface from internal/ports.
// This creates MockFileStore with methods:
// Upload, DownloadURL
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=file_store_mock.go github.com/internlink/console/internal/ports FileStore
