package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_MessageAndCause(t *testing.T) {
	plain := New(ErrCodeInvalidCredentials, "Incorrect password")
	assert.Equal(t, "Incorrect password", plain.Error())

	cause := stderrors.New("boom")
	wrapped := Wrap(cause, ErrCodeInternal, "Failed to sign out")
	assert.Equal(t, "Failed to sign out: boom", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, cause))
}

func TestWrap_NilErrorReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestPredicates_MatchThroughWrapping(t *testing.T) {
	err := New(ErrCodeAccountDeactivated, "This account has been deactivated")
	outer := fmt.Errorf("login: %w", err)

	assert.True(t, IsAccountDeactivated(outer))
	assert.False(t, IsInvalidCredentials(outer))
	assert.Equal(t, ErrCodeAccountDeactivated, GetCode(outer))
}

func TestHTTP_CarriesStatus(t *testing.T) {
	err := HTTP(404, "Company not found")
	require.True(t, IsHTTP(err))
	assert.Equal(t, 404, GetStatus(err))
	assert.Equal(t, "Company not found", err.Message)
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
	assert.Equal(t, 0, GetStatus(stderrors.New("plain")))
}
