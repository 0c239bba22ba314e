package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/internlink/console/internal/errors"
	"github.com/internlink/console/internal/mocks"
	"github.com/internlink/console/internal/ports"
)

// tokenFunc adapts a function to the TokenSource interface.
type tokenFunc func(ctx context.Context) (string, error)

func (f tokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

func staticToken(token string) TokenSource {
	return tokenFunc(func(context.Context) (string, error) { return token, nil })
}

func noSession() TokenSource {
	return tokenFunc(func(context.Context) (string, error) { return "", ports.ErrNoSession })
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL}, tokens)
	require.NoError(t, err)
	return client
}

func TestClient_AttachesBearerWhenSignedIn(t *testing.T) {
	var gotAuth, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}, staticToken("tok-123"))

	require.NoError(t, client.Get(context.Background(), "/students", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_OmitsBearerWhenSignedOut(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, noSession())

	require.NoError(t, client.Get(context.Background(), "/students", nil))
	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader, "no Authorization header at all when signed out")
}

func TestClient_OmitsBearerOnEmptyToken(t *testing.T) {
	var sawHeader bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, staticToken(""))

	require.NoError(t, client.Get(context.Background(), "/students", nil))
	assert.False(t, sawHeader)
}

func TestClient_TokenFailureAbortsRequest(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	}, tokenFunc(func(context.Context) (string, error) {
		return "", errors.New("provider unreachable")
	}))

	err := client.Get(context.Background(), "/students", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
	assert.Zero(t, requests, "the request must not go out without a token verdict")
}

func TestClient_FetchesFreshTokenPerCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockCredentialProvider(ctrl)
	gomock.InOrder(
		provider.EXPECT().Token(gomock.Any()).Return("tok-1", nil),
		provider.EXPECT().Token(gomock.Any()).Return("tok-2", nil),
	)

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL}, provider)
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/a", nil))
	require.NoError(t, client.Get(context.Background(), "/b", nil))
	assert.Equal(t, []string{"Bearer tok-1", "Bearer tok-2"}, seen)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		messageExpr string
		wantMessage string
	}{
		{
			name:        "message field",
			status:      http.StatusNotFound,
			body:        `{"message":"Company not found"}`,
			wantMessage: "Company not found",
		},
		{
			name:        "missing field falls back",
			status:      http.StatusBadRequest,
			body:        `{"code":"validation"}`,
			wantMessage: "Request failed",
		},
		{
			name:        "non-JSON body falls back",
			status:      http.StatusBadGateway,
			body:        `<html>Bad Gateway</html>`,
			wantMessage: "Request failed",
		},
		{
			name:        "empty body falls back",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantMessage: "Request failed",
		},
		{
			name:        "non-string message falls back",
			status:      http.StatusBadRequest,
			body:        `{"message":{"nested":true}}`,
			wantMessage: "Request failed",
		},
		{
			name:        "nested expression",
			status:      http.StatusConflict,
			body:        `{"error":{"message":"Duplicate entry"}}`,
			messageExpr: "error.message",
			wantMessage: "Duplicate entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client, err := New(Config{BaseURL: srv.URL, MessageExpr: tt.messageExpr}, noSession())
			require.NoError(t, err)

			err = client.Get(context.Background(), "/x", nil)
			require.Error(t, err)
			require.True(t, apperrors.IsHTTP(err))
			assert.Equal(t, tt.status, apperrors.GetStatus(err))
			assert.EqualError(t, err, tt.wantMessage)
		})
	}
}

func TestClient_DecodesSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"c-1","name":"Acme"}`))
	}, noSession())

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(context.Background(), "/companies/c-1", &out))
	assert.Equal(t, "Acme", out.Name)
}

func TestClient_ToleratesEmptySuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, noSession())

	var out map[string]any
	require.NoError(t, client.Delete(context.Background(), "/companies/c-1", &out))
	assert.Nil(t, out)
}

func TestClient_SendsJSONBody(t *testing.T) {
	var gotBody string
	var gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	}, noSession())

	body := map[string]string{"name": "Acme"}
	require.NoError(t, client.Post(context.Background(), "/companies", body, nil))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"name":"Acme"}`, gotBody)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, noSession())
	require.Error(t, err)

	_, err = New(Config{BaseURL: "http://localhost"}, nil)
	require.Error(t, err)

	_, err = New(Config{BaseURL: "http://localhost", MessageExpr: "not a [valid expr"}, noSession())
	require.Error(t, err)
}
