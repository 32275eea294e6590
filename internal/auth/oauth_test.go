package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/pkg/okta"
)

type tokenEndpoint struct {
	server   *httptest.Server
	requests []map[string]string
	status   int
	body     map[string]interface{}
}

func newTokenEndpoint(t *testing.T) *tokenEndpoint {
	t.Helper()

	endpoint := &tokenEndpoint{
		status: http.StatusOK,
		body: map[string]interface{}{
			"access_token": "tok-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"scope":        "okta.users.read",
		},
	}

	endpoint.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		form := make(map[string]string)
		for key := range r.PostForm {
			form[key] = r.PostForm.Get(key)
		}

		endpoint.requests = append(endpoint.requests, form)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(endpoint.status)
		_ = json.NewEncoder(w).Encode(endpoint.body)
	}))
	t.Cleanup(endpoint.server.Close)

	return endpoint
}

func newTestManager(t *testing.T, endpoint *tokenEndpoint) *OAuth2TokenManager {
	t.Helper()

	key, _ := generateTestKey(t)

	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:   endpoint.server.URL + constants.TokenEndpointPath,
		ClientID:   "client-123",
		PrivateKey: key,
		Scopes:     []string{"okta.users.read", "okta.groups.read"},
	})
}

func TestOAuth2TokenManager_GetToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.Len(t, endpoint.requests, 1)
	form := endpoint.requests[0]
	assert.Equal(t, constants.GrantTypeClientCredentials, form["grant_type"])
	assert.Equal(t, constants.ClientAssertionType, form["client_assertion_type"])
	assert.Equal(t, "okta.users.read okta.groups.read", form["scope"])
	assert.NotEmpty(t, form["client_assertion"])
}

func TestOAuth2TokenManager_ClientAssertionClaims(t *testing.T) {
	endpoint := newTokenEndpoint(t)

	key, _ := generateTestKey(t)
	tokenURL := endpoint.server.URL + constants.TokenEndpointPath

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:   tokenURL,
		ClientID:   "client-123",
		PrivateKey: key,
		Scopes:     []string{"okta.users.read"},
	})

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	require.Len(t, endpoint.requests, 1)
	assertion := endpoint.requests[0]["client_assertion"]

	claims := jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(assertion, &claims, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "client-123", claims.Issuer)
	assert.Equal(t, "client-123", claims.Subject)
	assert.Equal(t, jwt.ClaimStrings{tokenURL}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(constants.ClientAssertionLifetime), claims.ExpiresAt.Time, time.Second)
}

func TestOAuth2TokenManager_CachesToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	for i := 0; i < 3; i++ {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	}

	// Only the first call hits the endpoint.
	assert.Len(t, endpoint.requests, 1)
}

func TestOAuth2TokenManager_RefreshesStaleToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	// Install a token inside the expiration buffer.
	manager.SetToken("stale-token", time.Now().Add(30*time.Second))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Len(t, endpoint.requests, 1)
}

func TestOAuth2TokenManager_SetToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	manager.SetToken("manual-token", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual-token", token)
	assert.Empty(t, endpoint.requests)
}

func TestOAuth2TokenManager_RefreshToken(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	manager.SetToken("old-token", time.Now().Add(time.Hour))

	err := manager.RefreshToken(context.Background())
	require.NoError(t, err)

	// A forced refresh replaces a still-valid token.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Len(t, endpoint.requests, 1)
}

func TestOAuth2TokenManager_TokenRequestFailure(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	endpoint.status = http.StatusUnauthorized
	endpoint.body = map[string]interface{}{
		"error":             "invalid_client",
		"error_description": "The client_assertion signature is invalid.",
	}

	manager := newTestManager(t, endpoint)

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, okta.ErrTokenRequestFailed)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestOAuth2TokenManager_IncompleteTokenResponse(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing access_token",
			body: map[string]interface{}{"token_type": "Bearer", "expires_in": 3600},
		},
		{
			name: "missing expires_in",
			body: map[string]interface{}{"access_token": "tok-1", "token_type": "Bearer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := newTokenEndpoint(t)
			endpoint.body = tt.body

			manager := newTestManager(t, endpoint)

			_, err := manager.GetToken(context.Background())
			assert.ErrorIs(t, err, okta.ErrTokenRequestFailed)
		})
	}
}

func TestOAuth2TokenManager_ContextCancellation(t *testing.T) {
	endpoint := newTokenEndpoint(t)
	manager := newTestManager(t, endpoint)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manager.GetToken(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
