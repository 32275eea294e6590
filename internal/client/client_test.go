package client

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oktakit/okta/pkg/okta"
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		config   *okta.Config
		expected error
	}{
		{
			name:     "nil config",
			config:   nil,
			expected: okta.ErrConfigRequired,
		},
		{
			name:     "missing org URL",
			config:   &okta.Config{APIToken: "00abc"},
			expected: okta.ErrOrgURLRequired,
		},
		{
			name:     "no credentials",
			config:   &okta.Config{OrgURL: "https://example.okta.com"},
			expected: okta.ErrAuthenticationRequired,
		},
		{
			name: "oauth without scopes",
			config: &okta.Config{
				OrgURL:     "https://example.okta.com",
				ClientID:   "client-123",
				PrivateKey: testPrivateKeyPEM(t),
			},
			expected: okta.ErrEmptyScopeSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestNew_InvalidPrivateKey(t *testing.T) {
	_, err := New(&okta.Config{
		OrgURL:     "https://example.okta.com",
		ClientID:   "client-123",
		PrivateKey: "not a key",
		Scopes:     []string{"okta.users.read"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving private key")
}

func TestClient_APITokenMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		assert.Equal(t, "SSWS 00abc", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("X-Okta-Governance"))

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	apiClient, err := New(&okta.Config{OrgURL: server.URL, APIToken: "00abc"})
	require.NoError(t, err)

	resp, err := apiClient.Get(context.Background(), "/users", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_OAuthMode(t *testing.T) {
	var tokenRequests int

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		tokenRequests++

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "okta.users.read okta.groups.read", r.PostForm.Get("scope"))
		assert.NotEmpty(t, r.PostForm.Get("client_assertion"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "oauth-tok",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"scope":        "okta.users.read okta.groups.read",
		})
	})
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer oauth-tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[{"id":"u1"}]`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	apiClient, err := New(&okta.Config{
		OrgURL:           server.URL,
		ClientID:         "client-123",
		PrivateKey:       testPrivateKeyPEM(t),
		Scopes:           []string{"okta.users.read"},
		AdditionalScopes: []string{"okta.groups.read", "okta.users.read"},
	})
	require.NoError(t, err)

	// Two requests share one token fetch.
	for i := 0; i < 2; i++ {
		resp, err := apiClient.Get(context.Background(), "/users", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 1, tokenRequests)
}

func TestClient_OAuthTakesPrecedenceOverAPIToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "oauth-tok",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer oauth-tok", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	apiClient, err := New(&okta.Config{
		OrgURL:     server.URL,
		ClientID:   "client-123",
		PrivateKey: testPrivateKeyPEM(t),
		APIToken:   "00abc",
		Scopes:     []string{"okta.users.read"},
	})
	require.NoError(t, err)

	_, err = apiClient.Get(context.Background(), "/users", nil)
	require.NoError(t, err)
}

func TestClient_GovernanceMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/governance/labels", r.URL.Path)
		assert.Equal(t, "enabled", r.Header.Get("X-Okta-Governance"))
		assert.Equal(t, "SSWS 00abc", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	apiClient, err := NewGovernance(&okta.Config{OrgURL: server.URL, APIToken: "00abc"})
	require.NoError(t, err)

	_, err = apiClient.Get(context.Background(), "/labels", nil)
	require.NoError(t, err)
}

func TestClient_CursorPathBypassesBasePath(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	apiClient, err := New(&okta.Config{OrgURL: server.URL, APIToken: "00abc"})
	require.NoError(t, err)

	_, err = apiClient.Get(context.Background(), "/users", nil)
	require.NoError(t, err)

	// A cursor URL already carries the full base path and must not be
	// prefixed again.
	_, err = apiClient.Get(context.Background(), "/api/v1/users?after=u2", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/v1/users", "/api/v1/users"}, paths)
}

func TestClient_PathWithoutLeadingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	apiClient, err := New(&okta.Config{OrgURL: server.URL, APIToken: "00abc"})
	require.NoError(t, err)

	_, err = apiClient.Get(context.Background(), "users", nil)
	require.NoError(t, err)
}

func TestClient_WriteMethods(t *testing.T) {
	var methods []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.Equal(t, "/api/v1/users/u1", r.URL.Path)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	apiClient, err := New(&okta.Config{OrgURL: server.URL, APIToken: "00abc"})
	require.NoError(t, err)

	ctx := context.Background()
	body := map[string]string{"status": "ACTIVE"}

	_, err = apiClient.Post(ctx, "/users/u1", body)
	require.NoError(t, err)
	_, err = apiClient.Put(ctx, "/users/u1", body)
	require.NoError(t, err)
	_, err = apiClient.Patch(ctx, "/users/u1", body)
	require.NoError(t, err)
	_, err = apiClient.Delete(ctx, "/users/u1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
	}, methods)
}

func TestClient_AccessToken(t *testing.T) {
	apiClient, err := New(&okta.Config{OrgURL: "https://example.okta.com", APIToken: "00abc"})
	require.NoError(t, err)

	token, err := apiClient.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00abc", token)
}

func TestMergeScopes(t *testing.T) {
	tests := []struct {
		name       string
		scopes     []string
		additional []string
		expected   []string
	}{
		{
			name:     "nil inputs",
			expected: nil,
		},
		{
			name:     "scopes only",
			scopes:   []string{"okta.users.read"},
			expected: []string{"okta.users.read"},
		},
		{
			name:       "union keeps insertion order",
			scopes:     []string{"okta.users.read", "okta.groups.read"},
			additional: []string{"okta.apps.read"},
			expected:   []string{"okta.users.read", "okta.groups.read", "okta.apps.read"},
		},
		{
			name:       "duplicates removed",
			scopes:     []string{"okta.users.read"},
			additional: []string{"okta.users.read", "okta.groups.read"},
			expected:   []string{"okta.users.read", "okta.groups.read"},
		},
		{
			name:     "empty strings dropped",
			scopes:   []string{"", "okta.users.read", ""},
			expected: []string{"okta.users.read"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeScopes(tt.scopes, tt.additional))
		})
	}
}

func TestStaticTokenManager(t *testing.T) {
	manager := &staticTokenManager{token: "00abc"}

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00abc", token)

	err = manager.RefreshToken(context.Background())
	assert.ErrorIs(t, err, okta.ErrStaticTokenCannotRefresh)

	manager.SetToken("rotated", time.Now().Add(time.Hour))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)
}
