package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/pkg/okta"
)

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	// TokenURL is the org token endpoint, also used as the client assertion
	// audience.
	TokenURL string
	// ClientID is the service app client ID (assertion issuer and subject).
	ClientID string
	// PrivateKey signs the client assertion with RS256.
	PrivateKey *rsa.PrivateKey
	// Scopes are space-joined into the token request.
	Scopes []string
	// HTTPClient overrides the transport used for token requests.
	HTTPClient *http.Client
	// Logger receives the refresh observability line.
	Logger okta.Logger
}

// OAuth2TokenManager exchanges a signed private-key JWT assertion for bearer
// access tokens via the client_credentials grant, caching the result until it
// enters the expiration buffer.
//
// Two callers racing on a stale token may each trigger a refresh; both
// refreshes produce valid tokens and the store swap is atomic, so this is an
// accepted inefficiency rather than a correctness problem.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
}

// NewOAuth2TokenManager creates a token manager with no cached token; the
// first GetToken call performs a refresh.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.TokenRequestTimeout}
	}

	return &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}
}

// GetToken returns the cached access token, refreshing it first when the
// cache is empty or within the expiration buffer.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken builds a fresh client assertion, exchanges it at the token
// endpoint, and replaces the cached token.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	assertion, err := m.buildClientAssertion()
	if err != nil {
		return fmt.Errorf("signing client assertion: %w", err)
	}

	tokenResp, err := m.requestToken(ctx, assertion)
	if err != nil {
		return err
	}

	m.store.Set(&Token{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		Scope:       tokenResp.Scope,
		ExpiresIn:   tokenResp.ExpiresIn,
		ExpiresAt:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	})

	if m.config.Logger != nil {
		m.config.Logger.Debug("access token refreshed", map[string]interface{}{
			"scopes":     tokenResp.Scope,
			"expires_in": tokenResp.ExpiresIn,
		})
	}

	return nil
}

// SetToken manually installs an access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// buildClientAssertion signs the RFC 7523 JWT: issuer and subject are the
// client ID, the audience is the token endpoint, and every assertion carries
// a fresh jti to prevent replay.
func (m *OAuth2TokenManager) buildClientAssertion() (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    m.config.ClientID,
		Subject:   m.config.ClientID,
		Audience:  jwt.ClaimStrings{m.config.TokenURL},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(constants.ClientAssertionLifetime)),
		ID:        uuid.NewString(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.config.PrivateKey)
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context, assertion string) (*okta.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", constants.GrantTypeClientCredentials)
	form.Set("client_assertion_type", constants.ClientAssertionType)
	form.Set("client_assertion", assertion)
	form.Set("scope", strings.Join(m.config.Scopes, " "))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w with status %d: %s", okta.ErrTokenRequestFailed, resp.StatusCode, string(body))
	}

	var tokenResp okta.TokenResponse

	err = json.Unmarshal(body, &tokenResp)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if tokenResp.AccessToken == "" || tokenResp.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: response missing access_token or expires_in", okta.ErrTokenRequestFailed)
	}

	return &tokenResp, nil
}
