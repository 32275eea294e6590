package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/oktakit/okta/internal/auth"
	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/internal/http"
	"github.com/oktakit/okta/pkg/okta"
)

// Client implements the okta.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	basePath     string
}

// New creates a standard API client rooted at {orgURL}/api/v1.
func New(config *okta.Config) (*Client, error) {
	return newClient(config, constants.APIBasePath, nil)
}

// NewGovernance creates a governance API client rooted at
// {orgURL}/api/v1/governance. Every request additionally carries the fixed
// governance header.
func NewGovernance(config *okta.Config) (*Client, error) {
	governanceHeaders := map[string]string{
		constants.GovernanceHeaderName: constants.GovernanceHeaderValue,
	}

	return newClient(config, constants.GovernanceBasePath, governanceHeaders)
}

func newClient(config *okta.Config, basePath string, extraHeaders map[string]string) (*Client, error) {
	if config == nil {
		return nil, okta.ErrConfigRequired
	}

	if config.OrgURL == "" {
		return nil, okta.ErrOrgURLRequired
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	httpOpts := createHTTPClientOptions(config, tokenManager, extraHeaders)
	httpClient := http.NewClient(config.OrgURL, tokenManager, httpOpts...)

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		basePath:     basePath,
	}, nil
}

// createTokenManager selects the authentication mode. OAuth (client ID plus
// private key) takes precedence over a static API token; neither configured
// is a construction failure.
func createTokenManager(config *okta.Config) (auth.TokenManager, error) {
	if config.ClientID != "" && config.PrivateKey != "" {
		return createOAuth2TokenManager(config)
	}

	if config.APIToken != "" {
		return &staticTokenManager{token: config.APIToken}, nil
	}

	return nil, okta.ErrAuthenticationRequired
}

func createOAuth2TokenManager(config *okta.Config) (auth.TokenManager, error) {
	scopes := mergeScopes(config.Scopes, config.AdditionalScopes)
	if len(scopes) == 0 {
		return nil, okta.ErrEmptyScopeSet
	}

	key, err := auth.ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("resolving private key: %w", err)
	}

	return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:   strings.TrimSuffix(config.OrgURL, "/") + constants.TokenEndpointPath,
		ClientID:   config.ClientID,
		PrivateKey: key,
		Scopes:     scopes,
		Logger:     config.Logger,
	}), nil
}

// mergeScopes unions the caller-declared scopes with the environment-level
// addendum, keeping insertion order and dropping duplicates.
func mergeScopes(scopes, additional []string) []string {
	seen := make(map[string]bool)

	var merged []string

	for _, scope := range append(append([]string{}, scopes...), additional...) {
		if scope == "" || seen[scope] {
			continue
		}

		seen[scope] = true
		merged = append(merged, scope)
	}

	return merged
}

func createHTTPClientOptions(config *okta.Config, tokenManager auth.TokenManager, extraHeaders map[string]string) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryMax(config.RetryMax))
	}

	if _, ok := tokenManager.(*staticTokenManager); ok {
		httpOpts = append(httpOpts, http.WithAuthScheme(constants.AuthSchemeSSWS))
	}

	if len(extraHeaders) > 0 {
		httpOpts = append(httpOpts, http.WithRequestInterceptor(okta.HeaderInterceptor(extraHeaders)))
	}

	return httpOpts
}

// apiPath joins a relative path onto the client's base path. Paths that
// already start with "/api/" (pagination cursor URLs) are used verbatim.
func (c *Client) apiPath(path string) string {
	if strings.HasPrefix(path, "/api/") {
		return path
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.basePath + path
}

// Get implements okta.Client.Get.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*okta.Response, error) {
	return c.httpClient.Get(ctx, c.apiPath(path), query)
}

// Post implements okta.Client.Post.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.httpClient.Post(ctx, c.apiPath(path), body)
}

// Put implements okta.Client.Put.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.httpClient.Put(ctx, c.apiPath(path), body)
}

// Patch implements okta.Client.Patch.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*okta.Response, error) {
	return c.httpClient.Patch(ctx, c.apiPath(path), body)
}

// Delete implements okta.Client.Delete.
func (c *Client) Delete(ctx context.Context, path string) (*okta.Response, error) {
	return c.httpClient.Delete(ctx, c.apiPath(path))
}

// AccessToken implements okta.Client.AccessToken.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// staticTokenManager provides a static API token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return okta.ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}
