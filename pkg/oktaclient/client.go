// Package oktaclient provides the main entry point for creating Okta API clients
package oktaclient

import (
	"fmt"
	"strings"

	"github.com/oktakit/okta/internal/client"
	"github.com/oktakit/okta/pkg/okta"
)

// New creates a new Okta API client rooted at the org's /api/v1 base path.
func New(config *okta.Config) (okta.Client, error) {
	if config == nil {
		return nil, okta.ErrConfigRequired
	}

	orgURL, err := normalizeOrgURL(config.OrgURL)
	if err != nil {
		return nil, err
	}

	config.OrgURL = orgURL

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewGovernance creates a client rooted at the org's /api/v1/governance base
// path. Every request carries the governance opt-in header in addition to the
// standard headers.
func NewGovernance(config *okta.Config) (okta.Client, error) {
	if config == nil {
		return nil, okta.ErrConfigRequired
	}

	orgURL, err := normalizeOrgURL(config.OrgURL)
	if err != nil {
		return nil, err
	}

	config.OrgURL = orgURL

	apiClient, err := client.NewGovernance(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new governance client: %w", err)
	}

	return apiClient, nil
}

// normalizeOrgURL validates and canonicalizes the org URL: trailing slashes
// are trimmed, a missing scheme defaults to https, the documentation
// placeholder is rejected, and admin-console hostnames are rejected because
// API calls against them fail in confusing ways.
func normalizeOrgURL(orgURL string) (string, error) {
	if orgURL == "" {
		return "", okta.ErrOrgURLRequired
	}

	if strings.Contains(orgURL, "{yourOktaDomain}") {
		return "", okta.ErrOrgURLPlaceholder
	}

	normalized := strings.TrimSuffix(orgURL, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	if strings.Contains(normalized, "-admin.") {
		return "", okta.ErrOrgURLAdminDomain
	}

	return normalized, nil
}

// NewWithAPIToken creates a new client using a static SSWS API token.
func NewWithAPIToken(orgURL, apiToken string) (okta.Client, error) {
	return New(&okta.Config{
		OrgURL:   orgURL,
		APIToken: apiToken,
	})
}

// NewWithPrivateKey creates a new client using the OAuth2 client_credentials
// grant with a private-key JWT assertion. The key may be PEM or JWK encoded.
func NewWithPrivateKey(orgURL, clientID, privateKey string, scopes ...string) (okta.Client, error) {
	return New(&okta.Config{
		OrgURL:     orgURL,
		ClientID:   clientID,
		PrivateKey: privateKey,
		Scopes:     scopes,
	})
}
