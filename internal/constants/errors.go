package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoOrgConfigured   = errors.New("no Okta org configured, set OKTA_ORG_URL or pass --org-url")
	ErrInvalidQueryParam = errors.New("query parameters must be of the form key=value")
)
