package auth

import (
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/oktakit/okta/pkg/okta"
)

// ParsePrivateKey resolves a private key supplied as either PEM text or a
// JSON Web Key into an RSA signing key. The key material is taken from the
// string as-is; no file or network access occurs.
func ParsePrivateKey(raw string) (*rsa.PrivateKey, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return parseJWK(raw)
	}

	return parsePEM(raw)
}

func parseJWK(raw string) (*rsa.PrivateKey, error) {
	key, err := jwk.ParseKey([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", okta.ErrInvalidCredentialFormat, err)
	}

	var rsaKey rsa.PrivateKey

	err = key.Raw(&rsaKey)
	if err != nil {
		return nil, fmt.Errorf("%w: not an RSA private key: %s", okta.ErrInvalidCredentialFormat, err)
	}

	return &rsaKey, nil
}

func parsePEM(raw string) (*rsa.PrivateKey, error) {
	// PEM keys are commonly stored in single-line environment variables with
	// escaped newlines.
	pemText := strings.ReplaceAll(raw, `\n`, "\n")

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemText))
	if err != nil {
		return nil, fmt.Errorf("parsing PEM private key: %w", err)
	}

	return key, nil
}
