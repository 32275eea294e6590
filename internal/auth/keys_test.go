package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oktakit/okta/pkg/okta"
)

func generateTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pemText := string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))

	return key, pemText
}

func TestParsePrivateKey_PEM(t *testing.T) {
	key, pemText := generateTestKey(t)

	t.Run("plain PEM", func(t *testing.T) {
		parsed, err := ParsePrivateKey(pemText)
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("escaped newlines are expanded", func(t *testing.T) {
		singleLine := strings.ReplaceAll(pemText, "\n", `\n`)

		parsed, err := ParsePrivateKey(singleLine)
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("PKCS8 PEM", func(t *testing.T) {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)

		pkcs8 := string(pem.EncodeToMemory(&pem.Block{
			Type:  "PRIVATE KEY",
			Bytes: der,
		}))

		parsed, err := ParsePrivateKey(pkcs8)
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := ParsePrivateKey("not a key at all")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing PEM private key")
	})
}

func TestParsePrivateKey_JWK(t *testing.T) {
	key, _ := generateTestKey(t)

	t.Run("valid RSA JWK", func(t *testing.T) {
		jwkKey, err := jwk.FromRaw(key)
		require.NoError(t, err)

		jwkJSON, err := json.Marshal(jwkKey)
		require.NoError(t, err)

		parsed, err := ParsePrivateKey(string(jwkJSON))
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("leading whitespace still selects JWK parsing", func(t *testing.T) {
		jwkKey, err := jwk.FromRaw(key)
		require.NoError(t, err)

		jwkJSON, err := json.Marshal(jwkKey)
		require.NoError(t, err)

		parsed, err := ParsePrivateKey("  \n" + string(jwkJSON))
		require.NoError(t, err)
		assert.True(t, key.Equal(parsed))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParsePrivateKey(`{"kty":"RSA"`)
		assert.ErrorIs(t, err, okta.ErrInvalidCredentialFormat)
	})

	t.Run("non-RSA JWK", func(t *testing.T) {
		_, err := ParsePrivateKey(`{"kty":"oct","k":"c2VjcmV0"}`)
		assert.ErrorIs(t, err, okta.ErrInvalidCredentialFormat)
	})
}
