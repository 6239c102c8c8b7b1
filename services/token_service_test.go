package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zara-amin/zeenat-jewels-api/config"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		SecretKey:                "test-secret",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
	}
}

func TestTokenIssueAndParse(t *testing.T) {
	tokens, err := NewTokenService(tokenTestConfig())
	assert.NoError(t, err)

	signed, err := tokens.Issue(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	userID, err := tokens.Parse(signed)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenParse_Expired(t *testing.T) {
	cfg := tokenTestConfig()
	cfg.AccessTokenExpireMinutes = -1

	tokens, err := NewTokenService(cfg)
	assert.NoError(t, err)

	signed, err := tokens.Issue(7)
	assert.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.Error(t, err, "An already-expired token must be rejected")
}

func TestTokenParse_WrongSecret(t *testing.T) {
	issuer, err := NewTokenService(tokenTestConfig())
	assert.NoError(t, err)

	otherCfg := tokenTestConfig()
	otherCfg.SecretKey = "different-secret"
	verifier, err := NewTokenService(otherCfg)
	assert.NoError(t, err)

	signed, err := issuer.Issue(7)
	assert.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.Error(t, err, "A token signed with another key must be rejected")
}

func TestTokenParse_Garbage(t *testing.T) {
	tokens, err := NewTokenService(tokenTestConfig())
	assert.NoError(t, err)

	_, err = tokens.Parse("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenService_UnsupportedAlgorithm(t *testing.T) {
	cfg := tokenTestConfig()
	cfg.Algorithm = "XX999"

	_, err := NewTokenService(cfg)
	assert.Error(t, err)
}
