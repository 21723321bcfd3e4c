package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"journal-transporter/transporter/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndParseToken(t *testing.T) {
	raw, err := IssueToken(secret, "ojs-migration", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, "ojs-migration", claims.ClientID())
	assert.Equal(t, constants.RequestSourceJWT, claims.Source())
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestParseTokenRejects(t *testing.T) {
	valid, err := IssueToken(secret, "client", time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := IssueToken(secret, "client", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		raw    string
	}{
		{"wrong secret", []byte("other"), valid},
		{"expired", secret, expired},
		{"garbage", secret, "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.raw)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestTokensNeedASecret(t *testing.T) {
	_, err := IssueToken(nil, "client", time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = ParseToken(nil, "anything")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestClientClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetClientClaims(ctx))

	ctx = SetClientClaims(ctx, &APIKeyClaims{KeyID: "k1"})
	claims := GetClientClaims(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "k1", claims.ClientID())
	assert.Equal(t, constants.RequestSourceAPIKey, claims.Source())
}
