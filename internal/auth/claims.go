package auth

import (
	"journal-transporter/transporter/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// ClientClaims identifies the migration client behind a request.
type ClientClaims interface {
	ClientID() string
	Source() constants.RequestSource
}

// JWTClaims are carried by bearer tokens minted with IssueToken.
type JWTClaims struct {
	jwt.RegisteredClaims
}

func (c *JWTClaims) ClientID() string                { return c.Subject }
func (c *JWTClaims) Source() constants.RequestSource { return constants.RequestSourceJWT }

// APIKeyClaims are derived from an active row in api_keys.
type APIKeyClaims struct {
	KeyID string
}

func (c *APIKeyClaims) ClientID() string                { return c.KeyID }
func (c *APIKeyClaims) Source() constants.RequestSource { return constants.RequestSourceAPIKey }
