package cognito

import (
	"fmt"
	"log"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// TokenVerifier checks an access credential cryptographically and returns its
// claims
type TokenVerifier interface {
	Verify(accessToken string) (jwt.MapClaims, error)
}

// Verifier validates Cognito access tokens against the user pool's JWKS
type Verifier struct {
	jwks     *keyfunc.JWKS
	clientID string
}

// NewVerifier fetches the user pool's JWKS and returns a verifier that keeps
// the key set refreshed in the background
func NewVerifier(region, userPoolID, clientID string) (*Verifier, error) {
	jwksURL := fmt.Sprintf(
		"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
		region, userPoolID,
	)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			log.Printf("[Auth] JWKS refresh failed: %v\n", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching JWKS: %w", err)
	}
	return &Verifier{jwks: jwks, clientID: clientID}, nil
}

// Verify parses and validates the token signature, then checks that the token
// is an access token issued for our app client
func (v *Verifier) Verify(accessToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, v.jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if use, _ := claims["token_use"].(string); use != "access" {
		return nil, fmt.Errorf("unexpected token use %q", use)
	}
	if cid, _ := claims["client_id"].(string); cid != v.clientID {
		return nil, fmt.Errorf("token issued for a different client")
	}
	return claims, nil
}

// IsTokenExpired decodes the token without verifying its signature and reports
// whether its exp claim is in the past. Malformed tokens are not treated as
// expired; the subsequent full verification rejects them.
func IsTokenExpired(accessToken string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(time.Now().Unix(), true)
}
