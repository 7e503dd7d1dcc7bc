package cognito

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenWithClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIsTokenExpired(t *testing.T) {
	expired := tokenWithClaims(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	assert.True(t, IsTokenExpired(expired))

	fresh := tokenWithClaims(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	assert.False(t, IsTokenExpired(fresh))
}

func TestIsTokenExpiredWithoutExpClaim(t *testing.T) {
	token := tokenWithClaims(t, jwt.MapClaims{"sub": "sub-1"})
	assert.False(t, IsTokenExpired(token))
}

// Garbage is left to full verification to reject; the expiry probe does not
// treat it as expired.
func TestIsTokenExpiredMalformedToken(t *testing.T) {
	assert.False(t, IsTokenExpired("not-a-jwt"))
}
