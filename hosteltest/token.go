package hosteltest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/hostel-gommon/models"
	"github.com/stretchr/testify/require"
)

var signingKey = []byte("hosteltest")

// Token signs an access token shaped like the ones the backend issues.
// A zero ttl gives a token without exp, a negative one an expired token.
func Token(t testing.TB, userID, email, role string, ttl time.Duration) string {
	t.Helper()

	claims := models.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	require.NoError(t, err)
	return signed
}
