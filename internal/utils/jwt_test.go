package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken("secret", 42, "ADMIN", time.Hour)
    require.NoError(t, err)

    claims, err := ParseAccessToken("secret", tok.Token)
    require.NoError(t, err)
    id, err := claims.UserID()
    require.NoError(t, err)
    assert.Equal(t, uint64(42), id)
    assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseAccessTokenRejects(t *testing.T) {
    tok, err := NewAccessToken("secret", 42, "ADMIN", time.Hour)
    require.NoError(t, err)
    _, err = ParseAccessToken("other", tok.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    expired, err := NewAccessToken("secret", 42, "ADMIN", -time.Minute)
    require.NoError(t, err)
    _, err = ParseAccessToken("secret", expired.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    noRole, err := NewAccessToken("secret", 42, "", time.Hour)
    require.NoError(t, err)
    _, err = ParseAccessToken("secret", noRole.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})
    raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
    require.NoError(t, err)
    _, err = ParseAccessToken("secret", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)
}
