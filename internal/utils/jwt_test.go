package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "ADMIN", 15)
    require.NoError(t, err)
    require.NotEmpty(t, at.Token)

    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "ADMIN", claims["role"])
    assert.WithinDuration(t, at.Exp, time.Unix(int64(claims["exp"].(float64)), 0), time.Second)
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "USER", 15)
    require.NoError(t, err)

    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshTokenIsRandomAndHashable(t *testing.T) {
    a, err := NewRefreshToken(7)
    require.NoError(t, err)
    b, err := NewRefreshToken(7)
    require.NoError(t, err)

    assert.Len(t, a.Raw, 96)
    assert.NotEqual(t, a.Raw, b.Raw)
    assert.True(t, a.Exp.After(time.Now().UTC().Add(6*24*time.Hour)))

    // hashing is deterministic and never echoes the raw token
    assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
    assert.NotEqual(t, a.Raw, HashRefreshRaw(a.Raw))
    assert.Len(t, HashRefreshRaw(a.Raw), 64)
}

func TestVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "other"))
}
