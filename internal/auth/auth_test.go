package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMintAndParse(t *testing.T) {
	pair, err := MintTokens(7, "soc@example.com", "secret", time.Minute, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(60), pair.ExpiresIn)

	claims, err := ParseClaims(pair.AccessToken, "secret", KindAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "soc@example.com", claims.Email)

	refresh, err := ParseClaims(pair.RefreshToken, "secret", KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), refresh.UserID)
}

func TestParseClaims_Rejects(t *testing.T) {
	pair, err := MintTokens(7, "soc@example.com", "secret", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseClaims(pair.AccessToken, "other-secret", KindAccess)
	assert.Error(t, err, "wrong secret")

	_, err = ParseClaims(pair.RefreshToken, "secret", KindAccess)
	assert.Error(t, err, "refresh token used as access token")

	_, err = ParseClaims("not-a-token", "secret", KindAccess)
	assert.Error(t, err)

	expired, err := MintTokens(7, "soc@example.com", "secret", -time.Minute, time.Hour)
	require.NoError(t, err)
	_, err = ParseClaims(expired.AccessToken, "secret", KindAccess)
	assert.True(t, IsExpired(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Kind: KindAccess})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseClaims(unsigned, "secret", KindAccess)
	assert.Error(t, err, "alg none")
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "battery staple"), ErrInvalidCredentials)
}
