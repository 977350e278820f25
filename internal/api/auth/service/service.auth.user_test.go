package authsvc

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/auth/models"
)

// TestIssueTokenRoundTrip: token phát ra phải parse lại được bằng cùng secret
// và giữ nguyên payload của user.
func TestIssueTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := models.User{
		ID:           primitive.NewObjectID(),
		UserType:     models.UserTypeStaff,
		Status:       models.UserStatusActive,
		VerifyStatus: models.VerifyStatusVerified,
	}

	tokenString, err := IssueToken(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	payload := new(models.TokenPayload)
	parsed, err := jwt.ParseWithClaims(tokenString, payload, func(tk *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, user.ID.Hex(), payload.UserID)
	assert.Equal(t, models.UserTypeStaff, payload.UserType)
	assert.Equal(t, models.UserStatusActive, payload.UserStatus)
	assert.Equal(t, models.VerifyStatusVerified, payload.VerifyStatus)

	oid, err := payload.UserObjectID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, oid)
}

// TestIssueTokenExpiry: token hết hạn phải bị từ chối khi parse.
func TestIssueTokenExpiry(t *testing.T) {
	secret := []byte("test-secret")
	user := models.User{ID: primitive.NewObjectID(), UserType: models.UserTypeCustomer}

	tokenString, err := IssueToken(user, secret, -time.Minute)
	require.NoError(t, err)

	payload := new(models.TokenPayload)
	_, err = jwt.ParseWithClaims(tokenString, payload, func(tk *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

// TestIssueTokenWrongSecret: secret khác không verify được chữ ký.
func TestIssueTokenWrongSecret(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID()}
	tokenString, err := IssueToken(user, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	payload := new(models.TokenPayload)
	_, err = jwt.ParseWithClaims(tokenString, payload, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.Error(t, err)
}
