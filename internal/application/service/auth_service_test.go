package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdzlabs/pos-api/internal/domain/entity"
	"github.com/cdzlabs/pos-api/pkg/apperror"
	"github.com/cdzlabs/pos-api/pkg/utils"
)

func newAuthServiceFixture(t *testing.T) (*AuthService, *entity.User) {
	t.Helper()

	hash, err := utils.HashPassword("secret-pass-123")
	require.NoError(t, err)

	storeID := uuid.New()
	user := &entity.User{
		ID:       uuid.New(),
		Email:    "asha@example.com",
		Password: hash,
		Role:     "cashier",
		StoreID:  &storeID,
	}

	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(newMockUserRepo(user), jwtManager), user
}

func TestLogin_HappyPath(t *testing.T) {
	svc, user := newAuthServiceFixture(t)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "secret-pass-123",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, output.User.ID)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthServiceFixture(t)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "wrong",
	})

	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAuthServiceFixture(t)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "secret-pass-123",
	})

	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLogin_TokenCarriesStoreClaim(t *testing.T) {
	svc, user := newAuthServiceFixture(t)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "secret-pass-123",
	})
	require.NoError(t, err)

	claims, err := svc.jwtManager.ValidateAccessToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
	require.NotNil(t, claims.StoreID)
	assert.Equal(t, *user.StoreID, *claims.StoreID)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc, user := newAuthServiceFixture(t)

	login, err := svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "secret-pass-123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc, _ := newAuthServiceFixture(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestChangePassword_VerifiesCurrent(t *testing.T) {
	svc, user := newAuthServiceFixture(t)

	err := svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-pass-456",
	})
	require.Error(t, err)

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "secret-pass-123",
		NewPassword:     "new-pass-456",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "asha@example.com",
		Password: "new-pass-456",
	})
	require.NoError(t, err)
}
