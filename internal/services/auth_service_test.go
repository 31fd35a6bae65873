package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/paymethods-config-backend/internal/logger"
	"github.com/ArowuTest/paymethods-config-backend/internal/models"
	"github.com/ArowuTest/paymethods-config-backend/pkg/jwt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeAdminRepo{}
	_, err = repo.Create(context.Background(), &models.AdminUser{Email: "ops@example.com", Password: string(hash), Role: "admin"})
	require.NoError(t, err)

	tokens, err := jwt.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(repo, tokens, logger.Discard())

	t.Run("valid", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ops@example.com", Password: "s3cret"})
		require.NoError(t, err)

		claims, err := tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "ops@example.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ops@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "who@example.com", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
