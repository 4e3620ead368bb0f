package service

import (
	"context"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Name:     "Jordan Wafula",
		Email:    "jordan@example.com",
		Password: "secret123",
		Role:     "SUPERADMIN",
	})
	assert.ErrorIs(t, err, ErrValidation)

	user, err := svc.CreateUser(ctx, CreateUserRequest{
		Name:     "Jordan Wafula",
		Email:    "jordan@example.com",
		Password: "secret123",
		Role:     model.RoleProcurement,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleProcurement, user.Role)

	_, err = svc.CreateUser(ctx, CreateUserRequest{
		Name:     "Impostor",
		Email:    "jordan@example.com",
		Password: "secret123",
		Role:     model.RoleSupplier,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// The stored hash never round-trips the raw password
	var stored model.User
	require.NoError(t, db.First(&stored, "email = ?", "jordan@example.com").Error)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestLoginAndRefresh(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Name:     "Site Supervisor",
		Email:    "supervisor@example.com",
		Password: "secret123",
		Role:     model.RoleSiteSupervisor,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "supervisor@example.com", Password: "wrong"})
	assert.Error(t, err)

	tokens, err := svc.Login(ctx, LoginUserRequest{Email: "supervisor@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.Error(t, err)
}
