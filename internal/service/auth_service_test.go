package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactready/internal/model"
)

func TestRegisterLoginValidate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	reg, err := svc.Register(ctx, "org@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)

	claims, err := svc.ValidateToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)

	login, err := svc.Login(ctx, "org@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "org@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "org@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "org@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "org@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := NewAuthService(repo, "secret-a")
	verifier := NewAuthService(repo, "secret-b")

	reg, err := issuer.Register(context.Background(), "org@example.com", "hunter22")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(reg.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	authSvc := NewAuthService(repo, "test-secret")
	userSvc := NewUserService(repo)
	ctx := context.Background()

	reg, err := authSvc.Register(ctx, "org@example.com", "hunter22")
	require.NoError(t, err)

	profile := model.Profile{OrgName: "Acme Coop", Sector: "agriculture", Stage: "growth", Completed: true}
	require.NoError(t, userSvc.UpdateProfile(ctx, reg.UserID, profile))

	user, err := userSvc.Get(ctx, reg.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Coop", user.Profile.OrgName)
	assert.True(t, user.Profile.Completed)

	assert.ErrorIs(t, userSvc.UpdateProfile(ctx, "ghost", profile), ErrUserNotFound)
}
