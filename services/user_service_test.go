package services

import (
	"context"
	"testing"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := utils.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestRegister(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testLogger())
	var stored *models.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
			stored.ID = 12
		}).
		Return(nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: " sam ", Email: "Sam@Arena.io", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, user.ID)
	assert.Equal(t, "sam", user.Username)
	assert.Equal(t, "sam@arena.io", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Register(ctx, RegisterInput{Username: "a", Email: "nope", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Register(ctx, RegisterInput{Username: "a", Email: "a@b.io", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Conflicts(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testLogger())
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.Username == "taken" })).
		Return(repositories.ErrUserUsernameConflict)
	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrUserEmailConflict)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "taken", Email: "a@b.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameConflict)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "free", Email: "a@b.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLogin(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, testLogger())
	repo.On("GetByEmail", mock.Anything, "sam@arena.io").Return(&models.User{
		ID: 3, Email: "sam@arena.io", PasswordHash: hashed(t, "secret1"), Role: models.RoleUser,
	}, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@arena.io").Return(nil, repositories.ErrUserNotFound)
	ctx := context.Background()

	user, err := svc.Login(ctx, LoginInput{Email: " SAM@arena.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Login(ctx, LoginInput{Email: "sam@arena.io", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "ghost@arena.io", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	seed := RegisterInput{Username: "admin", Email: "admin@sportsarena.com", Password: "admin123"}

	repo := new(mockUserRepo)
	repo.On("GetFirstByRole", mock.Anything, models.RoleAdmin).Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)
	admin, created, err := NewAuthService(repo, testLogger()).EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, admin.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	repo = new(mockUserRepo)
	repo.On("GetFirstByRole", mock.Anything, models.RoleAdmin).Return(nil, repositories.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).Return(nil)
	admin, created, err = NewAuthService(repo, testLogger()).EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo, testLogger())
	repo.On("GetByID", mock.Anything, 4).Return(&models.User{ID: 4, Username: "old", Email: "old@arena.io", PasswordHash: "h"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.PasswordHash == "h" })).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), 4, UpdateProfileInput{Email: strPtr("New@Arena.io")})
	require.NoError(t, err)
	assert.Equal(t, "old", user.Username)
	assert.Equal(t, "new@arena.io", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.UpdateProfile(context.Background(), 4, UpdateProfileInput{Username: strPtr("  ")})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo, testLogger())
	repo.On("GetByID", mock.Anything, 4).Return(&models.User{ID: 4, PasswordHash: hashed(t, "secret1")}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return utils.CheckPasswordHash("secret2", u.PasswordHash)
	})).Return(nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, 4, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "x"}), ErrPasswordTooShort)
	assert.ErrorIs(t, svc.ChangePassword(ctx, 4, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "secret2"}), ErrInvalidCredentials)
	require.NoError(t, svc.ChangePassword(ctx, 4, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "secret2"}))
}

func TestGetProfile_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, 8).Return(nil, repositories.ErrUserNotFound)
	_, err := NewUserService(repo, testLogger()).GetProfile(context.Background(), 8)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("List", mock.Anything).Return([]models.User{{ID: 1, PasswordHash: "h"}}, nil)
	users, err := NewUserService(repo, testLogger()).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
}
