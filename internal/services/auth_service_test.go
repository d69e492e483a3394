package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedrill/internal/models"
	"typedrill/internal/utils"
)

type mockUserRepo struct {
	users    map[string]*models.User
	refresh  map[string]bool
	lastUser *models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), refresh: make(map[string]bool)}
}

func (m *mockUserRepo) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	_, exists := m.users[username]
	return exists, nil
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = len(m.users) + 1
	m.users[user.Username] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) SaveRefreshToken(_ context.Context, _ int, token string) error {
	m.refresh[token] = true
	return nil
}

func (m *mockUserRepo) IsRefreshTokenValid(_ context.Context, _ int, token string) (bool, error) {
	return m.refresh[token], nil
}

func (m *mockUserRepo) DeleteRefreshToken(_ context.Context, _ int, token string) error {
	delete(m.refresh, token)
	return nil
}

func TestRegisterUserHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	user := &models.User{Username: "typist", Email: "typist@example.com"}
	err := svc.RegisterUser(context.Background(), user, "secret")
	require.NoError(t, err)

	require.NotNil(t, repo.lastUser)
	assert.NotEmpty(t, repo.lastUser.PasswordHash)
	assert.NotEqual(t, "secret", repo.lastUser.PasswordHash)
	assert.Equal(t, "user", repo.lastUser.Role)
}

func TestRegisterUserDuplicates(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	repo.users["typist"] = &models.User{ID: 1, Username: "typist", Email: "typist@example.com"}

	err := svc.RegisterUser(context.Background(), &models.User{Username: "typist", Email: "other@example.com"}, "x")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	err = svc.RegisterUser(context.Background(), &models.User{Username: "other", Email: "typist@example.com"}, "x")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginUserSuccess(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users["typist"] = &models.User{ID: 1, Username: "typist", PasswordHash: hashed, Role: "user"}

	access, refresh, user, err := svc.LoginUser(context.Background(), "typist", "secret", "signing-key", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 1, user.ID)
	assert.True(t, repo.refresh[refresh], "refresh token must be stored")
}

func TestLoginUserIndistinguishableFailures(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users["typist"] = &models.User{ID: 1, Username: "typist", PasswordHash: hashed}

	_, _, _, errUnknown := svc.LoginUser(context.Background(), "nobody", "secret", "k", time.Minute, time.Hour)
	_, _, _, errWrongPw := svc.LoginUser(context.Background(), "typist", "wrong", "k", time.Minute, time.Hour)

	assert.ErrorIs(t, errUnknown, ErrInvalidLogin)
	assert.ErrorIs(t, errWrongPw, ErrInvalidLogin)
}

func TestRefreshTokensRotates(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	repo.users["typist"] = &models.User{ID: 1, Username: "typist", Role: "user"}
	repo.refresh["old-token"] = true

	access, refresh, err := svc.RefreshTokens(context.Background(), 1, "old-token", "signing-key", time.Minute, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.False(t, repo.refresh["old-token"], "old refresh token must be revoked")
	assert.True(t, repo.refresh[refresh])
}

func TestRefreshTokensRejectsUnknownToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)
	repo.users["typist"] = &models.User{ID: 1, Username: "typist"}

	_, _, err := svc.RefreshTokens(context.Background(), 1, "forged", "k", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLogoutDeletesRefreshToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)
	repo.refresh["tok"] = true

	require.NoError(t, svc.Logout(context.Background(), 1, "tok"))
	assert.False(t, repo.refresh["tok"])
}
