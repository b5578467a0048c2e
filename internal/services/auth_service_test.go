package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sidompet/sidompet-api/internal/config"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == strings.ToLower(username) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		result = append(result, *u)
	}
	return result, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	copied := *token
	f.tokens[token.Token] = &copied
	return nil
}

func (f *fakeRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rt
	return &copied, nil
}

func (f *fakeRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteByUser(ctx context.Context, userID uint) error {
	for k, v := range f.tokens {
		if v.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	rtRepo := newFakeRefreshTokenRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 24}
	return NewAuthService(userRepo, rtRepo, cfg), userRepo, rtRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, status string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:          username,
		EncryptedPassword: hash,
		FullName:          "Test User",
		Role:              models.RoleAdmin,
		Status:            status,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "rahasia123", models.StatusActive)

	result, err := svc.Login(context.Background(), "admin", "rahasia123")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "rahasia123", models.StatusActive)

	_, err := svc.Login(context.Background(), "admin", "salah")
	assert.EqualError(t, err, "username atau kata sandi salah")

	_, err = svc.Login(context.Background(), "nobody", "rahasia123")
	assert.EqualError(t, err, "username atau kata sandi salah")
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "rahasia123", models.StatusInactive)

	_, err := svc.Login(context.Background(), "admin", "rahasia123")
	assert.EqualError(t, err, "akun tidak aktif")
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, userRepo, rtRepo := newAuthFixture(t)
	seedUser(t, userRepo, "admin", "rahasia123", models.StatusActive)

	login, err := svc.Login(context.Background(), "admin", "rahasia123")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// Old token is single-use
	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	assert.Error(t, err)

	_, ok := rtRepo.tokens[refreshed.RefreshToken]
	assert.True(t, ok)
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, userRepo, rtRepo := newAuthFixture(t)
	user := seedUser(t, userRepo, "admin", "rahasia123", models.StatusActive)

	expired := time.Now().Add(-1 * time.Hour)
	rtRepo.tokens["stale"] = &models.RefreshToken{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: &expired,
	}

	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.EqualError(t, err, "token kedaluwarsa")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("rahasia123", hash))
	assert.False(t, VerifyPassword("salah", hash))
}
