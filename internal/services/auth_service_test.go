package services

import (
	"context"
	"testing"
	"time"

	"rizzlet-backend/internal/auth"
	"rizzlet-backend/internal/config"
	"rizzlet-backend/internal/models"
	"rizzlet-backend/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userStore is an in-memory store.Store keyed by email for auth tests.
type userStore struct {
	quotaStore
	users map[string]*models.User
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]*models.User)}
}

func (u *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := u.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (u *userStore) CreateUser(_ context.Context, user *models.User) error {
	u.users[user.Email] = user
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: time.Hour,
	}
}

func TestSignup_CreatesUserWithHashedPassword(t *testing.T) {
	us := newUserStore()
	svc := NewAuthService(us, testAuthConfig())

	user, err := svc.Signup(context.Background(), "  Tester@Example.COM ", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "tester@example.com", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "hunter22", user.HashedPassword)
	assert.True(t, auth.CheckPasswordHash("hunter22", user.HashedPassword))
}

func TestSignup_RejectsDuplicateEmail(t *testing.T) {
	us := newUserStore()
	svc := NewAuthService(us, testAuthConfig())

	_, err := svc.Signup(context.Background(), "tester@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "tester@example.com", "other-password")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignup_RejectsEmptyInput(t *testing.T) {
	svc := NewAuthService(newUserStore(), testAuthConfig())

	_, err := svc.Signup(context.Background(), "", "hunter22")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Signup(context.Background(), "tester@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_ReturnsTokenForValidCredentials(t *testing.T) {
	us := newUserStore()
	svc := NewAuthService(us, testAuthConfig())

	created, err := svc.Signup(context.Background(), "tester@example.com", "hunter22")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "tester@example.com", "hunter22")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)

	claims := &auth.CustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := newUserStore()
	svc := NewAuthService(us, testAuthConfig())

	_, err := svc.Signup(context.Background(), "tester@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "tester@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserIndistinguishableFromWrongPassword(t *testing.T) {
	svc := NewAuthService(newUserStore(), testAuthConfig())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
