package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/internal/app"
	"estatehub/internal/pkg/jwtutil"
)

func newAuthService(store *memUserStore) *app.AuthService {
	return app.NewAuthService(store, "test-secret", 24*time.Hour)
}

func TestRegister(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	user, err := service.Register(app.RegisterInput{
		Username: "alice",
		Email:    "Alice@X.com",
		Password: "pw123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email, "email is normalized to lower case")
	assert.NotEqual(t, "pw123", user.PasswordHash, "password must never be stored in plaintext")
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	_, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = service.Register(app.RegisterInput{Username: "alice2", Email: "alice@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, app.ErrEmailExists)

	_, err = service.Register(app.RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, app.ErrUsernameExists)
}

func TestRegisterInvalidInput(t *testing.T) {
	service := newAuthService(newMemUserStore())

	for name, input := range map[string]app.RegisterInput{
		"empty username": {Email: "a@x.com", Password: "pw123"},
		"empty email":    {Username: "a", Password: "pw123"},
		"short password": {Username: "a", Email: "a@x.com", Password: "pw"},
	} {
		_, err := service.Register(input)
		assert.ErrorIs(t, err, app.ErrInvalidInput, name)
	}
}

func TestLogin(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	_, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	result, err := service.Login(app.LoginInput{Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestLoginFailureIsUniform(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	_, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, wrongPassword := service.Login(app.LoginInput{Email: "alice@x.com", Password: "wrong"})
	_, unknownEmail := service.Login(app.LoginInput{Email: "nobody@x.com", Password: "pw123"})

	// Neither failure mode may reveal which field was wrong.
	assert.ErrorIs(t, wrongPassword, app.ErrInvalidCredential)
	assert.ErrorIs(t, unknownEmail, app.ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUpdateProfile(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	user, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)

	updated, err := service.UpdateProfile(app.UpdateProfileInput{
		UserID:   user.ID,
		Username: "alice-renamed",
		Avatar:   "http://localhost:5000/uploads/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.Username)
	assert.Equal(t, "alice@x.com", updated.Email, "untouched fields keep their value")
	assert.Equal(t, "http://localhost:5000/uploads/a.png", updated.Avatar)
}

func TestUpdateProfileUniquenessExcludesSelf(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	alice, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)
	_, err = service.Register(app.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw123"})
	require.NoError(t, err)

	// Re-submitting your own username is not a conflict.
	_, err = service.UpdateProfile(app.UpdateProfileInput{UserID: alice.ID, Username: "alice"})
	assert.NoError(t, err)

	// Taking someone else's is.
	_, err = service.UpdateProfile(app.UpdateProfileInput{UserID: alice.ID, Username: "bob"})
	assert.ErrorIs(t, err, app.ErrUsernameExists)

	_, err = service.UpdateProfile(app.UpdateProfileInput{UserID: alice.ID, Email: "bob@x.com"})
	assert.ErrorIs(t, err, app.ErrEmailExists)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	store := newMemUserStore()
	service := newAuthService(store)

	user, err := service.Register(app.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	require.NoError(t, err)
	oldHash := user.PasswordHash

	updated, err := service.UpdateProfile(app.UpdateProfileInput{UserID: user.ID, Password: "newpw123"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = service.Login(app.LoginInput{Email: "alice@x.com", Password: "newpw123"})
	assert.NoError(t, err)
	_, err = service.Login(app.LoginInput{Email: "alice@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, app.ErrInvalidCredential)
}
