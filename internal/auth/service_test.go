package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (f *fakeUserRepo) add(t *testing.T, user domain.User, password string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.CredentialHash = string(hash)
	id, err := f.Create(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	user.ID = id
	f.users[id] = user
	return id, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	resets []PasswordReset
}

func (f *fakeResetRepo) Create(_ context.Context, reset PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, reset)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeResetRepo) {
	t.Helper()
	users := newFakeUserRepo()
	resets := &fakeResetRepo{}
	service := NewService(users, resets, Config{
		Secret:   []byte("clave-de-prueba"),
		Issuer:   "parchados-auth",
		Audience: "parchados-app",
		TokenTTL: time.Hour,
	}, zap.NewNop())
	return service, users, resets
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	service, users, _ := newTestService(t)
	users.add(t, domain.User{Name: "Carlos", Username: "carlosf", Email: "carlos@email.com", Role: domain.RoleUser}, "12345678")
	ctx := context.Background()

	user, token, err := service.Login(ctx, "carlosf", "12345678")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "carlosf", user.Username)
	assert.NotEmpty(t, token)

	user, _, err = service.Login(ctx, "carlos@email.com", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "carlos@email.com", user.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, users, _ := newTestService(t)
	users.add(t, domain.User{Username: "carlosf", Email: "carlos@email.com"}, "12345678")
	ctx := context.Background()

	_, _, err := service.Login(ctx, "carlosf", "contraseña-mala")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(ctx, "nadie", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Nil(t, service.CurrentUser())
}

func TestSessionLifecycle(t *testing.T) {
	service, users, _ := newTestService(t)
	users.add(t, domain.User{Username: "carlosf", Email: "carlos@email.com"}, "12345678")

	assert.Nil(t, service.CurrentUser())

	_, _, err := service.Login(context.Background(), "carlosf", "12345678")
	require.NoError(t, err)

	current := service.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "carlosf", current.Username)

	service.Logout()
	assert.Nil(t, service.CurrentUser())
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	service, users, _ := newTestService(t)
	seeded := users.add(t, domain.User{Name: "Admin", Username: "admin", Email: "admin@email.com", Role: domain.RoleAdmin}, "12345678")
	ctx := context.Background()

	_, token, err := service.Login(ctx, "admin", "12345678")
	require.NoError(t, err)

	user, err := service.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.True(t, user.IsAdmin())
}

func TestVerifyTokenRejectsForeignTokens(t *testing.T) {
	service, users, _ := newTestService(t)
	users.add(t, domain.User{Username: "admin", Email: "admin@email.com"}, "12345678")
	ctx := context.Background()

	_, token, err := service.Login(ctx, "admin", "12345678")
	require.NoError(t, err)

	_, err = service.VerifyToken(ctx, "no-es-un-token")
	assert.Error(t, err)

	// A token signed with another secret must not verify.
	other := NewService(users, &fakeResetRepo{}, Config{
		Secret:   []byte("otra-clave"),
		Issuer:   "parchados-auth",
		Audience: "parchados-app",
	}, zap.NewNop())
	_, err = other.VerifyToken(ctx, token)
	assert.Error(t, err)

	// A matching secret with a different issuer fails too.
	wrongIssuer := NewService(users, &fakeResetRepo{}, Config{
		Secret:   []byte("clave-de-prueba"),
		Issuer:   "otro-emisor",
		Audience: "parchados-app",
	}, zap.NewNop())
	_, err = wrongIssuer.VerifyToken(ctx, token)
	assert.Error(t, err)
}

func TestRegisterHashesAndRejectsDuplicates(t *testing.T) {
	service, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Register(ctx, domain.User{
		Name:     "Carlos",
		Username: "carlosf",
		Email:    "carlos@email.com",
		City:     domain.CityArmenia,
	}, "12345678")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Empty(t, created.CredentialHash, "el hash nunca sale de la capa de auth")

	stored, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.CredentialHash), []byte("12345678")))

	_, err = service.Register(ctx, domain.User{Email: "carlos@email.com"}, "otra")
	assert.Error(t, err)

	_, err = service.Register(ctx, domain.User{Email: ""}, "12345678")
	assert.Error(t, err)
}

func TestRequestPasswordReset(t *testing.T) {
	service, users, resets := newTestService(t)
	users.add(t, domain.User{Username: "carlosf", Email: "carlos@email.com"}, "12345678")
	ctx := context.Background()

	email, code, err := service.RequestPasswordReset(ctx, "carlosf")
	require.NoError(t, err)
	assert.Equal(t, "carlos@email.com", email)
	assert.Len(t, code, 6)

	require.Len(t, resets.resets, 1)
	assert.Equal(t, code, resets.resets[0].Code)
	assert.Equal(t, "carlos@email.com", resets.resets[0].Email)

	_, _, err = service.RequestPasswordReset(ctx, "nadie")
	assert.Error(t, err)
}
