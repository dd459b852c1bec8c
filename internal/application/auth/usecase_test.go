package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/print3d-api/internal/application/auth"
	"github.com/jhoicas/print3d-api/internal/application/dto"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain"
	"github.com/jhoicas/print3d-api/internal/infrastructure/storage"
	"github.com/jhoicas/print3d-api/pkg/jwt"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

const secret = "test-secret"

func newUseCase(t *testing.T) (*auth.AuthUseCase, *session.Session) {
	t.Helper()
	sess := session.New(storage.NewMemoryStore(), "3dp", logger.Nop())
	require.NoError(t, sess.Open(context.Background()))
	t.Cleanup(sess.Close)
	uc := auth.NewAuthUseCase(sess, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}, logger.Nop(),
		auth.WithPasswordCost(bcrypt.MinCost))
	return uc, sess
}

func TestRegisterUser_FirstIsAdmin(t *testing.T) {
	uc, sess := newUseCase(t)
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "bob", Password: "secret2"})
	require.NoError(t, err)
	assert.Equal(t, "user", second.Role)

	rec := sess.Auth().Users["alice"]
	assert.NotEqual(t, "secret1", rec.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte("secret1")))
}

func TestRegisterUser_Duplicate(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ALICE", Password: "other1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{Username: "x", Password: "secret1", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, sess := newUseCase(t)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "Alice", Password: "secret1"})
	require.NoError(t, err)

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
	t.Run("password incorrecta", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.False(t, sess.Auth().IsAuthenticated)
	})
	t.Run("ok sin distinguir mayúsculas", func(t *testing.T) {
		resp, err := uc.Login(ctx, dto.LoginRequest{Username: "ALICE", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.User.ID)
		assert.True(t, sess.Auth().IsAuthenticated)
		assert.True(t, sess.Hydrated())
		assert.Equal(t, "3dp:data:alice", sess.StorageKey())

		claims, err := jwt.Parse(secret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID)
		assert.Equal(t, "Alice", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})
}

func TestLogin_Suspended(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secret1"})
	require.NoError(t, err)
	bob, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "bob", Password: "secret2"})
	require.NoError(t, err)

	_, err = uc.SuspendUser(ctx, bob.ID, true)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "secret2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSuspendUser_CurrentUserIsLoggedOut(t *testing.T) {
	uc, sess := newUseCase(t)
	ctx := context.Background()
	alice, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	resp, err := uc.SuspendUser(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Suspended)
	assert.False(t, sess.Auth().IsAuthenticated)
	assert.False(t, sess.Hydrated())

	_, err = uc.SuspendUser(ctx, "missing", true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	uc, sess := newUseCase(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	email, role := "new@x.com", "user"
	resp, err := uc.UpdateUser(ctx, "Alice", dto.UpdateUserRequest{Email: &email, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", resp.Email)
	assert.Equal(t, "user", sess.Auth().CurrentUser.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	assert.NoError(t, err, "sin password nueva se conserva la anterior")

	pw := "changed1"
	_, err = uc.UpdateUser(ctx, "alice", dto.UpdateUserRequest{Password: &pw})
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "changed1"})
	assert.NoError(t, err)

	_, err = uc.UpdateUser(ctx, "ghost", dto.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogoutAndMe(t *testing.T) {
	uc, sess := newUseCase(t)
	ctx := context.Background()
	alice, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.Me(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	me, err := uc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, me.ID)

	require.NoError(t, uc.Logout(ctx, "someone-else"))
	assert.True(t, sess.Auth().IsAuthenticated)

	require.NoError(t, uc.Logout(ctx, alice.ID))
	assert.False(t, sess.Auth().IsAuthenticated)
}

func TestListUsers_Sorted(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	for _, name := range []string{"carol", "Alice", "bob"} {
		_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: name, Password: "secret1"})
		require.NoError(t, err)
	}
	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{"Alice", "bob", "carol"},
		[]string{list.Items[0].Username, list.Items[1].Username, list.Items[2].Username})
}
