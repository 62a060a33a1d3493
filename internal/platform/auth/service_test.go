package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LMS-backend/internal/platform/apierr"
)

var testSecret = []byte("unit-test-secret")

func newTestService(store Store) *Service {
	return NewService(store, testSecret, 24*time.Hour)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return testSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestLoginMember(t *testing.T) {
	store := newFakeStore()
	store.addMember(7, "Ada", "Lovelace", "ada@example.com", "s3cret-pw")
	svc := newTestService(store)

	res, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pw", false)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", res.Name)
	assert.Equal(t, RoleMember, res.Role)

	claims := parseClaims(t, res.Token)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, RoleMember, claims["role"])

	sid, _ := claims["sid"].(string)
	sess := store.sessions[sid]
	require.NotNil(t, sess, "login must create a session row")
	assert.Equal(t, int64(7), sess.MemberID)
	assert.Zero(t, sess.StaffID)
}

func TestLoginNormalizesEmail(t *testing.T) {
	store := newFakeStore()
	store.addMember(7, "Ada", "Lovelace", "ada@example.com", "s3cret-pw")
	svc := newTestService(store)

	_, err := svc.Login(context.Background(), "  Ada@Example.COM ", "s3cret-pw", false)
	require.NoError(t, err)
}

func TestLoginStaffRoles(t *testing.T) {
	store := newFakeStore()
	store.addStaff(3, "Grace", "Hopper", RoleAdministrator, "grace@library.test", "pw")
	store.addStaff(4, "Jean", "Bartik", "Librarian", "jean@library.test", "pw")
	svc := newTestService(store)

	admin, err := svc.Login(context.Background(), "grace@library.test", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, "Grace Hopper [Administrator]", admin.Name)

	clerk, err := svc.Login(context.Background(), "jean@library.test", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, clerk.Role)
	assert.Equal(t, "Jean Bartik [Librarian]", clerk.Name)
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginFailureIsGeneric(t *testing.T) {
	store := newFakeStore()
	store.addMember(7, "Ada", "Lovelace", "ada@example.com", "s3cret-pw")
	svc := newTestService(store)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever", false)
	_, errWrongPw := svc.Login(context.Background(), "ada@example.com", "wrong", false)

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())

	var api *apierr.APIError
	require.True(t, errors.As(errUnknown, &api))
	assert.Equal(t, apierr.CodeUnauthenticated, api.Code)
	assert.Empty(t, store.sessions, "failed logins must not create sessions")
}

// A member's credentials must not work on the staff login and vice versa.
func TestLoginVariantsAreSeparate(t *testing.T) {
	store := newFakeStore()
	store.addMember(7, "Ada", "Lovelace", "ada@example.com", "s3cret-pw")
	store.addStaff(3, "Grace", "Hopper", RoleAdministrator, "grace@library.test", "pw")
	svc := newTestService(store)

	_, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pw", true)
	require.Error(t, err)

	_, err = svc.Login(context.Background(), "grace@library.test", "pw", false)
	require.Error(t, err)
}

func TestLogout(t *testing.T) {
	store := newFakeStore()
	store.addMember(7, "Ada", "Lovelace", "ada@example.com", "s3cret-pw")
	svc := newTestService(store)

	res, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pw", false)
	require.NoError(t, err)
	claims := parseClaims(t, res.Token)
	sid := claims["sid"].(string)

	require.NoError(t, svc.Logout(context.Background(), sid))
	assert.Empty(t, store.sessions)

	err = svc.Logout(context.Background(), sid)
	require.Error(t, err, "logging out a dead session is an error")
}
