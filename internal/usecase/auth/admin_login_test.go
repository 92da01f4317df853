package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeFinder struct {
	admins map[string]*Admin
}

func (f *fakeFinder) FindByEmail(_ context.Context, email string) (*Admin, error) {
	a, ok := f.admins[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return a, nil
}

type fakeRevoker struct {
	revoked map[string]time.Duration
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

const secret = "test-secret"

func newUsecase(t *testing.T) (*AdminLoginUsecase, *fakeRevoker) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	finder := &fakeFinder{admins: map[string]*Admin{
		"lily@example.com": {ID: "a1", Email: "lily@example.com", PasswordHash: string(hash), IsActive: true},
		"old@example.com":  {ID: "a2", Email: "old@example.com", PasswordHash: string(hash), IsActive: false},
	}}
	rev := &fakeRevoker{revoked: map[string]time.Duration{}}
	return NewAdminLoginUsecase(finder, rev, secret, 30, zap.NewNop()), rev
}

// This test validates:
// - a valid login returns a signed HS256 admin token with a jti
// - the email is matched case-insensitively
// - expiresIn follows the configured minutes
func TestExecute_IssuesAdminToken(t *testing.T) {
	uc, _ := newUsecase(t)

	res, err := uc.Execute(context.Background(), "  Lily@Example.com ", "hunter22")
	require.NoError(t, err)
	require.Equal(t, 1800, res.ExpiresIn)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.Equal(t, "a1", claims["sub"])
	require.Equal(t, "admin", claims["typ"])
	require.NotEmpty(t, claims["jti"])
}

func TestExecute_Rejections(t *testing.T) {
	uc, _ := newUsecase(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, "lily@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Execute(ctx, "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Execute(ctx, "old@example.com", "hunter22")
	require.ErrorIs(t, err, ErrInactiveAdmin)

	_, err = uc.Execute(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	uc, rev := newUsecase(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, uc.Logout(ctx, "jti-1", now.Add(10*time.Minute)))
	require.Equal(t, 10*time.Minute, rev.revoked["jti-1"])

	require.NoError(t, uc.Logout(ctx, "jti-2", now.Add(-time.Minute)))
	require.NotContains(t, rev.revoked, "jti-2")

	require.ErrorIs(t, uc.Logout(ctx, "", now.Add(time.Minute)), ErrInvalidCredentials)
}
