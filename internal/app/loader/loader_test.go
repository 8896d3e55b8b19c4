package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
)

func signedIn(t *testing.T) *auth.Session {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Roles:            []auth.RoleAuthority{{Authority: "ROLE_USER"}},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "driver@example.com"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	sess := auth.NewSession(auth.NewMemoryStore(raw), auth.NewCodec(""), nil)
	require.True(t, sess.IsAuthenticated())
	return sess
}

func TestRun_ReturnsResult(t *testing.T) {
	sess := signedIn(t)

	got, err := Run(context.Background(), sess, func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestRun_LogoutDuringLoadIsStale(t *testing.T) {
	sess := signedIn(t)

	got, err := Run(context.Background(), sess, func(ctx context.Context) (string, error) {
		sess.Logout()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		return "secret data", nil
	})

	assert.ErrorIs(t, err, ErrStale)
	assert.Empty(t, got)
}

func TestRun_StaleWinsOverError(t *testing.T) {
	sess := signedIn(t)

	_, err := Run(context.Background(), sess, func(ctx context.Context) (int, error) {
		sess.Logout()
		return 0, ctx.Err()
	})

	assert.ErrorIs(t, err, ErrStale)
}

func TestRun_PropagatesError(t *testing.T) {
	sess := signedIn(t)
	boom := errors.New("boom")

	_, err := Run(context.Background(), sess, func(context.Context) (int, error) {
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestRun_NilSession(t *testing.T) {
	got, err := Run(context.Background(), nil, func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestGroup(t *testing.T) {
	sess := signedIn(t)

	var a, b int
	grp := NewGroup(context.Background(), sess)
	grp.Go(func(context.Context) error { a = 1; return nil })
	grp.Go(func(context.Context) error { b = 2; return nil })

	require.NoError(t, grp.Wait())
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestGroup_FirstErrorCancelsOthers(t *testing.T) {
	sess := signedIn(t)
	boom := errors.New("boom")

	grp := NewGroup(context.Background(), sess)
	grp.Go(func(context.Context) error { return boom })
	grp.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := grp.Wait()
	assert.ErrorIs(t, err, boom)
}

func TestGroup_LogoutIsStale(t *testing.T) {
	sess := signedIn(t)

	grp := NewGroup(context.Background(), sess)
	grp.Go(func(ctx context.Context) error {
		sess.Logout()
		<-ctx.Done()
		return nil
	})

	assert.ErrorIs(t, grp.Wait(), ErrStale)
}
