package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/cache"
	"github.com/scripture-text-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessRepo struct {
	grants map[string][]string
	err    error
	calls  int
}

func (f *fakeAccessRepo) ComputeGrantSet(_ context.Context, apiKey string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.grants[apiKey], nil
}

func newAccessService(repo *fakeAccessRepo) *services.AccessService {
	return services.NewAccessService(repo, cache.NewMemory(), 40*time.Minute)
}

func TestAccessService_IsAuthorized(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAccessRepo{grants: map[string][]string{
		"key-1": {"abc123456789", "def123456789"},
	}}
	svc := newAccessService(repo)

	assert.True(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))
	assert.False(t, svc.IsAuthorized(ctx, "key-1", "zzz123456789"))
	assert.False(t, svc.IsAuthorized(ctx, "unknown-key", "abc123456789"))
}

func TestAccessService_CachesGrantSet(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAccessRepo{grants: map[string][]string{"key-1": {"abc123456789"}}}
	svc := newAccessService(repo)

	svc.IsAuthorized(ctx, "key-1", "abc123456789")
	svc.IsAuthorized(ctx, "key-1", "abc123456789")
	svc.IsAuthorized(ctx, "key-1", "other")

	assert.Equal(t, 1, repo.calls, "grant set should be computed once and served from cache")
}

func TestAccessService_InvalidatePicksUpNewGrants(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAccessRepo{grants: map[string][]string{"key-1": {}}}
	svc := newAccessService(repo)

	assert.False(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))

	// Grant added upstream; visible after invalidation (or one TTL window).
	repo.grants["key-1"] = []string{"abc123456789"}
	assert.False(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"), "stale cache still denies")

	require.NoError(t, svc.Invalidate(ctx, "key-1"))
	assert.True(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))
}

func TestAccessService_FailsClosed(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAccessRepo{err: errors.New("connection refused")}
	svc := newAccessService(repo)

	assert.False(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))

	_, err := svc.GrantSet(ctx, "key-1")
	assert.ErrorIs(t, err, apperr.ErrAuthorizationUnavailable)
}

func TestAccessService_FailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAccessRepo{err: errors.New("connection refused")}
	svc := newAccessService(repo)

	assert.False(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))

	// Subsystem recovers; the denial must not outlive the outage.
	repo.err = nil
	repo.grants = map[string][]string{"key-1": {"abc123456789"}}
	assert.True(t, svc.IsAuthorized(ctx, "key-1", "abc123456789"))
}
