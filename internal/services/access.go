package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/cache"
	"github.com/scripture-text-api/internal/repository"
)

const accessNamespace = "access_control"

// AccessService gates content reads on a per-key grant set: the set of hash
// ids an API key is permitted to read. Grant sets are cached read-through
// with a fixed TTL, so a revoked grant disappears within one TTL window.
type AccessService struct {
	repo  repository.AccessRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewAccessService creates a new access-control service
func NewAccessService(repo repository.AccessRepository, c cache.Cache, ttl time.Duration) *AccessService {
	return &AccessService{repo: repo, cache: c, ttl: ttl}
}

// GrantSet returns the cached grant set for the key, computing and caching it
// on a miss. When the authorization subsystem is unreachable the error wraps
// apperr.ErrAuthorizationUnavailable and no set is cached (fail closed, but
// recover as soon as the subsystem does).
func (s *AccessService) GrantSet(ctx context.Context, apiKey string) (map[string]struct{}, error) {
	if raw, ok, err := s.cache.Get(ctx, accessNamespace, apiKey); err == nil && ok {
		var hashes []string
		if err := json.Unmarshal(raw, &hashes); err == nil {
			return toSet(hashes), nil
		}
	}

	hashes, err := s.repo.ComputeGrantSet(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrAuthorizationUnavailable, err)
	}

	if raw, err := json.Marshal(hashes); err == nil {
		if err := s.cache.Set(ctx, accessNamespace, apiKey, raw, s.ttl); err != nil {
			log.Printf("Failed to cache grant set: %v", err)
		}
	}
	return toSet(hashes), nil
}

// IsAuthorized reports whether the key may read the given hash id. It is a
// pure membership check against the cached set; any failure to obtain the
// set denies access rather than granting it.
func (s *AccessService) IsAuthorized(ctx context.Context, apiKey, hashID string) bool {
	grants, err := s.GrantSet(ctx, apiKey)
	if err != nil {
		log.Printf("Access check failed closed: %v", err)
		return false
	}
	_, ok := grants[hashID]
	return ok
}

// Invalidate drops the cached grant set for the key so the next check
// recomputes it.
func (s *AccessService) Invalidate(ctx context.Context, apiKey string) error {
	return s.cache.Delete(ctx, accessNamespace, apiKey)
}

func toSet(hashes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}
	return set
}
