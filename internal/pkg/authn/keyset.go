package authn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

var (
	ErrKeySetUnavailable = errors.New("identity provider key set unavailable")
	ErrInvalidToken      = errors.New("invalid token")
)

// KeySetCache fetches the identity provider's published JWKS and caches it
// for a fixed TTL. Refreshes overwrite the cached set, last write wins;
// staleness only costs a verification failure, never a security gap.
type KeySetCache struct {
	jwksURL      string
	ttl          time.Duration
	fetchTimeout time.Duration
	client       *http.Client

	mu        sync.RWMutex
	cached    jwk.Set
	fetchedAt time.Time
}

func NewKeySetCache(jwksURL string, ttl, fetchTimeout time.Duration, client *http.Client) *KeySetCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &KeySetCache{
		jwksURL:      jwksURL,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		client:       client,
	}
}

// Get returns the cached key set, refetching when the TTL has elapsed.
// A failed fetch returns ErrKeySetUnavailable; callers treat that as an
// authentication failure, not a crash.
func (c *KeySetCache) Get(ctx context.Context) (jwk.Set, error) {
	c.mu.RLock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		set := c.cached
		c.mu.RUnlock()
		return set, nil
	}
	c.mu.RUnlock()

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	set, err := jwk.Fetch(fetchCtx, c.jwksURL, jwk.WithHTTPClient(c.client))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}

	c.mu.Lock()
	c.cached = set
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return set, nil
}

// Invalidate drops the cached set so the next Get refetches.
func (c *KeySetCache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
