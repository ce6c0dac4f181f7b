package market

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// CachedSource wraps a Source with an expiring LRU so repeated scans inside
// the TTL reuse a single fetch.
type CachedSource struct {
	src Source
	lru *expirable.LRU[string, []Listing]
}

func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src: src,
		lru: expirable.NewLRU[string, []Listing](16, nil, ttl),
	}
}

func (c *CachedSource) Name() string { return c.src.Name() }

func (c *CachedSource) Listings(ctx context.Context, req Request) ([]Listing, error) {
	key := fmt.Sprintf("%s|%d|%d|%s", c.src.Name(), req.Start, req.Limit, req.Convert)
	if cached, ok := c.lru.Get(key); ok {
		log.Debug().Str("source", c.src.Name()).Int("listings", len(cached)).Msg("Serving listings from cache")
		return cached, nil
	}
	listings, err := c.src.Listings(ctx, req)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, listings)
	return listings, nil
}
