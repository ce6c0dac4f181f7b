// Package filesrc serves listings from a saved JSON dump, for offline runs
// and tests. The file may be a bare listings array or a full API response
// with a data field.
package filesrc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tokensift/tokensift/internal/market"
)

type Source struct {
	path string
}

func New(path string) *Source { return &Source{path: path} }

func (s *Source) Name() string { return "file" }

func (s *Source) Listings(ctx context.Context, req market.Request) ([]market.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read listings dump: %w", err)
	}

	var listings []market.Listing
	if err := json.Unmarshal(content, &listings); err != nil {
		var wrapped struct {
			Data []market.Listing `json:"data"`
		}
		if err2 := json.Unmarshal(content, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse listings dump: %w", err)
		}
		listings = wrapped.Data
	}

	start := req.Start
	if start < 1 {
		start = 1
	}
	if start > len(listings) {
		return nil, nil
	}
	listings = listings[start-1:]
	if req.Limit > 0 && req.Limit < len(listings) {
		listings = listings[:req.Limit]
	}
	return listings, nil
}
