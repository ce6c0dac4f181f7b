package market

import (
	"context"
	"fmt"
	"time"
)

// Quote holds the fiat-denominated metrics for a listing.
type Quote struct {
	Price            float64 `json:"price"`
	Volume24h        float64 `json:"volume_24h"`
	MarketCap        float64 `json:"market_cap"`
	PercentChange1h  float64 `json:"percent_change_1h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
	PercentChange30d float64 `json:"percent_change_30d"`
}

// Platform identifies the chain a token is issued on. Nil for native coins.
type Platform struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Listing is one entry of a listings/latest response.
type Listing struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Symbol         string           `json:"symbol"`
	Slug           string           `json:"slug"`
	CMCRank        int              `json:"cmc_rank"`
	NumMarketPairs int              `json:"num_market_pairs"`
	DateAdded      string           `json:"date_added"`
	Tags           []string         `json:"tags"`
	Platform       *Platform        `json:"platform"`
	Quote          map[string]Quote `json:"quote"`
}

// USD returns the USD quote, zero-valued if the conversion is absent.
func (l Listing) USD() Quote { return l.Quote["USD"] }

// ListedAt parses date_added, accepting RFC3339 or a bare date.
func (l Listing) ListedAt() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, l.DateAdded); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", l.DateAdded)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date_added %q: %w", l.DateAdded, err)
	}
	return t, nil
}

// AgeDays is the number of whole days since the listing date.
func (l Listing) AgeDays(now time.Time) (int, error) {
	at, err := l.ListedAt()
	if err != nil {
		return 0, err
	}
	return int(now.Sub(at).Hours() / 24), nil
}

// Request describes one listings fetch.
type Request struct {
	Start   int
	Limit   int
	Convert string
}

// Source fetches market listings from somewhere: a pricing API, a saved dump.
type Source interface {
	Name() string
	Listings(ctx context.Context, req Request) ([]Listing, error)
}
