package analyze

import (
	"strings"
	"testing"
	"time"

	"github.com/tokensift/tokensift/internal/market"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// healthyListing passes every medium-tier check.
func healthyListing() market.Listing {
	return market.Listing{
		Name:           "Chainlink",
		Symbol:         "LINK",
		CMCRank:        20,
		NumMarketPairs: 20,
		DateAdded:      testNow.AddDate(0, 0, -400).Format(time.RFC3339),
		Tags:           []string{"defi"},
		Platform:       &market.Platform{Name: "Ethereum", Symbol: "ETH"},
		Quote: map[string]market.Quote{"USD": {
			Price:            12.5,
			Volume24h:        8_000_000,
			MarketCap:        50_000_000,
			PercentChange1h:  0.5,
			PercentChange24h: 2,
			PercentChange7d:  5,
		}},
	}
}

func mediumTier() Thresholds {
	return DefaultThresholds()[TierMedium]
}

func TestFilterPasses(t *testing.T) {
	passed, rej := Filter(healthyListing(), mediumTier(), testNow)
	if !passed {
		t.Fatalf("expected pass, got rejection: %s", rej.Detail)
	}
}

func TestFilterRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*market.Listing)
		class  ReasonClass
	}{
		{
			name: "market cap too small",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.MarketCap = 1_000_000
				l.Quote["USD"] = q
			},
			class: ReasonMarketCap,
		},
		{
			name: "market cap too large",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.MarketCap = 500_000_000
				l.Quote["USD"] = q
			},
			class: ReasonMarketCap,
		},
		{
			name: "zero market cap",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.MarketCap = 0
				l.Quote["USD"] = q
			},
			class: ReasonMarketCap,
		},
		{
			name: "volume below floor",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.Volume24h = 100_000
				l.Quote["USD"] = q
			},
			class: ReasonVolume,
		},
		{
			name: "too young",
			mutate: func(l *market.Listing) {
				l.DateAdded = testNow.AddDate(0, 0, -30).Format(time.RFC3339)
			},
			class: ReasonAge,
		},
		{
			name: "unparseable listing date",
			mutate: func(l *market.Listing) {
				l.DateAdded = "not-a-date"
			},
			class: ReasonAge,
		},
		{
			name: "1h volatility over cap",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.PercentChange1h = -6
				l.Quote["USD"] = q
			},
			class: ReasonVolatility,
		},
		{
			name: "24h volatility over cap",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.PercentChange24h = 16
				l.Quote["USD"] = q
			},
			class: ReasonVolatility,
		},
		{
			name: "7d volatility over cap",
			mutate: func(l *market.Listing) {
				q := l.Quote["USD"]
				q.PercentChange7d = -31
				l.Quote["USD"] = q
			},
			class: ReasonVolatility,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := healthyListing()
			tc.mutate(&l)
			passed, rej := Filter(l, mediumTier(), testNow)
			if passed {
				t.Fatal("expected rejection, got pass")
			}
			if rej.Class != tc.class {
				t.Errorf("expected class %s, got %s (%s)", tc.class, rej.Class, rej.Detail)
			}
			if rej.Detail == "" {
				t.Error("expected a rejection detail")
			}
		})
	}
}

func TestFilterFirstFailureWins(t *testing.T) {
	l := healthyListing()
	q := l.Quote["USD"]
	q.MarketCap = 1 // fails market cap
	q.Volume24h = 0 // would also fail volume
	l.Quote["USD"] = q

	_, rej := Filter(l, mediumTier(), testNow)
	if rej.Class != ReasonMarketCap {
		t.Errorf("expected market_cap to win, got %s", rej.Class)
	}
	if !strings.Contains(rej.Detail, "market cap") {
		t.Errorf("unexpected detail: %s", rej.Detail)
	}
}

func TestMergeThresholds(t *testing.T) {
	base := mediumTier()
	merged := base.Merge(Thresholds{MinQualityScore: 80, MinAgeDays: 10})
	if merged.MinQualityScore != 80 {
		t.Errorf("expected override 80, got %v", merged.MinQualityScore)
	}
	if merged.MinAgeDays != 10 {
		t.Errorf("expected override 10, got %v", merged.MinAgeDays)
	}
	if merged.MinVolume24h != base.MinVolume24h {
		t.Errorf("zero fields must keep base values")
	}
}

func TestParseTier(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParseTier(s); err != nil {
			t.Errorf("ParseTier(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseTier("extreme"); err == nil {
		t.Error("expected error for unknown tier")
	}
}
