package analyze

import (
	"testing"

	"github.com/tokensift/tokensift/internal/market"
)

func TestChainMatches(t *testing.T) {
	eth := DefaultChains()["ethereum"]
	sol := DefaultChains()["solana"]

	cases := []struct {
		name    string
		listing market.Listing
		chain   Chain
		want    bool
	}{
		{
			name:    "native coin by symbol",
			listing: market.Listing{Symbol: "ETH"},
			chain:   eth,
			want:    true,
		},
		{
			name:    "token on platform by name",
			listing: market.Listing{Symbol: "UNI", Platform: &market.Platform{Name: "Ethereum", Symbol: "ETH"}},
			chain:   eth,
			want:    true,
		},
		{
			name:    "token on platform by symbol only",
			listing: market.Listing{Symbol: "XYZ", Platform: &market.Platform{Name: "", Symbol: "eth"}},
			chain:   eth,
			want:    true,
		},
		{
			name:    "token by tag indicator",
			listing: market.Listing{Symbol: "XYZ", Tags: []string{"DeFi", "ERC-20"}},
			chain:   eth,
			want:    true,
		},
		{
			name:    "solana spl token",
			listing: market.Listing{Symbol: "RAY", Tags: []string{"spl"}},
			chain:   sol,
			want:    true,
		},
		{
			name:    "wrong chain",
			listing: market.Listing{Symbol: "RAY", Platform: &market.Platform{Name: "Solana", Symbol: "SOL"}},
			chain:   eth,
			want:    false,
		},
		{
			name:    "no platform no tags",
			listing: market.Listing{Symbol: "BTC"},
			chain:   eth,
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.chain.Matches(tc.listing); got != tc.want {
				t.Errorf("Matches(%s) = %v, want %v", tc.listing.Symbol, got, tc.want)
			}
		})
	}
}

func TestResolveChain(t *testing.T) {
	chains := DefaultChains()
	if _, err := ResolveChain(chains, "Ethereum"); err != nil {
		t.Errorf("lookup should be case-insensitive: %v", err)
	}
	if _, err := ResolveChain(chains, "dogecoin"); err == nil {
		t.Error("expected error for unknown chain")
	}
}

func TestIsStablecoin(t *testing.T) {
	cases := []struct {
		name    string
		listing market.Listing
		want    bool
	}{
		{
			name:    "tagged stablecoin",
			listing: market.Listing{Name: "Frax", Symbol: "FRAX", Tags: []string{"Stablecoin"}},
			want:    true,
		},
		{
			name:    "fiat indicator in symbol",
			listing: market.Listing{Name: "Tether", Symbol: "USDT"},
			want:    true,
		},
		{
			name:    "fiat indicator in name",
			listing: market.Listing{Name: "Euro Coin", Symbol: "EURC"}, // "eur" in name
			want:    true,
		},
		{
			name: "pegged price with flat 30d",
			listing: market.Listing{Name: "Pegged", Symbol: "PEG",
				Quote: map[string]market.Quote{"USD": {Price: 1.001, PercentChange30d: 0.4}}},
			want: true,
		},
		{
			name: "dollar-priced but volatile",
			listing: market.Listing{Name: "Cheap Token", Symbol: "CHP",
				Quote: map[string]market.Quote{"USD": {Price: 0.98, PercentChange30d: 40}}},
			want: false,
		},
		{
			name: "ordinary token",
			listing: market.Listing{Name: "Chainlink", Symbol: "LINK",
				Quote: map[string]market.Quote{"USD": {Price: 12.5, PercentChange30d: 20}}},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsStablecoin(tc.listing); got != tc.want {
				t.Errorf("IsStablecoin(%s) = %v, want %v", tc.listing.Symbol, got, tc.want)
			}
		})
	}
}
