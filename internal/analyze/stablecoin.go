package analyze

import (
	"math"
	"strings"

	"github.com/tokensift/tokensift/internal/market"
)

var stablecoinTags = []string{"stablecoin", "stablecoins"}

// Fiat-peg naming conventions. A symbol like USDT or a name containing
// "USD" almost always marks a pegged asset.
var stableIndicators = []string{"usd", "eur", "gbp", "usdt", "usdc", "dai", "busd", "tusd"}

// IsStablecoin reports whether a listing looks like a pegged asset: tagged
// as one, named after a fiat currency, or price-pinned near $1 with
// negligible 30d movement.
func IsStablecoin(l market.Listing) bool {
	for _, tag := range l.Tags {
		tag = strings.ToLower(tag)
		for _, s := range stablecoinTags {
			if tag == s {
				return true
			}
		}
	}

	name := strings.ToLower(l.Name)
	symbol := strings.ToLower(l.Symbol)
	for _, ind := range stableIndicators {
		if strings.Contains(name, ind) || strings.Contains(symbol, ind) {
			return true
		}
	}

	usd := l.USD()
	if usd.Price >= 0.95 && usd.Price <= 1.05 {
		if math.Abs(usd.PercentChange30d) < 5 {
			return true
		}
	}
	return false
}
