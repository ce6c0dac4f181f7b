package analyze

import (
	"math"
	"time"

	"github.com/tokensift/tokensift/internal/market"
)

// Score rates a listing 0-100 against the tier: five components, each
// clamped to 0..20. Listings reaching here have already passed Filter, so
// market cap is non-zero.
func Score(l market.Listing, th Thresholds, now time.Time) float64 {
	usd := l.USD()
	var score float64

	// Market cap: proximity to the tier ceiling.
	if th.MaxMarketCap > 0 {
		score += clamp20(usd.MarketCap / th.MaxMarketCap * 20)
	}

	// Volume: distance of volume/mcap from the tier's ideal ratio.
	if usd.MarketCap > 0 {
		ratio := usd.Volume24h / usd.MarketCap
		ideal := th.IdealVolumeRatio()
		if ideal > 0 {
			score += clamp20(20 * (1 - math.Abs(ratio-ideal)/ideal))
		}
	}

	// Stability: start from 20, halve once per violated window.
	stability := 20.0
	if math.Abs(usd.PercentChange24h) > th.MaxChange24h {
		stability *= 0.5
	}
	if math.Abs(usd.PercentChange7d) > th.MaxChange7d {
		stability *= 0.5
	}
	score += stability

	// Exchange coverage: market pairs against the tier minimum.
	if th.MinMarketPairs > 0 {
		score += clamp20(float64(l.NumMarketPairs) / float64(th.MinMarketPairs) * 20)
	}

	// Age: listing age against the tier minimum.
	if age, err := l.AgeDays(now); err == nil && th.MinAgeDays > 0 {
		score += clamp20(float64(age) / float64(th.MinAgeDays) * 20)
	}

	return score
}

func clamp20(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 20 {
		return 20
	}
	return v
}
