package analyze

import (
	"fmt"
	"math"
	"time"

	"github.com/tokensift/tokensift/internal/market"
)

// ReasonClass buckets rejection reasons for the scan statistics.
type ReasonClass string

const (
	ReasonStablecoin ReasonClass = "stablecoin"
	ReasonMarketCap  ReasonClass = "market_cap"
	ReasonVolume     ReasonClass = "volume"
	ReasonAge        ReasonClass = "age"
	ReasonVolatility ReasonClass = "volatility"
	ReasonQuality    ReasonClass = "quality_score"
	ReasonOther      ReasonClass = "other"
)

// Rejection explains why a listing was dropped.
type Rejection struct {
	Class  ReasonClass
	Detail string
}

// Filter applies the tier's threshold checks in order: market cap range,
// volume floor, listing age, volatility caps. First failure wins.
func Filter(l market.Listing, th Thresholds, now time.Time) (bool, Rejection) {
	usd := l.USD()

	if usd.MarketCap < th.MinMarketCap || usd.MarketCap > th.MaxMarketCap {
		return false, Rejection{
			Class:  ReasonMarketCap,
			Detail: fmt.Sprintf("market cap $%.2f outside range $%.2f-$%.2f", usd.MarketCap, th.MinMarketCap, th.MaxMarketCap),
		}
	}

	if usd.Volume24h < th.MinVolume24h {
		return false, Rejection{
			Class:  ReasonVolume,
			Detail: fmt.Sprintf("volume $%.2f below minimum $%.2f", usd.Volume24h, th.MinVolume24h),
		}
	}

	age, err := l.AgeDays(now)
	if err != nil {
		return false, Rejection{Class: ReasonAge, Detail: err.Error()}
	}
	if age < th.MinAgeDays {
		return false, Rejection{
			Class:  ReasonAge,
			Detail: fmt.Sprintf("age %d days below minimum %d", age, th.MinAgeDays),
		}
	}

	windows := []struct {
		name   string
		change float64
		limit  float64
	}{
		{"1h", usd.PercentChange1h, th.MaxChange1h},
		{"24h", usd.PercentChange24h, th.MaxChange24h},
		{"7d", usd.PercentChange7d, th.MaxChange7d},
	}
	for _, w := range windows {
		if math.Abs(w.change) > w.limit {
			return false, Rejection{
				Class:  ReasonVolatility,
				Detail: fmt.Sprintf("%s change %.2f%% exceeds limit %.2f%%", w.name, math.Abs(w.change), w.limit),
			}
		}
	}

	return true, Rejection{}
}
