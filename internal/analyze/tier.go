package analyze

import "fmt"

// Tier is a risk appetite bucket. Each tier carries its own market cap
// range, liquidity floors, volatility caps and score cutoff.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// ParseTier validates a user-supplied tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierLow, TierMedium, TierHigh:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown risk tier: %q (expected low, medium or high)", s)
}

// Thresholds are the numeric criteria applied to one tier. Zero fields in a
// config override keep the built-in value.
type Thresholds struct {
	MinMarketCap    float64 `yaml:"min_market_cap"`
	MaxMarketCap    float64 `yaml:"max_market_cap"`
	MinVolume24h    float64 `yaml:"min_volume_24h"`
	VolumeMCapMin   float64 `yaml:"volume_mcap_min"`
	VolumeMCapMax   float64 `yaml:"volume_mcap_max"`
	MinAgeDays      int     `yaml:"min_age_days"`
	MaxChange1h     float64 `yaml:"max_change_1h"`
	MaxChange24h    float64 `yaml:"max_change_24h"`
	MaxChange7d     float64 `yaml:"max_change_7d"`
	MinQualityScore float64 `yaml:"min_quality_score"`
	MinMarketPairs  int     `yaml:"min_market_pairs"`
}

// DefaultThresholds returns the built-in criteria per tier.
func DefaultThresholds() map[Tier]Thresholds {
	return map[Tier]Thresholds{
		TierLow: {
			MinMarketCap:    100_000_000, // $100M
			MaxMarketCap:    1_000_000_000,
			MinVolume24h:    1_000_000, // $1M daily
			VolumeMCapMin:   0.01,
			VolumeMCapMax:   0.20,
			MinAgeDays:      180, // 6 months
			MaxChange1h:     3.0,
			MaxChange24h:    8.0,
			MaxChange7d:     15.0,
			MinQualityScore: 70,
			MinMarketPairs:  15,
		},
		TierMedium: {
			MinMarketCap:    25_000_000,
			MaxMarketCap:    100_000_000,
			MinVolume24h:    500_000,
			VolumeMCapMin:   0.02,
			VolumeMCapMax:   0.30,
			MinAgeDays:      90,
			MaxChange1h:     5.0,
			MaxChange24h:    15.0,
			MaxChange7d:     30.0,
			MinQualityScore: 60,
			MinMarketPairs:  8,
		},
		TierHigh: {
			MinMarketCap:    1_000_000,
			MaxMarketCap:    25_000_000,
			MinVolume24h:    100_000,
			VolumeMCapMin:   0.05,
			VolumeMCapMax:   0.40,
			MinAgeDays:      30,
			MaxChange1h:     8.0,
			MaxChange24h:    25.0,
			MaxChange7d:     50.0,
			MinQualityScore: 45,
			MinMarketPairs:  3,
		},
	}
}

// Merge overlays non-zero fields of o onto t.
func (t Thresholds) Merge(o Thresholds) Thresholds {
	if o.MinMarketCap != 0 {
		t.MinMarketCap = o.MinMarketCap
	}
	if o.MaxMarketCap != 0 {
		t.MaxMarketCap = o.MaxMarketCap
	}
	if o.MinVolume24h != 0 {
		t.MinVolume24h = o.MinVolume24h
	}
	if o.VolumeMCapMin != 0 {
		t.VolumeMCapMin = o.VolumeMCapMin
	}
	if o.VolumeMCapMax != 0 {
		t.VolumeMCapMax = o.VolumeMCapMax
	}
	if o.MinAgeDays != 0 {
		t.MinAgeDays = o.MinAgeDays
	}
	if o.MaxChange1h != 0 {
		t.MaxChange1h = o.MaxChange1h
	}
	if o.MaxChange24h != 0 {
		t.MaxChange24h = o.MaxChange24h
	}
	if o.MaxChange7d != 0 {
		t.MaxChange7d = o.MaxChange7d
	}
	if o.MinQualityScore != 0 {
		t.MinQualityScore = o.MinQualityScore
	}
	if o.MinMarketPairs != 0 {
		t.MinMarketPairs = o.MinMarketPairs
	}
	return t
}

// IdealVolumeRatio is the midpoint of the tier's volume/mcap limits, used
// as the target for the volume score component.
func (t Thresholds) IdealVolumeRatio() float64 {
	return (t.VolumeMCapMin + t.VolumeMCapMax) / 2
}
