package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/tokensift/tokensift/internal/market"
)

// Rating is a qualitative breakdown attached to each pick.
type Rating struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}

var utilityTags = []string{"defi", "nft", "gaming", "layer-2", "governance"}

// Rate derives strengths, weaknesses, opportunities and risks from the
// listing's market position, liquidity, trend and tags.
func Rate(l market.Listing, th Thresholds, now time.Time) Rating {
	var r Rating
	usd := l.USD()

	if l.CMCRank > 0 && l.CMCRank <= 300 {
		r.Strengths = append(r.Strengths, fmt.Sprintf("Strong market position (Rank #%d)", l.CMCRank))
	}

	if age, err := l.AgeDays(now); err == nil && age > 365 {
		r.Strengths = append(r.Strengths, fmt.Sprintf("Well-established (%.1f years old)", float64(age)/365))
	}

	if usd.MarketCap > 0 {
		ratio := usd.Volume24h / usd.MarketCap
		if ratio >= th.VolumeMCapMin {
			r.Strengths = append(r.Strengths, fmt.Sprintf("Healthy trading volume (%.1f%% of market cap)", ratio*100))
		} else {
			r.Weaknesses = append(r.Weaknesses, "Lower than ideal trading volume")
		}
	}

	if usd.PercentChange7d > 0 {
		r.Opportunities = append(r.Opportunities, fmt.Sprintf("Positive 7-day trend (+%.1f%%)", usd.PercentChange7d))
	} else {
		r.Risks = append(r.Risks, fmt.Sprintf("Negative 7-day trend (%.1f%%)", usd.PercentChange7d))
	}

	var utilities []string
	for _, tag := range l.Tags {
		tag = strings.ToLower(tag)
		for _, u := range utilityTags {
			if tag == u {
				utilities = append(utilities, tag)
			}
		}
	}
	if len(utilities) > 0 {
		r.Strengths = append(r.Strengths, "Clear utility: "+strings.Join(utilities, ", "))
	} else {
		r.Weaknesses = append(r.Weaknesses, "Limited clear utility cases")
	}

	return r
}
