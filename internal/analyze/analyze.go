package analyze

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tokensift/tokensift/internal/market"
)

// Pick is a token that survived every filter, with the derived metrics the
// report layers need.
type Pick struct {
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Price        float64  `json:"price"`
	MarketCap    float64  `json:"market_cap"`
	Volume24h    float64  `json:"volume_24h"`
	Change24h    float64  `json:"percent_change_24h"`
	Change7d     float64  `json:"percent_change_7d"`
	VolumeToMCap float64  `json:"volume_to_mcap"`
	QualityScore float64  `json:"quality_score"`
	CMCRank      int      `json:"cmc_rank"`
	DateAdded    string   `json:"date_added"`
	Tags         []string `json:"tags"`
	Rating       Rating   `json:"analysis"`
}

// Stats counts the fate of every analyzed listing. Analyzed always equals
// Passed plus the sum of the rejection buckets.
type Stats struct {
	Analyzed int
	Passed   int
	Rejected map[ReasonClass]int
}

func newStats() Stats {
	return Stats{Rejected: map[ReasonClass]int{}}
}

func (s *Stats) reject(c ReasonClass) {
	s.Rejected[c]++
}

// Analyze filters and scores listings for one tier, returning picks sorted
// by quality score descending (stable, so ties keep fetch order).
func Analyze(listings []market.Listing, th Thresholds, now time.Time) ([]Pick, Stats) {
	stats := newStats()
	var picks []Pick

	for _, l := range listings {
		stats.Analyzed++

		passed, rej := Filter(l, th, now)
		if !passed {
			stats.reject(rej.Class)
			log.Debug().Str("symbol", l.Symbol).Str("reason", rej.Detail).Msg("Listing rejected")
			continue
		}

		score := Score(l, th, now)
		if score < th.MinQualityScore {
			stats.reject(ReasonQuality)
			continue
		}

		usd := l.USD()
		picks = append(picks, Pick{
			Name:         l.Name,
			Symbol:       l.Symbol,
			Price:        usd.Price,
			MarketCap:    usd.MarketCap,
			Volume24h:    usd.Volume24h,
			Change24h:    usd.PercentChange24h,
			Change7d:     usd.PercentChange7d,
			VolumeToMCap: usd.Volume24h / usd.MarketCap,
			QualityScore: score,
			CMCRank:      l.CMCRank,
			DateAdded:    dateOnly(l.DateAdded),
			Tags:         l.Tags,
			Rating:       Rate(l, th, now),
		})
		stats.Passed++
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].QualityScore > picks[j].QualityScore
	})
	return picks, stats
}

func dateOnly(dateAdded string) string {
	if i := strings.IndexByte(dateAdded, 'T'); i >= 0 {
		return dateAdded[:i]
	}
	return dateAdded
}
