package analyze

import (
	"math"
	"testing"
	"time"

	"github.com/tokensift/tokensift/internal/market"
)

func TestScorePerfectListing(t *testing.T) {
	th := mediumTier()
	l := healthyListing()
	q := l.Quote["USD"]
	q.MarketCap = th.MaxMarketCap                     // full market cap component
	q.Volume24h = q.MarketCap * th.IdealVolumeRatio() // full volume component
	q.PercentChange24h = 0
	q.PercentChange7d = 0
	l.Quote["USD"] = q
	l.NumMarketPairs = th.MinMarketPairs
	l.DateAdded = testNow.AddDate(0, 0, -th.MinAgeDays).Format(time.RFC3339)

	score := Score(l, th, testNow)
	if math.Abs(score-100) > 1e-9 {
		t.Errorf("expected score 100, got %v", score)
	}
}

func TestScoreNeverExceeds100(t *testing.T) {
	th := mediumTier()
	l := healthyListing()
	q := l.Quote["USD"]
	q.MarketCap = th.MaxMarketCap * 3
	q.Volume24h = q.MarketCap * th.IdealVolumeRatio()
	l.Quote["USD"] = q
	l.NumMarketPairs = 10_000
	l.DateAdded = testNow.AddDate(-20, 0, 0).Format(time.RFC3339)

	score := Score(l, th, testNow)
	if score > 100 {
		t.Errorf("score must be clamped to 100, got %v", score)
	}
}

func TestScoreStabilityHalving(t *testing.T) {
	th := mediumTier()
	base := healthyListing()
	baseScore := Score(base, th, testNow)

	wild := healthyListing()
	q := wild.Quote["USD"]
	q.PercentChange24h = th.MaxChange24h + 5
	wild.Quote["USD"] = q
	wildScore := Score(wild, th, testNow)

	if math.Abs((baseScore-wildScore)-10) > 1e-9 {
		t.Errorf("one violated window should cost exactly half the stability component (10), cost was %v", baseScore-wildScore)
	}

	q.PercentChange7d = th.MaxChange7d + 5
	wild.Quote["USD"] = q
	bothScore := Score(wild, th, testNow)
	if math.Abs((baseScore-bothScore)-15) > 1e-9 {
		t.Errorf("two violated windows should cost 15, cost was %v", baseScore-bothScore)
	}
}

func TestScoreVolumeDistance(t *testing.T) {
	th := mediumTier()
	ideal := healthyListing()
	q := ideal.Quote["USD"]
	q.Volume24h = q.MarketCap * th.IdealVolumeRatio()
	ideal.Quote["USD"] = q

	drifted := healthyListing()
	q = drifted.Quote["USD"]
	q.Volume24h = q.MarketCap * th.IdealVolumeRatio() * 3
	drifted.Quote["USD"] = q

	if Score(ideal, th, testNow) <= Score(drifted, th, testNow) {
		t.Error("volume at the ideal ratio must outscore a drifted ratio")
	}
}

func TestScoreMissingPairsContributesZero(t *testing.T) {
	th := mediumTier()
	with := healthyListing()
	without := healthyListing()
	without.NumMarketPairs = 0

	diff := Score(with, th, testNow) - Score(without, th, testNow)
	want := clamp20(float64(with.NumMarketPairs) / float64(th.MinMarketPairs) * 20)
	if math.Abs(diff-want) > 1e-9 {
		t.Errorf("missing pairs should zero the pair component, diff=%v want=%v", diff, want)
	}
}

func TestScoreZeroMarketCap(t *testing.T) {
	// Filter keeps these out, but Score must still not divide by zero.
	l := healthyListing()
	l.Quote = map[string]market.Quote{"USD": {}}
	score := Score(l, mediumTier(), testNow)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		t.Fatalf("score must stay finite, got %v", score)
	}
}
