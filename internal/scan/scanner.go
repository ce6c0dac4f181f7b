package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tokensift/tokensift/internal/analyze"
	"github.com/tokensift/tokensift/internal/market"
	"github.com/tokensift/tokensift/internal/store"
)

// Spec describes one scan invocation.
type Spec struct {
	Chain string
	Tier  analyze.Tier
	Limit int
	Top   int
}

// Result is everything one scan produced.
type Result struct {
	RunID       string
	Chain       string
	Tier        analyze.Tier
	StartedAt   time.Time
	Duration    time.Duration
	Fetched     int
	Stablecoins int
	OnChain     int
	Stats       analyze.Stats
	Picks       []analyze.Pick
}

// Top returns the first n picks (all of them when n <= 0).
func (r *Result) Top(n int) []analyze.Pick {
	if n <= 0 || n > len(r.Picks) {
		return r.Picks
	}
	return r.Picks[:n]
}

// ValidationError represents an invalid scan spec field
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s=%s: %s", e.Field, e.Value, e.Message)
}

// Metrics tracks basic performance metrics
type Metrics struct {
	requests int64
	errors   int64
	duration time.Duration
	mu       sync.RWMutex
}

func NewMetrics() *Metrics { return &Metrics{} }

// RecordRequest records a successful request
func (m *Metrics) RecordRequest(duration time.Duration) {
	m.mu.Lock()
	m.requests++
	m.duration += duration
	m.mu.Unlock()
}

// RecordError records an error
func (m *Metrics) RecordError() {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
}

// GetStats returns current metrics
func (m *Metrics) GetStats() (int64, int64, time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests, m.errors, m.duration
}

// Scanner runs the whole pipeline for one spec: fetch, filter, score, sort.
type Scanner struct {
	src     market.Source
	chains  map[string]analyze.Chain
	tiers   map[analyze.Tier]analyze.Thresholds
	history *store.Store // optional
	metrics *Metrics
	now     func() time.Time
}

func New(src market.Source, chains map[string]analyze.Chain, tiers map[analyze.Tier]analyze.Thresholds, history *store.Store) *Scanner {
	return &Scanner{
		src:     src,
		chains:  chains,
		tiers:   tiers,
		history: history,
		metrics: NewMetrics(),
		now:     time.Now,
	}
}

// GetMetrics returns current performance metrics
func (s *Scanner) GetMetrics() (int64, int64, time.Duration) {
	return s.metrics.GetStats()
}

// ValidateSpec checks a spec against the known chains and tiers.
func (s *Scanner) ValidateSpec(spec Spec) error {
	if _, err := analyze.ResolveChain(s.chains, spec.Chain); err != nil {
		return ValidationError{Field: "chain", Value: spec.Chain, Message: err.Error()}
	}
	if _, ok := s.tiers[spec.Tier]; !ok {
		return ValidationError{Field: "risk", Value: string(spec.Tier), Message: "unknown risk tier"}
	}
	if spec.Limit < 0 || spec.Limit > 5000 {
		return ValidationError{Field: "limit", Value: fmt.Sprintf("%d", spec.Limit), Message: "limit must be between 0 and 5000"}
	}
	return nil
}

// Scan executes one full pass: fetch, drop stablecoins, keep the chain's
// tokens, filter and score against the tier, record history.
func (s *Scanner) Scan(ctx context.Context, spec Spec) (*Result, error) {
	start := s.now()
	defer func() {
		s.metrics.RecordRequest(time.Since(start))
	}()

	if err := s.ValidateSpec(spec); err != nil {
		s.metrics.RecordError()
		return nil, err
	}
	chain, _ := analyze.ResolveChain(s.chains, spec.Chain)
	th := s.tiers[spec.Tier]

	listings, err := s.src.Listings(ctx, market.Request{Limit: spec.Limit, Convert: "USD"})
	if err != nil {
		s.metrics.RecordError()
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Chain:     chain.Name,
		Tier:      spec.Tier,
		StartedAt: start,
		Fetched:   len(listings),
	}

	var onChain []market.Listing
	for _, l := range listings {
		if analyze.IsStablecoin(l) {
			res.Stablecoins++
			continue
		}
		if chain.Matches(l) {
			onChain = append(onChain, l)
		}
	}
	res.OnChain = len(onChain)
	log.Info().
		Str("chain", chain.Name).
		Str("tier", string(spec.Tier)).
		Int("fetched", res.Fetched).
		Int("stablecoins", res.Stablecoins).
		Int("on_chain", res.OnChain).
		Msg("Analyzing listings")

	res.Picks, res.Stats = analyze.Analyze(onChain, th, start)
	res.Duration = time.Since(start)

	s.saveHistory(ctx, res)
	return res, nil
}

// saveHistory is best-effort: a broken history DB never fails a scan.
func (s *Scanner) saveHistory(ctx context.Context, res *Result) {
	if s.history == nil {
		return
	}
	run := store.Run{
		ID:        res.RunID,
		StartedAt: res.StartedAt,
		Chain:     res.Chain,
		Tier:      string(res.Tier),
		Fetched:   res.Fetched,
		Analyzed:  res.Stats.Analyzed,
		Passed:    res.Stats.Passed,
	}
	var picks []store.Pick
	for i, p := range res.Top(10) {
		picks = append(picks, store.Pick{
			RunID:     res.RunID,
			Position:  i + 1,
			Symbol:    p.Symbol,
			Name:      p.Name,
			Score:     p.QualityScore,
			MarketCap: p.MarketCap,
			Price:     p.Price,
		})
	}
	if err := s.history.SaveRun(ctx, run, picks); err != nil {
		s.metrics.RecordError()
		log.Warn().Err(err).Str("run_id", res.RunID).Msg("Failed to record scan history")
	}
}
