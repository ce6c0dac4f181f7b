package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tokensift/tokensift/internal/analyze"
	"github.com/tokensift/tokensift/internal/scan"
)

// Printer writes human-readable scan results.
type Printer struct{ w io.Writer }

func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Result prints the filtering statistics and the top picks.
func (p *Printer) Result(res *scan.Result, top int) {
	fmt.Fprintf(p.w, "\nFiltering statistics:\n")
	fmt.Fprintf(p.w, "  Fetched listings:            %d\n", res.Fetched)
	fmt.Fprintf(p.w, "  Excluded stablecoins:        %d\n", res.Stablecoins)
	fmt.Fprintf(p.w, "  On %s:                 %d\n", res.Chain, res.OnChain)
	fmt.Fprintf(p.w, "  Rejected on market cap:      %d\n", res.Stats.Rejected[analyze.ReasonMarketCap])
	fmt.Fprintf(p.w, "  Rejected on volume:          %d\n", res.Stats.Rejected[analyze.ReasonVolume])
	fmt.Fprintf(p.w, "  Rejected on age:             %d\n", res.Stats.Rejected[analyze.ReasonAge])
	fmt.Fprintf(p.w, "  Rejected on volatility:      %d\n", res.Stats.Rejected[analyze.ReasonVolatility])
	fmt.Fprintf(p.w, "  Rejected on quality score:   %d\n", res.Stats.Rejected[analyze.ReasonQuality])
	fmt.Fprintf(p.w, "  Rejected for other reasons:  %d\n", res.Stats.Rejected[analyze.ReasonOther])
	fmt.Fprintf(p.w, "  Passing all criteria:        %d\n", res.Stats.Passed)

	picks := res.Top(top)
	if len(picks) == 0 {
		fmt.Fprintf(p.w, "\nNo tokens matched the criteria. Try adjusting the risk level.\n")
		return
	}

	fmt.Fprintf(p.w, "\nTop tokens by quality score:\n")
	for i, pick := range picks {
		p.pick(i+1, pick)
	}
}

func (p *Printer) pick(pos int, pick analyze.Pick) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(p.w, "\n#%d\n%s\n%s (%s)\n%s\n", pos, rule, pick.Name, pick.Symbol, rule)
	fmt.Fprintf(p.w, "Market Cap:        %s\n", FormatUSD(pick.MarketCap))
	fmt.Fprintf(p.w, "Price:             %s\n", FormatPrice(pick.Price))
	fmt.Fprintf(p.w, "24h Volume:        %s\n", FormatUSD(pick.Volume24h))
	fmt.Fprintf(p.w, "24h Change:        %s\n", FormatPercent(pick.Change24h))
	fmt.Fprintf(p.w, "7d Change:         %s\n", FormatPercent(pick.Change7d))
	fmt.Fprintf(p.w, "Quality Score:     %.2f/100\n", pick.QualityScore)
	fmt.Fprintf(p.w, "Volume/MCap Ratio: %.4f\n", pick.VolumeToMCap)
	fmt.Fprintf(p.w, "Rank:              #%d\n", pick.CMCRank)
	fmt.Fprintf(p.w, "Listed:            %s\n", pick.DateAdded)
	if len(pick.Tags) > 0 {
		fmt.Fprintf(p.w, "Tags:              %s\n", strings.Join(firstN(pick.Tags, 5), ", "))
	}

	p.ratingSection("Strengths", "+", pick.Rating.Strengths)
	p.ratingSection("Weaknesses", "-", pick.Rating.Weaknesses)
	p.ratingSection("Opportunities", "+", pick.Rating.Opportunities)
	p.ratingSection("Risks", "-", pick.Rating.Risks)
}

func (p *Printer) ratingSection(title, marker string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(p.w, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(p.w, "  %s %s\n", marker, line)
	}
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
