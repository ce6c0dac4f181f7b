package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tokensift/tokensift/internal/scan"
)

// Recommendations files keep at most the top 10 picks.
const recommendationsCap = 10

// WriteRecommendations writes a timestamped recommendations file into dir
// and returns its path.
func WriteRecommendations(dir string, res *scan.Result) (string, error) {
	name := fmt.Sprintf("token_recommendations_%s.txt", res.StartedAt.Format("2006-01-02_15-04-05"))
	path := filepath.Join(dir, name)

	var b strings.Builder
	fmt.Fprintf(&b, "Token Analysis Results - %s\n", res.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Blockchain: %s\n", res.Chain)
	fmt.Fprintf(&b, "Risk Level: %s\n", capitalize(string(res.Tier)))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, pick := range res.Top(recommendationsCap) {
		fmt.Fprintf(&b, "#%d %s (%s)\n", i+1, pick.Name, pick.Symbol)
		fmt.Fprintf(&b, "Price: %s\n", FormatPrice(pick.Price))
		fmt.Fprintf(&b, "Market Cap: %s\n", FormatUSD(pick.MarketCap))
		fmt.Fprintf(&b, "24h Volume: %s\n", FormatUSD(pick.Volume24h))
		fmt.Fprintf(&b, "24h Change: %s\n", FormatPercent(pick.Change24h))
		fmt.Fprintf(&b, "7d Change: %s\n", FormatPercent(pick.Change7d))
		fmt.Fprintf(&b, "Quality Score: %.2f\n", pick.QualityScore)
		fmt.Fprintf(&b, "Rank: #%d\n", pick.CMCRank)
		fmt.Fprintf(&b, "Listed Date: %s\n", pick.DateAdded)
		if len(pick.Tags) > 0 {
			fmt.Fprintf(&b, "Tags: %s\n", strings.Join(firstN(pick.Tags, 5), ", "))
		}

		writeSection(&b, "Strengths", "+", pick.Rating.Strengths)
		writeSection(&b, "Weaknesses", "-", pick.Rating.Weaknesses)
		writeSection(&b, "Opportunities", "+", pick.Rating.Opportunities)
		writeSection(&b, "Risks", "-", pick.Rating.Risks)

		b.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
	}

	b.WriteString("\nNote: This analysis is for informational purposes only. Always DYOR!\n")
	fmt.Fprintf(&b, "Generated on: %s", time.Now().Format("2006-01-02 15:04:05"))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write recommendations: %w", err)
	}
	return path, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeSection(b *strings.Builder, title, marker string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(b, "%s %s\n", marker, line)
	}
}
