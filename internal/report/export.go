package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tokensift/tokensift/internal/scan"
)

// Export renders a scan result in the requested format: json, csv or pdf.
func Export(res *scan.Result, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(res.Picks, "", "  ")
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"position", "symbol", "name", "quality_score", "price", "market_cap", "volume_24h", "change_24h", "change_7d", "rank", "date_added"})
		for i, p := range res.Picks {
			_ = w.Write([]string{
				strconv.Itoa(i + 1),
				p.Symbol,
				p.Name,
				fmt.Sprintf("%.2f", p.QualityScore),
				strconv.FormatFloat(p.Price, 'f', -1, 64),
				fmt.Sprintf("%.2f", p.MarketCap),
				fmt.Sprintf("%.2f", p.Volume24h),
				fmt.Sprintf("%.2f", p.Change24h),
				fmt.Sprintf("%.2f", p.Change7d),
				strconv.Itoa(p.CMCRank),
				p.DateAdded,
			})
		}
		w.Flush()
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, fmt.Sprintf("Token Scan Report - %s / %s risk", res.Chain, res.Tier))
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for i, p := range res.Picks {
			// gofpdf's core fonts are cp1252; keep the line plain ASCII.
			line := fmt.Sprintf("#%d %s (%s) score=%.2f price=%.8g mcap=%.0f vol24h=%.0f", i+1, p.Name, p.Symbol, p.QualityScore, p.Price, p.MarketCap, p.Volume24h)
			pdf.MultiCell(0, 6, line, "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
