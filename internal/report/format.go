package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a price, switching to scientific notation below
// $0.00001 so micro-cap prices stay readable. The exponent is extracted
// with decimal arithmetic rather than float log10, which misrounds at
// powers of ten.
func FormatPrice(price float64) string {
	if price > 0 && price < 0.00001 {
		d := decimal.NewFromFloat(price)
		digits := len(d.Coefficient().String())
		exp := int(d.Exponent()) + digits - 1
		base := d.Shift(int32(-exp))
		return fmt.Sprintf("$%s×10^%d", base.StringFixed(2), exp)
	}
	return fmt.Sprintf("$%.8f", price)
}

// FormatUSD renders a dollar amount with thousands separators.
func FormatUSD(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

// FormatPercent renders a signed percentage change.
func FormatPercent(change float64) string {
	return fmt.Sprintf("%+.2f%%", change)
}
