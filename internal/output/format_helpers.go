package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rpgo/investment-calculator/pkg/decimal"
	stddec "github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency formats an amount as abbreviated USD ($12.39K, $1.23M).
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string { return decimal.NewMoney(amount).Abbreviate() }

// FormatAmount formats an amount as USD with thousands separators and cents.
func FormatAmount(amount float64) string {
	d := decimal.NewMoney(amount).Round().Decimal
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, groupWhole(whole), cents)
}

var maxGroupedInt = stddec.NewFromInt(math.MaxInt64)

// groupWhole adds thousands separators to a non-negative whole number. Values
// past int64 are grouped from their decimal digits.
func groupWhole(whole stddec.Decimal) string {
	if whole.LessThanOrEqual(maxGroupedInt) {
		return amountPrinter.Sprintf("%d", whole.IntPart())
	}
	digits := whole.StringFixed(0)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercentage formats a percentage value with 2 decimals. Non-finite
// values render as 0.00%.
func FormatPercentage(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		pct = 0
	}
	return decimal.NewMoney(pct).StringFixed(2) + "%"
}

// FormatRate formats a fractional rate (0.07) as a percentage.
func FormatRate(rate float64) string { return FormatPercentage(rate * 100) }

func intToString(i int) string { return strconv.Itoa(i) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func rateToString(r float64) string { return strconv.FormatFloat(r, 'f', 6, 64) }

func yearsToString(y float64) string { return strconv.FormatFloat(y, 'f', -1, 64) }
