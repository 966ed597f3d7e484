package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/investment-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range results.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: Invested=%s Nominal=%s Real=%s\n",
			sc.Name,
			FormatCurrency(r.TotalInvested),
			FormatCurrency(r.FutureValueNominal),
			FormatCurrency(r.FutureValueReal),
		)
		fmt.Fprintf(&buf, "  Return=%s RealReturn=%s Annualized=%s AnnualizedReal=%s\n",
			FormatPercentage(r.NominalReturnPercentage),
			FormatPercentage(r.RealReturnPercentage),
			FormatPercentage(r.AnnualizedNominalReturn),
			FormatPercentage(r.AnnualizedRealReturn),
		)
	}
	rec := results.Recommendation
	if rec.BestRealValueScenario != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (real %s)\n", rec.BestRealValueScenario, FormatCurrency(rec.BestRealValue))
	}
	return buf.Bytes(), nil
}
