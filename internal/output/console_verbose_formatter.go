package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/investment-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED INVESTMENT PROJECTION ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeScenarioDetail(&buf, sc)
		fmt.Fprintln(&buf)
	}

	rec := results.Recommendation
	if rec.BestRealValueScenario != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Highest real value:        %s (%s)\n", rec.BestRealValueScenario, FormatAmount(rec.BestRealValue))
		fmt.Fprintf(&buf, "Best annualized real:      %s (%s)\n", rec.BestAnnualizedScenario, FormatPercentage(rec.BestAnnualizedReturn))
		if len(results.Scenarios) > 1 {
			fmt.Fprintf(&buf, "Real value spread:         %s\n", FormatAmount(rec.RealValueSpread))
		}
	}

	return buf.Bytes(), nil
}

func writeScenarioDetail(buf *bytes.Buffer, sc domain.ScenarioResult) {
	p, r := sc.Parameters, sc.Result

	fmt.Fprintln(buf, "PARAMETERS:")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  Contribution:            %s %s\n", FormatAmount(p.ContributionAmount), p.ContributionFrequency)
	fmt.Fprintf(buf, "  Expected Return:         %s\n", FormatRate(p.NominalAnnualRate))
	fmt.Fprintf(buf, "  Inflation:               %s\n", FormatRate(p.AnnualInflationRate))
	fmt.Fprintf(buf, "  Real Rate:               %s\n", FormatRate(r.RealRate))
	fmt.Fprintf(buf, "  Horizon:                 %g years\n", p.Years)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "CONTRIBUTIONS:")
	fmt.Fprintf(buf, "  Monthly Equivalent:      %s\n", FormatAmount(r.MonthlyTotal))
	fmt.Fprintf(buf, "  Yearly Total:            %s\n", FormatAmount(r.YearlyTotal))
	fmt.Fprintf(buf, "  Total Invested:          %s\n", FormatAmount(r.TotalInvested))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PROJECTED VALUE:")
	fmt.Fprintf(buf, "  Future Value (nominal):  %s\n", FormatAmount(r.FutureValueNominal))
	fmt.Fprintf(buf, "  Future Value (real):     %s\n", FormatAmount(r.FutureValueReal))
	fmt.Fprintf(buf, "  Total Return (nominal):  %s\n", FormatPercentage(r.NominalReturnPercentage))
	fmt.Fprintf(buf, "  Total Return (real):     %s\n", FormatPercentage(r.RealReturnPercentage))
	fmt.Fprintf(buf, "  Annualized (nominal):    %s\n", FormatPercentage(r.AnnualizedNominalReturn))
	fmt.Fprintf(buf, "  Annualized (real):       %s\n", FormatPercentage(r.AnnualizedRealReturn))
	fmt.Fprintln(buf)

	if len(r.Timeline) == 0 {
		return
	}
	fmt.Fprintln(buf, "YEAR-BY-YEAR GROWTH:")
	fmt.Fprintln(buf, "---------------------")
	fmt.Fprintf(buf, "  %4s  %12s  %12s  %12s  %9s  %9s\n", "Year", "Invested", "Nominal", "Real", "Nominal%", "Real%")
	for _, pt := range r.Timeline {
		fmt.Fprintf(buf, "  %4d  %12s  %12s  %12s  %9s  %9s\n",
			pt.Year,
			FormatCurrency(pt.TotalInvestedSoFar),
			FormatCurrency(pt.NominalValue),
			FormatCurrency(pt.RealValue),
			FormatPercentage(pt.NominalGrowthPercent),
			FormatPercentage(pt.RealGrowthPercent),
		)
	}
}
