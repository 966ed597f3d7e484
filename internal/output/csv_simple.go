package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/investment-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Frequency", "Contribution", "NominalRate", "InflationRate", "Years", "RealRate", "MonthlyTotal", "YearlyTotal", "TotalInvested", "FutureValueNominal", "FutureValueReal", "NominalReturnPct", "RealReturnPct", "AnnualizedNominalPct", "AnnualizedRealPct"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		p, r := sc.Parameters, sc.Result
		row := []string{
			sc.Name,
			p.ContributionFrequency.String(),
			floatToString(p.ContributionAmount),
			rateToString(p.NominalAnnualRate),
			rateToString(p.AnnualInflationRate),
			yearsToString(p.Years),
			rateToString(r.RealRate),
			floatToString(r.MonthlyTotal),
			floatToString(r.YearlyTotal),
			floatToString(r.TotalInvested),
			floatToString(r.FutureValueNominal),
			floatToString(r.FutureValueReal),
			floatToString(r.NominalReturnPercentage),
			floatToString(r.RealReturnPercentage),
			floatToString(r.AnnualizedNominalReturn),
			floatToString(r.AnnualizedRealReturn),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
