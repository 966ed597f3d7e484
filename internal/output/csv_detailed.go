package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/investment-calculator/internal/domain"
)

// CSVDetailedExporter provides the raw yearly timeline per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "TotalInvested", "NominalValue", "RealValue", "NominalGrowthPct", "RealGrowthPct"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, pt := range sc.Result.Timeline {
			row := []string{
				sc.Name,
				intToString(pt.Year),
				floatToString(pt.TotalInvestedSoFar),
				floatToString(pt.NominalValue),
				floatToString(pt.RealValue),
				floatToString(pt.NominalGrowthPercent),
				floatToString(pt.RealGrowthPercent),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
