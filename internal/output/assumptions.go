package output

import "github.com/rpgo/investment-calculator/internal/domain"

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
// when a comparison carries none of its own.
var DefaultAssumptions = []string{
	"Contributions are made at the end of each period (ordinary annuity)",
	"Returns compound once per contribution period",
	"Real values use the inflation-adjusted rate (1 + nominal) / (1 + inflation) - 1",
	"Taxes, fees and contribution limits are not modeled",
}

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
