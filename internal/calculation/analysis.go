package calculation

import (
	"github.com/rpgo/investment-calculator/internal/domain"
)

// AnalyzeScenarios picks the scenario with the highest real future value and
// the one with the highest annualized real return. Ties keep input order.
func AnalyzeScenarios(results []domain.ScenarioResult) domain.Recommendation {
	if len(results) == 0 {
		return domain.Recommendation{}
	}

	best := results[0]
	bestAnnualized := results[0]
	worstReal := results[0].Result.FutureValueReal

	for _, r := range results[1:] {
		if r.Result.FutureValueReal > best.Result.FutureValueReal {
			best = r
		}
		if r.Result.AnnualizedRealReturn > bestAnnualized.Result.AnnualizedRealReturn {
			bestAnnualized = r
		}
		if r.Result.FutureValueReal < worstReal {
			worstReal = r.Result.FutureValueReal
		}
	}

	return domain.Recommendation{
		BestRealValueScenario:  best.Name,
		BestRealValue:          best.Result.FutureValueReal,
		BestAnnualizedScenario: bestAnnualized.Name,
		BestAnnualizedReturn:   bestAnnualized.Result.AnnualizedRealReturn,
		RealValueSpread:        best.Result.FutureValueReal - worstReal,
	}
}
