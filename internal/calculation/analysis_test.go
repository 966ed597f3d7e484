package calculation

import (
	"testing"

	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func resultWith(name string, realValue, annualized float64) domain.ScenarioResult {
	return domain.ScenarioResult{
		Name:   name,
		Result: domain.ProjectionResult{FutureValueReal: realValue, AnnualizedRealReturn: annualized},
	}
}

func TestAnalyzeScenarios(t *testing.T) {
	rec := AnalyzeScenarios([]domain.ScenarioResult{
		resultWith("Long horizon", 250000, 2.1),
		resultWith("High rate", 180000, 3.4),
		resultWith("Small", 40000, 1.0),
	})

	assert.Equal(t, "Long horizon", rec.BestRealValueScenario)
	assert.Equal(t, 250000.0, rec.BestRealValue)
	assert.Equal(t, "High rate", rec.BestAnnualizedScenario)
	assert.Equal(t, 3.4, rec.BestAnnualizedReturn)
	assert.Equal(t, 210000.0, rec.RealValueSpread)
}

func TestAnalyzeScenariosTiesKeepInputOrder(t *testing.T) {
	rec := AnalyzeScenarios([]domain.ScenarioResult{
		resultWith("First", 1000, 1),
		resultWith("Second", 1000, 1),
	})
	assert.Equal(t, "First", rec.BestRealValueScenario)
	assert.Equal(t, "First", rec.BestAnnualizedScenario)
	assert.Equal(t, 0.0, rec.RealValueSpread)
}

func TestAnalyzeScenariosEmpty(t *testing.T) {
	assert.Equal(t, domain.Recommendation{}, AnalyzeScenarios(nil))
}
