package domain

import "fmt"

// Configuration represents the complete input configuration of a scenario file
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is a named set of investment parameters
type Scenario struct {
	Name                 string `yaml:"name" json:"name"`
	InvestmentParameters `yaml:",inline"`
}

// ScenarioResult pairs a scenario with its computed projection
type ScenarioResult struct {
	Name       string               `json:"name"`
	Parameters InvestmentParameters `json:"parameters"`
	Result     ProjectionResult     `json:"result"`
}

// ScenarioComparison provides a comparison of all scenarios, in input order
type ScenarioComparison struct {
	Scenarios      []ScenarioResult `json:"scenarios"`
	Recommendation Recommendation   `json:"recommendation"`
	Assumptions    []string         `json:"assumptions"`
}

// Recommendation names the strongest scenarios of a comparison
type Recommendation struct {
	BestRealValueScenario  string  `json:"best_real_value_scenario"`
	BestRealValue          float64 `json:"best_real_value"`
	BestAnnualizedScenario string  `json:"best_annualized_scenario"`
	BestAnnualizedReturn   float64 `json:"best_annualized_real_return"`
	// Difference between the best and worst real future values
	RealValueSpread float64 `json:"real_value_spread"`
}

// baseAssumptions are modeling rules that hold for every scenario
var baseAssumptions = []string{
	"Contributions are made at the end of each period (ordinary annuity)",
	"Returns compound once per contribution period",
	"Real values use the inflation-adjusted rate (1 + nominal) / (1 + inflation) - 1",
}

// GenerateAssumptions creates the assumptions list from actual scenario values
func (c *Configuration) GenerateAssumptions() []string {
	out := append([]string(nil), baseAssumptions...)
	for _, sc := range c.Scenarios {
		out = append(out, fmt.Sprintf("%s: %.2f%% nominal return, %.2f%% inflation, %s contributions over %g years",
			sc.Name, sc.NominalAnnualRate*100, sc.AnnualInflationRate*100, sc.ContributionFrequency, sc.Years))
	}
	return out
}
