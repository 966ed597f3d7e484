package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Frequency identifies how often a contribution is made
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

// periodsPerYear maps each supported frequency to its contribution count per year
var periodsPerYear = map[Frequency]int{
	Weekly:   52,
	Biweekly: 26,
	Monthly:  12,
}

// frequencyAliases provides user-friendly synonyms for frequency names.
var frequencyAliases = map[string]Frequency{
	"bi-weekly":   Biweekly,
	"fortnightly": Biweekly,
}

// PeriodsPerYear returns the number of contribution periods in a year.
// The boolean is false for frequencies outside the table.
func (f Frequency) PeriodsPerYear() (int, bool) {
	p, ok := periodsPerYear[f]
	return p, ok
}

// IsValid reports whether the frequency is in the periods table
func (f Frequency) IsValid() bool {
	_, ok := periodsPerYear[f]
	return ok
}

func (f Frequency) String() string { return string(f) }

// ParseFrequency lowers, trims and resolves aliases
func ParseFrequency(name string) (Frequency, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := frequencyAliases[n]; ok {
		return alias, nil
	}
	f := Frequency(n)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown contribution frequency %q (expected one of: %s)", name, strings.Join(FrequencyNames(), ", "))
	}
	return f, nil
}

// FrequencyNames returns the canonical frequency names, sorted
func FrequencyNames() []string {
	names := make([]string, 0, len(periodsPerYear))
	for f := range periodsPerYear {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// InvestmentParameters holds the already-parsed inputs of a projection.
// Rates are fractional: 0.07 means 7%.
type InvestmentParameters struct {
	ContributionAmount    float64   `yaml:"contribution_amount" json:"contribution_amount"`
	ContributionFrequency Frequency `yaml:"contribution_frequency" json:"contribution_frequency"`
	NominalAnnualRate     float64   `yaml:"nominal_annual_rate" json:"nominal_annual_rate"`
	AnnualInflationRate   float64   `yaml:"annual_inflation_rate" json:"annual_inflation_rate"`
	Years                 float64   `yaml:"years" json:"years"`
}

// ProjectionResult is the full output of one projection. All values are raw;
// formatting belongs to the output layer.
type ProjectionResult struct {
	MonthlyTotal  float64 `json:"monthly_total"`
	YearlyTotal   float64 `json:"yearly_total"`
	TotalInvested float64 `json:"total_invested"`

	FutureValueNominal float64 `json:"future_value_nominal"`
	FutureValueReal    float64 `json:"future_value_real"`

	// Cumulative over the whole horizon, in percent
	NominalReturnPercentage float64 `json:"nominal_return_percentage"`
	RealReturnPercentage    float64 `json:"real_return_percentage"`

	// Compounded per-year rate, in percent
	AnnualizedNominalReturn float64 `json:"annualized_nominal_return"`
	AnnualizedRealReturn    float64 `json:"annualized_real_return"`

	RealRate float64     `json:"real_rate"`
	Timeline []YearPoint `json:"timeline"`
}

// YearPoint is a single year of the projection timeline
type YearPoint struct {
	Year               int     `json:"year"`
	NominalValue       float64 `json:"nominal_value"`
	RealValue          float64 `json:"real_value"`
	TotalInvestedSoFar float64 `json:"total_invested_so_far"`

	NominalGrowthPercent float64 `json:"nominal_growth_percent"`
	RealGrowthPercent    float64 `json:"real_growth_percent"`
}
