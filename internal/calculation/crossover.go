package calculation

import (
	"fmt"

	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CrossoverResult describes the point where the real values of two timelines are equal
type CrossoverResult struct {
	// Later whole year of the bracketing pair in which the crossover occurs
	YearIndex int `json:"year_index"`

	// Fractional year of the crossover (e.g., 11.25)
	Year float64 `json:"year"`

	// Fraction (0..1) of the year between YearIndex-1 and YearIndex where crossover happens
	Fraction decimal.Decimal `json:"fraction_of_year"`

	// Real value at the crossover (equal for both timelines)
	RealValue decimal.Decimal `json:"real_value"`

	// True when timeline B ends up ahead after the crossover
	BOvertakesA bool `json:"b_overtakes_a"`
}

var crossoverTolerance = decimal.NewFromInt(1)

// FindRealValueCrossover finds the first year after the start where the real
// value of timeline A and timeline B meet or swap order, interpolating
// linearly inside the year. Timelines are aligned by index and truncated to
// the shorter one. If no crossover is found, returns nil, nil.
func FindRealValueCrossover(a, b []domain.YearPoint) (*CrossoverResult, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("one or both timelines are empty")
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	// Year 0 holds nothing for either timeline, so an equality there is trivial.
	prevDiff := decimal.NewFromFloat(a[0].RealValue).Sub(decimal.NewFromFloat(b[0].RealValue))
	for i := 1; i < n; i++ {
		valA := decimal.NewFromFloat(a[i].RealValue)
		currDiff := valA.Sub(decimal.NewFromFloat(b[i].RealValue))

		if currDiff.Abs().LessThan(crossoverTolerance) && !prevDiff.Abs().LessThan(crossoverTolerance) {
			return &CrossoverResult{
				YearIndex:   a[i].Year,
				Year:        float64(a[i].Year),
				Fraction:    decimal.NewFromInt(1),
				RealValue:   valA,
				BOvertakesA: prevDiff.IsPositive(),
			}, nil
		}

		if prevDiff.Mul(currDiff).IsNegative() {
			// diff(t) = prevDiff + t*(currDiff - prevDiff); solve diff(t) = 0
			t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(decimal.NewFromInt(1)) {
				t = decimal.NewFromInt(1)
			}

			prevA := decimal.NewFromFloat(a[i-1].RealValue)
			valueAt := prevA.Add(valA.Sub(prevA).Mul(t))

			return &CrossoverResult{
				YearIndex:   a[i].Year,
				Year:        float64(a[i-1].Year) + t.InexactFloat64(),
				Fraction:    t,
				RealValue:   valueAt,
				BOvertakesA: prevDiff.IsPositive(),
			}, nil
		}
		prevDiff = currDiff
	}

	return nil, nil
}
