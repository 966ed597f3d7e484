package calculation

import (
	"math"

	"github.com/rpgo/investment-calculator/internal/domain"
)

// ValidateParameters checks the inputs in a fixed order; the first failure wins.
func ValidateParameters(params domain.InvestmentParameters) error {
	for _, v := range []float64{params.ContributionAmount, params.NominalAnnualRate, params.AnnualInflationRate, params.Years} {
		if !isFinite(v) {
			return newValidationError(ErrInvalidInput, MsgInvalidInput)
		}
	}
	// An unknown frequency has no period count, so it is as unusable as a NaN.
	if !params.ContributionFrequency.IsValid() {
		return newValidationError(ErrInvalidInput, MsgInvalidInput)
	}
	if params.AnnualInflationRate >= 1 {
		return newValidationError(ErrInflationTooHigh, MsgInflationTooHigh)
	}
	if params.NominalAnnualRate <= 0 {
		return newValidationError(ErrReturnNotPositive, MsgReturnNotPositive)
	}
	return nil
}

// ComputeProjection produces summary totals, returns and the yearly timeline
// for a stream of equal periodic contributions. It is a pure function.
//
// The timeline holds floor(Years)+1 points, so cost grows linearly with the
// horizon. Callers taking untrusted input must bound Years first, as
// config.MaxProjectionYears does for files, the CLI and the HTTP API.
func ComputeProjection(params domain.InvestmentParameters) (*domain.ProjectionResult, error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}

	periods, _ := params.ContributionFrequency.PeriodsPerYear()
	perYear := float64(periods)
	amount := params.ContributionAmount
	years := params.Years

	realRate := RealRate(params.NominalAnnualRate, params.AnnualInflationRate)
	nominalPerPeriod := params.NominalAnnualRate / perYear
	realPerPeriod := realRate / perYear
	totalPeriods := perYear * years

	futureValueNominal := FutureValue(amount, nominalPerPeriod, totalPeriods)
	futureValueReal := FutureValue(amount, realPerPeriod, totalPeriods)

	yearlyTotal := amount * perYear
	totalInvested := yearlyTotal * years

	return &domain.ProjectionResult{
		MonthlyTotal:            amount * (perYear / 12),
		YearlyTotal:             yearlyTotal,
		TotalInvested:           totalInvested,
		FutureValueNominal:      futureValueNominal,
		FutureValueReal:         futureValueReal,
		NominalReturnPercentage: CumulativeReturn(futureValueNominal, totalInvested),
		RealReturnPercentage:    CumulativeReturn(futureValueReal, totalInvested),
		AnnualizedNominalReturn: AnnualizedReturn(futureValueNominal, totalInvested, years),
		AnnualizedRealReturn:    AnnualizedReturn(futureValueReal, totalInvested, years),
		RealRate:                realRate,
		Timeline:                GenerateTimeline(amount, nominalPerPeriod, realPerPeriod, perYear, years),
	}, nil
}

// RealRate converts a nominal rate into an inflation-adjusted one
func RealRate(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}

// FutureValue returns the value of an ordinary annuity paying amount at the
// end of each of periods periods at ratePerPeriod. A zero rate degenerates to
// the plain sum of payments.
func FutureValue(amount, ratePerPeriod, periods float64) float64 {
	if ratePerPeriod == 0 {
		return amount * periods
	}
	return amount * (math.Pow(1+ratePerPeriod, periods) - 1) / ratePerPeriod
}

// CumulativeReturn is the total gain over invested principal, in percent.
// Zero when nothing has been invested.
func CumulativeReturn(finalValue, invested float64) float64 {
	if invested <= 0 {
		return 0
	}
	return (finalValue - invested) / invested * 100
}

// AnnualizedReturn is the constant yearly rate, in percent, that turns
// invested into finalValue over years.
//
// Undefined results (zero horizon, zero principal, or a negative base raised
// to a fractional power) are reported as 0 rather than as an error, so a
// caller cannot tell "no growth" from "not computable" by this value alone.
func AnnualizedReturn(finalValue, invested, years float64) float64 {
	if years == 0 || invested == 0 {
		return 0
	}
	rate := (math.Pow(finalValue/invested, 1/years) - 1) * 100
	if !isFinite(rate) {
		return 0
	}
	return rate
}

const maxPreallocYears = 1000

// GenerateTimeline builds one point per whole year from 0 through years. It
// allocates for every year, so years must already be bounded.
func GenerateTimeline(amount, nominalPerPeriod, realPerPeriod, perYear, years float64) []domain.YearPoint {
	var points []domain.YearPoint
	if years >= 0 && years <= maxPreallocYears {
		points = make([]domain.YearPoint, 0, int(years)+1)
	}
	for year := 0; float64(year) <= years; year++ {
		periods := float64(year) * perYear

		var nominal, inflAdjusted float64
		if periods != 0 {
			nominal = FutureValue(amount, nominalPerPeriod, periods)
			inflAdjusted = FutureValue(amount, realPerPeriod, periods)
		}
		invested := amount * periods

		points = append(points, domain.YearPoint{
			Year:                 year,
			NominalValue:         math.Round(nominal),
			RealValue:            math.Round(inflAdjusted),
			TotalInvestedSoFar:   math.Round(invested),
			NominalGrowthPercent: CumulativeReturn(nominal, invested),
			RealGrowthPercent:    CumulativeReturn(inflAdjusted, invested),
		})
	}
	return points
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
