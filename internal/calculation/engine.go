package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/investment-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ProjectionEngine orchestrates projection calculations. It holds no state
// besides its logger and is safe for concurrent use.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a new projection engine with a no-op logger
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Compute runs a single projection
func (pe *ProjectionEngine) Compute(params domain.InvestmentParameters) (*domain.ProjectionResult, error) {
	result, err := ComputeProjection(params)
	if err != nil {
		pe.Logger.Debugf("projection rejected: %v", err)
		return nil, err
	}
	pe.Logger.Debugf("projection: %s x %.2f over %g years -> nominal %.2f, real %.2f",
		params.ContributionFrequency, params.ContributionAmount, params.Years,
		result.FutureValueNominal, result.FutureValueReal)
	return result, nil
}

// RunScenarios computes every scenario of the configuration concurrently and
// returns them in input order together with the comparison analysis. When
// several scenarios fail, the error of the earliest one is returned.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, errors.New("no scenarios provided")
	}

	results := make([]domain.ScenarioResult, len(config.Scenarios))
	errs := make([]error, len(config.Scenarios))

	g, gctx := errgroup.WithContext(ctx)
	for i, scenario := range config.Scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			res, err := pe.Compute(scenario.InvestmentParameters)
			if err != nil {
				errs[i] = fmt.Errorf("scenario %q: %w", scenario.Name, err)
				return errs[i]
			}
			results[i] = domain.ScenarioResult{
				Name:       scenario.Name,
				Parameters: scenario.InvestmentParameters,
				Result:     *res,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil && !errors.Is(e, context.Canceled) {
				return nil, e
			}
		}
		return nil, err
	}

	pe.Logger.Infof("computed %d scenarios", len(results))

	return &domain.ScenarioComparison{
		Scenarios:      results,
		Recommendation: AnalyzeScenarios(results),
		Assumptions:    config.GenerateAssumptions(),
	}, nil
}
