package main

import (
	"fmt"

	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/spf13/cobra"
)

type calcOptions struct {
	name      string
	amount    float64
	frequency string
	rate      float64
	inflation float64
	years     float64
	format    string
	outputDir string
}

func newCalcCmd(root *rootOptions) *cobra.Command {
	opts := &calcOptions{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Project a single contribution plan",
		Example: `  investcalc calc --amount 1000 --frequency monthly --rate 7 --inflation 3 --years 30
  investcalc calc --amount 250 --frequency biweekly --rate 6 --inflation 2.5 --years 20 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := domain.ParseFrequency(opts.frequency)
			if err != nil {
				return err
			}
			scenario := domain.Scenario{
				Name: opts.name,
				InvestmentParameters: domain.InvestmentParameters{
					ContributionAmount:    opts.amount,
					ContributionFrequency: freq,
					NominalAnnualRate:     opts.rate / 100,
					AnnualInflationRate:   opts.inflation / 100,
					Years:                 opts.years,
				},
			}
			// report the engine's own message rather than a scenario-wrapped one
			if err := calculation.ValidateParameters(scenario.InvestmentParameters); err != nil {
				return err
			}
			if opts.years < 0 || opts.years > config.MaxProjectionYears {
				return fmt.Errorf("years must be between 0 and %d", config.MaxProjectionYears)
			}

			results, err := root.engine().RunScenarios(cmd.Context(), &domain.Configuration{Scenarios: []domain.Scenario{scenario}})
			if err != nil {
				return err
			}
			return emit(cmd, results, opts.format, opts.outputDir)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "Projection", "scenario name used in reports")
	f.Float64Var(&opts.amount, "amount", 0, "contribution per period")
	f.StringVar(&opts.frequency, "frequency", string(domain.Monthly), "contribution frequency: weekly, biweekly or monthly")
	f.Float64Var(&opts.rate, "rate", 0, "expected annual return in percent (7 = 7%)")
	f.Float64Var(&opts.inflation, "inflation", 0, "annual inflation in percent")
	f.Float64Var(&opts.years, "years", 0, "investment horizon in years")
	f.StringVarP(&opts.format, "format", "f", "console", "output format (see 'investcalc formats')")
	f.StringVarP(&opts.outputDir, "output", "o", "", "write a timestamped report file into this directory instead of stdout")
	for _, name := range []string{"amount", "rate", "inflation", "years"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
