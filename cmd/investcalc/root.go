package main

import (
	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "investcalc",
		Short: "Project the growth of recurring investment contributions",
		Long: `investcalc projects the nominal and inflation-adjusted value of equal
periodic contributions (weekly, biweekly or monthly) compounded at a fixed
expected return, and compares named scenarios side by side.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newCalcCmd(opts),
		newRunCmd(opts),
		newExampleCmd(),
		newServeCmd(opts),
		newFormatsCmd(),
	)
	return root
}

// newLogger builds a development logger when verbose, otherwise a production
// logger that only reports warnings and above.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func (o *rootOptions) engine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.SetLogger(calculation.NewZapLogger(o.logger))
	return engine
}
