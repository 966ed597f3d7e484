package main

import (
	"fmt"

	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/rpgo/investment-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var format, outputDir string
	cmd := &cobra.Command{
		Use:   "run <scenarios.yaml>",
		Short: "Run and compare every scenario in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			results, err := root.engine().RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to run scenarios: %w", err)
			}
			return emit(cmd, results, format, outputDir)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'investcalc formats'); 'all' requires --output")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write timestamped report files into this directory instead of stdout")
	return cmd
}

// emit prints a report to stdout, or writes report files when dir is set.
func emit(cmd *cobra.Command, results *domain.ScenarioComparison, format, dir string) error {
	if dir != "" {
		paths, err := output.GenerateReport(results, format, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
		}
		return nil
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		return output.UnsupportedFormatError(format)
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
