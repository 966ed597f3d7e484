package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_crossover <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	res, err := calc.NewProjectionEngine().RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the minimum timeline length across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if minLen == -1 || len(s.Result.Timeline) < minLen {
			minLen = len(s.Result.Timeline)
		}
	}
	if minLen <= 0 {
		fmt.Println("no timeline data")
		return
	}

	header := "Year"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Invested,S%d_Nominal,S%d_Real", i+1, i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < minLen; idx++ {
		row := fmt.Sprintf("%d", res.Scenarios[0].Result.Timeline[idx].Year)
		for sidx := range res.Scenarios {
			pt := res.Scenarios[sidx].Result.Timeline[idx]
			row += fmt.Sprintf(",%.0f,%.0f,%.0f", pt.TotalInvestedSoFar, pt.NominalValue, pt.RealValue)
		}
		fmt.Println(row)
	}

	// Pairwise crossovers in real terms
	for i := 0; i < len(res.Scenarios); i++ {
		for j := i + 1; j < len(res.Scenarios); j++ {
			a, b := res.Scenarios[i], res.Scenarios[j]
			cr, err := calc.FindRealValueCrossover(a.Result.Timeline, b.Result.Timeline)
			fmt.Printf("\nCrossover %s vs %s: %+v, err=%v\n", a.Name, b.Name, cr, err)
		}
	}
}
