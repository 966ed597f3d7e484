package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strconv"

	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with summary and yearly tables.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"amount": FormatAmount,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"add":    func(i, j int) int { return i + j },
	"years":  func(y float64) string { return strconv.FormatFloat(y, 'f', 1, 64) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	data := struct {
		*domain.ScenarioComparison
		Assumptions []string
		Crossover   *calculation.CrossoverResult
		CrossoverA  string
		CrossoverB  string
	}{ScenarioComparison: results, Assumptions: assumptionsFor(results)}

	// Crossover between the first two scenarios (if present)
	if len(results.Scenarios) >= 2 {
		a, b := results.Scenarios[0], results.Scenarios[1]
		if cr, err := calculation.FindRealValueCrossover(a.Result.Timeline, b.Result.Timeline); err == nil && cr != nil {
			data.Crossover = cr
			data.CrossoverA = a.Name
			data.CrossoverB = b.Name
		}
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
