package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/investment-calculator/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders an A4 report: a summary table followed by one yearly
// table per scenario.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

// pdfReport pairs the document with a translator from UTF-8 to the cp1252
// encoding of the core fonts.
type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFReport() *pdfReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle("Investment Projection Report", true)
	return &pdfReport{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	r := newPDFReport()
	pdf := r.pdf

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(11, 61, 145)
	pdf.CellFormat(pdfContentWidth, 12, "Investment Projection Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.writeSummary(results)
	r.writeRecommendation(results.Recommendation)
	r.writeAssumptions(assumptionsFor(results))

	for i, sc := range results.Scenarios {
		r.writeTimeline(i+1, sc)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) sectionHeader(title string) {
	pdf := r.pdf
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(11, 61, 145)
	pdf.CellFormat(pdfContentWidth, 8, r.tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetTextColor(40, 40, 40)
}

func (r *pdfReport) tableRow(widths []float64, cells []string, header bool) {
	pdf := r.pdf
	style := ""
	if header {
		style = "B"
		pdf.SetFillColor(238, 242, 248)
	}
	pdf.SetFont("Arial", style, 8)
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 6, r.tr(c), "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func (r *pdfReport) writeSummary(results *domain.ScenarioComparison) {
	r.sectionHeader("Scenario Summary")
	widths := []float64{44, 24, 16, 16, 12, 24, 24, 20}
	r.tableRow(widths, []string{"Scenario", "Contribution", "Return", "Inflation", "Years", "Future Value", "Real Value", "Ann. Real"}, true)
	for _, sc := range results.Scenarios {
		p, res := sc.Parameters, sc.Result
		r.tableRow(widths, []string{
			sc.Name,
			FormatAmount(p.ContributionAmount) + shortFrequency(p.ContributionFrequency),
			FormatRate(p.NominalAnnualRate),
			FormatRate(p.AnnualInflationRate),
			yearsToString(p.Years),
			FormatCurrency(res.FutureValueNominal),
			FormatCurrency(res.FutureValueReal),
			FormatPercentage(res.AnnualizedRealReturn),
		}, false)
	}
}

func (r *pdfReport) writeRecommendation(rec domain.Recommendation) {
	if rec.BestRealValueScenario == "" {
		return
	}
	pdf := r.pdf
	r.sectionHeader("Recommendation")
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Highest real value: %s (%s)", rec.BestRealValueScenario, FormatAmount(rec.BestRealValue)),
		fmt.Sprintf("Best annualized real return: %s (%s)", rec.BestAnnualizedScenario, FormatPercentage(rec.BestAnnualizedReturn)),
		fmt.Sprintf("Real value spread: %s", FormatAmount(rec.RealValueSpread)),
	}
	for _, l := range lines {
		pdf.CellFormat(pdfContentWidth, 6, r.tr(l), "", 1, "L", false, 0, "")
	}
}

func (r *pdfReport) writeAssumptions(assumptions []string) {
	r.sectionHeader("Key Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	for _, a := range assumptions {
		r.pdf.MultiCell(pdfContentWidth, 5, r.tr("- "+a), "", "L", false)
	}
}

func (r *pdfReport) writeTimeline(index int, sc domain.ScenarioResult) {
	r.pdf.AddPage()
	r.sectionHeader(fmt.Sprintf("Scenario %d: %s", index, sc.Name))
	widths := []float64{16, 34, 34, 34, 31, 31}
	r.tableRow(widths, []string{"Year", "Invested", "Nominal", "Real", "Nominal Growth", "Real Growth"}, true)
	for _, pt := range sc.Result.Timeline {
		r.tableRow(widths, []string{
			intToString(pt.Year),
			FormatAmount(pt.TotalInvestedSoFar),
			FormatAmount(pt.NominalValue),
			FormatAmount(pt.RealValue),
			FormatPercentage(pt.NominalGrowthPercent),
			FormatPercentage(pt.RealGrowthPercent),
		}, false)
	}
}

func shortFrequency(f domain.Frequency) string {
	switch f {
	case domain.Weekly:
		return "/wk"
	case domain.Biweekly:
		return "/2wk"
	case domain.Monthly:
		return "/mo"
	}
	return ""
}
