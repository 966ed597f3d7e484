package output

import (
	"github.com/rpgo/investment-calculator/internal/domain"
)

// GenerateReport writes the comparison in the named format to a timestamped
// file under dir and returns the written paths. "all" writes the verbose
// console report plus the detailed CSV.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		path, err := WriteFormatted(f, results, dir, FileExtension(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
	if NormalizeFormatName(format) != "all" {
		return nil, UnsupportedFormatError(format)
	}

	var paths []string
	for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
		path, err := WriteFormatted(f, results, dir, FileExtension(f.Name()))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
