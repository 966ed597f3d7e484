package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxProjectionYears bounds the horizon accepted from files and requests.
const MaxProjectionYears = 100

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Frequency names
// are normalized in place.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}

	freq, err := domain.ParseFrequency(string(scenario.ContributionFrequency))
	if err != nil {
		return err
	}
	scenario.ContributionFrequency = freq

	if err := calculation.ValidateParameters(scenario.InvestmentParameters); err != nil {
		return err
	}
	if scenario.ContributionAmount <= 0 {
		return fmt.Errorf("contribution amount must be positive")
	}
	if scenario.Years < 0 || scenario.Years > MaxProjectionYears {
		return fmt.Errorf("years must be between 0 and %d", MaxProjectionYears)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{
				Name: "Monthly index fund",
				InvestmentParameters: domain.InvestmentParameters{
					ContributionAmount:    500,
					ContributionFrequency: domain.Monthly,
					NominalAnnualRate:     0.07,
					AnnualInflationRate:   0.025,
					Years:                 30,
				},
			},
			{
				Name: "Biweekly paycheck saver",
				InvestmentParameters: domain.InvestmentParameters{
					ContributionAmount:    250,
					ContributionFrequency: domain.Biweekly,
					NominalAnnualRate:     0.06,
					AnnualInflationRate:   0.025,
					Years:                 30,
				},
			},
			{
				Name: "Weekly aggressive",
				InvestmentParameters: domain.InvestmentParameters{
					ContributionAmount:    125,
					ContributionFrequency: domain.Weekly,
					NominalAnnualRate:     0.09,
					AnnualInflationRate:   0.03,
					Years:                 25,
				},
			},
		},
	}
}

// SaveConfiguration writes config as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
