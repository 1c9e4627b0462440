// Package automation runs scripted comparisons: one parameter set evaluated
// under several model implementations, each diffed against a reference.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/predprey"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted comparison.
type Scenario struct {
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description"`
	Model           string             `yaml:"model"`
	Params          map[string]float64 `yaml:"params"`
	Implementations []Implementation   `yaml:"implementations"`
	// Reference names the implementation the others are diffed against;
	// empty means the first one.
	Reference string `yaml:"reference"`
}

// Implementation is one way of computing the scenario.
type Implementation struct {
	Name       string `yaml:"name"`
	Integrator string `yaml:"integrator"`
}

type Run struct {
	Implementation Implementation
	Result         *experiment.Result
	// Differences against the reference; nil for the reference itself.
	Differences []analysis.Difference
}

type Report struct {
	Scenario  string
	Reference string
	Runs      []Run
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Implementations) == 0 {
		return fmt.Errorf("no implementations")
	}
	seen := make(map[string]bool, len(s.Implementations))
	for i, impl := range s.Implementations {
		if impl.Name == "" {
			return fmt.Errorf("implementation %d has no name", i+1)
		}
		if seen[impl.Name] {
			return fmt.Errorf("duplicate implementation %q", impl.Name)
		}
		seen[impl.Name] = true
	}
	if s.Reference != "" && !seen[s.Reference] {
		return fmt.Errorf("reference %q is not an implementation", s.Reference)
	}
	return nil
}

func (s *Scenario) reference() string {
	if s.Reference != "" {
		return s.Reference
	}
	return s.Implementations[0].Name
}

// RunScenario executes every implementation in order, then diffs each
// against the reference.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	params, err := predprey.FromMap(predprey.DefaultParams(), scenario.Params)
	if err != nil {
		return nil, err
	}

	model := scenario.Model
	if model == "" {
		model = "native"
	}

	report := &Report{
		Scenario:  scenario.Name,
		Reference: scenario.reference(),
		Runs:      make([]Run, 0, len(scenario.Implementations)),
	}

	var ref *experiment.Result
	for i, impl := range scenario.Implementations {
		logger.Debug("running implementation", "step", i+1, "of", len(scenario.Implementations),
			"name", impl.Name, "integrator", impl.Integrator)

		exp := experiment.New(experiment.Config{
			Model:      model,
			Integrator: impl.Integrator,
			Params:     params,
		})
		if err := exp.Setup(registry); err != nil {
			return report, fmt.Errorf("implementation %s: %w", impl.Name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return report, fmt.Errorf("implementation %s: %w", impl.Name, err)
		}

		if impl.Name == report.Reference {
			ref = result
		}
		report.Runs = append(report.Runs, Run{Implementation: impl, Result: result})
	}

	for i := range report.Runs {
		run := &report.Runs[i]
		if run.Implementation.Name == report.Reference {
			continue
		}
		diffs, err := analysis.CompareOutcomes(ref.Outcomes(), run.Result.Outcomes())
		if err != nil {
			return report, fmt.Errorf("compare %s: %w", run.Implementation.Name, err)
		}
		run.Differences = diffs
	}

	logger.Info("scenario complete", "name", scenario.Name, "implementations", len(report.Runs))
	return report, nil
}
