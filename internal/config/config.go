package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/predprey"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel = "native"
	dirName      = ".predprey"
	fileName     = "config.yaml"
)

type Config struct {
	Model         string                 `yaml:"model"`
	Integrator    string                 `yaml:"integrator"`
	Params        predprey.Params        `yaml:"params"`
	Uncertainties map[string]Uncertainty `yaml:"uncertainties"`
	Outcomes      []string               `yaml:"outcomes"`
}

// Uncertainty is the plausible range of one rate. The ranges document the
// exploratory study the model belongs to; they are checked, never sampled.
type Uncertainty struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

func (u Uncertainty) Contains(v float64) bool {
	return v >= u.Lower && v <= u.Upper
}

// DefaultUncertainties are the ranges of the four rates.
func DefaultUncertainties() map[string]Uncertainty {
	return map[string]Uncertainty{
		predprey.PreyBirthRate:      {Lower: 0.015, Upper: 0.035},
		predprey.PredationRate:      {Lower: 0.0005, Upper: 0.003},
		predprey.PredatorEfficiency: {Lower: 0.001, Upper: 0.004},
		predprey.PredatorLossRate:   {Lower: 0.04, Upper: 0.08},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Model:         DefaultModel,
		Integrator:    integrators.Default,
		Params:        predprey.DefaultParams(),
		Uncertainties: DefaultUncertainties(),
		Outcomes:      append([]string(nil), predprey.OutcomeNames...),
	}
}

// Load reads path over the defaults. An empty path searches
// ~/.predprey/config.yaml and falls back to the defaults when absent.
func Load(path string) (*Config, error) {
	if path == "" {
		path = userConfigPath()
		if path == "" {
			return DefaultConfig(), nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	for _, name := range c.Outcomes {
		if !knownOutcome(name) {
			return fmt.Errorf("unknown outcome: %s", name)
		}
	}
	for name, u := range c.Uncertainties {
		if u.Lower > u.Upper {
			return fmt.Errorf("uncertainty %s: lower %v above upper %v", name, u.Lower, u.Upper)
		}
	}
	return c.Params.Validate()
}

// CheckBounds lists the rates that fall outside their uncertainty range,
// sorted by name. Out-of-range rates are legal; callers may warn.
func (c *Config) CheckBounds(p predprey.Params) []string {
	values := p.Map()
	var out []string
	for name, u := range c.Uncertainties {
		v, ok := values[name]
		if ok && !u.Contains(v) {
			out = append(out, fmt.Sprintf("%s=%g outside [%g, %g]", name, v, u.Lower, u.Upper))
		}
	}
	sort.Strings(out)
	return out
}

func knownOutcome(name string) bool {
	for _, o := range predprey.OutcomeNames {
		if o == name {
			return true
		}
	}
	return false
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dirName, fileName)
}
