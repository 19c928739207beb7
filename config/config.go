package config

import (
	"errors"
	"fmt"
	"os"

	"catan/agent"
	"catan/meta"

	"gopkg.in/yaml.v3"
)

// Config is a win rate experiment: one agent under test against three
// baselines, played from every seat.
type Config struct {
	Name       string `yaml:"name"`
	Games      int    `yaml:"games"` // per seat of the test agent
	Seed       uint64 `yaml:"seed"`
	MaxTurns   int    `yaml:"max_turns"`
	Shuffle    bool   `yaml:"shuffle_board"`
	LogLevel   string `yaml:"log_level"`
	OutputDir  string `yaml:"output_dir"`
	Transcript bool   `yaml:"transcript"`

	Store Store `yaml:"store"`
	// BaselineStore, when set, seeds every baseline with the weights stored
	// under its key. Otherwise baselines start from fresh weights.
	BaselineStore *Store     `yaml:"baseline_store"`
	Test          agent.Spec `yaml:"test"`
	Baseline      agent.Spec `yaml:"baseline"`
}

// Store selects where weights live. Key is only read for the baseline store.
type Store struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Key    string `yaml:"key"`
}

func Default() Config {
	return Config{
		Name:      "win_rate",
		Games:     25,
		Seed:      1,
		MaxTurns:  meta.MAX_TURNS,
		LogLevel:  "info",
		OutputDir: "results",
		Store:     Store{Driver: "memory"},
		Test:      agent.Spec{Kind: "qlearner", Name: "test", Key: "test"},
		Baseline:  agent.Spec{Kind: "weighted", Name: "baseline"},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.Games <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns))
	}
	if c.Test.Kind == "" {
		errs = append(errs, errors.New("test agent has no kind"))
	}
	if c.Baseline.Kind == "" {
		errs = append(errs, errors.New("baseline agent has no kind"))
	}
	if bs := c.BaselineStore; bs != nil {
		if bs.Driver == "" {
			errs = append(errs, errors.New("baseline_store has no driver"))
		}
		if bs.Key == "" {
			errs = append(errs, errors.New("baseline_store has no key"))
		}
	}
	return errors.Join(errs...)
}
