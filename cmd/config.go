package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bracket-sim/bracket-sim/sim/predict"
)

// RunConfig is the optional YAML run file shared by simulate and evaluate.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Data      string                 `yaml:"data"`
	Prefix    string                 `yaml:"prefix"`
	Season    int                    `yaml:"season"`
	Seasons   []int                  `yaml:"seasons"`
	From      int                    `yaml:"from"`
	To        int                    `yaml:"to"`
	Predictor string                 `yaml:"predictor"`
	Seed      *int64                 `yaml:"seed"`
	Parallel  int                    `yaml:"parallel"`
	ModelFile string                 `yaml:"model_file"`
	Model     *predict.LogisticModel `yaml:"model"`
	Trace     bool                   `yaml:"trace"`
}

// LoadRunConfig reads and strictly parses a YAML run file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names and ranges in the run file.
func (c *RunConfig) Validate() error {
	if c.Predictor != "" && !predict.ValidPredictors[c.Predictor] {
		return fmt.Errorf("unknown predictor %q", c.Predictor)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must be non-negative, got %d", c.Parallel)
	}
	if c.From != 0 && c.To != 0 && c.From > c.To {
		return fmt.Errorf("from (%d) is after to (%d)", c.From, c.To)
	}
	if c.Model != nil && c.ModelFile != "" {
		return fmt.Errorf("set either model or model_file, not both")
	}
	if c.Model != nil {
		if err := c.Model.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// runOptions is the resolved configuration of one command invocation.
type runOptions struct {
	data      string
	prefix    string
	season    int
	seasons   []int
	from      int
	to        int
	predictor string
	seed      int64
	parallel  int
	modelFile string
	model     *predict.LogisticModel
	trace     bool
	follow    string
	json      bool
}

// applyConfig fills every option whose flag was not set explicitly from the
// run file, then falls back to the environment for the data path.
func applyConfig(cmd *cobra.Command, opts *runOptions, cfg *RunConfig) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	if cfg != nil {
		if unset("data") && cfg.Data != "" {
			opts.data = cfg.Data
		}
		if unset("prefix") && cfg.Prefix != "" {
			opts.prefix = cfg.Prefix
		}
		if unset("season") && cfg.Season != 0 {
			opts.season = cfg.Season
		}
		if unset("seasons") && len(cfg.Seasons) > 0 {
			opts.seasons = cfg.Seasons
		}
		if unset("from") && cfg.From != 0 {
			opts.from = cfg.From
		}
		if unset("to") && cfg.To != 0 {
			opts.to = cfg.To
		}
		if unset("predictor") && cfg.Predictor != "" {
			opts.predictor = cfg.Predictor
		}
		if unset("seed") && cfg.Seed != nil {
			opts.seed = *cfg.Seed
		}
		if unset("parallel") && cfg.Parallel != 0 {
			opts.parallel = cfg.Parallel
		}
		if unset("model") && cfg.ModelFile != "" {
			opts.modelFile = cfg.ModelFile
		}
		if cfg.Model != nil {
			opts.model = cfg.Model
		}
		if unset("trace") && cfg.Trace {
			opts.trace = true
		}
	}
	if opts.data == "" {
		opts.data = os.Getenv(envData)
	}
}

// resolveOptions loads --config (if any) into opts.
func resolveOptions(cmd *cobra.Command, opts *runOptions) error {
	var cfg *RunConfig
	if configPath != "" {
		var err error
		if cfg, err = LoadRunConfig(configPath); err != nil {
			return err
		}
	}
	applyConfig(cmd, opts, cfg)
	if opts.data == "" {
		return fmt.Errorf("no data source: pass --data, set data in --config, or set %s", envData)
	}
	return nil
}

// loadModel returns the logistic model named by the options, if any.
// An explicit --model file replaces an inline model from the run file.
func (o *runOptions) loadModel() (*predict.LogisticModel, error) {
	if o.modelFile != "" {
		return predict.LoadLogisticModel(o.modelFile)
	}
	return o.model, nil
}
