package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunConfig(t *testing.T) {
	// GIVEN a run file with an inline logistic model
	path := writeFile(t, "run.yaml", `
data: /data/kaggle
seasons: [2015, 2016]
predictor: logistic
seed: 7
parallel: 4
model:
  intercept: 0.1
  coefficients:
    win_pct: 2.5
`)

	// WHEN it is loaded
	cfg, err := LoadRunConfig(path)

	// THEN every field is populated
	require.NoError(t, err)
	assert.Equal(t, "/data/kaggle", cfg.Data)
	assert.Equal(t, []int{2015, 2016}, cfg.Seasons)
	assert.Equal(t, "logistic", cfg.Predictor)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, 4, cfg.Parallel)
	require.NotNil(t, cfg.Model)
	assert.InDelta(t, 2.5, cfg.Model.Coefficients["win_pct"], 1e-12)
}

func TestLoadRunConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "predictor: better-seed\nseeds: 3\n"},
		{"unknown predictor", "predictor: crystal-ball\n"},
		{"negative parallel", "parallel: -1\n"},
		{"inverted range", "from: 2020\nto: 2010\n"},
		{"both model forms", "model_file: m.yaml\nmodel:\n  coefficients:\n    win_pct: 1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRunConfig(writeFile(t, "run.yaml", tc.content))
			assert.Error(t, err)
		})
	}
}

func newTestCommand(opts *runOptions) *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&opts.data, "data", "", "")
	c.Flags().StringVar(&opts.predictor, "predictor", "better-seed", "")
	c.Flags().Int64Var(&opts.seed, "seed", 0, "")
	c.Flags().IntSliceVar(&opts.seasons, "seasons", nil, "")
	return c
}

func TestApplyConfig_ExplicitFlagsWin(t *testing.T) {
	// GIVEN a run file and a command where only --predictor was set
	seed := int64(99)
	cfg := &RunConfig{Data: "/from/file", Predictor: "win-pct", Seed: &seed, Seasons: []int{2019}, Parallel: 8}
	var opts runOptions
	c := newTestCommand(&opts)
	require.NoError(t, c.Flags().Set("predictor", "coin-flip"))

	// WHEN the config is applied
	applyConfig(c, &opts, cfg)

	// THEN unset flags take file values and the explicit flag is kept
	assert.Equal(t, "coin-flip", opts.predictor)
	assert.Equal(t, "/from/file", opts.data)
	assert.Equal(t, int64(99), opts.seed)
	assert.Equal(t, []int{2019}, opts.seasons)
	// AND keys without a flag on this command are ignored
	assert.Equal(t, 0, opts.parallel)
}

func TestApplyConfig_DataFromEnvironment(t *testing.T) {
	// GIVEN no --data flag and no run file
	t.Setenv(envData, "/from/env")
	var opts runOptions
	c := newTestCommand(&opts)

	// WHEN the config is applied
	applyConfig(c, &opts, nil)

	// THEN the environment supplies the data path
	assert.Equal(t, "/from/env", opts.data)
}

func TestLoadEnvFile(t *testing.T) {
	// GIVEN a missing file
	// THEN loading is a no-op
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))

	// GIVEN a present file with an unset key
	const key = "BRACKETSIM_TEST_ENV_FILE"
	t.Cleanup(func() { os.Unsetenv(key) })
	require.NoError(t, loadEnvFile(writeFile(t, ".env", key+"=loaded\n")))

	// THEN the key is exported
	assert.Equal(t, "loaded", os.Getenv(key))
}
