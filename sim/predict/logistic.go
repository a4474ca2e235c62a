package predict

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/bracket-sim/bracket-sim/sim"
)

// LogisticModel is a fitted logistic regression over per-game stat
// differentials (team A minus team B).
//
//	intercept: 0.02
//	coefficients:
//	  seed: -0.11
//	  point_diff_per_game: 0.09
//	sample: false
type LogisticModel struct {
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`

	// Sample draws the winner with probability p instead of taking the
	// likelier team.
	Sample bool `yaml:"sample"`
}

// Validate checks that the model has at least one known stat.
func (m LogisticModel) Validate() error {
	if len(m.Coefficients) == 0 {
		return fmt.Errorf("logistic model has no coefficients")
	}
	for name, c := range m.Coefficients {
		if !sim.IsStatName(name) {
			return fmt.Errorf("logistic model: unknown stat %q", name)
		}
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("logistic model: coefficient for %q is not finite", name)
		}
	}
	return nil
}

// ParseLogisticModel decodes a YAML model with strict field checking.
func ParseLogisticModel(r io.Reader) (*LogisticModel, error) {
	var m LogisticModel
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing logistic model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadLogisticModel reads a YAML model file.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading logistic model: %w", err)
	}
	return ParseLogisticModel(bytes.NewReader(data))
}

// Logistic predicts with a LogisticModel.
type Logistic struct {
	intercept float64
	stats     []string // sorted stat names
	coefs     []float64
	sample    bool
	rng       *rand.Rand
}

// NewLogistic builds a predictor from a validated model.
func NewLogistic(m LogisticModel, rng *rand.Rand) (*Logistic, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Sample && rng == nil {
		return nil, fmt.Errorf("logistic model in sample mode needs an RNG")
	}
	l := &Logistic{intercept: m.Intercept, sample: m.Sample, rng: rng}
	for name := range m.Coefficients {
		l.stats = append(l.stats, name)
	}
	sort.Strings(l.stats)
	for _, name := range l.stats {
		l.coefs = append(l.coefs, m.Coefficients[name])
	}
	return l, nil
}

// Name implements sim.Named.
func (*Logistic) Name() string { return NameLogistic }

// Probability returns P(a beats b).
func (l *Logistic) Probability(a, b sim.TeamID, stats sim.StatsView) (float64, error) {
	ta, tb, err := lookup(stats, a, b)
	if err != nil {
		return 0, err
	}
	diff := make([]float64, len(l.stats))
	for i, name := range l.stats {
		va, err := ta.Stat(name)
		if err != nil {
			return 0, err
		}
		vb, err := tb.Stat(name)
		if err != nil {
			return 0, err
		}
		diff[i] = va - vb
	}
	z := l.intercept + floats.Dot(l.coefs, diff)
	return 1 / (1 + math.Exp(-z)), nil
}

// Predict implements sim.Predictor.
func (l *Logistic) Predict(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	p, err := l.Probability(a, b, stats)
	if err != nil {
		return 0, err
	}
	if l.sample {
		if l.rng.Float64() < p {
			return a, nil
		}
		return b, nil
	}
	switch {
	case p > 0.5:
		return a, nil
	case p < 0.5:
		return b, nil
	default:
		return flip(l.rng, a, b), nil
	}
}
