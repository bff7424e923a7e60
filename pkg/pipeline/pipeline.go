package pipeline

import (
	"fmt"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/dataprep"
	"github.com/ryuk2git/tuitiontier/pkg/stats"
)

// Step is a fit-once, transform-many stage. Transform must not modify its input
// and must be safe for concurrent use once Fit has returned.
type Step interface {
	Fit(X [][]float64) error
	Transform(x []float64) ([]float64, error)
}

// Pipeline chains multiple steps.
type Pipeline struct {
	steps  []Step
	fitted bool
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Fit fits each step on the output of the previous one and returns the fully
// transformed training matrix. A second call fails with core.ErrAlreadyFitted.
func (p *Pipeline) Fit(X [][]float64) ([][]float64, error) {
	if p.fitted {
		return nil, fmt.Errorf("pipeline: %w", core.ErrAlreadyFitted)
	}
	for i, step := range p.steps {
		if err := step.Fit(X); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		next := make([][]float64, len(X))
		for r, row := range X {
			out, err := step.Transform(row)
			if err != nil {
				return nil, fmt.Errorf("step %d row %d: %w", i, r, err)
			}
			next[r] = out
		}
		X = next
	}
	p.fitted = true
	return X, nil
}

// Transform runs x through every step.
func (p *Pipeline) Transform(x []float64) ([]float64, error) {
	if !p.fitted {
		return nil, core.ErrNotFitted
	}
	var err error
	for _, step := range p.steps {
		if x, err = step.Transform(x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Preprocessor is median imputation followed by standardization.
type Preprocessor struct {
	*Pipeline
	Imputer *dataprep.MedianImputer
	Scaler  *stats.StandardScaler
}

// NewPreprocessor creates an unfitted preprocessor. columns names the features for error messages.
func NewPreprocessor(columns []string) *Preprocessor {
	imp := dataprep.NewMedianImputer(columns)
	sc := stats.NewStandardScaler()
	return &Preprocessor{
		Pipeline: NewPipeline(imp, sc),
		Imputer:  imp,
		Scaler:   sc,
	}
}
