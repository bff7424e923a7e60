// Package inference fits the tuition-tier pipeline once and serves predictions from it.
package inference

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/data"
	"github.com/ryuk2git/tuitiontier/pkg/dataprep"
	"github.com/ryuk2git/tuitiontier/pkg/metrics"
	"github.com/ryuk2git/tuitiontier/pkg/model"
	"github.com/ryuk2git/tuitiontier/pkg/pipeline"
)

const (
	// Clusters is the fixed number of tuition tiers.
	Clusters = 2
	// Components caps the number of principal components kept.
	Components = 3
)

// Options controls the cluster fit.
type Options struct {
	Seed    int64
	NInit   int
	MaxIter int
	Tol     float64
}

// DefaultOptions mirrors the k-means defaults: seed 42, 10 initialisations, 300 iterations.
func DefaultOptions() Options {
	return Options{
		Seed:    model.DefaultSeed,
		NInit:   model.DefaultNInit,
		MaxIter: model.DefaultMaxIter,
		Tol:     model.DefaultTol,
	}
}

// Summary describes a completed fit.
type Summary struct {
	RowsUsed         int
	RowsEmpty        int // every feature missing
	RowsViolation    int // categorical value outside its vocabulary
	DroppedFeatures  []string
	ExplainedRatio   []float64
	Inertia          float64
	Silhouette       float64 // NaN when undefined (a single non-empty cluster)
	ClusterSizes     []int
	KMeansIterations int
}

// Artifacts is the immutable result of a fit. Every field is written once by Train
// and only read afterwards, so one Artifacts value may back any number of engines
// and concurrent inferences.
type Artifacts struct {
	Schema       pipeline.Schema
	Normalizer   *dataprep.Normalizer
	Preprocessor *pipeline.Preprocessor
	Projector    *model.PCA
	Model        *model.KMeans
	Projected    [][]float64 // training rows in component space
	Labels       []int       // cluster of each projected row
	Summary      Summary
}

// Train restricts schema to the dataset's columns, normalizes every row and fits
// imputer, scaler, projector and cluster model in that order. Rows whose features
// are all missing, and rows with an out-of-vocabulary categorical value, are skipped.
func Train(ds *data.Dataset, schema pipeline.Schema, opts Options, log zerolog.Logger) (*Artifacts, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", core.ErrFitPrecondition)
	}
	restricted, dropped := schema.Restrict(ds.Columns)
	if len(dropped) > 0 {
		log.Warn().Strs("features", dropped).Msg("configured features absent from dataset; dropped")
	}
	if len(restricted.Fields) == 0 {
		return nil, fmt.Errorf("%w: dataset has none of the configured features", core.ErrFitPrecondition)
	}
	norm, err := restricted.Normalizer()
	if err != nil {
		return nil, err
	}

	sum := Summary{DroppedFeatures: dropped}
	X := make([][]float64, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		vec, err := norm.Normalize(row)
		switch {
		case errors.Is(err, core.ErrSchemaViolation):
			sum.RowsViolation++
			log.Debug().Int("row", i).Err(err).Msg("skipping training row")
			continue
		case err != nil:
			return nil, fmt.Errorf("row %d: %w", i, err)
		case vec.AllMissing():
			sum.RowsEmpty++
			continue
		}
		X = append(X, vec)
	}
	sum.RowsUsed = len(X)
	if len(X) < Clusters {
		return nil, fmt.Errorf("%w: %d usable rows, need at least %d", core.ErrFitPrecondition, len(X), Clusters)
	}

	pre := pipeline.NewPreprocessor(restricted.Names())
	Z, err := pre.Fit(X)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}

	pca := model.NewPCA(Components)
	if err := pca.Fit(Z); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	P := make([][]float64, len(Z))
	for i, z := range Z {
		if P[i], err = pca.Transform(z); err != nil {
			return nil, fmt.Errorf("project row %d: %w", i, err)
		}
	}

	km := model.NewKMeans(Clusters, opts.MaxIter)
	km.NInit, km.Tol, km.Seed = opts.NInit, opts.Tol, opts.Seed
	if err := km.Fit(P); err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	labels, err := km.PredictAll(P)
	if err != nil {
		return nil, err
	}

	sum.ExplainedRatio = pca.Ratio
	sum.Inertia = km.Inertia
	sum.KMeansIterations = km.Iterations
	sum.ClusterSizes = make([]int, Clusters)
	for _, l := range labels {
		sum.ClusterSizes[l]++
	}
	if sum.Silhouette, err = model.Silhouette(P, labels); err != nil {
		log.Warn().Err(err).Msg("silhouette undefined")
		sum.Silhouette = core.Missing
	}

	record(sum)
	log.Info().
		Int("rows", sum.RowsUsed).
		Int("rows_empty", sum.RowsEmpty).
		Int("rows_violation", sum.RowsViolation).
		Int("features", len(restricted.Fields)).
		Floats64("explained_ratio", sum.ExplainedRatio).
		Float64("inertia", sum.Inertia).
		Float64("silhouette", sum.Silhouette).
		Ints("cluster_sizes", sum.ClusterSizes).
		Msg("model fitted")

	return &Artifacts{
		Schema:       restricted,
		Normalizer:   norm,
		Preprocessor: pre,
		Projector:    pca,
		Model:        km,
		Projected:    P,
		Labels:       labels,
		Summary:      sum,
	}, nil
}

func record(s Summary) {
	metrics.TrainingRows.WithLabelValues("used").Set(float64(s.RowsUsed))
	metrics.TrainingRows.WithLabelValues("empty").Set(float64(s.RowsEmpty))
	metrics.TrainingRows.WithLabelValues("schema_violation").Set(float64(s.RowsViolation))
	metrics.ClusterInertia.Set(s.Inertia)
	for i, r := range s.ExplainedRatio {
		metrics.ExplainedVarianceRatio.WithLabelValues(strconv.Itoa(i)).Set(r)
	}
}
