package inference

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/metrics"
	"github.com/ryuk2git/tuitiontier/pkg/tier"
)

// Policy decides how missing fields in an inference record are handled.
type Policy int

const (
	// PolicyStrict rejects a record if any configured field is missing or unparseable.
	PolicyStrict Policy = iota
	// PolicyLenient imputes missing fields with the training medians and rejects
	// only records in which every configured field is missing.
	PolicyLenient
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyLenient:
		return "lenient"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "strict" or "lenient".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return PolicyStrict, nil
	case "lenient":
		return PolicyLenient, nil
	}
	return PolicyStrict, fmt.Errorf("unknown completeness policy %q", s)
}

// Engine runs single records through fitted artifacts. It never mutates the
// artifacts and is safe for concurrent use.
type Engine struct {
	art    *Artifacts
	policy Policy
	log    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the completeness policy (default PolicyStrict).
func WithPolicy(p Policy) Option { return func(e *Engine) { e.policy = p } }

// WithLogger sets the logger used for rejected records.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine returns an engine backed by art.
func NewEngine(art *Artifacts, opts ...Option) (*Engine, error) {
	if art == nil || art.Normalizer == nil || art.Preprocessor == nil || art.Projector == nil || art.Model == nil {
		return nil, fmt.Errorf("inference: %w", core.ErrNotFitted)
	}
	e := &Engine{art: art, policy: PolicyStrict, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the engine's completeness policy.
func (e *Engine) Policy() Policy { return e.policy }

// Artifacts returns the fitted state behind the engine. Callers must not modify it.
func (e *Engine) Artifacts() *Artifacts { return e.art }

// Prediction is a resolved tier with the cluster it came from.
type Prediction struct {
	Tier    tier.Tier
	Cluster int
}

// Infer normalizes rec, applies the completeness gate, then runs preprocessing,
// projection and cluster assignment and resolves the tier.
// Rejections wrap core.ErrSchemaViolation or core.ErrIncompleteInput.
func (e *Engine) Infer(rec core.Record) (tier.Tier, error) {
	p, err := e.Predict(rec)
	return p.Tier, err
}

// Predict is Infer that also reports the cluster index.
func (e *Engine) Predict(rec core.Record) (Prediction, error) {
	start := time.Now()
	cluster, err := e.cluster(rec)
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferencesTotal.WithLabelValues(outcome(err)).Inc()
		e.log.Debug().Err(err).Msg("record rejected")
		return Prediction{Tier: tier.Unresolved, Cluster: -1}, err
	}
	t := tier.Resolve(cluster)
	metrics.InferencesTotal.WithLabelValues(t.String()).Inc()
	return Prediction{Tier: t, Cluster: cluster}, nil
}

func (e *Engine) cluster(rec core.Record) (int, error) {
	vec, err := e.art.Normalizer.Normalize(rec)
	if err != nil {
		return 0, err
	}
	if err := e.checkComplete(vec); err != nil {
		return 0, err
	}
	x, err := e.art.Preprocessor.Transform(vec)
	if err != nil {
		return 0, err
	}
	p, err := e.art.Projector.Transform(x)
	if err != nil {
		return 0, err
	}
	return e.art.Model.Predict(p)
}

func (e *Engine) checkComplete(vec core.Vector) error {
	missing := vec.MissingIndices()
	if len(missing) == 0 {
		return nil
	}
	if e.policy == PolicyLenient && len(missing) < len(vec) {
		return nil
	}
	fields := e.art.Normalizer.Fields()
	names := make([]string, len(missing))
	for i, j := range missing {
		names[i] = fields[j].Name
	}
	return fmt.Errorf("%w: missing or invalid %s", core.ErrIncompleteInput, strings.Join(names, ", "))
}

// Result is the outcome of one record in InferBatch.
type Result struct {
	Tier tier.Tier
	Err  error
}

// InferBatch runs Infer on each record. One rejected record does not stop the batch.
func (e *Engine) InferBatch(recs []core.Record) []Result {
	out := make([]Result, len(recs))
	for i, r := range recs {
		out[i].Tier, out[i].Err = e.Infer(r)
	}
	return out
}

// IsRejection reports whether err is a user-facing record rejection rather than an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, core.ErrSchemaViolation) || errors.Is(err, core.ErrIncompleteInput)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, core.ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, core.ErrIncompleteInput):
		return "incomplete_input"
	default:
		return "error"
	}
}
