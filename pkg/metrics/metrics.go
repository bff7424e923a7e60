// Package metrics holds the Prometheus collectors for fitting and inference.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InferencesTotal counts inference requests by outcome:
	// a tier label, "schema_violation", "incomplete_input" or "error".
	InferencesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuitiontier_inferences_total",
			Help: "Total number of inference requests by outcome",
		},
		[]string{"outcome"},
	)

	// InferenceDuration tracks time spent in a single inference.
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tuitiontier_inference_duration_seconds",
			Help:    "Time spent normalizing, transforming and assigning one record",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	// TrainingRows reports rows used and dropped by the last fit.
	TrainingRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tuitiontier_training_rows",
			Help: "Training rows by status (used, empty, schema_violation)",
		},
		[]string{"status"},
	)

	// ClusterInertia is the within-cluster sum of squares of the fitted model.
	ClusterInertia = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tuitiontier_cluster_inertia",
			Help: "Within-cluster sum of squared distances of the fitted model",
		},
	)

	// ExplainedVarianceRatio is the explained variance ratio per principal component.
	ExplainedVarianceRatio = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tuitiontier_explained_variance_ratio",
			Help: "Explained variance ratio of each principal component",
		},
		[]string{"component"},
	)
)
