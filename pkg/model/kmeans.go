package model

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ryuk2git/tuitiontier/pkg/core"
	"github.com/ryuk2git/tuitiontier/pkg/stats"
)

// Defaults for KMeans fields.
const (
	DefaultNInit   = 10
	DefaultMaxIter = 300
	DefaultTol     = 1e-4
	DefaultSeed    = 42
)

// KMeans is an unsupervised learning model that partitions data points into K clusters.
type KMeans struct {
	K       int
	MaxIter int
	NInit   int     // independent k-means++ initialisations; the lowest inertia wins
	Tol     float64 // convergence threshold, relative to the mean column variance
	Seed    int64   // run r draws from rand.NewSource(Seed + r)

	Centroids  [][]float64
	Inertia    float64 // Sum of squared distances to nearest centroid
	Iterations int     // Lloyd iterations of the winning run
}

// NewKMeans creates and returns a new KMeans model with specified K and max iterations.
func NewKMeans(k int, maxIter int) *KMeans {
	return &KMeans{
		K:       k,
		MaxIter: maxIter,
		NInit:   DefaultNInit,
		Tol:     DefaultTol,
		Seed:    DefaultSeed,
	}
}

type kmeansRun struct {
	centroids  [][]float64
	inertia    float64
	iterations int
}

// Fit runs NInit seeded initialisations concurrently and keeps the one with the lowest
// inertia (ties go to the earliest run). Each run owns its random source, so the result
// does not depend on scheduling.
func (m *KMeans) Fit(X [][]float64) error {
	if m.Centroids != nil {
		return ErrAlreadyFitted
	}
	if m.K < 1 || m.MaxIter < 1 || m.NInit < 1 {
		return fmt.Errorf("kmeans: K, MaxIter and NInit must be positive (got %d, %d, %d)", m.K, m.MaxIter, m.NInit)
	}
	n := len(X)
	if n < m.K {
		return fmt.Errorf("%w: %d rows for %d clusters", ErrInsufficientData, n, m.K)
	}
	p := len(X[0])
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("%w: row %d has %d columns, want %d", core.ErrDimensionMismatch, i, len(row), p)
		}
	}

	tol := m.Tol * stats.MeanColumnVariance(X)
	runs := make([]kmeansRun, m.NInit)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := range runs {
		r := r
		g.Go(func() error {
			rng := rand.New(rand.NewSource(m.Seed + int64(r)))
			runs[r] = m.lloyd(X, m.initCenters(X, rng), tol)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	best := 0
	for r := 1; r < len(runs); r++ {
		if runs[r].inertia < runs[best].inertia {
			best = r
		}
	}
	m.Centroids = runs[best].centroids
	m.Inertia = runs[best].inertia
	m.Iterations = runs[best].iterations
	return nil
}

// lloyd refines centroids until assignments stop changing, the total centroid shift
// drops to tol, or MaxIter is reached.
func (m *KMeans) lloyd(X [][]float64, centroids [][]float64, tol float64) kmeansRun {
	n, p := len(X), len(X[0])
	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}

	it := 0
	for it < m.MaxIter {
		it++
		changed := false
		for i := 0; i < n; i++ {
			best, _ := nearest(X[i], centroids)
			if assign[i] != best {
				changed = true
				assign[i] = best
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, m.K)
		counts := make([]int, m.K)
		for k := range sums {
			sums[k] = make([]float64, p)
		}
		for i := 0; i < n; i++ {
			k := assign[i]
			counts[k]++
			for j := 0; j < p; j++ {
				sums[k][j] += X[i][j]
			}
		}

		next := make([][]float64, m.K)
		for k := 0; k < m.K; k++ {
			if counts[k] == 0 {
				continue
			}
			next[k] = make([]float64, p)
			for j := 0; j < p; j++ {
				next[k][j] = sums[k][j] / float64(counts[k])
			}
		}
		// Reseed empty clusters with the point farthest from its centroid.
		for k := 0; k < m.K; k++ {
			if next[k] != nil {
				continue
			}
			far, farDist := 0, -1.0
			for i := 0; i < n; i++ {
				c := next[assign[i]]
				if c == nil {
					continue
				}
				if d := stats.SquaredDistance(X[i], c); d > farDist {
					far, farDist = i, d
				}
			}
			next[k] = append([]float64(nil), X[far]...)
			assign[far] = k
		}

		shift := 0.0
		for k := 0; k < m.K; k++ {
			shift += stats.SquaredDistance(centroids[k], next[k])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia := 0.0
	for i := 0; i < n; i++ {
		_, d := nearest(X[i], centroids)
		inertia += d
	}
	return kmeansRun{centroids: centroids, inertia: inertia, iterations: it}
}

// Predict returns the index of the nearest centroid; ties go to the lowest index.
func (m *KMeans) Predict(x []float64) (int, error) {
	if m.Centroids == nil {
		return 0, core.ErrNotFitted
	}
	if len(x) != len(m.Centroids[0]) {
		return 0, fmt.Errorf("%w: got %d features, want %d", core.ErrDimensionMismatch, len(x), len(m.Centroids[0]))
	}
	best, _ := nearest(x, m.Centroids)
	return best, nil
}

// PredictAll assigns every row of X.
func (m *KMeans) PredictAll(X [][]float64) ([]int, error) {
	labels := make([]int, len(X))
	for i, x := range X {
		k, err := m.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		labels[i] = k
	}
	return labels, nil
}

// initCenters picks K starting centroids with k-means++ seeding.
func (m *KMeans) initCenters(X [][]float64, rng *rand.Rand) [][]float64 {
	n := len(X)
	centroids := make([][]float64, 0, m.K)

	// First center: pick randomly
	centroids = append(centroids, append([]float64(nil), X[rng.Intn(n)]...))

	// Remaining centers, proportional to squared distance from the nearest chosen one.
	distSq := make([]float64, n)
	for len(centroids) < m.K {
		total := 0.0
		for i, x := range X {
			_, distSq[i] = nearest(x, centroids)
			total += distSq[i]
		}
		idx := rng.Intn(n)
		if total > 0 {
			r := rng.Float64() * total
			cumulative := 0.0
			for i, d2 := range distSq {
				if d2 == 0 {
					continue
				}
				cumulative += d2
				idx = i
				if cumulative >= r {
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), X[idx]...))
	}
	return centroids
}

// nearest returns the closest centroid and its squared distance; ties go to the lowest index.
func nearest(x []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for k, c := range centroids {
		if d := stats.SquaredDistance(x, c); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, bestDist
}
