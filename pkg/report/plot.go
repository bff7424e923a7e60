// Package report renders fitted clusters for inspection.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ryuk2git/tuitiontier/pkg/tier"
)

var clusterColors = []color.RGBA{
	{R: 46, G: 134, B: 193, A: 255},
	{R: 231, G: 76, B: 60, A: 255},
}

// ClusterPlot builds a scatter of the first two components of points, one series per
// cluster, with centroids drawn as crosses. One-dimensional points are drawn on y = 0.
func ClusterPlot(points [][]float64, labels []int, centroids [][]float64) (*plot.Plot, error) {
	if len(points) != len(labels) {
		return nil, fmt.Errorf("report: %d points, %d labels", len(points), len(labels))
	}
	p := plot.New()
	p.Title.Text = "Tuition tiers on principal components"
	p.X.Label.Text = "PC1"
	p.Y.Label.Text = "PC2"

	for k := range centroids {
		pts := make(plotter.XYs, 0)
		for i, l := range labels {
			if l == k {
				pts = append(pts, xy(points[i]))
			}
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.Color = clusterColors[k%len(clusterColors)]
		p.Add(s)
		p.Legend.Add(tier.Resolve(k).String(), s)
	}

	centroidPts := make(plotter.XYs, len(centroids))
	for i, c := range centroids {
		centroidPts[i] = xy(c)
	}
	c, err := plotter.NewScatter(centroidPts)
	if err != nil {
		return nil, err
	}
	c.Color = color.RGBA{A: 255}
	c.Shape = draw.CrossGlyph{}
	c.Radius = vg.Points(5)
	p.Add(c)
	return p, nil
}

// SaveClusterPlot writes ClusterPlot to filename; the format follows the extension (.png, .svg, .pdf).
func SaveClusterPlot(points [][]float64, labels []int, centroids [][]float64, filename string) error {
	p, err := ClusterPlot(points, labels, centroids)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

func xy(v []float64) plotter.XY {
	switch len(v) {
	case 0:
		return plotter.XY{}
	case 1:
		return plotter.XY{X: v[0]}
	default:
		return plotter.XY{X: v[0], Y: v[1]}
	}
}
