package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryuk2git/tuitiontier/pkg/tier"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the pipeline on the dataset and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		s := a.art.Summary
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "features:        %v\n", a.art.Schema.Names())
		if len(s.DroppedFeatures) > 0 {
			fmt.Fprintf(out, "dropped:         %v\n", s.DroppedFeatures)
		}
		fmt.Fprintf(out, "rows used:       %d (empty %d, invalid %d)\n", s.RowsUsed, s.RowsEmpty, s.RowsViolation)
		fmt.Fprintf(out, "explained ratio: %.4f\n", s.ExplainedRatio)
		fmt.Fprintf(out, "inertia:         %.4f (%d iterations)\n", s.Inertia, s.KMeansIterations)
		fmt.Fprintf(out, "silhouette:      %.4f\n", s.Silhouette)
		for k, c := range a.art.Model.Centroids {
			fmt.Fprintf(out, "cluster %d (%s): %d rows, centroid %.4f\n", k, tier.Resolve(k), s.ClusterSizes[k], c)
		}
		return nil
	},
}
