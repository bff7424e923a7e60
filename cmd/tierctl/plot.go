package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryuk2git/tuitiontier/pkg/report"
)

var plotOut string

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Fit, then draw the training rows on the first two principal components",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		if err := report.SaveClusterPlot(a.art.Projected, a.art.Labels, a.art.Model.Centroids, plotOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved cluster plot to %s\n", plotOut)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "tiers.png", "output image (.png, .svg or .pdf)")
}
