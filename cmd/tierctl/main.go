package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ryuk2git/tuitiontier/pkg/config"
	"github.com/ryuk2git/tuitiontier/pkg/data"
	"github.com/ryuk2git/tuitiontier/pkg/inference"
	"github.com/ryuk2git/tuitiontier/pkg/logging"
	"github.com/ryuk2git/tuitiontier/pkg/pipeline"
)

var (
	envFile     string
	datasetPath string
	schemaPath  string
	policyName  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tierctl",
	Short: "Assign tuition tiers to student records by clustering",
	Long: `tierctl fits a median-impute, standardize, PCA and 2-means pipeline on a
student dataset and assigns new records to the low or high tuition tier.

Settings come from TIER_* environment variables (optionally from a .env file);
flags override them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading TIER_* variables")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "training CSV (overrides TIER_DATASET)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "YAML feature schema (overrides TIER_SCHEMA)")
	rootCmd.PersistentFlags().StringVar(&policyName, "policy", "", "completeness policy: strict or lenient (overrides TIER_POLICY)")

	rootCmd.AddCommand(fitCmd, predictCmd, serveCmd, plotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is everything a subcommand needs after startup.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	art    *inference.Artifacts
	engine *inference.Engine
}

// setup loads configuration, reads the dataset and fits the pipeline once.
func setup() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if datasetPath != "" {
		cfg.Dataset = datasetPath
	}
	if schemaPath != "" {
		cfg.Schema = schemaPath
	}
	if policyName != "" {
		cfg.Policy = policyName
	}
	policy, err := inference.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{Format: cfg.LogFormat, Level: cfg.LogLevel, Output: os.Stderr})
	if err != nil {
		return nil, err
	}

	schema := pipeline.DefaultSchema()
	if cfg.Schema != "" {
		f, err := os.Open(cfg.Schema)
		if err != nil {
			return nil, err
		}
		schema, err = pipeline.LoadSchema(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Schema, err)
		}
	}

	ds, err := data.ReadCSVFile(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dataset", cfg.Dataset).Int("rows", len(ds.Rows)).Msg("dataset loaded")

	opts := inference.Options{Seed: cfg.Seed, NInit: cfg.NInit, MaxIter: cfg.MaxIter, Tol: cfg.Tolerance}
	art, err := inference.Train(ds, schema, opts, log)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	engine, err := inference.NewEngine(art, inference.WithPolicy(policy), inference.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, art: art, engine: engine}, nil
}
