package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryuk2git/tuitiontier/pkg/core"
)

var (
	fieldArgs  []string
	recordFile string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Assign a tuition tier to one record",
	Long: `Assign a tuition tier to one record given as repeated --field name=value
flags or as a JSON object file (--record, "-" for stdin).

Example:
  tierctl predict --field penghasilan_ayah=3500000 --field luas_tanah=100-200m2 \
      --field bahan_tembok=Bata --field jenjang=Sarjana`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := readRecord()
		if err != nil {
			return err
		}
		a, err := setup()
		if err != nil {
			return err
		}
		t, err := a.engine.Infer(rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "category: %s\n", t)
		return nil
	},
}

func init() {
	predictCmd.Flags().StringArrayVarP(&fieldArgs, "field", "f", nil, "field value as name=value (repeatable)")
	predictCmd.Flags().StringVar(&recordFile, "record", "", "JSON file holding the record")
}

func readRecord() (core.Record, error) {
	rec := core.Record{}
	if recordFile != "" {
		var raw []byte
		var err error
		if recordFile == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(recordFile)
		}
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", recordFile, err)
		}
	}
	for _, kv := range fieldArgs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("--field %q: want name=value", kv)
		}
		rec[strings.TrimSpace(name)] = value
	}
	if len(rec) == 0 {
		return nil, fmt.Errorf("no fields given; use --field or --record")
	}
	return rec, nil
}
