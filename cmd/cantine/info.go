package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cantine/search/internal/recipe"
	"github.com/cantine/search/internal/recordstore"
	"github.com/cantine/search/pkg/feature"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <data-dir>",
		Short: "Report record count and a full-range aggregation snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
}

type infoReport struct {
	TotalRecords int               `json:"total_records"`
	Aggregation  feature.AggResult `json:"aggregation"`
}

// runInfo mirrors the `GET /info` endpoint's snapshot (spec §6) as a
// one-shot CLI report: total record count plus one full-range
// RangeStats per feature field, scanned directly off the record store
// rather than through the host index (no query to restrict the scan).
func runInfo(dataDir string) error {
	reader, err := recordstore.OpenReader(recordstore.ReaderConfig[recipe.Recipe]{
		DataDir: databaseDir(dataDir),
		Codec:   recordstore.JSONCodec[recipe.Recipe]{},
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	query := feature.FullRange(recipe.Schema)
	agg := feature.NewAggregator(recipe.Schema, query)
	result := agg.NewResult()

	if err := reader.Each(func(_ uint64, record recipe.Recipe) bool {
		agg.Collect(result, record.Features)
		return true
	}); err != nil {
		return err
	}

	report := infoReport{TotalRecords: reader.Len(), Aggregation: result}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
