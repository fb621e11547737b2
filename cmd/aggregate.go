package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/territory-cli/internal/fetcher"
	"github.com/sells-group/territory-cli/internal/territory"
)

var (
	aggregateInput   string
	aggregateOutput  string
	aggregateGroupBy string
	aggregateTopN    int
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate standardized records into territory metrics",
	Long: `Reads the standardize command's output and groups records into
territory-level metrics: business counts, franchise breakdowns, coordinate
validity, rating and classification-confidence means, and top sector /
subsector lists.

Examples:
  territory-cli aggregate --input businesses_standardized.json --group-by zip_code
  territory-cli aggregate --input businesses_standardized.json --group-by city --top-n 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := fetcher.LoadStandardizedRecords(aggregateInput)
		if err != nil {
			return eris.Wrap(err, "aggregate: load input")
		}

		metrics, err := territory.Aggregate(records, aggregateGroupBy, aggregateTopN)
		if err != nil {
			return err
		}

		outPath := aggregateOutput
		if outPath == "" {
			outPath = fmt.Sprintf("territory_metrics_by_%s.json", aggregateGroupBy)
		}
		if err := fetcher.WriteJSON(outPath, metrics); err != nil {
			return eris.Wrap(err, "aggregate: write output")
		}

		zap.L().Info("aggregate: complete",
			zap.String("group_by", aggregateGroupBy),
			zap.Int("territories", metrics.Summary.TerritoryCount),
			zap.Int("businesses", metrics.Summary.TotalBusinesses),
			zap.String("output", outPath),
		)
		return nil
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggregateInput, "input", "businesses_standardized.json", "path to standardized business JSON")
	aggregateCmd.Flags().StringVar(&aggregateOutput, "output", "", "metrics output path (default: territory_metrics_by_<group>.json)")
	aggregateCmd.Flags().StringVar(&aggregateGroupBy, "group-by", "zip_code", "grouping field: zip_code, blockgroup, or city")
	aggregateCmd.Flags().IntVar(&aggregateTopN, "top-n", 5, "top sectors/subsectors per territory (<=0 disables)")
	rootCmd.AddCommand(aggregateCmd)
}
