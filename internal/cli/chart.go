package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/SreeTarak2/datavisuals/internal/chart"
)

func newChartCmd(cfgFile *string) *cobra.Command {
	var (
		datasetID string
		chartType string
		columns   string
		agg       string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Build a chart series from a stored dataset",
		Example: `  datavisuals chart --dataset <id> --type bar --columns category,revenue --agg sum
  datavisuals chart --dataset <id> --type histogram --columns price --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			spec, err := chart.NewSpec(chart.Type(chartType),
				strings.Split(columns, ","), chart.Aggregation(agg))
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ds, err := s.GetDataset(cmd.Context(), datasetID)
			if err != nil {
				return err
			}

			policy, err := cfg.Policy()
			if err != nil {
				return err
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			builder := chart.NewBuilder(cfg.Resolver(), policy, newLogger(verbose))

			res := builder.Build(spec, ds.Rows, ds.Columns)
			return renderResult(cmd.OutOrStdout(), res, output)
		},
	}

	cmd.Flags().StringVar(&datasetID, "dataset", "", "dataset id (required)")
	cmd.Flags().StringVar(&chartType, "type", "bar", "chart type: bar, line, pie, scatter, histogram")
	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated requested columns (required)")
	cmd.Flags().StringVar(&agg, "agg", "sum", "aggregation: sum, mean, count, distinct-count")
	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}
