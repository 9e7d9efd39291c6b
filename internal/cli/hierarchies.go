package cli

import (
	"github.com/spf13/cobra"
)

func newHierarchiesCmd(cfgFile *string) *cobra.Command {
	var (
		datasetID string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "hierarchies",
		Short: "List drill-down hierarchies for a dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			hierarchies, err := s.ListHierarchies(cmd.Context(), datasetID)
			if err != nil {
				return err
			}
			return renderHierarchies(cmd.OutOrStdout(), hierarchies, output)
		},
	}

	cmd.Flags().StringVar(&datasetID, "dataset", "", "dataset id (required)")
	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}
