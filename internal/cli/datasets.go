package cli

import (
	"github.com/spf13/cobra"
)

func newDatasetsCmd(cfgFile *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List datasets in the catalog",
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

			infos, err := s.ListDatasets(cmd.Context())
			if err != nil {
				return err
			}
			return renderDatasets(cmd.OutOrStdout(), infos, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "table", "output format: table or json")
	return cmd
}
