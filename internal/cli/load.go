package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
	"github.com/SreeTarak2/datavisuals/internal/drill"
)

func newLoadCmd(cfgFile *string) *cobra.Command {
	var hierarchiesFile string

	cmd := &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Load a CSV dataset into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			ds, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if err := s.SaveDataset(ctx, ds); err != nil {
				return err
			}

			if hierarchiesFile == "" {
				hierarchiesFile = cfg.HierarchiesFile
			}
			if hierarchiesFile != "" {
				catalog, err := drill.LoadCatalogFile(hierarchiesFile)
				if err != nil {
					return err
				}
				if err := s.SaveHierarchies(ctx, ds.ID, catalog.List()); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: id=%s columns=%d rows=%d\n",
				ds.Name, ds.ID, len(ds.Columns), len(ds.Rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&hierarchiesFile, "hierarchies", "", "YAML file of hierarchy definitions to attach")
	return cmd
}
