package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskops/riskcheck/pkg/export"
)

func newExportCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every derived table as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAnalysis(cmd.Context())
			if err != nil {
				return err
			}

			written, err := export.ExportAll(outputDir, result)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Printf("Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "output", "Directory for exported CSV files")
	return cmd
}
