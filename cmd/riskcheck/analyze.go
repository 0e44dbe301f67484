package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskops/riskcheck/pkg/reporter"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full risk analysis and print the executive summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			reportFormat, err := reporter.ParseFormat(format)
			if err != nil {
				return err
			}

			result, err := runAnalysis(cmd.Context())
			if err != nil {
				return err
			}

			data, err := reporter.NewReporter(reportFormat).Generate(result)
			if err != nil {
				return fmt.Errorf("generate report: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Printf("Report written to %s\n", output)
				return nil
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Report format (text, markdown, json)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (default: stdout)")
	return cmd
}
