package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskops/riskcheck/pkg/export"
	"github.com/riskops/riskcheck/pkg/register"
)

func newRegisterCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Generate the risk register CSV for high-risk categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAnalysis(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := register.Build(result, time.Now())
			if err != nil {
				return err
			}

			if err := export.WriteRegisterFile(output, entries); err != nil {
				return err
			}

			critical := 0
			for _, e := range entries {
				if e.Level == register.LevelCritical || e.Level == register.LevelHigh {
					critical++
				}
			}
			fmt.Printf("Risk register generated: %s\n", output)
			fmt.Printf("  Total risks identified: %d\n", len(entries))
			fmt.Printf("  Critical/High risks: %d\n", critical)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "risk_register.csv", "Risk register destination path")
	return cmd
}
