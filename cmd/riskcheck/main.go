// riskcheck analyzes incident tables and produces risk metrics, executive
// summaries, and a governance risk register.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger

	// Flags shared by all subcommands.
	inputPath  string
	mysqlDSN   string
	mysqlTable string
	configPath string
	percentile float64
	rootCauses int
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "riskcheck",
		Short: "Incident risk analysis and register generation",
		Long: `riskcheck ingests a table of incident records and derives risk metrics:
per-category risk scores, resolution-time statistics, recurrence analysis,
and a tiered risk register usable by a governance process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	root.PersistentFlags().StringVar(&inputPath, "input", "", "Path to incident CSV file")
	root.PersistentFlags().StringVar(&mysqlDSN, "dsn", "", "MySQL DSN for loading incidents from a database table")
	root.PersistentFlags().StringVar(&mysqlTable, "table", "incidents", "MySQL table name (used with --dsn)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to options file (.toml, .yaml, .yml)")
	root.PersistentFlags().Float64Var(&percentile, "percentile", -1, "High-risk percentile threshold (0-100, default 75)")
	root.PersistentFlags().IntVar(&rootCauses, "top-root-causes", 0, "Number of root causes to report (default 10)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "riskcheck: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = l
	return nil
}
