package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/config"
	"github.com/riskops/riskcheck/pkg/incident"
)

// loadOptions resolves engine options: config file first, then flag
// overrides on top.
func loadOptions() (analyzer.Options, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return analyzer.Options{}, err
		}
		cfg = loaded
	}
	opts, err := cfg.Options()
	if err != nil {
		return analyzer.Options{}, err
	}
	if percentile >= 0 {
		opts.Percentile = percentile
	}
	if rootCauses > 0 {
		opts.RootCauseLimit = rootCauses
	}
	return opts, nil
}

// loadTable loads the incident table from the configured source.
func loadTable(ctx context.Context) (incident.Table, error) {
	switch {
	case inputPath != "":
		table, err := incident.LoadCSV(inputPath)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded incident records", zap.String("source", inputPath), zap.Int("records", len(table)))
		return table, nil
	case mysqlDSN != "":
		table, err := incident.LoadMySQL(ctx, mysqlDSN, mysqlTable)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded incident records", zap.String("source", "mysql:"+mysqlTable), zap.Int("records", len(table)))
		return table, nil
	default:
		return nil, fmt.Errorf("no incident source: provide --input or --dsn")
	}
}

// runAnalysis loads the table and runs the full pipeline.
func runAnalysis(ctx context.Context) (*analyzer.Result, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}
	table, err := loadTable(ctx)
	if err != nil {
		return nil, err
	}

	result, err := analyzer.Run(table, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("analysis complete",
		zap.Int("categories", len(result.Scoring.Categories)),
		zap.Int("high_risk", len(result.Scoring.HighRisk)),
		zap.Float64("threshold", result.Scoring.Threshold))
	return result, nil
}
