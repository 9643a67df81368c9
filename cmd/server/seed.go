package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML fixture into the local database",
	Long: `Load crops, farmers with their plantings and alerts, weather readings and
extension officers from a YAML fixture. Running the same fixture twice leaves
the database unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), seedFile)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed/demo.yaml", "fixture to load")
}

func runSeed(ctx context.Context, path string) error {
	fixture, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	conn, err := localDB(cfg)
	if err != nil {
		return err
	}

	summary, err := seed.Apply(ctx, conn, fixture, time.Now())
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}

	common.GetLoggerWith(common.LoggerNameSeed).Info("fixture applied",
		zap.String("file", path),
		zap.Int("crops", summary.Crops),
		zap.Int("farmers", summary.Farmers),
		zap.Int("plantings", summary.Plantings),
		zap.Int("alerts", summary.Alerts),
		zap.Int("weather", summary.Weather),
		zap.Int("officers", summary.Officers))
	fmt.Printf("seeded %d farmers, %d plantings, %d alerts from %s\n", summary.Farmers, summary.Plantings, summary.Alerts, path)
	return nil
}
