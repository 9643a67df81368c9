package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"agroalert.dev/dashboard-service/pkg/config"
)

var (
	envFiles []string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agroalert",
	Short: "Agroalert dashboard service",
	Long: `Agroalert serves the farmer dashboards and the extension officer portal.

Configuration comes from AGRO_* environment variables, optionally loaded from
.env files (./.env by default).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFiles...)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load instead of ./.env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(officerCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
