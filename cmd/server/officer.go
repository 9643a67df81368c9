package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/models"
)

var (
	officerName     string
	officerEmail    string
	officerRegion   string
	officerPassword string
)

var officerCmd = &cobra.Command{
	Use:   "officer",
	Short: "Manage extension officer accounts",
}

var officerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an extension officer who can sign in to the portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createOfficer(cmd.Context())
	},
}

func init() {
	officerCreateCmd.Flags().StringVar(&officerName, "name", "", "display name")
	officerCreateCmd.Flags().StringVar(&officerEmail, "email", "", "sign-in email")
	officerCreateCmd.Flags().StringVar(&officerRegion, "region", "", "region the officer covers")
	officerCreateCmd.Flags().StringVar(&officerPassword, "password", "", "sign-in password")
	_ = officerCreateCmd.MarkFlagRequired("email")
	_ = officerCreateCmd.MarkFlagRequired("password")

	officerCmd.AddCommand(officerCreateCmd)
}

func createOfficer(ctx context.Context) error {
	conn, err := localDB(cfg)
	if err != nil {
		return err
	}
	provider := auth.NewLocalProvider(conn, cfg.JWTSecret, cfg.SessionTTL)

	officer := &models.ExtensionOfficer{Name: officerName, Email: officerEmail, Region: officerRegion}
	if err := provider.CreateOfficer(ctx, officer, officerPassword); err != nil {
		return fmt.Errorf("create officer %s: %w", officerEmail, err)
	}
	fmt.Printf("created officer %s (%s)\n", officer.Email, officer.ID)
	return nil
}
