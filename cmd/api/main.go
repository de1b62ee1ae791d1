// cmd/api/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repairshop",
		Short: "Repair shop inventory reconciliation and goods-receipt service",
		RunE:  runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations.",
		Long:  `Creates or updates the Postgres schema and indexes. Only valid with STORE_BACKEND=postgres.`,
		RunE:  runMigrate,
	}
	migrateCmd.Flags().Bool("seed", false, "Seed the default catalog datasets")

	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
