package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		stats, err := conn.GetStats(ctx)
		if err != nil {
			return err
		}
		if dbStatsJSON {
			return printJSON(stats)
		}
		fmt.Fprintf(os.Stdout, "n_jobs: %d\n", stats.Jobs)
		fmt.Fprintf(os.Stdout, "n_fits: %d\n", stats.Assessments)
		fmt.Fprintf(os.Stdout, "n_apps: %d\n", stats.Drafts)
		return nil
	},
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tables and indexes if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Fprintln(os.Stdout, "Database schema is up to date")
		return nil
	},
}

var dbDelCmd = &cobra.Command{
	Use:   "del",
	Short: "Drop all tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dbDelForce {
			return fmt.Errorf("refusing to drop tables without --force")
		}
		ctx := cmd.Context()
		conn, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "All tables dropped")
		return nil
	},
}

var (
	dbStatsJSON bool
	dbDelForce  bool
)

func init() {
	dbStatsCmd.Flags().BoolVar(&dbStatsJSON, "json", false, "Output as JSON")
	dbDelCmd.Flags().BoolVar(&dbDelForce, "force", false, "Confirm dropping all tables")

	dbCmd.AddCommand(dbStatsCmd, dbInitCmd, dbDelCmd)
	rootCmd.AddCommand(dbCmd)
}
