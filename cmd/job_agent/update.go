package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id|url>",
	Short: "Re-fetch and re-extract an existing job",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var (
	updateBrowser bool
	updateStatic  bool
)

func init() {
	updateCmd.Flags().BoolVarP(&updateBrowser, "browser", "b", false, "Fetch with a headless browser only")
	updateCmd.Flags().BoolVar(&updateStatic, "static", false, "Fetch with plain HTTP only, no browser fallback")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	job, err := resolveJob(ctx, conn, args[0])
	if err != nil {
		return err
	}

	input, err := jobFromURL(ctx, job.URL, true, updateBrowser, updateStatic)
	if err != nil {
		return err
	}

	updated, err := conn.UpsertJob(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Updated job %s: %s at %s\n", updated.ID, updated.Title, updated.Company)
	return nil
}
