package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search stored jobs by keyword",
	Long:  "Case-insensitive substring search across title, company, department, location, and ad text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	jobs, err := conn.FindJobs(ctx, args[0])
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintf(os.Stdout, "No jobs matching %q\n", args[0])
		return nil
	}

	renderJobTable(jobs)
	return nil
}
