package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id|url>",
	Short: "Delete a job and its assessments and drafts",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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
	if err := conn.DeleteJob(ctx, job.ID); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted job %s: %s at %s\n", job.ID, job.Title, job.Company)
	return nil
}
