package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
)

var setCmd = &cobra.Command{
	Use:   "set <id|url> <field> <value>",
	Short: "Update one field of a job record",
	Long: "Set a single field on a stored job. Valid fields: " +
		strings.Join(db.UpdatableFieldNames(), ", ") + ". " +
		`Pass "null" to clear a field.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
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

	field := args[1]
	var value *string
	if args[2] != "null" {
		value = &args[2]
	}

	updated, err := conn.UpdateJobField(ctx, job.ID, field, value)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Updated %s on job %s\n", field, updated.ID)
	return nil
}
