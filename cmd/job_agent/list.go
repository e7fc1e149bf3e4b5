package main

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored jobs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listLimit int

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 100, "Maximum number of jobs to show")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	jobs, err := conn.ListJobs(ctx, listLimit)
	if err != nil {
		return err
	}

	renderJobTable(jobs)
	return nil
}

func renderJobTable(jobs []db.Job) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Company", "Location", "Deadline", "Issue"})

	for _, j := range jobs {
		issue := ""
		if j.GitHubIssueNumber != nil {
			issue = "#" + strconv.Itoa(*j.GitHubIssueNumber)
		}
		t.AppendRow(table.Row{
			shortID(j.ID),
			truncate(j.Title, 40),
			truncate(j.Company, 24),
			truncate(j.Location, 20),
			j.Deadline,
			issue,
		})
	}

	t.AppendFooter(table.Row{"Total", len(jobs)})
	t.Render()
}
