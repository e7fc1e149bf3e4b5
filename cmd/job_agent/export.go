package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
)

var exportCmd = &cobra.Command{
	Use:   "export [id|url]",
	Short: "Export jobs as JSON or CSV",
	Long: "Export a single job, the jobs matching --query, or the whole database. " +
		"Output goes to stdout unless --output names a file.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
	exportQuery  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Export only jobs matching this search")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		return fmt.Errorf("unsupported format %q (use json or csv)", exportFormat)
	}
	if len(args) > 0 && exportQuery != "" {
		return fmt.Errorf("provide either a job reference or --query, not both")
	}

	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	var jobs []db.Job
	switch {
	case len(args) > 0:
		job, err := resolveJob(ctx, conn, args[0])
		if err != nil {
			return err
		}
		jobs = []db.Job{*job}
	case exportQuery != "":
		jobs, err = conn.FindJobs(ctx, exportQuery)
	default:
		jobs, err = conn.ListJobs(ctx, 0)
	}
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if exportFormat == "csv" {
		err = writeJobsCSV(out, jobs)
	} else {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(jobs)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stdout, "Exported %d job(s) to %s\n", len(jobs), exportOutput)
	}
	return nil
}

func writeJobsCSV(out io.Writer, jobs []db.Job) error {
	w := csv.NewWriter(out)
	header := []string{"id", "url", "title", "company", "location", "deadline",
		"department", "hiring_manager", "github_issue", "created_at"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, j := range jobs {
		issue := ""
		if j.GitHubIssueNumber != nil {
			issue = strconv.Itoa(*j.GitHubIssueNumber)
		}
		record := []string{
			j.ID.String(), j.URL, j.Title, j.Company, j.Location, j.Deadline,
			j.Department, j.HiringManager, issue, j.CreatedAt.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
