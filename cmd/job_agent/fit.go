package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
	"github.com/jonathan/job-agent/internal/llm"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Generate and manage fit assessments",
}

var fitRunCmd = &cobra.Command{
	Use:   "run <id|url>",
	Short: "Assess how well you fit a job",
	Long: "Send the job ad and your context documents (CV, bio, notes) to the AI " +
		"and store the resulting fit assessment.",
	Args: cobra.ExactArgs(1),
	RunE: runFitRun,
}

var fitLsCmd = &cobra.Command{
	Use:   "ls <id|url>",
	Short: "List assessments for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runFitLs,
}

var fitViewCmd = &cobra.Command{
	Use:   "view <id|url>",
	Short: "Display a stored assessment in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runFitView,
}

var fitRmCmd = &cobra.Command{
	Use:   "rm <id|url>",
	Short: "Delete assessments for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runFitRm,
}

var (
	fitContextFiles []string
	fitViewID       string
	fitRmID         string
)

func init() {
	fitRunCmd.Flags().StringSliceVarP(&fitContextFiles, "context", "c", nil, "Context file (CV, bio); repeatable")
	fitViewCmd.Flags().StringVarP(&fitViewID, "id", "i", "", "Assessment ID (defaults to the newest)")
	fitRmCmd.Flags().StringVarP(&fitRmID, "id", "i", "", "Delete a single assessment by ID instead of all")

	fitCmd.AddCommand(fitRunCmd, fitLsCmd, fitViewCmd, fitRmCmd)
	rootCmd.AddCommand(fitCmd)
}

func runFitRun(cmd *cobra.Command, args []string) error {
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

	contextPaths := fitContextFiles
	if len(contextPaths) == 0 {
		contextPaths = settings.Fit.Context
	}
	contextText, readPaths, err := readContextFiles(contextPaths)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	model := settings.GetModel(firstNonEmpty(modelFlag, settings.Fit.Model))
	log.Debug().Str("model", model).Int("context_files", len(readPaths)).Msg("assessing fit")

	result, err := llm.AssessFit(ctx, client, model, job.FullAd, contextText)
	if err != nil {
		return err
	}

	assessment, err := conn.CreateFitAssessment(ctx, &db.FitAssessmentCreateInput{
		JobID:           job.ID,
		ModelName:       model,
		Score:           result.Score,
		Summary:         result.Summary,
		Strengths:       result.Strengths,
		Gaps:            result.Gaps,
		Recommendations: result.Recommendations,
		KeyInsights:     result.KeyInsights,
		ContextFiles:    readPaths,
	})
	if err != nil {
		return err
	}

	displayAssessment(os.Stdout, job, assessment)
	return nil
}

func displayAssessment(w io.Writer, job *db.Job, a *db.FitAssessment) {
	fmt.Fprintf(w, "\n%s at %s\n%s\n\n", job.Title, job.Company, job.URL)
	fmt.Fprintf(w, "Overall Fit: %d/100 (%s)\n\n%s\n", a.Score, db.ScoreLabel(a.Score), a.Summary)

	fmt.Fprintf(w, "\nStrengths:\n")
	for _, s := range a.Strengths {
		fmt.Fprintf(w, "  + %s\n", s)
	}
	fmt.Fprintf(w, "\nGaps:\n")
	for _, g := range a.Gaps {
		fmt.Fprintf(w, "  - %s\n", g)
	}
	fmt.Fprintf(w, "\nRecommendations:\n%s\n", a.Recommendations)
	fmt.Fprintf(w, "\nKey Insights:\n%s\n", a.KeyInsights)
	fmt.Fprintf(w, "\nAssessment %s (model %s)\n", a.ID, a.ModelName)
}

func runFitLs(cmd *cobra.Command, args []string) error {
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
	assessments, err := conn.ListFitAssessments(ctx, job.ID)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Score", "Model", "Created", "Context"})
	for _, a := range assessments {
		var names []string
		for _, p := range a.ContextFiles {
			names = append(names, filepath.Base(p))
		}
		t.AppendRow(table.Row{
			shortID(a.ID),
			fmt.Sprintf("%d (%s)", a.Score, db.ScoreLabel(a.Score)),
			a.ModelName,
			a.CreatedAt.Format("2006-01-02 15:04"),
			truncate(strings.Join(names, ", "), 40),
		})
	}
	t.AppendFooter(table.Row{"Total", len(assessments)})
	t.Render()
	return nil
}

func runFitView(cmd *cobra.Command, args []string) error {
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

	var assessment *db.FitAssessment
	if fitViewID != "" {
		id, err := uuid.Parse(fitViewID)
		if err != nil {
			return fmt.Errorf("invalid assessment ID: %s", fitViewID)
		}
		assessment, err = conn.GetFitAssessment(ctx, id)
		if err != nil {
			return err
		}
	} else {
		assessments, err := conn.ListFitAssessments(ctx, job.ID)
		if err != nil {
			return err
		}
		if len(assessments) > 0 {
			assessment = &assessments[0]
		}
	}
	if assessment == nil {
		return fmt.Errorf("no assessment found for job %s", job.ID)
	}

	displayAssessment(os.Stdout, job, assessment)
	return nil
}

func runFitRm(cmd *cobra.Command, args []string) error {
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

	if fitRmID != "" {
		id, err := uuid.Parse(fitRmID)
		if err != nil {
			return fmt.Errorf("invalid assessment ID: %s", fitRmID)
		}
		if err := conn.DeleteFitAssessment(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted assessment %s\n", id)
		return nil
	}

	n, err := conn.DeleteFitAssessmentsByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted %d assessment(s) for job %s\n", n, job.ID)
	return nil
}
