package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
	"github.com/jonathan/job-agent/internal/llm"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate and manage application drafts",
}

var draftWriteCmd = &cobra.Command{
	Use:   "write <id|url>",
	Short: "Generate a tailored CV and cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftWrite,
}

var draftLsCmd = &cobra.Command{
	Use:   "ls <id|url>",
	Short: "List drafts for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftLs,
}

var draftViewCmd = &cobra.Command{
	Use:   "view <id|url>",
	Short: "Print a draft's documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftView,
}

var draftRmCmd = &cobra.Command{
	Use:   "rm <id|url>",
	Short: "Delete drafts for a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftRm,
}

var (
	draftNoCV         bool
	draftNoLetter     bool
	draftCVSource     string
	draftLetterSource string
	draftID           string
)

func init() {
	draftWriteCmd.Flags().BoolVar(&draftNoCV, "no-cv", false, "Skip the CV")
	draftWriteCmd.Flags().BoolVar(&draftNoLetter, "no-letter", false, "Skip the cover letter")
	draftWriteCmd.Flags().StringVar(&draftCVSource, "cv-source", "", "Source CV file to tailor")
	draftWriteCmd.Flags().StringVar(&draftLetterSource, "letter-source", "", "Source cover letter file to tailor")
	draftViewCmd.Flags().StringVarP(&draftID, "id", "i", "", "Draft ID (defaults to the newest draft)")
	draftRmCmd.Flags().StringVarP(&draftID, "id", "i", "", "Delete a single draft by ID instead of all")

	draftCmd.AddCommand(draftWriteCmd, draftLsCmd, draftViewCmd, draftRmCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftWrite(cmd *cobra.Command, args []string) error {
	if draftNoCV && draftNoLetter {
		return fmt.Errorf("nothing to generate: both --no-cv and --no-letter set")
	}

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

	cvSource := firstNonEmpty(draftCVSource, settings.App.CVSource)
	letterSource := firstNonEmpty(draftLetterSource, settings.App.LetterSource)

	req := llm.DraftRequest{JobText: job.FullAd}
	if !draftNoCV {
		if cvSource == "" {
			return fmt.Errorf("no CV source: provide --cv-source or set [job.app] cv in job.toml")
		}
		content, err := os.ReadFile(cvSource)
		if err != nil {
			return fmt.Errorf("failed to read CV source: %w", err)
		}
		req.CVSource = string(content)
	}
	if !draftNoLetter {
		if letterSource == "" {
			return fmt.Errorf("no letter source: provide --letter-source or set [job.app] letter in job.toml")
		}
		content, err := os.ReadFile(letterSource)
		if err != nil {
			return fmt.Errorf("failed to read letter source: %w", err)
		}
		req.LetterSource = string(content)
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	model := settings.GetModel(firstNonEmpty(modelFlag, settings.App.Model))
	log.Debug().Str("model", model).Msg("generating application draft")

	result, err := llm.WriteDraft(ctx, client, model, req)
	if err != nil {
		return err
	}

	input := &db.AppDraftCreateInput{
		JobID:     job.ID,
		ModelName: model,
		Notes:     result.Notes,
	}
	if !draftNoCV {
		input.CVContent = result.CVContent
		input.SourceCVPath = cvSource
	}
	if !draftNoLetter {
		input.LetterContent = result.LetterContent
		input.SourceLetterPath = letterSource
	}

	draft, err := conn.CreateAppDraft(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Generated draft %s for job %s: %s\n", draft.ID, job.ID, job.Title)
	if draft.CVContent != nil {
		fmt.Fprintf(os.Stdout, "  CV tailored (%d chars)\n", len(*draft.CVContent))
	}
	if draft.LetterContent != nil {
		fmt.Fprintf(os.Stdout, "  Cover letter tailored (%d chars)\n", len(*draft.LetterContent))
	}
	if draft.Notes != "" {
		fmt.Fprintf(os.Stdout, "  Notes: %s\n", draft.Notes)
	}
	return nil
}

func runDraftLs(cmd *cobra.Command, args []string) error {
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
	drafts, err := conn.ListAppDrafts(ctx, job.ID)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Model", "CV", "Letter", "Created", "Notes"})
	for _, d := range drafts {
		t.AppendRow(table.Row{
			shortID(d.ID),
			d.ModelName,
			yesNo(d.CVContent != nil),
			yesNo(d.LetterContent != nil),
			d.CreatedAt.Format("2006-01-02 15:04"),
			truncate(d.Notes, 40),
		})
	}
	t.AppendFooter(table.Row{"Total", len(drafts)})
	t.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runDraftView(cmd *cobra.Command, args []string) error {
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

	var draft *db.AppDraft
	if draftID != "" {
		id, err := uuid.Parse(draftID)
		if err != nil {
			return fmt.Errorf("invalid draft ID: %s", draftID)
		}
		draft, err = conn.GetAppDraft(ctx, id)
		if err != nil {
			return err
		}
	} else {
		drafts, err := conn.ListAppDrafts(ctx, job.ID)
		if err != nil {
			return err
		}
		if len(drafts) > 0 {
			draft = &drafts[0]
		}
	}
	if draft == nil {
		return fmt.Errorf("no draft found for job %s", job.ID)
	}

	if draft.CVContent != nil {
		fmt.Fprintf(os.Stdout, "=== CV ===\n\n%s\n\n", *draft.CVContent)
	}
	if draft.LetterContent != nil {
		fmt.Fprintf(os.Stdout, "=== Cover Letter ===\n\n%s\n\n", *draft.LetterContent)
	}
	if draft.Notes != "" {
		fmt.Fprintf(os.Stdout, "=== Notes ===\n\n%s\n", draft.Notes)
	}
	return nil
}

func runDraftRm(cmd *cobra.Command, args []string) error {
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

	if draftID != "" {
		id, err := uuid.Parse(draftID)
		if err != nil {
			return fmt.Errorf("invalid draft ID: %s", draftID)
		}
		if err := conn.DeleteAppDraft(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted draft %s\n", id)
		return nil
	}

	n, err := conn.DeleteAppDraftsByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted %d draft(s) for job %s\n", n, job.ID)
	return nil
}
