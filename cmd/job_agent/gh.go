package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/ghcli"
)

var ghCmd = &cobra.Command{
	Use:   "gh",
	Short: "GitHub issue integration",
}

var ghIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create a GitHub issue from a job posting",
	Long: "Publish a stored job as a GitHub issue. Jobs already posted are skipped " +
		"unless --force is set.",
	RunE: runGhIssue,
}

var ghCommentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Post a fit assessment as an issue comment",
	Long: "Format a stored assessment as markdown and post it to the job's issue. " +
		"Repo and issue number are auto-detected when the job was posted with 'job gh issue'.",
	RunE: runGhComment,
}

var (
	ghFromJob      string
	ghRepo         string
	ghForce        bool
	ghAssessmentID string
	ghIssueNumber  int
)

func init() {
	ghIssueCmd.Flags().StringVarP(&ghFromJob, "from-job", "f", "", "Job ID or URL to publish")
	ghIssueCmd.Flags().StringVarP(&ghRepo, "repo", "r", "", "GitHub repository (owner/repo, from config if not specified)")
	ghIssueCmd.Flags().BoolVar(&ghForce, "force", false, "Create even if already posted")
	_ = ghIssueCmd.MarkFlagRequired("from-job")

	ghCommentCmd.Flags().StringVarP(&ghAssessmentID, "assessment", "a", "", "Assessment ID to post")
	ghCommentCmd.Flags().StringVarP(&ghRepo, "repo", "r", "", "GitHub repository (auto-detected if job was posted)")
	ghCommentCmd.Flags().IntVar(&ghIssueNumber, "issue", 0, "Issue number (auto-detected if job was posted)")
	_ = ghCommentCmd.MarkFlagRequired("assessment")

	ghCmd.AddCommand(ghIssueCmd, ghCommentCmd)
	rootCmd.AddCommand(ghCmd)
}

func runGhIssue(cmd *cobra.Command, args []string) error {
	if err := ghcli.EnsureGH(); err != nil {
		return err
	}

	repo := firstNonEmpty(ghRepo, settings.GH.Repo)
	if repo == "" {
		return fmt.Errorf("repository not specified: provide --repo or set [job.gh] repo in job.toml")
	}

	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	job, err := resolveJob(ctx, conn, ghFromJob)
	if err != nil {
		return err
	}

	if job.GitHubIssueNumber != nil && !ghForce {
		return fmt.Errorf("job already posted to %s#%d (use --force to create a new issue)",
			deref(job.GitHubRepo), *job.GitHubIssueNumber)
	}

	issueURL, number, err := ghcli.NewClient().CreateIssue(ctx, repo,
		ghcli.IssueTitle(job), ghcli.BuildIssueBody(job))
	if err != nil {
		return err
	}

	if err := conn.SetGitHubIssue(ctx, job.ID, repo, number, issueURL, time.Now().UTC()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created issue: %s\n", issueURL)
	fmt.Fprintf(os.Stdout, "Job %s -> %s#%d\n", job.ID, repo, number)
	return nil
}

func runGhComment(cmd *cobra.Command, args []string) error {
	if err := ghcli.EnsureGH(); err != nil {
		return err
	}

	assessmentID, err := uuid.Parse(ghAssessmentID)
	if err != nil {
		return fmt.Errorf("invalid assessment ID: %s", ghAssessmentID)
	}

	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	assessment, err := conn.GetFitAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	if assessment == nil {
		return fmt.Errorf("no assessment found with ID: %s", assessmentID)
	}

	job, err := conn.GetJobByID(ctx, assessment.JobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job not found for assessment %s", assessmentID)
	}

	repo := firstNonEmpty(ghRepo, deref(job.GitHubRepo))
	if repo == "" {
		return fmt.Errorf("repository not specified and job has no GitHub metadata: provide --repo or run 'job gh issue' first")
	}
	number := ghIssueNumber
	if number == 0 && job.GitHubIssueNumber != nil {
		number = *job.GitHubIssueNumber
	}
	if number == 0 {
		return fmt.Errorf("issue number not specified and job has no GitHub metadata: provide --issue or run 'job gh issue' first")
	}

	commentURL, err := ghcli.NewClient().Comment(ctx, repo, number,
		ghcli.BuildAssessmentComment(job, assessment))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Posted assessment to %s#%d\n", repo, number)
	if commentURL != "" {
		fmt.Fprintf(os.Stdout, "%s\n", commentURL)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
