package cli

import (
	"github.com/spf13/cobra"

	"hufschlaeger.net/task-records/internal/repository/gitlab"
	"hufschlaeger.net/task-records/internal/service"
)

type importFlags struct {
	gitlabURL   string
	gitlabToken string
	project     string
	milestone   string
	category    int
}

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Tasks aus anderen Systemen übernehmen",
	}

	var flags importFlags
	gitlabCmd := &cobra.Command{
		Use:   "gitlab",
		Short: "GitLab Issues als Tasks anlegen",
		Long: `Lädt die Issues eines GitLab-Projekts über GraphQL und legt für jedes
Issue einen Task an. Issues, deren Titel ("#<iid> - <titel>") schon als Task
existiert, werden übersprungen.

Beispiele:
  # Alle Issues
  task-records import gitlab --project "user/repo" --gitlab-token "glpat-xxxx"

  # Bestimmter Milestone
  task-records import gitlab --project "user/repo" --milestone "v1.0"

Environment Variables:
  GITLAB_TOKEN      GitLab Access Token
  GITLAB_URL        GitLab URL (Standard: https://gitlab.com)
  PROJECT_PATH      GitLab Projekt Pfad
  MILESTONE_TITLE   Milestone Filter
  IMPORT_CATEGORY   Kategorie-ID der importierten Tasks`,
		Args:    cobra.NoArgs,
		PreRunE: a.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, a)

			importer := service.NewImporter(a.cfg, gitlab.NewRepository(a.cfg, a.logger), a.taskRepo(), a.errOut)
			summary, err := importer.Import(cmd.Context())
			if err != nil {
				return err
			}
			if a.printer.Structured() {
				return a.printer.Value(summary)
			}
			return nil
		},
	}

	gitlabCmd.Flags().StringVar(&flags.gitlabURL, "gitlab-url", "", "GitLab URL")
	gitlabCmd.Flags().StringVar(&flags.gitlabToken, "gitlab-token", "", "GitLab Access Token")
	gitlabCmd.Flags().StringVar(&flags.project, "project", "", "GitLab Projekt Pfad (z.B. 'user/repo')")
	gitlabCmd.Flags().StringVar(&flags.milestone, "milestone", "", "Milestone Titel oder '*' für alle")
	gitlabCmd.Flags().IntVar(&flags.category, "category", 0, "Kategorie-ID der importierten Tasks")

	cmd.AddCommand(gitlabCmd)
	return cmd
}

// apply überschreibt die Konfiguration mit gesetzten Flags
func (f *importFlags) apply(cmd *cobra.Command, a *app) {
	changed := cmd.Flags().Changed

	if changed("gitlab-url") {
		a.cfg.GitLabURL = f.gitlabURL
	}
	if changed("gitlab-token") {
		a.cfg.GitLabToken = f.gitlabToken
	}
	if changed("project") {
		a.cfg.ProjectPath = f.project
	}
	if changed("milestone") {
		if f.milestone == "" || f.milestone == "*" {
			a.cfg.MilestoneTitle = nil
		} else {
			milestone := f.milestone
			a.cfg.MilestoneTitle = &milestone
		}
	}
	if changed("category") {
		a.cfg.ImportCategory = f.category
	}
}
