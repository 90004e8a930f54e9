package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"hufschlaeger.net/task-records/internal/config"
	gitlabDomain "hufschlaeger.net/task-records/internal/domain/gitlab"
	"hufschlaeger.net/task-records/internal/domain/records"
)

// IssueSource liefert Issues eines GitLab-Projekts
type IssueSource interface {
	ValidateConnection(ctx context.Context) error
	GetIssues(ctx context.Context, projectPath string, milestoneTitle *string) ([]gitlabDomain.Issue, error)
}

// TaskStore ist der Teil des Task-Repositories, den der Import braucht
type TaskStore interface {
	ListAll(ctx context.Context) ([]records.Task, error)
	Create(ctx context.Context, in records.TaskInput) (*records.Task, error)
}

// Summary fasst einen Importlauf zusammen
type Summary struct {
	Found   int      `json:"found" yaml:"found"`
	Created int      `json:"created" yaml:"created"`
	Skipped int      `json:"skipped" yaml:"skipped"`
	Failed  int      `json:"failed" yaml:"failed"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type Importer struct {
	config *config.Config
	source IssueSource
	tasks  TaskStore
	mapper *Mapper
	out    io.Writer
}

func NewImporter(cfg *config.Config, source IssueSource, tasks TaskStore, out io.Writer) *Importer {
	if out == nil {
		out = os.Stdout
	}
	return &Importer{
		config: cfg,
		source: source,
		tasks:  tasks,
		mapper: NewMapper(cfg),
		out:    out,
	}
}

// Import überträgt die Issues des konfigurierten Projekts als Tasks.
// Tasks mit bereits vorhandenem Titel werden übersprungen.
func (i *Importer) Import(ctx context.Context) (*Summary, error) {
	// 1. Konfiguration validieren
	if err := i.config.ValidateGitLab(); err != nil {
		return nil, fmt.Errorf("konfiguration ungültig: %w", err)
	}

	// 2. Issues von GitLab laden
	fmt.Fprintf(i.out, "🔍 Lade Issues aus GitLab: %s\n", i.config.ProjectPath)
	issues, err := i.loadGitLabIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Laden der GitLab Issues: %w", err)
	}

	summary := &Summary{Found: len(issues)}
	fmt.Fprintf(i.out, "📊 Gefunden: %d Issues\n", len(issues))
	if len(issues) == 0 {
		fmt.Fprintln(i.out, "ℹ️  Keine Issues gefunden")
		return summary, nil
	}

	// 3. Bestehende Tasks laden (alle Seiten)
	existing, err := i.tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Laden bestehender Tasks: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, task := range existing {
		titles[task.Title] = true
	}
	fmt.Fprintf(i.out, "🔍 Gefunden: %d bestehende Tasks\n", len(existing))

	// 4. Neue Issues einzeln anlegen
	for _, issue := range issues {
		title := i.mapper.TaskTitle(issue)
		if titles[title] {
			summary.Skipped++
			continue
		}

		created, err := i.tasks.Create(ctx, i.mapper.IssueToTaskInput(issue))
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("#%s: %v", issue.IID, err))
			fmt.Fprintf(i.out, "⚠️  Fehler bei Issue #%s: %v\n", issue.IID, err)
			continue
		}

		titles[title] = true
		summary.Created++
		if created != nil {
			fmt.Fprintf(i.out, "✅ Task erstellt: %s (ID: %d)\n", title, created.ID)
		} else {
			fmt.Fprintf(i.out, "✅ Task erstellt: %s\n", title)
		}
	}

	fmt.Fprintf(i.out, "\n🎉 Import abgeschlossen:\n")
	fmt.Fprintf(i.out, "  ✅  Erstellt: %d\n", summary.Created)
	fmt.Fprintf(i.out, "  ⏭️  Übersprungen: %d\n", summary.Skipped)
	fmt.Fprintf(i.out, "  ❌  Fehlgeschlagen: %d\n", summary.Failed)

	return summary, nil
}

func (i *Importer) loadGitLabIssues(ctx context.Context) ([]gitlabDomain.Issue, error) {
	if err := i.source.ValidateConnection(ctx); err != nil {
		return nil, fmt.Errorf("GitLab-Verbindung fehlgeschlagen: %w", err)
	}

	if m := i.config.MilestoneTitle; m != nil && *m != "" && *m != "*" {
		fmt.Fprintf(i.out, "🎯 Filter nach Milestone: %s\n", *m)
	} else {
		fmt.Fprintln(i.out, "📋 Lade alle Issues...")
	}
	return i.source.GetIssues(ctx, i.config.ProjectPath, i.config.MilestoneTitle)
}
