package service

import (
	"fmt"
	"strings"

	"hufschlaeger.net/task-records/internal/config"
	gitlabDomain "hufschlaeger.net/task-records/internal/domain/gitlab"
	"hufschlaeger.net/task-records/internal/domain/records"
	"hufschlaeger.net/task-records/pkg/utils"
)

const descriptionLimit = 300

type Mapper struct {
	config *config.Config
}

func NewMapper(cfg *config.Config) *Mapper {
	return &Mapper{config: cfg}
}

// TaskTitle ist der Titel, unter dem ein Issue als Task abgelegt wird
func (m *Mapper) TaskTitle(issue gitlabDomain.Issue) string {
	return fmt.Sprintf("#%s - %s", issue.IID, issue.Title)
}

// IssueToTaskInput konvertiert ein GitLab Issue in das Task-Formular
func (m *Mapper) IssueToTaskInput(issue gitlabDomain.Issue) records.TaskInput {
	completed := issue.State == "closed"

	in := records.TaskInput{
		Title:       records.Ptr(m.TaskTitle(issue)),
		Description: records.Ptr(m.buildTaskDescription(issue)),
		Priority:    records.Ptr(m.determinePriority(issue)),
		Completed:   records.Ptr(completed),
		Status:      records.Ptr(records.StatusFor(completed)),
		Category:    records.Ptr(records.LookupID(m.category())),
	}

	if issue.DueDate != nil && *issue.DueDate != "" {
		in.DueDate = records.Ptr(*issue.DueDate)
	}

	return in
}

func (m *Mapper) category() int {
	if m.config != nil && m.config.ImportCategory > 0 {
		return m.config.ImportCategory
	}
	return 1
}

// buildTaskDescription erstellt eine strukturierte Task-Beschreibung
func (m *Mapper) buildTaskDescription(issue gitlabDomain.Issue) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("🔗 [GitLab Issue #%s](%s)", issue.IID, issue.WebURL))

	if len(issue.Assignees.Nodes) > 0 {
		var assigneeNames []string
		for _, assignee := range issue.Assignees.Nodes {
			assigneeNames = append(assigneeNames, assignee.Name)
		}
		parts = append(parts, fmt.Sprintf("👤 **Assignees:** %s", strings.Join(assigneeNames, ", ")))
	}

	if labels := issue.LabelTitles(); len(labels) > 0 {
		parts = append(parts, fmt.Sprintf("🏷️ **Labels:** %s", utils.FormatLabels(labels)))
	}

	if issue.DueDate != nil && *issue.DueDate != "" {
		parts = append(parts, fmt.Sprintf("📅 **Due Date:** %s", utils.FormatDateForDisplay(*issue.DueDate)))
	}

	// Original-Beschreibung (gekürzt)
	if issue.Description != "" {
		parts = append(parts, "", "**Beschreibung:**", utils.TruncateText(issue.Description, descriptionLimit))
	}

	return strings.Join(parts, "\n")
}

// determinePriority leitet die Priorität aus den Labels ab; das erste
// passende Label gewinnt
func (m *Mapper) determinePriority(issue gitlabDomain.Issue) records.Priority {
	for _, label := range issue.Labels.Nodes {
		labelLower := strings.ToLower(label.Title)

		switch {
		case strings.Contains(labelLower, "critical") || strings.Contains(labelLower, "urgent"),
			strings.Contains(labelLower, "high") || strings.Contains(labelLower, "important"):
			return records.PriorityHigh
		case strings.Contains(labelLower, "medium"):
			return records.PriorityMedium
		case strings.Contains(labelLower, "low"):
			return records.PriorityLow
		}
	}

	return records.PriorityMedium
}
