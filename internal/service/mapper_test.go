package service

import (
	"strings"
	"testing"

	"hufschlaeger.net/task-records/internal/config"
	gitlabDomain "hufschlaeger.net/task-records/internal/domain/gitlab"
	"hufschlaeger.net/task-records/internal/domain/records"
)

func testIssue(baseTitle string) gitlabDomain.Issue {
	due := "2024-02-15"
	issue := gitlabDomain.Issue{
		IID:         "123",
		Title:       baseTitle,
		State:       "opened",
		WebURL:      "https://gitlab.com/group/repo/-/issues/123",
		Description: strings.Repeat("A", 350),
		DueDate:     &due,
	}
	issue.Assignees.Nodes = []gitlabDomain.User{{Name: "Alice"}, {Name: "Bob"}}
	issue.Labels.Nodes = []gitlabDomain.Label{{Title: "High"}, {Title: "Bug Fix"}}
	return issue
}

func TestIssueToTaskInput_BasicMapping(t *testing.T) {
	m := NewMapper(&config.Config{ImportCategory: 4})
	in := m.IssueToTaskInput(testIssue("Improve feature"))

	if in.ResolvedTitle() != "#123 - Improve feature" {
		t.Fatalf("unexpected title: %q", in.ResolvedTitle())
	}
	if *in.Priority != records.PriorityHigh {
		t.Fatalf("expected High priority, got %s", *in.Priority)
	}
	if *in.Completed || *in.Status != records.StatusPending {
		t.Fatalf("open issue should be pending: %v / %s", *in.Completed, *in.Status)
	}
	if *in.Category != 4 {
		t.Fatalf("expected import category 4, got %d", *in.Category)
	}
	if in.DueDate == nil || *in.DueDate != "2024-02-15" {
		t.Fatalf("due date not carried over: %v", in.DueDate)
	}

	payload, err := in.CreatePayload()
	if err != nil {
		t.Fatalf("CreatePayload() error = %v", err)
	}
	if payload.DueDate == nil || *payload.DueDate != "2024-02-15T00:00:00.000Z" {
		t.Fatalf("due date not normalized: %v", payload.DueDate)
	}
}

func TestIssueToTaskInput_ClosedIssue(t *testing.T) {
	issue := testIssue("Done")
	issue.State = "closed"
	issue.DueDate = nil

	in := NewMapper(&config.Config{}).IssueToTaskInput(issue)
	if !*in.Completed || *in.Status != records.StatusCompleted {
		t.Fatalf("closed issue should be completed: %v / %s", *in.Completed, *in.Status)
	}
	if in.DueDate != nil {
		t.Fatalf("no due date expected, got %v", *in.DueDate)
	}
	if *in.Category != 1 {
		t.Fatalf("expected default category 1, got %d", *in.Category)
	}
}

func TestBuildTaskDescription_ContainsExpectedBlocks(t *testing.T) {
	m := NewMapper(&config.Config{})
	desc := m.buildTaskDescription(testIssue("Title"))

	for _, want := range []string{
		"🔗 [GitLab Issue #123](https://gitlab.com/group/repo/-/issues/123)",
		"👤 **Assignees:** Alice, Bob",
		"🏷️ **Labels:** `High` `Bug Fix`",
		"📅 **Due Date:** 15.02.2024",
		"**Beschreibung:**",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("description missing %q:\n%s", want, desc)
		}
	}

	if !strings.Contains(desc, strings.Repeat("A", 297)+"...") || strings.Contains(desc, strings.Repeat("A", 298)) {
		t.Errorf("body should be truncated to 300 chars")
	}
}

func TestBuildTaskDescription_Minimal(t *testing.T) {
	issue := gitlabDomain.Issue{IID: "7", WebURL: "https://gitlab.com/x/-/issues/7"}

	desc := NewMapper(nil).buildTaskDescription(issue)
	if desc != "🔗 [GitLab Issue #7](https://gitlab.com/x/-/issues/7)" {
		t.Fatalf("unexpected description: %q", desc)
	}
}

func TestDeterminePriority(t *testing.T) {
	tests := []struct {
		labels []string
		want   records.Priority
	}{
		{[]string{"Critical"}, records.PriorityHigh},
		{[]string{"URGENT"}, records.PriorityHigh},
		{[]string{"important"}, records.PriorityHigh},
		{[]string{"priority::low"}, records.PriorityLow},
		{[]string{"medium"}, records.PriorityMedium},
		{[]string{"bug", "low"}, records.PriorityLow},
		{[]string{"low", "high"}, records.PriorityLow},
		{nil, records.PriorityMedium},
	}

	m := NewMapper(&config.Config{})
	for _, tt := range tests {
		var issue gitlabDomain.Issue
		for _, l := range tt.labels {
			issue.Labels.Nodes = append(issue.Labels.Nodes, gitlabDomain.Label{Title: l})
		}
		if got := m.determinePriority(issue); got != tt.want {
			t.Errorf("determinePriority(%v) = %s, want %s", tt.labels, got, tt.want)
		}
	}
}
