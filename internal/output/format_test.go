package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"hufschlaeger.net/task-records/internal/domain/records"
)

func sampleTasks() []records.Task {
	due := "2024-02-15T00:00:00.000Z"
	return []records.Task{
		{ID: 1, Title: "Buy milk", Priority: records.PriorityMedium, Status: records.StatusPending, Category: 1, Order: 1},
		{ID: 2, Title: "Line\nbreak", Completed: true, Priority: records.PriorityHigh, Status: records.StatusCompleted, DueDate: &due, Category: 2, Order: 2},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTasks_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatTable).Tasks(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], "15.02.2024") || !strings.Contains(lines[2], "Line break") || !strings.Contains(lines[2], "✅") {
		t.Errorf("unexpected row: %q", lines[2])
	}
	if !strings.Contains(lines[1], "-") || !strings.Contains(lines[1], "⬜") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestTasks_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	_ = NewPrinter(&buf, FormatTable).Tasks(nil)
	if buf.String() != "Keine Tasks\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestTasks_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).Tasks(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	var decoded []records.Task
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || decoded[1].Title != "Line\nbreak" || !decoded[1].Completed {
		t.Fatalf("unexpected decoded tasks: %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"title_c"`) {
		t.Errorf("json should use record store field names")
	}
}

func TestTasks_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatYAML).Tasks(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || decoded[0]["title"] != "Buy milk" || decoded[1]["priority"] != "High" {
		t.Fatalf("unexpected yaml: %v", decoded)
	}
}

func TestTask_TableAndNil(t *testing.T) {
	var buf bytes.Buffer
	task := sampleTasks()[0]
	task.Description = "2 Liter"
	if err := NewPrinter(&buf, FormatTable).Task(&task); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Buy milk", "Medium", "2 Liter", "Kein Datum"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	_ = NewPrinter(&buf, FormatTable).Task(nil)
	if buf.String() != "Task nicht gefunden\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestCategories(t *testing.T) {
	var buf bytes.Buffer
	list := []records.Category{{ID: 1, Name: "Work", Color: "#f00", Icon: "briefcase"}}
	if err := NewPrinter(&buf, FormatTable).Categories(list); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "briefcase") {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	buf.Reset()
	if err := NewPrinter(&buf, FormatJSON).Category(&list[0]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"color_c": "#f00"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}
