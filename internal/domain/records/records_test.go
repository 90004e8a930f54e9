package records

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCoalesce_Precedence(t *testing.T) {
	cases := []struct {
		name      string
		canonical *string
		legacy    *string
		want      string
		wantOK    bool
	}{
		{"canonical wins", Ptr("A"), Ptr("B"), "A", true},
		{"empty canonical falls back", Ptr(""), Ptr("B"), "B", true},
		{"nil canonical falls back", nil, Ptr("B"), "B", true},
		{"nothing set", nil, nil, "", false},
		{"only empties", Ptr(""), Ptr(""), "", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coalesce(tt.canonical, tt.legacy)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Coalesce() = (%q, %t), want (%q, %t)", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if n, ok := Coalesce(Ptr(0), Ptr(3)); !ok || n != 3 {
		t.Fatalf("zero int should fall back, got (%d, %t)", n, ok)
	}
}

func TestFirstSet_KeepsFalse(t *testing.T) {
	got, ok := FirstSet(Ptr(false), Ptr(true))
	if !ok || got {
		t.Fatalf("FirstSet() = (%t, %t), want (false, true)", got, ok)
	}
	got, ok = FirstSet[bool](nil, Ptr(true))
	if !ok || !got {
		t.Fatalf("FirstSet() should use legacy value, got (%t, %t)", got, ok)
	}
	if _, ok := FirstSet[bool](nil, nil); ok {
		t.Fatal("FirstSet() on nils should report unset")
	}
}

func TestCreatePayload_Defaults(t *testing.T) {
	rec, err := TaskInput{LegacyTitle: Ptr("Buy milk")}.CreatePayload()
	if err != nil {
		t.Fatalf("CreatePayload() error = %v", err)
	}

	want := CreateRecord{
		Name:     "Buy milk",
		Title:    "Buy milk",
		Priority: PriorityMedium,
		Status:   StatusPending,
		Category: 1,
		Order:    1,
	}
	if rec != want {
		t.Fatalf("CreatePayload() = %+v, want %+v", rec, want)
	}
}

func TestCreatePayload_CanonicalOverLegacy(t *testing.T) {
	in := TaskInput{
		Title:          Ptr("canonical"),
		LegacyTitle:    Ptr("legacy"),
		Priority:       Ptr(PriorityHigh),
		LegacyPriority: Ptr(PriorityLow),
		LegacyStatus:   Ptr(StatusCompleted),
		Completed:      Ptr(true),
		LegacyCategory: Ptr(LookupID(3)),
		Order:          Ptr(7),
		LegacyDueDate:  Ptr("2024-02-15"),
	}

	rec, err := in.CreatePayload()
	if err != nil {
		t.Fatalf("CreatePayload() error = %v", err)
	}
	if rec.Title != "canonical" || rec.Name != "canonical" {
		t.Errorf("title precedence broken: %+v", rec)
	}
	if rec.Priority != PriorityHigh {
		t.Errorf("priority precedence broken: %s", rec.Priority)
	}
	if rec.Status != StatusCompleted || !rec.Completed {
		t.Errorf("status/completed not taken over: %+v", rec)
	}
	if rec.Category != 3 || rec.Order != 7 {
		t.Errorf("category/order mismatch: %+v", rec)
	}
	if rec.DueDate == nil || *rec.DueDate != "2024-02-15T00:00:00.000Z" {
		t.Errorf("due date not normalized: %v", rec.DueDate)
	}
}

func TestCreatePayload_DueDateNullWhenMissing(t *testing.T) {
	rec, err := TaskInput{Title: Ptr("x"), DueDate: Ptr("")}.CreatePayload()
	if err != nil {
		t.Fatalf("CreatePayload() error = %v", err)
	}

	raw, _ := json.Marshal(rec)
	var m map[string]interface{}
	_ = json.Unmarshal(raw, &m)
	if v, ok := m["due_date_c"]; !ok || v != nil {
		t.Fatalf("expected due_date_c:null in payload, got %s", raw)
	}
}

func TestCreatePayload_InvalidDueDate(t *testing.T) {
	_, err := TaskInput{Title: Ptr("x"), DueDate: Ptr("someday")}.CreatePayload()
	if !errors.Is(err, ErrInvalidDueDate) {
		t.Fatalf("expected ErrInvalidDueDate, got %v", err)
	}
}

func TestUpdatePayload_OnlyResolvedFields(t *testing.T) {
	updates, err := TaskInput{Order: Ptr(2)}.UpdatePayload(9)
	if err != nil {
		t.Fatalf("UpdatePayload() error = %v", err)
	}
	if len(updates) != 2 || updates["Id"] != 9 || updates["order_c"] != 2 {
		t.Fatalf("unexpected updates: %v", updates)
	}
}

func TestUpdatePayload_ToggleFields(t *testing.T) {
	updates, err := TaskInput{Completed: Ptr(false), Status: Ptr(StatusPending)}.UpdatePayload(5)
	if err != nil {
		t.Fatalf("UpdatePayload() error = %v", err)
	}
	if updates["completed_c"] != false || updates["status_c"] != StatusPending {
		t.Fatalf("unexpected updates: %v", updates)
	}
	if _, ok := updates["title_c"]; ok {
		t.Fatalf("title should be omitted: %v", updates)
	}
}

func TestUpdatePayload_TitleMirrorsNameAndDueDateClear(t *testing.T) {
	updates, err := TaskInput{LegacyTitle: Ptr("Renamed"), DueDate: Ptr("")}.UpdatePayload(1)
	if err != nil {
		t.Fatalf("UpdatePayload() error = %v", err)
	}
	if updates["Name"] != "Renamed" || updates["title_c"] != "Renamed" {
		t.Fatalf("title not mirrored: %v", updates)
	}
	v, ok := updates["due_date_c"]
	if !ok {
		t.Fatalf("explicit empty due date should clear: %v", updates)
	}
	if p, _ := v.(*string); p != nil {
		t.Fatalf("expected nil due date, got %v", *p)
	}
}

func TestTaskInput_DecodesBothFieldNames(t *testing.T) {
	var in TaskInput
	body := `{"title":"legacy","title_c":"canonical","dueDate":"2024-01-01","category_c":{"Id":4,"Name":"Work"},"completed":true}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.ResolvedTitle() != "canonical" {
		t.Errorf("ResolvedTitle() = %q", in.ResolvedTitle())
	}
	if in.Category == nil || *in.Category != 4 {
		t.Errorf("category lookup not decoded: %v", in.Category)
	}
	if in.LegacyCompleted == nil || !*in.LegacyCompleted {
		t.Errorf("legacy completed not decoded")
	}
}

func TestLookupID_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want LookupID
	}{
		{`3`, 3},
		{`"12"`, 12},
		{`{"Id": 7, "Name": "Work"}`, 7},
		{`{"Id": "8"}`, 8},
		{`null`, 0},
		{`""`, 0},
		{`2.0`, 2},
		{`1e2`, 100},
	}
	for _, c := range cases {
		var got LookupID
		if err := json.Unmarshal([]byte(c.in), &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("Unmarshal(%s) = %d, want %d", c.in, got, c.want)
		}
	}

	for _, in := range []string{`"abc"`, `2.5`, `-0.1`, `1e30`, `{"Id": 3.7}`} {
		var bad LookupID
		if err := json.Unmarshal([]byte(in), &bad); err == nil {
			t.Fatalf("Unmarshal(%s) = %d, want error", in, bad)
		}
	}
}

func TestTask_DecodeStoreRecord(t *testing.T) {
	raw := `{"Id":5,"Name":"A","title_c":"A","completed_c":true,"priority_c":"High","due_date_c":null,
		"created_at_c":"2024-01-01T00:00:00Z","order_c":2,"status_c":"completed","category_c":{"Id":2}}`
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.ID != 5 || !task.Completed || task.Status != StatusCompleted || task.Category != 2 || task.DueDate != nil {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(true) != StatusCompleted || StatusFor(false) != StatusPending {
		t.Fatal("StatusFor mapping broken")
	}
}

func TestParsePriorityAndStatus(t *testing.T) {
	if p, err := ParsePriority(" high "); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority(high) = %q, %v", p, err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(urgent) should fail")
	}
	if s, err := ParseStatus("COMPLETED"); err != nil || s != StatusCompleted {
		t.Errorf("ParseStatus(COMPLETED) = %q, %v", s, err)
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("ParseStatus(done) should fail")
	}
}
