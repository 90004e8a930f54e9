package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParsePriority akzeptiert Low, Medium und High ohne Rücksicht auf Groß-/Kleinschreibung
func ParsePriority(s string) (Priority, error) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unbekannte Priorität %q (Low, Medium, High)", s)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusPending, StatusCompleted} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unbekannter Status %q (pending, completed)", s)
}

// StatusFor liefert den zum completed-Flag passenden Status
func StatusFor(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusPending
}

// Task entspricht einem Datensatz der Tabelle task_c
type Task struct {
	ID          int      `json:"Id" yaml:"id"`
	Name        string   `json:"Name" yaml:"name"`
	Title       string   `json:"title_c" yaml:"title"`
	Description string   `json:"description_c" yaml:"description"`
	Completed   bool     `json:"completed_c" yaml:"completed"`
	Priority    Priority `json:"priority_c" yaml:"priority"`
	DueDate     *string  `json:"due_date_c" yaml:"dueDate"`
	CreatedAt   string   `json:"created_at_c" yaml:"createdAt"`
	Order       int      `json:"order_c" yaml:"order"`
	Status      Status   `json:"status_c" yaml:"status"`
	Category    LookupID `json:"category_c" yaml:"category"`
}

// Category entspricht einem Datensatz der Tabelle category_c
type Category struct {
	ID    int    `json:"Id" yaml:"id"`
	Name  string `json:"Name" yaml:"name"`
	Color string `json:"color_c" yaml:"color"`
	Icon  string `json:"icon_c" yaml:"icon"`
}

// LookupID ist ein Fremdschlüssel. Der Record Store liefert Lookup-Felder
// entweder als Zahl oder als Objekt {"Id": n, "Name": "..."}.
type LookupID int

func (l *LookupID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var ref struct {
			ID json.RawMessage `json:"Id"`
		}
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		if len(ref.ID) == 0 {
			return nil
		}
		return l.UnmarshalJSON(ref.ID)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("lookup id %q: %w", s, err)
		}
		*l = LookupID(n)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return fmt.Errorf("lookup id %s: %w", n, err)
			}
			// nur ganzzahlige Werte wie 3.0 oder 1e2
			if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
				return fmt.Errorf("lookup id %s: keine ganze Zahl im int-Bereich", n)
			}
			i = int64(f)
		}
		if i < math.MinInt || i > math.MaxInt {
			return fmt.Errorf("lookup id %s: außerhalb des int-Bereichs", n)
		}
		*l = LookupID(i)
		return nil
	}
}
