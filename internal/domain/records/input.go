package records

import (
	"fmt"

	"hufschlaeger.net/task-records/pkg/utils"
)

// TaskInput ist das Formular-Objekt des UI. Jedes Attribut kann unter dem
// Feldnamen des Record Stores (title_c, ...) oder unter dem alten Namen
// (title, ...) kommen; der Store-Name hat Vorrang.
type TaskInput struct {
	Title             *string   `json:"title_c,omitempty"`
	LegacyTitle       *string   `json:"title,omitempty"`
	Description       *string   `json:"description_c,omitempty"`
	LegacyDescription *string   `json:"description,omitempty"`
	Completed         *bool     `json:"completed_c,omitempty"`
	LegacyCompleted   *bool     `json:"completed,omitempty"`
	Priority          *Priority `json:"priority_c,omitempty"`
	LegacyPriority    *Priority `json:"priority,omitempty"`
	DueDate           *string   `json:"due_date_c,omitempty"`
	LegacyDueDate     *string   `json:"dueDate,omitempty"`
	Status            *Status   `json:"status_c,omitempty"`
	LegacyStatus      *Status   `json:"status,omitempty"`
	Category          *LookupID `json:"category_c,omitempty"`
	LegacyCategory    *LookupID `json:"category,omitempty"`
	Order             *int      `json:"order_c,omitempty"`
	LegacyOrder       *int      `json:"order,omitempty"`
}

// Coalesce liefert den ersten gesetzten Wert, der nicht der Nullwert ist
// ("" / 0 zählen als nicht gesetzt).
func Coalesce[T comparable](candidates ...*T) (T, bool) {
	var zero T
	for _, c := range candidates {
		if c != nil && *c != zero {
			return *c, true
		}
	}
	return zero, false
}

// FirstSet liefert den ersten nicht-nil Wert, auch wenn er der Nullwert ist.
// Für Booleans, bei denen false eine gültige Angabe ist.
func FirstSet[T any](candidates ...*T) (T, bool) {
	var zero T
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return zero, false
}

func orDefault[T any](value T, ok bool, fallback T) T {
	if ok {
		return value
	}
	return fallback
}

// ResolvedTitle liefert den Titel nach Fallback-Regel
func (in TaskInput) ResolvedTitle() string {
	title, _ := Coalesce(in.Title, in.LegacyTitle)
	return title
}

// resolveDueDate: (normalisiertes Datum, gesetzt, Fehler). Ein explizit leerer
// Wert zählt als "gesetzt, aber leer" und löscht das Datum beim Update.
func (in TaskInput) resolveDueDate() (*string, bool, error) {
	if raw, ok := Coalesce(in.DueDate, in.LegacyDueDate); ok {
		iso, err := utils.NormalizeISODate(raw)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
		}
		return &iso, true, nil
	}
	explicitEmpty := (in.DueDate != nil && *in.DueDate == "") || (in.LegacyDueDate != nil && *in.LegacyDueDate == "")
	return nil, explicitEmpty, nil
}

// CreateRecord ist der Payload für createRecord; alle Felder sind belegt
type CreateRecord struct {
	Name        string   `json:"Name"`
	Title       string   `json:"title_c"`
	Description string   `json:"description_c"`
	Completed   bool     `json:"completed_c"`
	Priority    Priority `json:"priority_c"`
	DueDate     *string  `json:"due_date_c"`
	Status      Status   `json:"status_c"`
	Category    int      `json:"category_c"`
	Order       int      `json:"order_c"`
}

// CreatePayload baut den Datensatz für eine Neuanlage mit Standardwerten
func (in TaskInput) CreatePayload() (CreateRecord, error) {
	dueDate, _, err := in.resolveDueDate()
	if err != nil {
		return CreateRecord{}, err
	}

	title := in.ResolvedTitle()
	description, _ := Coalesce(in.Description, in.LegacyDescription)
	completed, okCompleted := FirstSet(in.Completed, in.LegacyCompleted)
	priority, okPriority := Coalesce(in.Priority, in.LegacyPriority)
	status, okStatus := Coalesce(in.Status, in.LegacyStatus)
	category, okCategory := Coalesce(in.Category, in.LegacyCategory)
	order, okOrder := Coalesce(in.Order, in.LegacyOrder)

	return CreateRecord{
		Name:        title,
		Title:       title,
		Description: description,
		Completed:   orDefault(completed, okCompleted, false),
		Priority:    orDefault(priority, okPriority, PriorityMedium),
		DueDate:     dueDate,
		Status:      orDefault(status, okStatus, StatusPending),
		Category:    int(orDefault(category, okCategory, LookupID(1))),
		Order:       orDefault(order, okOrder, 1),
	}, nil
}

// UpdatePayload baut den Datensatz für updateRecord. Nur aufgelöste Felder
// werden übertragen, Id ist immer enthalten.
func (in TaskInput) UpdatePayload(id int) (map[string]interface{}, error) {
	dueDate, dueSet, err := in.resolveDueDate()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"Id": id}

	if title, ok := Coalesce(in.Title, in.LegacyTitle); ok {
		updates["Name"] = title
		updates["title_c"] = title
	}
	if description, ok := Coalesce(in.Description, in.LegacyDescription); ok {
		updates["description_c"] = description
	}
	if completed, ok := FirstSet(in.Completed, in.LegacyCompleted); ok {
		updates["completed_c"] = completed
	}
	if priority, ok := Coalesce(in.Priority, in.LegacyPriority); ok {
		updates["priority_c"] = priority
	}
	if dueSet {
		updates["due_date_c"] = dueDate
	}
	if status, ok := Coalesce(in.Status, in.LegacyStatus); ok {
		updates["status_c"] = status
	}
	if category, ok := Coalesce(in.Category, in.LegacyCategory); ok {
		updates["category_c"] = int(category)
	}
	if order, ok := Coalesce(in.Order, in.LegacyOrder); ok {
		updates["order_c"] = order
	}

	return updates, nil
}

// Ptr ist ein Helfer für Literale in Aufrufern und Tests
func Ptr[T any](v T) *T {
	return &v
}
