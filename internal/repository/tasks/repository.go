// Package tasks implementiert CRUD, Umschalten und Sortieren von Tasks
// gegen den Record Store.
package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperDomain "hufschlaeger.net/task-records/internal/domain/apper"
	"hufschlaeger.net/task-records/internal/domain/records"
	"hufschlaeger.net/task-records/internal/notify"
	"hufschlaeger.net/task-records/internal/repository/apper"
)

const (
	TableName = "task_c"
	PageSize  = 100
)

var fields = apperDomain.Fields(
	"Id", "Name", "title_c", "description_c", "completed_c", "priority_c",
	"due_date_c", "created_at_c", "order_c", "status_c", "category_c",
)

type Repository struct {
	factory  *apper.Factory
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewRepository(factory *apper.Factory, notifier notify.Notifier, logger *slog.Logger) *Repository {
	if notifier == nil {
		notifier = notify.Nop
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{factory: factory, notifier: notifier, logger: logger}
}

// GetAll lädt die neuesten Tasks zuerst (höchstens PageSize). Bei Fehlern
// kommt immer eine leere (nicht nil) Liste zusammen mit dem Fehler zurück.
func (r *Repository) GetAll(ctx context.Context) ([]records.Task, error) {
	list, err := r.fetchPage(ctx, 0)
	if err != nil {
		return []records.Task{}, err
	}
	return list, nil
}

// ListAll blättert über alle Seiten, bis eine Seite kürzer als PageSize ist
func (r *Repository) ListAll(ctx context.Context) ([]records.Task, error) {
	all := []records.Task{}
	for offset := 0; ; offset += PageSize {
		page, err := r.fetchPage(ctx, offset)
		if err != nil {
			return []records.Task{}, err
		}
		all = append(all, page...)
		if len(page) < PageSize {
			return all, nil
		}
	}
}

func (r *Repository) fetchPage(ctx context.Context, offset int) ([]records.Task, error) {
	resp, err := r.factory.Client().FetchRecords(ctx, TableName, apperDomain.FetchParams{
		Fields:     fields,
		OrderBy:    []apperDomain.OrderBy{{FieldName: "created_at_c", SortType: apperDomain.SortDesc}},
		PagingInfo: &apperDomain.PagingInfo{Limit: PageSize, Offset: offset},
	})
	if err != nil {
		r.logger.Error("Error fetching tasks", "table", TableName, "offset", offset, "error", err)
		return nil, err
	}

	if !resp.Success {
		r.logger.Error("Error fetching tasks", "table", TableName, "offset", offset, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return nil, fmt.Errorf("%w: %s", records.ErrServiceFailure, resp.Message)
	}

	list, err := apper.DecodeList[records.Task](resp.Data)
	if err != nil {
		r.logger.Error("Error fetching tasks", "table", TableName, "offset", offset, "error", err)
		return nil, fmt.Errorf("%w: decode tasks: %v", records.ErrTransportFailure, err)
	}
	return list, nil
}

// GetByID lädt einen Task; nil wenn er fehlt oder das Laden scheitert
func (r *Repository) GetByID(ctx context.Context, id int) (*records.Task, error) {
	resp, err := r.factory.Client().GetRecordByID(ctx, TableName, id, apperDomain.FetchParams{Fields: fields})
	if err != nil {
		r.logger.Error("Error fetching task", "table", TableName, "id", id, "error", err)
		return nil, err
	}

	if !resp.Success {
		r.logger.Error("Error fetching task", "table", TableName, "id", id, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return nil, fmt.Errorf("%w: %s", records.ErrServiceFailure, resp.Message)
	}

	task, _, err := apper.DecodeRecord[records.Task](resp.Data)
	if err != nil {
		r.logger.Error("Error fetching task", "table", TableName, "id", id, "error", err)
		return nil, fmt.Errorf("%w: decode task: %v", records.ErrTransportFailure, err)
	}
	return task, nil
}

// Create legt einen Task an; fehlende Felder bekommen Standardwerte
func (r *Repository) Create(ctx context.Context, in records.TaskInput) (*records.Task, error) {
	payload, err := in.CreatePayload()
	if err != nil {
		r.logger.Error("Error creating task", "table", TableName, "error", err)
		r.notifier.Error(err.Error())
		return nil, fmt.Errorf("%w: %w", records.ErrCreationFailed, err)
	}

	return r.writeOne("create", "creating", records.ErrCreationFailed, func(client *apper.Client) (*apperDomain.Response, error) {
		return client.CreateRecords(ctx, TableName, []interface{}{payload})
	})
}

// Update überträgt nur die im Input aufgelösten Felder
func (r *Repository) Update(ctx context.Context, id int, in records.TaskInput) (*records.Task, error) {
	updates, err := in.UpdatePayload(id)
	if err != nil {
		r.logger.Error("Error updating task", "table", TableName, "id", id, "error", err)
		r.notifier.Error(err.Error())
		return nil, fmt.Errorf("%w: %w", records.ErrUpdateFailed, err)
	}

	return r.writeOne("update", "updating", records.ErrUpdateFailed, func(client *apper.Client) (*apperDomain.Response, error) {
		return client.UpdateRecords(ctx, TableName, []interface{}{updates})
	})
}

// Delete löscht einen Task. Teilfehler im Batch werden gemeldet, aber nicht
// als Fehler geliefert; nur ein success:false des Stores ist ein Fehler.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	resp, err := r.factory.Client().DeleteRecords(ctx, TableName, []int{id})
	if err != nil {
		r.logger.Error("Error deleting task", "table", TableName, "id", id, "error", err)
		return false, fmt.Errorf("%w: %w", records.ErrDeletionFailed, err)
	}

	if !resp.Success {
		r.logger.Error("Error deleting task", "table", TableName, "id", id, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return false, fmt.Errorf("%w: %w: %s", records.ErrDeletionFailed, records.ErrServiceFailure, resp.Message)
	}

	succeeded, failed := apper.Partition(resp.Results)
	if len(failed) > 0 {
		r.logger.Error(fmt.Sprintf("Failed to delete %d tasks", len(failed)), "table", TableName, "results", failed)
		for _, msg := range apper.FailureMessages(failed, false) {
			r.notifier.Error(msg)
		}
	}

	return len(succeeded) > 0, nil
}

// ToggleComplete kehrt completed um und setzt status passend dazu.
//
// Lesen und Schreiben sind nicht atomar: ein paralleles Update zwischen
// GetByID und Update wird überschrieben. Der Record Store kennt kein
// bedingtes Update.
func (r *Repository) ToggleComplete(ctx context.Context, id int) (*records.Task, error) {
	current, err := r.GetByID(ctx, id)
	if current == nil {
		if err != nil {
			err = fmt.Errorf("%w (id %d): %w", records.ErrNotFound, id, err)
		} else {
			err = fmt.Errorf("%w (id %d)", records.ErrNotFound, id)
		}
		r.logger.Error("Error toggling task completion", "table", TableName, "id", id, "error", err)
		return nil, err
	}

	completed := !current.Completed
	task, err := r.Update(ctx, id, records.TaskInput{
		Completed: records.Ptr(completed),
		Status:    records.Ptr(records.StatusFor(completed)),
	})
	if err != nil {
		r.logger.Error("Error toggling task completion", "table", TableName, "id", id, "error", err)
		return nil, err
	}
	return task, nil
}

// ReorderTasks setzt order auf die 1-basierte Position jedes Eintrags. Alle
// Updates laufen parallel; schlägt eines fehl, bleiben bereits geschriebene
// Positionen bestehen.
func (r *Repository) ReorderTasks(ctx context.Context, list []records.Task) ([]records.Task, error) {
	var g errgroup.Group
	for i, task := range list {
		i, task := i, task
		g.Go(func() error {
			_, err := r.Update(ctx, task.ID, records.TaskInput{Order: records.Ptr(i + 1)})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("Error reordering tasks", "table", TableName, "count", len(list), "error", err)
		return nil, err
	}
	return list, nil
}

// writeOne sendet einen Ein-Datensatz-Batch und wertet das Batch-Ergebnis aus
func (r *Repository) writeOne(verb, action string, failure error, send func(*apper.Client) (*apperDomain.Response, error)) (*records.Task, error) {
	resp, err := send(r.factory.Client())
	if err != nil {
		r.logger.Error("Error "+action+" task", "table", TableName, "error", err)
		return nil, fmt.Errorf("%w: %w", failure, err)
	}

	if !resp.Success {
		r.logger.Error("Error "+action+" task", "table", TableName, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return nil, fmt.Errorf("%w: %w: %s", failure, records.ErrServiceFailure, resp.Message)
	}

	succeeded, failed := apper.Partition(resp.Results)
	if len(failed) > 0 {
		r.logger.Error(fmt.Sprintf("Failed to %s %d tasks", verb, len(failed)), "table", TableName, "results", failed)
		for _, msg := range apper.FailureMessages(failed, true) {
			r.notifier.Error(msg)
		}
	}

	if len(succeeded) == 0 {
		return nil, failure
	}

	// Erfolg ohne data liefert (nil, nil)
	task, _, err := apper.DecodeRecord[records.Task](succeeded[0].Data)
	if err != nil {
		r.logger.Error("Error "+action+" task", "table", TableName, "error", err)
		return nil, fmt.Errorf("%w: decode result: %v", failure, err)
	}
	return task, nil
}
