// Package categories liest Kategorien aus dem Record Store (nur lesend).
package categories

import (
	"context"
	"fmt"
	"log/slog"

	apperDomain "hufschlaeger.net/task-records/internal/domain/apper"
	"hufschlaeger.net/task-records/internal/domain/records"
	"hufschlaeger.net/task-records/internal/notify"
	"hufschlaeger.net/task-records/internal/repository/apper"
)

const (
	TableName = "category_c"
	PageSize  = 50
)

var fields = apperDomain.Fields("Id", "Name", "color_c", "icon_c")

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

// GetAll lädt alle Kategorien sortiert nach Name. Bei Fehlern kommt immer eine
// leere (nicht nil) Liste zusammen mit dem Fehler zurück.
func (r *Repository) GetAll(ctx context.Context) ([]records.Category, error) {
	resp, err := r.factory.Client().FetchRecords(ctx, TableName, apperDomain.FetchParams{
		Fields:     fields,
		OrderBy:    []apperDomain.OrderBy{{FieldName: "Name", SortType: apperDomain.SortAsc}},
		PagingInfo: &apperDomain.PagingInfo{Limit: PageSize, Offset: 0},
	})
	if err != nil {
		r.logger.Error("Error fetching categories", "table", TableName, "error", err)
		return []records.Category{}, err
	}

	if !resp.Success {
		r.logger.Error("Error fetching categories", "table", TableName, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return []records.Category{}, fmt.Errorf("%w: %s", records.ErrServiceFailure, resp.Message)
	}

	list, err := apper.DecodeList[records.Category](resp.Data)
	if err != nil {
		r.logger.Error("Error fetching categories", "table", TableName, "error", err)
		return []records.Category{}, fmt.Errorf("%w: decode categories: %v", records.ErrTransportFailure, err)
	}
	return list, nil
}

// GetByID lädt eine Kategorie; nil wenn sie fehlt oder das Laden scheitert
func (r *Repository) GetByID(ctx context.Context, id int) (*records.Category, error) {
	resp, err := r.factory.Client().GetRecordByID(ctx, TableName, id, apperDomain.FetchParams{Fields: fields})
	if err != nil {
		r.logger.Error("Error fetching category", "table", TableName, "id", id, "error", err)
		return nil, err
	}

	if !resp.Success {
		r.logger.Error("Error fetching category", "table", TableName, "id", id, "message", resp.Message)
		r.notifier.Error(resp.Message)
		return nil, fmt.Errorf("%w: %s", records.ErrServiceFailure, resp.Message)
	}

	category, _, err := apper.DecodeRecord[records.Category](resp.Data)
	if err != nil {
		r.logger.Error("Error fetching category", "table", TableName, "id", id, "error", err)
		return nil, fmt.Errorf("%w: decode category: %v", records.ErrTransportFailure, err)
	}
	return category, nil
}
