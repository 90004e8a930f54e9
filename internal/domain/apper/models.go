package apper

import "encoding/json"

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

type FieldName struct {
	Name string `json:"Name"`
}

type Field struct {
	Field FieldName `json:"field"`
}

// Fields baut die Feldauswahl aus Feldnamen
func Fields(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Field: FieldName{Name: name}})
	}
	return fields
}

type OrderBy struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"`
}

type PagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type FetchParams struct {
	Fields     []Field     `json:"fields"`
	OrderBy    []OrderBy   `json:"orderBy,omitempty"`
	PagingInfo *PagingInfo `json:"pagingInfo,omitempty"`
}

type RecordsRequest struct {
	Records []interface{} `json:"records"`
}

type DeleteRequest struct {
	RecordIDs []int `json:"RecordIds"`
}

type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

// RecordResult ist das Ergebnis für einen Datensatz eines Batches
type RecordResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// Response ist der gemeinsame Umschlag aller Antworten des Record Stores
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Results []RecordResult  `json:"results,omitempty"`
}
