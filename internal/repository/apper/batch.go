package apper

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperDomain "hufschlaeger.net/task-records/internal/domain/apper"
)

// Partition teilt ein Batch-Ergebnis in erfolgreiche und fehlgeschlagene Einträge
func Partition(results []apperDomain.RecordResult) (succeeded, failed []apperDomain.RecordResult) {
	for _, r := range results {
		if r.Success {
			succeeded = append(succeeded, r)
		} else {
			failed = append(failed, r)
		}
	}
	return succeeded, failed
}

// FailureMessages liefert die Benachrichtigungen für fehlgeschlagene Einträge:
// pro Eintrag erst die Feldfehler ("Label: Meldung"), dann die allgemeine Meldung.
func FailureMessages(failed []apperDomain.RecordResult, withFieldErrors bool) []string {
	var messages []string
	for _, r := range failed {
		if withFieldErrors {
			for _, fe := range r.Errors {
				messages = append(messages, fmt.Sprintf("%s: %s", fe.FieldLabel, fe.Message))
			}
		}
		if r.Message != "" {
			messages = append(messages, r.Message)
		}
	}
	return messages
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeRecord dekodiert ein einzelnes data-Feld; ok ist false bei null
func DecodeRecord[T any](raw json.RawMessage) (*T, bool, error) {
	if isNull(raw) {
		return nil, false, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// DecodeList dekodiert ein Listen-data-Feld; liefert nie nil
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	out := []T{}
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
