package utils

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout entspricht Date.prototype.toISOString (UTC, Millisekunden)
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Akzeptierte Eingabeformate, Zeitangaben ohne Zone gelten als UTC
var dateFormats = []string{
	time.RFC3339Nano,      // ISO mit Timezone / Millisekunden
	"2006-01-02T15:04:05", // ISO ohne Timezone
	"2006-01-02T15:04",    // datetime-local aus dem Formular
	"2006-01-02 15:04:05", // SQL-artig
	"2006-01-02",          // Nur Datum
}

// ParseDate versucht alle bekannten Formate
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unbekanntes Datumsformat: %q", value)
}

// NormalizeISODate konvertiert ein Datum in das ISO-8601 Format des Record Stores
func NormalizeISODate(value string) (string, error) {
	parsed, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return parsed.UTC().Format(ISOLayout), nil
}

// FormatDateForDisplay formatiert Datum für schöne Anzeige
func FormatDateForDisplay(dateStr string) string {
	if dateStr == "" {
		return "Kein Datum"
	}

	if parsed, err := ParseDate(dateStr); err == nil {
		return parsed.Format("02.01.2006")
	}

	return dateStr
}
