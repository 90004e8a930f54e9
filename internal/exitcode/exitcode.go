// Package exitcode definiert die Exit-Codes der CLI.
package exitcode

import (
	"errors"

	"hufschlaeger.net/task-records/internal/domain/records"
)

const (
	Success = 0

	// UserError: falsche Argumente, Task nicht gefunden, ungültige Eingabe
	UserError = 1

	// ConfigError: fehlende oder ungültige Konfiguration
	ConfigError = 2

	// BackendError: Record Store oder Netzwerk
	BackendError = 3
)

// ErrConfig markiert Konfigurationsfehler
var ErrConfig = errors.New("configuration error")

// For liefert den Exit-Code zu einem Fehler
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrConfig):
		return ConfigError
	case errors.Is(err, records.ErrNotFound), errors.Is(err, records.ErrInvalidDueDate):
		return UserError
	case errors.Is(err, records.ErrServiceFailure),
		errors.Is(err, records.ErrTransportFailure),
		errors.Is(err, records.ErrCreationFailed),
		errors.Is(err, records.ErrUpdateFailed),
		errors.Is(err, records.ErrDeletionFailed):
		return BackendError
	}
	return UserError
}
