package records

import "errors"

var (
	// ErrServiceFailure: der Record Store hat success:false geantwortet
	ErrServiceFailure = errors.New("service failure")
	// ErrTransportFailure: Netzwerkfehler oder keine auswertbare Antwort
	ErrTransportFailure = errors.New("transport failure")

	ErrCreationFailed = errors.New("failed to create task")
	ErrUpdateFailed   = errors.New("failed to update task")
	ErrDeletionFailed = errors.New("failed to delete task")
	ErrNotFound       = errors.New("task not found")
	ErrInvalidDueDate = errors.New("invalid due date")
)
