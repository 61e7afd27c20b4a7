package errors

import "errors"

var (
	ErrNotebookNotFound   = errors.New("notebook not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrIdentifierConflict = errors.New("identifier already in use")
)
