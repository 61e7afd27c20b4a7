package entities

import (
	"strconv"
	"time"
)

type NoteID uint64

func (id NoteID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Note belongs to exactly one notebook for its whole lifetime.
type Note struct {
	ID         NoteID
	NotebookID NotebookID
	Title      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
