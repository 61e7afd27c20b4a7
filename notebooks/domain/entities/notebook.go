package entities

import (
	"strconv"
	"strings"
	"time"
)

// NotebookID is assigned once at provisioning and never reused while the
// notebook exists. NotebookID and NoteID share a representation but are
// deliberately distinct types.
type NotebookID uint64

func (id NotebookID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type Notebook struct {
	ID        NotebookID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const TitleMaxLength = 200

func NormalizeTitle(value string) string {
	return strings.TrimSpace(value)
}

func ValidTitle(value string) bool {
	title := NormalizeTitle(value)
	return title != "" && len(title) <= TitleMaxLength
}
