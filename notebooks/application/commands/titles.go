package commands

import (
	domainerrors "notekit/notebooks/domain/errors"
	"notekit/notebooks/domain/entities"
)

// validateTitle normalizes a raw title and maps rule violations onto the
// domain sentinels.
func validateTitle(value string) (string, error) {
	title := entities.NormalizeTitle(value)
	if title == "" {
		return "", domainerrors.ErrTitleRequired
	}
	if len(title) > entities.TitleMaxLength {
		return "", domainerrors.ErrTitleTooLong
	}
	return title, nil
}
